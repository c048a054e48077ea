package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/adview/codec"
	"github.com/hupe1980/adview/table"
	"github.com/olekukonko/tablewriter"
)

// Format selects an output format.
type Format int

const (
	FormatTSV Format = iota
	FormatCSV
	FormatPretty
	FormatJSONL
)

// ParseFormat maps "tsv", "csv", "pretty" or "jsonl" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "tsv", "tab":
		return FormatTSV, nil
	case "csv":
		return FormatCSV, nil
	case "pretty", "table":
		return FormatPretty, nil
	case "jsonl", "ndjson":
		return FormatJSONL, nil
	default:
		return 0, fmt.Errorf("unknown format %q", s)
	}
}

func (f Format) String() string {
	switch f {
	case FormatTSV:
		return "tsv"
	case FormatCSV:
		return "csv"
	case FormatPretty:
		return "pretty"
	case FormatJSONL:
		return "jsonl"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// RowWriter emits a header followed by chunks of rows.
type RowWriter interface {
	WriteHeader(names []string) error
	// WriteChunk writes the rows of cols. start is the table row index of
	// the first row.
	WriteChunk(start int, cols table.Columns) error
	// Flush writes any buffered output.
	Flush() error
}

// NewRowWriter returns the writer for f. c encodes FormatJSONL rows; nil
// selects codec.Default.
func NewRowWriter(w io.Writer, f Format, c codec.Codec) RowWriter {
	switch f {
	case FormatCSV:
		return NewCSVWriter(w)
	case FormatPretty:
		return NewPrettyWriter(w)
	case FormatJSONL:
		return NewJSONLWriter(w, c)
	default:
		return NewTSVWriter(w)
	}
}

// TSVWriter writes tab-joined rows. Values are written verbatim.
type TSVWriter struct {
	w *bufio.Writer
}

// NewTSVWriter creates a TSVWriter.
func NewTSVWriter(w io.Writer) *TSVWriter {
	return &TSVWriter{w: bufio.NewWriter(w)}
}

func (t *TSVWriter) WriteHeader(names []string) error {
	return t.line(names)
}

func (t *TSVWriter) WriteChunk(_ int, cols table.Columns) error {
	for _, row := range Rows(cols) {
		if err := t.line(row); err != nil {
			return err
		}
	}
	return nil
}

func (t *TSVWriter) line(fields []string) error {
	if _, err := t.w.WriteString(strings.Join(fields, "\t")); err != nil {
		return err
	}
	return t.w.WriteByte('\n')
}

func (t *TSVWriter) Flush() error { return t.w.Flush() }

// CSVWriter writes RFC 4180 records.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter creates a CSVWriter.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (c *CSVWriter) WriteHeader(names []string) error {
	return c.w.Write(names)
}

func (c *CSVWriter) WriteChunk(_ int, cols table.Columns) error {
	for _, row := range Rows(cols) {
		if err := c.w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

// JSONLWriter writes one JSON object per row, keyed by field name in
// header order.
type JSONLWriter struct {
	w     *bufio.Writer
	c     codec.Codec
	names []string
	buf   []byte
}

// NewJSONLWriter creates a JSONLWriter. A nil c selects codec.Default.
func NewJSONLWriter(w io.Writer, c codec.Codec) *JSONLWriter {
	if c == nil {
		c = codec.Default
	}
	return &JSONLWriter{w: bufio.NewWriter(w), c: c}
}

func (j *JSONLWriter) WriteHeader(names []string) error {
	j.names = append(j.names[:0], names...)
	return nil
}

func (j *JSONLWriter) WriteChunk(_ int, cols table.Columns) error {
	for _, row := range Rows(cols) {
		var err error
		if j.buf, err = codec.AppendObject(j.c, j.buf[:0], j.names, row); err != nil {
			return err
		}
		j.buf = append(j.buf, '\n')
		if _, err := j.w.Write(j.buf); err != nil {
			return err
		}
	}
	return nil
}

func (j *JSONLWriter) Flush() error { return j.w.Flush() }

// PrettyWriter buffers all rows and renders an aligned table on Flush.
type PrettyWriter struct {
	t    *tablewriter.Table
	rows int
	w    io.Writer
}

// NewPrettyWriter creates a PrettyWriter.
func NewPrettyWriter(w io.Writer) *PrettyWriter {
	t := tablewriter.NewWriter(w)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	return &PrettyWriter{t: t, w: w}
}

func (p *PrettyWriter) WriteHeader(names []string) error {
	p.t.SetHeader(names)
	return nil
}

func (p *PrettyWriter) WriteChunk(_ int, cols table.Columns) error {
	for _, row := range Rows(cols) {
		for i, v := range row {
			row[i] = expandTabsAndNewLines(v)
		}
		p.t.Append(row)
		p.rows++
	}
	return nil
}

func (p *PrettyWriter) Flush() error {
	p.t.Render()
	suffix := "s"
	if p.rows == 1 {
		suffix = ""
	}
	_, err := fmt.Fprintf(p.w, "(%d row%s)\n", p.rows, suffix)
	return err
}

func expandTabsAndNewLines(s string) string {
	return strings.NewReplacer("\t", "  ", "\n", "␤").Replace(s)
}

// ListWriter writes one column as "<1-based-index>: <value>" lines.
type ListWriter struct {
	w *bufio.Writer
}

// NewListWriter creates a ListWriter.
func NewListWriter(w io.Writer) *ListWriter {
	return &ListWriter{w: bufio.NewWriter(w)}
}

// WriteValues writes values, numbering them from start+1.
func (l *ListWriter) WriteValues(start int, values []string) error {
	for i, v := range values {
		if _, err := fmt.Fprintf(l.w, "%d: %s\n", start+i+1, v); err != nil {
			return err
		}
	}
	return nil
}

func (l *ListWriter) Flush() error { return l.w.Flush() }
