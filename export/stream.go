package export

import (
	"fmt"

	"github.com/hupe1980/adview/table"
)

// Stream writes the header and then rows [start, start+count) chunk by
// chunk. A negative count means all remaining rows.
func Stream(r *table.Reader, w RowWriter, start, count int) error {
	if err := w.WriteHeader(r.Headers()); err != nil {
		return err
	}
	if err := r.ChunksFrom(start, count, w.WriteChunk); err != nil {
		return err
	}
	return w.Flush()
}

// Materialize decodes rows [start, start+count) in a single read and only
// then calls open for the writer, so a decode error never reaches the
// output. A negative count means all remaining rows.
func Materialize(r *table.Reader, open func() (RowWriter, error), start, count int) error {
	if count < 0 {
		count = max(r.RowCount()-start, 0)
	}
	cols, err := r.ReadChunk(start, count)
	if err != nil {
		return err
	}
	w, err := open()
	if err != nil {
		return err
	}
	if err := w.WriteHeader(r.Headers()); err != nil {
		return err
	}
	if err := w.WriteChunk(start, cols); err != nil {
		return err
	}
	return w.Flush()
}

// To returns an open function for Materialize that yields w.
func To(w RowWriter) func() (RowWriter, error) {
	return func() (RowWriter, error) { return w, nil }
}

// ListField writes one field as a numbered listing, chunk by chunk.
// A negative count means all remaining rows.
func ListField(r *table.Reader, name string, w *ListWriter, start, count int) error {
	cat := r.Catalog()
	f, ok := cat.Field(name)
	if !ok {
		return fmt.Errorf("field %q not found in %s", name, cat.Path())
	}
	if start < 0 {
		return &table.ErrInvalidRange{Start: start, End: start, RowCount: cat.RowCount()}
	}

	end := cat.RowCount()
	if count >= 0 && count < end-start {
		end = start + count
	}
	for pos := start; pos < end; pos += r.ChunkSize() {
		vals, err := cat.ReadRange(f, pos, min(pos+r.ChunkSize(), end))
		if err != nil {
			return err
		}
		if err := w.WriteValues(pos, vals); err != nil {
			return err
		}
	}
	return w.Flush()
}
