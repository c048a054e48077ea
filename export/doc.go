// Package export renders decoded table columns.
//
// Decoding yields one value range per field (table.Columns). Rows projects
// that into row-major records; the writers in this package emit them as:
//
//   - tab-separated text with a header row (TSV)
//   - CSV with a header row
//   - an aligned, boxed table for terminals (Pretty)
//   - one JSON object per row (JSONL), encoded by a codec.Codec
//   - a numbered single-column listing ("<1-based-index>: <value>")
//
// Output may be compressed with gzip, zstd or lz4 (see NewCompressor).
package export

import "github.com/hupe1980/adview/table"

// Rows transposes cols into row-major records by zipping index i across
// all columns. Rows are as long as the shortest column.
func Rows(cols table.Columns) [][]string {
	if len(cols) == 0 {
		return nil
	}
	n := len(cols[0])
	for _, c := range cols[1:] {
		n = min(n, len(c))
	}
	rows := make([][]string, n)
	for i := range rows {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = c[i]
		}
		rows[i] = row
	}
	return rows
}
