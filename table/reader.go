package table

// Columns holds one decoded row range per field, in catalog order.
// All columns have the same length.
type Columns [][]string

// Len returns the number of rows held.
func (c Columns) Len() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

// Reader serves whole-table and chunked reads across all fields of a
// catalog, aligned by row index.
type Reader struct {
	cat       *Catalog
	chunkSize int
}

// NewReader creates a Reader over cat.
func NewReader(cat *Catalog, optFns ...ReaderOption) *Reader {
	o := readerOptions{chunkSize: DefaultChunkSize}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.chunkSize <= 0 {
		o.chunkSize = DefaultChunkSize
	}
	return &Reader{cat: cat, chunkSize: o.chunkSize}
}

// Catalog returns the underlying catalog.
func (r *Reader) Catalog() *Catalog { return r.cat }

// Headers returns the field names in column order.
func (r *Reader) Headers() []string { return r.cat.Headers() }

// RowCount returns the number of rows in the table.
func (r *Reader) RowCount() int { return r.cat.RowCount() }

// ChunkSize returns the configured rows per chunk.
func (r *Reader) ChunkSize() int { return r.chunkSize }

// ReadChunk decodes rows [start, min(start+count, RowCount)) of every field.
// A start at or past the end yields zero-length columns without decoding.
func (r *Reader) ReadChunk(start, count int) (Columns, error) {
	if start < 0 || count < 0 {
		return nil, &ErrInvalidRange{Start: start, End: start + count, RowCount: r.cat.rowCount}
	}
	cols := make(Columns, len(r.cat.fields))
	if start >= r.cat.rowCount {
		for i := range cols {
			cols[i] = []string{}
		}
		return cols, nil
	}

	end := r.cat.rowCount
	if count < end-start {
		end = start + count
	}
	for i, f := range r.cat.fields {
		vals, err := r.cat.ReadRange(f, start, end)
		if err != nil {
			return nil, err
		}
		cols[i] = vals
	}
	return cols, nil
}

// ReadAll decodes every row of every field.
func (r *Reader) ReadAll() (Columns, error) {
	return r.ReadChunk(0, r.cat.rowCount)
}

// Chunks pages through rows [0, RowCount) in ChunkSize steps, strictly in
// order, calling fn with each chunk's first row and columns.
// Iteration stops at the first error from a read or from fn.
func (r *Reader) Chunks(fn func(start int, cols Columns) error) error {
	return r.ChunksFrom(0, r.cat.rowCount, fn)
}

// ChunksFrom pages through at most count rows starting at start.
// A negative count means all remaining rows.
func (r *Reader) ChunksFrom(start, count int, fn func(start int, cols Columns) error) error {
	if start < 0 {
		return &ErrInvalidRange{Start: start, End: start, RowCount: r.cat.rowCount}
	}
	end := r.cat.rowCount
	if count >= 0 && count < end-start {
		end = start + count
	}
	for pos := start; pos < end; pos += r.chunkSize {
		cols, err := r.ReadChunk(pos, min(r.chunkSize, end-pos))
		if err != nil {
			return err
		}
		if err := fn(pos, cols); err != nil {
			return err
		}
	}
	return nil
}
