package table

type options struct {
	strictRowCount bool
}

// Option configures catalog construction.
type Option func(*options)

// WithStrictRowCount makes Build verify that every field has the same
// number of rows as the first field. By default only the first field's
// length is consulted and later fields are trusted.
func WithStrictRowCount() Option {
	return func(o *options) {
		o.strictRowCount = true
	}
}

func applyOptions(optFns []Option) options {
	var o options
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// DefaultChunkSize is the number of rows per chunk used by Reader.Chunks.
const DefaultChunkSize = 1000

type readerOptions struct {
	chunkSize int
}

// ReaderOption configures a Reader.
type ReaderOption func(*readerOptions)

// WithChunkSize sets the number of rows decoded per chunk.
// Values <= 0 select DefaultChunkSize.
func WithChunkSize(n int) ReaderOption {
	return func(o *readerOptions) {
		o.chunkSize = n
	}
}
