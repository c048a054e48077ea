package table

import (
	"strconv"

	"github.com/hupe1980/adview/container"
)

// ReadRange decodes rows [start, end) of f.
//
// String and integer columns are read from the container on every call.
// Categorical columns are decoded from the codes loaded by Build and never
// touch the container. No partial result is returned on error.
func (c *Catalog) ReadRange(f *Field, start, end int) ([]string, error) {
	if start < 0 || end < start || end > c.rowCount {
		return nil, &ErrInvalidRange{Start: start, End: end, RowCount: c.rowCount}
	}

	switch f.Encoding {
	case EncodingStringArray:
		ds, err := c.dataset(f)
		if err != nil {
			return nil, err
		}
		vals, err := ds.ReadStrings(start, end)
		if err != nil {
			return nil, fieldError(f.Name, err)
		}
		return vals, nil

	case EncodingCategorical:
		return decodeCategorical(f, start, end)

	case EncodingIntArray:
		ds, err := c.dataset(f)
		if err != nil {
			return nil, err
		}
		ints, err := ds.ReadInts(start, end)
		if err != nil {
			return nil, fieldError(f.Name, err)
		}
		out := make([]string, len(ints))
		for i, n := range ints {
			out[i] = strconv.FormatInt(n, 10)
		}
		return out, nil

	default:
		return nil, &ErrUnsupportedEncoding{Tag: f.Tag, Field: f.Name}
	}
}

// dataset returns the dataset backing a string or integer field.
func (c *Catalog) dataset(f *Field) (container.Dataset, error) {
	if f.ds != nil {
		return f.ds, nil
	}
	return nil, fieldError(f.Name, &container.ErrDatasetNotFound{Path: container.Join(c.path, f.Name)})
}

func decodeCategorical(f *Field, start, end int) ([]string, error) {
	if end > len(f.Codes) {
		return nil, fieldError(f.Name, &container.ErrOutOfBounds{
			Path:  container.Join(f.Name, codesDataset),
			Start: start,
			End:   end,
			Len:   len(f.Codes),
		})
	}
	out := make([]string, end-start)
	for i, code := range f.Codes[start:end] {
		if code < 0 || code >= int64(len(f.Categories)) {
			return nil, &ErrOutOfRangeCategory{Field: f.Name, Code: code, Categories: len(f.Categories)}
		}
		out[i] = f.Categories[code]
	}
	return out, nil
}
