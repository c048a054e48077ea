package table

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// FieldSummary describes one field for listings.
type FieldSummary struct {
	Name     string   `json:"name"`
	Tag      string   `json:"tag"`
	Encoding Encoding `json:"encoding"`
	// Categories is the size of the category table (categorical only).
	Categories int `json:"categories,omitempty"`
	// UsedCategories is the number of distinct categories referenced by at
	// least one in-range code (categorical only).
	UsedCategories int `json:"used_categories,omitempty"`
	// InvalidCodes counts codes outside the category table, including the
	// -1 missing marker.
	InvalidCodes int `json:"invalid_codes,omitempty"`
}

// Summaries describes every field in column order. It performs no I/O.
func (c *Catalog) Summaries() []FieldSummary {
	out := make([]FieldSummary, len(c.fields))
	for i, f := range c.fields {
		s := FieldSummary{
			Name:     f.Name,
			Tag:      f.Tag,
			Encoding: f.Encoding,
		}
		if f.Encoding == EncodingCategorical {
			s.Categories = len(f.Categories)
			used, invalid := usedCategories(f)
			s.UsedCategories = int(used.GetCardinality())
			s.InvalidCodes = invalid
		}
		out[i] = s
	}
	return out
}

// usedCategories returns the set of referenced category indexes and the
// number of codes that reference no category.
func usedCategories(f *Field) (*roaring.Bitmap, int) {
	rb := roaring.New()
	invalid := 0
	for _, code := range f.Codes {
		if code < 0 || code >= int64(len(f.Categories)) {
			invalid++
			continue
		}
		rb.Add(uint32(code))
	}
	return rb, invalid
}
