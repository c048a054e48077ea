package table

import (
	"errors"

	"github.com/hupe1980/adview/container"
)

const (
	categoriesDataset = "categories"
	codesDataset      = "codes"
)

// Field is one named column of a table.
type Field struct {
	Name string
	// Tag is the raw encoding-type attribute.
	Tag      string
	Encoding Encoding

	// Categories and Codes are set for categorical fields only.
	Categories []string
	Codes      []int64

	ds container.Dataset
}

// Catalog describes the fields of one table group.
// It is read-only after Build.
type Catalog struct {
	path     string
	group    container.Group
	fields   []*Field
	rowCount int
}

// member is the result of resolving a member name: exactly one of ds and
// g is set.
type member struct {
	ds container.Dataset
	g  container.Group
}

func (p member) node() container.Node {
	if p.ds != nil {
		return p.ds
	}
	return p.g
}

// resolve opens name as a dataset and falls back to a group when no
// dataset of that name exists.
func resolve(g container.Group, name string) (member, error) {
	ds, err := g.Dataset(name)
	if err == nil {
		return member{ds: ds}, nil
	}
	if !errors.Is(err, container.ErrNotFound) {
		return member{}, err
	}
	sub, err := g.Group(name)
	if err != nil {
		return member{}, err
	}
	return member{g: sub}, nil
}

// Build catalogs the table group at path.
//
// Field order is the container's member order. The row count is taken
// from the first field: its length, or the length of its codes dataset when
// it is a group. Categorical fields have their categories and codes read
// in full. Any error aborts construction.
func Build(c container.Container, path string, optFns ...Option) (*Catalog, error) {
	o := applyOptions(optFns)

	g, err := c.Group(path)
	if err != nil {
		return nil, err
	}
	names, err := g.Children()
	if err != nil {
		return nil, container.NewReadFailure(g.Path(), err)
	}

	cat := &Catalog{
		path:   g.Path(),
		group:  g,
		fields: make([]*Field, 0, len(names)),
	}

	for i, name := range names {
		p, err := resolve(g, name)
		if err != nil {
			return nil, fieldError(name, err)
		}

		tag, err := p.node().Attr(EncodingTypeAttr)
		if err != nil {
			return nil, fieldError(name, err)
		}

		f := &Field{
			Name:     name,
			Tag:      tag,
			Encoding: ParseEncoding(tag),
			ds:       p.ds,
		}

		if f.Encoding == EncodingCategorical {
			if err := loadCategorical(g, f); err != nil {
				return nil, fieldError(name, err)
			}
		}

		if i == 0 || o.strictRowCount {
			n, err := fieldLen(p, f)
			if err != nil {
				return nil, fieldError(name, err)
			}
			if i == 0 {
				cat.rowCount = n
			} else if n != cat.rowCount {
				return nil, &ErrRowCountMismatch{Field: name, Expected: cat.rowCount, Actual: n}
			}
		}

		cat.fields = append(cat.fields, f)
	}

	return cat, nil
}

func fieldLen(p member, f *Field) (int, error) {
	if p.ds != nil {
		return p.ds.Len()
	}
	if f.Codes != nil {
		return len(f.Codes), nil
	}
	codes, err := p.g.Dataset(codesDataset)
	if err != nil {
		return 0, err
	}
	return codes.Len()
}

func loadCategorical(parent container.Group, f *Field) error {
	sub, err := parent.Group(f.Name)
	if err != nil {
		return err
	}

	catDS, err := sub.Dataset(categoriesDataset)
	if err != nil {
		return err
	}
	n, err := catDS.Len()
	if err != nil {
		return err
	}
	categories, err := catDS.ReadStrings(0, n)
	if err != nil {
		return err
	}

	codesDS, err := sub.Dataset(codesDataset)
	if err != nil {
		return err
	}
	n, err = codesDS.Len()
	if err != nil {
		return err
	}
	codes, err := codesDS.ReadInts(0, n)
	if err != nil {
		return err
	}

	f.Categories = categories
	f.Codes = codes
	return nil
}

// Path returns the absolute path of the table group.
func (c *Catalog) Path() string { return c.path }

// RowCount returns the number of rows, as recorded from the first field.
func (c *Catalog) RowCount() int { return c.rowCount }

// Fields returns the fields in column order.
// The returned slice must not be modified.
func (c *Catalog) Fields() []*Field { return c.fields }

// Field returns the named field.
func (c *Catalog) Field(name string) (*Field, bool) {
	for _, f := range c.fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Headers returns the field names in column order.
func (c *Catalog) Headers() []string {
	names := make([]string, len(c.fields))
	for i, f := range c.fields {
		names[i] = f.Name
	}
	return names
}
