package container

import (
	"fmt"
	"strings"
)

// MemoryContainer is an in-memory Container implementation for testing.
// It stores groups and datasets without any filesystem dependency.
// Members are listed in insertion order.
type MemoryContainer struct {
	root   *MemoryGroup
	closed bool
}

// NewMemoryContainer creates an empty container with a root group.
func NewMemoryContainer() *MemoryContainer {
	return &MemoryContainer{root: newMemoryGroup("/")}
}

// Root returns the root group.
func (m *MemoryContainer) Root() *MemoryGroup {
	return m.root
}

// Group opens the group at path.
func (m *MemoryContainer) Group(path string) (Group, error) {
	g, err := m.lookup(path)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (m *MemoryContainer) lookup(path string) (*MemoryGroup, error) {
	if m.closed {
		return nil, NewReadFailure(path, fmt.Errorf("container closed"))
	}
	g := m.root
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if part == "" {
			continue
		}
		sub, ok := g.groups[part]
		if !ok {
			return nil, &ErrGroupNotFound{Path: Join(path)}
		}
		g = sub
	}
	return g, nil
}

// Close marks the container closed. Subsequent lookups fail.
func (m *MemoryContainer) Close() error {
	m.closed = true
	return nil
}

type attrs map[string]any

func (a attrs) read(path, key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", &ErrAttributeMissing{Path: path, Key: key}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ErrAttributeTypeMismatch{Path: path, Key: key, Type: fmt.Sprintf("%T", v)}
	}
	return s, nil
}

// MemoryGroup is a group in a MemoryContainer.
type MemoryGroup struct {
	path     string
	attrs    attrs
	order    []string
	groups   map[string]*MemoryGroup
	datasets map[string]*MemoryDataset
}

func newMemoryGroup(path string) *MemoryGroup {
	return &MemoryGroup{
		path:     path,
		attrs:    make(attrs),
		groups:   make(map[string]*MemoryGroup),
		datasets: make(map[string]*MemoryDataset),
	}
}

// Path returns the absolute path of the group.
func (g *MemoryGroup) Path() string { return g.path }

// Attr reads a string attribute.
func (g *MemoryGroup) Attr(key string) (string, error) {
	return g.attrs.read(g.path, key)
}

// SetAttr stores an attribute. Non-string values read back as
// *ErrAttributeTypeMismatch.
func (g *MemoryGroup) SetAttr(key string, v any) *MemoryGroup {
	g.attrs[key] = v
	return g
}

// Children returns member names in insertion order.
func (g *MemoryGroup) Children() ([]string, error) {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out, nil
}

// Dataset opens a member dataset.
func (g *MemoryGroup) Dataset(name string) (Dataset, error) {
	d, ok := g.datasets[name]
	if !ok {
		return nil, &ErrDatasetNotFound{Path: Join(g.path, name)}
	}
	return d, nil
}

// Group opens a member group.
func (g *MemoryGroup) Group(name string) (Group, error) {
	sub, ok := g.groups[name]
	if !ok {
		return nil, &ErrGroupNotFound{Path: Join(g.path, name)}
	}
	return sub, nil
}

// AddGroup creates (or returns the existing) sub-group name.
func (g *MemoryGroup) AddGroup(name string) *MemoryGroup {
	if sub, ok := g.groups[name]; ok {
		return sub
	}
	sub := newMemoryGroup(Join(g.path, name))
	g.groups[name] = sub
	g.order = append(g.order, name)
	return sub
}

// AddStrings creates a variable-length string dataset.
func (g *MemoryGroup) AddStrings(name string, values []string) *MemoryDataset {
	d := g.addDataset(name)
	d.strings = append([]string(nil), values...)
	d.n = len(values)
	return d
}

// AddInts creates an integer dataset.
func (g *MemoryGroup) AddInts(name string, values []int64) *MemoryDataset {
	d := g.addDataset(name)
	d.ints = append([]int64(nil), values...)
	d.n = len(values)
	return d
}

func (g *MemoryGroup) addDataset(name string) *MemoryDataset {
	d := &MemoryDataset{path: Join(g.path, name), attrs: make(attrs)}
	if _, ok := g.datasets[name]; !ok {
		g.order = append(g.order, name)
	}
	g.datasets[name] = d
	return d
}

// MemoryDataset is a dataset in a MemoryContainer.
type MemoryDataset struct {
	path    string
	attrs   attrs
	n       int
	strings []string
	ints    []int64
	failure error
	reads   int
}

// Path returns the absolute path of the dataset.
func (d *MemoryDataset) Path() string { return d.path }

// Attr reads a string attribute.
func (d *MemoryDataset) Attr(key string) (string, error) {
	return d.attrs.read(d.path, key)
}

// SetAttr stores an attribute.
func (d *MemoryDataset) SetAttr(key string, v any) *MemoryDataset {
	d.attrs[key] = v
	return d
}

// FailWith makes every subsequent read return err wrapped as *ErrReadFailure.
func (d *MemoryDataset) FailWith(err error) *MemoryDataset {
	d.failure = err
	return d
}

// Reads returns the number of slice reads served so far.
func (d *MemoryDataset) Reads() int { return d.reads }

// Len returns the number of elements.
func (d *MemoryDataset) Len() (int, error) {
	return d.n, nil
}

// ReadStrings reads [start, end) as strings. Integer datasets are
// formatted in decimal, matching how HDF5 converts on read.
func (d *MemoryDataset) ReadStrings(start, end int) ([]string, error) {
	if err := d.beginRead(start, end); err != nil {
		return nil, err
	}
	if d.strings == nil && d.ints != nil {
		return nil, NewReadFailure(d.path, fmt.Errorf("integer dataset read as string"))
	}
	out := make([]string, end-start)
	copy(out, d.strings[start:end])
	return out, nil
}

// ReadInts reads [start, end) as integers.
func (d *MemoryDataset) ReadInts(start, end int) ([]int64, error) {
	if err := d.beginRead(start, end); err != nil {
		return nil, err
	}
	if d.ints == nil && d.strings != nil {
		return nil, NewReadFailure(d.path, fmt.Errorf("string dataset read as integer"))
	}
	out := make([]int64, end-start)
	copy(out, d.ints[start:end])
	return out, nil
}

func (d *MemoryDataset) beginRead(start, end int) error {
	d.reads++
	if d.failure != nil {
		return NewReadFailure(d.path, d.failure)
	}
	return CheckRange(d.path, start, end, d.n)
}
