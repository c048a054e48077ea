package hdf5

import (
	"encoding/binary"
	"fmt"
	"path"

	"github.com/hupe1980/adview/container"
	"github.com/hupe1980/adview/internal/conv"
	"github.com/scigolib/hdf5"
)

// File is a container.Container over an HDF5 file.
type File struct {
	f       *hdf5.File
	name    string
	objects map[string]hdf5.Object
}

var _ container.Container = (*File)(nil)

// Open opens the HDF5 file at name and indexes its objects by path.
func Open(name string) (*File, error) {
	f, err := hdf5.Open(name)
	if err != nil {
		return nil, container.NewReadFailure(name, err)
	}

	file := &File{
		f:       f,
		name:    name,
		objects: make(map[string]hdf5.Object),
	}
	f.Walk(func(p string, obj hdf5.Object) {
		file.objects[container.Join(p)] = obj
	})
	return file, nil
}

// Name returns the file name the container was opened from.
func (f *File) Name() string { return f.name }

// Group opens the group at p.
func (f *File) Group(p string) (container.Group, error) {
	p = container.Join(p)
	g, ok := f.objects[p].(*hdf5.Group)
	if !ok {
		return nil, &container.ErrGroupNotFound{Path: p}
	}
	return &group{file: f, path: p, g: g}, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

func (f *File) heap() *heapReader {
	sb := f.f.Superblock()
	return newHeapReader(f.f.Reader(), int(sb.OffsetSize), int(sb.LengthSize))
}

// attrText converts a raw attribute to text. Variable-length strings are
// resolved through the global heap; everything else goes through the
// library's decoder.
func (f *File) attrText(p, key string, vlen bool, data []byte, read func() (interface{}, error)) (string, error) {
	if vlen {
		s, err := f.heap().element(data)
		if err != nil {
			return "", container.NewReadFailure(p, fmt.Errorf("attribute %q: %w", key, err))
		}
		return string(s), nil
	}
	v, err := read()
	if err != nil {
		return "", &container.ErrAttributeTypeMismatch{Path: p, Key: key, Type: err.Error()}
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case []string:
		if len(s) == 1 {
			return s[0], nil
		}
	}
	return "", &container.ErrAttributeTypeMismatch{Path: p, Key: key, Type: fmt.Sprintf("%T", v)}
}

type group struct {
	file *File
	path string
	g    *hdf5.Group
}

func (g *group) Path() string { return g.path }

func (g *group) Attr(key string) (string, error) {
	attrs, err := g.g.Attributes()
	if err != nil {
		return "", container.NewReadFailure(g.path, err)
	}
	for _, a := range attrs {
		if a == nil || a.Name != key {
			continue
		}
		vlen := a.Datatype != nil && a.Datatype.IsVariableString()
		return g.file.attrText(g.path, key, vlen, a.Data, a.ReadValue)
	}
	return "", &container.ErrAttributeMissing{Path: g.path, Key: key}
}

func (g *group) Children() ([]string, error) {
	children := g.g.Children()
	names := make([]string, 0, len(children))
	for _, child := range children {
		names = append(names, path.Base(child.Name()))
	}
	return names, nil
}

func (g *group) Dataset(name string) (container.Dataset, error) {
	p := container.Join(g.path, name)
	ds, ok := g.file.objects[p].(*hdf5.Dataset)
	if !ok {
		return nil, &container.ErrDatasetNotFound{Path: p}
	}
	return &dataset{file: g.file, path: p, ds: ds}, nil
}

func (g *group) Group(name string) (container.Group, error) {
	return g.file.Group(container.Join(g.path, name))
}

type dataset struct {
	file   *File
	path   string
	ds     *hdf5.Dataset
	layout *layout
}

func (d *dataset) Path() string { return d.path }

func (d *dataset) Attr(key string) (string, error) {
	attrs, err := d.ds.Attributes()
	if err != nil {
		return "", container.NewReadFailure(d.path, err)
	}
	for _, a := range attrs {
		if a == nil || a.Name != key {
			continue
		}
		vlen := a.Datatype != nil && a.Datatype.IsVariableString()
		return d.file.attrText(d.path, key, vlen, a.Data, a.ReadValue)
	}
	return "", &container.ErrAttributeMissing{Path: d.path, Key: key}
}

func (d *dataset) describe() (*layout, error) {
	if d.layout != nil {
		return d.layout, nil
	}
	info, err := d.ds.Info()
	if err != nil {
		return nil, container.NewReadFailure(d.path, err)
	}
	l, err := parseInfo(info)
	if err != nil {
		return nil, container.NewReadFailure(d.path, err)
	}
	d.layout = l
	return l, nil
}

// Len reports shape[0] from the dataspace.
func (d *dataset) Len() (int, error) {
	l, err := d.describe()
	if err != nil {
		return 0, err
	}
	n, err := conv.Uint64ToInt(l.dims[0])
	if err != nil {
		return 0, container.NewReadFailure(d.path, err)
	}
	return n, nil
}

func (d *dataset) checkRange(start, end int) (*layout, error) {
	l, err := d.describe()
	if err != nil {
		return nil, err
	}
	n, err := d.Len()
	if err != nil {
		return nil, err
	}
	return l, container.CheckRange(d.path, start, end, n)
}

// ReadStrings reads [start, end). Contiguous variable-length strings are
// read element by element; fixed-length strings are read in full and
// sliced.
func (d *dataset) ReadStrings(start, end int) ([]string, error) {
	l, err := d.checkRange(start, end)
	if err != nil {
		return nil, err
	}
	if start == end {
		return []string{}, nil
	}

	switch {
	case l.class == classVarLen && l.contiguous:
		raw, err := d.readRaw(l, start, end)
		if err != nil {
			return nil, err
		}
		heap := d.file.heap()
		out := make([]string, end-start)
		for i := range out {
			s, err := heap.element(raw[i*l.size : (i+1)*l.size])
			if err != nil {
				return nil, container.NewReadFailure(d.path, fmt.Errorf("element %d: %w", start+i, err))
			}
			out[i] = string(s)
		}
		return out, nil
	case l.class == classVarLen:
		return nil, container.NewReadFailure(d.path, fmt.Errorf("variable-length strings are only readable from contiguous storage"))
	case l.class == classString:
		vals, err := d.ds.ReadStrings()
		if err != nil {
			return nil, container.NewReadFailure(d.path, err)
		}
		if err := container.CheckRange(d.path, start, end, len(vals)); err != nil {
			return nil, err
		}
		out := make([]string, end-start)
		copy(out, vals[start:end])
		return out, nil
	default:
		return nil, container.NewReadFailure(d.path, fmt.Errorf("not a string dataset: %s (size=%d)", l.class, l.size))
	}
}

// ReadInts reads [start, end). Contiguous integers are decoded from their
// stored bytes; anything else goes through a hyperslab read, which the
// library returns as float64.
func (d *dataset) ReadInts(start, end int) ([]int64, error) {
	l, err := d.checkRange(start, end)
	if err != nil {
		return nil, err
	}
	if start == end {
		return []int64{}, nil
	}

	if l.class == classInteger && l.contiguous {
		raw, err := d.readRaw(l, start, end)
		if err != nil {
			return nil, err
		}
		vals, err := decodeInts(raw, l.size)
		if err != nil {
			return nil, container.NewReadFailure(d.path, err)
		}
		return vals, nil
	}
	if l.class != classInteger && l.class != classFloat {
		return nil, container.NewReadFailure(d.path, fmt.Errorf("not a numeric dataset: %s (size=%d)", l.class, l.size))
	}

	off, err := conv.IntToUint64(start)
	if err != nil {
		return nil, container.CheckRange(d.path, start, end, 0)
	}
	raw, err := d.ds.ReadSlice([]uint64{off}, []uint64{uint64(end - start)})
	if err != nil {
		return nil, container.NewReadFailure(d.path, err)
	}
	return toInt64s(d.path, raw)
}

// readRaw reads the stored bytes of elements [start, end) of a contiguous
// one dimensional dataset.
func (d *dataset) readRaw(l *layout, start, end int) ([]byte, error) {
	if len(l.dims) != 1 {
		return nil, container.NewReadFailure(d.path, fmt.Errorf("expected 1 dimension, got %d", len(l.dims)))
	}
	first, err := conv.IntToUint64(start * l.size)
	if err != nil {
		return nil, container.NewReadFailure(d.path, err)
	}
	off, err := conv.Uint64ToInt64(l.address + first)
	if err != nil {
		return nil, container.NewReadFailure(d.path, err)
	}
	buf := make([]byte, (end-start)*l.size)
	if _, err := d.file.f.Reader().ReadAt(buf, off); err != nil {
		return nil, container.NewReadFailure(d.path, err)
	}
	return buf, nil
}

// decodeInts decodes little-endian signed integers of the given width.
func decodeInts(raw []byte, size int) ([]int64, error) {
	if size <= 0 || len(raw)%size != 0 {
		return nil, fmt.Errorf("%d bytes do not hold %d-byte integers", len(raw), size)
	}
	out := make([]int64, len(raw)/size)
	for i := range out {
		b := raw[i*size : (i+1)*size]
		switch size {
		case 1:
			out[i] = int64(int8(b[0]))
		case 2:
			out[i] = int64(int16(binary.LittleEndian.Uint16(b)))
		case 4:
			out[i] = int64(int32(binary.LittleEndian.Uint32(b)))
		case 8:
			out[i] = int64(binary.LittleEndian.Uint64(b))
		default:
			return nil, fmt.Errorf("unsupported integer width %d", size)
		}
	}
	return out, nil
}

// toInt64s converts a hyperslab result. Values the float64 path may have
// rounded are rejected.
func toInt64s(p string, raw interface{}) ([]int64, error) {
	switch v := raw.(type) {
	case []int64:
		return v, nil
	case []float64:
		out := make([]int64, len(v))
		for i, x := range v {
			n, err := conv.ExactFloat64ToInt64(x)
			if err != nil {
				return nil, container.NewReadFailure(p, err)
			}
			out[i] = n
		}
		return out, nil
	default:
		return nil, container.NewReadFailure(p, fmt.Errorf("unsupported element type %T", raw))
	}
}
