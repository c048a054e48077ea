package adview

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hupe1980/adview/blobstore"
	"github.com/hupe1980/adview/container"
	"github.com/hupe1980/adview/table"
)

// Table group names.
const (
	Obs = "obs"
	Var = "var"
)

// IndexAttr names the attribute of a table group that holds the name of
// its index dataset.
const IndexAttr = "_index"

// File is an opened AnnData file.
type File struct {
	source string
	c      container.Container
	staged *blobstore.Staged
	opts   options
	closed bool
}

// Open opens a local file.
func Open(path string, optFns ...Option) (*File, error) {
	o := applyOptions(optFns)
	return openLocal(context.Background(), path, o)
}

// OpenURI opens a local path, file://path, s3://bucket/key or
// minio://host[:port]/bucket/key. Remote objects are copied to a temporary
// file first, which Close removes.
func OpenURI(ctx context.Context, uri string, optFns ...Option) (*File, error) {
	o := applyOptions(optFns)

	src, err := ParseSource(uri)
	if err != nil {
		return nil, err
	}
	if !src.Remote() {
		return openLocal(ctx, src.Path, o)
	}

	store, err := o.store(ctx, src)
	if err != nil {
		o.logger.LogOpen(ctx, src.String(), err)
		return nil, err
	}
	return openBlob(ctx, store, src.Key, src.String(), o)
}

// OpenBlob stages name from store and opens it.
func OpenBlob(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*File, error) {
	return openBlob(ctx, store, name, name, applyOptions(optFns))
}

// NewFile wraps an already opened container. Close closes c.
func NewFile(c container.Container, optFns ...Option) *File {
	return newFile("container", c, nil, applyOptions(optFns))
}

// newFile scopes the logger of o to source.
func newFile(source string, c container.Container, staged *blobstore.Staged, o options) *File {
	o.logger = o.logger.WithSource(source)
	return &File{source: source, c: c, staged: staged, opts: o}
}

func openLocal(ctx context.Context, path string, o options) (*File, error) {
	if _, err := os.Stat(path); err != nil {
		err = translateError(err)
		o.logger.LogOpen(ctx, path, err)
		return nil, err
	}
	c, err := o.opener(path)
	o.logger.LogOpen(ctx, path, err)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, translateError(err))
	}
	return newFile(path, c, nil, o), nil
}

func openBlob(ctx context.Context, store blobstore.BlobStore, name, source string, o options) (*File, error) {
	begin := time.Now()
	staged, err := blobstore.Stage(ctx, store, name, o.stageOpts...)
	if err != nil {
		err = translateError(err)
		o.metrics.RecordStage(0, time.Since(begin), err)
		o.logger.LogStage(ctx, source, 0, false, err)
		return nil, fmt.Errorf("stage %s: %w", source, err)
	}
	o.metrics.RecordStage(staged.Size, time.Since(begin), nil)
	o.logger.LogStage(ctx, source, staged.Size, staged.Temp, nil)

	c, err := o.opener(staged.Path)
	o.logger.LogOpen(ctx, source, err)
	if err != nil {
		_ = staged.Close()
		return nil, fmt.Errorf("open %s: %w", source, translateError(err))
	}
	return newFile(source, c, staged, o), nil
}

// Source returns the location the file was opened from.
func (f *File) Source() string { return f.source }

// Container returns the underlying container.
func (f *File) Container() container.Container { return f.c }

// Catalog builds the catalog of the named table group.
func (f *File) Catalog(name string) (*table.Catalog, error) {
	if f.closed {
		return nil, ErrClosed
	}
	ctx := context.Background()
	begin := time.Now()
	cat, err := table.Build(f.c, name, f.opts.catalogOpts...)
	if err != nil {
		err = translateError(err)
		f.opts.metrics.RecordCatalog(0, time.Since(begin), err)
		f.opts.logger.LogCatalog(ctx, name, 0, 0, err)
		return nil, err
	}
	f.opts.metrics.RecordCatalog(len(cat.Fields()), time.Since(begin), nil)
	f.opts.logger.LogCatalog(ctx, name, len(cat.Fields()), cat.RowCount(), nil)
	return cat, nil
}

// Table returns a reader over the named table group.
func (f *File) Table(name string) (*table.Reader, error) {
	cat, err := f.Catalog(name)
	if err != nil {
		return nil, err
	}
	return table.NewReader(cat, f.opts.readerOpts...), nil
}

// Obs returns a reader over the observation table.
func (f *File) Obs() (*table.Reader, error) { return f.Table(Obs) }

// Var returns a reader over the variable table.
func (f *File) Var() (*table.Reader, error) { return f.Table(Var) }

// Shape holds the row counts of the obs and var tables.
type Shape struct {
	Obs int
	Var int
}

// Shape returns the length of the index dataset of obs and var.
func (f *File) Shape() (Shape, error) {
	obs, err := f.IndexLen(Obs)
	if err != nil {
		return Shape{}, err
	}
	v, err := f.IndexLen(Var)
	if err != nil {
		return Shape{}, err
	}
	return Shape{Obs: obs, Var: v}, nil
}

// IndexLen returns the length of the dataset named by the IndexAttr
// attribute of the named table group.
func (f *File) IndexLen(name string) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	g, err := f.c.Group(name)
	if err != nil {
		return 0, translateError(err)
	}
	idx, err := g.Attr(IndexAttr)
	if err != nil {
		return 0, translateError(err)
	}
	ds, err := g.Dataset(idx)
	if err != nil {
		return 0, translateError(err)
	}
	n, err := ds.Len()
	if err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

// Fields describes the fields of the named table group in column order.
func (f *File) Fields(name string) ([]table.FieldSummary, error) {
	cat, err := f.Catalog(name)
	if err != nil {
		return nil, err
	}
	return cat.Summaries(), nil
}
