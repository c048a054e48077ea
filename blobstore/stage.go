package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/hupe1980/adview/internal/fs"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	defaultPartSize    = 8 << 20
	defaultConcurrency = 8
)

// Staged is a blob available as a local file.
type Staged struct {
	// Path is the local file path.
	Path string
	// Size is the blob size in bytes.
	Size int64
	// Temp reports whether Path is a temporary copy removed by Close.
	Temp bool

	fsys fs.FileSystem
}

// Close removes the temporary copy, if any.
func (s *Staged) Close() error {
	if s == nil || !s.Temp {
		return nil
	}
	fsys := s.fsys
	if fsys == nil {
		fsys = fs.Default
	}
	err := fsys.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

type stageOptions struct {
	dir         string
	partSize    int64
	concurrency int
	ioLimit     int64
	fsys        fs.FileSystem
}

// StageOption configures Stage.
type StageOption func(*stageOptions)

// WithStageDir sets the directory for temporary copies (default os.TempDir).
func WithStageDir(dir string) StageOption {
	return func(o *stageOptions) {
		o.dir = dir
	}
}

// WithPartSize sets the size of each ranged read.
func WithPartSize(n int64) StageOption {
	return func(o *stageOptions) {
		o.partSize = n
	}
}

// WithConcurrency limits the number of ranged reads in flight.
func WithConcurrency(n int) StageOption {
	return func(o *stageOptions) {
		o.concurrency = n
	}
}

// WithIOLimit caps staging throughput in bytes per second. 0 is unlimited.
func WithIOLimit(bytesPerSec int64) StageOption {
	return func(o *stageOptions) {
		o.ioLimit = bytesPerSec
	}
}

func withFileSystem(fsys fs.FileSystem) StageOption {
	return func(o *stageOptions) {
		o.fsys = fsys
	}
}

// Stage makes the blob name available as a local file.
//
// Stores implementing Localizer are used in place. Stores implementing
// Downloader download into a temporary file. Everything else is copied
// with parallel ranged reads.
func Stage(ctx context.Context, store BlobStore, name string, optFns ...StageOption) (*Staged, error) {
	o := stageOptions{
		partSize:    defaultPartSize,
		concurrency: defaultConcurrency,
		fsys:        fs.Default,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.partSize <= 0 {
		o.partSize = defaultPartSize
	}
	if o.concurrency <= 0 {
		o.concurrency = 1
	}
	if o.fsys == nil {
		o.fsys = fs.Default
	}

	if l, ok := store.(Localizer); ok {
		if p, ok := l.LocalPath(name); ok {
			fi, err := o.fsys.Stat(p)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return nil, ErrNotFound
				}
				return nil, err
			}
			return &Staged{Path: p, Size: fi.Size()}, nil
		}
	}

	f, err := o.fsys.CreateTemp(o.dir, "adview-*-"+path.Base(name))
	if err != nil {
		return nil, err
	}
	staged := &Staged{Path: f.Name(), Temp: true, fsys: o.fsys}

	if d, ok := store.(Downloader); ok {
		staged.Size, err = d.Download(ctx, name, f)
	} else {
		staged.Size, err = copyRanges(ctx, store, name, f, o)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = staged.Close()
		return nil, err
	}
	return staged, nil
}

func copyRanges(ctx context.Context, store BlobStore, name string, w io.WriterAt, o stageOptions) (int64, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return 0, err
	}
	defer func() { _ = blob.Close() }()

	var limiter *rate.Limiter
	if o.ioLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(o.ioLimit), int(max(o.ioLimit, o.partSize)))
	}

	size := blob.Size()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for off := int64(0); off < size; off += o.partSize {
		n := min(o.partSize, size-off)
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.WaitN(gctx, int(n)); err != nil {
					return err
				}
			}
			buf := make([]byte, n)
			read, err := blob.ReadAt(gctx, buf, off)
			if err != nil && !(errors.Is(err, io.EOF) && int64(read) == n) {
				return fmt.Errorf("read %s at %d: %w", name, off, err)
			}
			if int64(read) != n {
				return fmt.Errorf("read %s at %d: short read (%d of %d bytes)", name, off, read, n)
			}
			_, err = w.WriteAt(buf, off)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return size, nil
}
