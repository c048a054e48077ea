package adview

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/adview/blobstore"
	"github.com/hupe1980/adview/container"
	"github.com/hupe1980/adview/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnnData() *container.MemoryContainer {
	c := container.NewMemoryContainer()

	obs := c.Root().AddGroup("obs").SetAttr(IndexAttr, "cell_id")
	obs.AddStrings("cell_id", []string{"AAAC-1", "AAAG-1", "AACT-1"}).
		SetAttr(table.EncodingTypeAttr, table.TagStringArray)
	ct := obs.AddGroup("cell_type").SetAttr(table.EncodingTypeAttr, table.TagCategorical)
	ct.AddStrings("categories", []string{"B", "NK", "T"})
	ct.AddInts("codes", []int64{2, 2, 0})
	obs.AddInts("n_genes", []int64{781, 1352, 1131}).
		SetAttr(table.EncodingTypeAttr, table.TagArray)

	v := c.Root().AddGroup("var").SetAttr(IndexAttr, "gene_ids")
	v.AddStrings("gene_ids", []string{"MIR1302-10", "FAM138A"}).
		SetAttr(table.EncodingTypeAttr, table.TagStringArray)
	v.AddStrings("layout", []string{"x", "y"}).
		SetAttr(table.EncodingTypeAttr, "dataframe")

	return c
}

func TestFile(t *testing.T) {
	t.Run("Obs", func(t *testing.T) {
		f := NewFile(newAnnData())
		defer f.Close()

		r, err := f.Obs()
		require.NoError(t, err)
		assert.Equal(t, []string{"cell_id", "cell_type", "n_genes"}, r.Headers())

		cols, err := r.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, table.Columns{
			{"AAAC-1", "AAAG-1", "AACT-1"},
			{"T", "T", "B"},
			{"781", "1352", "1131"},
		}, cols)
	})

	t.Run("ChunkSize", func(t *testing.T) {
		f := NewFile(newAnnData(), WithChunkSize(2))
		r, err := f.Obs()
		require.NoError(t, err)
		assert.Equal(t, 2, r.ChunkSize())
	})

	t.Run("Var", func(t *testing.T) {
		f := NewFile(newAnnData())
		r, err := f.Var()
		require.NoError(t, err)
		assert.Equal(t, 2, r.RowCount())

		_, err = r.ReadAll()
		var ue *table.ErrUnsupportedEncoding
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, "dataframe", ue.Tag)
	})

	t.Run("Shape", func(t *testing.T) {
		f := NewFile(newAnnData())
		s, err := f.Shape()
		require.NoError(t, err)
		assert.Equal(t, Shape{Obs: 3, Var: 2}, s)
	})

	t.Run("ShapeMissingIndex", func(t *testing.T) {
		c := newAnnData()
		c.Root().AddGroup("uns")
		f := NewFile(c)
		_, err := f.IndexLen("uns")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = f.IndexLen("layers")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Fields", func(t *testing.T) {
		f := NewFile(newAnnData())
		fs, err := f.Fields(Obs)
		require.NoError(t, err)
		require.Len(t, fs, 3)
		assert.Equal(t, "cell_type", fs[1].Name)
		assert.Equal(t, table.EncodingCategorical, fs[1].Encoding)
		assert.Equal(t, 3, fs[1].Categories)
		assert.Equal(t, 2, fs[1].UsedCategories)

		fs, err = f.Fields(Var)
		require.NoError(t, err)
		assert.Equal(t, "dataframe", fs[1].Tag)
		assert.Equal(t, table.EncodingUnknown, fs[1].Encoding)
	})

	t.Run("MissingTable", func(t *testing.T) {
		f := NewFile(newAnnData())
		_, err := f.Table("obsm")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Close", func(t *testing.T) {
		f := NewFile(newAnnData())
		require.NoError(t, f.Close())
		require.NoError(t, f.Close())

		_, err := f.Obs()
		assert.ErrorIs(t, err, ErrClosed)
		_, err = f.Shape()
		assert.ErrorIs(t, err, ErrClosed)
	})
}

func TestOpen(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing.h5ad"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Opener", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "pbmc.h5ad")
		require.NoError(t, os.WriteFile(p, []byte("HDF"), 0o600))

		var opened string
		f, err := Open(p, WithOpener(func(path string) (container.Container, error) {
			opened = path
			return newAnnData(), nil
		}))
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, p, opened)
		assert.Equal(t, p, f.Source())
	})

	t.Run("OpenerFails", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "bad.h5ad")
		require.NoError(t, os.WriteFile(p, []byte("not hdf5"), 0o600))

		boom := errors.New("bad signature")
		_, err := Open(p, WithOpener(func(string) (container.Container, error) {
			return nil, boom
		}))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("FileURI", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "pbmc.h5ad")
		require.NoError(t, os.WriteFile(p, []byte("HDF"), 0o600))

		f, err := OpenURI(context.Background(), "file://"+p, WithOpener(func(string) (container.Container, error) {
			return newAnnData(), nil
		}))
		require.NoError(t, err)
		assert.Nil(t, f.staged)
		require.NoError(t, f.Close())
		assert.FileExists(t, p)
	})
}

func TestOpenBlob(t *testing.T) {
	ctx := context.Background()
	payload := bytes.Repeat([]byte("h5ad"), 1000)

	store := blobstore.NewMemoryStore()
	store.Put("atlas/pbmc.h5ad", payload)

	t.Run("StagesAndRemoves", func(t *testing.T) {
		dir := t.TempDir()
		var staged string
		f, err := OpenBlob(ctx, store, "atlas/pbmc.h5ad",
			WithStageOptions(blobstore.WithStageDir(dir), blobstore.WithPartSize(512)),
			WithOpener(func(path string) (container.Container, error) {
				staged = path
				data, err := os.ReadFile(path)
				if err != nil {
					return nil, err
				}
				if !bytes.Equal(payload, data) {
					return nil, errors.New("staged copy differs")
				}
				return newAnnData(), nil
			}))
		require.NoError(t, err)
		assert.Equal(t, dir, filepath.Dir(staged))
		assert.FileExists(t, staged)

		s, err := f.Shape()
		require.NoError(t, err)
		assert.Equal(t, 3, s.Obs)

		require.NoError(t, f.Close())
		assert.NoFileExists(t, staged)
	})

	t.Run("OpenFailureRemovesCopy", func(t *testing.T) {
		dir := t.TempDir()
		_, err := OpenBlob(ctx, store, "atlas/pbmc.h5ad",
			WithStageOptions(blobstore.WithStageDir(dir)),
			WithOpener(func(string) (container.Container, error) {
				return nil, errors.New("bad signature")
			}))
		require.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := OpenBlob(ctx, store, "atlas/missing.h5ad",
			WithStageOptions(blobstore.WithStageDir(t.TempDir())))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOpenURI(t *testing.T) {
	ctx := context.Background()

	store := blobstore.NewMemoryStore()
	store.Put("atlas/pbmc.h5ad", []byte("HDF"))

	var resolved Source
	resolver := WithStoreResolver(func(src Source) (blobstore.BlobStore, bool) {
		resolved = src
		return store, true
	})
	opener := WithOpener(func(string) (container.Container, error) {
		return newAnnData(), nil
	})

	f, err := OpenURI(ctx, "s3://cells/atlas/pbmc.h5ad", resolver, opener,
		WithStageOptions(blobstore.WithStageDir(t.TempDir())))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, Source{Scheme: SchemeS3, Bucket: "cells", Key: "atlas/pbmc.h5ad"}, resolved)
	assert.Equal(t, "s3://cells/atlas/pbmc.h5ad", f.Source())

	_, err = OpenURI(ctx, "gs://cells/pbmc.h5ad")
	var us *ErrUnsupportedScheme
	require.ErrorAs(t, err, &us)
	assert.Equal(t, "gs", us.Scheme)
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		in   string
		want Source
	}{
		{"pbmc.h5ad", Source{Scheme: SchemeFile, Path: "pbmc.h5ad"}},
		{"file:///data/pbmc.h5ad", Source{Scheme: SchemeFile, Path: "/data/pbmc.h5ad"}},
		{"s3://cells/atlas/pbmc.h5ad", Source{Scheme: SchemeS3, Bucket: "cells", Key: "atlas/pbmc.h5ad"}},
		{"minio://localhost:9000/cells/pbmc.h5ad", Source{Scheme: SchemeMinIO, Endpoint: "localhost:9000", Bucket: "cells", Key: "pbmc.h5ad"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSource(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Remote(), tt.want.Scheme != SchemeFile)
		})
	}

	for _, bad := range []string{"", "file://", "s3://cells", "s3:///key", "minio://localhost:9000/cells"} {
		_, err := ParseSource(bad)
		var is *ErrInvalidSource
		assert.ErrorAs(t, err, &is, bad)
	}
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	err := translateError(&container.ErrGroupNotFound{Path: "/obs"})
	assert.ErrorIs(t, err, ErrNotFound)
	var gnf *container.ErrGroupNotFound
	assert.ErrorAs(t, err, &gnf)

	assert.ErrorIs(t, translateError(blobstore.ErrNotFound), ErrNotFound)

	boom := errors.New("boom")
	assert.Equal(t, boom, translateError(boom))
}

func TestLogger(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l.LogStage(ctx, "s3://cells/pbmc.h5ad", 4096, true, nil)
	assert.Contains(t, buf.String(), `"msg":"staged"`)
	assert.Contains(t, buf.String(), `"bytes":4096`)

	buf.Reset()
	l.LogRead(ctx, Obs, 10, 0, errors.New("boom"))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"table":"obs"`)

	NoopLogger().LogOpen(ctx, "x", nil)
}

func TestFile_LoggerSource(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	f := NewFile(newAnnData(), WithLogger(l))
	defer f.Close()
	_, err := f.Catalog(Obs)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"catalog built"`)
	assert.Contains(t, buf.String(), `"source":"container"`)
	assert.Contains(t, buf.String(), `"table":"obs"`)

	buf.Reset()
	_, err = f.Catalog("uns")
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"msg":"catalog failed"`)
	assert.Contains(t, buf.String(), `"source":"container"`)
}
