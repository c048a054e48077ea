package fs

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	f, err := lfs.CreateTemp(tmp, "stage-*.h5ad")
	require.NoError(t, err)

	// Positional write past the end extends the file
	_, err = f.WriteAt([]byte("world"), 5)
	assert.NoError(t, err)
	_, err = f.WriteAt([]byte("hello"), 0)
	assert.NoError(t, err)

	buf := make([]byte, 10)
	_, err = f.ReadAt(buf, 0)
	assert.NoError(t, err)
	assert.Equal(t, "helloworld", string(buf))

	info, err := f.Stat()
	assert.NoError(t, err)
	assert.Equal(t, int64(10), info.Size())
	assert.NoError(t, f.Close())

	info2, err := lfs.Stat(f.Name())
	assert.NoError(t, err)
	assert.Equal(t, int64(10), info2.Size())

	assert.NoError(t, lfs.Remove(f.Name()))
	_, err = lfs.Stat(f.Name())
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.SetLimit(8)

	f, err := ffs.CreateTemp(t.TempDir(), "stage-*")
	require.NoError(t, err)
	defer f.Close()

	_, err = f.WriteAt([]byte("12345"), 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), ffs.GetWritten())

	_, err = f.WriteAt([]byte("67890"), 5)
	assert.ErrorIs(t, err, ffs.Err)
	assert.Equal(t, int64(5), ffs.GetWritten())

	ffs.SetLimit(-1)
	_, err = f.Write([]byte("67890"))
	assert.NoError(t, err)
}

func TestFaultyFS_Rules(t *testing.T) {
	full := errors.New("no space left on device")
	ffs := NewFaultyFS(nil)
	ffs.AddRule("big", Fault{FailAfterBytes: 3, Err: full})
	ffs.AddRule("broken", Fault{FailOnCreate: true})
	ffs.AddRule("sticky", Fault{FailAfterBytes: -1, FailOnClose: true})
	dir := t.TempDir()

	f, err := ffs.CreateTemp(dir, "big-*")
	require.NoError(t, err)
	_, err = f.WriteAt([]byte("1234"), 0)
	assert.ErrorIs(t, err, full)
	assert.NoError(t, f.Close())

	_, err = ffs.CreateTemp(dir, "broken-*")
	assert.ErrorIs(t, err, ffs.Err)

	f, err = ffs.CreateTemp(dir, "sticky-*")
	require.NoError(t, err)
	assert.ErrorIs(t, f.Close(), ffs.Err)
	assert.NoError(t, ffs.Remove(f.Name()))
}
