package table

import (
	"errors"
	"math"
	"testing"

	"github.com/hupe1980/adview/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_ReadAll(t *testing.T) {
	c, _ := newObs(4)
	cat, err := Build(c, "obs")
	require.NoError(t, err)

	cols, err := NewReader(cat).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, 4, cols.Len())
	assert.Equal(t, Columns{
		{"c0", "c1", "c2", "c3"},
		{"B", "NK", "T", "B"},
		{"0", "100", "200", "300"},
	}, cols)
}

func TestReader_ReadChunk(t *testing.T) {
	c, _ := newObs(5)
	cat, err := Build(c, "obs")
	require.NoError(t, err)
	r := NewReader(cat)

	cols, err := r.ReadChunk(3, 10)
	require.NoError(t, err)
	assert.Equal(t, Columns{
		{"c3", "c4"},
		{"B", "NK"},
		{"300", "400"},
	}, cols)

	cols, err = r.ReadChunk(1, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, 4, cols.Len())

	_, err = r.ReadChunk(-1, 2)
	var ir *ErrInvalidRange
	assert.ErrorAs(t, err, &ir)
}

func TestReader_BoundaryChunk(t *testing.T) {
	c, _ := newObs(5)
	cat, err := Build(c, "obs")
	require.NoError(t, err)
	r := NewReader(cat)

	for _, start := range []int{5, 6, 100} {
		cols, err := r.ReadChunk(start, 10)
		require.NoError(t, err)
		require.Len(t, cols, 3)
		for _, col := range cols {
			assert.Empty(t, col)
		}
		assert.Equal(t, 0, cols.Len())
	}
}

func TestReader_ChunkCoverage(t *testing.T) {
	c, _ := newObs(23)
	cat, err := Build(c, "obs")
	require.NoError(t, err)
	r := NewReader(cat)

	whole, err := r.ReadAll()
	require.NoError(t, err)

	for _, count := range []int{1, 4, 7, 23, 50} {
		merged := make(Columns, len(whole))
		for start := 0; start < cat.RowCount(); start += count {
			cols, err := r.ReadChunk(start, count)
			require.NoError(t, err)
			for i := range cols {
				merged[i] = append(merged[i], cols[i]...)
			}
		}
		assert.Equal(t, whole, merged, "count=%d", count)
	}
}

func TestReader_Chunks(t *testing.T) {
	c, _ := newObs(10)
	cat, err := Build(c, "obs")
	require.NoError(t, err)
	r := NewReader(cat, WithChunkSize(4))
	assert.Equal(t, 4, r.ChunkSize())

	var starts, sizes []int
	merged := make(Columns, 3)
	err = r.Chunks(func(start int, cols Columns) error {
		starts = append(starts, start)
		sizes = append(sizes, cols.Len())
		for i := range cols {
			merged[i] = append(merged[i], cols[i]...)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4, 8}, starts)
	assert.Equal(t, []int{4, 4, 2}, sizes)

	whole, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, whole, merged)
}

func TestReader_ChunksFrom(t *testing.T) {
	c, _ := newObs(10)
	cat, err := Build(c, "obs")
	require.NoError(t, err)
	r := NewReader(cat, WithChunkSize(3))

	var ids []string
	err = r.ChunksFrom(2, 5, func(start int, cols Columns) error {
		ids = append(ids, cols[0]...)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c3", "c4", "c5", "c6"}, ids)

	ids = nil
	err = r.ChunksFrom(8, -1, func(start int, cols Columns) error {
		ids = append(ids, cols[0]...)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c8", "c9"}, ids)

	called := false
	err = r.ChunksFrom(10, -1, func(int, Columns) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestReader_ChunksStopsOnError(t *testing.T) {
	c, _ := newObs(10)
	cat, err := Build(c, "obs")
	require.NoError(t, err)
	r := NewReader(cat, WithChunkSize(2))

	stop := errors.New("stop")
	calls := 0
	err = r.Chunks(func(int, Columns) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, calls)
}

func TestReader_ChunksPropagatesDecodeError(t *testing.T) {
	c := container.NewMemoryContainer()
	g := c.Root().AddGroup("obs")
	addCategorical(g, "xy", []string{"x"}, []int64{0, 0, 0, 9})

	cat, err := Build(c, "obs")
	require.NoError(t, err)

	var seen int
	err = NewReader(cat, WithChunkSize(2)).Chunks(func(_ int, cols Columns) error {
		seen += cols.Len()
		return nil
	})
	var oor *ErrOutOfRangeCategory
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 2, seen)
}

func TestReader_UnsupportedFieldFailsChunk(t *testing.T) {
	c, obs := newObs(3)
	obs.AddStrings("mystery", []string{"1", "2", "3"}).SetAttr(EncodingTypeAttr, "mystery-type")

	cat, err := Build(c, "obs")
	require.NoError(t, err)

	cols, err := NewReader(cat).ReadChunk(0, 3)
	assert.Nil(t, cols)
	var ue *ErrUnsupportedEncoding
	require.ErrorAs(t, err, &ue)

	cols, err = NewReader(cat).ReadChunk(3, 3)
	require.NoError(t, err)
	assert.Len(t, cols, 4)
	assert.Equal(t, 0, cols.Len())
}

func TestReader_DefaultChunkSize(t *testing.T) {
	c, _ := newObs(1)
	cat, err := Build(c, "obs")
	require.NoError(t, err)

	assert.Equal(t, DefaultChunkSize, NewReader(cat).ChunkSize())
	assert.Equal(t, DefaultChunkSize, NewReader(cat, WithChunkSize(0)).ChunkSize())
	assert.Same(t, cat, NewReader(cat).Catalog())
	assert.Equal(t, 1, NewReader(cat).RowCount())
}

func TestColumns_Len(t *testing.T) {
	assert.Equal(t, 0, Columns(nil).Len())
	assert.Equal(t, 2, Columns{{"a", "b"}}.Len())
}
