package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToUint64(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := IntToUint64(0)
		assert.NoError(t, err)
		assert.Equal(t, uint64(0), got)
	})

	t.Run("valid max int", func(t *testing.T) {
		got, err := IntToUint64(math.MaxInt)
		assert.NoError(t, err)
		assert.Equal(t, uint64(math.MaxInt), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := IntToUint64(-1)
		assert.Error(t, err)
	})
}

func TestUint64ToInt64(t *testing.T) {
	t.Run("valid max int64", func(t *testing.T) {
		got, err := Uint64ToInt64(math.MaxInt64)
		assert.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), got)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := Uint64ToInt64(math.MaxInt64 + 1)
		assert.Error(t, err)
	})
}

func TestFloat64ToInt64(t *testing.T) {
	t.Run("valid integral", func(t *testing.T) {
		got, err := Float64ToInt64(-42)
		assert.NoError(t, err)
		assert.Equal(t, int64(-42), got)
	})

	t.Run("invalid fraction", func(t *testing.T) {
		_, err := Float64ToInt64(1.5)
		assert.Error(t, err)
	})

	t.Run("invalid NaN", func(t *testing.T) {
		_, err := Float64ToInt64(math.NaN())
		assert.Error(t, err)
	})

	t.Run("invalid infinity", func(t *testing.T) {
		_, err := Float64ToInt64(math.Inf(1))
		assert.Error(t, err)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := Float64ToInt64(math.MaxInt64)
		assert.Error(t, err)
	})
}

func TestExactFloat64ToInt64(t *testing.T) {
	t.Run("valid below 2^53", func(t *testing.T) {
		got, err := ExactFloat64ToInt64(MaxExactFloat64 - 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(MaxExactFloat64-1), got)
	})

	t.Run("valid negative", func(t *testing.T) {
		got, err := ExactFloat64ToInt64(-(MaxExactFloat64 - 1))
		assert.NoError(t, err)
		assert.Equal(t, int64(-(MaxExactFloat64 - 1)), got)
	})

	t.Run("invalid at 2^53", func(t *testing.T) {
		_, err := ExactFloat64ToInt64(MaxExactFloat64)
		assert.Error(t, err)
		_, err = ExactFloat64ToInt64(-MaxExactFloat64)
		assert.Error(t, err)
	})

	t.Run("invalid fractional", func(t *testing.T) {
		_, err := ExactFloat64ToInt64(0.5)
		assert.Error(t, err)
	})
}

func TestUint64ToInt(t *testing.T) {
	got, err := Uint64ToInt(42)
	assert.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = Uint64ToInt(math.MaxUint64)
	assert.Error(t, err)
}
