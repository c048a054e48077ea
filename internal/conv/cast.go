package conv

import (
	"fmt"
	"math"
)

// IntToUint64 converts int to uint64 safely.
func IntToUint64(v int) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint64 (negative)", v)
	}
	return uint64(v), nil
}

// Uint64ToInt64 converts uint64 to int64 safely.
func Uint64ToInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int64 (too large)", v)
	}
	return int64(v), nil
}

// Float64ToInt64 converts an integral float64 to int64. Fractional, NaN
// and out-of-range values are rejected.
func Float64ToInt64(v float64) (int64, error) {
	if v != math.Trunc(v) || math.IsNaN(v) {
		return 0, fmt.Errorf("non-integer value %v cannot be converted to int64", v)
	}
	// float64(math.MaxInt64) rounds up to 2^63.
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, fmt.Errorf("integer overflow: %v cannot be converted to int64", v)
	}
	return int64(v), nil
}

// MaxExactFloat64 is 2^53, the first integer a float64 cannot tell apart
// from its neighbor.
const MaxExactFloat64 = 1 << 53

// ExactFloat64ToInt64 is Float64ToInt64 restricted to |v| < 2^53, the range
// in which a float64 holds every integer exactly.
func ExactFloat64ToInt64(v float64) (int64, error) {
	if math.Abs(v) >= MaxExactFloat64 {
		return 0, fmt.Errorf("precision loss: %v is beyond the exact integer range of float64", v)
	}
	return Float64ToInt64(v)
}

// Uint64ToInt converts uint64 to int safely.
func Uint64ToInt(v uint64) (int, error) {
	if v > math.MaxInt {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}
