// Package buf holds overflow-checked arithmetic and bounds-checked slicing
// for sizes read from untrusted headers.
package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int64.
func AddOverflowSafe(a, b int64) (int64, bool) {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return 0, false
	case b < 0 && a < math.MinInt64-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result
// would overflow int64. Data area sizes are products of header values, so
// every factor goes through here.
func MulOverflowSafe(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > 0 && b > 0 {
		if a > math.MaxInt64/b {
			return 0, false
		}
	}
	if a < 0 && b < 0 {
		if a < math.MaxInt64/b {
			return 0, false
		}
	}
	if a > 0 && b < 0 {
		if b < math.MinInt64/a {
			return 0, false
		}
	}
	if a < 0 && b > 0 {
		if a < math.MinInt64/b {
			return 0, false
		}
	}
	return a * b, true
}

// Product multiplies every factor, returning ok = false on overflow.
func Product(factors ...int64) (int64, bool) {
	p := int64(1)
	for _, f := range factors {
		var ok bool
		if p, ok = MulOverflowSafe(p, f); !ok {
			return 0, false
		}
	}
	return p, true
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(int64(off), int64(n))
	if !ok || end > int64(len(b)) {
		return nil, false
	}
	return b[off:end], true
}
