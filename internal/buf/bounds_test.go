package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt64, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt64")
	}
	if _, ok := AddOverflowSafe(math.MinInt64, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt64")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	cases := []struct {
		a, b int64
		want int64
		ok   bool
	}{
		{0, math.MaxInt64, 0, true},
		{-64, 4, -256, true},
		{-3, -3, 9, true},
		{math.MaxInt64 / 2, 3, 0, false},
		{math.MinInt64, -1, 0, false},
		{math.MaxInt64, -2, 0, false},
		{-2, math.MaxInt64, 0, false},
	}
	for _, tc := range cases {
		got, ok := MulOverflowSafe(tc.a, tc.b)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("MulOverflowSafe(%d,%d)=%d,%v want %d,%v", tc.a, tc.b, got, ok, tc.want, tc.ok)
		}
	}
}

func TestProduct(t *testing.T) {
	if p, ok := Product(); !ok || p != 1 {
		t.Fatalf("empty Product()=%d,%v want 1,true", p, ok)
	}
	if p, ok := Product(100, 200, 3); !ok || p != 60000 {
		t.Fatalf("Product(100,200,3)=%d,%v want 60000,true", p, ok)
	}
	if _, ok := Product(1<<31, 1<<31, 1<<31); ok {
		t.Fatalf("expected overflow for 2^93")
	}
}

func TestSlice(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should fail for a negative offset")
	}
	if _, ok := Slice(data, 2, math.MaxInt); ok {
		t.Fatalf("Slice should fail when off+n overflows")
	}
}
