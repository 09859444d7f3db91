// Package align provides alignment and overflow-safe size arithmetic shared
// by the storage packages.
package align

import "math"

// IsPow2 reports whether a is a positive power of two.
func IsPow2(a int) bool {
	return a > 0 && a&(a-1) == 0
}

// Up rounds n up to the next multiple of a. a must be a power of two.
func Up(n, a int) int {
	return (n + a - 1) &^ (a - 1)
}

// UpPtr rounds the address p up to the next multiple of a. a must be a power
// of two.
func UpPtr(p uintptr, a uintptr) uintptr {
	return (p + a - 1) &^ (a - 1)
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result
// would overflow int. Inputs are expected to be non-negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// AddOverflowSafe adds a and b, returning ok = false when the result would
// overflow int. Inputs are expected to be non-negative.
func AddOverflowSafe(a, b int) (int, bool) {
	if a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// Max returns the larger of a and b.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
