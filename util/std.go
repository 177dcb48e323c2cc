// Package util holds utility functions that would not hurt the simplicity
// of Go if they were part of the builtins/stdlib.
package util

// Min returns the minimum of a and b.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of a and b.
func Max(a, b int) int {
	if a < b {
		return b
	}
	return a
}

// Clamp limits x to the range [lo, hi]
func Clamp(x, lo, hi int) int {
	return Max(lo, Min(x, hi))
}

// Min64 is Min for int64.
func Min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// Max64 is Max for int64.
func Max64(a, b int64) int64 {
	if a < b {
		return b
	}
	return a
}

// Clamp64 is Clamp for int64.
func Clamp64(x, lo, hi int64) int64 {
	return Max64(lo, Min64(x, hi))
}
