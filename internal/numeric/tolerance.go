// Package numeric centralizes the floating-point tolerance rules used
// across the fire model. Every comparison against zero or between two
// derived quantities should go through here rather than repeating a
// literal epsilon at each call site.
package numeric

import "math"

// Epsilon is the tolerance used by AlmostZero, Gt and DistinctFrom.
const Epsilon = 1e-9

// AlmostZero reports whether v is within Epsilon of zero.
func AlmostZero(v float64) bool {
	return math.Abs(v) < Epsilon
}

// Gt reports whether a is greater than b by more than Epsilon.
func Gt(a, b float64) bool {
	return a-b > Epsilon
}

// DistinctFrom reports whether a and b differ by more than Epsilon.
func DistinctFrom(a, b float64) bool {
	return math.Abs(a-b) > Epsilon
}
