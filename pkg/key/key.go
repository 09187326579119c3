// Package key defines the comparison and ownership contracts for keys
// stored in a unique list: exact and tolerance-based scalar orderings,
// shortlex ordering over numeric sequences, and the owned/borrowed split
// for array-valued keys.
package key

import (
	"cmp"
	"math"
)

// Default tolerances for Tolerant.
const (
	DefaultRTol = 1e-6
	DefaultATol = 1e-6
)

// LessFunc reports whether a orders strictly before b. Two values are
// equivalent when neither orders before the other; a collection keeps at
// most one element per equivalence class.
type LessFunc[T any] func(a, b T) bool

// Exact returns the standard strict ordering on an ordered scalar type.
func Exact[T cmp.Ordered]() LessFunc[T] {
	return func(a, b T) bool { return a < b }
}

// Tolerant returns a strict ordering with a dead zone near equality:
// a orders before b iff a < b - |b|*rtol - atol.
//
// The band is computed from the magnitude of the right-hand operand only.
// This asymmetry is part of the contract, not an oversight; callers that
// need the relation to be a strict weak ordering must keep the stored
// values away from the degenerate mixed-sign cases.
func Tolerant(rtol, atol float64) LessFunc[float64] {
	return func(a, b float64) bool {
		return a < b-math.Abs(b)*rtol-atol
	}
}

// Equivalent reports whether a and b fall in the same equivalence class
// under less.
func Equivalent[T any](less LessFunc[T], a, b T) bool {
	return !less(a, b) && !less(b, a)
}
