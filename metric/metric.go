// Package metric provides length-checked distance functions. Unlike the
// distance package, every function validates that both vectors have the
// same length before computing, making these safe for caller-facing code
// and reference implementations.
package metric

import (
	"github.com/walln/sieve/index"
	"github.com/walln/sieve/internal/math32"
)

// SquaredL2 calculates the squared L2 distance between two float32 slices.
// It is symmetric and returns zero exactly when the two vectors are equal
// coordinate-wise. Returns index.ErrDimensionMismatch when the lengths differ.
func SquaredL2(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, &index.ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}

	return math32.SquaredL2(a, b), nil
}

// Dot calculates the dot product of two float32 slices.
// Returns index.ErrDimensionMismatch when the lengths differ.
func Dot(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, &index.ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}

	return math32.Dot(a, b), nil
}
