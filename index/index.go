// Package index provides shared types and errors for vector search indexes.
package index

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidNumTrees is returned when the number of trees is not positive.
	ErrInvalidNumTrees = errors.New("number of trees must be positive")

	// ErrLengthMismatch is returned when the vectors and ids sequences differ in length.
	ErrLengthMismatch = errors.New("vectors and ids must have the same length")

	// ErrEmptyDataset is returned when a build is attempted over zero vectors.
	ErrEmptyDataset = errors.New("dataset must not be empty")
)

// ErrDimensionMismatch is a named error type for dimension mismatch.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension is a named error type for an invalid configured dimension.
type ErrInvalidDimension struct {
	Dimension int
}

// Error returns the error message for an invalid dimension.
func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// DistanceFunc represents a function for calculating the distance between two vectors.
// Implementations assume both vectors have the same length.
type DistanceFunc func(a, b []float32) float32

// SearchResult represents a single search result.
type SearchResult struct {
	// ID is the caller-supplied identifier of the matched vector.
	ID int64

	// Distance is the squared L2 distance between the query vector and the result vector.
	Distance float32
}
