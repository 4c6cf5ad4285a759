package sieve

import (
	"errors"
	"fmt"

	"github.com/walln/sieve/index"
)

var (
	// ErrInvalidArgument is returned when a build or search argument is
	// invalid: mismatched vectors/ids lengths, a non-positive tree count,
	// a non-positive k, or an empty dataset.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// translateError maps index-level errors onto the public error surface.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *index.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}

	var id *index.ErrInvalidDimension
	if errors.As(err, &id) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	for _, cause := range []error{
		index.ErrInvalidK,
		index.ErrInvalidNumTrees,
		index.ErrLengthMismatch,
		index.ErrEmptyDataset,
	} {
		if errors.Is(err, cause) {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
	}

	return err
}
