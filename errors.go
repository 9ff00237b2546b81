package biasdetect

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFitted is returned when Predict or SaveToWriter is called
	// before a successful Fit.
	ErrNotFitted = errors.New("not fitted: call Fit first")

	// ErrEmptyDataset is returned when Fit is called with zero rows.
	ErrEmptyDataset = errors.New("dataset has no rows")

	// ErrNoFeatures is returned when Fit is called with zero feature columns.
	ErrNoFeatures = errors.New("dataset has no feature columns")
)

// ErrDimensionMismatch indicates a feature dimensionality mismatch, either
// between rows of one dataset or between Predict input and fit-time data.
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

// ErrLengthMismatch indicates that the outcome vector is not aligned
// row-for-row with the dataset.
type ErrLengthMismatch struct {
	Rows    int
	Metrics int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("length mismatch: %d rows but %d metric values", e.Rows, e.Metrics)
}

// ErrNonFinite indicates a NaN or infinite value in the input. Col is -1
// when the offending value sits in the outcome vector.
type ErrNonFinite struct {
	Row int
	Col int
}

func (e *ErrNonFinite) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("non-finite metric value at row %d", e.Row)
	}
	return fmt.Sprintf("non-finite value at row %d, column %d", e.Row, e.Col)
}

// ErrInvalidConfig indicates an illegal configuration value.
type ErrInvalidConfig struct {
	Field string
	Value int
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid config: %s = %d", e.Field, e.Value)
}

// ErrInvalidSplit indicates that a SplitStrategy returned a label vector
// that is not a binary partition of its input.
type ErrInvalidSplit struct {
	Reason string
}

func (e *ErrInvalidSplit) Error() string {
	return fmt.Sprintf("invalid split: %s", e.Reason)
}
