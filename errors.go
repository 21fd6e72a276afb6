package autodes

import (
	"errors"
	"fmt"
)

// Common errors returned by the autodes client.
var (
	// ErrInvalidDate is returned when a date is missing or unparseable.
	ErrInvalidDate = errors.New("invalid or missing date")

	// ErrInvalidMetric is returned when an unknown metric is referenced.
	ErrInvalidMetric = errors.New("invalid metric")

	// ErrInvalidGoal is returned when a goal target is not positive.
	ErrInvalidGoal = errors.New("goal target must be positive")

	// ErrStoreClosed is returned when operating on a closed store.
	ErrStoreClosed = errors.New("store is closed")

	// ErrUnsupportedFormat is returned when an import or export format
	// is not recognized.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrUnsupportedVersion is returned when an archive was written by
	// an incompatible schema version.
	ErrUnsupportedVersion = errors.New("unsupported archive version")

	// ErrInvalidMergeStrategy is returned when an import merge strategy
	// is not recognized.
	ErrInvalidMergeStrategy = errors.New("invalid merge strategy")
)

// ValidationError is returned when configuration or input validation
// fails. Extractable via errors.As().
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// RowError is returned when a single row of an import cannot be
// normalized. Extractable via errors.As(). Supports Unwrap().
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("import: row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
