package series

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat is returned when a date parameter is not YYYY-MM-DD.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrNotFound is returned for a missing location, column or date row.
	ErrNotFound = errors.New("not found")
	// ErrOutOfRange is returned when a date falls outside a series' extent.
	ErrOutOfRange = errors.New("out of range")
	// ErrInvalidRange is returned when an end date does not follow its start.
	ErrInvalidRange = errors.New("invalid range")
	// ErrUnknownAggregation is returned for an unsupported reducer name.
	ErrUnknownAggregation = errors.New("unknown aggregation")
	// ErrMalformedSeries is returned when a series file violates the schema.
	ErrMalformedSeries = errors.New("malformed series")
)

// QueryError carries a client-facing message together with one of the
// sentinel kinds above. errors.Is(err, ErrNotFound) and friends work on it.
type QueryError struct {
	Kind    error
	Message string
}

func (e *QueryError) Error() string {
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *QueryError {
	return &QueryError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
