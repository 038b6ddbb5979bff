package parcel

import (
	"errors"
	"fmt"
)

// ErrParcelNotFound is returned when a referenced parcel id does not exist.
var ErrParcelNotFound = errors.New("parcel not found")

// ErrTrackingNumberConflict is returned when a generated tracking number
// collides with an existing one. Safe to retry: the next attempt generates
// a fresh number.
var ErrTrackingNumberConflict = errors.New("tracking number already exists")

// ValidationError reports a missing or malformed booking field. The
// operation is aborted before any write happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
