package errors

import (
	"errors"
	"fmt"
)

// Custom error types for the visit-tracking and guestbook subsystem.
// Handlers map these onto HTTP status codes; repositories wrap
// underlying store failures, which stay opaque and unretryable.

// ErrLandmarkNotFound is returned when a referenced landmark does not exist
var ErrLandmarkNotFound = errors.New("landmark not found")

// ErrVisitorNotFound is returned when no visitor row matches the lookup
var ErrVisitorNotFound = errors.New("visitor not found")

// ErrInvalidVisitor is returned when a visit is recorded against a
// visitor id that is not owned by the caller's source address. Only
// address equality is checked; there is no secret to possess.
var ErrInvalidVisitor = errors.New("visitor id does not belong to this address")

// ErrInvalidLandmarkID is returned when a caller-supplied landmark id
// is not a usable slug
var ErrInvalidLandmarkID = errors.New("landmark id must contain only lowercase letters, digits and hyphens")

// ValidationError is returned when a required text field is missing
// after trimming or exceeds its length bound
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
