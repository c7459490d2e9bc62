package service

import "fmt"

// ValidationError reports a malformed or missing booking field.  The request
// is rejected before any state change; Field names the offending input so the
// client can point at it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError refuses a transition into Confirmed because the candidate
// dates overlap an existing confirmed booking for the same unit.  The
// conflicting booking's id is carried so the user-facing message can
// reference it.  The candidate's status and dates remain unchanged.
type ConflictError struct {
	ConflictingBookingID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("dates conflict with confirmed booking %s", e.ConflictingBookingID)
}
