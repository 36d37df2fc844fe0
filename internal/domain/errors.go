package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
)

// MissingInformationTitle is the user-facing title for checkout precondition failures.
const MissingInformationTitle = "Missing Information"

// ValidationError reports buyer input that cannot be accepted.
type ValidationError struct {
	Title   string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError with the default title.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Title: MissingInformationTitle, Field: field, Message: message}
}

// SubmissionError wraps a failure of the downstream order submission.
type SubmissionError struct {
	Cause error
}

func (e *SubmissionError) Error() string {
	if e.Cause == nil {
		return "order submission failed"
	}
	return "order submission failed: " + e.Cause.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Cause
}
