package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the caller: validation errors are the
// caller's fault and never retried, consistency errors flag a data-integrity
// problem upstream, collaborator errors come from storage or lookups.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindConsistency  Kind = "CONSISTENCY"
	KindCollaborator Kind = "COLLABORATOR"
)

// Error is the structured error that crosses the service boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a validation error from a format string.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Consistency builds a consistency error from a format string.
func Consistency(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConsistency, Message: fmt.Sprintf(format, args...)}
}

// Collaborator wraps a storage/lookup failure.
func Collaborator(err error, message string) *Error {
	return &Error{Kind: KindCollaborator, Message: message, Err: err}
}

// KindOf returns the kind of err, or an empty kind for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
