package errors

import "fmt"

// Kind classifies an application error
type Kind int

const (
	ErrInternal Kind = iota
	ErrNotFound
	ErrValidation
	ErrFetch
	ErrFormat
	ErrConflict
)

// Error is an application-level error with a kind for classification.
// Field carries the offending input field for validation errors, when known.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Err     error // underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Constructor functions for common error types

func NotFound(msg string) *Error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validation(msg string) *Error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// MissingField reports a required field that was left empty
func MissingField(field string) *Error {
	return &Error{Kind: ErrValidation, Field: field, Message: fmt.Sprintf("missing required field: %s", field)}
}

// Fetch wraps a catalog/network failure; recoverable with a retry
func Fetch(msg string, err error) *Error {
	return &Error{Kind: ErrFetch, Message: msg, Err: err}
}

func Fetchf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrFetch, Message: fmt.Sprintf(format, args...)}
}

// Format reports malformed user input, like a bad verification code
func Format(msg string) *Error {
	return &Error{Kind: ErrFormat, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func Internal(err error) *Error {
	return &Error{Kind: ErrInternal, Message: "internal error", Err: err}
}

func Internalf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}
