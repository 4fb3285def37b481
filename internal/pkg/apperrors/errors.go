package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error. HTTP status selection is driven by
// the kind, never by the message text.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Common errors
var (
	ErrResourceNotFound   = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrValidationFailed   = errors.New("validation failed")
)

// Error carries a Kind alongside a user-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind around a cause
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NotFound creates a not-found error with a message
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message, Err: ErrResourceNotFound}
}

// NotFoundf is NotFound with formatting
func NotFoundf(format string, args ...interface{}) error {
	return NotFound(fmt.Sprintf(format, args...))
}

// Validation creates a validation error with a message
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message, Err: ErrValidationFailed}
}

// Conflict creates a conflict error with a message
func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message, Err: ErrConflict}
}

// Unauthorized creates an authentication failure with a message
func Unauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message, Err: ErrInvalidCredentials}
}

// Forbidden creates a rejected-credential error with a message
func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message, Err: ErrTokenInvalid}
}

// Internal creates an internal error; the cause is kept for logging only
func Internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
// Errors that carry no kind are internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of the first *Error in err's chain
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
