// Package apperror defines the error kinds surfaced to API clients and the
// HTTP status each one maps to.
package apperror

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies an application error.
type Kind int

const (
	// Internal is an unexpected persistence or runtime failure.
	Internal Kind = iota
	// Validation is malformed or missing input.
	Validation
	// Unauthenticated means no identity token was presented.
	Unauthenticated
	// InvalidToken means the token was presented but could not be verified.
	InvalidToken
	// InvalidCredentials means the password did not match.
	InvalidCredentials
	// NotFound means a referenced entity does not exist.
	NotFound
	// Conflict is a write conflict such as a duplicate email.
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation_error"
	case Unauthenticated:
		return "unauthenticated"
	case InvalidToken:
		return "invalid_token"
	case InvalidCredentials:
		return "invalid_credentials"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "server_error"
	}
}

// Error is an error with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Field   string // set for validation errors
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode keeps the status codes existing clients already rely on:
// invalid tokens, bad credentials and conflicts all answer 400.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation, InvalidToken, InvalidCredentials, Conflict:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewValidation(field, message string) *Error {
	return &Error{Kind: Validation, Message: message, Field: field}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

func NewConflict(message string, err error) *Error {
	return &Error{Kind: Conflict, Message: message, Err: err}
}

func NewInvalidCredentials() *Error {
	return &Error{Kind: InvalidCredentials, Message: "Invalid credentials"}
}

// NewInternal wraps err with a stack trace; the message shown to clients stays generic.
func NewInternal(err error) *Error {
	return &Error{Kind: Internal, Message: "Server error", Err: errors.WithStack(err)}
}

// From extracts an *Error from err, or wraps err as Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return NewInternal(err)
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
