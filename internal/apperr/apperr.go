// Package apperr defines the domain error taxonomy shared by every service.
// Services return these errors; the HTTP layer translates them into status
// codes and the response envelope in exactly one place.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain failure.
type Kind int

const (
	// InvalidRequest covers malformed input and illegal state transitions.
	InvalidRequest Kind = iota
	// Unauthorized covers missing or bad credentials and tokens.
	Unauthorized
	// Forbidden covers authenticated callers that do not own the resource.
	Forbidden
	// NotFound covers absent records.
	NotFound
	// Conflict covers duplicate email and illegal re-requests.
	Conflict
	// Internal covers unexpected store-layer failures.
	Internal
)

// Error is a classified domain error with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error with a caller-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to a classified error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind of err, defaulting to Internal for unclassified
// errors so store vocabulary never leaks to callers.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// MessageOf returns the caller-facing message, or a generic one for
// unclassified errors.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case InvalidRequest:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Is lets errors.Is match two classified errors by kind and message.
func (e *Error) Is(target error) bool {
	var ae *Error
	if !errors.As(target, &ae) {
		return false
	}
	return e.Kind == ae.Kind && e.Message == ae.Message
}
