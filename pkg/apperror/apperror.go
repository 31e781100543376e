package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for HTTP mapping and client handling.
type Kind int

const (
	KindValidation Kind = iota // bad or missing input
	KindNotFound               // unknown entity id
	KindConflict               // uniqueness violation (duplicate code/name)
	KindStorage                // underlying store failure
)

// Error carries a client-safe message and the wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// Storage wraps a store failure. The raw driver error stays available via
// Unwrap for logging; the message is what clients see.
func Storage(message string, err error) error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// IsKind reports whether err (or anything it wraps) is an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// Status maps an error to its HTTP status code. Unclassified errors are
// treated as storage failures.
func Status(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
