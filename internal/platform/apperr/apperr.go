// Package apperr is the error taxonomy shared by usecases and HTTP handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for callers.
type Kind string

const (
	KindInvalidArgument   Kind = "INVALID_ARGUMENT"
	KindNotFound          Kind = "NOT_FOUND"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindUnauthenticated   Kind = "UNAUTHENTICATED"
	KindInvalidState      Kind = "INVALID_STATE"
	KindConflict          Kind = "CONFLICT"
	KindUnavailable       Kind = "UNAVAILABLE"
	KindInternal          Kind = "INTERNAL"
)

// HTTPStatus maps a kind onto the response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidArgument, KindInsufficientStock, KindInvalidState:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified error.
// Message is safe to show to clients except for KindInternal.
type Error struct {
	Kind    Kind
	Message string

	// Available is set for KindInsufficientStock.
	Available *int

	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Message == "" {
		return e.Cause.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func InvalidArgument(msg string) *Error { return New(KindInvalidArgument, msg) }
func NotFound(msg string) *Error        { return New(KindNotFound, msg) }
func Unauthenticated(msg string) *Error { return New(KindUnauthenticated, msg) }
func InvalidState(msg string) *Error    { return New(KindInvalidState, msg) }
func Conflict(msg string) *Error        { return New(KindConflict, msg) }
func Unavailable(msg string) *Error     { return New(KindUnavailable, msg) }

// InsufficientStock reports the quantity that can still be fulfilled.
func InsufficientStock(available int) *Error {
	a := available
	return &Error{
		Kind:      KindInsufficientStock,
		Message:   fmt.Sprintf("Insufficient stock. Available: %d", available),
		Available: &a,
	}
}

// Internal wraps an unexpected failure. The cause is never sent to clients.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Cause: cause}
}

// KindOf returns the kind carried by err, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
