package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for callers. Only the kind is contractual, the
// message is for humans.
type Kind string

const (
	KindUnauthenticated   Kind = "unauthenticated"
	KindNotFound          Kind = "not_found"
	KindInvalidIdentifier Kind = "invalid_identifier"
	KindValidation        Kind = "validation_error"
	KindStore             Kind = "store_error"
	KindMaintenance       Kind = "maintenance_error"
	KindInternal          Kind = "internal_error"
)

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

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// Sentinels for errors.Is checks.
var (
	ErrUnauthenticated   = &Error{Kind: KindUnauthenticated}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInvalidIdentifier = &Error{Kind: KindInvalidIdentifier}
	ErrValidation        = &Error{Kind: KindValidation}
	ErrStore             = &Error{Kind: KindStore}
	ErrMaintenance       = &Error{Kind: KindMaintenance}
)

func Unauthenticated(msg string) error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidIdentifier(format string, args ...any) error {
	return &Error{Kind: KindInvalidIdentifier, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Store wraps a Record Store failure. A nil cause returns nil.
func Store(cause error, msg string) error {
	if cause == nil {
		return nil
	}
	var appErr *Error
	if errors.As(cause, &appErr) {
		return cause
	}
	return &Error{Kind: KindStore, Message: msg, Err: cause}
}

func Maintenance(cause error, msg string) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: KindMaintenance, Message: msg, Err: cause}
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to the status code the API responds with.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidIdentifier, KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
