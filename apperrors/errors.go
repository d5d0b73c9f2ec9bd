// Package apperrors defines the typed errors returned by the store, the
// scheduling/performance services and the handlers.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the API layer.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindIntegrity    Kind = "integrity"
	KindUpstream     Kind = "upstream"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
)

// Error is the single error type surfaced to handlers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so callers can write errors.Is(err, apperrors.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Kind-only sentinels for errors.Is.
var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrIntegrity    = &Error{Kind: KindIntegrity}
	ErrUpstream     = &Error{Kind: KindUpstream}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
)

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWrap keeps the cause (e.g. timeutil.ErrInvalidTimezone) reachable via errors.Is.
func ValidationWrap(err error, format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...), Err: err}
}

// NotFound builds "<resource> not found".
func NotFound(resource string) error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func Integrity(err error, format string, args ...any) error {
	return &Error{Kind: KindIntegrity, Message: fmt.Sprintf(format, args...), Err: err}
}

func Upstream(err error, format string, args ...any) error {
	return &Error{Kind: KindUpstream, Message: fmt.Sprintf(format, args...), Err: err}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Message returns the caller-facing message without the wrapped cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
