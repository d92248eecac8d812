// Package apperr defines the error kinds booking operations report to callers.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an operation failure.
type Kind string

const (
	KindNotAuthenticated     Kind = "not_authenticated"
	KindUnauthorized         Kind = "unauthorized"
	KindNotFound             Kind = "not_found"
	KindInvalidTransition    Kind = "invalid_transition"
	KindInvalidInput         Kind = "invalid_input"
	KindValidationFailed     Kind = "validation_failed"
	KindUnsupportedMediaType Kind = "unsupported_media_type"
	KindPayloadTooLarge      Kind = "payload_too_large"
	KindProfileCreateFailed  Kind = "profile_create_failed"
	KindConflict             Kind = "conflict"
	KindInternal             Kind = "internal"
)

// Error is a classified failure with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, apperr.NotFound) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	NotAuthenticated     = &Error{Kind: KindNotAuthenticated}
	Unauthorized         = &Error{Kind: KindUnauthorized}
	NotFound             = &Error{Kind: KindNotFound}
	InvalidTransition    = &Error{Kind: KindInvalidTransition}
	InvalidInput         = &Error{Kind: KindInvalidInput}
	ValidationFailed     = &Error{Kind: KindValidationFailed}
	UnsupportedMediaType = &Error{Kind: KindUnsupportedMediaType}
	PayloadTooLarge      = &Error{Kind: KindPayloadTooLarge}
	ProfileCreateFailed  = &Error{Kind: KindProfileCreateFailed}
	Conflict             = &Error{Kind: KindConflict}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the caller-facing message for err.
// Unclassified errors never leak their text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "internal server error"
}

// HTTPStatus maps a kind onto the response status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotAuthenticated:
		return http.StatusUnauthorized
	case KindUnauthorized:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidTransition, KindConflict:
		return http.StatusConflict
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindValidationFailed:
		return http.StatusUnprocessableEntity
	case KindUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
