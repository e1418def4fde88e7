// Package apperr defines the error taxonomy surfaced by the service layer.
// Every failure a caller can observe carries a stable code plus a
// human-readable message; handlers map codes to HTTP statuses.
package apperr

import (
	"errors"
	"fmt"
)

// Code identifies a failure class.
type Code string

const (
	CodeValidation    Code = "VALIDATION"
	CodeConflict      Code = "CONFLICT"
	CodeNotFound      Code = "NOT_FOUND"
	CodeAuthorization Code = "AUTHORIZATION"
	CodeInvalidState  Code = "INVALID_STATE"
	CodeInternal      Code = "INTERNAL"
)

// Invalid-state sub-reasons, used to distinguish "already accepted"
// from "expired" on accept attempts.
const (
	ReasonAlreadyAccepted = "already_accepted"
	ReasonExpired         = "expired"
)

// Error is the taxonomy error type.
type Error struct {
	Code    Code
	Message string
	Reason  string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is treats two taxonomy errors with the same code as equal, so callers can
// match with errors.Is(err, apperr.Conflict("")).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func Authorization(format string, args ...interface{}) *Error {
	return &Error{Code: CodeAuthorization, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(reason, format string, args ...interface{}) *Error {
	return &Error{Code: CodeInvalidState, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure. The wrapped error is logged by the
// handler layer but never serialized to the caller.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "Internal server error", Err: err}
}

// CodeOf extracts the taxonomy code from err, defaulting to CodeInternal for
// untyped errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-facing message from err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}

// ReasonOf extracts the invalid-state sub-reason, if any.
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}
