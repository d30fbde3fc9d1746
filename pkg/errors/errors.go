// Package errors provides structured errors with stable codes so that
// callers and tests can match on failure category instead of message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure category.
type ErrorCode string

const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Git errors
	ErrGitExec ErrorCode = "GIT_EXEC"

	// Link errors
	ErrLinkCreate    ErrorCode = "LINK_CREATE"
	ErrLinkExists    ErrorCode = "LINK_EXISTS"
	ErrLinkDifferent ErrorCode = "LINK_DIFFERENT"
	ErrLinkBroken    ErrorCode = "LINK_BROKEN"

	// Filesystem errors
	ErrIO ErrorCode = "IO"
)

// GroveError is an error with a code, a message and an optional cause.
type GroveError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *GroveError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *GroveError) Unwrap() error {
	return e.Wrapped
}

// Is matches two GroveErrors by code.
func (e *GroveError) Is(target error) bool {
	var targetErr *GroveError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new GroveError with the given code and message.
func New(code ErrorCode, message string) *GroveError {
	return &GroveError{Code: code, Message: message}
}

// Newf creates a new GroveError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *GroveError {
	return &GroveError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error under a code. Returns nil for a nil err.
func Wrap(err error, code ErrorCode, message string) *GroveError {
	if err == nil {
		return nil
	}
	return &GroveError{Code: code, Message: message, Wrapped: err}
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GroveError {
	if err == nil {
		return nil
	}
	return &GroveError{Code: code, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// GetCode returns the code of err, or ErrUnknown for foreign errors.
func GetCode(err error) ErrorCode {
	var groveErr *GroveError
	if errors.As(err, &groveErr) {
		return groveErr.Code
	}
	return ErrUnknown
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
