// Package errors provides coded domain errors for the tablelog stores and API.
//
// Stores return these as values so callers can render an inline message:
//
//	user, err := identity.CreateUser(ctx, input)
//	if errors.Is(err, errors.ErrDuplicateUsername) {
//	    // "Username already taken"
//	}
//
// The API layer maps the Code to an HTTP status with Code.HTTPStatus.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions so callers need a single import.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code is a machine-readable error code.
type Code string

// Error codes used by the stores, the gateway client and the API.
const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeUserNotFound      Code = "USER_NOT_FOUND"
	CodeDuplicateUsername Code = "DUPLICATE_USERNAME"
	CodeDuplicateEmail    Code = "DUPLICATE_EMAIL"
	CodeNotAuthenticated  Code = "NOT_AUTHENTICATED"
	CodeSelfFollow        Code = "SELF_FOLLOW"
	CodeValidation        Code = "VALIDATION"
	CodeNotConfigured     Code = "NOT_CONFIGURED"
	CodeUpstream          Code = "UPSTREAM"
	CodeRateLimited       Code = "RATE_LIMITED"
	CodeInternal          Code = "INTERNAL"
)

// HTTPStatus returns the HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeUserNotFound:
		return http.StatusNotFound
	case CodeDuplicateUsername, CodeDuplicateEmail:
		return http.StatusConflict
	case CodeNotAuthenticated:
		return http.StatusUnauthorized
	case CodeSelfFollow, CodeValidation:
		return http.StatusBadRequest
	case CodeNotConfigured:
		return http.StatusServiceUnavailable
	case CodeUpstream:
		return http.StatusBadGateway
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error carrying the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a copy of the error carrying details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details, cause: e.cause}
}

// WithCause returns a copy of the error wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
	ErrUserNotFound      = &Error{Code: CodeUserNotFound, Message: "User not found"}
	ErrDuplicateUsername = &Error{Code: CodeDuplicateUsername, Message: "Username already taken"}
	ErrDuplicateEmail    = &Error{Code: CodeDuplicateEmail, Message: "Email already registered"}
	ErrNotAuthenticated  = &Error{Code: CodeNotAuthenticated, Message: "Not logged in"}
	ErrSelfFollow        = &Error{Code: CodeSelfFollow, Message: "Cannot follow yourself"}
	ErrValidation        = &Error{Code: CodeValidation, Message: "validation error"}
	ErrNotConfigured     = &Error{Code: CodeNotConfigured, Message: "not configured"}
	ErrUpstream          = &Error{Code: CodeUpstream, Message: "upstream error"}
	ErrInternal          = &Error{Code: CodeInternal, Message: "internal error"}
)

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// UserNotFound creates a user-not-found error with a custom message.
func UserNotFound(msg string) *Error {
	return &Error{Code: CodeUserNotFound, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with per-field details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// NotConfigured creates an error for a collaborator that has no configuration.
func NotConfigured(msg string) *Error {
	return &Error{Code: CodeNotConfigured, Message: msg}
}

// Upstreamf creates an upstream (gateway) error with a formatted message.
func Upstreamf(format string, args ...any) *Error {
	return &Error{Code: CodeUpstream, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
