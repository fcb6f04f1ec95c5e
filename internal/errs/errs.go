// Package errs defines the application error type used across the service.
// Every error that reaches the HTTP layer carries a machine-readable code
// that the handlers translate into a status code; errors without a code are
// treated as internal and never leak their message to the caller.
package errs

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EBADREQUEST = "bad_request"
	ECONFLICT   = "conflict"
	EINTERNAL   = "internal"
	EINVALID    = "invalid"
	ENOTFOUND   = "not_found"
	ETOOLARGE   = "too_large"
)

// Error is an application error with a code and a human-readable message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("application error: code=%s message=%s", e.Code, e.Message)
}

// Errorf builds an Error with the given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of the given error. A nil error yields the
// empty string, and any error that is not an application Error is reported
// as EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the given error. A nil error yields
// the empty string, and any error that is not an application Error is
// masked as a generic internal error.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
