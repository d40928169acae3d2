package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Scribe error code.
type ErrorCode string

const (
	ErrConfiguration     ErrorCode = "CONFIGURATION"       // programmer misuse
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"     // 400
	ErrUnknownLanguage   ErrorCode = "UNKNOWN_LANGUAGE"    // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"           // 404
	ErrNameAlreadyExists ErrorCode = "NAME_ALREADY_EXISTS" // 409
	ErrLimitExceeded     ErrorCode = "LIMIT_EXCEEDED"      // 413
	ErrInternal          ErrorCode = "INTERNAL"            // 500
)

// ScribeError represents a structured error with code, status, and details.
type ScribeError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any

	// cause is the wrapped error, if any. Not serialized.
	cause error
}

// Error implements the error interface.
func (e *ScribeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause so errors.As/Is can see through it.
func (e *ScribeError) Unwrap() error {
	return e.cause
}

// NewConfiguration creates an error for programmer misuse of a builder or utility,
// such as a non-positive chunk size.
func NewConfiguration(msg string) *ScribeError {
	return &ScribeError{
		Code:    ErrConfiguration,
		Status:  500,
		Message: msg,
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ScribeError {
	return &ScribeError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewUnknownLanguage creates a 400 error for a code language outside the supported set.
func NewUnknownLanguage(lang string) *ScribeError {
	return &ScribeError{
		Code:    ErrUnknownLanguage,
		Status:  400,
		Message: fmt.Sprintf("unsupported code language: %q", lang),
		Details: map[string]any{"language": lang},
	}
}

// NewNotFound creates a 404 error for when a draft cannot be found.
func NewNotFound(identifier string) *ScribeError {
	return &ScribeError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("draft not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewNameAlreadyExists creates a 409 error for name collisions.
func NewNameAlreadyExists(workspace, name string) *ScribeError {
	return &ScribeError{
		Code:    ErrNameAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("draft with name %q already exists in workspace %q", name, workspace),
		Details: map[string]any{"workspace": workspace, "name": name},
	}
}

// NewLimitExceeded creates a 413 error when a payload breaks one or more API limits.
// violations lists each broken limit in human-readable form.
func NewLimitExceeded(violations []string, cause error) *ScribeError {
	msg := "payload exceeds API limits"
	if len(violations) == 1 {
		msg = violations[0]
	} else if len(violations) > 1 {
		msg = fmt.Sprintf("payload exceeds API limits (%d violations)", len(violations))
	}
	return &ScribeError{
		Code:    ErrLimitExceeded,
		Status:  413,
		Message: msg,
		Details: map[string]any{"violations": violations},
		cause:   cause,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ScribeError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ScribeError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		cause:   err,
	}
}

// Is checks if an error is, or wraps, a ScribeError with the given code.
func Is(err error, code ErrorCode) bool {
	var sErr *ScribeError
	if stderrors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}
