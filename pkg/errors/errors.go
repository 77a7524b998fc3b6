// Package errors provides structured error types for pinboard.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the batch generator and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures and planner/library mismatches
//   - *_OUT_OF_RANGE: Index range errors (design ids outside the valid range)
//   - RENDER_*: Geometry failures for a single candidate
//   - SOLVER_*: Misuse of a solver instance
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeVariantOutOfRange, "design %d outside [0, %d)", id, total)
//	if errors.Is(err, errors.ErrCodeVariantOutOfRange) {
//	    // Handle range error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRenderFailed, origErr, "render candidate %d", idx)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidPinCount Code = "INVALID_PIN_COUNT"
	ErrCodeInvalidPattern  Code = "INVALID_PATTERN"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Range errors
	ErrCodeVariantOutOfRange Code = "VARIANT_OUT_OF_RANGE"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Search errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"
	ErrCodeSolverBusy   Code = "SOLVER_BUSY"

	// Backend errors
	ErrCodeBackend Code = "BACKEND_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface. A cause whose text is the message
// itself is not repeated.
func (e *Error) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RangeError reports a requested index outside of [0, Total).
// It carries the numbers so callers (CLI, HTTP API) can render the valid range.
type RangeError struct {
	Index int
	Total int
	What  string // e.g. "design", "combination"
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	what := e.What
	if what == "" {
		what = "index"
	}
	if e.Total == 0 {
		return fmt.Sprintf("%s %d out of range: no valid entries", what, e.Index)
	}
	return fmt.Sprintf("%s %d out of range: valid range is [0, %d)", what, e.Index, e.Total)
}

// Code returns the error code for this error type.
func (e *RangeError) Code() Code {
	return ErrCodeVariantOutOfRange
}

// OutOfRange builds a coded error around a RangeError so both
// errors.Is(err, ErrCodeVariantOutOfRange) and errors.As(err, *RangeError) work.
func OutOfRange(what string, index, total int) *Error {
	re := &RangeError{Index: index, Total: total, What: what}
	return &Error{
		Code:    ErrCodeVariantOutOfRange,
		Message: re.Error(),
		Cause:   re,
	}
}
