// Package errors provides structured error types for the phylodraw pipeline.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across all pipeline stages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each pipeline stage owns a small set of codes:
//   - NOT_FOUND: the input tree file is missing or unreadable
//   - SYNTAX_ERROR: the tree description is malformed (carries position info)
//   - INVALID_CONFIG: a style or layout parameter violates its constraint
//   - EXPORT_ERROR: the output document could not be serialized or written
//   - INTERNAL_ERROR: unexpected internal failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSyntax, "line %d: unbalanced ')'", line)
//	if errors.Is(err, errors.ErrCodeSyntax) {
//	    // Handle parse error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeExport, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the pipeline failure taxonomy.
const (
	// ErrCodeNotFound signals a missing or unreadable input file.
	ErrCodeNotFound Code = "NOT_FOUND"

	// ErrCodeSyntax signals malformed tree text. Messages carry the
	// line and character offset of the offending token.
	ErrCodeSyntax Code = "SYNTAX_ERROR"

	// ErrCodeInvalidConfig signals a style or layout parameter that
	// violates its constraint. Messages name the field and value.
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// ErrCodeExport signals that a rendered document could not be
	// serialized or written. This is the one failure that leaves a
	// valid in-memory render behind.
	ErrCodeExport Code = "EXPORT_ERROR"

	// ErrCodeInternal signals an unexpected internal failure.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
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
