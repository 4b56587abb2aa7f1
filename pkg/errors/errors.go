package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeValidation indicates malformed or unsupported client input.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeNotFound indicates a well-formed request matched nothing.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeDatabase indicates the storage round-trip itself failed.
	ErrCodeDatabase ErrorCode = "DATABASE_ERROR"
	// ErrCodeInternal indicates any other unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError carries an error code for programmatic handling, a
// human-readable message, the underlying cause and optional context.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Validation returns a VALIDATION_ERROR with a formatted message.
func Validation(format string, args ...any) *StructuredError {
	return New(ErrCodeValidation, fmt.Sprintf(format, args...))
}

// NotFound returns a NOT_FOUND error with a formatted message.
func NotFound(format string, args ...any) *StructuredError {
	return New(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

// Database wraps a storage failure.
func Database(message string, cause error) *StructuredError {
	return Wrap(ErrCodeDatabase, message, cause)
}

// CodeOf returns the code of the first StructuredError in the chain,
// or ErrCodeInternal if there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

func IsValidation(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeValidation
}

func IsNotFound(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeNotFound
}

func IsDatabase(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeDatabase
}
