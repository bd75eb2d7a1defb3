// Package errors provides structured error types for the dapview tool
// surface. These errors carry machine-readable codes plus hints that tell
// a tool caller how to correct course.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a category of error for programmatic handling
type ErrorCode string

const (
	// Dispatch errors
	CodeReentrantDispatch ErrorCode = "REENTRANT_DISPATCH"

	// Parameter errors
	CodeMissingParameter ErrorCode = "MISSING_PARAMETER"
	CodeInvalidParameter ErrorCode = "INVALID_PARAMETER"
	CodeUnknownMode      ErrorCode = "UNKNOWN_MODE"
)

// SessionError is a structured error type that includes enough context for
// a tool caller to understand what went wrong and how to fix it.
type SessionError struct {
	// Code is a machine-readable error category
	Code ErrorCode `json:"code"`

	// Message is a human-readable description of what went wrong
	Message string `json:"message"`

	// Hint provides actionable guidance on how to fix the error
	Hint string `json:"hint,omitempty"`

	// Cause is the underlying error, if any
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *SessionError) Error() string {
	if e.Hint == "" {
		return e.Message
	}
	return e.Message + " | Hint: " + e.Hint
}

// Unwrap returns the underlying error for error chaining
func (e *SessionError) Unwrap() error {
	return e.Cause
}

// ReentrantDispatch creates an error for a publish issued mid-dispatch
func ReentrantDispatch(err error) *SessionError {
	return &SessionError{
		Code:    CodeReentrantDispatch,
		Message: "an action was published while another was being dispatched",
		Hint:    "Publish actions only from outside bus handlers; a handler must finish before the next action starts.",
		Cause:   err,
	}
}

// MissingParameter creates an error for missing required parameters
func MissingParameter(paramName, description string) *SessionError {
	return &SessionError{
		Code:    CodeMissingParameter,
		Message: fmt.Sprintf("required parameter '%s' is missing", paramName),
		Hint:    description,
	}
}

// InvalidParameter creates an error for invalid parameter values
func InvalidParameter(paramName string, value interface{}, expected string) *SessionError {
	return &SessionError{
		Code:    CodeInvalidParameter,
		Message: fmt.Sprintf("invalid value for parameter '%s': %v", paramName, value),
		Hint:    fmt.Sprintf("Expected: %s", expected),
	}
}

// UnknownMode creates an error for a debugger mode outside the known set
func UnknownMode(mode string) *SessionError {
	return &SessionError{
		Code:    CodeUnknownMode,
		Message: fmt.Sprintf("unknown debugger mode '%s'", mode),
		Hint:    "Use one of: stopped, running, paused.",
	}
}

// FromError creates a SessionError from a generic error, preserving any
// existing structure
func FromError(err error) *SessionError {
	var se *SessionError
	if stderrors.As(err, &se) {
		return se
	}
	return &SessionError{
		Code:    "UNKNOWN_ERROR",
		Message: err.Error(),
		Cause:   err,
	}
}
