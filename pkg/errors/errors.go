// Package errors provides coded, structured errors for monomod.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Pipeline errors
	ErrDiscoveryFailure   ErrorCode = "DISCOVERY_FAILURE"
	ErrAmbiguousHierarchy ErrorCode = "AMBIGUOUS_HIERARCHY"
	ErrEvaluatorMismatch  ErrorCode = "EVALUATOR_MISMATCH"
	ErrEvaluatorFailure   ErrorCode = "EVALUATOR_FAILURE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
)

// MonomodError represents a structured error with code and details
type MonomodError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MonomodError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MonomodError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MonomodError) Is(target error) bool {
	var targetErr *MonomodError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MonomodError with the given code and message
func New(code ErrorCode, message string) *MonomodError {
	return &MonomodError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MonomodError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MonomodError {
	return &MonomodError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MonomodError
func Wrap(err error, code ErrorCode, message string) *MonomodError {
	if err == nil {
		return nil
	}
	return &MonomodError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MonomodError {
	if err == nil {
		return nil
	}
	return &MonomodError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MonomodError) WithDetail(key string, value interface{}) *MonomodError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code anywhere in its chain
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var monoErr *MonomodError
		if !errors.As(err, &monoErr) {
			return false
		}
		if monoErr.Code == code {
			return true
		}
		err = monoErr.Wrapped
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown if err is not a MonomodError
func GetErrorCode(err error) ErrorCode {
	var monoErr *MonomodError
	if errors.As(err, &monoErr) {
		return monoErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MonomodError
func GetErrorDetails(err error) map[string]interface{} {
	var monoErr *MonomodError
	if errors.As(err, &monoErr) {
		return monoErr.Details
	}
	return nil
}
