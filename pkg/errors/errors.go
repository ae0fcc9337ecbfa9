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

	// Traversal errors
	ErrNotADirectory ErrorCode = "NOT_A_DIRECTORY"
	ErrWalk          ErrorCode = "WALK"
	ErrIgnoreRead    ErrorCode = "IGNORE_READ"

	// Link errors
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrSymlinkRemove ErrorCode = "SYMLINK_REMOVE"

	// External command errors
	ErrGitCommand ErrorCode = "GIT_COMMAND"
	ErrGitClone   ErrorCode = "GIT_CLONE"
	ErrEditor     ErrorCode = "EDITOR"
)

// DotfmError represents a structured error with code and details
type DotfmError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotfmError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotfmError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DotfmError) Is(target error) bool {
	var targetErr *DotfmError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotfmError with the given code and message
func New(code ErrorCode, message string) *DotfmError {
	return &DotfmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotfmError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotfmError {
	return &DotfmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotfmError
func Wrap(err error, code ErrorCode, message string) *DotfmError {
	if err == nil {
		return nil
	}
	return &DotfmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotfmError {
	if err == nil {
		return nil
	}
	return &DotfmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotfmError) WithDetail(key string, value interface{}) *DotfmError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dotfmErr *DotfmError
	if errors.As(err, &dotfmErr) {
		return dotfmErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotfmError
func GetErrorCode(err error) ErrorCode {
	var dotfmErr *DotfmError
	if errors.As(err, &dotfmErr) {
		return dotfmErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DotfmError
func GetErrorDetails(err error) map[string]interface{} {
	var dotfmErr *DotfmError
	if errors.As(err, &dotfmErr) {
		return dotfmErr.Details
	}
	return nil
}
