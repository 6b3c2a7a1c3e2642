package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for pipeline errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Catalog error codes
const (
	CATALOG_LOAD_FAILED  ErrorCode = "CATALOG_LOAD_FAILED"
	CATALOG_PARSE_FAILED ErrorCode = "CATALOG_PARSE_FAILED"
	RULE_INVALID         ErrorCode = "RULE_INVALID"
)

// Decision store error codes
const (
	STORE_OPEN_FAILED  ErrorCode = "STORE_OPEN_FAILED"
	STORE_QUERY_FAILED ErrorCode = "STORE_QUERY_FAILED"
)

// Operation surface error codes
const (
	TOOL_UNKNOWN     ErrorCode = "TOOL_UNKNOWN"
	RESOURCE_UNKNOWN ErrorCode = "RESOURCE_UNKNOWN"
	TOOL_BAD_ARGS    ErrorCode = "TOOL_BAD_ARGS"
)

// External collaborator error codes
const (
	LLM_UNAVAILABLE ErrorCode = "LLM_UNAVAILABLE"
	LLM_TIMEOUT     ErrorCode = "LLM_TIMEOUT"
	LLM_UNPARSABLE  ErrorCode = "LLM_UNPARSABLE"
)

// PipelineError represents a structured error with error code, message, and
// optional cause. It supports error wrapping and retryability hints for error
// handling logic.
type PipelineError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *PipelineError) Is(target error) bool {
	var perr *PipelineError
	if errors.As(target, &perr) {
		return e.Code == perr.Code
	}
	return false
}

// NewError creates a new non-retryable PipelineError with the given code and message.
func NewError(code ErrorCode, message string) *PipelineError {
	return &PipelineError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     nil,
	}
}

// NewRetryableError creates a new retryable PipelineError with the given code
// and message. Use this for transient errors that may succeed on retry
// (e.g., an LLM endpoint timing out).
func NewRetryableError(code ErrorCode, message string) *PipelineError {
	return &PipelineError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     nil,
	}
}

// WrapError creates a new non-retryable PipelineError that wraps an existing
// error. The wrapped error is accessible via Unwrap() for chain inspection.
func WrapError(code ErrorCode, message string, cause error) *PipelineError {
	return &PipelineError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}

// IsRetryable reports whether err (or any error in its chain) is a
// PipelineError marked retryable.
func IsRetryable(err error) bool {
	var perr *PipelineError
	if errors.As(err, &perr) {
		return perr.Retryable
	}
	return false
}

// CodeOf extracts the ErrorCode from err if it is a PipelineError,
// returning the empty code otherwise.
func CodeOf(err error) ErrorCode {
	var perr *PipelineError
	if errors.As(err, &perr) {
		return perr.Code
	}
	return ""
}
