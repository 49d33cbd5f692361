package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Cache file errors
	ErrCodeCacheNotFound ErrorCode = "CACHE_NOT_FOUND"
	ErrCodeCacheCorrupt  ErrorCode = "CACHE_CORRUPT"
	ErrCodeCacheRead     ErrorCode = "CACHE_READ"
	ErrCodeCacheWrite    ErrorCode = "CACHE_WRITE"

	// Probe errors
	ErrCodeProbeFailed ErrorCode = "PROBE_FAILED"

	// Pattern errors
	ErrCodePatternInvalid ErrorCode = "PATTERN_INVALID"

	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// StampError represents a structured error with context
type StampError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *StampError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *StampError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *StampError) WithDetail(key string, value interface{}) *StampError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *StampError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new StampError
func New(code ErrorCode, message string) *StampError {
	return &StampError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a StampError
func Wrap(err error, code ErrorCode, message string) *StampError {
	return &StampError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific StampError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	stampErr, ok := err.(*StampError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return stampErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	stampErr, ok := err.(*StampError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return stampErr.Code
}
