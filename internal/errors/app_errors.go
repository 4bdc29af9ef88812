package errors

import (
	"fmt"
)

// ErrorType classifies failures raised below the transport layer.
type ErrorType string

const (
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeTooLarge   ErrorType = "TOO_LARGE"
	ErrTypeEncoding   ErrorType = "ENCODING"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewValidationError reports input rejected before any processing.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewParsingError reports input that could not be decoded.
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewTooLargeError reports input over a configured size limit.
func NewTooLargeError(limit int64, cause error) *AppError {
	return NewAppError(ErrTypeTooLarge, "input exceeds size limit", cause).WithContext("max_bytes", limit)
}

// NewEncodingError reports a failure producing output.
func NewEncodingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeEncoding, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
