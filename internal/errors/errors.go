package errors

import (
	"fmt"
	"net/http"
)

// APIError is an error that already knows its HTTP status and stable code.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Error codes carried in the error_code extension.
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeMissingFile       = "MISSING_FILE"
	CodeUnsupportedFile   = "UNSUPPORTED_FILE"
	CodeMalformedWorkbook = "MALFORMED_WORKBOOK"
	CodePayloadTooLarge   = "PAYLOAD_TOO_LARGE"
	CodeRateLimited       = "RATE_LIMIT_EXCEEDED"
	CodeTimeout           = "REQUEST_TIMEOUT"
	CodeInternal          = "INTERNAL_SERVER_ERROR"
)

// Predefined errors
var (
	ErrInvalidRequest    = New(http.StatusBadRequest, CodeInvalidRequest, "Invalid request format")
	ErrMissingFile       = New(http.StatusBadRequest, CodeMissingFile, "Se requiere un archivo en el campo 'file'")
	ErrUnsupportedFile   = New(http.StatusBadRequest, CodeUnsupportedFile, "El archivo debe ser Excel (.xls/.xlsx)")
	ErrMalformedWorkbook = New(http.StatusBadRequest, CodeMalformedWorkbook, "No se pudo leer el archivo Excel")
	ErrPayloadTooLarge   = New(http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "The request body exceeds the maximum allowed size")
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, CodeRateLimited, "Rate limit exceeded")
	ErrInternalServer    = New(http.StatusInternalServerError, CodeInternal, "Internal server error")
)

// InvalidRequestWithError creates an invalid request error with details
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeInvalidRequest, "Invalid request format", err.Error())
}

// PayloadTooLarge reports the configured limit in the error details.
func PayloadTooLarge(limit int64) *APIError {
	return NewWithDetails(http.StatusRequestEntityTooLarge, CodePayloadTooLarge,
		fmt.Sprintf("The request body exceeds the maximum allowed size of %d bytes", limit),
		map[string]int64{"max_bytes": limit})
}
