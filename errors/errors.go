package errors

import (
	"fmt"
	"net/http"

	"github.com/tablon-app/tablon-backend/logger"
)

type ErrorType string

const (
	ValidationError       ErrorType = "VALIDATION_ERROR"
	MalformedRequestError ErrorType = "MALFORMED_REQUEST"
	DatabaseError         ErrorType = "DATABASE_ERROR"
	RateLimitError        ErrorType = "RATE_LIMIT_EXCEEDED"
	ServerError           ErrorType = "SERVER_ERROR"
)

// Machine-readable error codes returned on the wire.
const (
	CodeValidationMinLength = "VALIDATION_MIN_LENGTH"
	CodeValidationMaxLength = "VALIDATION_MAX_LENGTH"
	CodeValidationEmail     = "VALIDATION_EMAIL"
	CodeJSONInvalidBody     = "JSON_INVALID_BODY"
	CodeRequestTooLarge     = "REQUEST_TOO_LARGE"
	CodeRateLimited         = "RATE_LIMITED"
	CodeDBError             = "DB_ERROR"
	CodeInternalError       = "INTERNAL_ERROR"
)

// AppError represents a structured application error. Code and Field are the
// client-facing parts; Detail and Raw stay server-side.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Field      string    `json:"field,omitempty"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status code associated with the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.HTTPStatus
}

// ValidationFailed creates a field-level validation error with a wire code.
func ValidationFailed(code, field, message string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Code:       code,
		Field:      field,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MalformedRequest creates an error for an unparseable JSON body.
func MalformedRequest(err error) *AppError {
	return &AppError{
		Type:       MalformedRequestError,
		Code:       CodeJSONInvalidBody,
		Message:    "Request body is not valid JSON",
		Detail:     err.Error(),
		HTTPStatus: http.StatusBadRequest,
		Raw:        err,
	}
}

// RequestTooLarge creates an error for a request body over the size ceiling.
func RequestTooLarge(maxBytes int64) *AppError {
	return &AppError{
		Type:       MalformedRequestError,
		Code:       CodeRequestTooLarge,
		Message:    "Request body exceeds size limit",
		Detail:     fmt.Sprintf("limit: %d bytes", maxBytes),
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}
}

// NewDatabaseError wraps a storage failure. The original error is logged but
// the client only ever sees the generic DB_ERROR code.
func NewDatabaseError(err error) *AppError {
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Code:       CodeDBError,
		Message:    "Database operation failed",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// InternalServerError creates a generic server fault.
func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Code:       CodeInternalError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}
