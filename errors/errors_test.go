package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tablon-app/tablon-backend/logger"
)

func init() {
	logger.IsTest = true
}

func TestValidationFailed(t *testing.T) {
	err := ValidationFailed(CodeValidationMinLength, "message", "message must be at least 5 characters")

	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, CodeValidationMinLength, err.Code)
	assert.Equal(t, "message", err.Field)
	assert.Equal(t, http.StatusBadRequest, err.GetHTTPStatus())
}

func TestMalformedRequest(t *testing.T) {
	raw := stderrors.New("unexpected end of JSON input")
	err := MalformedRequest(raw)

	assert.Equal(t, CodeJSONInvalidBody, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.GetHTTPStatus())
	assert.ErrorIs(t, err, raw)
}

func TestRequestTooLarge(t *testing.T) {
	err := RequestTooLarge(64 * 1024)

	assert.Equal(t, CodeRequestTooLarge, err.Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, err.GetHTTPStatus())
	assert.Contains(t, err.Detail, "65536")
}

func TestNewDatabaseError(t *testing.T) {
	raw := stderrors.New("disk I/O error")
	err := NewDatabaseError(raw)

	assert.Equal(t, CodeDBError, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.GetHTTPStatus())
	// Detail must not leak storage internals to the client-facing message.
	assert.NotContains(t, err.Message, "disk I/O error")
	assert.ErrorIs(t, err, raw)
}

func TestGetHTTPStatusDefaultsToInternalError(t *testing.T) {
	err := &AppError{Type: ServerError, Code: CodeInternalError, Message: "boom"}
	assert.Equal(t, http.StatusInternalServerError, err.GetHTTPStatus())
}

func TestErrorStringIncludesDetail(t *testing.T) {
	err := RequestTooLarge(1024)
	assert.Contains(t, err.Error(), "limit: 1024 bytes")
}
