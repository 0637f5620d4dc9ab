package logger

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// LogHTTPError logs an HTTP request error with context from a gin.Context.
// Client faults (4xx) are logged at warn level, server faults at error level;
// detail of server faults stays in the log and never reaches the response.
func LogHTTPError(c *gin.Context, err error, statusCode int, message string) {
	log := GetLogger()

	fields := []interface{}{
		"error", err,
		"status_code", statusCode,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"client_ip", c.ClientIP(),
	}

	if requestID := c.GetString("request_id"); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}

	if headers := filterSensitiveHeaders(c.Request.Header); len(headers) > 0 {
		fields = append(fields, "headers", headers)
	}

	if statusCode >= http.StatusInternalServerError {
		log.Errorw(message, fields...)
		return
	}
	log.Warnw(message, fields...)
}

// filterSensitiveHeaders removes sensitive information from headers before logging.
func filterSensitiveHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string)

	for name, values := range headers {
		if strings.EqualFold(name, "Authorization") ||
			strings.EqualFold(name, "Cookie") ||
			strings.Contains(strings.ToLower(name), "token") ||
			strings.Contains(strings.ToLower(name), "key") ||
			strings.Contains(strings.ToLower(name), "secret") {
			filtered[name] = "[REDACTED]"
			continue
		}

		if len(values) > 0 {
			filtered[name] = values[0]
		}
	}

	return filtered
}
