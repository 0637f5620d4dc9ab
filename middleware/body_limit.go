package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tablon-app/tablon-backend/errors"
	"github.com/tablon-app/tablon-backend/types"
)

// BodySizeLimit rejects request bodies over maxBytes. A declared
// Content-Length over the ceiling is refused before any parsing; bodies
// without a declared length are capped with http.MaxBytesReader so an
// oversized chunked upload fails during the JSON bind instead.
func BodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			appErr := apperrors.RequestTooLarge(maxBytes)
			c.AbortWithStatusJSON(appErr.GetHTTPStatus(), types.ErrorResponse{
				OK:    false,
				Error: appErr.Code,
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
