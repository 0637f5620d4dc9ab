package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tablon-app/tablon-backend/errors"
	"github.com/tablon-app/tablon-backend/logger"
	"github.com/tablon-app/tablon-backend/types"
)

// ErrorHandler converts errors attached with c.Error() into the API's JSON
// error envelope. Validation and parsing faults keep their machine-readable
// code; storage and unknown faults are logged with detail server-side and
// surface only a generic code.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if appError, ok := err.(*apperrors.AppError); ok {
			statusCode := appError.GetHTTPStatus()
			logger.LogHTTPError(c, err, statusCode, fmt.Sprintf("%s error", appError.Type))

			c.JSON(statusCode, types.ErrorResponse{
				OK:    false,
				Error: appError.Code,
				Field: appError.Field,
			})
			return
		}

		// Anything else reaching the boundary is an unhandled server fault.
		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unexpected server error")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			OK:    false,
			Error: apperrors.CodeInternalError,
		})
	}
}
