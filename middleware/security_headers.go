package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/tablon-app/tablon-backend/config"
)

// SecurityHeadersMiddleware adds security-related HTTP headers to all
// responses: clickjacking, MIME sniffing, and referrer protections, plus
// HSTS in production.
func SecurityHeadersMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only in production to avoid issues during local development.
		if cfg.IsProduction() {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
