package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tablon-app/tablon-backend/config"
	"github.com/tablon-app/tablon-backend/handlers"
	"github.com/tablon-app/tablon-backend/middleware"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config         *config.Config
	CommentHandler *handlers.CommentHandler
	HealthHandler  *handlers.HealthHandler
	RateLimiter    middleware.RateLimiterInterface
	Logger         *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", deps.HealthHandler.Health)
		api.GET("/comments", deps.CommentHandler.ListComments)

		// The create route alone carries the body ceiling and the
		// fixed-window rate limit.
		api.POST("/comments",
			middleware.BodySizeLimit(deps.Config.Server.MaxBodyBytes),
			middleware.EndpointRateLimiter(
				deps.RateLimiter,
				deps.Config.RateLimit.MaxRequests,
				time.Duration(deps.Config.RateLimit.WindowSeconds)*time.Second,
			),
			deps.CommentHandler.CreateComment,
		)
	}

	return r
}
