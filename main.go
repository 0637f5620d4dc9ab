package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tablon-app/tablon-backend/config"
	"github.com/tablon-app/tablon-backend/handlers"
	"github.com/tablon-app/tablon-backend/internal/service"
	"github.com/tablon-app/tablon-backend/internal/store/sqlite"
	"github.com/tablon-app/tablon-backend/logger"
	"github.com/tablon-app/tablon-backend/middleware"
	"github.com/tablon-app/tablon-backend/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Open the embedded database. Open ensures the data directory exists
	// and applies the schema idempotently.
	commentStore, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	commentService := service.NewCommentService(commentStore)

	r := router.SetupRouter(router.Dependencies{
		Config:         cfg,
		CommentHandler: handlers.NewCommentHandler(commentService),
		HealthHandler:  handlers.NewHealthHandler(commentStore),
		RateLimiter:    middleware.NewFixedWindowLimiter(),
		Logger:         log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infow("server listening", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	stop()
	log.Info("shutdown signal received, draining connections")

	// Drain in-flight requests before releasing the storage handle; the
	// store must not close while requests may still be using it.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server shutdown failed", "error", err)
	}

	if err := commentStore.Close(); err != nil {
		log.Errorw("closing database failed", "error", err)
	}

	log.Info("shutdown complete")
}
