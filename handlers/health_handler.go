package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablon-app/tablon-backend/internal/store"
	"github.com/tablon-app/tablon-backend/types"
)

// HealthHandler reports service health, including whether the embedded
// database is initialized and reachable.
type HealthHandler struct {
	commentStore store.CommentStore
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(commentStore store.CommentStore) *HealthHandler {
	return &HealthHandler{commentStore: commentStore}
}

// Health handles GET /api/health. The endpoint itself always answers 200;
// the db field reports storage readiness.
func (h *HealthHandler) Health(c *gin.Context) {
	dbUp := h.commentStore.Ready()
	if dbUp {
		if err := h.commentStore.Ping(c.Request.Context()); err != nil {
			dbUp = false
		}
	}

	message := "ok"
	if !dbUp {
		message = "database unavailable"
	}

	c.JSON(http.StatusOK, types.HealthResponse{
		OK:      true,
		DB:      dbUp,
		Message: message,
	})
}
