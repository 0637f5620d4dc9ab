package handlers

import (
	"context"

	"github.com/tablon-app/tablon-backend/types"
)

// CommentServiceInterface defines the service operations the comment
// handlers depend on. Kept as an interface so handler tests can mock it.
type CommentServiceInterface interface {
	Create(ctx context.Context, name, email, message string) (*types.CommentView, error)
	List(ctx context.Context, limit, offset *int) ([]*types.CommentView, int, int, error)
}
