// Package store defines the persistence interfaces for the comment board.
package store

import (
	"context"

	"github.com/tablon-app/tablon-backend/types"
)

// CommentStore provides durable, append-only storage of comments. There are
// no update or delete operations; comments are immutable once created.
type CommentStore interface {
	// CreateComment appends one comment and returns its assigned id.
	CreateComment(ctx context.Context, comment *types.Comment) (int64, error)

	// ListComments returns at most limit comments, skipping the first
	// offset, ordered newest-first (created_at desc, id desc).
	ListComments(ctx context.Context, limit, offset int) ([]*types.Comment, error)

	// Ping verifies the underlying database connection.
	Ping(ctx context.Context) error

	// Ready reports whether initialization has completed successfully.
	Ready() bool

	// Close flushes and releases the underlying database handle.
	Close() error
}
