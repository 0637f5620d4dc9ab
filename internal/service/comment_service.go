// Package service implements the business rules of the comment board:
// validation of incoming submissions, sanitization of outgoing views, and
// pagination defaults.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/tablon-app/tablon-backend/errors"
	"github.com/tablon-app/tablon-backend/internal/store"
	"github.com/tablon-app/tablon-backend/logger"
	"github.com/tablon-app/tablon-backend/types"
)

const (
	defaultLimit = 20
	minLimit     = 1
	maxLimit     = 100
)

// CommentService orchestrates storage and validation. It is the only
// component that calls both.
type CommentService struct {
	store store.CommentStore
	log   *zap.SugaredLogger
	now   func() time.Time
}

// NewCommentService creates a CommentService backed by the given store.
func NewCommentService(commentStore store.CommentStore) *CommentService {
	return &CommentService{
		store: commentStore,
		log:   logger.GetLogger(),
		now:   time.Now,
	}
}

// Create validates and persists a comment and returns its client-facing
// view. The view carries the sanitized message and the display name, never
// the email.
func (s *CommentService) Create(ctx context.Context, name, email, message string) (*types.CommentView, error) {
	v, verr := ValidateComment(name, email, message)
	if verr != nil {
		return nil, verr
	}

	date := s.now().UTC().Format(time.RFC3339)
	comment := &types.Comment{
		Name:    v.Name,
		Email:   v.Email,
		Message: v.Message,
		Date:    date,
	}

	id, err := s.store.CreateComment(ctx, comment)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	s.log.Infow("comment created",
		"id", id,
		"name", displayName(v.Name),
		"email", logger.MaskEmail(v.Email),
		"message_length", len(v.Message),
	)

	return &types.CommentView{
		ID:      id,
		Name:    displayName(v.Name),
		Message: SanitizeForDisplay(v.Message),
		Date:    date,
	}, nil
}

// List fetches a page of comments newest-first and maps them to views.
// A nil limit or offset means the client did not supply a usable value; the
// effective values after defaulting and clamping are returned alongside the
// views so the handler can echo them.
func (s *CommentService) List(ctx context.Context, limit, offset *int) ([]*types.CommentView, int, int, error) {
	effLimit := clampLimit(limit)
	effOffset := clampOffset(offset)

	comments, err := s.store.ListComments(ctx, effLimit, effOffset)
	if err != nil {
		return nil, effLimit, effOffset, apperrors.NewDatabaseError(err)
	}

	views := make([]*types.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, &types.CommentView{
			ID:        c.ID,
			Name:      displayName(c.Name),
			Message:   SanitizeForDisplay(c.Message),
			Date:      c.Date,
			CreatedAt: c.CreatedAt,
		})
	}

	return views, effLimit, effOffset, nil
}

// clampLimit applies the default for an absent value and clamps to [1,100].
func clampLimit(limit *int) int {
	if limit == nil {
		return defaultLimit
	}
	if *limit < minLimit {
		return minLimit
	}
	if *limit > maxLimit {
		return maxLimit
	}
	return *limit
}

// clampOffset applies the default for an absent value and clamps to [0,∞).
func clampOffset(offset *int) int {
	if offset == nil || *offset < 0 {
		return 0
	}
	return *offset
}

func displayName(name string) string {
	if name == "" {
		return types.AnonymousName
	}
	return name
}
