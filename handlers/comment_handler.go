package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tablon-app/tablon-backend/errors"
	"github.com/tablon-app/tablon-backend/types"
)

// CommentHandler handles the comment list and create endpoints.
type CommentHandler struct {
	commentService CommentServiceInterface
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService CommentServiceInterface) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListComments handles GET /api/comments. The limit and offset query
// parameters are optional; absent or non-numeric values fall back to the
// service defaults.
func (h *CommentHandler) ListComments(c *gin.Context) {
	limit := queryInt(c, "limit")
	offset := queryInt(c, "offset")

	items, effLimit, effOffset, err := h.commentService.List(c.Request.Context(), limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.ListCommentsResponse{
		OK:     true,
		Items:  items,
		Limit:  effLimit,
		Offset: effOffset,
	})
}

// CreateComment handles POST /api/comments.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req types.CommentCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	item, err := h.commentService.Create(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, types.CreateCommentResponse{
		OK:   true,
		Item: item,
	})
}

// bindJSONOrError binds the request body, attaching the appropriate
// structured error on failure: the body-size backstop maps to the
// too-large code, everything else is an invalid JSON body.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			_ = c.Error(apperrors.RequestTooLarge(maxBytesErr.Limit))
			return false
		}
		_ = c.Error(apperrors.MalformedRequest(err))
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter. It returns nil when
// the parameter is absent or non-numeric, leaving defaulting to the service.
func queryInt(c *gin.Context, name string) *int {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
