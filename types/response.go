package types

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	DB      bool   `json:"db"`
	Message string `json:"message"`
}

// ListCommentsResponse is returned by GET /api/comments. Limit and Offset
// echo the effective values after defaulting and clamping.
type ListCommentsResponse struct {
	OK     bool           `json:"ok"`
	Items  []*CommentView `json:"items"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// CreateCommentResponse is returned by POST /api/comments on success.
type CreateCommentResponse struct {
	OK   bool         `json:"ok"`
	Item *CommentView `json:"item"`
}

// ErrorResponse is the envelope for every error returned by the API.
type ErrorResponse struct {
	OK         bool   `json:"ok"`
	Error      string `json:"error"`
	Field      string `json:"field,omitempty"`
	RetryAfter int    `json:"retry_after,omitempty"`
}
