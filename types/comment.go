package types

// AnonymousName is the display placeholder used when a commenter leaves the
// name field blank.
const AnonymousName = "Anónimo"

// Comment is a stored comment row. Email is persisted but is never part of
// any API response; Message is stored raw and escaped only when rendered
// into a CommentView.
type Comment struct {
	ID        int64
	Name      string
	Email     string
	Message   string
	Date      string
	CreatedAt string
}

// CommentCreate is the request payload for submitting a comment.
// Name and Email are optional; Message is the only required field.
type CommentCreate struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// CommentView is the client-facing projection of a stored comment. The
// message is HTML-escaped and the email is deliberately absent. CreatedAt
// is populated for list responses only.
type CommentView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Message   string `json:"message"`
	Date      string `json:"date"`
	CreatedAt string `json:"created_at,omitempty"`
}
