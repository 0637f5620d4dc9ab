package service

import (
	"regexp"
	"strings"

	apperrors "github.com/tablon-app/tablon-backend/errors"
)

const (
	maxNameLength    = 100
	maxEmailLength   = 150
	minMessageLength = 5
	maxMessageLength = 2000
)

// emailPattern is a basic local@domain.tld shape check: non-space characters,
// '@', non-space characters, '.', non-space characters.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidatedComment holds the normalized fields of an accepted submission.
type ValidatedComment struct {
	Name    string
	Email   string
	Message string
}

// ValidateComment trims all inputs, truncates name and email to their length
// caps, and checks the message bounds and email shape. Checks run in a fixed
// order (message-min, message-max, email) and the first failure wins.
func ValidateComment(name, email, message string) (*ValidatedComment, *apperrors.AppError) {
	name = truncate(strings.TrimSpace(name), maxNameLength)
	email = truncate(strings.TrimSpace(email), maxEmailLength)
	message = strings.TrimSpace(message)

	if len([]rune(message)) < minMessageLength {
		return nil, apperrors.ValidationFailed(
			apperrors.CodeValidationMinLength, "message",
			"message must be at least 5 characters after trimming")
	}
	if len([]rune(message)) > maxMessageLength {
		return nil, apperrors.ValidationFailed(
			apperrors.CodeValidationMaxLength, "message",
			"message must be at most 2000 characters")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return nil, apperrors.ValidationFailed(
			apperrors.CodeValidationEmail, "email",
			"email must look like local@domain.tld")
	}

	return &ValidatedComment{Name: name, Email: email, Message: message}, nil
}

// truncate cuts s to at most n runes. Over-long names and emails are
// truncated, not rejected.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// SanitizeForDisplay escapes HTML-significant characters so a consuming
// renderer cannot interpret stored text as markup. The ampersand is replaced
// first so the entities introduced by the later substitutions are not
// double-escaped. Applied once per outbound message, never at write time.
func SanitizeForDisplay(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	text = strings.ReplaceAll(text, `"`, "&quot;")
	text = strings.ReplaceAll(text, "'", "&#39;")
	return text
}
