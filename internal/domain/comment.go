package domain

import "fmt"

// Comment belongs to exactly one event. UserID and AuthorEmail are stamped
// by the backend from the session.
type Comment struct {
	ID          int64  `json:"id,omitempty"`
	EventID     int64  `json:"event_id"`
	UserID      string `json:"user_id,omitempty"`
	Message     string `json:"message"`
	Rating      int    `json:"rating"`
	AuthorEmail string `json:"author_email,omitempty"`
}

// CommentPayload is the create/update body: only the caller-mutable content,
// never the server-assigned fields.
type CommentPayload struct {
	Message string `json:"message" validate:"required"`
	Rating  int    `json:"rating" validate:"gte=0,lte=5"`
}

// Validate checks message presence and the rating range before submission.
func (p CommentPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("comment is invalid: %w", err)
	}
	return nil
}

// EditableBy reports whether the given identity owns the comment. This only
// decides whether edit/delete controls are rendered; the backend enforces
// ownership on every mutation.
func (c Comment) EditableBy(email string) bool {
	return email != "" && c.AuthorEmail == email
}
