package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eveplan/eveweb/internal/domain"
)

// EventComments returns the comments under an event. An event without
// comments yields an empty slice, not an error.
func (c *Client) EventComments(ctx context.Context, eventID int64) ([]domain.Comment, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d/comments", eventID), nil)
	if err != nil {
		return nil, err
	}

	var comments []domain.Comment
	if err := decode(data, "comments", &comments); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}

// CreateComment posts a new comment under an event. The payload carries only
// the caller-mutable content; the backend stamps id, event reference and
// author identity.
func (c *Client) CreateComment(ctx context.Context, eventID int64, payload domain.CommentPayload) (domain.Comment, error) {
	if err := payload.Validate(); err != nil {
		return domain.Comment{}, err
	}
	return c.commentCall(ctx, http.MethodPost, fmt.Sprintf("/events/%d/comments", eventID), payload)
}

// UpdateComment replaces the mutable content of a comment. Ownership is
// enforced by the backend.
func (c *Client) UpdateComment(ctx context.Context, eventID, commentID int64, payload domain.CommentPayload) (domain.Comment, error) {
	if err := payload.Validate(); err != nil {
		return domain.Comment{}, err
	}
	return c.commentCall(ctx, http.MethodPut, fmt.Sprintf("/events/%d/comments/%d", eventID, commentID), payload)
}

// DeleteComment removes a comment. Ownership is enforced by the backend.
func (c *Client) DeleteComment(ctx context.Context, eventID, commentID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d/comments/%d", eventID, commentID), nil)
	return err
}

func (c *Client) commentCall(ctx context.Context, method, path string, payload domain.CommentPayload) (domain.Comment, error) {
	data, err := c.do(ctx, method, path, payload)
	if err != nil {
		return domain.Comment{}, err
	}

	var comment domain.Comment
	if err := decode(data, "comment", &comment); err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}
