// Package apierrors normalizes transport and HTTP failures from the backend
// into user-facing errors and decides which of them invalidate the session.
package apierrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// DefaultMessage is used when neither the response body nor the status class
// yields anything better.
const DefaultMessage = "An error occurred"

// Error is a normalized backend failure. StatusCode is zero for transport
// failures where no response was received.
type Error struct {
	Message     string
	StatusCode  int
	AuthFailure bool
	Transport   bool
}

func (e *Error) Error() string {
	return e.Message
}

// IsAuthFailure reports whether err is a classified failure that requires
// re-authentication.
func IsAuthFailure(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.AuthFailure
}

// detailBody matches the backend's error envelope.
type detailBody struct {
	Detail string `json:"detail"`
}

// Notifier receives the user-facing message of every classified failure.
type Notifier interface {
	Push(message string)
}

// Classifier turns failures into Errors. The returned value is a pure
// function of (status, body, transport error); pushing the message to the
// notifier is the only side effect.
type Classifier struct {
	defaultMessage string
	notifier       Notifier
}

// NewClassifier creates a classifier. An empty defaultMessage falls back to
// DefaultMessage; a nil notifier disables notifications.
func NewClassifier(defaultMessage string, notifier Notifier) *Classifier {
	if defaultMessage == "" {
		defaultMessage = DefaultMessage
	}
	return &Classifier{defaultMessage: defaultMessage, notifier: notifier}
}

// ClassifyTransport normalizes a failure where no response was received.
func (c *Classifier) ClassifyTransport(err error) *Error {
	return c.notify(&Error{Message: err.Error(), Transport: true})
}

// Classify normalizes a non-2xx response. The body detail field wins over
// the status-class message table when present.
func (c *Classifier) Classify(status int, body []byte) *Error {
	detail := extractDetail(body)

	message := detail
	if message == "" {
		message = statusMessage(status, c.defaultMessage)
	}

	auth := status == http.StatusUnauthorized ||
		status == http.StatusForbidden ||
		authKeyword(detail)

	return c.notify(&Error{Message: message, StatusCode: status, AuthFailure: auth})
}

func (c *Classifier) notify(e *Error) *Error {
	if c.notifier != nil {
		c.notifier.Push(e.Message)
	}
	return e
}

func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var parsed detailBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	return parsed.Detail
}

// authKeyword mirrors the backend's session-invalidation wording. The match
// intentionally fires on any status code, so a session-expired detail on an
// otherwise ordinary failure still forces re-authentication.
func authKeyword(detail string) bool {
	d := strings.ToLower(detail)
	return strings.Contains(d, "session") || strings.Contains(d, "unauthorized")
}

func statusMessage(status int, defaultMessage string) string {
	switch {
	case status == http.StatusBadRequest:
		return "Invalid request"
	case status == http.StatusUnauthorized:
		return "Unauthorized - please log in"
	case status == http.StatusForbidden:
		return "You are not authorized to perform this action"
	case status == http.StatusNotFound:
		return "Resource not found"
	case status >= 500:
		return "Server error"
	default:
		return defaultMessage
	}
}
