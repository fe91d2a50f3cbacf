package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eveplan/eveweb/internal/session"
)

const (
	loginPath  = "/auth/login"
	logoutPath = "/auth/logout"
)

type loginRequest struct {
	Email string `json:"email"`
}

type loginResponse struct {
	SessionID string `json:"session_id"`
}

// Login authenticates the email against the backend and stores the returned
// token together with the identity. On failure the existing session state is
// left untouched.
func (c *Client) Login(ctx context.Context, email string) (session.Session, error) {
	data, err := c.do(ctx, http.MethodPost, loginPath, loginRequest{Email: email})
	if err != nil {
		return session.Session{}, err
	}

	var resp loginResponse
	if err := decode(data, "login", &resp); err != nil {
		return session.Session{}, err
	}
	if resp.SessionID == "" {
		return session.Session{}, fmt.Errorf("login response missing session_id")
	}

	if err := c.store.Set(resp.SessionID, email); err != nil {
		return session.Session{}, err
	}
	return session.Session{Token: resp.SessionID, Email: email}, nil
}

// Logout tells the backend to invalidate the session, then clears local
// state unconditionally. A failed backend call never leaves the client
// looking authenticated.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, logoutPath, struct{}{})

	// The gateway already clears on auth failures; Clear is idempotent.
	if clearErr := c.store.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}
