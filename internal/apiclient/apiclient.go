// Package apiclient handles all communication with the eve backend. A single
// request helper attaches the session credential, and every failure funnels
// through the classifier before a caller sees it.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/eveplan/eveweb/internal/apierrors"
	"github.com/eveplan/eveweb/internal/logger"
	"github.com/eveplan/eveweb/internal/session"
	"github.com/eveplan/eveweb/internal/timecodec"
)

// Client is the typed client for the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store
	classifier *apierrors.Classifier
	codec      *timecodec.Codec
}

// New creates a client. baseURL includes the /api prefix.
func New(baseURL string, store *session.Store, classifier *apierrors.Classifier, codec *timecodec.Codec) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		store:      store,
		classifier: classifier,
		codec:      codec,
	}
}

// do is the single, unified helper for making API requests. The session
// token at dispatch time is attached as the Authorization credential -- raw,
// no scheme prefix -- except on the login call, which must never carry a
// stale token. Failures come back as classified *apierrors.Error values; on
// an auth failure the session is cleared before the error is returned, so
// failure handlers always observe the anonymous state.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if path != loginPath {
		if token := c.store.Token(); token != "" {
			req.Header.Set("Authorization", token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifier.ClassifyTransport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifier.ClassifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.classifier.Classify(resp.StatusCode, data)
		if apiErr.AuthFailure {
			if clearErr := c.store.Clear(); clearErr != nil {
				logger.Log.Error("clearing session after auth failure", "error", clearErr)
			}
		}
		return nil, apiErr
	}
	return data, nil
}

// decode unmarshals a response body, wrapping the error with the payload
// name for log context.
func decode(data []byte, what string, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", what, err)
	}
	return nil
}
