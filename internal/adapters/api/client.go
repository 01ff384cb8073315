// Package api is the HTTP adapter for the EduMate backend. It owns
// bearer-credential attachment, the client-enforced request deadline,
// and the normalization of every drifting payload shape into the
// domain types; nothing above this package sees backend schema drift.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds every backend call. The original client had no
// deadline; here expiry surfaces as a transport error so a stuck call
// becomes a failed widget or a Failed attempt transition, never a hang.
const DefaultTimeout = 10 * time.Second

// ErrUnauthorized marks a request rejected for a missing, invalid, or
// expired credential. Callers treat it as "not authenticated": it is
// the one error class that must propagate to the session layer so the
// gate re-evaluates instead of trusting stale in-memory state.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-401 backend rejection with the server's detail text.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %s (status %d)", e.Detail, e.Status)
	}
	return fmt.Sprintf("backend: status %d", e.Status)
}

// TokenSource supplies the current bearer token, empty when
// unauthenticated. The Session Manager satisfies this.
type TokenSource interface {
	Token() string
}

// Client talks to the EduMate backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource

	// onUnauthorized is invoked once per 401 so the session layer can
	// invalidate itself before the error reaches the caller.
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithHTTPClient substitutes the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// OnUnauthorized registers the session-invalidation hook.
func OnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// NewClient creates a backend client.
// PRE: baseURL is a reachable API root, tokens is non-nil
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: DefaultTimeout},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody is the backend's rejection shape.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// do issues one request and decodes the response into out (out may be
// nil for calls whose body is ignored). A 401 invokes the
// invalidation hook and returns ErrUnauthorized.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		slog.Info("api_event", "event", "unauthorized", "path", path)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}
	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		detail := eb.Detail
		if detail == "" {
			detail = eb.Message
		}
		return &Error{Status: resp.StatusCode, Detail: detail}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
