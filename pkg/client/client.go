// Package client is a small API client for the job board. It keeps per-role
// tokens in a session.Store, attaches them as bearer headers, and drops the
// role's session as soon as the server answers 401 so a stale token is never
// retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"jobboard/pkg/session"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrValidation     = errors.New("validation failed")
	ErrToggleInFlight = errors.New("toggle already in flight for this subject")
)

// APIError carries the server's envelope for statuses that do not map to a
// sentinel above.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d message=%q", e.Status, e.Message)
}

type Client struct {
	baseURL string
	role    string
	store   session.Store
	httpc   *http.Client

	mu       sync.Mutex
	saved    map[string]bool
	inflight map[string]bool
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpc = h
		}
	}
}

func New(baseURL, role string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		role:     role,
		store:    store,
		httpc:    &http.Client{Timeout: 30 * time.Second},
		saved:    make(map[string]bool),
		inflight: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope mirrors the server's response shape.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *PageMeta       `json:"meta"`
}

type PageMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) (*PageMeta, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tokens, ok := c.store.Get(c.role); ok && tokens.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Cancellation must not mutate the session.
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("malformed response: %w", err)
		}
	}

	if resp.StatusCode >= 400 {
		return nil, c.mapStatus(resp.StatusCode, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("malformed data: %w", err)
		}
	}
	return env.Meta, nil
}

func (c *Client) mapStatus(status int, message string) error {
	switch status {
	case http.StatusUnauthorized:
		// The session for this role is dead; other roles stay signed in.
		_ = c.store.Clear(c.role)
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrValidation, message)
	default:
		return &APIError{Status: status, Message: message}
	}
}

// beginToggle marks a subject as having a toggle in flight. It reports false
// when one is already running, so the caller refuses instead of queueing and
// save/unsave ordering can never invert. Toggles on different subjects do not
// block each other.
func (c *Client) beginToggle(subject string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[subject] {
		return false
	}
	c.inflight[subject] = true
	return true
}

func (c *Client) endToggle(subject string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, subject)
}

func (c *Client) isSaved(subject string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saved[subject]
}

func (c *Client) setSaved(subject string, saved bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if saved {
		c.saved[subject] = true
		return
	}
	delete(c.saved, subject)
}

// reconcileSaved replaces the locally tracked saved-set for one subject kind
// with what the server just returned.
func (c *Client) reconcileSaved(prefix string, ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.saved {
		if strings.HasPrefix(k, prefix) {
			delete(c.saved, k)
		}
	}
	for _, id := range ids {
		c.saved[prefix+id] = true
	}
}

func queryString(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
