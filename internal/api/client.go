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
	"net/url"
	"time"
)

const defaultTimeout = 10 * time.Second

// ErrNoToken is returned when an authenticated endpoint is called without a
// bearer token. Per-view terminal: callers surface it, they do not retry.
var ErrNoToken = errors.New("api: missing bearer token")

// Error is a non-2xx response. Message carries the backend's message field
// when the body had one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status=%d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: request failed (status=%d)", e.Status)
}

// Client talks to the Turnero backend. The zero token is valid for the public
// endpoints; SetToken installs the bearer credential for the rest.
type Client struct {
	base  string
	hc    *http.Client
	token string
	log   *slog.Logger
}

func New(baseURL string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		base: baseURL,
		hc:   &http.Client{Timeout: defaultTimeout},
		log:  log,
	}
}

func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) HasToken() bool { return c.token != "" }

// WithToken returns a copy of the client using token, leaving the receiver
// untouched. The web server uses this to scope requests to a session.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any, authed bool) error {
	if authed && c.token == "" {
		return ErrNoToken
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &msg)
		c.log.Debug("api request failed", "method", method, "path", path, "status", res.StatusCode, "message", msg.Message)
		return &Error{Status: res.StatusCode, Message: msg.Message}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("api: unmarshal response: %w", err)
		}
	}
	return nil
}
