// Package api wraps the Lumenik backend REST contract: bearer-token auth on
// every call except login, JSON bodies, and uniform error normalization.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lumenik/install-client/model"
)

type (
	// TokenSource resolves the bearer token attached to authenticated calls.
	TokenSource interface {
		Token() string
	}

	// LoadingFunc is notified when a call starts/ends (the presentation
	// layer's global loading indicator); released on every path.
	LoadingFunc func(active bool)

	// Client is the backend API gateway.
	Client struct {
		baseURL    string
		httpClient *http.Client
		tokens     TokenSource
		loading    LoadingFunc

		mu       sync.Mutex
		inflight map[string]struct{}
	}

	// Option tunes a Client.
	Option func(*Client)

	// Error is an application-level failure: a non-2xx response carrying a
	// server-provided message.
	Error struct {
		Codigo  int    `json:"codigo"`
		Mensaje string `json:"mensaje"`
	}
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("api: [%d] %s", e.Codigo, e.Mensaje)
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLoadingFunc binds the loading indicator hook.
func WithLoadingFunc(fn LoadingFunc) Option {
	return func(c *Client) { c.loading = fn }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a backend gateway.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%s: must be set", "baseURL")
	}
	if tokens == nil {
		return nil, fmt.Errorf("%s: must be set", "tokens")
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokens:     tokens,
		loading:    func(bool) {},
		inflight:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// call performs one backend request. A non-empty action key arms the
// in-flight guard: firing the same action again before the first response
// resolves fails fast with model.ErrBusy instead of double-submitting.
func (c *Client) call(ctx context.Context, action, method, endpoint string, body, out interface{}) error {
	if action != "" {
		if err := c.acquire(action); err != nil {
			return err
		}
		defer c.release(action)
	}

	c.loading(true)
	defer c.loading(false)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", method, endpoint, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, endpoint, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s %s: %w", method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalizeError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s %s: %w", method, endpoint, err)
		}
	}

	return nil
}

// normalizeError maps a non-2xx body ({error} or {mensaje}) to *Error.
func normalizeError(status int, data []byte) error {
	payload := struct {
		Error   string `json:"error"`
		Mensaje string `json:"mensaje"`
	}{}
	_ = json.Unmarshal(data, &payload)

	mensaje := payload.Error
	if mensaje == "" {
		mensaje = payload.Mensaje
	}
	if mensaje == "" {
		mensaje = "Error desconocido"
	}

	return &Error{Codigo: status, Mensaje: mensaje}
}

func (c *Client) acquire(action string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inflight[action]; busy {
		return fmt.Errorf("%s: %w", action, model.ErrBusy)
	}
	c.inflight[action] = struct{}{}

	return nil
}

func (c *Client) release(action string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inflight, action)
}
