// Package api talks to the activity backend over HTTP and normalizes its
// responses into typed results and the error variants in errors.go.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TokenStore is the part of the session the client needs.
type TokenStore interface {
	Token() (string, bool)
	Set(token, displayName string) error
	Clear() error
}

// Client issues requests against a base URL. Authenticated calls read the
// token from the session on every request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    TokenStore
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient builds a client. The default http.Client has no timeout: a
// request in flight runs until the server answers or ctx is done.
func NewClient(baseURL string, session TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		session:    session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	method string
	path   string
	body   interface{}
	auth   bool
}

// do sends req and decodes a 2xx body into out (when out is non-nil).
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	var token string
	if req.auth {
		t, ok := c.session.Token()
		if !ok {
			return &UnauthenticatedError{}
		}
		token = t
	}

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	requestID := uuid.New().String()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if req.auth {
		httpReq.Header.Set("Authorization", "Token "+token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn().
			Err(err).
			Str("method", req.method).
			Str("path", req.path).
			Str("request_id", requestID).
			Msg("request failed before a response arrived")
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", req.method).
		Str("path", req.path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(started)).
		Msg("request completed")

	return decodeResponse(resp, req.path, out)
}

func decodeResponse(resp *http.Response, path string, out interface{}) error {
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseErrorBody(resp.StatusCode, statusText(resp), raw)
		log.Warn().
			Err(apiErr).
			Int("status", resp.StatusCode).
			Str("path", path).
			Msg("backend rejected request")
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &GeneralError{Status: resp.StatusCode, Text: fmt.Sprintf("unexpected response from server: %v", err)}
	}
	return nil
}

// statusText prefers the reason phrase the server sent.
func statusText(resp *http.Response) string {
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
