// Package api is a small JSON-over-HTTP client. Every call is a single attempt.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-signal-analyzer/internal/logger"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	http    *http.Client
	headers http.Header
	verbose bool
}

// ClientOption configures the API client
type ClientOption func(*Client)

// WithTimeout bounds each request, including reading the body.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

// WithHeader sets a header sent on every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithLogging turns on request/response logging through the global logger.
func WithLogging(enabled bool) ClientOption {
	return func(c *Client) {
		c.verbose = enabled
	}
}

func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		headers: make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

// Response is a fully read HTTP answer.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// StatusError is returned by Do for 4xx/5xx answers. The response is still
// returned alongside it so callers can inspect the body.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, string(body))
}

// Do sends one request with body encoded as JSON (nil sends no body) and reads
// the whole answer.
func (c *Client) Do(ctx context.Context, method, url string, body any) (*Response, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range c.headers {
		req.Header[k] = v
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	httpResp, err := c.http.Do(req)
	if err != nil {
		c.log(ctx, logger.Error, "HTTP request failed", "method", method, "url", url, "error", err)
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	resp := &Response{StatusCode: httpResp.StatusCode, Body: data, Headers: httpResp.Header}
	fields := []any{
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"bytes", len(data),
	}

	if resp.StatusCode >= 400 {
		c.log(ctx, logger.Warn, "HTTP error response", fields...)
		return resp, &StatusError{StatusCode: resp.StatusCode, Body: data}
	}
	c.log(ctx, logger.Debug, "HTTP response", fields...)
	return resp, nil
}

func (c *Client) POST(ctx context.Context, url string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, url, body)
}

func (c *Client) log(ctx context.Context, fn func(context.Context, string, ...any), msg string, args ...any) {
	if c.verbose {
		fn(ctx, msg, args...)
	}
}
