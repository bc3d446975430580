package huggingface

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-signal-analyzer/internal/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.Token = "hf_test"
	return New(cfg)
}

func TestGenerateSendsExpectedRequest(t *testing.T) {
	var got generateRequest
	var auth string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		_, _ = w.Write([]byte(`[{"generated_text":"CONFIDENCE: 80"}]`))
	})

	res := c.Generate(context.Background(), "prompt text")

	require.Equal(t, types.OutcomeSuccess, res.Outcome)
	assert.Equal(t, "CONFIDENCE: 80", res.Text)
	assert.Equal(t, "Bearer hf_test", auth)
	assert.Equal(t, "prompt text", got.Inputs)
	assert.Equal(t, 300, got.Parameters.MaxNewTokens)
	assert.Equal(t, 0.3, got.Parameters.Temperature)
	assert.Equal(t, 0.9, got.Parameters.TopP)
	assert.False(t, got.Parameters.ReturnFullText)
}

func TestGenerateOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        types.Outcome
		wantText    string
		errContains string
	}{
		{name: "single object", status: 200, body: `{"generated_text":"RISK: LOW"}`, want: types.OutcomeSuccess, wantText: "RISK: LOW"},
		{name: "object without text", status: 200, body: `{}`, want: types.OutcomeSuccess},
		{name: "error object on 200", status: 200, body: `{"error":"bad input"}`, want: types.OutcomeFailed, errContains: "bad input"},
		{name: "empty list", status: 200, body: `[]`, want: types.OutcomeFailed, errContains: "empty generation list"},
		{name: "list entry without text", status: 200, body: `[{"foo":"bar"}]`, want: types.OutcomeFailed, errContains: "no generated_text"},
		{name: "list entry with empty text", status: 200, body: `[{"generated_text":""}]`, want: types.OutcomeSuccess},
		{name: "list entry with error", status: 200, body: `[{"error":"overloaded"}]`, want: types.OutcomeFailed, errContains: "overloaded"},
		{name: "not json", status: 200, body: `hello`, want: types.OutcomeFailed, errContains: "decode generation"},
		{name: "loading", status: 503, body: `{"error":"Model is currently loading"}`, want: types.OutcomeUnavailable},
		{name: "unauthorized", status: 401, body: `{"error":"Invalid credentials"}`, want: types.OutcomeFailed, errContains: "Invalid credentials"},
		{
			name:        "html gateway page",
			status:      502,
			contentType: "text/html",
			body:        `<html><head><title>502 Bad Gateway</title></head><body><h1>Bad Gateway</h1></body></html>`,
			want:        types.OutcomeFailed,
			errContains: "502 Bad Gateway: Bad Gateway",
		},
		{name: "no content", status: 204, want: types.OutcomeFailed, errContains: "returned 204"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			res := c.Generate(context.Background(), "p")

			assert.Equal(t, tt.want, res.Outcome)
			assert.Equal(t, tt.wantText, res.Text)
			assert.Equal(t, tt.status, res.StatusCode)
			if tt.errContains != "" {
				require.Error(t, res.Err)
				assert.Contains(t, res.Err.Error(), tt.errContains)
			}
		})
	}
}

func TestGenerateTransportFailure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Endpoint = "http://127.0.0.1:1/unreachable"
	cfg.Timeout = 500 * time.Millisecond

	res := New(cfg).Generate(context.Background(), "p")

	assert.Equal(t, types.OutcomeFailed, res.Outcome)
	assert.Equal(t, 0, res.StatusCode)
	assert.Error(t, res.Err)
}

func TestGenerateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.Timeout = 30 * time.Millisecond

	res := New(cfg).Generate(context.Background(), "p")
	assert.Equal(t, types.OutcomeFailed, res.Outcome)
}

func TestNewAppliesDefaults(t *testing.T) {
	c := New(Config{Token: "x"})

	assert.Equal(t, DefaultModelName, c.Model())
	assert.Equal(t, DefaultEndpoint, c.cfg.Endpoint)
	assert.Equal(t, 30*time.Second, c.http.Timeout())
}

func TestDescribeErrorBody(t *testing.T) {
	assert.Equal(t, "empty body", describeErrorBody("", nil))
	assert.Equal(t, "quota exceeded", describeErrorBody("application/json", []byte(`{"error":{"message":"quota exceeded"}}`)))
	assert.Equal(t, "plain failure", describeErrorBody("text/plain", []byte("  plain   failure ")))
	assert.Equal(t, "Service down", describeErrorBody("text/html", []byte(`<body><script>x()</script><p>Service down</p></body>`)))
}
