package noop

import (
	"context"
	"net/http"

	"ai-signal-analyzer/internal/interfaces"
	"ai-signal-analyzer/internal/logger"
	"ai-signal-analyzer/internal/types"
)

// Model is reported when no inference endpoint is configured.
const Model = "none"

// Client is the inference client used when no API token is configured. It
// never touches the network and always reports the endpoint as unavailable,
// so every analysis takes the heuristic path.
type Client struct{}

var _ interfaces.InferenceClient = (*Client)(nil)

func New() *Client {
	return &Client{}
}

func (c *Client) Generate(ctx context.Context, prompt string) types.InferenceResult {
	logger.Debug(ctx, "Noop inference client called - reporting unavailable", "prompt_chars", len(prompt))
	return types.Unavailable(http.StatusServiceUnavailable)
}

func (c *Client) Model() string {
	return Model
}
