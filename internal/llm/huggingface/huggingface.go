package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ai-signal-analyzer/internal/api"
	"ai-signal-analyzer/internal/interfaces"
	"ai-signal-analyzer/internal/trace"
	"ai-signal-analyzer/internal/types"
)

const (
	DefaultEndpoint  = "https://router.huggingface.co/models/meta-llama/Llama-3.2-3B-Instruct"
	DefaultModelName = "Llama-3.2-3B"
)

// Config describes one text-generation endpoint.
type Config struct {
	Endpoint     string
	Token        string
	ModelName    string
	Timeout      time.Duration
	MaxNewTokens int
	Temperature  float64
	TopP         float64
}

// DefaultConfig returns the settings the service ships with. Token is empty.
func DefaultConfig() Config {
	return Config{
		Endpoint:     DefaultEndpoint,
		ModelName:    DefaultModelName,
		Timeout:      30 * time.Second,
		MaxNewTokens: 300,
		Temperature:  0.3,
		TopP:         0.9,
	}
}

// Client calls the hosted inference API. Each Generate is a single POST with
// no retries.
type Client struct {
	cfg  Config
	http *api.Client
}

var _ interfaces.InferenceClient = (*Client)(nil)

func New(cfg Config, opts ...api.ClientOption) *Client {
	def := DefaultConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = def.Endpoint
	}
	if cfg.ModelName == "" {
		cfg.ModelName = def.ModelName
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxNewTokens <= 0 {
		cfg.MaxNewTokens = def.MaxNewTokens
	}

	base := []api.ClientOption{
		api.WithTimeout(cfg.Timeout),
		api.WithHeader("Authorization", "Bearer "+cfg.Token),
		api.WithLogging(true),
	}
	return &Client{cfg: cfg, http: api.NewClient(append(base, opts...)...)}
}

func (c *Client) Model() string {
	return c.cfg.ModelName
}

type generateRequest struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type parameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	ReturnFullText bool    `json:"return_full_text"`
}

type generation struct {
	GeneratedText *string `json:"generated_text"`
	Error         string  `json:"error"`
}

// Generate sends prompt and classifies the reply: 200 is success, 503 means
// the model is loading, anything else is a failure.
func (c *Client) Generate(ctx context.Context, prompt string) types.InferenceResult {
	ctx, span := trace.StartSpan(ctx, "huggingface.Generate")
	defer span.End()

	body := generateRequest{
		Inputs: prompt,
		Parameters: parameters{
			MaxNewTokens:   c.cfg.MaxNewTokens,
			Temperature:    c.cfg.Temperature,
			TopP:           c.cfg.TopP,
			ReturnFullText: false,
		},
	}

	resp, err := c.http.POST(ctx, c.cfg.Endpoint, body)
	if err != nil {
		var statusErr *api.StatusError
		if !errors.As(err, &statusErr) {
			return types.Failed(0, fmt.Errorf("inference request: %w", err))
		}
		if statusErr.StatusCode == http.StatusServiceUnavailable {
			return types.Unavailable(statusErr.StatusCode)
		}
		return types.Failed(statusErr.StatusCode, fmt.Errorf("inference endpoint returned %d: %s",
			statusErr.StatusCode, describeErrorBody(resp.Headers.Get("Content-Type"), resp.Body)))
	}

	if resp.StatusCode != http.StatusOK {
		return types.Failed(resp.StatusCode, fmt.Errorf("inference endpoint returned %d", resp.StatusCode))
	}

	text, err := extractText(resp.Body)
	if err != nil {
		return types.Failed(resp.StatusCode, err)
	}
	return types.Succeeded(text)
}

// extractText accepts either a list of generations or a single generation object.
// A list entry must carry generated_text; a bare object may omit it.
func extractText(body []byte) (string, error) {
	trimmed := strings.TrimSpace(string(body))

	if strings.HasPrefix(trimmed, "[") {
		var list []generation
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return "", fmt.Errorf("decode generations: %w", err)
		}
		if len(list) == 0 {
			return "", errors.New("empty generation list")
		}
		if list[0].GeneratedText == nil && list[0].Error == "" {
			return "", errors.New("generation has no generated_text")
		}
		return textOf(list[0])
	}

	var single generation
	if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
		return "", fmt.Errorf("decode generation: %w", err)
	}
	return textOf(single)
}

func textOf(g generation) (string, error) {
	if g.GeneratedText != nil {
		return *g.GeneratedText, nil
	}
	if g.Error != "" {
		return "", fmt.Errorf("inference error: %s", g.Error)
	}
	return "", nil
}
