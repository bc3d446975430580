package llmobs

import (
	"context"
	"time"

	"ai-signal-analyzer/internal/interfaces"
	"ai-signal-analyzer/internal/logger"
	"ai-signal-analyzer/internal/metrics"
	"ai-signal-analyzer/internal/trace"
	"ai-signal-analyzer/internal/types"
)

// observableClient wraps an InferenceClient with observability (logging, tracing & metrics)
type observableClient struct {
	client   interfaces.InferenceClient
	recorder *metrics.Recorder
}

// Compile-time interface check
var _ interfaces.InferenceClient = (*observableClient)(nil)

// Wrap wraps an inference client with observability middleware. recorder may be nil.
func Wrap(client interfaces.InferenceClient, recorder *metrics.Recorder) interfaces.InferenceClient {
	return &observableClient{
		client:   client,
		recorder: recorder,
	}
}

func (oc *observableClient) Model() string {
	return oc.client.Model()
}

// Generate calls the underlying client with observability
func (oc *observableClient) Generate(ctx context.Context, prompt string) types.InferenceResult {
	ctx, span := trace.StartSpan(ctx, "llm.Generate")
	defer span.End()

	start := time.Now()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting model completion",
		"model", oc.client.Model(),
		"prompt_chars", len(prompt),
	)

	res := oc.client.Generate(ctx, prompt)
	took := time.Since(start)
	oc.recorder.RecordInference(res.Outcome.String(), took)

	switch res.Outcome {
	case types.OutcomeSuccess:
		logger.InfoSkip(ctx, 1, "Model completion received",
			"model", oc.client.Model(),
			"response_chars", len(res.Text),
			"duration_ms", took.Milliseconds(),
		)
	case types.OutcomeUnavailable:
		logger.InfoSkip(ctx, 1, "Model unavailable, falling back to heuristic",
			"model", oc.client.Model(),
			"status", res.StatusCode,
			"duration_ms", took.Milliseconds(),
		)
	default:
		logger.ErrorWithErrSkip(ctx, 1, "Model completion failed, falling back to heuristic", res.Err,
			"model", oc.client.Model(),
			"status", res.StatusCode,
			"duration_ms", took.Milliseconds(),
		)
	}

	return res
}
