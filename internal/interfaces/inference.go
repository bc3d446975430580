package interfaces

import (
	"context"

	"ai-signal-analyzer/internal/types"
)

// InferenceClient performs a single completion call against a remote model.
// Implementations report every outcome through the result; they never return
// errors or retry.
type InferenceClient interface {
	Generate(ctx context.Context, prompt string) types.InferenceResult
	Model() string
}
