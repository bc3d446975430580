package interfaces

import (
	"context"

	"ai-signal-analyzer/internal/types"
)

type Analyzer interface {
	// Analyze runs the full pipeline and records the result in history.
	Analyze(ctx context.Context, payload map[string]any) (*types.AnalysisRecord, error)
	// Assess produces a verdict without touching history.
	Assess(ctx context.Context, payload map[string]any) (types.Signal, types.Verdict, error)
}
