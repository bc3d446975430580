package analyzerobs

import (
	"context"
	"time"

	"ai-signal-analyzer/internal/interfaces"
	"ai-signal-analyzer/internal/logger"
	"ai-signal-analyzer/internal/trace"
	"ai-signal-analyzer/internal/types"
)

type observableAnalyzer struct {
	analyzer interfaces.Analyzer
}

var _ interfaces.Analyzer = (*observableAnalyzer)(nil)

func Wrap(a interfaces.Analyzer) interfaces.Analyzer {
	return &observableAnalyzer{
		analyzer: a,
	}
}

func (oa *observableAnalyzer) Analyze(ctx context.Context, payload map[string]any) (*types.AnalysisRecord, error) {
	ctx, span := trace.StartSpan(ctx, "analyzer.Analyze")
	defer span.End()

	start := time.Now()

	rec, err := oa.analyzer.Analyze(ctx, payload)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Signal analysis failed", err,
			"fields", len(payload),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Signal analysis recorded",
		"id", rec.ID,
		"ticker", rec.OriginalSignal.Ticker,
		"recommendation", string(rec.Decision.Recommendation),
		"should_trade", rec.Decision.ShouldTrade,
		"model", rec.Analysis.Model,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return rec, nil
}

func (oa *observableAnalyzer) Assess(ctx context.Context, payload map[string]any) (types.Signal, types.Verdict, error) {
	ctx, span := trace.StartSpan(ctx, "analyzer.Assess")
	defer span.End()

	start := time.Now()

	sig, verdict, err := oa.analyzer.Assess(ctx, payload)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Signal assessment failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return sig, verdict, err
	}

	logger.DebugSkip(ctx, 1, "Signal assessed",
		"ticker", sig.Ticker,
		"recommendation", string(verdict.Recommendation),
		"confidence", verdict.Confidence,
		"model", verdict.Model,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return sig, verdict, nil
}
