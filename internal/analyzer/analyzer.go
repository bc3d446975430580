// Package analyzer runs the signal pipeline: normalize, prompt, call the model,
// parse or fall back, combine, record.
package analyzer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"ai-signal-analyzer/internal/heuristic"
	"ai-signal-analyzer/internal/interfaces"
	"ai-signal-analyzer/internal/llm"
	"ai-signal-analyzer/internal/logger"
	"ai-signal-analyzer/internal/metrics"
	"ai-signal-analyzer/internal/prompt"
	"ai-signal-analyzer/internal/signal"
	"ai-signal-analyzer/internal/types"
)

// ErrEmptyPayload is returned for a nil or empty payload.
var ErrEmptyPayload = errors.New("empty payload")

// Verdict sources, used for logging and metrics.
const (
	SourceRemote   = "remote"
	SourceFallback = "fallback"
)

type Analyzer struct {
	client   interfaces.InferenceClient
	history  interfaces.HistoryStore
	recorder *metrics.Recorder
	now      func() time.Time
	newID    func() string
}

var _ interfaces.Analyzer = (*Analyzer)(nil)

type Option func(*Analyzer)

// WithRecorder attaches a metrics recorder.
func WithRecorder(r *metrics.Recorder) Option {
	return func(a *Analyzer) {
		a.recorder = r
	}
}

// WithClock overrides the record timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

func New(client interfaces.InferenceClient, history interfaces.HistoryStore, opts ...Option) *Analyzer {
	a := &Analyzer{
		client:  client,
		history: history,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze produces a verdict for payload, combines it into a final decision
// and appends the record to history. Remote failures never surface as errors.
func (a *Analyzer) Analyze(ctx context.Context, payload map[string]any) (*types.AnalysisRecord, error) {
	sig, verdict, source, err := a.assess(ctx, payload)
	if err != nil {
		return nil, err
	}

	rec := types.AnalysisRecord{
		ID: a.newID(),
		OriginalSignal: types.OriginalSignal{
			Ticker:         sig.Ticker,
			Price:          sig.Price,
			Signal:         sig.Signal,
			BaseConfidence: sig.Confidence,
		},
		Analysis:  verdict,
		Decision:  Combine(sig.Confidence, verdict),
		Timestamp: a.now(),
	}

	a.history.Append(rec)
	a.recorder.SetHistorySize(a.history.Len())

	logger.Verdict(ctx, sig.Ticker, string(verdict.Recommendation), verdict.Confidence, source,
		"should_trade", rec.Decision.ShouldTrade,
		"combined_confidence", rec.Decision.CombinedConfidence,
		"risk", string(verdict.Risk),
	)

	return &rec, nil
}

// Assess runs the pipeline without recording anything.
func (a *Analyzer) Assess(ctx context.Context, payload map[string]any) (types.Signal, types.Verdict, error) {
	sig, verdict, _, err := a.assess(ctx, payload)
	return sig, verdict, err
}

func (a *Analyzer) assess(ctx context.Context, payload map[string]any) (types.Signal, types.Verdict, string, error) {
	if len(payload) == 0 {
		return types.Signal{}, types.Verdict{}, "", ErrEmptyPayload
	}
	if err := ctx.Err(); err != nil {
		return types.Signal{}, types.Verdict{}, "", err
	}

	sig := signal.Normalize(payload)
	logger.Info(ctx, "Received signal", "ticker", sig.Ticker, "signal", sig.Signal)

	res := a.client.Generate(ctx, prompt.Build(sig))

	var verdict types.Verdict
	var source string
	switch res.Outcome {
	case types.OutcomeSuccess:
		verdict = llm.ParseResponse(res.Text, sig, a.client.Model())
		source = SourceRemote
	default:
		verdict = heuristic.Evaluate(sig)
		source = SourceFallback
	}

	a.recorder.RecordAnalysis(source, string(verdict.Recommendation))
	return sig, verdict, source, nil
}
