package analyzerobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-signal-analyzer/internal/types"
)

type stubAnalyzer struct {
	rec *types.AnalysisRecord
	err error
}

func (s *stubAnalyzer) Analyze(context.Context, map[string]any) (*types.AnalysisRecord, error) {
	return s.rec, s.err
}

func (s *stubAnalyzer) Assess(context.Context, map[string]any) (types.Signal, types.Verdict, error) {
	return types.Signal{Ticker: "BTCUSDT"}, types.Verdict{Confidence: 80}, s.err
}

func TestWrapPassesThrough(t *testing.T) {
	want := &types.AnalysisRecord{ID: "abc", OriginalSignal: types.OriginalSignal{Ticker: "BTCUSDT"}}
	wrapped := Wrap(&stubAnalyzer{rec: want})

	rec, err := wrapped.Analyze(context.Background(), map[string]any{"ticker": "BTCUSDT"})
	require.NoError(t, err)
	assert.Same(t, want, rec)

	sig, verdict, err := wrapped.Assess(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", sig.Ticker)
	assert.Equal(t, 80, verdict.Confidence)
}

func TestWrapPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	wrapped := Wrap(&stubAnalyzer{rec: &types.AnalysisRecord{}, err: boom})

	rec, err := wrapped.Analyze(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, rec)

	_, _, err = wrapped.Assess(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
}
