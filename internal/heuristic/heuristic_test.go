package heuristic

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ai-signal-analyzer/internal/signal"
	"ai-signal-analyzer/internal/types"
)

func TestEvaluateSamplePayload(t *testing.T) {
	v := Evaluate(signal.Normalize(signal.SamplePayload()))

	assert.True(t, v.Success)
	assert.Equal(t, 95, v.Confidence)
	assert.Equal(t, types.RiskMedium, v.Risk)
	assert.Equal(t, types.RecommendBuy, v.Recommendation)
	assert.Equal(t, []string{"Strong trend", "High volume confirmation", "Waddah explosive signal"}, v.Strengths)
	assert.Equal(t, []string{"Monitor market conditions"}, v.Concerns)
	assert.Equal(t, "Logic-based analysis: BUY signal with 95% confidence", v.Reasoning)
	assert.Equal(t, Model, v.Model)
	assert.Empty(t, v.FullResponse)
}

func TestEvaluateRules(t *testing.T) {
	tests := []struct {
		name      string
		payload   map[string]any
		wantConf  int
		wantRec   types.Recommendation
		wantRisk  types.Risk
		strengths []string
		concerns  []string
	}{
		{
			name:      "defaults only",
			payload:   map[string]any{"signal": "BUY"},
			wantConf:  70,
			wantRec:   types.RecommendWait,
			wantRisk:  types.RiskMedium,
			strengths: []string{"Setup detected"},
			concerns:  []string{"Low volume"},
		},
		{
			name:      "oversold buy gets momentum bonus",
			payload:   map[string]any{"signal": "BUY", "confidence": 70, "indicators": map[string]any{"rsi": 25, "adx": 22, "volume_ratio": 1.3}},
			wantConf:  80,
			wantRec:   types.RecommendBuy,
			wantRisk:  types.RiskMedium,
			strengths: []string{"Setup detected"},
			concerns:  []string{"Monitor market conditions"},
		},
		{
			name:      "overbought sell",
			payload:   map[string]any{"signal": "SELL", "confidence": 72, "indicators": map[string]any{"rsi": 78, "adx": 35, "volume_ratio": 2}},
			wantConf:  92,
			wantRec:   types.RecommendSell,
			wantRisk:  types.RiskLow,
			strengths: []string{"Strong trend", "High volume confirmation"},
			concerns:  []string{"Monitor market conditions"},
		},
		{
			name:      "oversold sell gets nothing",
			payload:   map[string]any{"signal": "SELL", "confidence": 70, "indicators": map[string]any{"rsi": 20}},
			wantConf:  70,
			wantRec:   types.RecommendWait,
			wantRisk:  types.RiskMedium,
			strengths: []string{"Setup detected"},
			concerns:  []string{"Low volume"},
		},
		{
			name:      "weak trend is high risk",
			payload:   map[string]any{"signal": "BUY", "confidence": 90, "indicators": map[string]any{"adx": 15, "volume_ratio": 1.3}},
			wantConf:  90,
			wantRec:   types.RecommendBuy,
			wantRisk:  types.RiskHigh,
			strengths: []string{"Setup detected"},
			concerns:  []string{"Weak trend strength"},
		},
		{
			name:      "squeeze note when waddah quiet",
			payload:   map[string]any{"signal": "BUY", "confidence": 60, "scores": map[string]any{"squeeze": 80}},
			wantConf:  70,
			wantRec:   types.RecommendWait,
			wantRisk:  types.RiskMedium,
			strengths: []string{"Squeeze momentum firing"},
			concerns:  []string{"Low volume"},
		},
		{
			name:      "low confidence is high risk",
			payload:   map[string]any{"signal": "BUY", "confidence": 40, "indicators": map[string]any{"volume_ratio": 1.2}},
			wantConf:  40,
			wantRec:   types.RecommendWait,
			wantRisk:  types.RiskHigh,
			strengths: []string{"Setup detected"},
			concerns:  []string{"Monitor market conditions"},
		},
		{
			name:      "clamped at 100",
			payload:   map[string]any{"signal": "BUY", "confidence": 98, "indicators": map[string]any{"adx": 40, "volume_ratio": 3}, "scores": map[string]any{"waddah": 90}},
			wantConf:  100,
			wantRec:   types.RecommendBuy,
			wantRisk:  types.RiskLow,
			strengths: []string{"Strong trend", "High volume confirmation", "Waddah explosive signal"},
			concerns:  []string{"Monitor market conditions"},
		},
		{
			name:      "clamped at 0",
			payload:   map[string]any{"signal": "SELL", "confidence": -50},
			wantConf:  0,
			wantRec:   types.RecommendWait,
			wantRisk:  types.RiskHigh,
			strengths: []string{"Setup detected"},
			concerns:  []string{"Low volume"},
		},
		{
			name:      "unknown direction never trades",
			payload:   map[string]any{"signal": "LONG", "confidence": 95},
			wantConf:  95,
			wantRec:   types.RecommendWait,
			wantRisk:  types.RiskMedium,
			strengths: []string{"Setup detected"},
			concerns:  []string{"Low volume"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(signal.Normalize(tt.payload))

			assert.Equal(t, tt.wantConf, v.Confidence)
			assert.Equal(t, tt.wantRec, v.Recommendation)
			assert.Equal(t, tt.wantRisk, v.Risk)
			assert.Equal(t, tt.strengths, v.Strengths)
			assert.Equal(t, tt.concerns, v.Concerns)
		})
	}
}

func TestEvaluateBounds(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, dir := range []string{"BUY", "SELL", "WAIT", "UNKNOWN"} {
		for conf := -20; conf <= 140; conf += 15 {
			for adx := 0.0; adx <= 60; adx += 7.5 {
				for vol := 0.0; vol <= 3; vol += 0.4 {
					payload := map[string]any{
						"signal":     dir,
						"confidence": conf,
						"indicators": map[string]any{"adx": adx, "volume_ratio": vol, "rsi": adx + 10},
						"scores":     map[string]any{"waddah": vol * 30, "squeeze": adx},
					}
					v := evaluate(signal.Normalize(payload), now)
					name := fmt.Sprintf("%s/%d/%.1f/%.1f", dir, conf, adx, vol)

					assert.GreaterOrEqual(t, v.Confidence, 0, name)
					assert.LessOrEqual(t, v.Confidence, 100, name)
					assert.Contains(t, []types.Recommendation{types.RecommendBuy, types.RecommendSell, types.RecommendWait}, v.Recommendation, name)
					assert.Contains(t, []types.Risk{types.RiskLow, types.RiskMedium, types.RiskHigh}, v.Risk, name)
					assert.NotEmpty(t, v.Strengths, name)
					assert.LessOrEqual(t, len(v.Strengths), 3, name)
					assert.NotEmpty(t, v.Concerns, name)
					assert.LessOrEqual(t, len(v.Concerns), 2, name)
					assert.GreaterOrEqual(t, len(v.Reasoning), 10, name)
					assert.Equal(t, now, v.Timestamp, name)
				}
			}
		}
	}
}
