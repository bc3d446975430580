package llm

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ai-signal-analyzer/internal/signal"
	"ai-signal-analyzer/internal/types"
)

const testModel = "Llama-3.2-3B"

var (
	weakTrend   = signal.Normalize(map[string]any{"indicators": map[string]any{"adx": 18}})
	strongTrend = signal.Normalize(map[string]any{"indicators": map[string]any{"adx": 32}})
)

func TestParseEmptyResponse(t *testing.T) {
	v := ParseResponse("", weakTrend, testModel)

	assert.True(t, v.Success)
	assert.Equal(t, 70, v.Confidence)
	assert.Equal(t, types.RecommendWait, v.Recommendation)
	assert.Equal(t, types.RiskMedium, v.Risk)
	assert.Equal(t, []string{"Moderate setup"}, v.Strengths)
	assert.Equal(t, []string{"Monitor risk levels"}, v.Concerns)
	assert.Equal(t, "Signal shows wait potential with 70% confidence", v.Reasoning)
	assert.Equal(t, testModel, v.Model)
	assert.Empty(t, v.FullResponse)
}

func TestParseWellFormedResponse(t *testing.T) {
	text := strings.Join([]string{
		"CONFIDENCE: 85",
		"RECOMMENDATION: BUY",
		"RISK: LOW",
		"STRENGTHS: Strong ADX, Volume surge, Explosive Waddah, Extra item",
		"CONCERNS: RSI near resistance, Macro event, Third",
		"REASON: Trend and volume agree with the long setup.",
	}, "\n")

	v := ParseResponse(text, weakTrend, testModel)

	assert.Equal(t, 85, v.Confidence)
	assert.Equal(t, types.RecommendBuy, v.Recommendation)
	assert.Equal(t, types.RiskLow, v.Risk)
	assert.Equal(t, []string{"Strong ADX", "Volume surge", "Explosive Waddah"}, v.Strengths)
	assert.Equal(t, []string{"RSI near resistance", "Macro event"}, v.Concerns)
	assert.Equal(t, "Trend and volume agree with the long setup.", v.Reasoning)
	assert.Equal(t, text, v.FullResponse)
}

func TestParseFields(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, v types.Verdict)
	}{
		{
			name: "confidence digits",
			text: "CONFIDENCE: 85",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, 85, v.Confidence)
			},
		},
		{
			name: "confidence without digits keeps default",
			text: "CONFIDENCE: abc",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, 70, v.Confidence)
			},
		},
		{
			name: "confidence digits are concatenated then clamped",
			text: "CONFIDENCE: 85/100",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, 100, v.Confidence)
			},
		},
		{
			name: "confidence label is case insensitive",
			text: "confidence: 42",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, 42, v.Confidence)
			},
		},
		{
			name: "buy wins over sell",
			text: "RECOMMENDATION: SELL or BUY depending on open",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, types.RecommendBuy, v.Recommendation)
			},
		},
		{
			name: "sell",
			text: "Recommendation: sell",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, types.RecommendSell, v.Recommendation)
			},
		},
		{
			name: "unknown recommendation is wait",
			text: "RECOMMENDATION: HOLD",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, types.RecommendWait, v.Recommendation)
			},
		},
		{
			name: "low wins over high",
			text: "RISK: LOW to HIGH",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, types.RiskLow, v.Risk)
			},
		},
		{
			name: "high risk",
			text: "RISK: high",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, types.RiskHigh, v.Risk)
			},
		},
		{
			name: "markdown decoration",
			text: "**CONFIDENCE:** 77\n- **RISK:** HIGH\n1. RECOMMENDATION: SELL\n* STRENGTHS: [Breakout, Volume]",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, 77, v.Confidence)
				assert.Equal(t, types.RiskHigh, v.Risk)
				assert.Equal(t, types.RecommendSell, v.Recommendation)
				assert.Equal(t, []string{"Breakout", "Volume"}, v.Strengths)
			},
		},
		{
			name: "short reason is replaced",
			text: "RECOMMENDATION: SELL\nCONFIDENCE: 64\nREASON: ok",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, "Signal shows sell potential with 64% confidence", v.Reasoning)
			},
		},
		{
			name: "reason keeps text after first colon",
			text: "REASON: Entry at 10:30 looks clean",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, "Entry at 10:30 looks clean", v.Reasoning)
			},
		},
		{
			name: "empty list items dropped",
			text: "STRENGTHS: , ,\nCONCERNS: Gap risk,,",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, []string{"Moderate setup"}, v.Strengths)
				assert.Equal(t, []string{"Gap risk"}, v.Concerns)
			},
		},
		{
			name: "later lists replace earlier",
			text: "STRENGTHS: One\nSTRENGTHS: Two, Three",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, []string{"Two", "Three"}, v.Strengths)
			},
		},
		{
			name: "prose is ignored",
			text: "I think the risk: is fine and you should BUY",
			check: func(t *testing.T, v types.Verdict) {
				assert.Equal(t, types.RecommendWait, v.Recommendation)
				assert.Equal(t, types.RiskMedium, v.Risk)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ParseResponse(tt.text, weakTrend, testModel))
		})
	}
}

func TestParseStrengthPlaceholderFollowsTrend(t *testing.T) {
	v := ParseResponse("CONFIDENCE: 80", strongTrend, testModel)
	assert.Equal(t, []string{"Strong momentum"}, v.Strengths)

	v = ParseResponse("CONFIDENCE: 80", weakTrend, testModel)
	assert.Equal(t, []string{"Moderate setup"}, v.Strengths)
}

func TestParseTruncatesFullResponse(t *testing.T) {
	text := "REASON: " + strings.Repeat("é", 800)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	v := parse(text, weakTrend, testModel, now)

	assert.Equal(t, 500, len([]rune(v.FullResponse)))
	assert.Equal(t, now, v.Timestamp)
}

func TestParseBounds(t *testing.T) {
	inputs := []string{
		"",
		"CONFIDENCE: -5",
		"CONFIDENCE: 99999999999999999999999",
		"STRENGTHS: a,b,c,d,e,f\nCONCERNS: x,y,z",
		"garbage\n\n\r\n***",
		"REASON:",
	}
	for _, in := range inputs {
		v := ParseResponse(in, strongTrend, testModel)

		assert.GreaterOrEqual(t, v.Confidence, 0, in)
		assert.LessOrEqual(t, v.Confidence, 100, in)
		assert.NotEmpty(t, v.Strengths, in)
		assert.LessOrEqual(t, len(v.Strengths), 3, in)
		assert.NotEmpty(t, v.Concerns, in)
		assert.LessOrEqual(t, len(v.Concerns), 2, in)
		assert.GreaterOrEqual(t, len(v.Reasoning), 10, in)
	}
}
