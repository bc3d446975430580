// Package heuristic produces a verdict from indicator values alone. It is used
// whenever the remote model cannot be reached.
package heuristic

import (
	"fmt"
	"time"

	"ai-signal-analyzer/internal/types"
)

// Model is the tag attached to every heuristic verdict.
const Model = "Fallback-Logic"

const (
	strongTrendADX  = 25.0
	lowRiskADX      = 30.0
	weakTrendADX    = 20.0
	highVolume      = 1.5
	lowVolume       = 1.2
	explosiveScore  = 70.0
	oversoldRSI     = 30.0
	overboughtRSI   = 70.0
	tradeThreshold  = 75
	lowRiskMinConf  = 80
	highRiskMaxConf = 65
)

// Evaluate scores sig with fixed rules. The result is deterministic apart from
// its timestamp.
func Evaluate(sig types.Signal) types.Verdict {
	return evaluate(sig, time.Now().UTC())
}

func evaluate(sig types.Signal, now time.Time) types.Verdict {
	adx := sig.Indicators.ADX.Value
	rsi := sig.Indicators.RSI.Value
	volume := sig.Indicators.VolumeRatio.Value
	waddah := sig.Scores.Waddah.Value
	squeeze := sig.Scores.Squeeze.Value

	confidence := sig.Confidence
	if adx > strongTrendADX {
		confidence += 5
	}
	if volume > highVolume {
		confidence += 5
	}
	if momentumConfirmed(sig.Direction, rsi, waddah, squeeze) {
		confidence += 10
	}
	confidence = clamp(confidence)

	var risk types.Risk
	switch {
	case confidence > lowRiskMinConf && adx > lowRiskADX:
		risk = types.RiskLow
	case confidence < highRiskMaxConf || adx < weakTrendADX:
		risk = types.RiskHigh
	default:
		risk = types.RiskMedium
	}

	rec := types.RecommendWait
	if confidence >= tradeThreshold && sig.Direction.Tradable() {
		rec = sig.Direction
	}

	var strengths []string
	if adx > strongTrendADX {
		strengths = append(strengths, "Strong trend")
	}
	if volume > highVolume {
		strengths = append(strengths, "High volume confirmation")
	}
	switch {
	case waddah > explosiveScore:
		strengths = append(strengths, "Waddah explosive signal")
	case squeeze > explosiveScore:
		strengths = append(strengths, "Squeeze momentum firing")
	}
	if len(strengths) == 0 {
		strengths = []string{"Setup detected"}
	}

	var concerns []string
	if adx < weakTrendADX {
		concerns = append(concerns, "Weak trend strength")
	}
	if volume < lowVolume {
		concerns = append(concerns, "Low volume")
	}
	if len(concerns) == 0 {
		concerns = []string{"Monitor market conditions"}
	}

	return types.Verdict{
		Success:        true,
		Confidence:     confidence,
		Recommendation: rec,
		Risk:           risk,
		Strengths:      strengths,
		Concerns:       concerns,
		Reasoning:      fmt.Sprintf("Logic-based analysis: %s signal with %d%% confidence", rec, confidence),
		Model:          Model,
		Timestamp:      now,
	}
}

// momentumConfirmed is true when RSI sits at the extreme that favours the
// stated direction, or either auxiliary momentum score is explosive. The bonus
// applies once no matter how many of these hold.
func momentumConfirmed(dir types.Recommendation, rsi, waddah, squeeze float64) bool {
	switch {
	case dir == types.RecommendBuy && rsi < oversoldRSI:
		return true
	case dir == types.RecommendSell && rsi > overboughtRSI:
		return true
	}
	return waddah > explosiveScore || squeeze > explosiveScore
}

func clamp(v int) int {
	return max(0, min(100, v))
}
