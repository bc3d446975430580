package analyzer

import "ai-signal-analyzer/internal/types"

// TradeThreshold is the minimum verdict confidence for a trade.
const TradeThreshold = 70

// Combine turns a verdict into the final decision. base is the confidence the
// signal arrived with.
func Combine(base int, v types.Verdict) types.Decision {
	return types.Decision{
		ShouldTrade:        v.Confidence >= TradeThreshold && v.Recommendation.Tradable(),
		CombinedConfidence: float64(base+v.Confidence) / 2,
		Recommendation:     v.Recommendation,
		Risk:               v.Risk,
	}
}
