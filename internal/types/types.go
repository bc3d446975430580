package types

import (
	"strconv"
	"time"
)

// Recommendation is the action a verdict advises.
type Recommendation string

const (
	RecommendBuy  Recommendation = "BUY"
	RecommendSell Recommendation = "SELL"
	RecommendWait Recommendation = "WAIT"
)

// Risk is the qualitative risk level of a verdict.
type Risk string

const (
	RiskLow    Risk = "LOW"
	RiskMedium Risk = "MEDIUM"
	RiskHigh   Risk = "HIGH"
)

// Tradable reports whether the recommendation is an actual trade direction.
func (r Recommendation) Tradable() bool {
	return r == RecommendBuy || r == RecommendSell
}

// Reading is a single numeric indicator value. Value always carries a usable
// number (the default when the payload omitted it); Present records whether the
// payload actually supplied it.
type Reading struct {
	Value   float64 `json:"value"`
	Present bool    `json:"present"`
}

// String renders the reading for prompts; absent readings render as N/A.
func (r Reading) String() string {
	if !r.Present {
		return "N/A"
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

type Indicators struct {
	RSI         Reading `json:"rsi"`
	MACD        Reading `json:"macd"`
	ADX         Reading `json:"adx"`
	VolumeRatio Reading `json:"volume_ratio"`
	ATR         Reading `json:"atr"`
	MFI         Reading `json:"mfi"`
	Fisher      Reading `json:"fisher"`
	VWAP        Reading `json:"vwap"`
}

type Scores struct {
	Trend      Reading `json:"trend"`
	Momentum   Reading `json:"momentum"`
	Volatility Reading `json:"volatility"`
	Volume     Reading `json:"volume"`
	Waddah     Reading `json:"waddah"`
	Squeeze    Reading `json:"squeeze"`
	VWAP       Reading `json:"vwap"`
	Supertrend Reading `json:"supertrend"`
	MFI        Reading `json:"mfi"`
	Fisher     Reading `json:"fisher"`
}

// Condition flag names understood by the normalizer.
const (
	CondWaddahExplosive = "waddah_explosive"
	CondSqueezeFiring   = "squeeze_firing"
	CondStrongTrend     = "strong_trend"
	CondHighVolume      = "high_volume"
	CondHTFAligned      = "htf_aligned"
	CondSupertrendFlip  = "supertrend_flip"
	CondVWAPCross       = "vwap_cross"
)

// ConditionNames lists every condition flag in prompt order.
var ConditionNames = []string{
	CondWaddahExplosive,
	CondSqueezeFiring,
	CondStrongTrend,
	CondHighVolume,
	CondHTFAligned,
	CondSupertrendFlip,
	CondVWAPCross,
}

// Signal is the canonical record produced from an inbound webhook payload.
type Signal struct {
	Ticker     string            `json:"ticker"`
	Price      float64           `json:"price"`
	Signal     string            `json:"signal"`
	Direction  Recommendation    `json:"direction,omitempty"`
	Confidence int               `json:"confidence"`
	Indicators Indicators        `json:"indicators"`
	Scores     Scores            `json:"scores"`
	Conditions map[string]bool   `json:"conditions"`
	Labels     map[string]string `json:"labels,omitempty"`
}

// Condition returns the named flag, false when unset.
func (s Signal) Condition(name string) bool {
	return s.Conditions[name]
}

// Verdict is the structured assessment of a signal, produced either from the
// remote model's reply or from the fallback heuristic.
type Verdict struct {
	Success        bool           `json:"success"`
	Confidence     int            `json:"ai_confidence"`
	Recommendation Recommendation `json:"recommendation"`
	Risk           Risk           `json:"risk_level"`
	Strengths      []string       `json:"key_strengths"`
	Concerns       []string       `json:"concerns"`
	Reasoning      string         `json:"reasoning"`
	Model          string         `json:"model"`
	FullResponse   string         `json:"full_response,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
}

// Decision is the final trade/no-trade call derived from a verdict.
type Decision struct {
	ShouldTrade        bool           `json:"should_trade"`
	CombinedConfidence float64        `json:"combined_confidence"`
	Recommendation     Recommendation `json:"recommendation"`
	Risk               Risk           `json:"risk_level"`
}

type OriginalSignal struct {
	Ticker         string  `json:"ticker"`
	Price          float64 `json:"price"`
	Signal         string  `json:"signal"`
	BaseConfidence int     `json:"base_confidence"`
}

// AnalysisRecord is one completed analysis as returned by /analyze and kept in history.
type AnalysisRecord struct {
	ID             string         `json:"id"`
	OriginalSignal OriginalSignal `json:"original_signal"`
	Analysis       Verdict        `json:"ai_analysis"`
	Decision       Decision       `json:"final_decision"`
	Timestamp      time.Time      `json:"timestamp"`
}

// Clone returns a deep copy so callers cannot mutate stored records.
func (r AnalysisRecord) Clone() AnalysisRecord {
	r.Analysis.Strengths = append([]string(nil), r.Analysis.Strengths...)
	r.Analysis.Concerns = append([]string(nil), r.Analysis.Concerns...)
	return r
}
