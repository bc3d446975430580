package prompt

import (
	"fmt"
	"sort"
	"strings"

	"ai-signal-analyzer/internal/types"
)

var conditionLabels = map[string]string{
	types.CondWaddahExplosive: "Waddah Explosive",
	types.CondSqueezeFiring:   "Squeeze Firing",
	types.CondStrongTrend:     "Strong Trend",
	types.CondHighVolume:      "High Volume",
	types.CondHTFAligned:      "HTF Aligned",
	types.CondSupertrendFlip:  "Supertrend Flip",
	types.CondVWAPCross:       "VWAP Cross",
}

// Build renders the instruction prompt sent to the inference endpoint.
func Build(sig types.Signal) string {
	ind := sig.Indicators
	sc := sig.Scores

	var b strings.Builder
	b.WriteString("<s>[INST] You are an expert technical analyst. Analyze this trading signal and provide a confidence score.\n\n")

	b.WriteString("Signal Data:\n")
	fmt.Fprintf(&b, "- Ticker: %s\n", sig.Ticker)
	fmt.Fprintf(&b, "- Price: $%s\n", formatNumber(sig.Price))
	fmt.Fprintf(&b, "- Signal Type: %s\n", sig.Signal)
	fmt.Fprintf(&b, "- Base Confidence: %d%%\n\n", sig.Confidence)

	b.WriteString("Technical Indicators:\n")
	fmt.Fprintf(&b, "- RSI: %s (Overbought >70, Oversold <30)\n", ind.RSI)
	fmt.Fprintf(&b, "- MACD: %s\n", ind.MACD)
	fmt.Fprintf(&b, "- ADX: %s (Trend strength, >25 is strong)\n", ind.ADX)
	fmt.Fprintf(&b, "- Volume Ratio: %sx\n", formatNumber(ind.VolumeRatio.Value))
	fmt.Fprintf(&b, "- ATR: %s\n", ind.ATR)
	fmt.Fprintf(&b, "- MFI: %s\n", ind.MFI)
	fmt.Fprintf(&b, "- Fisher: %s\n", ind.Fisher)
	fmt.Fprintf(&b, "- VWAP: %s\n\n", ind.VWAP)

	b.WriteString("AI Scores:\n")
	for _, s := range []struct {
		name string
		r    types.Reading
	}{
		{"Trend", sc.Trend},
		{"Momentum", sc.Momentum},
		{"Volatility", sc.Volatility},
		{"Volume", sc.Volume},
		{"Waddah", sc.Waddah},
		{"Squeeze", sc.Squeeze},
		{"VWAP", sc.VWAP},
		{"Supertrend", sc.Supertrend},
		{"MFI", sc.MFI},
		{"Fisher", sc.Fisher},
	} {
		fmt.Fprintf(&b, "- %s: %s\n", s.name, s.r)
	}
	b.WriteString("\n")

	b.WriteString("Conditions:\n")
	for _, name := range types.ConditionNames {
		fmt.Fprintf(&b, "- %s: %s\n", conditionLabels[name], pyBool(sig.Condition(name)))
	}
	b.WriteString("\n")

	if ctx := marketContext(sig.Labels); ctx != "" {
		fmt.Fprintf(&b, "Market Context: %s\n\n", ctx)
	}

	b.WriteString("Provide analysis in this EXACT format:\n")
	b.WriteString("CONFIDENCE: [number 0-100]\n")
	b.WriteString("RECOMMENDATION: [BUY/SELL/WAIT]\n")
	b.WriteString("RISK: [LOW/MEDIUM/HIGH]\n")
	b.WriteString("STRENGTHS: [list 2-3 key strengths]\n")
	b.WriteString("CONCERNS: [list 1-2 concerns]\n")
	b.WriteString("REASON: [1-2 sentence explanation] [/INST]")

	return b.String()
}

func marketContext(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+labels[k])
	}
	return strings.Join(parts, ", ")
}

func formatNumber(v float64) string {
	return types.Reading{Value: v, Present: true}.String()
}

// pyBool matches the True/False spelling the model was tuned on.
func pyBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
