package llm

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"ai-signal-analyzer/internal/types"
)

const (
	defaultConfidence = 70
	maxStrengths      = 3
	maxConcerns       = 2
	minReasoningLen   = 10
	maxFullResponse   = 500
	strongMomentumADX = 25.0
)

// Labels recognised at the start of a reply line, checked in this order.
const (
	labelConfidence     = "CONFIDENCE:"
	labelRecommendation = "RECOMMENDATION:"
	labelRisk           = "RISK:"
	labelStrengths      = "STRENGTHS:"
	labelConcerns       = "CONCERNS:"
	labelReason         = "REASON:"
)

// ParseResponse extracts a verdict from free-form model text. It never fails:
// anything it cannot read keeps its default, and gaps are filled so the
// verdict always satisfies its bounds. sig supplies the trend strength used to
// pick a placeholder strength.
func ParseResponse(text string, sig types.Signal, model string) types.Verdict {
	return parse(text, sig, model, time.Now().UTC())
}

func parse(text string, sig types.Signal, model string, now time.Time) types.Verdict {
	confidence := defaultConfidence
	rec := types.RecommendWait
	risk := types.RiskMedium
	var strengths, concerns []string
	var reasoning string

	for _, raw := range strings.Split(text, "\n") {
		line := stripDecoration(raw)
		if line == "" {
			continue
		}
		key := strings.ToUpper(strings.ReplaceAll(line, "*", ""))

		switch {
		case strings.HasPrefix(key, labelConfidence):
			if n, err := strconv.Atoi(digits(line)); err == nil {
				confidence = n
			}
		case strings.HasPrefix(key, labelRecommendation):
			switch {
			case strings.Contains(key, "BUY"):
				rec = types.RecommendBuy
			case strings.Contains(key, "SELL"):
				rec = types.RecommendSell
			default:
				rec = types.RecommendWait
			}
		case strings.HasPrefix(key, labelRisk):
			switch {
			case strings.Contains(key, "LOW"):
				risk = types.RiskLow
			case strings.Contains(key, "HIGH"):
				risk = types.RiskHigh
			default:
				risk = types.RiskMedium
			}
		case strings.HasPrefix(key, labelStrengths):
			strengths = splitList(afterColon(line))
		case strings.HasPrefix(key, labelConcerns):
			concerns = splitList(afterColon(line))
		case strings.HasPrefix(key, labelReason):
			reasoning = strings.Trim(afterColon(line), " *")
		}
	}

	if len(strengths) == 0 {
		if sig.Indicators.ADX.Value > strongMomentumADX {
			strengths = []string{"Strong momentum"}
		} else {
			strengths = []string{"Moderate setup"}
		}
	}
	if len(concerns) == 0 {
		concerns = []string{"Monitor risk levels"}
	}
	if len(reasoning) < minReasoningLen {
		reasoning = fmt.Sprintf("Signal shows %s potential with %d%% confidence", strings.ToLower(string(rec)), confidence)
	}

	return types.Verdict{
		Success:        true,
		Confidence:     max(0, min(100, confidence)),
		Recommendation: rec,
		Risk:           risk,
		Strengths:      capList(strengths, maxStrengths),
		Concerns:       capList(concerns, maxConcerns),
		Reasoning:      reasoning,
		Model:          model,
		FullResponse:   truncate(text, maxFullResponse),
		Timestamp:      now,
	}
}

// stripDecoration removes whitespace, markdown emphasis, bullets and a leading
// ordinal such as "2." from a line.
func stripDecoration(line string) string {
	line = strings.TrimSpace(line)
	for {
		trimmed := strings.TrimLeft(line, " \t*-#>•")
		if i := strings.IndexFunc(trimmed, func(r rune) bool { return !unicode.IsDigit(r) }); i > 0 &&
			(trimmed[i] == '.' || trimmed[i] == ')') {
			trimmed = trimmed[i+1:]
		}
		if trimmed == line {
			return line
		}
		line = strings.TrimSpace(trimmed)
	}
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func afterColon(line string) string {
	_, rest, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(rest)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.Trim(item, " \t*[]\"'")
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
