// Package signal turns raw webhook payloads into canonical signal records.
//
// Two payload shapes are accepted: the current nested one (ticker, signal,
// indicators{}, scores{}, conditions{}) and the older flat one (symbol,
// signal_type, rsi, adx, ...). Nested fields win when both are present.
package signal

import (
	"strings"

	"github.com/spf13/cast"

	"ai-signal-analyzer/internal/types"
)

const (
	Unknown           = "UNKNOWN"
	DefaultConfidence = 70
	DefaultRSI        = 50.0
	DefaultADX        = 20.0
	DefaultVolume     = 1.0
)

// legacyLabels are flat-shape fields that carry categorical market context.
var legacyLabels = []string{
	"vwap_position",
	"waddah_bullish",
	"waddah_bearish",
	"squeeze_status",
	"squeeze_momentum",
	"supertrend",
	"fisher",
	"ema_alignment",
	"htf_trend",
	"pattern",
	"timeframe",
}

// Normalize builds a canonical record from payload. It never fails: missing or
// unparseable values fall back to their defaults.
func Normalize(payload map[string]any) types.Signal {
	sig := types.Signal{
		Ticker:     firstString(payload, Unknown, "ticker", "symbol"),
		Price:      number(payload, "price").Value,
		Conditions: make(map[string]bool, len(types.ConditionNames)),
	}

	sig.Signal = strings.ToUpper(firstString(payload, Unknown, "signal", "signal_type"))
	switch types.Recommendation(sig.Signal) {
	case types.RecommendBuy, types.RecommendSell:
		sig.Direction = types.Recommendation(sig.Signal)
	}

	sig.Confidence = DefaultConfidence
	if c := number(payload, "confidence"); c.Present {
		sig.Confidence = int(c.Value)
	}

	ind := nested(payload, "indicators")
	sig.Indicators = types.Indicators{
		RSI:         withDefault(pick(ind, payload, "rsi"), DefaultRSI),
		MACD:        pick(ind, payload, "macd"),
		ADX:         withDefault(pick(ind, payload, "adx"), DefaultADX),
		VolumeRatio: withDefault(pick(ind, payload, "volume_ratio"), DefaultVolume),
		ATR:         pick(ind, payload, "atr", "atr_percent"),
		MFI:         pick(ind, payload, "mfi"),
		Fisher:      pick(ind, payload, "fisher"),
		VWAP:        pick(ind, payload, "vwap"),
	}

	sc := nested(payload, "scores")
	sig.Scores = types.Scores{
		Trend:      pick(sc, nil, "trend"),
		Momentum:   pick(sc, nil, "momentum"),
		Volatility: pick(sc, nil, "volatility"),
		Volume:     pick(sc, nil, "volume"),
		Waddah:     pick(sc, payload, "waddah"),
		Squeeze:    pick(sc, payload, "squeeze"),
		VWAP:       pick(sc, nil, "vwap"),
		Supertrend: pick(sc, nil, "supertrend"),
		MFI:        pick(sc, nil, "mfi"),
		Fisher:     pick(sc, nil, "fisher"),
	}

	cond := nested(payload, "conditions")
	for _, name := range types.ConditionNames {
		if v, ok := cond[name]; ok {
			sig.Conditions[name] = flag(v)
			continue
		}
		if v, ok := payload[name]; ok {
			sig.Conditions[name] = flag(v)
		}
	}

	for _, key := range legacyLabels {
		v, ok := payload[key]
		if !ok || v == nil {
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil || s == "" {
			continue
		}
		if sig.Labels == nil {
			sig.Labels = make(map[string]string)
		}
		sig.Labels[key] = s
	}

	return sig
}

// nested returns payload[key] as an object, or nil.
func nested(payload map[string]any, key string) map[string]any {
	m, ok := payload[key].(map[string]any)
	if !ok {
		return nil
	}
	return m
}

// pick resolves the first parseable value for key from primary, then each of
// the flat keys in fallback. The first key doubles as the flat name when no
// aliases are given.
func pick(primary, fallback map[string]any, key string, aliases ...string) types.Reading {
	if r := number(primary, key); r.Present {
		return r
	}
	if fallback == nil {
		return types.Reading{}
	}
	for _, k := range append([]string{key}, aliases...) {
		if r := number(fallback, k); r.Present {
			return r
		}
	}
	return types.Reading{}
}

func withDefault(r types.Reading, def float64) types.Reading {
	if !r.Present {
		r.Value = def
	}
	return r
}

// number reads m[key] leniently: JSON numbers, json.Number and numeric strings
// all count. Anything else is treated as absent.
func number(m map[string]any, key string) types.Reading {
	v, ok := m[key]
	if !ok || v == nil {
		return types.Reading{}
	}
	if _, isBool := v.(bool); isBool {
		return types.Reading{}
	}
	if s, isString := v.(string); isString {
		v = strings.TrimSpace(s)
		if v == "" {
			return types.Reading{}
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return types.Reading{}
	}
	return types.Reading{Value: f, Present: true}
}

func flag(v any) bool {
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}

// firstString returns the first non-empty string among keys, or def.
func firstString(m map[string]any, def string, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(cast.ToString(v))
		if s != "" {
			return s
		}
	}
	return def
}
