package signal

// SamplePayload returns the built-in payload served by the self-test endpoint.
// A fresh map is returned on every call.
func SamplePayload() map[string]any {
	return map[string]any{
		"ticker":      "BTCUSDT",
		"signal":      "BUY",
		"confidence":  75,
		"price":       45000,
		"entry":       45000,
		"stop_loss":   44500,
		"take_profit": 46000,
		"risk_reward": 2.0,
		"timeframe":   "5min",
		"indicators": map[string]any{
			"rsi":          45,
			"macd":         12.5,
			"adx":          28,
			"volume_ratio": 1.8,
			"atr":          250,
			"mfi":          55,
			"fisher":       -0.5,
			"vwap":         44950,
		},
		"scores": map[string]any{
			"trend":      85,
			"momentum":   78,
			"volatility": 90,
			"volume":     88,
			"waddah":     100,
			"squeeze":    95,
			"vwap":       80,
			"supertrend": 85,
			"mfi":        70,
			"fisher":     75,
		},
		"conditions": map[string]any{
			"waddah_explosive": true,
			"squeeze_firing":   true,
			"strong_trend":     true,
			"high_volume":      true,
			"htf_aligned":      true,
			"supertrend_flip":  false,
			"vwap_cross":       true,
		},
	}
}
