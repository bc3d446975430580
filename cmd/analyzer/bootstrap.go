package main

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"ai-signal-analyzer/internal/analyzer"
	"ai-signal-analyzer/internal/analyzer/analyzerobs"
	"ai-signal-analyzer/internal/history"
	"ai-signal-analyzer/internal/interfaces"
	"ai-signal-analyzer/internal/llm/huggingface"
	"ai-signal-analyzer/internal/llm/llmobs"
	"ai-signal-analyzer/internal/llm/noop"
	"ai-signal-analyzer/internal/logger"
	"ai-signal-analyzer/internal/metrics"
	"ai-signal-analyzer/internal/server"
	"ai-signal-analyzer/internal/store"
	"ai-signal-analyzer/internal/trace"
)

const (
	serviceName    = "AI Trading Signal Analyzer"
	serviceVersion = "2.1-Fixed"
)

// initializeSystem loads .env and initializes logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig(configPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", configPath)
		return nil, err
	}
	return cfg, nil
}

// initializeClient picks the inference client and wraps it with observability
func initializeClient(ctx context.Context, cfg *store.Config, rec *metrics.Recorder) interfaces.InferenceClient {
	var client interfaces.InferenceClient

	switch {
	case cfg.UseRemoteModel():
		client = huggingface.New(huggingface.Config{
			Endpoint:     cfg.LLM.Endpoint,
			Token:        cfg.LLM.Token,
			ModelName:    cfg.LLM.ModelName,
			Timeout:      cfg.LLM.Timeout,
			MaxNewTokens: cfg.LLM.MaxNewTokens,
			Temperature:  cfg.LLM.Temperature,
			TopP:         cfg.LLM.TopP,
		})
	case cfg.LLM.Provider == "NONE":
		client = noop.New()
		logger.Info(ctx, "Remote model disabled - every analysis uses fallback logic")
	default:
		client = noop.New()
		logger.Warn(ctx, "No inference token configured - every analysis uses fallback logic",
			"token_env", cfg.LLM.TokenEnv)
	}

	return llmobs.Wrap(client, rec)
}

// initializeAnalyzer builds the pipeline and its history store
func initializeAnalyzer(ctx context.Context, cfg *store.Config, reg prometheus.Registerer) (interfaces.Analyzer, *history.Ring) {
	var rec *metrics.Recorder
	if cfg.Metrics.Enabled {
		rec = metrics.New(reg)
	}

	ring := history.New(cfg.History.Capacity)
	client := initializeClient(ctx, cfg, rec)

	a := analyzer.New(client, ring, analyzer.WithRecorder(rec))
	return analyzerobs.Wrap(a), ring
}

// serviceInfo describes the running configuration for / and /health
func serviceInfo(cfg *store.Config) server.ServiceInfo {
	provider := "Hugging Face"
	if !cfg.UseRemoteModel() {
		provider = "Fallback logic"
	}
	return server.ServiceInfo{
		Service:     serviceName,
		Version:     serviceVersion,
		AIModel:     "Hugging Face " + cfg.LLM.ModelName,
		AIProvider:  provider,
		APIEndpoint: endpointHost(cfg.LLM.Endpoint),
	}
}

func endpointHost(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}

func logBanner(ctx context.Context, cfg *store.Config, info server.ServiceInfo) {
	logger.Info(ctx, "╔══════════════════════════════════════════════════════════════╗")
	logger.Info(ctx, "║              AI Trading Signal Analyzer                      ║")
	logger.Info(ctx, "╚══════════════════════════════════════════════════════════════╝")
	logger.Info(ctx, "Service configuration",
		"version", info.Version,
		"model", cfg.LLM.ModelName,
		"endpoint", info.APIEndpoint,
		"provider", info.AIProvider,
		"token_configured", cfg.HasToken(),
		"history_capacity", cfg.History.Capacity,
		"metrics", cfg.Metrics.Enabled,
	)
}
