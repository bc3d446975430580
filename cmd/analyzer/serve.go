package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"ai-signal-analyzer/internal/logger"
	"ai-signal-analyzer/internal/server"
	"ai-signal-analyzer/internal/trace"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the webhook API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := initializeSystem(); err != nil {
		return err
	}
	ctx := cmd.Context()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = trace.Shutdown(shutdownCtx)
	}()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	a, ring := initializeAnalyzer(ctx, cfg, prometheus.DefaultRegisterer)
	info := serviceInfo(cfg)
	logBanner(ctx, cfg, info)

	srv := server.NewServer(
		server.NewSignalHandler(a, ring, info, cfg.History.DefaultLimit),
		server.WithHost(cfg.Server.Host),
		server.WithPort(cfg.Server.Port),
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		server.WithCORS(cfg.Server.CORS),
		server.WithMetrics(cfg.Metrics.Enabled),
	)

	errc := srv.Start(ctx)
	select {
	case err := <-errc:
		if err != nil {
			logger.ErrorWithErr(ctx, "HTTP server failed", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(ctx, "Shutting down...")
	return srv.Stop(context.Background())
}
