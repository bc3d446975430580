package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var configPath string

// rootCmd serves the webhook API when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "AI trading signal analyzer",
	Long: `Receives TradingView-style webhook signals, asks a hosted language model
for a second opinion and falls back to rule-based scoring when the model is
unavailable.

Example usage:
  analyzer                           # Serve on PORT (default 10000)
  analyzer analyze --file sig.json   # Analyze one payload and print the record
  analyzer prompt --file sig.json    # Print the prompt that would be sent`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	defaultConfig := os.Getenv("CONFIG_FILE")
	if defaultConfig == "" {
		defaultConfig = "config.yaml"
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfig, "Path to YAML configuration file")

	rootCmd.AddCommand(serveCmd, analyzeCmd, promptCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
