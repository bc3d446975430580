package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"ai-signal-analyzer/internal/prompt"
	"ai-signal-analyzer/internal/signal"
)

var (
	payloadFile string
	useSample   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one webhook payload and print the record as JSON",
	RunE:  runAnalyze,
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the model prompt built for a payload",
	RunE:  runPrompt,
}

func init() {
	for _, c := range []*cobra.Command{analyzeCmd, promptCmd} {
		c.Flags().StringVar(&payloadFile, "file", "", "JSON payload file ('-' for stdin)")
		c.Flags().BoolVar(&useSample, "sample", false, "Use the built-in sample payload")
	}
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if err := initializeSystem(); err != nil {
		return err
	}
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	payload, err := readPayload(cmd.InOrStdin())
	if err != nil {
		return err
	}

	a, _ := initializeAnalyzer(ctx, cfg, prometheus.NewRegistry())
	rec, err := a.Analyze(ctx, payload)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), rec)
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	payload, err := readPayload(cmd.InOrStdin())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), prompt.Build(signal.Normalize(payload)))
	return err
}

func readPayload(stdin io.Reader) (map[string]any, error) {
	if useSample {
		return signal.SamplePayload(), nil
	}

	var r io.Reader
	switch payloadFile {
	case "":
		return nil, errors.New("either --file or --sample is required")
	case "-":
		r = stdin
	default:
		f, err := os.Open(payloadFile)
		if err != nil {
			return nil, fmt.Errorf("open payload: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return payload, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
