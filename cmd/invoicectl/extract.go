package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijaybala/invoice-tracker/constants"
	"github.com/vijaybala/invoice-tracker/internal/common"
	"github.com/vijaybala/invoice-tracker/internal/extract"
	"github.com/vijaybala/invoice-tracker/internal/llm/gemini"
	"github.com/vijaybala/invoice-tracker/internal/pipeline"
)

var extractVerbose bool

var extractCmd = &cobra.Command{
	Use:   "extract <invoice.pdf>",
	Short: "Extract structured fields from an invoice PDF",
	Long: "extract runs the full pipeline on one PDF and prints the outcome " +
		"as JSON on stdout. Nothing is persisted.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(extractVerbose)
		cfg := common.LoadConfig()
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("GOOGLE_GEMINI_API_KEY is required")
		}

		ctx := cmd.Context()
		inferrer, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			Timeout:     cfg.LLM.Timeout,
			MaxAttempts: cfg.LLM.MaxAttempts,
			Backoff:     cfg.LLM.Backoff,
		}, logger)
		if err != nil {
			return err
		}
		defer func() {
			_ = inferrer.Close()
		}()

		orch := pipeline.NewOrchestrator(
			logger,
			pipeline.Config{MaxPromptRunes: cfg.Extract.MaxPromptRunes},
			extract.NewPDFExtractor(logger),
			inferrer,
		)

		outcome, err := orch.ExtractInvoice(ctx, args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if outcome.Status == constants.OutcomeSuccess {
			return enc.Encode(outcome.Fields)
		}
		return enc.Encode(map[string]string{
			"status":       string(outcome.Status),
			"raw_response": outcome.RawResponse,
		})
	},
}

func init() {
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "enable debug logging")
}
