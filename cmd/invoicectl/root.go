package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Invoice extraction utilities",
	Long:  "invoicectl runs one-shot invoice extractions and exports without the HTTP server.",
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(exportCmd)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
