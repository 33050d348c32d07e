package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijaybala/invoice-tracker/internal/common"
	"github.com/vijaybala/invoice-tracker/internal/export"
	"github.com/vijaybala/invoice-tracker/internal/repository"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved invoices to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(false)
		cfg := common.LoadConfig()
		if cfg.Database.DSN == "" {
			return fmt.Errorf("DB_URL is required")
		}

		ctx := cmd.Context()
		pool, err := repository.Open(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer repository.Close(pool, logger)

		invoices := repository.NewInvoiceRepository(pool, logger)
		data, err := export.NewService(invoices, logger).ExportInvoicesXLSX(ctx)
		if err != nil {
			return err
		}

		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		logger.Info("export written", "path", exportOut, "bytes", len(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "invoices.xlsx", "output file path")
}
