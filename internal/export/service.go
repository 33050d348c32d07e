package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vijaybala/invoice-tracker/internal/repository"
)

// Service is a small façade over the invoice repository that produces XLSX
// bytes for exports.
type Service struct {
	invoices repository.InvoiceRepository
	logger   *slog.Logger
}

func NewService(invoices repository.InvoiceRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{invoices: invoices, logger: logger}
}

// ExportInvoicesXLSX returns a workbook with one Invoices sheet and one
// Line Items sheet covering every saved invoice.
func (s *Service) ExportInvoicesXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}

	f := excelize.NewFile()
	const invSheet = "Invoices"
	const itemSheet = "Line Items"

	if err := f.SetSheetName(f.GetSheetName(0), invSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(itemSheet); err != nil {
		return nil, err
	}

	invHeaders := []string{
		"Invoice No", "Invoice Date", "Shipper Name", "Billing Customer Name",
		"Consignee", "Buyers Order No", "IE Code", "GSTIN", "Port of Loading",
		"Port of Discharge / Final Destination", "Notify Party",
		"Mode of Delivery", "Terms", "Container No", "Style No",
		"Total Amount", "Total Net Wt (KGs)", "Total Gross Wt (KGs)",
		"Total CBM", "Saved At",
	}
	if err := writeRow(f, invSheet, 1, invHeaders); err != nil {
		return nil, err
	}

	itemHeaders := []string{"Invoice No", "Line", "Description", "Quantity", "Rate", "Amount"}
	if err := writeRow(f, itemSheet, 1, itemHeaders); err != nil {
		return nil, err
	}

	itemRow := 2
	for i, inv := range invoices {
		row := []string{
			inv.InvoiceNo, inv.InvoiceDate, inv.ShipperName,
			inv.BillingCustomerName, inv.Consignee, inv.BuyersOrderNo,
			inv.IECode, inv.GSTIN, inv.PortOfLoading,
			inv.PortOfDischargeAndFinal, inv.NotifyParty, inv.ModeOfDelivery,
			inv.Terms, inv.ContainerNo, inv.StyleNo, inv.TotalAmount,
			inv.TotalNetWeightKg, inv.TotalGrossWeightKg, inv.TotalCBM,
			inv.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writeRow(f, invSheet, i+2, row); err != nil {
			return nil, err
		}
		for _, item := range inv.Items {
			if err := writeRow(f, itemSheet, itemRow, []string{
				inv.InvoiceNo,
				fmt.Sprintf("%d", item.LineNo),
				item.Description, item.Quantity, item.Rate, item.Amount,
			}); err != nil {
				return nil, err
			}
			itemRow++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("invoices exported",
		"invoices", len(invoices),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
