package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vijaybala/invoice-tracker/internal/common"
	"github.com/vijaybala/invoice-tracker/internal/entity"
)

// InvoiceRepository persists reviewed invoices.
type InvoiceRepository interface {
	// Save writes the invoice and all of its line items in one transaction.
	// An invoice whose (invoice_no, invoice_date) pair already exists is
	// rejected with common.ErrDuplicateInvoice before any row is written.
	Save(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context) ([]*entity.Invoice, error)
}

type invoiceRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewInvoiceRepository(pool *pgxpool.Pool, logger *slog.Logger) InvoiceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &invoiceRepository{pool: pool, logger: logger}
}

const insertInvoiceSQL = `
INSERT INTO invoices (
    id, shipper_name, billing_customer_name, consignee, invoice_no,
    invoice_date, buyers_order_no, ie_code, gstin, port_of_loading,
    port_of_discharge_final, notify_party, mode_of_delivery, terms,
    container_no, style_no, total_amount, total_net_wt, total_grs_wt,
    total_cbm
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
RETURNING created_at`

const insertItemSQL = `
INSERT INTO invoice_items (id, invoice_id, line_no, description, quantity, rate, amount)
VALUES ($1,$2,$3,$4,$5,$6,$7)`

func (r *invoiceRepository) Save(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Duplicate check on the natural key inside the same transaction as the
	// insert, so a rejection happens before any row is written.
	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE invoice_no = $1 AND invoice_date = $2)`,
		inv.InvoiceNo, inv.InvoiceDate,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if exists {
		r.logger.Warn("duplicate invoice rejected",
			"invoice_no", inv.InvoiceNo, "invoice_date", inv.InvoiceDate)
		return nil, common.ErrDuplicateInvoice
	}

	inv.ID = uuid.New()
	err = tx.QueryRow(ctx, insertInvoiceSQL,
		inv.ID, inv.ShipperName, inv.BillingCustomerName, inv.Consignee,
		inv.InvoiceNo, inv.InvoiceDate, inv.BuyersOrderNo, inv.IECode,
		inv.GSTIN, inv.PortOfLoading, inv.PortOfDischargeAndFinal,
		inv.NotifyParty, inv.ModeOfDelivery, inv.Terms, inv.ContainerNo,
		inv.StyleNo, inv.TotalAmount, inv.TotalNetWeightKg,
		inv.TotalGrossWeightKg, inv.TotalCBM,
	).Scan(&inv.CreatedAt)
	if err != nil {
		return nil, mapSaveError(err)
	}

	for i := range inv.Items {
		item := &inv.Items[i]
		item.ID = uuid.New()
		item.InvoiceID = inv.ID
		if item.LineNo == 0 {
			item.LineNo = i + 1
		}
		if _, err := tx.Exec(ctx, insertItemSQL,
			item.ID, item.InvoiceID, item.LineNo,
			item.Description, item.Quantity, item.Rate, item.Amount,
		); err != nil {
			return nil, fmt.Errorf("insert item %d: %w", item.LineNo, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	r.logger.Info("invoice saved",
		"invoice_id", inv.ID,
		"invoice_no", inv.InvoiceNo,
		"invoice_date", inv.InvoiceDate,
		"items", len(inv.Items),
	)
	return inv, nil
}

// mapSaveError converts a unique violation on the natural key into the
// duplicate sentinel. The explicit check above usually catches duplicates
// first; the index handles two concurrent saves of the same invoice.
func mapSaveError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return common.ErrDuplicateInvoice
	}
	return fmt.Errorf("%w: insert invoice: %w", common.ErrDatabase, err)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	rows, err := r.pool.Query(ctx, selectInvoicesSQL+` WHERE id = $1`, id)
	if err != nil {
		return nil, common.WrapError(err, "query invoice")
	}
	invoices, err := scanInvoices(rows)
	if err != nil {
		return nil, common.WrapError(err, "scan invoice")
	}
	if len(invoices) == 0 {
		return nil, common.ErrNotFound
	}
	inv := invoices[0]
	if err := r.attachItems(ctx, invoices); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]*entity.Invoice, error) {
	rows, err := r.pool.Query(ctx, selectInvoicesSQL+` ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("failed to list invoices", "error", err)
		return nil, common.WrapError(err, "query invoices")
	}
	invoices, err := scanInvoices(rows)
	if err != nil {
		return nil, common.WrapError(err, "scan invoices")
	}
	if err := r.attachItems(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

const selectInvoicesSQL = `
SELECT id, shipper_name, billing_customer_name, consignee, invoice_no,
       invoice_date, buyers_order_no, ie_code, gstin, port_of_loading,
       port_of_discharge_final, notify_party, mode_of_delivery, terms,
       container_no, style_no, total_amount, total_net_wt, total_grs_wt,
       total_cbm, created_at
FROM invoices`

func scanInvoices(rows pgx.Rows) ([]*entity.Invoice, error) {
	defer rows.Close()
	var out []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.ShipperName, &inv.BillingCustomerName,
			&inv.Consignee, &inv.InvoiceNo, &inv.InvoiceDate,
			&inv.BuyersOrderNo, &inv.IECode, &inv.GSTIN, &inv.PortOfLoading,
			&inv.PortOfDischargeAndFinal, &inv.NotifyParty,
			&inv.ModeOfDelivery, &inv.Terms, &inv.ContainerNo, &inv.StyleNo,
			&inv.TotalAmount, &inv.TotalNetWeightKg, &inv.TotalGrossWeightKg,
			&inv.TotalCBM, &inv.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}

func (r *invoiceRepository) attachItems(ctx context.Context, invoices []*entity.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*entity.Invoice, len(invoices))
	ids := make([]uuid.UUID, 0, len(invoices))
	for _, inv := range invoices {
		byID[inv.ID] = inv
		ids = append(ids, inv.ID)
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, invoice_id, line_no, description, quantity, rate, amount
FROM invoice_items
WHERE invoice_id = ANY($1)
ORDER BY invoice_id, line_no`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.InvoiceItem
		if err := rows.Scan(
			&item.ID, &item.InvoiceID, &item.LineNo,
			&item.Description, &item.Quantity, &item.Rate, &item.Amount,
		); err != nil {
			return err
		}
		if inv, ok := byID[item.InvoiceID]; ok {
			inv.Items = append(inv.Items, item)
		}
	}
	return rows.Err()
}
