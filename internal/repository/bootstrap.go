package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

const bootstrapDDL = `
CREATE TABLE IF NOT EXISTS invoices (
    id                      uuid PRIMARY KEY,
    shipper_name            text NOT NULL DEFAULT '',
    billing_customer_name   text NOT NULL DEFAULT '',
    consignee               text NOT NULL DEFAULT '',
    invoice_no              text NOT NULL,
    invoice_date            text NOT NULL,
    buyers_order_no         text NOT NULL DEFAULT '',
    ie_code                 text NOT NULL DEFAULT '',
    gstin                   text NOT NULL DEFAULT '',
    port_of_loading         text NOT NULL DEFAULT '',
    port_of_discharge_final text NOT NULL DEFAULT '',
    notify_party            text NOT NULL DEFAULT '',
    mode_of_delivery        text NOT NULL DEFAULT '',
    terms                   text NOT NULL DEFAULT '',
    container_no            text NOT NULL DEFAULT '',
    style_no                text NOT NULL DEFAULT '',
    total_amount            text NOT NULL DEFAULT '',
    total_net_wt            text NOT NULL DEFAULT '',
    total_grs_wt            text NOT NULL DEFAULT '',
    total_cbm               text NOT NULL DEFAULT '',
    created_at              timestamptz NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS invoices_natural_key
    ON invoices (invoice_no, invoice_date);

CREATE TABLE IF NOT EXISTS invoice_items (
    id          uuid PRIMARY KEY,
    invoice_id  uuid NOT NULL REFERENCES invoices (id) ON DELETE CASCADE,
    line_no     int NOT NULL,
    description text NOT NULL DEFAULT '',
    quantity    text NOT NULL DEFAULT '',
    rate        text NOT NULL DEFAULT '',
    amount      text NOT NULL DEFAULT '',
    UNIQUE (invoice_id, line_no)
);
`

// EnsureBootstrapped creates the schema when it does not exist yet.
// The unique index on (invoice_no, invoice_date) is the natural key backing
// duplicate detection; the repository checks it explicitly before writing
// and the index catches races between concurrent saves.
func EnsureBootstrapped(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	if _, err := pool.Exec(ctx, bootstrapDDL); err != nil {
		logger.Error("schema bootstrap failed", "error", err)
		return fmt.Errorf("bootstrap schema: %w", err)
	}
	logger.Info("schema bootstrap ok")
	return nil
}
