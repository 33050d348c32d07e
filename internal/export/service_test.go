package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vijaybala/invoice-tracker/internal/entity"
)

type stubRepo struct {
	invoices []*entity.Invoice
	err      error
}

func (s *stubRepo) Save(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error) {
	return inv, nil
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return nil, nil
}

func (s *stubRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	return s.invoices, s.err
}

func TestExportInvoicesXLSX(t *testing.T) {
	repo := &stubRepo{invoices: []*entity.Invoice{
		{
			ID:          uuid.New(),
			InvoiceNo:   "INV-1",
			InvoiceDate: "01.01.2025",
			TotalAmount: "1818.00 USD",
			Items: []entity.InvoiceItem{
				{LineNo: 1, Description: "Garment", Quantity: "360", Rate: "1.95", Amount: "702.00"},
				{LineNo: 2, Description: "Buttons", Quantity: "500", Rate: "0.05", Amount: "25.00"},
			},
		},
		{ID: uuid.New(), InvoiceNo: "INV-2", InvoiceDate: "02.01.2025"},
	}}

	svc := NewService(repo, nil)
	data, err := svc.ExportInvoicesXLSX(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + two invoices
	assert.Equal(t, "Invoice No", rows[0][0])
	assert.Equal(t, "INV-1", rows[1][0])
	assert.Equal(t, "1818.00 USD", rows[1][15])
	assert.Equal(t, "INV-2", rows[2][0])

	items, err := f.GetRows("Line Items")
	require.NoError(t, err)
	require.Len(t, items, 3) // header + two rows for INV-1
	assert.Equal(t, []string{"INV-1", "1", "Garment", "360", "1.95", "702.00"}, items[1])
	assert.Equal(t, "2", items[2][1])
}

func TestExportInvoicesXLSXEmpty(t *testing.T) {
	svc := NewService(&stubRepo{}, nil)
	data, err := svc.ExportInvoicesXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
