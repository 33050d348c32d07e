package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/vijaybala/invoice-tracker/internal/llm"
)

// Invoice is a reviewed, persisted invoice. All extracted fields stay text:
// amounts and weights keep whatever representation the reviewer confirmed,
// units included.
type Invoice struct {
	ID                      uuid.UUID     `json:"id"`
	ShipperName             string        `json:"shipper_name"`
	BillingCustomerName     string        `json:"billing_customer_name"`
	Consignee               string        `json:"consignee"`
	InvoiceNo               string        `json:"invoice_no"`
	InvoiceDate             string        `json:"invoice_date"`
	BuyersOrderNo           string        `json:"buyers_order_no"`
	IECode                  string        `json:"ie_code"`
	GSTIN                   string        `json:"gstin"`
	PortOfLoading           string        `json:"port_of_loading"`
	PortOfDischargeAndFinal string        `json:"port_of_discharge_final"`
	NotifyParty             string        `json:"notify_party"`
	ModeOfDelivery          string        `json:"mode_of_delivery"`
	Terms                   string        `json:"terms"`
	ContainerNo             string        `json:"container_no"`
	StyleNo                 string        `json:"style_no"`
	TotalAmount             string        `json:"total_amount"`
	TotalNetWeightKg        string        `json:"total_net_wt"`
	TotalGrossWeightKg      string        `json:"total_grs_wt"`
	TotalCBM                string        `json:"total_cbm"`
	Items                   []InvoiceItem `json:"items"`
	CreatedAt               time.Time     `json:"created_at"`
}

// InvoiceItem is one persisted product row. LineNo preserves the row order
// of the source document's product table.
type InvoiceItem struct {
	ID          uuid.UUID `json:"id"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
	LineNo      int       `json:"line_no"`
	Description string    `json:"description"`
	Quantity    string    `json:"quantity"`
	Rate        string    `json:"rate"`
	Amount      string    `json:"amount"`
}

// FromFields builds an unsaved Invoice from a reviewed extraction record.
func FromFields(f llm.InvoiceFields) *Invoice {
	inv := &Invoice{
		ShipperName:             f.ShipperName,
		BillingCustomerName:     f.BillingCustomerName,
		Consignee:               f.Consignee,
		InvoiceNo:               f.InvoiceNo,
		InvoiceDate:             f.InvoiceDate,
		BuyersOrderNo:           f.BuyersOrderNo,
		IECode:                  f.IECode,
		GSTIN:                   f.GSTIN,
		PortOfLoading:           f.PortOfLoading,
		PortOfDischargeAndFinal: f.PortOfDischargeAndFinal,
		NotifyParty:             f.NotifyParty,
		ModeOfDelivery:          f.ModeOfDelivery,
		Terms:                   f.Terms,
		ContainerNo:             f.ContainerNo,
		StyleNo:                 f.StyleNo,
		TotalAmount:             f.TotalAmount,
		TotalNetWeightKg:        f.TotalNetWeightKg,
		TotalGrossWeightKg:      f.TotalGrossWeightKg,
		TotalCBM:                f.TotalCBM,
	}
	for i, p := range f.Products {
		inv.Items = append(inv.Items, InvoiceItem{
			LineNo:      i + 1,
			Description: p.Description,
			Quantity:    p.Quantity,
			Rate:        p.Rate,
			Amount:      p.Amount,
		})
	}
	return inv
}
