package entity

import (
	"testing"

	"github.com/vijaybala/invoice-tracker/internal/llm"
)

func TestFromFields(t *testing.T) {
	inv := FromFields(llm.InvoiceFields{
		InvoiceNo:   "INV-1",
		InvoiceDate: "01.01.2025",
		TotalAmount: "1818.00 USD",
		Products: []llm.LineItem{
			{Description: "Garment", Quantity: "360", Rate: "1.95", Amount: "702.00"},
			{Description: "Buttons", Quantity: "500", Rate: "0.05", Amount: "25.00"},
		},
	})

	if inv.InvoiceNo != "INV-1" || inv.InvoiceDate != "01.01.2025" {
		t.Errorf("natural key not carried over: %+v", inv)
	}
	if inv.TotalAmount != "1818.00 USD" {
		t.Errorf("TotalAmount = %q; the reviewed text must be kept verbatim", inv.TotalAmount)
	}
	if len(inv.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(inv.Items))
	}
	for i, item := range inv.Items {
		if item.LineNo != i+1 {
			t.Errorf("item %d: LineNo = %d, want %d", i, item.LineNo, i+1)
		}
	}
	if inv.Items[1].Rate != "0.05" {
		t.Errorf("Rate = %q, want 0.05", inv.Items[1].Rate)
	}
}

func TestFromFieldsNoProducts(t *testing.T) {
	inv := FromFields(llm.InvoiceFields{InvoiceNo: "INV-2"})
	if len(inv.Items) != 0 {
		t.Errorf("got %d items, want none", len(inv.Items))
	}
}
