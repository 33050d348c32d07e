package llm

import (
	"testing"

	"github.com/vijaybala/invoice-tracker/constants"
)

func TestParseJSONWrappedInProse(t *testing.T) {
	raw := "Here you go:\n{\"Invoice_No\": \"INV-1\", \"Products\": []}\nThanks."
	out := Parse(raw)

	if out.Status != constants.OutcomeSuccess {
		t.Fatalf("expected success, got %s", out.Status)
	}
	if out.Fields.InvoiceNo != "INV-1" {
		t.Errorf("InvoiceNo = %q, want INV-1", out.Fields.InvoiceNo)
	}
	if len(out.Fields.Products) != 0 {
		t.Errorf("Products = %v, want empty", out.Fields.Products)
	}
	if out.Fields.Products == nil {
		t.Error("Products should be an empty slice, not nil")
	}
	if out.RawResponse != raw {
		t.Error("raw response must be preserved on success")
	}
}

func TestParseNoJSON(t *testing.T) {
	raw := "I could not extract this invoice."
	out := Parse(raw)

	if out.Status != constants.OutcomeNoJSONFound {
		t.Fatalf("expected no_json_found, got %s", out.Status)
	}
	if out.RawResponse != raw {
		t.Error("raw response must be preserved")
	}
}

func TestParseMalformedJSON(t *testing.T) {
	raw := `{"Invoice_No": "INV-2",}`
	out := Parse(raw)

	if out.Status != constants.OutcomeMalformedJSON {
		t.Fatalf("expected malformed_json, got %s", out.Status)
	}
	if out.Fields.InvoiceNo != "" {
		t.Error("no fields may be populated from a malformed response")
	}
	if out.RawResponse != raw {
		t.Error("raw response must be preserved")
	}
}

func TestParseStatuses(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want constants.OutcomeStatus
	}{
		{
			name: "clean object",
			raw:  `{"Invoice_No": "A"}`,
			want: constants.OutcomeSuccess,
		},
		{
			name: "markdown fenced",
			raw:  "```json\n{\"Invoice_No\": \"A\"}\n```",
			want: constants.OutcomeSuccess,
		},
		{
			name: "empty response",
			raw:  "",
			want: constants.OutcomeNoJSONFound,
		},
		{
			name: "only closing brace",
			raw:  "} nothing here",
			want: constants.OutcomeNoJSONFound,
		},
		{
			name: "braces in wrong order",
			raw:  "} first, { later",
			want: constants.OutcomeNoJSONFound,
		},
		{
			name: "unterminated object",
			raw:  `prose {"Invoice_No": "A" prose }`,
			want: constants.OutcomeMalformedJSON,
		},
		{
			name: "two objects in span",
			raw:  `{"Invoice_No": "A"} and also {"Invoice_No": "B"}`,
			want: constants.OutcomeMalformedJSON,
		},
		{
			name: "single-quoted strings",
			raw:  `{'Invoice_No': 'A'}`,
			want: constants.OutcomeMalformedJSON,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Parse(tc.raw)
			if out.Status != tc.want {
				t.Errorf("Parse(%q).Status = %s, want %s", tc.raw, out.Status, tc.want)
			}
		})
	}
}

func TestParseUnspecifiedFieldsAreEmpty(t *testing.T) {
	out := Parse(`{"Invoice_No": "INV-9"}`)
	if out.Status != constants.OutcomeSuccess {
		t.Fatalf("expected success, got %s", out.Status)
	}

	f := out.Fields
	for name, got := range map[string]string{
		"ShipperName": f.ShipperName,
		"Consignee":   f.Consignee,
		"InvoiceDate": f.InvoiceDate,
		"GSTIN":       f.GSTIN,
		"TotalAmount": f.TotalAmount,
		"TotalCBM":    f.TotalCBM,
		"NotifyParty": f.NotifyParty,
		"ContainerNo": f.ContainerNo,
	} {
		if got != "" {
			t.Errorf("%s = %q, want empty string for an absent field", name, got)
		}
	}
}

func TestParseFieldMappingIsCaseSensitive(t *testing.T) {
	out := Parse(`{"invoice_no": "INV-5", "Invoice_Date": "01.01.2025"}`)
	if out.Status != constants.OutcomeSuccess {
		t.Fatalf("expected success, got %s", out.Status)
	}
	if out.Fields.InvoiceNo != "" {
		t.Errorf("InvoiceNo = %q; lowercase key must not match", out.Fields.InvoiceNo)
	}
	if out.Fields.InvoiceDate != "01.01.2025" {
		t.Errorf("InvoiceDate = %q, want 01.01.2025", out.Fields.InvoiceDate)
	}
}

func TestParseNumbersKeepSourceLiteral(t *testing.T) {
	out := Parse(`{"Total_Amount": 1818.00, "Total_Net_Wt": 85.000, "Total_CBM": "1.44"}`)
	if out.Status != constants.OutcomeSuccess {
		t.Fatalf("expected success, got %s", out.Status)
	}
	if out.Fields.TotalAmount != "1818.00" {
		t.Errorf("TotalAmount = %q, want the verbatim literal 1818.00", out.Fields.TotalAmount)
	}
	if out.Fields.TotalNetWeightKg != "85.000" {
		t.Errorf("TotalNetWeightKg = %q, want 85.000", out.Fields.TotalNetWeightKg)
	}
	if out.Fields.TotalCBM != "1.44" {
		t.Errorf("TotalCBM = %q, want 1.44", out.Fields.TotalCBM)
	}
}

func TestParseProductsPreserveRowOrder(t *testing.T) {
	out := Parse(`{
		"Invoice_No": "INV-7",
		"Products": [
			{"description": "Garment", "quantity": "360", "rate": "1.95", "amount": "702.00"},
			{"description": "Garment", "quantity": "120", "rate": "2.10", "amount": "252.00"},
			{"description": "Buttons", "quantity": 500, "rate": 0.05, "amount": 25}
		]
	}`)
	if out.Status != constants.OutcomeSuccess {
		t.Fatalf("expected success, got %s", out.Status)
	}
	p := out.Fields.Products
	if len(p) != 3 {
		t.Fatalf("got %d products, want 3 (duplicates are not merged)", len(p))
	}
	if p[0].Quantity != "360" || p[1].Quantity != "120" {
		t.Errorf("row order not preserved: %v", p)
	}
	if p[2].Rate != "0.05" || p[2].Amount != "25" {
		t.Errorf("numeric line item values must keep their literals: %+v", p[2])
	}
}

func TestParseSchemaFlagIsAdvisory(t *testing.T) {
	// Products as a string fails the schema but is still a success outcome.
	out := Parse(`{"Invoice_No": "INV-8", "Products": "none"}`)
	if out.Status != constants.OutcomeSuccess {
		t.Fatalf("expected success, got %s", out.Status)
	}
	if out.SchemaOK {
		t.Error("SchemaOK should be false when Products is not an array")
	}
	if len(out.Fields.Products) != 0 {
		t.Errorf("Products = %v, want empty", out.Fields.Products)
	}

	good := Parse(`{"Invoice_No": "INV-8", "Products": []}`)
	if !good.SchemaOK {
		t.Error("SchemaOK should be true for a conforming document")
	}
}
