package llm

import "testing"

func TestValidateInvoiceJSON(t *testing.T) {
	if err := validateInvoiceJSON([]byte(`{"Invoice_No": "INV-1", "Products": []}`)); err != nil {
		t.Errorf("conforming document rejected: %v", err)
	}
	if err := validateInvoiceJSON([]byte(`{"Invoice_No": 42}`)); err == nil {
		t.Error("non-string scalar should fail validation")
	}
	if err := validateInvoiceJSON([]byte(`{"Products": [{"quantity": 500}]}`)); err == nil {
		t.Error("non-string line item value should fail validation")
	}
}

func TestCompiledSchemaIsReused(t *testing.T) {
	if compiledInvoiceSchema() != compiledInvoiceSchema() {
		t.Fatal("schema must be compiled once and shared")
	}
}
