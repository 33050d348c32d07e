package llm

import "github.com/vijaybala/invoice-tracker/constants"

// BuildInvoiceJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. It is rendered from the same field table as the prompt and is
// used for advisory validation of parsed responses: a syntactically valid
// object that fails the schema is still a success, just flagged for review.
// Every scalar is typed string because the model's textual representation is
// preserved verbatim; no field is required because a missing field maps to
// empty string rather than a rejection.
func BuildInvoiceJSONSchema() map[string]any {
	props := map[string]any{}
	for _, f := range constants.InvoiceFieldTable {
		props[f.Key] = map[string]any{"type": "string"}
	}
	props[constants.ProductsKey] = map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				constants.ItemDescriptionKey: map[string]any{"type": "string"},
				constants.ItemQuantityKey:    map[string]any{"type": "string"},
				constants.ItemRateKey:        map[string]any{"type": "string"},
				constants.ItemAmountKey:      map[string]any{"type": "string"},
			},
		},
	}

	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}
