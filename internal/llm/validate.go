package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// compiledInvoiceSchema compiles the invoice schema on first use and reuses
// it for every subsequent validation. The schema is rendered from a constant
// field table, so compiling it can only fail on a programming error.
var compiledInvoiceSchema = sync.OnceValue(func() *jsonschema.Schema {
	b, err := json.Marshal(BuildInvoiceJSONSchema())
	if err != nil {
		panic(fmt.Sprintf("marshal invoice schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("invoice.schema.json", bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add invoice schema: %v", err))
	}
	schema, err := compiler.Compile("invoice.schema.json")
	if err != nil {
		panic(fmt.Sprintf("compile invoice schema: %v", err))
	}
	return schema
})

// validateInvoiceJSON validates data against the invoice schema.
func validateInvoiceJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := compiledInvoiceSchema().Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
