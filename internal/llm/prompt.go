package llm

import (
	"strings"

	"github.com/vijaybala/invoice-tracker/constants"
)

// BuildExtractionPrompt renders the fixed extraction instruction around the
// document text. It is a pure function: same text in, same prompt out.
//
// The field list and the worked example are both rendered from
// constants.InvoiceFieldTable, so the prompt can never drift from the schema
// the parser validates against. The example is load-bearing: it is the only
// mechanism anchoring the model's free-form output to a parseable shape.
func BuildExtractionPrompt(text string) string {
	var b strings.Builder

	b.WriteString("You are an intelligent invoice extraction assistant.\n\n")
	b.WriteString("Extract the following fields from the raw invoice text. The layout may vary. Use context to identify fields.\n\n")
	b.WriteString("Always output only clean JSON.\n\n")
	b.WriteString("Extract:\n")
	for _, f := range constants.InvoiceFieldTable {
		b.WriteString("- ")
		b.WriteString(f.Label)
		if f.Hint != "" {
			b.WriteString(" → ")
			b.WriteString(f.Hint)
		}
		b.WriteString("\n")
	}
	b.WriteString("- Product Table: description, quantity, rate, amount as an array of objects\n\n")
	b.WriteString("If a field is missing, leave its value as empty string. Do not generate random information.\n\n")
	b.WriteString("Example JSON:\n\n")
	b.WriteString(exampleJSON())
	b.WriteString("\n\nText:\n")
	b.WriteString(text)
	b.WriteString("\n")

	return b.String()
}

// exampleJSON renders the one-shot example from the field table.
func exampleJSON() string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, f := range constants.InvoiceFieldTable {
		b.WriteString("  \"")
		b.WriteString(f.Key)
		b.WriteString("\": \"")
		b.WriteString(f.Example)
		b.WriteString("\",\n")
	}
	b.WriteString("  \"")
	b.WriteString(constants.ProductsKey)
	b.WriteString("\": [\n")
	b.WriteString("    {\"description\": \"Garment\", \"quantity\": \"360\", \"rate\": \"1.95\", \"amount\": \"702.00\"}\n")
	b.WriteString("  ]\n}")
	return b.String()
}
