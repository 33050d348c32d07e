package llm

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/vijaybala/invoice-tracker/constants"
)

// Outcome is the tagged result of parsing a model response. A response the
// model garbled is a normal outcome to hand to a human reviewer, not an
// error: RawResponse is always preserved so the reviewer can transcribe
// fields manually when Status is not success.
type Outcome struct {
	Status constants.OutcomeStatus

	// Fields is populated only when Status is OutcomeSuccess.
	Fields InvoiceFields

	// JSON is the raw span that was decoded, only on success.
	JSON []byte

	// RawResponse is the full model response, kept for every status.
	RawResponse string

	// SchemaOK reports advisory JSON-Schema validation of the decoded span.
	// It never changes Status; a false value flags the record for closer
	// human review.
	SchemaOK bool
}

// Parse locates and decodes the model's JSON answer.
//
// The candidate span runs from the first '{' to the last '}' in the whole
// response — a greedy match, because the model may wrap the JSON block in
// prose on either side. No span at all is a no_json_found outcome; a span
// that is not valid JSON is malformed_json, with no attempt at repair.
// Guessing field values to paper over a broken response would put invented
// shipping data in front of the reviewer, which is worse than an explicit
// failure.
func Parse(raw string) Outcome {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return Outcome{Status: constants.OutcomeNoJSONFound, RawResponse: raw}
	}
	span := raw[start : end+1]

	dec := json.NewDecoder(strings.NewReader(span))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return Outcome{Status: constants.OutcomeMalformedJSON, RawResponse: raw}
	}
	// The span must be exactly one JSON object; trailing tokens mean the
	// brace scan caught something that is not a single document.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Outcome{Status: constants.OutcomeMalformedJSON, RawResponse: raw}
	}

	fields := mapFields(doc)

	out := Outcome{
		Status:      constants.OutcomeSuccess,
		Fields:      fields,
		JSON:        []byte(span),
		RawResponse: raw,
	}
	out.SchemaOK = validateInvoiceJSON(out.JSON) == nil
	return out
}

// mapFields maps the decoded document onto InvoiceFields by exact,
// case-sensitive key lookup. encoding/json struct decoding matches keys
// case-insensitively, which would accept "invoice_no" for "Invoice_No";
// the contract is stricter than that, so the mapping is explicit.
func mapFields(doc map[string]any) InvoiceFields {
	// Only keys from the field table are read; anything else the model emits
	// is ignored rather than guessed at.
	vals := make(map[string]string, len(constants.InvoiceFieldTable))
	for _, key := range constants.FieldKeys() {
		vals[key] = stringValue(doc[key])
	}

	f := InvoiceFields{
		ShipperName:             vals["Shipper_Name"],
		BillingCustomerName:     vals["Billing_Customer_Name"],
		Consignee:               vals["Consignee"],
		InvoiceNo:               vals["Invoice_No"],
		InvoiceDate:             vals["Invoice_Date"],
		BuyersOrderNo:           vals["Buyers_Order_No"],
		IECode:                  vals["IE_CODE"],
		GSTIN:                   vals["GSTIN"],
		PortOfLoading:           vals["Port_Loading"],
		PortOfDischargeAndFinal: vals["Port_Discharge_Final"],
		NotifyParty:             vals["Notify_Party"],
		ModeOfDelivery:          vals["Mode_of_Delivery"],
		Terms:                   vals["Terms"],
		ContainerNo:             vals["Container_No"],
		StyleNo:                 vals["Style_No"],
		TotalAmount:             vals["Total_Amount"],
		TotalNetWeightKg:        vals["Total_Net_Wt"],
		TotalGrossWeightKg:      vals["Total_Grs_Wt"],
		TotalCBM:                vals["Total_CBM"],
		Products:                []LineItem{},
	}

	items, ok := doc[constants.ProductsKey].([]any)
	if !ok {
		return f
	}
	for _, it := range items {
		row, ok := it.(map[string]any)
		if !ok {
			continue
		}
		f.Products = append(f.Products, LineItem{
			Description: stringValue(row[constants.ItemDescriptionKey]),
			Quantity:    stringValue(row[constants.ItemQuantityKey]),
			Rate:        stringValue(row[constants.ItemRateKey]),
			Amount:      stringValue(row[constants.ItemAmountKey]),
		})
	}
	return f
}

// stringValue renders a decoded JSON value as the string we persist.
// Numbers keep their source literal (the decoder ran with UseNumber), so
// "85.000" stays "85.000" whether the model quoted it or not. Anything that
// is not a string or number maps to empty string.
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
