package constants

// Field is one scalar field of the invoice extraction contract.
// Key is the exact JSON property name the model must emit; changing a Key is
// a breaking change to the stored schema and to every saved prompt.
type Field struct {
	Key     string
	Label   string // human-readable name used in the prompt's field list
	Hint    string // extra prompt guidance, empty for most fields
	Example string
}

// InvoiceFieldTable is the ordered set of scalar fields extracted from an
// invoice. The prompt's field list, the JSON-Schema, and the response
// mapping are all rendered from this table so the contract has a single
// source of truth.
var InvoiceFieldTable = []Field{
	{Key: "Shipper_Name", Label: "Shipper Name", Example: "ABC Exports"},
	{Key: "Billing_Customer_Name", Label: "Billing Customer Name", Example: "ABC Exports"},
	{Key: "Consignee", Label: "Consignee", Example: "XYZ Pvt Ltd"},
	{Key: "Invoice_No", Label: "Invoice Number", Example: "INV/123/2025"},
	{Key: "Invoice_Date", Label: "Invoice Date (DD.MM.YYYY)", Example: "29.04.2025"},
	{Key: "Buyers_Order_No", Label: "Buyers Order No", Example: "PO123456"},
	{Key: "IE_CODE", Label: "IE CODE", Example: "3293012124"},
	{Key: "GSTIN", Label: "GSTIN", Example: "33AAEFA9584D1ZI"},
	{Key: "Port_Loading", Label: "Port of Loading", Example: "Chennai"},
	{Key: "Port_Discharge_Final", Label: "Port of Discharge and Final Destination", Example: "Sydney/Australia"},
	{Key: "Notify_Party", Label: "Notify Party", Example: "Toll Global"},
	{Key: "Mode_of_Delivery", Label: "Mode of Delivery", Example: "FOB by Sea"},
	{Key: "Terms", Label: "Terms", Example: "TT Payment"},
	{Key: "Container_No", Label: "Container No (Packages)", Example: "20 CARTONS"},
	{Key: "Style_No", Label: "Style No", Example: "CE02202E"},
	{Key: "Total_Amount", Label: "Total Amount", Example: "1818.00"},
	{
		Key:     "Total_Net_Wt",
		Label:   "Total Net Weight (KGs)",
		Hint:    "If the text contains 'Net Weight' or 'Total Net Weight', extract the number with units as Net Weight.",
		Example: "85.000",
	},
	{
		Key:     "Total_Grs_Wt",
		Label:   "Total Gross Weight (KGs)",
		Hint:    "If the text contains 'Gross Weight', 'Total Gross Weight', or 'Gross Wt', extract the number with units as Gross Weight.",
		Example: "109.000",
	},
	{Key: "Total_CBM", Label: "Total CBM", Example: "1.44"},
}

// ProductsKey is the JSON property holding the line-item table.
const ProductsKey = "Products"

// Line-item property names inside each Products element.
const (
	ItemDescriptionKey = "description"
	ItemQuantityKey    = "quantity"
	ItemRateKey        = "rate"
	ItemAmountKey      = "amount"
)

// FieldKeys returns the scalar field keys in table order.
func FieldKeys() []string {
	keys := make([]string, len(InvoiceFieldTable))
	for i, f := range InvoiceFieldTable {
		keys[i] = f.Key
	}
	return keys
}
