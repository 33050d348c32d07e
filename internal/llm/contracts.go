package llm

import "context"

// LineItem is one row of the invoice's product table, transcribed literally.
// Order matches row order in the source document; nothing is deduplicated
// or totalled.
type LineItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

// InvoiceFields is the structured record we want from the model.
// Every scalar is a string: amounts and weights keep the model's textual
// representation (units included) verbatim, and a field the model could not
// find is an empty string, never null and never invented.
type InvoiceFields struct {
	ShipperName              string     `json:"Shipper_Name"`
	BillingCustomerName      string     `json:"Billing_Customer_Name"`
	Consignee                string     `json:"Consignee"`
	InvoiceNo                string     `json:"Invoice_No"`
	InvoiceDate              string     `json:"Invoice_Date"` // DD.MM.YYYY by convention, not validated
	BuyersOrderNo            string     `json:"Buyers_Order_No"`
	IECode                   string     `json:"IE_CODE"`
	GSTIN                    string     `json:"GSTIN"`
	PortOfLoading            string     `json:"Port_Loading"`
	PortOfDischargeAndFinal  string     `json:"Port_Discharge_Final"`
	NotifyParty              string     `json:"Notify_Party"`
	ModeOfDelivery           string     `json:"Mode_of_Delivery"`
	Terms                    string     `json:"Terms"`
	ContainerNo              string     `json:"Container_No"`
	StyleNo                  string     `json:"Style_No"`
	TotalAmount              string     `json:"Total_Amount"`
	TotalNetWeightKg         string     `json:"Total_Net_Wt"`
	TotalGrossWeightKg       string     `json:"Total_Grs_Wt"`
	TotalCBM                 string     `json:"Total_CBM"`
	Products                 []LineItem `json:"Products"`
}

// Inferencer is the boundary to the external generative model: one prompt
// in, one free-form textual response out. The response format is not
// guaranteed; Parse deals with that.
type Inferencer interface {
	Infer(ctx context.Context, prompt string) (string, error)
}
