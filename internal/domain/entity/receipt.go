package entity

// ReceiptHeader holds the pharmacy header printed at the top of a receipt.
type ReceiptHeader struct {
	PharmacyName string `json:"pharmacy_name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// ReceiptItem is a single printed line item.
type ReceiptItem struct {
	Name        string  `json:"name"`
	BatchNumber string  `json:"batch_number,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// Receipt is a value object composed from a committed Sale at print
// time. It is read-only presentation data, never stored.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	InvoiceNo     string        `json:"invoice_no"`
	Date          string        `json:"date"`
	Counter       string        `json:"counter,omitempty"`
	Customer      string        `json:"customer"`
	PaymentMethod string        `json:"payment_method"`
	Items         []ReceiptItem `json:"items"`
	SubTotal      float64       `json:"sub_total"`
	Discount      float64       `json:"discount"`
	Tax           float64       `json:"tax"`
	GrandTotal    float64       `json:"grand_total"`
	Paid          float64       `json:"paid"`
	Change        float64       `json:"change"`
	Due           float64       `json:"due"`
}
