package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/pharmatill/terminal-api/internal/domain/enum"
)

// SaleItem is one committed line of a sale. Prices are the historical
// unit prices captured at sale time and never change with the catalog.
type SaleItem struct {
	MedicineID   uuid.UUID `json:"medicine_id"`
	MedicineName string    `json:"medicine_name"`
	BatchID      uuid.UUID `json:"batch_id"`
	BatchNumber  string    `json:"batch_number,omitempty"`
	Quantity     int       `json:"quantity"`
	UnitPrice    int64     `json:"-"` // cents
	Total        int64     `json:"-"` // cents
}

func (i SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		Total:     float64(i.Total) / 100,
	})
}

// Sale is produced only by the platform's commit operation; the gateway
// never constructs one authoritatively and only renders it.
type Sale struct {
	ID            uuid.UUID          `json:"id"`
	InvoiceNo     string             `json:"invoice_no"`
	SaleDate      time.Time          `json:"sale_date"`
	CustomerID    *uuid.UUID         `json:"customer_id,omitempty"`
	Customer      *Customer          `json:"customer,omitempty"`
	CounterID     uuid.UUID          `json:"counter_id"`
	CounterName   string             `json:"counter_name,omitempty"`
	Items         []SaleItem         `json:"items"`
	SubTotal      int64              `json:"-"` // cents
	Discount      int64              `json:"-"` // cents
	Tax           int64              `json:"-"` // cents
	GrandTotal    int64              `json:"-"` // cents
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	AmountPaid    int64              `json:"-"` // cents
	ChangeDue     int64              `json:"-"` // cents
	DueAmount     int64              `json:"-"` // cents
}

func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		SubTotal   float64 `json:"sub_total"`
		Discount   float64 `json:"discount"`
		Tax        float64 `json:"tax"`
		GrandTotal float64 `json:"grand_total"`
		AmountPaid float64 `json:"amount_paid"`
		ChangeDue  float64 `json:"change_due"`
		DueAmount  float64 `json:"due_amount"`
	}{
		Alias:      Alias(s),
		SubTotal:   float64(s.SubTotal) / 100,
		Discount:   float64(s.Discount) / 100,
		Tax:        float64(s.Tax) / 100,
		GrandTotal: float64(s.GrandTotal) / 100,
		AmountPaid: float64(s.AmountPaid) / 100,
		ChangeDue:  float64(s.ChangeDue) / 100,
		DueAmount:  float64(s.DueAmount) / 100,
	})
}
