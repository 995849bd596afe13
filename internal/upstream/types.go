package upstream

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pharmatill/terminal-api/internal/domain/entity"
	"github.com/pharmatill/terminal-api/internal/domain/enum"
	"github.com/pharmatill/terminal-api/pkg/apperror"
)

// Wire shapes owned by the platform API. Money travels as decimal
// amounts on the wire and is converted to cents at this boundary.

type envelope struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
}

type batchWire struct {
	BatchID      uuid.UUID `json:"batch_id"`
	BatchNumber  string    `json:"batch_number"`
	Quantity     int       `json:"quantity"`
	SellingPrice float64   `json:"selling_price"`
	MRP          float64   `json:"mrp"`
	ExpiryDate   time.Time `json:"expiry_date"`
}

type medicineWire struct {
	MedicineID   uuid.UUID   `json:"medicine_id"`
	Name         string      `json:"name"`
	GenericName  string      `json:"generic_name"`
	Manufacturer string      `json:"manufacturer"`
	TotalStock   int         `json:"total_stock"`
	Batches      []batchWire `json:"batches"`
}

type customerWire struct {
	CustomerID    uuid.UUID `json:"customer_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         *string   `json:"email,omitempty"`
	Address       *string   `json:"address,omitempty"`
	LoyaltyPoints int       `json:"loyalty_points"`
}

type counterWire struct {
	CounterID     uuid.UUID  `json:"counter_id"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	IsDefault     bool       `json:"is_default"`
	LastSessionAt *time.Time `json:"last_session_at,omitempty"`
}

type saleItemWire struct {
	MedicineID   uuid.UUID `json:"medicine_id"`
	MedicineName string    `json:"medicine_name"`
	BatchID      uuid.UUID `json:"batch_id"`
	BatchNumber  string    `json:"batch_number"`
	Quantity     int       `json:"quantity"`
	SellingPrice float64   `json:"selling_price"`
	Total        float64   `json:"total"`
}

type saleWire struct {
	SaleID        uuid.UUID      `json:"sale_id"`
	InvoiceNo     string         `json:"invoice_no"`
	SaleDate      time.Time      `json:"sale_date"`
	CustomerID    *uuid.UUID     `json:"customer_id,omitempty"`
	Customer      *customerWire  `json:"customer,omitempty"`
	CounterID     uuid.UUID      `json:"counter_id"`
	CounterName   string         `json:"counter_name"`
	Items         []saleItemWire `json:"items"`
	SubTotal      float64        `json:"sub_total"`
	Discount      float64        `json:"discount"`
	Tax           float64        `json:"tax"`
	GrandTotal    float64        `json:"grand_total"`
	PaymentMethod string         `json:"payment_method"`
	AmountPaid    float64        `json:"amount_paid"`
	ChangeDue     float64        `json:"change_due"`
	DueAmount     float64        `json:"due_amount"`
}

type createCustomerWire struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}

type createSaleItemWire struct {
	MedicineID   uuid.UUID `json:"medicine_id"`
	BatchID      uuid.UUID `json:"batch_id"`
	Quantity     int       `json:"quantity"`
	SellingPrice float64   `json:"selling_price"`
}

type createSaleWire struct {
	CustomerID    *uuid.UUID           `json:"customer_id,omitempty"`
	Items         []createSaleItemWire `json:"items"`
	PaymentMethod string               `json:"payment_method"`
	AmountPaid    float64              `json:"amount_paid"`
	CounterID     uuid.UUID            `json:"counter_id"`
}

func cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func decimal(c int64) float64 {
	return float64(c) / 100
}

func (w medicineWire) toEntity() entity.Medicine {
	m := entity.Medicine{
		ID:           w.MedicineID,
		Name:         w.Name,
		GenericName:  w.GenericName,
		Manufacturer: w.Manufacturer,
		TotalStock:   w.TotalStock,
		Batches:      make([]entity.StockLot, 0, len(w.Batches)),
	}
	for _, b := range w.Batches {
		m.Batches = append(m.Batches, entity.StockLot{
			ID:           b.BatchID,
			BatchNumber:  b.BatchNumber,
			Quantity:     b.Quantity,
			SellingPrice: cents(b.SellingPrice),
			MRP:          cents(b.MRP),
			ExpiryDate:   b.ExpiryDate,
		})
	}
	return m
}

func (w customerWire) toEntity() entity.Customer {
	return entity.Customer{
		ID:            w.CustomerID,
		Name:          w.Name,
		Phone:         w.Phone,
		Email:         w.Email,
		Address:       w.Address,
		LoyaltyPoints: w.LoyaltyPoints,
	}
}

func (w counterWire) toEntity() entity.Counter {
	return entity.Counter{
		ID:            w.CounterID,
		Name:          w.Name,
		Status:        enum.CounterStatus(w.Status),
		IsDefault:     w.IsDefault,
		LastSessionAt: w.LastSessionAt,
	}
}

func (w saleWire) toEntity() *entity.Sale {
	s := &entity.Sale{
		ID:            w.SaleID,
		InvoiceNo:     w.InvoiceNo,
		SaleDate:      w.SaleDate,
		CustomerID:    w.CustomerID,
		CounterID:     w.CounterID,
		CounterName:   w.CounterName,
		SubTotal:      cents(w.SubTotal),
		Discount:      cents(w.Discount),
		Tax:           cents(w.Tax),
		GrandTotal:    cents(w.GrandTotal),
		PaymentMethod: enum.PaymentMethod(w.PaymentMethod),
		AmountPaid:    cents(w.AmountPaid),
		ChangeDue:     cents(w.ChangeDue),
		DueAmount:     cents(w.DueAmount),
	}
	if w.Customer != nil {
		c := w.Customer.toEntity()
		s.Customer = &c
	}
	for _, it := range w.Items {
		s.Items = append(s.Items, entity.SaleItem{
			MedicineID:   it.MedicineID,
			MedicineName: it.MedicineName,
			BatchID:      it.BatchID,
			BatchNumber:  it.BatchNumber,
			Quantity:     it.Quantity,
			UnitPrice:    cents(it.SellingPrice),
			Total:        cents(it.Total),
		})
	}
	return s
}
