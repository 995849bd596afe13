package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StockLot is one received batch of a medicine. The platform decrements
// lots independently; the gateway only ever holds a read-only snapshot
// captured at search time.
type StockLot struct {
	ID           uuid.UUID `json:"id"`
	BatchNumber  string    `json:"batch_number"`
	Quantity     int       `json:"quantity"`
	SellingPrice int64     `json:"-"` // cents
	MRP          int64     `json:"-"` // cents
	ExpiryDate   time.Time `json:"expiry_date"`
}

// MarshalJSON converts cents to decimal for terminal responses.
func (l StockLot) MarshalJSON() ([]byte, error) {
	type Alias StockLot
	return json.Marshal(&struct {
		Alias
		SellingPrice float64 `json:"selling_price"`
		MRP          float64 `json:"mrp"`
		InStock      bool    `json:"in_stock"`
	}{
		Alias:        Alias(l),
		SellingPrice: float64(l.SellingPrice) / 100,
		MRP:          float64(l.MRP) / 100,
		InStock:      l.Quantity > 0,
	})
}

// InStock reports whether the lot had remaining stock at snapshot time.
func (l StockLot) InStock() bool {
	return l.Quantity > 0
}

// Medicine is a catalog hit together with its open stock lots.
type Medicine struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	GenericName  string     `json:"generic_name,omitempty"`
	Manufacturer string     `json:"manufacturer,omitempty"`
	TotalStock   int        `json:"total_stock"`
	Batches      []StockLot `json:"batches"`
}

// Lot returns the medicine's lot with the given id, if present.
func (m Medicine) Lot(lotID uuid.UUID) (StockLot, bool) {
	for _, b := range m.Batches {
		if b.ID == lotID {
			return b, true
		}
	}
	return StockLot{}, false
}
