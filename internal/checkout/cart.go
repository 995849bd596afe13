package checkout

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/pharmatill/terminal-api/internal/domain/entity"
	"github.com/pharmatill/terminal-api/pkg/apperror"
)

// CartLine is one row of the in-progress sale, drawn from a specific
// stock lot. StockSnapshot is the lot's remaining quantity captured at
// search time; quantity is clamped to it on every mutation. The
// authoritative stock check still happens at commit, so a snapshot may
// be stale; that is expected, not a defect.
type CartLine struct {
	LotID         uuid.UUID `json:"lot_id"`
	MedicineID    uuid.UUID `json:"medicine_id"`
	MedicineName  string    `json:"medicine_name"`
	BatchNumber   string    `json:"batch_number,omitempty"`
	Quantity      int       `json:"quantity"`
	StockSnapshot int       `json:"stock_snapshot"`
	UnitPrice     int64     `json:"-"` // cents
	UnitMRP       int64     `json:"-"` // cents
}

// Total is the derived line total in cents, never stored.
func (l CartLine) Total() int64 {
	return int64(l.Quantity) * l.UnitPrice
}

func (l CartLine) MarshalJSON() ([]byte, error) {
	type Alias CartLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		UnitMRP   float64 `json:"unit_mrp"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(l),
		UnitPrice: float64(l.UnitPrice) / 100,
		UnitMRP:   float64(l.UnitMRP) / 100,
		Total:     float64(l.Total()) / 100,
	})
}

// Cart is the ordered set of cart lines, unique by lot id. It lives
// only inside a checkout session and is never persisted.
type Cart struct {
	lines []CartLine
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// AddLot adds one unit of the given lot. A second add of the same lot
// merges into the existing line, clamped to the stock snapshot, rather
// than creating a duplicate row.
func (c *Cart) AddLot(med entity.Medicine, lot entity.StockLot) (CartLine, error) {
	if !lot.InStock() {
		return CartLine{}, apperror.NewBadRequestError("Batch " + lot.BatchNumber + " is out of stock")
	}

	for i := range c.lines {
		if c.lines[i].LotID == lot.ID {
			c.lines[i].Quantity = clamp(c.lines[i].Quantity+1, 1, c.lines[i].StockSnapshot)
			return c.lines[i], nil
		}
	}

	line := CartLine{
		LotID:         lot.ID,
		MedicineID:    med.ID,
		MedicineName:  med.Name,
		BatchNumber:   lot.BatchNumber,
		Quantity:      1,
		StockSnapshot: lot.Quantity,
		UnitPrice:     lot.SellingPrice,
		UnitMRP:       lot.MRP,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// SetQuantity clamps n to [1, snapshot] and applies it. Clamping to
// the floor never removes the line; removal is a distinct action.
func (c *Cart) SetQuantity(lotID uuid.UUID, n int) (CartLine, bool) {
	for i := range c.lines {
		if c.lines[i].LotID == lotID {
			c.lines[i].Quantity = clamp(n, 1, c.lines[i].StockSnapshot)
			return c.lines[i], true
		}
	}
	return CartLine{}, false
}

// Remove deletes the line for lotID unconditionally.
func (c *Cart) Remove(lotID uuid.UUID) bool {
	for i := range c.lines {
		if c.lines[i].LotID == lotID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Subtotal is always recomputed from the lines so displayed totals can
// never drift from line data.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, l := range c.lines {
		sum += l.Total()
	}
	return sum
}
