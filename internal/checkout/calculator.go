package checkout

import (
	"encoding/json"

	"github.com/pharmatill/terminal-api/internal/domain/enum"
)

// Totals is the monetary summary derived from cart state, the chosen
// payment method and the amount tendered. All values are cents.
type Totals struct {
	SubTotal   int64
	GrandTotal int64
	Tendered   int64
	Change     int64
	Due        int64
	Method     enum.PaymentMethod
}

func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		SubTotal   float64            `json:"sub_total"`
		GrandTotal float64            `json:"grand_total"`
		Tendered   float64            `json:"amount_tendered"`
		Change     float64            `json:"change"`
		Due        float64            `json:"due"`
		Method     enum.PaymentMethod `json:"payment_method"`
	}{
		SubTotal:   float64(t.SubTotal) / 100,
		GrandTotal: float64(t.GrandTotal) / 100,
		Tendered:   float64(t.Tendered) / 100,
		Change:     float64(t.Change) / 100,
		Due:        float64(t.Due) / 100,
		Method:     t.Method,
	})
}

// Sufficient reports whether the tendered amount settles the sale.
// Credit sales are always sufficient; the total becomes the due.
func (t Totals) Sufficient() bool {
	return !t.Method.Upfront() || t.Tendered >= t.GrandTotal
}

// Calculate derives totals. It is a pure function: no discount or tax
// is speculated client-side; those, if any, arrive on the committed
// Sale from the platform. For upfront methods change is
// max(0, tendered-grandTotal); insufficient payment is a blocking
// validation condition, never a negative change. For credit, change is
// always 0 and the tendered amount is not used.
func Calculate(subtotal int64, method enum.PaymentMethod, tendered int64) Totals {
	t := Totals{
		SubTotal:   subtotal,
		GrandTotal: subtotal,
		Method:     method,
	}

	if !method.Upfront() {
		t.Due = t.GrandTotal
		return t
	}

	t.Tendered = tendered
	if change := tendered - t.GrandTotal; change > 0 {
		t.Change = change
	}
	return t
}
