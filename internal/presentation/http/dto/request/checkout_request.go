package request

// AddLotRequest adds one unit of a stock lot picked from the current
// search results.
type AddLotRequest struct {
	MedicineID string `json:"medicine_id" validate:"required,uuid"`
	LotID      string `json:"lot_id" validate:"required,uuid"`
}

// SetQuantityRequest changes a cart line's quantity. Out-of-range
// values are clamped, never rejected.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetPaymentRequest records the payment method and the optional
// tendered amount in major units.
type SetPaymentRequest struct {
	Method         string   `json:"payment_method" validate:"required,oneof=cash card mobile_banking credit"`
	AmountTendered *float64 `json:"amount_tendered" validate:"omitempty,gte=0"`
}

// SelectCounterRequest binds a counter as the operator's explicit
// choice.
type SelectCounterRequest struct {
	CounterID string `json:"counter_id" validate:"required,uuid"`
}
