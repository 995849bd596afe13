package enum

// PaymentMethod is the closed set of ways a sale can be settled.
type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "cash"
	PaymentCard          PaymentMethod = "card"
	PaymentMobileBanking PaymentMethod = "mobile_banking"
	// PaymentCredit books the full grand total as the customer's
	// outstanding due; no amount is tendered at the till.
	PaymentCredit PaymentMethod = "credit"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobileBanking, PaymentCredit:
		return true
	}
	return false
}

// Upfront reports whether the method collects money at the till.
// Credit sales suppress the tendered-amount concept entirely.
func (m PaymentMethod) Upfront() bool {
	return m != PaymentCredit
}
