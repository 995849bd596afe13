package entity

import "github.com/google/uuid"

// Customer is a platform-owned record. The gateway never mutates one
// except through the explicit create flow, which produces a new record
// that is then bound to the checkout session.
type Customer struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         *string   `json:"email,omitempty"`
	Address       *string   `json:"address,omitempty"`
	LoyaltyPoints int       `json:"loyalty_points"`
}
