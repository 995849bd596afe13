package request

// SelectCustomerRequest binds a candidate from the current customer
// search results.
type SelectCustomerRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`
}

// ResolveCustomerRequest is the press-enter lookup by exact phone.
type ResolveCustomerRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

// CreateCustomerRequest registers a new customer inline during
// checkout. Name and phone are mandatory; everything else is optional.
type CreateCustomerRequest struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Phone   string  `json:"phone" validate:"required,phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address"`
}
