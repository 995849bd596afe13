package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pharmatill/terminal-api/internal/checkout"
	"github.com/pharmatill/terminal-api/internal/domain/entity"
	"github.com/pharmatill/terminal-api/internal/domain/platform"
	"github.com/pharmatill/terminal-api/pkg/apperror"
)

// CustomerService resolves and creates customers for the checkout
// session. A customer is always optional: checkout succeeds with none
// bound ("walk-in").
type CustomerService struct {
	api   platform.API
	limit int
}

// NewCustomerService creates a customer resolver service.
func NewCustomerService(api platform.API, limit int) *CustomerService {
	return &CustomerService{api: api, limit: limit}
}

// Search runs the debounced candidate lookup for a phone/name
// fragment. Typing into the field unbinds any previously selected
// customer; a selection is never sticky against further input.
func (s *CustomerService) Search(ctx context.Context, sess *checkout.Session, query string) (hits []entity.Customer, superseded bool, err error) {
	sess.UnbindCustomer()

	query = strings.TrimSpace(query)
	if len(query) < MinQueryLength {
		sess.CustomerRunner().Cancel()
		sess.SetCustomerResults(nil)
		return nil, false, nil
	}

	hits, ok, err := sess.CustomerRunner().Submit(ctx, func(ctx context.Context) ([]entity.Customer, error) {
		return s.api.SearchCustomers(ctx, query, s.limit)
	})
	if !ok {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, apperror.GetAppError(err)
	}

	sess.SetCustomerResults(hits)
	return hits, false, nil
}

// Select binds a candidate from the current result list and clears the
// list.
func (s *CustomerService) Select(sess *checkout.Session, customerID uuid.UUID) (entity.Customer, error) {
	c, ok := sess.FindCustomer(customerID)
	if !ok {
		return entity.Customer{}, apperror.NewBadRequestError("Customer is not in the current search results; search again")
	}
	sess.BindCustomer(&c)
	return c, nil
}

// Resolve is the manual (press-enter) flow: exact phone match first,
// then fuzzy search limited to one candidate. A double miss is not an
// error: it returns not-found, the designed trigger for the inline
// creation form pre-filled with the typed phone.
func (s *CustomerService) Resolve(ctx context.Context, sess *checkout.Session, phone string) (*entity.Customer, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, apperror.NewBadRequestError("Phone is required")
	}

	c, err := s.api.GetCustomerByPhone(ctx, phone)
	if err == nil {
		sess.BindCustomer(c)
		return c, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, apperror.GetAppError(err)
	}

	hits, err := s.api.SearchCustomers(ctx, phone, 1)
	if err != nil {
		return nil, apperror.GetAppError(err)
	}
	if len(hits) > 0 {
		c := hits[0]
		sess.BindCustomer(&c)
		return &c, nil
	}

	return nil, apperror.NewNotFoundError("Customer")
}

// Create registers a new customer and immediately binds it as the
// selected customer. Name and phone are validated before this is
// reached; the platform may still reject (e.g. duplicate phone), in
// which case its message is surfaced and nothing is bound.
func (s *CustomerService) Create(ctx context.Context, sess *checkout.Session, input *platform.CreateCustomerInput) (*entity.Customer, error) {
	c, err := s.api.CreateCustomer(ctx, input)
	if err != nil {
		return nil, apperror.GetAppError(err)
	}
	sess.BindCustomer(c)
	return c, nil
}

// Unbind detaches the bound customer, returning the sale to walk-in.
func (s *CustomerService) Unbind(sess *checkout.Session) {
	sess.UnbindCustomer()
}
