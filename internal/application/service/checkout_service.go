package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pharmatill/terminal-api/internal/checkout"
	"github.com/pharmatill/terminal-api/internal/domain/entity"
	"github.com/pharmatill/terminal-api/internal/domain/enum"
	"github.com/pharmatill/terminal-api/internal/domain/platform"
	"github.com/pharmatill/terminal-api/pkg/apperror"
	"github.com/pharmatill/terminal-api/pkg/events"
)

// CheckoutService owns the checkout-session lifecycle: opening and
// closing sessions, cart mutation, payment selection and the atomic
// sale commit.
type CheckoutService struct {
	api      platform.API
	store    *checkout.Store
	counters *CounterService
	bus      *events.Bus
	wait     time.Duration
}

// NewCheckoutService creates a new checkout service. wait is the
// search debounce window shared with the search services.
func NewCheckoutService(api platform.API, store *checkout.Store, counters *CounterService, bus *events.Bus, wait time.Duration) *CheckoutService {
	return &CheckoutService{
		api:      api,
		store:    store,
		counters: counters,
		bus:      bus,
		wait:     wait,
	}
}

// Open creates a session for the operator, loads the counter list and
// applies the automatic binding rule. The session subscribes its
// counter cache to platform push events for its lifetime; teardown
// deregisters the handlers.
func (s *CheckoutService) Open(ctx context.Context, tenantID, operatorID uuid.UUID) (*checkout.Session, error) {
	sess := checkout.NewSession(tenantID, operatorID, s.wait)

	invalidate := func(e events.Event) {
		if e.TenantID == sess.TenantID {
			sess.Counters().Invalidate()
		}
	}
	sess.OnTeardown(s.bus.Subscribe(events.TopicSaleCreated, invalidate))
	sess.OnTeardown(s.bus.Subscribe(events.TopicInventoryUpdated, invalidate))

	// A failed initial load is not fatal: the book stays stale and the
	// next read re-fetches; the UI shows the loading state meanwhile.
	_ = s.counters.EnsureLoaded(ctx, sess)

	s.store.Put(sess)
	return sess, nil
}

// Get fetches the operator's session.
func (s *CheckoutService) Get(id, operatorID uuid.UUID) (*checkout.Session, error) {
	sess, ok := s.store.Get(id, operatorID)
	if !ok {
		return nil, apperror.NewNotFoundError("Checkout session")
	}
	return sess, nil
}

// Close tears the session down; the in-flight cart dies with it.
func (s *CheckoutService) Close(id, operatorID uuid.UUID) error {
	if _, ok := s.store.Get(id, operatorID); !ok {
		return apperror.NewNotFoundError("Checkout session")
	}
	s.store.Remove(id)
	return nil
}

// AddLot adds a unit of a lot picked from the session's current search
// results; the snapshot embedded in those results is what the cart
// clamps against. Disabled while no active counter is bound.
func (s *CheckoutService) AddLot(sess *checkout.Session, medicineID, lotID uuid.UUID) (checkout.CartLine, error) {
	if !sess.Counters().HasActiveBinding() {
		return checkout.CartLine{}, apperror.NewBadRequestError("No active counter is selected")
	}
	med, lot, ok := sess.FindLot(medicineID, lotID)
	if !ok {
		return checkout.CartLine{}, apperror.NewBadRequestError("Batch is not in the current search results; search again")
	}
	return sess.AddLot(med, lot)
}

// SetQuantity applies a clamped quantity change to a cart line.
func (s *CheckoutService) SetQuantity(sess *checkout.Session, lotID uuid.UUID, quantity int) (checkout.CartLine, error) {
	return sess.SetQuantity(lotID, quantity)
}

// RemoveLine removes a cart line.
func (s *CheckoutService) RemoveLine(sess *checkout.Session, lotID uuid.UUID) error {
	return sess.RemoveLine(lotID)
}

// ClearCart empties the cart. The operator confirmation happens in the
// terminal; the gateway treats the call as confirmed.
func (s *CheckoutService) ClearCart(sess *checkout.Session) error {
	return sess.ClearCart()
}

// SetPayment records the payment method and optional tendered amount.
func (s *CheckoutService) SetPayment(sess *checkout.Session, method enum.PaymentMethod, amount *int64) error {
	return sess.SetPayment(method, amount)
}

// Submit validates the precondition set, issues exactly one commit
// call and transitions the session. On success the counter list is
// refreshed (stock and last-used state may have shifted); on failure
// the upstream message is surfaced and session state is preserved for
// an operator-initiated retry.
func (s *CheckoutService) Submit(ctx context.Context, sess *checkout.Session) (*entity.Sale, error) {
	input, err := sess.BeginSubmit()
	if err != nil {
		return nil, err
	}

	sale, err := s.api.CreateSale(ctx, input, uuid.New().String())
	if err != nil {
		appErr := apperror.GetAppError(err)
		sess.FailSubmit(appErr)
		return nil, appErr
	}

	sess.CompleteSubmit(sale)
	s.counters.Refresh(ctx, sess)
	return sale, nil
}

// NewSale discards the displayed invoice and returns the session to an
// empty cart. No remote call is involved.
func (s *CheckoutService) NewSale(sess *checkout.Session) {
	sess.NewSale()
}
