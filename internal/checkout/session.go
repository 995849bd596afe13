package checkout

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pharmatill/terminal-api/internal/domain/entity"
	"github.com/pharmatill/terminal-api/internal/domain/enum"
	"github.com/pharmatill/terminal-api/internal/domain/platform"
	"github.com/pharmatill/terminal-api/pkg/apperror"
	"github.com/pharmatill/terminal-api/pkg/debounce"
)

// State names the checkout session's lifecycle. Explicit states make
// illegal combinations (a second submit while one is in flight, an
// invoice without a committed sale) unrepresentable.
type State string

const (
	StateIdle         State = "idle"
	StateSearching    State = "searching"
	StateResultsReady State = "results_ready"
	StateSubmitting   State = "submitting"
	StateInvoiceReady State = "invoice_ready"
	StateError        State = "error"
)

// Session is one terminal tab's in-progress transaction. It owns the
// cart exclusively, is never shared across terminals and never
// persisted; an abandoned session is swept by the store's janitor.
type Session struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	OperatorID uuid.UUID
	CreatedAt  time.Time

	mu          sync.Mutex
	lastActive  time.Time
	state       State
	cart        *Cart
	counters    *CounterBook
	customer    *entity.Customer
	payment     enum.PaymentMethod
	tendered    int64 // cents
	tenderedSet bool
	invoice      *entity.Sale
	lastError    *apperror.AppError
	lastHits     []entity.Medicine
	customerHits []entity.Customer

	catalogRun  *debounce.Runner[[]entity.Medicine]
	customerRun *debounce.Runner[[]entity.Customer]

	unsubscribes []func()
}

// NewSession creates an idle session with an empty cart. wait is the
// search quiescence window.
func NewSession(tenantID, operatorID uuid.UUID, wait time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:          uuid.New(),
		TenantID:    tenantID,
		OperatorID:  operatorID,
		CreatedAt:   now,
		lastActive:  now,
		state:       StateIdle,
		cart:        NewCart(),
		counters:    NewCounterBook(),
		payment:     enum.PaymentCash,
		catalogRun:  debounce.NewRunner[[]entity.Medicine](wait),
		customerRun: debounce.NewRunner[[]entity.Customer](wait),
	}
}

// Touch records activity so the janitor keeps the session alive.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
}

// LastActive returns the last activity timestamp.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Counters returns the session's counter book.
func (s *Session) Counters() *CounterBook {
	return s.counters
}

// CatalogRunner returns the debounced runner for catalog search.
func (s *Session) CatalogRunner() *debounce.Runner[[]entity.Medicine] {
	return s.catalogRun
}

// CustomerRunner returns the debounced runner for customer search.
func (s *Session) CustomerRunner() *debounce.Runner[[]entity.Customer] {
	return s.customerRun
}

// OnTeardown registers a cleanup func (typically an event-bus
// unsubscribe) run when the session closes.
func (s *Session) OnTeardown(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsubscribes = append(s.unsubscribes, fn)
}

// Close cancels in-flight searches and runs teardown hooks.
func (s *Session) Close() {
	s.catalogRun.Cancel()
	s.customerRun.Cancel()

	s.mu.Lock()
	hooks := s.unsubscribes
	s.unsubscribes = nil
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// --- catalog results ---

// MarkSearching flips the session into the searching state.
func (s *Session) MarkSearching() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle || s.state == StateResultsReady || s.state == StateError {
		s.state = StateSearching
		s.lastError = nil
	}
}

// SetCatalogResults installs the latest search hits. Only the winning
// (most recent) response ever reaches here; superseded responses are
// discarded by the debounce runner.
func (s *Session) SetCatalogResults(hits []entity.Medicine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastHits = hits
	if s.state == StateSearching {
		s.state = StateResultsReady
	}
}

// ClearCatalogResults drops the result set, e.g. when the query falls
// under the minimum length.
func (s *Session) ClearCatalogResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastHits = nil
	if s.state == StateSearching || s.state == StateResultsReady {
		s.state = StateIdle
	}
}

// FindLot resolves a lot from the last search results; the returned
// snapshot is what the cart line will clamp against.
func (s *Session) FindLot(medicineID, lotID uuid.UUID) (entity.Medicine, entity.StockLot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.lastHits {
		if m.ID != medicineID {
			continue
		}
		if lot, ok := m.Lot(lotID); ok {
			return m, lot, true
		}
	}
	return entity.Medicine{}, entity.StockLot{}, false
}

// --- cart ---

// AddLot adds a unit of the lot to the cart.
func (s *Session) AddLot(med entity.Medicine, lot entity.StockLot) (CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return CartLine{}, err
	}
	return s.cart.AddLot(med, lot)
}

// SetQuantity clamps and applies a quantity change.
func (s *Session) SetQuantity(lotID uuid.UUID, n int) (CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return CartLine{}, err
	}
	line, ok := s.cart.SetQuantity(lotID, n)
	if !ok {
		return CartLine{}, apperror.NewNotFoundError("Cart line")
	}
	return line, nil
}

// RemoveLine deletes a cart line.
func (s *Session) RemoveLine(lotID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	if !s.cart.Remove(lotID) {
		return apperror.NewNotFoundError("Cart line")
	}
	return nil
}

// ClearCart empties the cart. The confirmation prompt is the
// terminal's job; the gateway treats the call as already confirmed.
func (s *Session) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.cart.Clear()
	return nil
}

// editableLocked rejects mutations while a submit is in flight and
// recovers the error state back to editable.
func (s *Session) editableLocked() error {
	switch s.state {
	case StateSubmitting:
		return apperror.NewConflictError("A sale is being submitted; wait for it to finish")
	case StateInvoiceReady:
		return apperror.NewConflictError("Sale already committed; start a new sale first")
	case StateError:
		s.state = StateIdle
		s.lastError = nil
	}
	return nil
}

// --- customer ---

// SetCustomerResults installs the latest customer candidates.
func (s *Session) SetCustomerResults(hits []entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customerHits = hits
}

// CustomerResults returns the current candidate list.
func (s *Session) CustomerResults() []entity.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Customer, len(s.customerHits))
	copy(out, s.customerHits)
	return out
}

// FindCustomer resolves a candidate from the last customer search.
func (s *Session) FindCustomer(id uuid.UUID) (entity.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.customerHits {
		if c.ID == id {
			return c, true
		}
	}
	return entity.Customer{}, false
}

// BindCustomer attaches a customer to the session and clears the
// candidate list.
func (s *Session) BindCustomer(c *entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = c
	s.customerHits = nil
}

// UnbindCustomer detaches the bound customer. Any fresh customer
// search also lands here: a selection is not sticky against typing.
func (s *Session) UnbindCustomer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = nil
}

// Customer returns the bound customer, or nil for a walk-in.
func (s *Session) Customer() *entity.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customer
}

// --- payment ---

// SetPayment records the method and, optionally, the tendered amount.
// A nil amount means "unset": it defaults to the grand total at
// submit. Credit suppresses the tendered amount entirely.
func (s *Session) SetPayment(method enum.PaymentMethod, amount *int64) error {
	if !method.Valid() {
		return apperror.NewBadRequestError("Unknown payment method")
	}
	if amount != nil && *amount < 0 {
		return apperror.NewBadRequestError("Amount tendered cannot be negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return apperror.NewConflictError("A sale is being submitted; wait for it to finish")
	}
	s.payment = method
	if method.Upfront() && amount != nil {
		s.tendered = *amount
		s.tenderedSet = true
	} else {
		s.tendered = 0
		s.tenderedSet = false
	}
	return nil
}

// Totals derives the current monetary summary.
func (s *Session) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalsLocked()
}

func (s *Session) totalsLocked() Totals {
	subtotal := s.cart.Subtotal()
	tendered := s.tendered
	if !s.tenderedSet {
		tendered = subtotal
	}
	return Calculate(subtotal, s.payment, tendered)
}

// --- submit ---

// BeginSubmit validates the full precondition set in order, first
// failure wins, and transitions to submitting. Exactly one commit
// call may follow per successful BeginSubmit; the state machine
// refuses a concurrent attempt.
func (s *Session) BeginSubmit() (*platform.CreateSaleInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSubmitting:
		return nil, apperror.NewConflictError("A sale is already being submitted")
	case StateInvoiceReady:
		return nil, apperror.NewConflictError("Sale already committed; start a new sale first")
	}

	if s.cart.Empty() {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}

	totals := s.totalsLocked()
	if !totals.Sufficient() {
		return nil, apperror.NewBadRequestError("Amount tendered is less than the grand total")
	}

	counter, ok := s.counters.Bound()
	if !ok || !counter.Active() {
		return nil, apperror.NewBadRequestError("No active counter is selected")
	}

	items := make([]platform.SaleItemInput, 0, len(s.cart.lines))
	for _, l := range s.cart.lines {
		items = append(items, platform.SaleItemInput{
			MedicineID:   l.MedicineID,
			BatchID:      l.LotID,
			Quantity:     l.Quantity,
			SellingPrice: l.UnitPrice,
		})
	}

	input := &platform.CreateSaleInput{
		Items:         items,
		PaymentMethod: s.payment,
		AmountPaid:    totals.Tendered,
		CounterID:     counter.ID,
	}
	if s.customer != nil {
		id := s.customer.ID
		input.CustomerID = &id
	}

	s.state = StateSubmitting
	s.lastError = nil
	return input, nil
}

// CompleteSubmit installs the committed sale and resets the editing
// state: cart cleared, customer unbound, tendered reset, method back
// to cash, session showing the invoice.
func (s *Session) CompleteSubmit(sale *entity.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.customer = nil
	s.tendered = 0
	s.tenderedSet = false
	s.payment = enum.PaymentCash
	s.invoice = sale
	s.lastHits = nil
	s.customerHits = nil
	s.state = StateInvoiceReady
}

// FailSubmit surfaces the rejection and leaves cart, customer and
// payment untouched so the operator can correct and retry. Retries
// are operator-initiated only.
func (s *Session) FailSubmit(err *apperror.AppError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
	s.state = StateError
}

// Invoice returns the committed sale while in the invoice state.
func (s *Session) Invoice() (*entity.Sale, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInvoiceReady || s.invoice == nil {
		return nil, false
	}
	return s.invoice, true
}

// NewSale discards the invoice and returns to an empty idle cart.
func (s *Session) NewSale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoice = nil
	s.lastError = nil
	s.cart.Clear()
	s.state = StateIdle
}

// --- view ---

// View is the session state snapshot returned to the terminal.
type View struct {
	SessionID     uuid.UUID          `json:"session_id"`
	State         State              `json:"state"`
	Cart          []CartLine         `json:"cart"`
	Totals        Totals             `json:"totals"`
	Customer      *entity.Customer   `json:"customer,omitempty"`
	Counter       *entity.Counter    `json:"counter,omitempty"`
	CounterState  CounterBookState   `json:"counter_state"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Results       []entity.Medicine  `json:"results,omitempty"`
	Invoice       *entity.Sale       `json:"invoice,omitempty"`
	LastError     *apperror.AppError `json:"last_error,omitempty"`
}

// Snapshot builds a consistent view of the session.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		SessionID:     s.ID,
		State:         s.state,
		Cart:          s.cart.Lines(),
		Totals:        s.totalsLocked(),
		Customer:      s.customer,
		CounterState:  s.counters.State(),
		PaymentMethod: s.payment,
		Results:       s.lastHits,
		Invoice:       s.invoice,
		LastError:     s.lastError,
	}
	if c, ok := s.counters.Bound(); ok {
		v.Counter = &c
	}
	return v
}
