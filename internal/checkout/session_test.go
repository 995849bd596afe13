package checkout

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pharmatill/terminal-api/internal/domain/entity"
	"github.com/pharmatill/terminal-api/internal/domain/enum"
	"github.com/pharmatill/terminal-api/pkg/apperror"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(uuid.New(), uuid.New(), time.Millisecond)
	s.Counters().Load([]entity.Counter{
		{ID: uuid.New(), Name: "Main Till", Status: enum.CounterActive, IsDefault: true},
	})
	return s
}

func addLine(t *testing.T, s *Session, stock int, priceCents int64, qty int) entity.StockLot {
	t.Helper()
	med, lot := testLot(stock, priceCents)
	if _, err := s.AddLot(med, lot); err != nil {
		t.Fatalf("AddLot: %v", err)
	}
	if qty > 1 {
		if _, err := s.SetQuantity(lot.ID, qty); err != nil {
			t.Fatalf("SetQuantity: %v", err)
		}
	}
	return lot
}

func TestBeginSubmit_EmptyCartBlocksFirst(t *testing.T) {
	s := newTestSession(t)

	_, err := s.BeginSubmit()
	if err == nil {
		t.Fatal("expected empty-cart rejection")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected the empty-cart message, got %q", err.Error())
	}
}

func TestBeginSubmit_InsufficientTenderBlocks(t *testing.T) {
	s := newTestSession(t)
	addLine(t, s, 10, 2000, 3) // grand total 60.00

	amount := int64(5000)
	if err := s.SetPayment(enum.PaymentCash, &amount); err != nil {
		t.Fatalf("SetPayment: %v", err)
	}

	_, err := s.BeginSubmit()
	if err == nil {
		t.Fatal("expected insufficient-tender rejection")
	}
	if !strings.Contains(err.Error(), "tendered") {
		t.Fatalf("expected the tendered message, got %q", err.Error())
	}
	if s.Snapshot().State == StateSubmitting {
		t.Fatal("blocked submit must not reach the submitting state")
	}
}

func TestBeginSubmit_NoActiveCounterBlocks(t *testing.T) {
	s := NewSession(uuid.New(), uuid.New(), time.Millisecond)
	s.Counters().Load([]entity.Counter{
		{ID: uuid.New(), Name: "Till", Status: enum.CounterInactive},
	})
	med, lot := testLot(5, 1000)
	if _, err := s.cart.AddLot(med, lot); err != nil {
		t.Fatalf("AddLot: %v", err)
	}

	_, err := s.BeginSubmit()
	if err == nil {
		t.Fatal("expected no-active-counter rejection")
	}
	if !strings.Contains(err.Error(), "counter") {
		t.Fatalf("expected the counter message, got %q", err.Error())
	}
}

func TestBeginSubmit_CreditSkipsTenderCheck(t *testing.T) {
	s := newTestSession(t)
	addLine(t, s, 10, 2000, 3)
	if err := s.SetPayment(enum.PaymentCredit, nil); err != nil {
		t.Fatalf("SetPayment: %v", err)
	}

	input, err := s.BeginSubmit()
	if err != nil {
		t.Fatalf("credit submit blocked: %v", err)
	}
	if input.AmountPaid != 0 {
		t.Fatalf("credit sale must carry amountPaid 0, got %d", input.AmountPaid)
	}
	if input.PaymentMethod != enum.PaymentCredit {
		t.Fatalf("unexpected payment method %s", input.PaymentMethod)
	}
}

func TestBeginSubmit_TenderDefaultsToGrandTotal(t *testing.T) {
	s := newTestSession(t)
	addLine(t, s, 10, 2000, 3)

	input, err := s.BeginSubmit()
	if err != nil {
		t.Fatalf("submit with unset tender blocked: %v", err)
	}
	if input.AmountPaid != 6000 {
		t.Fatalf("unset tender must default to grand total 6000, got %d", input.AmountPaid)
	}
}

func TestBeginSubmit_PayloadCarriesSnapshottedPrices(t *testing.T) {
	s := newTestSession(t)
	lot := addLine(t, s, 10, 2000, 3)
	cust := &entity.Customer{ID: uuid.New(), Name: "Asha Rahman", Phone: "01711111111"}
	s.BindCustomer(cust)

	input, err := s.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if len(input.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(input.Items))
	}
	item := input.Items[0]
	if item.BatchID != lot.ID || item.Quantity != 3 || item.SellingPrice != 2000 {
		t.Fatalf("payload item mismatch: %+v", item)
	}
	if input.CustomerID == nil || *input.CustomerID != cust.ID {
		t.Fatal("bound customer id missing from payload")
	}
}

func TestSubmit_ExactlyOnceWhileInFlight(t *testing.T) {
	s := newTestSession(t)
	addLine(t, s, 10, 2000, 1)

	if _, err := s.BeginSubmit(); err != nil {
		t.Fatalf("first BeginSubmit: %v", err)
	}
	if _, err := s.BeginSubmit(); err == nil {
		t.Fatal("second BeginSubmit during flight must be rejected")
	}
	if _, err := s.SetQuantity(uuid.New(), 2); err == nil {
		t.Fatal("cart mutation during submit must be rejected")
	}
}

func TestCompleteSubmit_ResetsSessionToInvoice(t *testing.T) {
	s := newTestSession(t)
	addLine(t, s, 10, 2000, 3)
	s.BindCustomer(&entity.Customer{ID: uuid.New(), Name: "Walk In Test", Phone: "x"})
	amount := int64(10000)
	s.SetPayment(enum.PaymentCash, &amount)

	if _, err := s.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	sale := &entity.Sale{ID: uuid.New(), InvoiceNo: "INV-A1B2C3", GrandTotal: 6000}
	s.CompleteSubmit(sale)

	v := s.Snapshot()
	if v.State != StateInvoiceReady {
		t.Fatalf("expected invoice_ready, got %s", v.State)
	}
	if len(v.Cart) != 0 {
		t.Fatal("cart must be cleared after successful submit")
	}
	if v.Customer != nil {
		t.Fatal("customer must be unbound after successful submit")
	}
	if v.PaymentMethod != enum.PaymentCash {
		t.Fatalf("payment method must reset to cash, got %s", v.PaymentMethod)
	}
	if v.Totals.Tendered != 0 {
		t.Fatalf("tendered must reset, got %d", v.Totals.Tendered)
	}
	inv, ok := s.Invoice()
	if !ok || inv.InvoiceNo != "INV-A1B2C3" {
		t.Fatalf("invoice not held: ok=%v", ok)
	}
}

func TestFailSubmit_PreservesStateForRetry(t *testing.T) {
	s := newTestSession(t)
	lot := addLine(t, s, 10, 2000, 3)

	if _, err := s.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	s.FailSubmit(apperror.NewUpstreamError(400, "Insufficient stock for: Paracetamol 500mg", nil))

	v := s.Snapshot()
	if v.State != StateError {
		t.Fatalf("expected error state, got %s", v.State)
	}
	if v.LastError == nil || !strings.Contains(v.LastError.Message, "Insufficient stock") {
		t.Fatal("upstream message must be surfaced verbatim")
	}
	if len(v.Cart) != 1 || v.Cart[0].Quantity != 3 {
		t.Fatal("cart must be left untouched after a rejected commit")
	}

	// Corrective action recovers the session to an editable state and a
	// fresh operator-initiated attempt is allowed.
	if _, err := s.SetQuantity(lot.ID, 2); err != nil {
		t.Fatalf("corrective mutation rejected: %v", err)
	}
	if _, err := s.BeginSubmit(); err != nil {
		t.Fatalf("retry after correction blocked: %v", err)
	}
}

func TestNewSale_DiscardsInvoice(t *testing.T) {
	s := newTestSession(t)
	addLine(t, s, 10, 2000, 1)
	if _, err := s.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	s.CompleteSubmit(&entity.Sale{InvoiceNo: "INV-1"})

	s.NewSale()
	v := s.Snapshot()
	if v.State != StateIdle || v.Invoice != nil || len(v.Cart) != 0 {
		t.Fatalf("new sale must return to an empty idle cart, got %+v", v.State)
	}
}

func TestFindLot_ResolvesFromLastResults(t *testing.T) {
	s := newTestSession(t)
	med, lot := testLot(7, 1200)
	s.MarkSearching()
	s.SetCatalogResults([]entity.Medicine{med})

	_, got, ok := s.FindLot(med.ID, lot.ID)
	if !ok || got.Quantity != 7 {
		t.Fatalf("lot not resolved from results: ok=%v qty=%d", ok, got.Quantity)
	}
	if _, _, ok := s.FindLot(med.ID, uuid.New()); ok {
		t.Fatal("unknown lot must not resolve")
	}

	s.ClearCatalogResults()
	if _, _, ok := s.FindLot(med.ID, lot.ID); ok {
		t.Fatal("cleared results must not resolve lots")
	}
}
