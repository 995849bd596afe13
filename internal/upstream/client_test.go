package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pharmatill/terminal-api/internal/domain/enum"
	"github.com/pharmatill/terminal-api/internal/domain/platform"
	"github.com/pharmatill/terminal-api/pkg/apperror"
)

func TestSearchCatalog_DecodesAndConvertsToCents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/catalog/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("search"); got != "para" {
			t.Errorf("unexpected search query %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("missing bearer token, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"ok","data":[
			{"medicine_id":"7b7e2f2e-8f50-4f6e-9be1-111111111111","name":"Paracetamol","generic_name":"Acetaminophen",
			 "manufacturer":"Beximco","total_stock":12,
			 "batches":[{"batch_id":"7b7e2f2e-8f50-4f6e-9be1-222222222222","batch_number":"B-9","quantity":12,
			             "selling_price":20.5,"mrp":22.0,"expiry_date":"2027-01-01T00:00:00Z"}]}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	ctx := WithToken(context.Background(), "tok-123")

	meds, err := c.SearchCatalog(ctx, "para", 10)
	if err != nil {
		t.Fatalf("SearchCatalog: %v", err)
	}
	if len(meds) != 1 || len(meds[0].Batches) != 1 {
		t.Fatalf("unexpected shape: %+v", meds)
	}
	lot := meds[0].Batches[0]
	if lot.SellingPrice != 2050 {
		t.Fatalf("expected 20.50 converted to 2050 cents, got %d", lot.SellingPrice)
	}
	if lot.MRP != 2200 {
		t.Fatalf("expected MRP 2200 cents, got %d", lot.MRP)
	}
}

func TestGetCustomerByPhone_MissIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Customer not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.GetCustomerByPhone(context.Background(), "01700000000")
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected a not-found AppError, got %v", err)
	}
}

func TestCreateSale_SendsIdempotencyKeyAndDecimalMoney(t *testing.T) {
	var gotKey string
	var gotBody createSaleWire

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"message":"Sale created","data":{
			"sale_id":"7b7e2f2e-8f50-4f6e-9be1-333333333333","invoice_no":"INV-9F3A21",
			"sale_date":"2026-08-28T10:00:00Z","counter_id":"7b7e2f2e-8f50-4f6e-9be1-444444444444",
			"counter_name":"Main Till","items":[],"sub_total":60.0,"grand_total":60.0,
			"payment_method":"cash","amount_paid":100.0,"change_due":40.0,"due_amount":0}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	input := &platform.CreateSaleInput{
		Items: []platform.SaleItemInput{
			{MedicineID: uuid.New(), BatchID: uuid.New(), Quantity: 3, SellingPrice: 2000},
		},
		PaymentMethod: enum.PaymentCash,
		AmountPaid:    10000,
		CounterID:     uuid.New(),
	}

	sale, err := c.CreateSale(context.Background(), input, "attempt-key-1")
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if gotKey != "attempt-key-1" {
		t.Fatalf("idempotency key not forwarded, got %q", gotKey)
	}
	if gotBody.AmountPaid != 100.0 {
		t.Fatalf("amount paid should travel as decimal 100.0, got %v", gotBody.AmountPaid)
	}
	if gotBody.Items[0].SellingPrice != 20.0 {
		t.Fatalf("item price should travel as decimal 20.0, got %v", gotBody.Items[0].SellingPrice)
	}
	if sale.GrandTotal != 6000 || sale.ChangeDue != 4000 {
		t.Fatalf("sale money not converted to cents: total=%d change=%d", sale.GrandTotal, sale.ChangeDue)
	}
}

func TestCreateSale_StructuredRejectionSurfacesVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Insufficient stock for: Paracetamol",
			"errors":[{"field":"items.0.quantity","message":"only 2 left in batch B-9"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.CreateSale(context.Background(), &platform.CreateSaleInput{
		PaymentMethod: enum.PaymentCash,
		CounterID:     uuid.New(),
	}, "k")

	appErr := apperror.GetAppError(err)
	if !appErr.Upstream {
		t.Fatal("rejection must be marked as upstream")
	}
	if appErr.Message != "Insufficient stock for: Paracetamol" {
		t.Fatalf("upstream message altered: %q", appErr.Message)
	}
	if len(appErr.Errors) != 1 || appErr.Errors[0].Field != "items.0.quantity" {
		t.Fatalf("field details lost: %+v", appErr.Errors)
	}
}

func TestDo_CancelledContextReturnsContextError(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewClient(srv.URL, 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := c.SearchCatalog(ctx, "pa", 10)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled passthrough, got %v", err)
	}
}
