package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/pharmatill/terminal-api/internal/domain/entity"
	"github.com/pharmatill/terminal-api/internal/domain/platform"
	"github.com/pharmatill/terminal-api/pkg/apperror"
)

func TestResolveExactPhoneBinds(t *testing.T) {
	f := newFixture(t)
	f.api.customers = []entity.Customer{
		{ID: uuid.New(), Name: "Asha Rahman", Phone: "+8801711000000"},
	}
	sess := f.open(t)

	cust, err := f.customer.Resolve(context.Background(), sess, "+8801711000000")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cust.Name != "Asha Rahman" {
		t.Fatalf("resolved %q", cust.Name)
	}
	if got := sess.Customer(); got == nil || got.ID != cust.ID {
		t.Fatal("resolved customer should be bound to the session")
	}
}

func TestResolveFallsBackToFuzzy(t *testing.T) {
	f := newFixture(t)
	f.api.customers = []entity.Customer{
		{ID: uuid.New(), Name: "Asha Rahman", Phone: "+8801711000022"},
	}
	sess := f.open(t)

	// No exact match for the typed fragment, but the fuzzy search hits.
	cust, err := f.customer.Resolve(context.Background(), sess, "01711000022")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cust.Phone != "+8801711000022" {
		t.Fatalf("resolved %q", cust.Phone)
	}
}

func TestResolveMissIsCreationTriggerNotFailure(t *testing.T) {
	f := newFixture(t)
	sess := f.open(t)

	_, err := f.customer.Resolve(context.Background(), sess, "+8801700000000")
	if err == nil {
		t.Fatal("expected not-found")
	}
	if !apperror.IsNotFound(err) {
		t.Fatalf("a double miss must be not-found, got %v", err)
	}
	if sess.Customer() != nil {
		t.Fatal("nothing should be bound on a miss")
	}
}

func TestCreateBindsNewCustomer(t *testing.T) {
	f := newFixture(t)
	sess := f.open(t)

	cust, err := f.customer.Create(context.Background(), sess, &platform.CreateCustomerInput{
		Name:  "Walk In Regular",
		Phone: "+8801911000000",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := sess.Customer(); got == nil || got.ID != cust.ID {
		t.Fatal("created customer should be bound immediately")
	}
}

func TestSearchUnbindsSelection(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()
	f.api.customers = []entity.Customer{
		{ID: id, Name: "Asha Rahman", Phone: "+8801711000000"},
	}
	sess := f.open(t)

	hits, superseded, err := f.customer.Search(context.Background(), sess, "asha")
	if err != nil || superseded {
		t.Fatalf("Search: err=%v superseded=%v", err, superseded)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d", len(hits))
	}
	if _, err := f.customer.Select(sess, id); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sess.Customer() == nil {
		t.Fatal("expected a bound customer")
	}

	// Typing again drops the binding; a selection is never sticky.
	if _, _, err := f.customer.Search(context.Background(), sess, "ash"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if sess.Customer() != nil {
		t.Fatal("typing must unbind the selected customer")
	}
}

func TestSelectRequiresCurrentResults(t *testing.T) {
	f := newFixture(t)
	sess := f.open(t)

	if _, err := f.customer.Select(sess, uuid.New()); err == nil {
		t.Fatal("selecting outside the current result set must fail")
	}
}

func TestShortQueryClearsCandidates(t *testing.T) {
	f := newFixture(t)
	f.api.customers = []entity.Customer{
		{ID: uuid.New(), Name: "Asha Rahman", Phone: "+8801711000000"},
	}
	sess := f.open(t)

	if _, _, err := f.customer.Search(context.Background(), sess, "asha"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(sess.CustomerResults()) != 1 {
		t.Fatal("expected candidates installed")
	}

	if _, _, err := f.customer.Search(context.Background(), sess, "a"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(sess.CustomerResults()) != 0 {
		t.Fatal("a sub-threshold query must clear the candidate list")
	}
}
