package checkout

import (
	"testing"

	"github.com/pharmatill/terminal-api/internal/domain/enum"
)

func TestCalculate_CashChange(t *testing.T) {
	// Grand total 60.00, tendered 100.00 -> change 40.00.
	totals := Calculate(6000, enum.PaymentCash, 10000)

	if totals.GrandTotal != 6000 {
		t.Fatalf("expected grand total 6000, got %d", totals.GrandTotal)
	}
	if totals.Change != 4000 {
		t.Fatalf("expected change 4000, got %d", totals.Change)
	}
	if totals.Due != 0 {
		t.Fatalf("cash sale should carry no due, got %d", totals.Due)
	}
	if !totals.Sufficient() {
		t.Fatal("tendered above total must be sufficient")
	}
}

func TestCalculate_InsufficientTenderIsNotNegativeChange(t *testing.T) {
	totals := Calculate(6000, enum.PaymentCard, 5000)

	if totals.Change != 0 {
		t.Fatalf("insufficient payment must not render negative change, got %d", totals.Change)
	}
	if totals.Sufficient() {
		t.Fatal("tendered below total must be insufficient")
	}
}

func TestCalculate_CreditIgnoresTendered(t *testing.T) {
	for _, tendered := range []int64{0, 100, 999999} {
		totals := Calculate(6000, enum.PaymentCredit, tendered)
		if totals.Change != 0 {
			t.Fatalf("credit change must always be 0, got %d (tendered %d)", totals.Change, tendered)
		}
		if totals.Tendered != 0 {
			t.Fatalf("credit must not use the tendered amount, got %d", totals.Tendered)
		}
		if totals.Due != 6000 {
			t.Fatalf("credit due must equal grand total, got %d", totals.Due)
		}
		if !totals.Sufficient() {
			t.Fatal("credit sales are always sufficient")
		}
	}
}

func TestCalculate_ExactTender(t *testing.T) {
	totals := Calculate(4550, enum.PaymentMobileBanking, 4550)
	if totals.Change != 0 || !totals.Sufficient() {
		t.Fatalf("exact tender: change=%d sufficient=%v", totals.Change, totals.Sufficient())
	}
}
