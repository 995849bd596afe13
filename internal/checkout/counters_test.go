package checkout

import (
	"testing"

	"github.com/google/uuid"

	"github.com/pharmatill/terminal-api/internal/domain/entity"
	"github.com/pharmatill/terminal-api/internal/domain/enum"
)

func counter(name string, status enum.CounterStatus, isDefault bool) entity.Counter {
	return entity.Counter{ID: uuid.New(), Name: name, Status: status, IsDefault: isDefault}
}

func TestLoad_PrefersDefaultActiveCounter(t *testing.T) {
	b := NewCounterBook()
	counters := []entity.Counter{
		counter("Till 1", enum.CounterActive, false),
		counter("Till 2", enum.CounterActive, true),
		counter("Till 3", enum.CounterInactive, false),
	}
	b.Load(counters)

	bound, ok := b.Bound()
	if !ok || bound.Name != "Till 2" {
		t.Fatalf("expected default active counter bound, got %v ok=%v", bound.Name, ok)
	}
	if b.State() != CountersReady {
		t.Fatalf("expected has_counters state, got %s", b.State())
	}
}

func TestLoad_FallsBackToFirstActive(t *testing.T) {
	b := NewCounterBook()
	counters := []entity.Counter{
		counter("Till 1", enum.CounterInactive, true), // default but inactive
		counter("Till 2", enum.CounterActive, false),
		counter("Till 3", enum.CounterActive, false),
	}
	b.Load(counters)

	bound, ok := b.Bound()
	if !ok || bound.Name != "Till 2" {
		t.Fatalf("expected first active counter bound, got %v", bound.Name)
	}
}

func TestLoad_NoActiveCounters(t *testing.T) {
	b := NewCounterBook()
	b.Load([]entity.Counter{counter("Till 1", enum.CounterInactive, false)})

	if _, ok := b.Bound(); ok {
		t.Fatal("nothing should be bound when no counter is active")
	}
	if b.HasActiveBinding() {
		t.Fatal("HasActiveBinding must be false with zero active counters")
	}
}

func TestLoad_EmptyList(t *testing.T) {
	b := NewCounterBook()
	b.Load(nil)
	if b.State() != CountersNone {
		t.Fatalf("expected no_counters state, got %s", b.State())
	}
}

func TestRefresh_NeverOverridesExplicitChoice(t *testing.T) {
	b := NewCounterBook()
	till1 := counter("Till 1", enum.CounterActive, true)
	till2 := counter("Till 2", enum.CounterActive, false)
	b.Load([]entity.Counter{till1, till2})

	if _, ok := b.Select(till2.ID); !ok {
		t.Fatal("selecting an active counter failed")
	}

	// Refresh with the same list: the operator's choice must survive
	// even though the auto-bind rule would pick till1.
	b.Load([]entity.Counter{till1, till2})

	bound, _ := b.Bound()
	if bound.ID != till2.ID {
		t.Fatalf("refresh silently overrode the operator's choice: bound %s", bound.Name)
	}
}

func TestRefresh_RebindsWhenBoundCounterWentInactive(t *testing.T) {
	b := NewCounterBook()
	till1 := counter("Till 1", enum.CounterActive, false)
	till2 := counter("Till 2", enum.CounterActive, false)
	b.Load([]entity.Counter{till1, till2})

	// Till 1 auto-bound; it goes inactive upstream.
	till1.Status = enum.CounterInactive
	b.Load([]entity.Counter{till1, till2})

	bound, ok := b.Bound()
	if !ok || bound.ID != till2.ID {
		t.Fatalf("expected rebinding to remaining active counter, got %v ok=%v", bound.Name, ok)
	}
}

func TestSelect_RejectsInactiveCounter(t *testing.T) {
	b := NewCounterBook()
	till1 := counter("Till 1", enum.CounterActive, false)
	till2 := counter("Till 2", enum.CounterInactive, false)
	b.Load([]entity.Counter{till1, till2})

	if _, ok := b.Select(till2.ID); ok {
		t.Fatal("inactive counter must not be selectable")
	}
	if _, ok := b.Select(uuid.New()); ok {
		t.Fatal("unknown counter must not be selectable")
	}
	if got := len(b.List()); got != 2 {
		t.Fatalf("chooser must list all counters, got %d", got)
	}
}

func TestInvalidate_MarksStale(t *testing.T) {
	b := NewCounterBook()
	if !b.Stale() {
		t.Fatal("uninitialized book should read as stale")
	}
	b.Load([]entity.Counter{counter("Till 1", enum.CounterActive, false)})
	if b.Stale() {
		t.Fatal("freshly loaded book should not be stale")
	}
	b.Invalidate()
	if !b.Stale() {
		t.Fatal("push event should mark the book stale")
	}
}
