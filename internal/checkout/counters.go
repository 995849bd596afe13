package checkout

import (
	"sync"

	"github.com/google/uuid"

	"github.com/pharmatill/terminal-api/internal/domain/entity"
)

// CounterBookState names the lifecycle of the counter list.
type CounterBookState string

const (
	CountersUninitialized CounterBookState = "uninitialized"
	CountersLoading       CounterBookState = "loading"
	CountersNone          CounterBookState = "no_counters"
	CountersReady         CounterBookState = "has_counters"
)

// CounterBook holds the session's view of the operating registers and
// the binding rules. The list is a cache of the platform's counter
// set; push events mark it stale so the next read re-fetches.
type CounterBook struct {
	mu       sync.Mutex
	state    CounterBookState
	counters []entity.Counter
	bound    uuid.UUID // uuid.Nil when nothing is bound
	manual   bool      // operator chose explicitly; never auto-overridden
	stale    bool
}

// NewCounterBook creates an uninitialized book.
func NewCounterBook() *CounterBook {
	return &CounterBook{state: CountersUninitialized}
}

// BeginLoad transitions to loading before a fetch.
func (b *CounterBook) BeginLoad() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = CountersLoading
}

// Load installs a freshly fetched counter list. The automatic binding
// rule (default-flagged active counter, else first active in list
// order, else none) applies only when no counter is currently bound:
// an operator's explicit choice is never silently overridden by a
// refresh. A bound counter that vanished or went inactive is unbound.
func (b *CounterBook) Load(counters []entity.Counter) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.counters = counters
	b.stale = false
	if len(counters) == 0 {
		b.state = CountersNone
	} else {
		b.state = CountersReady
	}

	if b.bound != uuid.Nil {
		if c, ok := b.find(b.bound); !ok || !c.Active() {
			b.bound = uuid.Nil
			b.manual = false
		}
	}
	if b.bound == uuid.Nil {
		b.bound = autoBind(counters)
		b.manual = false
	}
}

func autoBind(counters []entity.Counter) uuid.UUID {
	for _, c := range counters {
		if c.Active() && c.IsDefault {
			return c.ID
		}
	}
	for _, c := range counters {
		if c.Active() {
			return c.ID
		}
	}
	return uuid.Nil
}

func (b *CounterBook) find(id uuid.UUID) (entity.Counter, bool) {
	for _, c := range b.counters {
		if c.ID == id {
			return c, true
		}
	}
	return entity.Counter{}, false
}

// Select binds the given counter as the operator's explicit choice.
// Inactive counters are listed but not selectable.
func (b *CounterBook) Select(id uuid.UUID) (entity.Counter, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.find(id)
	if !ok || !c.Active() {
		return entity.Counter{}, false
	}
	b.bound = id
	b.manual = true
	return c, true
}

// Bound returns the bound counter, if any.
func (b *CounterBook) Bound() (entity.Counter, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bound == uuid.Nil {
		return entity.Counter{}, false
	}
	return b.find(b.bound)
}

// HasActiveBinding reports whether a currently active counter is
// bound. Search, add-to-cart and submit are all gated on this.
func (b *CounterBook) HasActiveBinding() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bound == uuid.Nil {
		return false
	}
	c, ok := b.find(b.bound)
	return ok && c.Active()
}

// List returns every counter, active and inactive, in platform order.
func (b *CounterBook) List() []entity.Counter {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entity.Counter, len(b.counters))
	copy(out, b.counters)
	return out
}

// State returns the book's lifecycle state.
func (b *CounterBook) State() CounterBookState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Invalidate marks the cached list stale; sale-created and
// inventory-updated pushes land here. The in-progress cart is
// deliberately untouched.
func (b *CounterBook) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stale = true
}

// Stale reports whether the next read should re-fetch.
func (b *CounterBook) Stale() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stale || b.state == CountersUninitialized
}
