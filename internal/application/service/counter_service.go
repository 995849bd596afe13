package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pharmatill/terminal-api/internal/checkout"
	"github.com/pharmatill/terminal-api/internal/domain/entity"
	"github.com/pharmatill/terminal-api/internal/domain/platform"
	"github.com/pharmatill/terminal-api/pkg/apperror"
)

// CounterService manages the session's view of the operating
// registers. The platform owns the counter set; the session's book is
// a cache that push events mark stale.
type CounterService struct {
	api platform.API
}

// NewCounterService creates a new counter service.
func NewCounterService(api platform.API) *CounterService {
	return &CounterService{api: api}
}

// EnsureLoaded fetches the counter list if the book has never loaded
// or a push event invalidated it. Loading re-applies the automatic
// binding rule only when nothing is bound.
func (s *CounterService) EnsureLoaded(ctx context.Context, sess *checkout.Session) error {
	book := sess.Counters()
	if !book.Stale() {
		return nil
	}
	return s.load(ctx, book)
}

// Refresh force-fetches the list. An explicit operator choice survives
// the refresh; a dead binding is replaced by the automatic rule.
func (s *CounterService) Refresh(ctx context.Context, sess *checkout.Session) error {
	return s.load(ctx, sess.Counters())
}

func (s *CounterService) load(ctx context.Context, book *checkout.CounterBook) error {
	book.BeginLoad()
	counters, err := s.api.ListCounters(ctx)
	if err != nil {
		book.Invalidate()
		return apperror.GetAppError(err)
	}
	book.Load(counters)
	return nil
}

// List returns every counter, active and inactive, for the chooser.
func (s *CounterService) List(ctx context.Context, sess *checkout.Session) ([]entity.Counter, error) {
	if err := s.EnsureLoaded(ctx, sess); err != nil {
		return nil, err
	}
	return sess.Counters().List(), nil
}

// Select binds a counter as the operator's explicit choice. Inactive
// counters are visible in the chooser but never selectable. Switching
// the bound counter does not touch the cart.
func (s *CounterService) Select(ctx context.Context, sess *checkout.Session, counterID uuid.UUID) (entity.Counter, error) {
	if err := s.EnsureLoaded(ctx, sess); err != nil {
		return entity.Counter{}, err
	}
	c, ok := sess.Counters().Select(counterID)
	if !ok {
		return entity.Counter{}, apperror.NewBadRequestError("Counter is inactive or unknown")
	}
	return c, nil
}
