package service

import (
	"context"
	"sort"
	"strings"

	"github.com/pharmatill/terminal-api/internal/checkout"
	"github.com/pharmatill/terminal-api/internal/domain/entity"
	"github.com/pharmatill/terminal-api/internal/domain/platform"
	"github.com/pharmatill/terminal-api/pkg/apperror"
)

// MinQueryLength is the threshold below which no remote search is
// issued and any existing result set is cleared.
const MinQueryLength = 2

// CatalogService performs the debounced, cancellable medicine lookup.
type CatalogService struct {
	api   platform.API
	limit int
}

// NewCatalogService creates a catalog search service. limit bounds the
// number of medicines per query.
func NewCatalogService(api platform.API, limit int) *CatalogService {
	return &CatalogService{api: api, limit: limit}
}

// Search runs one keystroke's worth of catalog lookup. Each call
// restarts the session's quiescence window and cancels any in-flight
// predecessor; only the most recent call's response is applied to the
// session. superseded=true means a newer keystroke won and this
// response was discarded; the caller shows nothing and logs nothing.
//
// Search is disabled entirely while no active counter is bound, since
// no sale could be completed anyway.
func (s *CatalogService) Search(ctx context.Context, sess *checkout.Session, query string) (hits []entity.Medicine, superseded bool, err error) {
	if !sess.Counters().HasActiveBinding() {
		return nil, false, apperror.NewBadRequestError("No active counter is selected")
	}

	query = strings.TrimSpace(query)
	if len(query) < MinQueryLength {
		sess.CatalogRunner().Cancel()
		sess.ClearCatalogResults()
		return nil, false, nil
	}

	sess.MarkSearching()
	hits, ok, err := sess.CatalogRunner().Submit(ctx, func(ctx context.Context) ([]entity.Medicine, error) {
		return s.api.SearchCatalog(ctx, query, s.limit)
	})
	if !ok {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, apperror.GetAppError(err)
	}

	rankInStockFirst(hits)
	sess.SetCatalogResults(hits)
	return hits, false, nil
}

// rankInStockFirst orders each medicine's lots so open stock appears
// before exhausted lots; within each group platform order (expiry) is
// kept. Out-of-stock lots stay visible but are not selectable.
func rankInStockFirst(hits []entity.Medicine) {
	for i := range hits {
		sort.SliceStable(hits[i].Batches, func(a, b int) bool {
			return hits[i].Batches[a].InStock() && !hits[i].Batches[b].InStock()
		})
	}
}
