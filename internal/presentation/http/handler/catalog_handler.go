package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pharmatill/terminal-api/internal/application/service"
	"github.com/pharmatill/terminal-api/internal/presentation/http/dto/response"
)

// CatalogHandler serves the debounced medicine search.
type CatalogHandler struct {
	checkoutService *service.CheckoutService
	catalogService  *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(checkoutService *service.CheckoutService, catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{checkoutService: checkoutService, catalogService: catalogService}
}

// Search runs one keystroke's worth of catalog lookup. The call blocks
// through the quiescence window; a request superseded by a newer
// keystroke answers 204 and the terminal renders nothing for it.
func (h *CatalogHandler) Search(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}

	hits, superseded, err := h.catalogService.Search(upstreamContext(c), sess, c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if superseded {
		response.NoContent(c)
		return
	}
	response.OK(c, "Catalog search results", gin.H{
		"results": hits,
		"state":   sess.Snapshot().State,
	})
}
