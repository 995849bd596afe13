package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pharmatill/terminal-api/internal/application/service"
	"github.com/pharmatill/terminal-api/internal/presentation/http/dto/response"
)

// SessionHandler manages checkout session lifecycle requests.
type SessionHandler struct {
	checkoutService *service.CheckoutService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(checkoutService *service.CheckoutService) *SessionHandler {
	return &SessionHandler{checkoutService: checkoutService}
}

// Open creates a new checkout session for the operator.
func (h *SessionHandler) Open(c *gin.Context) {
	sess, err := h.checkoutService.Open(upstreamContext(c), GetTenantID(c), GetOperatorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Checkout session opened", sess.Snapshot())
}

// Get returns the full session view.
func (h *SessionHandler) Get(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}
	response.OK(c, "Checkout session retrieved", sess.Snapshot())
}

// Close tears the session down; the in-progress cart is discarded.
func (h *SessionHandler) Close(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}
	if err := h.checkoutService.Close(id, GetOperatorID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// NewSale discards the displayed invoice and resets the session for
// the next customer.
func (h *SessionHandler) NewSale(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}
	h.checkoutService.NewSale(sess)
	response.OK(c, "Ready for a new sale", sess.Snapshot())
}
