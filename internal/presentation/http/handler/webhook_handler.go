package handler

import (
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmatill/terminal-api/internal/presentation/http/dto/request"
	"github.com/pharmatill/terminal-api/internal/presentation/http/dto/response"
	"github.com/pharmatill/terminal-api/internal/validation"
	"github.com/pharmatill/terminal-api/pkg/events"
)

// WebhookHandler receives platform push notifications and fans them
// out to the open sessions' caches.
type WebhookHandler struct {
	bus      *events.Bus
	validate *validatorv10.Validate
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(bus *events.Bus, validate *validatorv10.Validate) *WebhookHandler {
	return &WebhookHandler{bus: bus, validate: validate}
}

// Receive publishes the platform event on the in-process bus.
// Delivery is fire-and-forget: subscribers only mark caches stale, so
// a 200 here never waits on a remote call.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var req request.PlatformEventRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		response.Error(c, err)
		return
	}
	tenantID, _ := uuid.Parse(req.TenantID)

	h.bus.Publish(events.Event{
		Topic:    req.Topic,
		TenantID: tenantID,
		Payload:  req.Payload,
		At:       time.Now(),
	})
	response.OK(c, "Event accepted", nil)
}
