package handler

import (
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmatill/terminal-api/internal/application/service"
	"github.com/pharmatill/terminal-api/internal/presentation/http/dto/request"
	"github.com/pharmatill/terminal-api/internal/presentation/http/dto/response"
	"github.com/pharmatill/terminal-api/internal/validation"
)

// CounterHandler serves the counter selector.
type CounterHandler struct {
	checkoutService *service.CheckoutService
	counterService  *service.CounterService
	validate        *validatorv10.Validate
}

// NewCounterHandler creates a new counter handler.
func NewCounterHandler(checkoutService *service.CheckoutService, counterService *service.CounterService, validate *validatorv10.Validate) *CounterHandler {
	return &CounterHandler{
		checkoutService: checkoutService,
		counterService:  counterService,
		validate:        validate,
	}
}

// List returns every counter plus the session's current binding.
func (h *CounterHandler) List(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}

	counters, err := h.counterService.List(upstreamContext(c), sess)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := gin.H{
		"counters": counters,
		"state":    sess.Counters().State(),
	}
	if bound, ok := sess.Counters().Bound(); ok {
		data["selected"] = bound
	}
	response.OK(c, "Counters retrieved", data)
}

// Refresh force-fetches the counter list from the platform.
func (h *CounterHandler) Refresh(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}
	if err := h.counterService.Refresh(upstreamContext(c), sess); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Counters refreshed", gin.H{
		"counters": sess.Counters().List(),
		"state":    sess.Counters().State(),
	})
}

// Select binds a counter as the operator's explicit choice. The
// binding survives later list refreshes for as long as the counter
// stays active.
func (h *CounterHandler) Select(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}

	var req request.SelectCounterRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		response.Error(c, err)
		return
	}
	counterID, _ := uuid.Parse(req.CounterID)

	counter, err := h.counterService.Select(upstreamContext(c), sess, counterID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Counter selected", counter)
}
