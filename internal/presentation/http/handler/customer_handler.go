package handler

import (
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmatill/terminal-api/internal/application/service"
	"github.com/pharmatill/terminal-api/internal/domain/platform"
	"github.com/pharmatill/terminal-api/internal/presentation/http/dto/request"
	"github.com/pharmatill/terminal-api/internal/presentation/http/dto/response"
	"github.com/pharmatill/terminal-api/internal/validation"
)

// CustomerHandler serves the customer resolver flow: debounced
// candidate search, selection, exact-phone resolve and inline
// creation.
type CustomerHandler struct {
	checkoutService *service.CheckoutService
	customerService *service.CustomerService
	validate        *validatorv10.Validate
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(checkoutService *service.CheckoutService, customerService *service.CustomerService, validate *validatorv10.Validate) *CustomerHandler {
	return &CustomerHandler{
		checkoutService: checkoutService,
		customerService: customerService,
		validate:        validate,
	}
}

// Search returns ranked customer candidates for a phone/name fragment.
// Typing unbinds any previously selected customer.
func (h *CustomerHandler) Search(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}

	hits, superseded, err := h.customerService.Search(upstreamContext(c), sess, c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if superseded {
		response.NoContent(c)
		return
	}
	response.OK(c, "Customer candidates", gin.H{"results": hits})
}

// Select binds a candidate from the current search results.
func (h *CustomerHandler) Select(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}

	var req request.SelectCustomerRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		response.Error(c, err)
		return
	}
	customerID, _ := uuid.Parse(req.CustomerID)

	cust, err := h.customerService.Select(sess, customerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer selected", cust)
}

// Resolve is the press-enter exact lookup. A miss answers 404, which
// the terminal treats as the trigger to open the creation form
// pre-filled with the typed phone.
func (h *CustomerHandler) Resolve(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}

	var req request.ResolveCustomerRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		response.Error(c, err)
		return
	}

	cust, err := h.customerService.Resolve(upstreamContext(c), sess, req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer resolved", cust)
}

// Create registers a new customer and binds it to the session. Local
// validation rejects an incomplete form before any remote call.
func (h *CustomerHandler) Create(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}

	var req request.CreateCustomerRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		response.Error(c, err)
		return
	}

	cust, err := h.customerService.Create(upstreamContext(c), sess, &platform.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Customer created", cust)
}

// Unbind detaches the bound customer, returning the sale to walk-in.
func (h *CustomerHandler) Unbind(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}
	h.customerService.Unbind(sess)
	response.NoContent(c)
}
