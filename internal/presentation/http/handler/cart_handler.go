package handler

import (
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmatill/terminal-api/internal/application/service"
	"github.com/pharmatill/terminal-api/internal/checkout"
	"github.com/pharmatill/terminal-api/internal/domain/enum"
	"github.com/pharmatill/terminal-api/internal/presentation/http/dto/request"
	"github.com/pharmatill/terminal-api/internal/presentation/http/dto/response"
	"github.com/pharmatill/terminal-api/internal/validation"
)

// CartHandler serves cart mutations and the payment panel. Every
// mutation answers with the refreshed cart and totals so the terminal
// never derives money client-side.
type CartHandler struct {
	checkoutService *service.CheckoutService
	validate        *validatorv10.Validate
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(checkoutService *service.CheckoutService, validate *validatorv10.Validate) *CartHandler {
	return &CartHandler{checkoutService: checkoutService, validate: validate}
}

func (h *CartHandler) cartView(c *gin.Context, message string, sess *checkout.Session) {
	v := sess.Snapshot()
	response.OK(c, message, gin.H{
		"cart":   v.Cart,
		"totals": v.Totals,
		"state":  v.State,
	})
}

// AddLot adds one unit of a lot from the current search results.
func (h *CartHandler) AddLot(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}

	var req request.AddLotRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		response.Error(c, err)
		return
	}
	medicineID, _ := uuid.Parse(req.MedicineID)
	lotID, _ := uuid.Parse(req.LotID)

	if _, err := h.checkoutService.AddLot(sess, medicineID, lotID); err != nil {
		response.Error(c, err)
		return
	}
	h.cartView(c, "Item added to cart", sess)
}

// SetQuantity applies a clamped quantity change to the line named in
// the path.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}
	lotID, ok := pathUUID(c, "lot_id")
	if !ok {
		response.BadRequest(c, "Invalid lot ID")
		return
	}

	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if _, err := h.checkoutService.SetQuantity(sess, lotID, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}
	h.cartView(c, "Quantity updated", sess)
}

// RemoveLine removes a cart line.
func (h *CartHandler) RemoveLine(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}
	lotID, ok := pathUUID(c, "lot_id")
	if !ok {
		response.BadRequest(c, "Invalid lot ID")
		return
	}

	if err := h.checkoutService.RemoveLine(sess, lotID); err != nil {
		response.Error(c, err)
		return
	}
	h.cartView(c, "Item removed", sess)
}

// Clear empties the cart. The terminal asks for confirmation first;
// this endpoint treats the call as confirmed.
func (h *CartHandler) Clear(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}
	if err := h.checkoutService.ClearCart(sess); err != nil {
		response.Error(c, err)
		return
	}
	h.cartView(c, "Cart cleared", sess)
}

// Totals returns the current monetary summary.
func (h *CartHandler) Totals(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}
	response.OK(c, "Totals", sess.Totals())
}

// SetPayment records the payment method and optional tendered amount.
func (h *CartHandler) SetPayment(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}

	var req request.SetPaymentRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		response.Error(c, err)
		return
	}

	var amount *int64
	if req.AmountTendered != nil {
		v := toCents(*req.AmountTendered)
		amount = &v
	}

	if err := h.checkoutService.SetPayment(sess, enum.PaymentMethod(req.Method), amount); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment updated", sess.Totals())
}
