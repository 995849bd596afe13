package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pharmatill/terminal-api/internal/application/service"
	"github.com/pharmatill/terminal-api/internal/presentation/http/dto/response"
)

// InvoiceHandler serves the sale commit and the post-sale invoice
// view.
type InvoiceHandler struct {
	checkoutService *service.CheckoutService
	printerService  *service.PrinterService
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(checkoutService *service.CheckoutService, printerService *service.PrinterService) *InvoiceHandler {
	return &InvoiceHandler{checkoutService: checkoutService, printerService: printerService}
}

// Submit commits the sale. Exactly one platform call is made per
// request; a concurrent submit on the same session is refused. On
// rejection the session keeps its cart and payment so the operator can
// correct and retry.
func (h *InvoiceHandler) Submit(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}

	sale, err := h.checkoutService.Submit(upstreamContext(c), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale committed", gin.H{
		"invoice": sale,
		"session": sess.Snapshot(),
	})
}

// Get returns the committed sale with its rendered receipt. 404 when
// no sale has been committed in this session.
func (h *InvoiceHandler) Get(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}

	sale, ok := sess.Invoice()
	if !ok {
		response.ErrorWithCode(c, 404, "No committed sale in this session")
		return
	}

	receipt := h.printerService.BuildReceipt(sale)
	response.OK(c, "Invoice retrieved", gin.H{
		"invoice":      sale,
		"receipt":      receipt,
		"receipt_text": service.RenderText(receipt),
	})
}

// Print renders the invoice on the thermal printer. When printing
// fails the receipt still comes back so the terminal can fall back to
// the browser's print dialog.
func (h *InvoiceHandler) Print(c *gin.Context) {
	sess, ok := resolveSession(c, h.checkoutService)
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintInvoice(sess)
	if err != nil {
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt":      receipt,
				"receipt_text": service.RenderText(receipt),
				"warning":      err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt sent to printer", gin.H{
		"receipt":      receipt,
		"receipt_text": service.RenderText(receipt),
	})
}
