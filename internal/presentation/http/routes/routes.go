package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pharmatill/terminal-api/internal/config"
	"github.com/pharmatill/terminal-api/internal/presentation/http/handler"
	"github.com/pharmatill/terminal-api/internal/presentation/http/middleware"
	"github.com/pharmatill/terminal-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Session  *handler.SessionHandler
	Catalog  *handler.CatalogHandler
	Customer *handler.CustomerHandler
	Counter  *handler.CounterHandler
	Cart     *handler.CartHandler
	Invoice  *handler.InvoiceHandler
	Printer  *handler.PrinterHandler
	Webhook  *handler.WebhookHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Platform push endpoint, authenticated by shared secret
		v1.POST("/webhooks/platform",
			middleware.WebhookAuth(deps.Cfg.JWT.Secret),
			h.Webhook.Receive,
		)

		// Operator routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-operator rate limiter
		rateLimiter := middleware.NewOperatorRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerSessionRoutes(protected, h)
		registerPrinterRoutes(protected, h)
	}

	return router
}

func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers) {
	sessions := protected.Group("/sessions")
	{
		sessions.POST("", h.Session.Open)
		sessions.GET("/:id", h.Session.Get)
		sessions.DELETE("/:id", h.Session.Close)
		sessions.POST("/:id/new-sale", h.Session.NewSale)

		// Catalog search
		sessions.GET("/:id/catalog", h.Catalog.Search)

		// Customer resolver
		sessions.GET("/:id/customers", h.Customer.Search)
		sessions.POST("/:id/customer/select", h.Customer.Select)
		sessions.POST("/:id/customer/resolve", h.Customer.Resolve)
		sessions.POST("/:id/customer", h.Customer.Create)
		sessions.DELETE("/:id/customer", h.Customer.Unbind)

		// Counter selector
		sessions.GET("/:id/counters", h.Counter.List)
		sessions.POST("/:id/counters/refresh", h.Counter.Refresh)
		sessions.POST("/:id/counters/select", h.Counter.Select)

		// Cart and payment
		sessions.POST("/:id/cart/lines", h.Cart.AddLot)
		sessions.PUT("/:id/cart/lines/:lot_id", h.Cart.SetQuantity)
		sessions.DELETE("/:id/cart/lines/:lot_id", h.Cart.RemoveLine)
		sessions.DELETE("/:id/cart", h.Cart.Clear)
		sessions.GET("/:id/totals", h.Cart.Totals)
		sessions.PUT("/:id/payment", h.Cart.SetPayment)

		// Commit and invoice
		sessions.POST("/:id/submit", h.Invoice.Submit)
		sessions.GET("/:id/invoice", h.Invoice.Get)
		sessions.POST("/:id/invoice/print", h.Invoice.Print)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
	}
}
