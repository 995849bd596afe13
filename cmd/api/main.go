package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pharmatill/terminal-api/internal/application/service"
	"github.com/pharmatill/terminal-api/internal/checkout"
	"github.com/pharmatill/terminal-api/internal/config"
	"github.com/pharmatill/terminal-api/internal/domain/entity"
	"github.com/pharmatill/terminal-api/internal/presentation/http/handler"
	"github.com/pharmatill/terminal-api/internal/presentation/http/routes"
	"github.com/pharmatill/terminal-api/internal/upstream"
	"github.com/pharmatill/terminal-api/internal/validation"
	"github.com/pharmatill/terminal-api/pkg/events"
	"github.com/pharmatill/terminal-api/pkg/printer"
	"github.com/pharmatill/terminal-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret)

	// Platform API client
	platformAPI := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)

	// Session registry and push-event bus
	store := checkout.NewStore(cfg.Checkout.SessionTTL, time.Minute)
	defer store.Stop()
	bus := events.NewBus()

	// Request validator
	validate := validation.New()

	// Initialize services
	counterService := service.NewCounterService(platformAPI)
	checkoutService := service.NewCheckoutService(platformAPI, store, counterService, bus, cfg.Checkout.Debounce())
	catalogService := service.NewCatalogService(platformAPI, cfg.Checkout.SearchLimit)
	customerService := service.NewCustomerService(platformAPI, cfg.Checkout.SearchLimit)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, entity.ReceiptHeader{
		PharmacyName: cfg.Pharmacy.Name,
		Address:      cfg.Pharmacy.Address,
		Phone:        cfg.Pharmacy.Phone,
	}, cfg.Printer.Type)

	// Initialize handlers
	handlers := &routes.Handlers{
		Session:  handler.NewSessionHandler(checkoutService),
		Catalog:  handler.NewCatalogHandler(checkoutService, catalogService),
		Customer: handler.NewCustomerHandler(checkoutService, customerService, validate),
		Counter:  handler.NewCounterHandler(checkoutService, counterService, validate),
		Cart:     handler.NewCartHandler(checkoutService, validate),
		Invoice:  handler.NewInvoiceHandler(checkoutService, printerService),
		Printer:  handler.NewPrinterHandler(printerService),
		Webhook:  handler.NewWebhookHandler(bus, validate),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)
	log.Printf("Platform API: %s", cfg.Upstream.BaseURL)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
