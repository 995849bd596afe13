package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Upstream  UpstreamConfig
	JWT       JWTConfig
	Checkout  CheckoutConfig
	Pharmacy  PharmacyConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// UpstreamConfig points the gateway at the pharmacy platform API.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type JWTConfig struct {
	Secret string
}

// CheckoutConfig tunes the session engine.
type CheckoutConfig struct {
	DebounceMS  int
	SearchLimit int
	SessionTTL  time.Duration
}

// PharmacyConfig is the receipt header identity.
type PharmacyConfig struct {
	Name    string
	Address string
	Phone   string
}

// PrinterConfig selects the thermal printer backend.
type PrinterConfig struct {
	Type    string // usb, network or none
	USBPath string
	Address string
	Width   int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "terminal-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("UPSTREAM_BASE_URL", "http://localhost:9000")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 15)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("CHECKOUT_DEBOUNCE_MS", 300)
	viper.SetDefault("CHECKOUT_SEARCH_LIMIT", 20)
	viper.SetDefault("CHECKOUT_SESSION_TTL_MINUTES", 120)
	viper.SetDefault("PHARMACY_NAME", "PharmaTill")
	viper.SetDefault("PHARMACY_ADDRESS", "")
	viper.SetDefault("PHARMACY_PHONE", "")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Upstream: UpstreamConfig{
			BaseURL: viper.GetString("UPSTREAM_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second,
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Checkout: CheckoutConfig{
			DebounceMS:  viper.GetInt("CHECKOUT_DEBOUNCE_MS"),
			SearchLimit: viper.GetInt("CHECKOUT_SEARCH_LIMIT"),
			SessionTTL:  time.Duration(viper.GetInt("CHECKOUT_SESSION_TTL_MINUTES")) * time.Minute,
		},
		Pharmacy: PharmacyConfig{
			Name:    viper.GetString("PHARMACY_NAME"),
			Address: viper.GetString("PHARMACY_ADDRESS"),
			Phone:   viper.GetString("PHARMACY_PHONE"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

// Debounce returns the search quiescence window as a duration.
func (c *CheckoutConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}
