// Package config provides configuration management for the roomcare application.
//
// This package handles loading configuration from environment variables,
// validating required settings, and providing sensible defaults for optional
// parameters. Configuration is loaded once at startup and remains immutable
// during runtime for thread-safety.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (highest priority)
//  2. External .env file (fallback, loaded via godotenv)
//  3. Hard-coded defaults (lowest priority)
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
//
// This struct is immutable after creation to ensure thread-safety.
// Sink credentials are intentionally optional: an unconfigured sink
// degrades to always-fail-soft instead of blocking startup.
type Config struct {
	// HTTP server
	ListenPort string // Port for the HTTP server

	// Telegram chat sink (optional, sink soft-skips if not set)
	TelegramBotToken string // Telegram bot API token
	TelegramChatID   string // Telegram chat ID for alerts

	// Google Sheets ledger sink (optional, sink soft-skips if not set)
	GoogleCredentialsFile string // Path to service-account credentials JSON
	GoogleSheetID         string // Spreadsheet ID of the request ledger

	// Deep links
	BaseURL string // Base address for room deep links and QR codes

	// Optional description translation for chat alerts
	TranslateAPIKey string // Google Cloud Translation API key

	// Timing configuration
	SinkTimeout time.Duration // Per-sink delivery deadline during fan-out
	HTTPTimeout time.Duration // Outbound HTTP client timeout

	// Debug mode - sinks simulate their API calls for testing
	DebugMode bool
}

// LoadConfig loads configuration from environment variables with defaults.
//
// Loading process:
//  1. Try to load an external .env file (optional)
//  2. Read environment variables
//  3. Apply hard-coded defaults for any missing optional values
//  4. Validate that values are sensible
//
// Missing Telegram or Google Sheets credentials are NOT an error: the
// corresponding sink reports failure per submission instead of crashing
// the service.
//
// Returns:
//   - *Config: Fully populated configuration struct
//   - error: Validation error if a value is out of range
func LoadConfig() (*Config, error) {
	// External .env is optional; environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		ListenPort: getEnvOrDefault("LISTEN_PORT", "8080"),

		// Sink credentials - optional, sinks soft-skip when unset
		TelegramBotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:        os.Getenv("TELEGRAM_CHAT_ID"),
		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		GoogleSheetID:         os.Getenv("GOOGLE_SHEET_ID"),

		BaseURL: getEnvOrDefault("BASE_URL", "https://example.com"),

		TranslateAPIKey: os.Getenv("GOOGLE_TRANSLATE_API_KEY"),

		SinkTimeout: getEnvDuration("SINK_TIMEOUT", 10*time.Second),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		DebugMode: getEnvOrDefault("DEBUG_MODE", "false") == "true",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that configuration values are sensible.
//
// Validation rules:
//   - ListenPort must parse as a positive integer
//   - BaseURL must be non-empty (QR deep links depend on it)
//   - Timeouts must be positive
//
// Returns:
//   - error: Descriptive error if validation fails, nil if all checks pass
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.ListenPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("LISTEN_PORT must be a valid port, got %q", c.ListenPort)
	}

	if c.BaseURL == "" {
		return fmt.Errorf("BASE_URL cannot be empty")
	}

	if c.SinkTimeout <= 0 {
		return fmt.Errorf("SINK_TIMEOUT must be positive, got %v", c.SinkTimeout)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.HTTPTimeout)
	}

	return nil
}

// Helper functions for environment variable parsing

// getEnvOrDefault returns the environment variable value or a default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration returns the environment variable as a duration or a default if not set/invalid.
//
// Accepts standard Go duration strings like "5s", "10m", "1h30m"
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
