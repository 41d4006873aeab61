// Package config provides application configuration loading from environment variables and .env files.
// It uses viper for flexible configuration management with sensible defaults.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from environment variables or .env file.
// Configuration priority: environment variables > .env file > defaults.
type Config struct {
	AppEnv         string // Application environment (dev, staging, prod)
	HTTPAddr       string // HTTP server bind address (e.g., ":8080")
	MetricsAddr    string // Metrics server bind address
	AdminAPIKey    string // Admin API key for write operations
	RateLimitPerIP int    // Rate limit for write requests per IP
	SeedMetadata   bool   // Seed the metadata directory with the stock entries
	SeedExamples   bool   // Seed the strategy store with the example documents
	WebhookURL     string // Engine notification endpoint (empty disables webhooks)
	WebhookSecret  string // HMAC secret for signing webhook payloads
}

// Load reads configuration from environment variables and .env file (if present).
// Environment variables take precedence over .env file values.
// Returns a Config struct with all values populated (either from env or defaults).
func Load() (*Config, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigFile(".env") // Optional; silently ignored if file doesn't exist
	_ = viperInstance.ReadInConfig()    // Ignore error - .env is optional
	viperInstance.AutomaticEnv()        // Read from environment variables

	setConfigDefaults(viperInstance)

	return &Config{
		AppEnv:         viperInstance.GetString("APP_ENV"),
		HTTPAddr:       viperInstance.GetString("APP_HTTP_ADDR"),
		MetricsAddr:    viperInstance.GetString("METRICS_ADDR"),
		AdminAPIKey:    viperInstance.GetString("ADMIN_API_KEY"),
		RateLimitPerIP: viperInstance.GetInt("RATE_LIMIT_PER_IP"),
		SeedMetadata:   viperInstance.GetBool("SEED_METADATA"),
		SeedExamples:   viperInstance.GetBool("SEED_EXAMPLES"),
		WebhookURL:     viperInstance.GetString("WEBHOOK_URL"),
		WebhookSecret:  viperInstance.GetString("WEBHOOK_SECRET"),
	}, nil
}

// setConfigDefaults sets default values for all configuration options.
// These defaults are suitable for local development but should be overridden in production.
func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_HTTP_ADDR", ":8080")
	v.SetDefault("METRICS_ADDR", ":9090")
	v.SetDefault("ADMIN_API_KEY", "admin-123") // Change in production!
	v.SetDefault("RATE_LIMIT_PER_IP", 100)
	v.SetDefault("SEED_METADATA", true)
	v.SetDefault("SEED_EXAMPLES", false)
	v.SetDefault("WEBHOOK_URL", "")
	v.SetDefault("WEBHOOK_SECRET", "")
}

// ValidationError represents a configuration validation error with details about what failed.
type ValidationError struct {
	Field   string // Name of the configuration field
	Message string // Human-readable error message
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed [%s]: %s", e.Field, e.Message)
}

// Validate checks that the configuration is suitable for use.
//
// This performs stricter validation than Load() and is intended to be called
// at application startup to fail fast on misconfiguration.
//
// Validation Rules:
//  1. HTTPAddr must be non-empty
//  2. MetricsAddr must be non-empty
//  3. RateLimitPerIP must be positive
//
// In production (AppEnv "prod"), the admin API key must not be the
// default value.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return ValidationError{
			Field:   "APP_HTTP_ADDR",
			Message: "HTTP server address cannot be empty",
		}
	}

	if c.MetricsAddr == "" {
		return ValidationError{
			Field:   "METRICS_ADDR",
			Message: "metrics server address cannot be empty",
		}
	}

	if c.RateLimitPerIP <= 0 {
		return ValidationError{
			Field:   "RATE_LIMIT_PER_IP",
			Message: "rate limit must be positive",
		}
	}

	if c.AppEnv == "prod" || c.AppEnv == "production" {
		if c.AdminAPIKey == "admin-123" {
			return ValidationError{
				Field:   "ADMIN_API_KEY",
				Message: "default admin API key 'admin-123' is not allowed in production",
			}
		}
	}

	return nil
}
