package config

import (
	"errors"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr == "" {
		t.Error("expected a default HTTP address")
	}
	if cfg.MetricsAddr == "" {
		t.Error("expected a default metrics address")
	}
	if cfg.RateLimitPerIP <= 0 {
		t.Errorf("expected a positive default rate limit, got %d", cfg.RateLimitPerIP)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_HTTP_ADDR", ":9999")
	t.Setenv("RATE_LIMIT_PER_IP", "7")
	t.Setenv("WEBHOOK_URL", "http://engine:8090/hook")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q, want :9999", cfg.HTTPAddr)
	}
	if cfg.RateLimitPerIP != 7 {
		t.Errorf("RateLimitPerIP = %d, want 7", cfg.RateLimitPerIP)
	}
	if cfg.WebhookURL != "http://engine:8090/hook" {
		t.Errorf("WebhookURL = %q", cfg.WebhookURL)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		AppEnv:         "dev",
		HTTPAddr:       ":8080",
		MetricsAddr:    ":9090",
		AdminAPIKey:    "admin-123",
		RateLimitPerIP: 100,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		field   string
	}{
		{"valid dev config", func(c *Config) {}, false, ""},
		{"empty http addr", func(c *Config) { c.HTTPAddr = "" }, true, "APP_HTTP_ADDR"},
		{"empty metrics addr", func(c *Config) { c.MetricsAddr = "" }, true, "METRICS_ADDR"},
		{"zero rate limit", func(c *Config) { c.RateLimitPerIP = 0 }, true, "RATE_LIMIT_PER_IP"},
		{"negative rate limit", func(c *Config) { c.RateLimitPerIP = -5 }, true, "RATE_LIMIT_PER_IP"},
		{"default key in prod", func(c *Config) { c.AppEnv = "prod" }, true, "ADMIN_API_KEY"},
		{"custom key in prod", func(c *Config) { c.AppEnv = "prod"; c.AdminAPIKey = "real-secret" }, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var vErr ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if vErr.Field != tt.field {
					t.Errorf("error field = %q, want %q", vErr.Field, tt.field)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
