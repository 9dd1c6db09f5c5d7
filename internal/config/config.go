package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/nmarker/unishopping/pkg/config"
)

// Config holds all configuration for the storefront server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Simulated payment gateway
	GatewaySuccessRate float64       `env:"GATEWAY_SUCCESS_RATE" envDefault:"0.9"`
	GatewayDelay       time.Duration `env:"GATEWAY_DELAY" envDefault:"2s"`

	// Bound on a single checkout submission; a gateway call that exceeds it
	// resolves the attempt as failed with a timeout error.
	SubmitTimeout time.Duration `env:"CHECKOUT_SUBMIT_TIMEOUT" envDefault:"10s"`

	// Rate limiting
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.GatewaySuccessRate < 0 || c.GatewaySuccessRate > 1 {
		return fmt.Errorf("gateway success rate must be in [0, 1], got %g", c.GatewaySuccessRate)
	}
	if c.SubmitTimeout <= 0 {
		return fmt.Errorf("checkout submit timeout must be positive, got %s", c.SubmitTimeout)
	}
	return nil
}
