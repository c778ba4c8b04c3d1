package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"linkhub/internal/capability"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string `env:"ENV" envDefault:"development"`

	// Server
	GatewayAddr string `env:"GATEWAY_ADDR" envDefault:":8000"`
	BackendAddr string `env:"BACKEND_ADDR" envDefault:":5000"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"` // Comma-separated allowed origins

	// Rate limiting, requests per minute per client IP, 0 disables.
	// The backend only sees the gateway's address, so it is off by default.
	RateLimit        int `env:"RATE_LIMIT" envDefault:"100"`
	BackendRateLimit int `env:"BACKEND_RATE_LIMIT" envDefault:"0"`

	// Store
	RedisURL string `env:"REDIS_URL" envDefault:"redis://db-redis:6379"`

	// Backend
	ServiceType string `env:"SERVICE_TYPE" envDefault:"all"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost"`

	// Gateway
	BackendURL      string        `env:"BACKEND_URL"`                          // Single remote backend for every capability
	RoutesFile      string        `env:"ROUTES_FILE" envDefault:"routes.yaml"` // Optional per-capability host overrides
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"3s"`
	NotifyTimeout   time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"100ms"`
	TrackTimeout    time.Duration `env:"TRACK_TIMEOUT" envDefault:"500ms"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"LOG_FILE"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// TLSEnabled returns true when both a certificate and a key are configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Capabilities resolves SERVICE_TYPE into the set this backend serves.
func (c *Config) Capabilities() (capability.Set, []string) {
	return capability.Parse(c.ServiceType)
}
