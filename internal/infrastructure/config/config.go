// Package config defines the process configuration. It is loaded once in
// main and passed explicitly to every component that needs it; nothing else
// in the codebase reads environment variables.
package config

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionCookie is the fixed name of the session cookie.
	SessionCookie string `env:"SESSION_COOKIE, default=horizon-session"`

	// ShareableKey is the hex-encoded 32-byte key sealing shareable
	// account identifiers.
	ShareableKey string `env:"SHAREABLE_KEY"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Identity   IdentityConfig
	Aggregator AggregatorConfig
	Payments   PaymentsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=horizon"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type IdentityConfig struct {
	BaseURL   string        `env:"IDENTITY_BASE_URL"`
	ProjectID string        `env:"IDENTITY_PROJECT_ID"`
	APIKey    string        `env:"IDENTITY_API_KEY"`
	Timeout   time.Duration `env:"IDENTITY_TIMEOUT, default=15s"`
}

type AggregatorConfig struct {
	BaseURL  string        `env:"AGGREGATOR_BASE_URL"`
	ClientID string        `env:"AGGREGATOR_CLIENT_ID"`
	Secret   string        `env:"AGGREGATOR_SECRET"`
	Timeout  time.Duration `env:"AGGREGATOR_TIMEOUT, default=30s"`
}

type PaymentsConfig struct {
	BaseURL string        `env:"PAYMENTS_BASE_URL"`
	Key     string        `env:"PAYMENTS_KEY"`
	Secret  string        `env:"PAYMENTS_SECRET"`
	Timeout time.Duration `env:"PAYMENTS_TIMEOUT, default=20s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// ShareableKeyBytes decodes and validates the shareable-identifier key.
func (c *Config) ShareableKeyBytes() ([]byte, error) {
	key, err := hex.DecodeString(c.ShareableKey)
	if err != nil {
		return nil, fmt.Errorf("config: SHAREABLE_KEY is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("config: SHAREABLE_KEY must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}
