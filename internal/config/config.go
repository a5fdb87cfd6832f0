// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/config"
	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/validator"
)

// Config holds all configuration for the inventory API.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"INVENTORY_HTTP_PORT" envDefault:"8080" validate:"gte=1,lte=65535"`
	// WriteTimeoutSecs bounds a full pipeline run for one request. Deep
	// category browses over a cold cache are slow, hence the generous
	// default.
	WriteTimeoutSecs int `env:"SERVER_WRITE_TIMEOUT_SECONDS" envDefault:"300" validate:"gt=0"`

	// API key guarding the inventory route.
	APIKeyHeader string `env:"INVENTORY_API_KEY_HEADER" envDefault:"X-Inventory-Key"`
	APIKey       string `env:"INVENTORY_API_KEY"`

	// Cache-Control max-age on inventory responses, 0 disables.
	HTTPCacheMaxAge int `env:"INVENTORY_HTTP_CACHE_SECONDS" envDefault:"0" validate:"gte=0"`

	// PostgreSQL (the live catalog store)
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"kubik"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"kubik_secret"`
	PostgresDB   string `env:"CATALOG_DB_NAME" envDefault:"kubik_catalog"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Database pool
	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`

	// Redis (resolved id-set cache)
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	// CacheTTLSecs is the memoization window of resolved id sets.
	CacheTTLSecs int `env:"INVENTORY_CACHE_TTL_SECONDS" envDefault:"300" validate:"gt=0"`

	// Pipeline tuning
	PageSize       int `env:"INVENTORY_PAGE_SIZE" envDefault:"50" validate:"gt=0"`
	TitleCap       int `env:"INVENTORY_TITLE_CAP" envDefault:"1000" validate:"gt=0"`
	SKUCap         int `env:"INVENTORY_SKU_CAP" envDefault:"1000" validate:"gt=0"`
	AttributeCap   int `env:"INVENTORY_ATTRIBUTE_CAP" envDefault:"500" validate:"gt=0"`
	DescriptionCap int `env:"INVENTORY_DESCRIPTION_CAP" envDefault:"200" validate:"gt=0"`
	BrowseCap      int `env:"INVENTORY_BROWSE_CAP" envDefault:"2000" validate:"gt=0"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0" validate:"gte=0,lte=1"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"10.0.0.0/8,172.16.0.0/12,192.168.0.0/16,127.0.0.0/8,::1/128" envSeparator:","`

	// Slow query logging
	SlowQueryThresholdMs int `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load inventory config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if err := validator.Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.APIKey == "" && c.Environment != "development" {
		return fmt.Errorf("INVENTORY_API_KEY is required outside development")
	}
	return nil
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSL,
	)
}

// CacheTTL returns the id-set memoization window as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSecs) * time.Second
}

// WriteTimeout returns the HTTP server write timeout as a duration.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSecs) * time.Second
}
