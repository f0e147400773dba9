package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string `env:"APP_NAME" envDefault:"Bookstore API"`
	Environment string `env:"APP_ENV" envDefault:"development"` // development, staging, production
	Port        string `env:"APP_PORT" envDefault:"3000"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
	Debug       bool   `env:"APP_DEBUG" envDefault:"false"`

	// CIDRs/IPs allowed to set X-Forwarded-For; empty means the socket peer is the client
	TrustedProxies []string `env:"APP_TRUSTED_PROXIES" envSeparator:","`
}

type DatabaseConfig struct {
	Host              string        `env:"DB_HOST" envDefault:"localhost"`
	Port              int           `env:"DB_PORT" envDefault:"5432"`
	User              string        `env:"DB_USER" envDefault:"postgres"`
	Password          string        `env:"DB_PASSWORD"`
	Database          string        `env:"DB_NAME" envDefault:"bookstore"`
	SSLMode           string        `env:"DB_SSLMODE" envDefault:"disable"`
	MinConns          int           `env:"DB_MIN_CONNS" envDefault:"2"`
	MaxConns          int           `env:"DB_MAX_CONNS" envDefault:"10"`
	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"5m"`
	MaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"1m"`
	HealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	MaxRetries        int           `env:"DB_MAX_RETRIES" envDefault:"5"`
	RetryDelay        time.Duration `env:"DB_RETRY_DELAY" envDefault:"1s"`
	ConnectTimeout    time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`
	Bootstrap         bool          `env:"DB_BOOTSTRAP" envDefault:"false"`
}

type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"true"`
	Host     string `env:"REDIS_HOST" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET" envDefault:"your-secret-key-change-in-production"`
	Expiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
}

// RateLimitConfig bounds login attempts per client IP.
type RateLimitConfig struct {
	LoginMax    int           `env:"RATE_LIMIT_LOGIN_MAX" envDefault:"10"`
	LoginWindow time.Duration `env:"RATE_LIMIT_LOGIN_WINDOW" envDefault:"1m"`
}

// Load đọc config từ .env (nếu có) và environment variables
func Load() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Database.MinConns <= 0 || c.Database.MaxConns <= 0 {
		return errors.New("DB_MIN_CONNS and DB_MAX_CONNS must be positive")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}

	// Production environment phải có JWT secret
	if c.IsProduction() {
		if c.UsesDefaultJWTSecret() {
			return errors.New("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return errors.New("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

func (c *Config) UsesDefaultJWTSecret() bool {
	return c.JWT.Secret == defaultJWTSecret
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
