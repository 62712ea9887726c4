// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"mpesa-forms/backend/internal/loan"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// DatabaseURL is the Postgres DSN used by the account lookups, seed and migrate commands.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// RedisAddr is the Redis address for verification code storage (e.g. localhost:6379).
	// Empty means codes are kept in process memory.
	RedisAddr string `mapstructure:"REDIS_ADDR"`
	// BcryptCost is the bcrypt cost factor (4–31) for PIN and password hashes; default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
	// LogMode selects the zap preset: "production" or anything else for development.
	LogMode string `mapstructure:"LOG_MODE"`
	// LoanTiers is the comma-separated balance:amount list, e.g. "0:0,1000:500,5000:2000".
	LoanTiers string `mapstructure:"LOAN_TIERS"`
	// VerificationCodeTTL is how long an issued verification code stays valid (e.g. "10m").
	VerificationCodeTTL string `mapstructure:"VERIFICATION_CODE_TTL"`
	// VerificationReturnToClient exposes issued codes to the caller instead of sending them.
	// Dev only; Load fails when it is set with APP_ENV=production.
	VerificationReturnToClient bool `mapstructure:"VERIFICATION_RETURN_TO_CLIENT"`

	// OTLPEndpoint is the OTLP gRPC collector endpoint; empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces a plaintext connection to the collector.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	// ServiceName is reported as service.name on traces and metrics.
	ServiceName string `mapstructure:"OTEL_SERVICE_NAME"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("APP_ENV", "")
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("LOAN_TIERS", "0:0,1000:500,5000:2000")
	v.SetDefault("VERIFICATION_CODE_TTL", "10m")
	v.SetDefault("VERIFICATION_RETURN_TO_CLIENT", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("OTEL_SERVICE_NAME", "mpesa-forms")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.VerificationReturnToClient && cfg.Env == "production" {
		return nil, errors.New("config: VERIFICATION_RETURN_TO_CLIENT must not be true when APP_ENV=production")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	if _, err := loan.ParseTiers(cfg.LoanTiers); err != nil {
		return nil, fmt.Errorf("config: LOAN_TIERS: %w", err)
	}

	return &cfg, nil
}

// Tiers parses LoanTiers. Load has already validated the value, so an error here means the
// struct was built by hand.
func (c *Config) Tiers() (loan.Tiers, error) {
	return loan.ParseTiers(c.LoanTiers)
}

// CodeTTL parses VerificationCodeTTL as a time.Duration. Returns 10m if unset or invalid.
func (c *Config) CodeTTL() time.Duration {
	d, err := time.ParseDuration(c.VerificationCodeTTL)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}
