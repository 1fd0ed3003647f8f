// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	CORSOrigins []string

	// JWTSecret signs and verifies bearer tokens. Required.
	JWTSecret string

	// Rates are the configured CAD/USD rates. Each direction is independent.
	Rates domain.ExchangeRateSet

	// PrimaryCurrency is the currency grand totals are reported in. Defaults to CAD.
	PrimaryCurrency domain.Currency

	// S3 locates the receipts bucket. Receipts are stored inline when Bucket is empty.
	S3 S3Config

	MaxUploadBytes        int64
	MaxInlineReceiptBytes int

	// UploadTimeout bounds the primary receipt store attempt.
	UploadTimeout time.Duration

	// LoadTimeout bounds each dashboard data source load.
	LoadTimeout time.Duration

	// AutoMigrate applies pending goose migrations at startup.
	AutoMigrate bool
}

// S3Config mirrors the S3_* variables.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

// Enabled reports whether object storage is configured.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory seeds variables that are not already set.
// Returns an error listing every missing required variable and every invalid value.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		S3: S3Config{
			Bucket:          os.Getenv("S3_BUCKET"),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			PublicBaseURL:   os.Getenv("S3_PUBLIC_BASE_URL"),
		},
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	p := parser{invalid: &invalid}
	cfg.Rates = domain.ExchangeRateSet{
		CADToUSD: p.rate("CAD_TO_USD", "0.74"),
		USDToCAD: p.rate("USD_TO_CAD", "1.35"),
	}
	cfg.PrimaryCurrency = p.currency("PRIMARY_CURRENCY", "CAD")
	cfg.MaxUploadBytes = int64(p.positiveInt("MAX_UPLOAD_BYTES", 10<<20))
	cfg.MaxInlineReceiptBytes = p.positiveInt("MAX_INLINE_RECEIPT_BYTES", 2<<20)
	cfg.UploadTimeout = p.duration("UPLOAD_TIMEOUT", 20*time.Second)
	cfg.LoadTimeout = p.duration("LOAD_TIMEOUT", 10*time.Second)
	cfg.AutoMigrate = p.boolean("AUTO_MIGRATE", false)

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, "; "))
	}
	return cfg, nil
}

// parser reads typed variables, recording each bad value instead of
// stopping at the first so operators see every problem at once.
type parser struct {
	invalid *[]string
}

func (p parser) fail(key, raw, reason string) {
	*p.invalid = append(*p.invalid, fmt.Sprintf("%s=%q %s", key, raw, reason))
}

func (p parser) rate(key, fallback string) decimal.Decimal {
	raw := getEnv(key, fallback)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !d.IsPositive() {
		p.fail(key, raw, "must be a positive decimal")
		return decimal.Zero
	}
	return d
}

func (p parser) currency(key, fallback string) domain.Currency {
	raw := getEnv(key, fallback)
	c, err := domain.ParseCurrency(raw)
	if err != nil {
		p.fail(key, raw, "must be CAD or USD")
	}
	return c
}

func (p parser) positiveInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		p.fail(key, raw, "must be a positive integer")
		return fallback
	}
	return n
}

func (p parser) duration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		p.fail(key, raw, "must be a positive duration such as 10s")
		return fallback
	}
	return d
}

func (p parser) boolean(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		p.fail(key, raw, "must be true or false")
		return fallback
	}
	return b
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
