package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	StripeSecretKey     string
	StripeWebhookSecret string
	FrontendBaseURL     string
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	EmailFrom           string
	AdminEmail          string
	TokenSecret         string
	OrderExpiry         time.Duration
	ExpirePollInterval  time.Duration
	ExpireBatchSize     int
	ShutdownTimeout     time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultTokenSecret        = "change-me-in-production"
	defaultSMTPPort           = 587
	defaultOrderExpiry        = 30 * time.Minute
	defaultExpirePollInterval = time.Minute
	defaultExpireBatchSize    = 32
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		StripeSecretKey:     getString(lookup, "STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getString(lookup, "STRIPE_WEBHOOK_SECRET", ""),
		FrontendBaseURL:     getString(lookup, "FRONTEND_URL", ""),
		SMTPHost:            getString(lookup, "EMAIL_HOST", ""),
		SMTPPort:            getInt(lookup, "EMAIL_PORT", defaultSMTPPort),
		SMTPUsername:        getString(lookup, "EMAIL_USER", ""),
		SMTPPassword:        getString(lookup, "EMAIL_PASSWORD", ""),
		EmailFrom:           getString(lookup, "EMAIL_FROM", ""),
		AdminEmail:          getString(lookup, "ADMIN_ORDER_EMAIL", ""),
		TokenSecret:         getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		OrderExpiry:         getDuration(lookup, "ORDER_EXPIRY", defaultOrderExpiry),
		ExpirePollInterval:  getDuration(lookup, "EXPIRE_POLL_INTERVAL", defaultExpirePollInterval),
		ExpireBatchSize:     getInt(lookup, "EXPIRE_BATCH_SIZE", defaultExpireBatchSize),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		orderExpiryStr     = cfg.OrderExpiry.String()
		pollIntervalStr    = cfg.ExpirePollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.FrontendBaseURL, "frontend-url", cfg.FrontendBaseURL, "Externally visible storefront base URL")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing admin tokens")
	fs.StringVar(&orderExpiryStr, "order-expiry", orderExpiryStr, "Age after which unpaid orders are cancelled")
	fs.StringVar(&pollIntervalStr, "expire-poll-interval", pollIntervalStr, "Interval between expiry sweeps")
	fs.IntVar(&cfg.ExpireBatchSize, "expire-batch", cfg.ExpireBatchSize, "Maximum orders cancelled per sweep")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.OrderExpiry, err = time.ParseDuration(orderExpiryStr); err != nil {
		return nil, fmt.Errorf("invalid order expiry: %w", err)
	}

	if cfg.ExpirePollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid expire poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.OrderExpiry <= 0 {
		cfg.OrderExpiry = defaultOrderExpiry
	}

	if cfg.ExpirePollInterval <= 0 {
		cfg.ExpirePollInterval = defaultExpirePollInterval
	}

	if cfg.ExpireBatchSize <= 0 {
		cfg.ExpireBatchSize = defaultExpireBatchSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("stripe secret key must be provided")
	}

	if cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("stripe webhook secret must be provided")
	}

	if cfg.FrontendBaseURL == "" {
		return nil, fmt.Errorf("frontend base URL must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
