package config

import (
	"testing"
	"time"
)

func lookupFrom(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URI":          "postgres://localhost/storefront",
		"STRIPE_SECRET_KEY":     "sk_test_123",
		"STRIPE_WEBHOOK_SECRET": "whsec_123",
		"FRONTEND_URL":          "https://shop.example.com",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(baseEnv()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != defaultRunAddress {
		t.Fatalf("unexpected run address %s", cfg.RunAddress)
	}
	if cfg.OrderExpiry != defaultOrderExpiry {
		t.Fatalf("unexpected order expiry %s", cfg.OrderExpiry)
	}
	if cfg.SMTPPort != defaultSMTPPort {
		t.Fatalf("unexpected smtp port %d", cfg.SMTPPort)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	for _, key := range []string{"DATABASE_URI", "STRIPE_SECRET_KEY", "STRIPE_WEBHOOK_SECRET", "FRONTEND_URL"} {
		env := baseEnv()
		delete(env, key)
		if _, err := load(nil, lookupFrom(env)); err == nil {
			t.Fatalf("expected error when %s is missing", key)
		}
	}
}

func TestLoadFlagOverrides(t *testing.T) {
	cfg, err := load([]string{"-a", ":9090", "-order-expiry", "15m"}, lookupFrom(baseEnv()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":9090" {
		t.Fatalf("flag override not applied, got %s", cfg.RunAddress)
	}
	if cfg.OrderExpiry != 15*time.Minute {
		t.Fatalf("unexpected order expiry %s", cfg.OrderExpiry)
	}
}

func TestLoadEnvValues(t *testing.T) {
	env := baseEnv()
	env["ORDER_EXPIRY"] = "1h"
	env["EXPIRE_BATCH_SIZE"] = "5"
	env["EMAIL_PORT"] = "2525"
	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OrderExpiry != time.Hour {
		t.Fatalf("unexpected order expiry %s", cfg.OrderExpiry)
	}
	if cfg.ExpireBatchSize != 5 {
		t.Fatalf("unexpected batch size %d", cfg.ExpireBatchSize)
	}
	if cfg.SMTPPort != 2525 {
		t.Fatalf("unexpected smtp port %d", cfg.SMTPPort)
	}
}

func TestLoadNormalizesNonPositive(t *testing.T) {
	env := baseEnv()
	env["EXPIRE_BATCH_SIZE"] = "-1"
	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ExpireBatchSize != defaultExpireBatchSize {
		t.Fatalf("expected default batch size, got %d", cfg.ExpireBatchSize)
	}
}
