package billing

import (
	"strings"
	"time"

	"github.com/ignews/ignews/internal/pkg/env"
)

const (
	defaultMaxBodyBytes   = 1 << 20 // 1 MiB
	defaultHandlerTimeout = 15 * time.Second
	defaultTolerance      = 300 * time.Second
)

// StripeConfig carries everything the webhook endpoint needs from Stripe.
// It is built once at startup and passed to constructors.
type StripeConfig struct {
	WebhookSecret  string
	APIKey         string
	Tolerance      time.Duration
	MaxBodyBytes   int64
	HandlerTimeout time.Duration
}

// StripeConfigFromEnv reads STRIPE_* settings.
func StripeConfigFromEnv() StripeConfig {
	return StripeConfig{
		WebhookSecret:  strings.TrimSpace(env.GetEnv("STRIPE_WEBHOOK_SECRET", "")),
		APIKey:         strings.TrimSpace(env.GetEnv("STRIPE_API_KEY", "")),
		Tolerance:      time.Duration(env.GetEnvInt("STRIPE_TOLERANCE_SECONDS", int(defaultTolerance/time.Second))) * time.Second,
		MaxBodyBytes:   int64(env.GetEnvInt("STRIPE_WEBHOOK_MAX_BODY_BYTES", defaultMaxBodyBytes)),
		HandlerTimeout: time.Duration(env.GetEnvInt("STRIPE_WEBHOOK_TIMEOUT_SECONDS", int(defaultHandlerTimeout/time.Second))) * time.Second,
	}
}

// Normalized returns the config with zero values replaced by defaults, so a
// literal StripeConfig{WebhookSecret: ...} is usable.
func (c StripeConfig) Normalized() StripeConfig {
	if c.Tolerance <= 0 {
		c.Tolerance = defaultTolerance
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
	if c.HandlerTimeout <= 0 {
		c.HandlerTimeout = defaultHandlerTimeout
	}
	return c
}
