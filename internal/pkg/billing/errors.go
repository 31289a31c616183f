package billing

import "errors"

var (
	// ErrWebhookSecretMissing is returned when no signing secret is configured.
	ErrWebhookSecretMissing = errors.New("webhook signing secret is not configured")
	// ErrInvalidSignature wraps every signature verification failure.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrUnsupportedEvent is returned by DecodeEvent for types outside the allow-list.
	ErrUnsupportedEvent = errors.New("unsupported event type")
	// ErrMissingReference means the payload lacks a subscription or customer ID.
	ErrMissingReference = errors.New("event payload is missing a subscription or customer reference")
	// ErrUserNotFound means no local user owns the Stripe customer.
	ErrUserNotFound = errors.New("no user linked to stripe customer")
)
