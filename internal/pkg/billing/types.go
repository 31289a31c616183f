package billing

import (
	"context"

	"github.com/ignews/ignews/app/models"
)

// SubscriptionRecorder persists subscription state changes reported by Stripe.
type SubscriptionRecorder interface {
	SaveSubscription(ctx context.Context, subscriptionID, customerID string, isNew bool) error
}

// EventLog keeps an audit trail of verified webhook deliveries. RecordWebhookEvent
// reports created=false when the Stripe event ID is already on record and
// returns the stored row.
type EventLog interface {
	RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.WebhookEvent, error)
	MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error
}

// SubscriptionSnapshot is the subset of a Stripe subscription stored locally.
type SubscriptionSnapshot struct {
	ID                string
	CustomerID        string
	Status            string
	PriceID           string
	CancelAtPeriodEnd bool
}

// WebhookEventInput is the normalized input for the webhook audit ledger.
type WebhookEventInput struct {
	StripeEventID string
	EventType     string
	Relevant      bool
}
