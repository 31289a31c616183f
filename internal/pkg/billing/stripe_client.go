package billing

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// SubscriptionFetcher loads the authoritative subscription state from Stripe.
type SubscriptionFetcher interface {
	FetchSubscription(ctx context.Context, subscriptionID string) (*SubscriptionSnapshot, error)
}

type stripeSubscriptionFetcher struct {
	api *client.API
}

// NewStripeSubscriptionFetcher creates a fetcher backed by the Stripe API.
func NewStripeSubscriptionFetcher(apiKey string) SubscriptionFetcher {
	return &stripeSubscriptionFetcher{api: client.New(strings.TrimSpace(apiKey), nil)}
}

func (f *stripeSubscriptionFetcher) FetchSubscription(ctx context.Context, subscriptionID string) (*SubscriptionSnapshot, error) {
	id := strings.TrimSpace(subscriptionID)
	if id == "" {
		return nil, errors.New("subscription id is required")
	}
	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	sub, err := f.api.Subscriptions.Get(id, params)
	if err != nil {
		return nil, err
	}
	return snapshotFromStripe(sub), nil
}

func snapshotFromStripe(sub *stripe.Subscription) *SubscriptionSnapshot {
	snap := &SubscriptionSnapshot{
		ID:                sub.ID,
		Status:            string(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}
	if sub.Customer != nil {
		snap.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil {
		for _, item := range sub.Items.Data {
			if item != nil && item.Price != nil && item.Price.ID != "" {
				snap.PriceID = item.Price.ID
				break
			}
		}
	}
	return snap
}
