package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"
)

var relevantEvents = map[stripe.EventType]struct{}{
	stripe.EventTypeCheckoutSessionCompleted:    {},
	stripe.EventTypeCustomerSubscriptionUpdated: {},
	stripe.EventTypeCustomerSubscriptionDeleted: {},
}

// IsRelevantEvent reports whether the webhook acts on events of this type.
func IsRelevantEvent(t stripe.EventType) bool {
	_, ok := relevantEvents[t]
	return ok
}

// Event is a decoded relevant Stripe event. The set of implementations is
// closed; each one knows how to hand itself to a SubscriptionRecorder.
type Event interface {
	Type() stripe.EventType
	apply(ctx context.Context, rec SubscriptionRecorder) error
}

// SubscriptionChanged covers customer.subscription.updated and
// customer.subscription.deleted.
type SubscriptionChanged struct {
	SubscriptionID string
	CustomerID     string
	Deleted        bool
}

func (e SubscriptionChanged) Type() stripe.EventType {
	if e.Deleted {
		return stripe.EventTypeCustomerSubscriptionDeleted
	}
	return stripe.EventTypeCustomerSubscriptionUpdated
}

func (e SubscriptionChanged) apply(ctx context.Context, rec SubscriptionRecorder) error {
	return rec.SaveSubscription(ctx, e.SubscriptionID, e.CustomerID, false)
}

// CheckoutCompleted is checkout.session.completed; it creates the subscription.
type CheckoutCompleted struct {
	SubscriptionID string
	CustomerID     string
}

func (e CheckoutCompleted) Type() stripe.EventType {
	return stripe.EventTypeCheckoutSessionCompleted
}

func (e CheckoutCompleted) apply(ctx context.Context, rec SubscriptionRecorder) error {
	return rec.SaveSubscription(ctx, e.SubscriptionID, e.CustomerID, true)
}

// DecodeEvent turns a verified relevant Stripe event into its variant.
func DecodeEvent(evt stripe.Event) (Event, error) {
	if evt.Data == nil || len(evt.Data.Raw) == 0 {
		return nil, fmt.Errorf("event %s has no data object", evt.ID)
	}

	switch evt.Type {
	case stripe.EventTypeCustomerSubscriptionUpdated, stripe.EventTypeCustomerSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(evt.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		out := SubscriptionChanged{
			SubscriptionID: strings.TrimSpace(sub.ID),
			CustomerID:     customerID(sub.Customer),
			Deleted:        evt.Type == stripe.EventTypeCustomerSubscriptionDeleted,
		}
		if out.SubscriptionID == "" || out.CustomerID == "" {
			return nil, ErrMissingReference
		}
		return out, nil

	case stripe.EventTypeCheckoutSessionCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}
		out := CheckoutCompleted{CustomerID: customerID(session.Customer)}
		if session.Subscription != nil {
			out.SubscriptionID = strings.TrimSpace(session.Subscription.ID)
		}
		if out.SubscriptionID == "" || out.CustomerID == "" {
			return nil, ErrMissingReference
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEvent, evt.Type)
	}
}

// Dispatch decodes evt and forwards it to rec.
func Dispatch(ctx context.Context, rec SubscriptionRecorder, evt stripe.Event) error {
	decoded, err := DecodeEvent(evt)
	if err != nil {
		return err
	}
	return decoded.apply(ctx, rec)
}

func customerID(c *stripe.Customer) string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.ID)
}
