package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeSignatureHeader carries the signature of every Stripe delivery.
const StripeSignatureHeader = "Stripe-Signature"

// StripeVerifier checks Stripe-Signature headers against the endpoint secret
// and returns the parsed event.
type StripeVerifier struct {
	secret    string
	tolerance time.Duration
}

func NewStripeVerifier(secret string, tolerance time.Duration) *StripeVerifier {
	return &StripeVerifier{
		secret:    strings.TrimSpace(secret),
		tolerance: tolerance,
	}
}

// ConstructEvent verifies payload against signatureHeader. The payload must be
// the exact bytes received; any re-encoding breaks the HMAC.
func (v *StripeVerifier) ConstructEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	if v.secret == "" {
		return stripe.Event{}, ErrWebhookSecretMissing
	}
	event, err := webhook.ConstructEventWithOptions(payload, strings.TrimSpace(signatureHeader), v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return event, nil
}
