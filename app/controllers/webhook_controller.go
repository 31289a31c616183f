package controllers

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/stripe/stripe-go/v82"

	"github.com/ignews/ignews/internal/pkg/billing"
)

const (
	webhookFailedMessage = "Webhook handler failed."
	webhookErrorPrefix   = "WEBHOOK ERROR: "
	ledgerUpdateTimeout  = 5 * time.Second
)

var errWebhookBodyTooLarge = errors.New("request body too large")

type eventVerifier interface {
	ConstructEvent(payload []byte, signatureHeader string) (stripe.Event, error)
}

// StripeWebhookController receives Stripe deliveries on /api/webhooks.
type StripeWebhookController struct {
	cfg      billing.StripeConfig
	verifier eventVerifier
	recorder billing.SubscriptionRecorder
	events   billing.EventLog
}

// NewStripeWebhookController wires the endpoint. events may be nil to skip the
// audit ledger.
func NewStripeWebhookController(cfg billing.StripeConfig, recorder billing.SubscriptionRecorder, events billing.EventLog) *StripeWebhookController {
	cfg = cfg.Normalized()
	return &StripeWebhookController{
		cfg:      cfg,
		verifier: billing.NewStripeVerifier(cfg.WebhookSecret, cfg.Tolerance),
		recorder: recorder,
		events:   events,
	}
}

// HandleWebhook verifies a Stripe delivery and applies subscription events.
// Redeliveries of an event that was already applied successfully are
// acknowledged without being applied again.
func (h *StripeWebhookController) HandleWebhook(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		c.Set(fiber.HeaderAllow, fiber.MethodPost)
		return c.Status(fiber.StatusMethodNotAllowed).SendString("Method not allowed")
	}

	payload, err := readRawBody(c, h.cfg.MaxBodyBytes)
	if err != nil {
		if errors.Is(err, errWebhookBodyTooLarge) {
			return c.Status(fiber.StatusRequestEntityTooLarge).SendString(webhookErrorPrefix + err.Error())
		}
		return c.Status(fiber.StatusBadRequest).SendString(webhookErrorPrefix + err.Error())
	}

	event, err := h.verifier.ConstructEvent(payload, c.Get(billing.StripeSignatureHeader))
	if err != nil {
		log.Warnf("[Webhook] Rejected delivery from %s: %v", c.IP(), err)
		return c.Status(fiber.StatusBadRequest).SendString(webhookErrorPrefix + err.Error())
	}

	relevant := billing.IsRelevantEvent(event.Type)
	log.Infof("[Webhook] Received event %s (%s), relevant=%t", event.ID, event.Type, relevant)

	ctx, cancel := context.WithTimeout(c.UserContext(), h.cfg.HandlerTimeout)
	defer cancel()

	ledgerID, alreadyProcessed := h.recordDelivery(ctx, event, relevant)
	if alreadyProcessed {
		log.Infof("[Webhook] Event %s already processed, skipping", event.ID)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
	}
	if !relevant {
		h.markProcessed(ctx, ledgerID, nil)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
	}

	dispatchErr := billing.Dispatch(ctx, h.recorder, event)
	h.markProcessed(ctx, ledgerID, dispatchErr)
	if dispatchErr != nil {
		log.Errorf("[Webhook] Handling event %s (%s) failed: %v", event.ID, event.Type, dispatchErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": webhookFailedMessage})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
}

// recordDelivery writes the audit entry; failures only get logged. A repeat
// delivery counts as already processed only when the earlier attempt finished
// without error, so failed events are applied again on retry.
func (h *StripeWebhookController) recordDelivery(ctx context.Context, event stripe.Event, relevant bool) (uint, bool) {
	if h.events == nil {
		return 0, false
	}
	created, stored, err := h.events.RecordWebhookEvent(ctx, billing.WebhookEventInput{
		StripeEventID: event.ID,
		EventType:     string(event.Type),
		Relevant:      relevant,
	})
	if err != nil {
		log.Errorf("[Webhook] Could not record event %s: %v", event.ID, err)
		return 0, false
	}
	if !created && stored.ProcessedAt != nil && stored.ProcessingError == "" {
		return stored.ID, true
	}
	return stored.ID, false
}

// markProcessed gets its own deadline so a dispatch that used up the request
// timeout still closes its ledger entry.
func (h *StripeWebhookController) markProcessed(ctx context.Context, ledgerID uint, processingErr error) {
	if h.events == nil || ledgerID == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ledgerUpdateTimeout)
	defer cancel()
	if err := h.events.MarkWebhookProcessed(ctx, ledgerID, processingErr); err != nil {
		log.Errorf("[Webhook] Could not mark event %d processed: %v", ledgerID, err)
	}
}

// readRawBody returns the exact request bytes. Streamed bodies are drained
// until EOF; buffered bodies are copied because fasthttp reuses the buffer.
func readRawBody(c *fiber.Ctx, limit int64) ([]byte, error) {
	if stream := c.Context().RequestBodyStream(); stream != nil {
		body, err := io.ReadAll(io.LimitReader(stream, limit+1))
		if err != nil {
			return nil, err
		}
		if int64(len(body)) > limit {
			return nil, errWebhookBodyTooLarge
		}
		return body, nil
	}

	raw := c.BodyRaw()
	if int64(len(raw)) > limit {
		return nil, errWebhookBodyTooLarge
	}
	return append([]byte(nil), raw...), nil
}
