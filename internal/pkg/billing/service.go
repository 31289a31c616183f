package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ignews/ignews/app/models"
)

// Service stores Stripe subscription state locally and keeps the webhook
// audit ledger. It implements SubscriptionRecorder and EventLog.
type Service struct {
	repo    Repository
	fetcher SubscriptionFetcher
}

// NewService creates a billing service from injected collaborators.
func NewService(repo Repository, fetcher SubscriptionFetcher) *Service {
	return &Service{repo: repo, fetcher: fetcher}
}

// NewServiceFromDB creates a billing service from a GORM DB handle and the
// Stripe API key.
func NewServiceFromDB(db *gorm.DB, cfg StripeConfig) *Service {
	return NewService(NewRepository(db), NewStripeSubscriptionFetcher(cfg.APIKey))
}

// SaveSubscription looks up the user owning customerID, loads the current
// subscription from Stripe and writes it. isNew creates the row; otherwise an
// existing row with the same Stripe subscription ID is replaced. A create that
// finds the row already present (redelivery, or an update that arrived first)
// refreshes it instead of failing.
func (s *Service) SaveSubscription(ctx context.Context, subscriptionID, customerID string, isNew bool) error {
	subID := strings.TrimSpace(subscriptionID)
	cusID := strings.TrimSpace(customerID)
	if subID == "" || cusID == "" {
		return ErrMissingReference
	}

	user, err := s.repo.FindUserByStripeCustomerID(ctx, cusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, cusID)
		}
		return fmt.Errorf("find user for customer %s: %w", cusID, err)
	}

	snap, err := s.fetcher.FetchSubscription(ctx, subID)
	if err != nil {
		return fmt.Errorf("fetch subscription %s: %w", subID, err)
	}

	sub := &models.Subscription{
		StripeSubscriptionID: subID,
		StripeCustomerID:     cusID,
		UserID:               user.ID,
		Status:               strings.ToLower(strings.TrimSpace(snap.Status)),
		PriceID:              strings.TrimSpace(snap.PriceID),
		CancelAtPeriodEnd:    snap.CancelAtPeriodEnd,
	}
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("invalid subscription %s: %w", subID, err)
	}

	created := false
	if isNew {
		created, err = s.repo.CreateSubscriptionIfNotExists(ctx, sub)
		if err != nil {
			return fmt.Errorf("create subscription %s: %w", subID, err)
		}
		if !created {
			log.Infof("[Billing] Subscription %s already stored, refreshing it", subID)
		}
	}
	if !created {
		if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
			return fmt.Errorf("save subscription %s: %w", subID, err)
		}
	}

	log.Infof("[Billing] Saved subscription %s for user %d (status=%s, created=%t)", subID, user.ID, sub.Status, created)
	return nil
}

// RecordWebhookEvent appends a verified delivery to the audit ledger. Stripe
// retries reuse the event ID, so a repeat returns created=false and the
// existing row.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.WebhookEvent, error) {
	eventID := strings.TrimSpace(in.StripeEventID)
	if eventID == "" {
		return false, nil, errors.New("stripe event id is required")
	}
	event := &models.WebhookEvent{
		StripeEventID: eventID,
		EventType:     strings.TrimSpace(in.EventType),
		Relevant:      in.Relevant,
	}
	return s.repo.CreateWebhookEventIfNotExists(ctx, event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(ctx, webhookEventID, errMsg)
}
