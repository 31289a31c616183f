package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/ignews/ignews/app/models"
	"github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"
)

type fakeRepo struct {
	users     map[string]*models.User
	findErr   error
	stored    map[string]*models.Subscription
	created   []*models.Subscription
	upserted  []*models.Subscription
	saveErr   error
	events    map[string]*models.WebhookEvent
	processed map[uint]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:     map[string]*models.User{},
		stored:    map[string]*models.Subscription{},
		events:    map[string]*models.WebhookEvent{},
		processed: map[uint]string{},
	}
}

func (r *fakeRepo) FindUserByStripeCustomerID(_ context.Context, customerID string) (*models.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[customerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeRepo) CreateSubscriptionIfNotExists(_ context.Context, sub *models.Subscription) (bool, error) {
	if r.saveErr != nil {
		return false, r.saveErr
	}
	if _, ok := r.stored[sub.StripeSubscriptionID]; ok {
		return false, nil
	}
	r.stored[sub.StripeSubscriptionID] = sub
	r.created = append(r.created, sub)
	return true, nil
}

func (r *fakeRepo) UpsertSubscription(_ context.Context, sub *models.Subscription) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.stored[sub.StripeSubscriptionID] = sub
	r.upserted = append(r.upserted, sub)
	return nil
}

func (r *fakeRepo) CreateWebhookEventIfNotExists(_ context.Context, event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	if existing, ok := r.events[event.StripeEventID]; ok {
		return false, existing, nil
	}
	event.ID = uint(len(r.events) + 1)
	r.events[event.StripeEventID] = event
	return true, event, nil
}

func (r *fakeRepo) MarkWebhookProcessed(_ context.Context, id uint, processingError string) error {
	r.processed[id] = processingError
	return nil
}

type fakeFetcher struct {
	snapshots map[string]*SubscriptionSnapshot
	err       error
}

func (f *fakeFetcher) FetchSubscription(_ context.Context, subscriptionID string) (*SubscriptionSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	snap, ok := f.snapshots[subscriptionID]
	if !ok {
		return nil, errors.New("no such subscription")
	}
	return snap, nil
}

func newTestService() (*Service, *fakeRepo, *fakeFetcher) {
	repo := newFakeRepo()
	repo.users["cus_1"] = &models.User{ID: 42, Email: "reader@example.com", StripeCustomerID: "cus_1"}
	fetcher := &fakeFetcher{snapshots: map[string]*SubscriptionSnapshot{
		"sub_1": {ID: "sub_1", CustomerID: "cus_1", Status: "active", PriceID: "price_monthly"},
	}}
	return NewService(repo, fetcher), repo, fetcher
}

func TestSaveSubscriptionCreatesNew(t *testing.T) {
	svc, repo, _ := newTestService()

	if err := svc.SaveSubscription(context.Background(), "sub_1", "cus_1", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.created) != 1 || len(repo.upserted) != 0 {
		t.Fatalf("expected one create and no upsert, got created=%d upserted=%d", len(repo.created), len(repo.upserted))
	}
	sub := repo.created[0]
	if sub.UserID != 42 || sub.StripeSubscriptionID != "sub_1" || sub.StripeCustomerID != "cus_1" {
		t.Fatalf("unexpected subscription: %#v", sub)
	}
	if sub.Status != models.SubscriptionStatusActive || sub.PriceID != "price_monthly" {
		t.Fatalf("unexpected status/price: %q %q", sub.Status, sub.PriceID)
	}
}

func TestSaveSubscriptionReplacesExisting(t *testing.T) {
	svc, repo, fetcher := newTestService()
	fetcher.snapshots["sub_1"].Status = "canceled"
	fetcher.snapshots["sub_1"].CancelAtPeriodEnd = true

	if err := svc.SaveSubscription(context.Background(), "sub_1", "cus_1", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.upserted) != 1 || len(repo.created) != 0 {
		t.Fatalf("expected one upsert, got created=%d upserted=%d", len(repo.created), len(repo.upserted))
	}
	if got := repo.upserted[0]; got.Status != models.SubscriptionStatusCanceled || !got.CancelAtPeriodEnd {
		t.Fatalf("unexpected subscription: %#v", got)
	}
}

func TestSaveSubscriptionCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()

	// checkout redelivered after the first attempt committed
	svc, repo, _ := newTestService()
	for i := 0; i < 2; i++ {
		if err := svc.SaveSubscription(ctx, "sub_1", "cus_1", true); err != nil {
			t.Fatalf("delivery %d: unexpected error: %v", i+1, err)
		}
	}
	if len(repo.created) != 1 || len(repo.upserted) != 1 {
		t.Fatalf("expected one create and one refresh, got created=%d upserted=%d", len(repo.created), len(repo.upserted))
	}

	// subscription update arrived before the checkout
	svc, repo, fetcher := newTestService()
	if err := svc.SaveSubscription(ctx, "sub_1", "cus_1", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fetcher.snapshots["sub_1"].Status = "past_due"
	if err := svc.SaveSubscription(ctx, "sub_1", "cus_1", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.created) != 0 || len(repo.upserted) != 2 {
		t.Fatalf("expected two upserts, got created=%d upserted=%d", len(repo.created), len(repo.upserted))
	}
	if got := repo.stored["sub_1"].Status; got != models.SubscriptionStatusPastDue {
		t.Fatalf("expected refreshed status past_due, got %q", got)
	}
}

func TestSaveSubscriptionErrors(t *testing.T) {
	ctx := context.Background()

	svc, _, _ := newTestService()
	if err := svc.SaveSubscription(ctx, "sub_1", "cus_unknown", false); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := svc.SaveSubscription(ctx, "", "cus_1", false); !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference, got %v", err)
	}

	svc, _, fetcher := newTestService()
	fetcher.err = errors.New("stripe unavailable")
	if err := svc.SaveSubscription(ctx, "sub_1", "cus_1", false); err == nil {
		t.Fatalf("expected fetch error")
	}

	svc, repo, _ := newTestService()
	repo.saveErr = errors.New("duplicate key")
	if err := svc.SaveSubscription(ctx, "sub_1", "cus_1", true); err == nil {
		t.Fatalf("expected save error")
	}

	svc, _, fetcher = newTestService()
	fetcher.snapshots["sub_1"].Status = ""
	if err := svc.SaveSubscription(ctx, "sub_1", "cus_1", false); err == nil {
		t.Fatalf("expected validation error for empty status")
	}
}

func TestWebhookLedger(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	created, stored, err := svc.RecordWebhookEvent(ctx, WebhookEventInput{StripeEventID: " evt_1 ", EventType: "invoice.paid"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created || stored.StripeEventID != "evt_1" || stored.Relevant {
		t.Fatalf("unexpected stored event: created=%t %#v", created, stored)
	}

	created, again, err := svc.RecordWebhookEvent(ctx, WebhookEventInput{StripeEventID: "evt_1", EventType: "invoice.paid"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created || again.ID != stored.ID {
		t.Fatalf("expected redelivery to return the stored row, got created=%t id=%d", created, again.ID)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected a single ledger row, got %d", len(repo.events))
	}
	if err := svc.MarkWebhookProcessed(ctx, stored.ID, errors.New("boom")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.processed[stored.ID] != "boom" {
		t.Fatalf("expected processing error to be stored, got %q", repo.processed[stored.ID])
	}

	if _, _, err := svc.RecordWebhookEvent(ctx, WebhookEventInput{}); err == nil {
		t.Fatalf("expected error for missing event id")
	}
	if err := svc.MarkWebhookProcessed(ctx, 0, nil); err == nil {
		t.Fatalf("expected error for zero id")
	}
}

func TestSnapshotFromStripe(t *testing.T) {
	sub := &stripe.Subscription{
		ID:                "sub_1",
		Status:            stripe.SubscriptionStatusPastDue,
		CancelAtPeriodEnd: true,
		Customer:          &stripe.Customer{ID: "cus_1"},
		Items: &stripe.SubscriptionItemList{Data: []*stripe.SubscriptionItem{
			{Price: &stripe.Price{ID: "price_1"}},
		}},
	}
	snap := snapshotFromStripe(sub)
	want := SubscriptionSnapshot{ID: "sub_1", CustomerID: "cus_1", Status: "past_due", PriceID: "price_1", CancelAtPeriodEnd: true}
	if *snap != want {
		t.Fatalf("got %#v, want %#v", *snap, want)
	}

	bare := snapshotFromStripe(&stripe.Subscription{ID: "sub_2", Status: stripe.SubscriptionStatusActive})
	if bare.CustomerID != "" || bare.PriceID != "" {
		t.Fatalf("expected empty customer/price, got %#v", bare)
	}
}
