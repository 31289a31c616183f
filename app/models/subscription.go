package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	SubscriptionStatusActive            = "active"
	SubscriptionStatusTrialing          = "trialing"
	SubscriptionStatusPastDue           = "past_due"
	SubscriptionStatusCanceled          = "canceled"
	SubscriptionStatusIncomplete        = "incomplete"
	SubscriptionStatusIncompleteExpired = "incomplete_expired"
	SubscriptionStatusUnpaid            = "unpaid"
	SubscriptionStatusPaused            = "paused"
)

// Subscription mirrors the state of a Stripe subscription owned by a user.
type Subscription struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	StripeSubscriptionID string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"stripe_subscription_id" validate:"required,max=191"`
	StripeCustomerID     string    `gorm:"type:varchar(191);not null;index" json:"stripe_customer_id" validate:"required,max=191"`
	UserID               uint      `gorm:"not null;index" json:"user_id" validate:"required"`
	Status               string    `gorm:"type:varchar(32);not null;default:'incomplete';index" json:"status" validate:"required,oneof=active trialing past_due canceled incomplete incomplete_expired unpaid paused"`
	PriceID              string    `gorm:"type:varchar(191);default:''" json:"price_id" validate:"max=191"`
	CancelAtPeriodEnd    bool      `gorm:"default:false" json:"cancel_at_period_end"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Subscription) Validate() error {
	v := validator.New()
	return v.Struct(s)
}

// IsActive reports whether the subscription currently grants access.
func (s *Subscription) IsActive() bool {
	switch s.Status {
	case SubscriptionStatusActive, SubscriptionStatusTrialing:
		return true
	default:
		return false
	}
}
