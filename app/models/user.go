package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// User is a reader account. StripeCustomerID links it to the Stripe customer
// created during checkout.
type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Name             string         `gorm:"type:varchar(150)" json:"name" validate:"max=150"`
	Email            string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,max=200"`
	StripeCustomerID string         `gorm:"type:varchar(191);default:null;uniqueIndex" json:"stripe_customer_id" validate:"omitempty,max=191"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()
	return v.Struct(u)
}

func FindUserByStripeCustomerID(db *gorm.DB, customerID string) (*User, error) {
	var user User
	err := db.Where("stripe_customer_id = ?", strings.TrimSpace(customerID)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
