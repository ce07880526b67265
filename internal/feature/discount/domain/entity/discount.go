// Package entity defines discount codes and their grants to users.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusActive is the default status of discounts and grants.
const StatusActive = "active"

// Discount is a redeemable code. Amount and Percent are both optional.
type Discount struct {
	ID             uint             `gorm:"primaryKey" json:"discount_id"`
	Code           string           `gorm:"column:discount_code;uniqueIndex;size:100;not null" json:"discount_code"`
	Amount         *decimal.Decimal `gorm:"column:discount_amount;type:numeric(12,2)" json:"discount_amount"`
	Percent        *decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2)" json:"discount_percent"`
	ExpirationDate *time.Time       `json:"expiration_date"`
	Status         string           `gorm:"size:20;not null;default:active" json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Discount) TableName() string {
	return "discounts"
}

// Expired reports whether the discount has an expiration date before now.
func (d *Discount) Expired(now time.Time) bool {
	return d.ExpirationDate != nil && d.ExpirationDate.Before(now)
}

// DiscountUpdate lists the columns an update may change. nil fields are left untouched.
type DiscountUpdate struct {
	Code           *string
	Amount         *decimal.Decimal
	Percent        *decimal.Decimal
	ExpirationDate *time.Time
	Status         *string
}

// Columns returns the column map for gorm Updates.
func (u DiscountUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.Code != nil {
		cols["discount_code"] = *u.Code
	}
	if u.Amount != nil {
		cols["discount_amount"] = *u.Amount
	}
	if u.Percent != nil {
		cols["discount_percent"] = *u.Percent
	}
	if u.ExpirationDate != nil {
		cols["expiration_date"] = u.ExpirationDate.UTC()
	}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	return cols
}

// UserDiscount grants one discount to one user. A pair is granted at most once.
type UserDiscount struct {
	ID         uint      `gorm:"primaryKey" json:"user_discount_id"`
	UserID     uint      `gorm:"uniqueIndex:idx_user_discount;not null" json:"user_id"`
	DiscountID uint      `gorm:"uniqueIndex:idx_user_discount;index;not null" json:"discount_id"`
	Status     string    `gorm:"size:20;not null;default:active" json:"status"`
	Discount   *Discount `gorm:"foreignKey:DiscountID;constraint:OnDelete:CASCADE" json:"discount,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (UserDiscount) TableName() string {
	return "user_discounts"
}

// UserDiscountUpdate lists the columns a grant update may change.
type UserDiscountUpdate struct {
	UserID     *uint
	DiscountID *uint
	Status     *string
}

// Columns returns the column map for gorm Updates.
func (u UserDiscountUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.UserID != nil {
		cols["user_id"] = *u.UserID
	}
	if u.DiscountID != nil {
		cols["discount_id"] = *u.DiscountID
	}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	return cols
}
