package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses. Only PaymentStatusPending is set by the server; the rest
// arrive from payment updates.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusSettled = "settled"
)

// Payment is the settlement record tied to an order.
type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"payment_id"`
	OrderID       uint            `gorm:"index;not null" json:"order_id"`
	PaymentDate   *time.Time      `json:"payment_date"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:50;not null" json:"payment_method"`
	PaymentStatus string          `gorm:"size:50;not null" json:"payment_status"`
	PaymentImage  *string         `gorm:"size:255" json:"payment_image"`
	Remark        *string         `gorm:"size:500" json:"remark"`

	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Payment) TableName() string {
	return "payments"
}

// PaymentUpdate lists the columns UpdatePayment may change. nil fields are left untouched.
type PaymentUpdate struct {
	PaymentDate   *time.Time
	Amount        *decimal.Decimal
	PaymentMethod *string
	PaymentStatus *string
	PaymentImage  *string
	Remark        *string
}

// Columns returns the non-nil fields keyed by column name.
func (u PaymentUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.PaymentDate != nil {
		cols["payment_date"] = *u.PaymentDate
	}
	if u.Amount != nil {
		cols["amount"] = *u.Amount
	}
	if u.PaymentMethod != nil {
		cols["payment_method"] = *u.PaymentMethod
	}
	if u.PaymentStatus != nil {
		cols["payment_status"] = *u.PaymentStatus
	}
	if u.PaymentImage != nil {
		cols["payment_image"] = *u.PaymentImage
	}
	if u.Remark != nil {
		cols["remark"] = *u.Remark
	}
	return cols
}
