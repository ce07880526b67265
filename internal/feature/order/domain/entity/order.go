// Package entity defines the order, order detail and payment entities.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusProcessing is the status every new order starts in.
// Later statuses are free-form strings set by the caller.
const StatusProcessing = "processing"

// Order is a customer's purchase with its line items and monetary breakdown.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"order_id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	OrderDate       time.Time       `gorm:"not null" json:"order_date"`
	Status          string          `gorm:"column:order_status;size:50;not null" json:"order_status"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	FullName        string          `gorm:"size:200;not null" json:"full_name"`
	ShippingAddress string          `gorm:"size:500;not null" json:"shipping_address"`
	PhoneNumber     string          `gorm:"size:30;not null" json:"phone_number"`
	ShippingMethod  string          `gorm:"size:100;not null" json:"shipping_method"`
	ShippingPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"shipping_price"`
	DiscountID      *uint           `json:"discount_id"`
	DiscountAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"discount_amount"`
	OriginalAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"original_amount"`
	FinalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"final_amount"`

	Details  []OrderDetail `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderdetails"`
	Payments []Payment     `gorm:"foreignKey:OrderID" json:"payments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Order) TableName() string {
	return "orders"
}

// OrderDetail is one line item, owned by exactly one order.
type OrderDetail struct {
	ID        uint            `gorm:"primaryKey" json:"order_detail_id"`
	OrderID   uint            `gorm:"index;not null" json:"order_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
}

// TableName returns the table name for GORM.
func (OrderDetail) TableName() string {
	return "order_details"
}

// OrderUpdate lists the scalar columns UpdateOrder may change.
// nil fields are left untouched.
type OrderUpdate struct {
	UserID          *uint
	OrderDate       *time.Time
	TotalAmount     *decimal.Decimal
	FullName        *string
	ShippingAddress *string
	PhoneNumber     *string
	Status          *string
}

// Columns returns the non-nil fields keyed by column name.
func (u OrderUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.UserID != nil {
		cols["user_id"] = *u.UserID
	}
	if u.OrderDate != nil {
		cols["order_date"] = *u.OrderDate
	}
	if u.TotalAmount != nil {
		cols["total_amount"] = *u.TotalAmount
	}
	if u.FullName != nil {
		cols["full_name"] = *u.FullName
	}
	if u.ShippingAddress != nil {
		cols["shipping_address"] = *u.ShippingAddress
	}
	if u.PhoneNumber != nil {
		cols["phone_number"] = *u.PhoneNumber
	}
	if u.Status != nil {
		cols["order_status"] = *u.Status
	}
	return cols
}
