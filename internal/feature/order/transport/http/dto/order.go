// Package dto defines request and response bodies for the order feature.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront_backend/internal/feature/order/domain/entity"
	"storefront_backend/internal/feature/order/usecase"
)

// ItemReq is one line item in an order request.
type ItemReq struct {
	ProductID uint            `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CreateOrderReq represents the body of POST /orders.
// 必須項目の検証は usecase 側で行い、欠落時は "Invalid order data" を返します。
type CreateOrderReq struct {
	UserID          uint             `json:"userId"`
	OrderDate       *time.Time       `json:"orderDate"`
	Items           []ItemReq        `json:"items"`
	PaymentMethod   string           `json:"paymentMethod"`
	TotalAmount     *decimal.Decimal `json:"totalAmount"`
	FullName        string           `json:"fullName"`
	ShippingAddress string           `json:"shippingAddress"`
	PhoneNumber     string           `json:"phoneNumber"`
	DiscountID      *uint            `json:"discount_id"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount"`
	OriginalAmount  *decimal.Decimal `json:"original_amount"`
	FinalAmount     *decimal.Decimal `json:"final_amount"`
	ShippingMethod  string           `json:"shipping_method"`
	ShippingPrice   *decimal.Decimal `json:"shipping_price"`
}

// UpdateOrderReq represents the body of PUT /orders/:id.
type UpdateOrderReq struct {
	UserID          *uint            `json:"userId"`
	OrderDate       *time.Time       `json:"orderDate"`
	Items           []ItemReq        `json:"items"`
	PaymentStatus   *string          `json:"payment_status"`
	TotalAmount     *decimal.Decimal `json:"totalAmount"`
	FullName        *string          `json:"fullName"`
	ShippingAddress *string          `json:"shippingAddress"`
	PhoneNumber     *string          `json:"phoneNumber"`
	OrderStatus     *string          `json:"orderStatus"`
}

func toItems(items []ItemReq) []usecase.ItemInput {
	if items == nil {
		return nil
	}
	out := make([]usecase.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, usecase.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return out
}

// ToInput converts the request into the usecase input.
func (r CreateOrderReq) ToInput() usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		UserID:          r.UserID,
		OrderDate:       r.OrderDate,
		Items:           toItems(r.Items),
		PaymentMethod:   r.PaymentMethod,
		TotalAmount:     r.TotalAmount,
		FullName:        r.FullName,
		ShippingAddress: r.ShippingAddress,
		PhoneNumber:     r.PhoneNumber,
		ShippingMethod:  r.ShippingMethod,
		ShippingPrice:   r.ShippingPrice,
		DiscountID:      r.DiscountID,
		DiscountAmount:  r.DiscountAmount,
		OriginalAmount:  r.OriginalAmount,
		FinalAmount:     r.FinalAmount,
	}
}

// ToInput converts the request into the usecase input.
func (r UpdateOrderReq) ToInput() usecase.UpdateOrderInput {
	return usecase.UpdateOrderInput{
		Fields: entity.OrderUpdate{
			UserID:          r.UserID,
			OrderDate:       r.OrderDate,
			TotalAmount:     r.TotalAmount,
			FullName:        r.FullName,
			ShippingAddress: r.ShippingAddress,
			PhoneNumber:     r.PhoneNumber,
			Status:          r.OrderStatus,
		},
		PaymentStatus: r.PaymentStatus,
		Items:         toItems(r.Items),
	}
}

// CreateOrderRes is the body of a successful POST /orders.
type CreateOrderRes struct {
	Message string          `json:"message"`
	Order   *entity.Order   `json:"order"`
	Payment *entity.Payment `json:"payment"`
}

// UpdateOrderRes is the body of a successful PUT /orders/:id.
type UpdateOrderRes struct {
	Message string        `json:"message"`
	Order   *entity.Order `json:"order"`
}
