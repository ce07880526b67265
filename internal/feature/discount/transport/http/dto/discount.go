// Package dto defines request and response bodies for the discount feature.
package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"storefront_backend/internal/feature/discount/domain/entity"
	"storefront_backend/internal/feature/discount/usecase"
)

// DiscountReq represents the body of POST /discounts and PUT /discounts/:id.
// expiration_date は RFC 3339 または YYYY-MM-DD を受け付けます。
type DiscountReq struct {
	Code           *string          `json:"discount_code"`
	Amount         *decimal.Decimal `json:"discount_amount"`
	Percent        *decimal.Decimal `json:"discount_percent"`
	ExpirationDate *string          `json:"expiration_date"`
	Status         *string          `json:"status"`
}

func (r DiscountReq) expiration() (*time.Time, error) {
	if r.ExpirationDate == nil || *r.ExpirationDate == "" {
		return nil, nil
	}
	s := *r.ExpirationDate
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("expiration_date: %w", err)
	}
	return &t, nil
}

// ToCreate converts the request for CreateDiscount.
func (r DiscountReq) ToCreate() (usecase.CreateDiscountInput, error) {
	exp, err := r.expiration()
	if err != nil {
		return usecase.CreateDiscountInput{}, err
	}
	in := usecase.CreateDiscountInput{Amount: r.Amount, Percent: r.Percent, ExpirationDate: exp}
	if r.Code != nil {
		in.Code = *r.Code
	}
	return in, nil
}

// ToUpdate converts the request for UpdateDiscount.
func (r DiscountReq) ToUpdate() (entity.DiscountUpdate, error) {
	exp, err := r.expiration()
	if err != nil {
		return entity.DiscountUpdate{}, err
	}
	return entity.DiscountUpdate{
		Code:           r.Code,
		Amount:         r.Amount,
		Percent:        r.Percent,
		ExpirationDate: exp,
		Status:         r.Status,
	}, nil
}

// GrantReq represents the body of POST /userdiscounts.
type GrantReq struct {
	UserID     uint `json:"UserID"`
	DiscountID uint `json:"discount_id"`
}

// UserDiscountUpdateReq represents the body of PUT /userdiscounts/:id.
type UserDiscountUpdateReq struct {
	UserID     *uint   `json:"UserID"`
	DiscountID *uint   `json:"discount_id"`
	Status     *string `json:"status"`
}

// ToUpdate converts the request for UpdateUserDiscount.
func (r UserDiscountUpdateReq) ToUpdate() entity.UserDiscountUpdate {
	return entity.UserDiscountUpdate{UserID: r.UserID, DiscountID: r.DiscountID, Status: r.Status}
}

// ApplyToAllReq represents the body of POST /apply-discount-to-all.
type ApplyToAllReq struct {
	DiscountID uint `json:"discount_id" binding:"required"`
}

// ApplyToAllRes is the body of a successful apply-to-all.
type ApplyToAllRes struct {
	Message       string                `json:"message"`
	UserDiscounts []entity.UserDiscount `json:"userDiscounts"`
}
