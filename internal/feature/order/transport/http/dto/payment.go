package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"storefront_backend/internal/feature/order/domain/entity"
)

// UpdatePaymentReq is bound from the multipart form (or JSON) of PUT /payments/:paymentId.
// The receipt image arrives separately in the paymentImage file field.
type UpdatePaymentReq struct {
	PaymentDate   *string `form:"PaymentDate" json:"PaymentDate"`
	Amount        *string `form:"Amount" json:"Amount"`
	PaymentMethod *string `form:"PaymentMethod" json:"PaymentMethod"`
	PaymentStatus *string `form:"payment_status" json:"payment_status"`
	Remark        *string `form:"remark" json:"remark"`
}

// ToUpdate parses the textual fields. 空文字列は未指定として扱います。
func (r UpdatePaymentReq) ToUpdate() (entity.PaymentUpdate, error) {
	var upd entity.PaymentUpdate
	if s := nonEmpty(r.PaymentDate); s != nil {
		t, err := parseDate(*s)
		if err != nil {
			return upd, fmt.Errorf("PaymentDate: %w", err)
		}
		upd.PaymentDate = &t
	}
	if s := nonEmpty(r.Amount); s != nil {
		a, err := decimal.NewFromString(*s)
		if err != nil {
			return upd, fmt.Errorf("Amount: %w", err)
		}
		upd.Amount = &a
	}
	upd.PaymentMethod = nonEmpty(r.PaymentMethod)
	upd.PaymentStatus = nonEmpty(r.PaymentStatus)
	upd.Remark = nonEmpty(r.Remark)
	return upd, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

// UpdatePaymentRes is the body of a successful payment update.
type UpdatePaymentRes struct {
	Status         string          `json:"status"`
	Message        string          `json:"message"`
	UpdatedPayment *entity.Payment `json:"updatedPayment"`
}
