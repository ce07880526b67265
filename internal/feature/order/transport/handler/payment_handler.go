package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/feature/order/domain/entity"
	"storefront_backend/internal/feature/order/transport/http/dto"
	"storefront_backend/internal/feature/order/usecase"
	"storefront_backend/internal/platform/http/response"
)

// receiptField is the multipart field carrying the receipt image.
const receiptField = "paymentImage"

// PaymentUsecase は支払い操作のユースケースを定義します。
type PaymentUsecase interface {
	ListPayments(ctx context.Context) ([]entity.Payment, error)
	GetPayment(ctx context.Context, id uint) (*entity.Payment, error)
	ListPaymentsByUserID(ctx context.Context, userID uint) ([]entity.Payment, error)
	UpdatePayment(ctx context.Context, id uint, upd entity.PaymentUpdate, receipt *usecase.Upload) (*entity.Payment, error)
}

// PaymentHandler は支払い操作のHTTPリクエストを処理します。
type PaymentHandler struct {
	payments PaymentUsecase
}

// NewPaymentHandler はPaymentHandlerの新しいインスタンスを生成します。
func NewPaymentHandler(payments PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// List returns every payment.
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.payments.ListPayments(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Failed to fetch payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Get returns one payment by :paymentId.
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := response.UintParam(c, "paymentId")
	if !ok {
		return
	}
	p, err := h.payments.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, "Failed to fetch payment")
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListByUser returns the payments of :userId. 0件の場合は404です。
func (h *PaymentHandler) ListByUser(c *gin.Context) {
	userID, ok := response.UintParam(c, "userId")
	if !ok {
		return
	}
	payments, err := h.payments.ListPaymentsByUserID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err, "Failed to fetch payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Update は支払いを更新します。multipart の paymentImage があればレシート画像として保存します。
func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := response.UintParam(c, "paymentId")
	if !ok {
		return
	}

	var req dto.UpdatePaymentReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid payment data", err)
		return
	}
	upd, err := req.ToUpdate()
	if err != nil {
		response.BadRequest(c, "Invalid payment data", err)
		return
	}

	var receipt *usecase.Upload
	fh, err := c.FormFile(receiptField)
	switch {
	case err == nil:
		f, openErr := fh.Open()
		if openErr != nil {
			response.Error(c, fmt.Errorf("open receipt: %w", openErr), "Image upload failed")
			return
		}
		defer f.Close()
		receipt = &usecase.Upload{Name: fh.Filename, Body: f}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// 画像なしの更新
	default:
		response.BadRequest(c, "Image upload failed", err)
		return
	}

	p, err := h.payments.UpdatePayment(c.Request.Context(), id, upd, receipt)
	if err != nil {
		response.Error(c, err, "An unexpected error occurred")
		return
	}
	c.JSON(http.StatusOK, dto.UpdatePaymentRes{
		Status:         "ok",
		Message:        fmt.Sprintf("Payment with ID = %d is updated", id),
		UpdatedPayment: p,
	})
}
