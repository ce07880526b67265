package usecase

import (
	"context"
	"io"
	"log/slog"

	"storefront_backend/internal/feature/order/domain/entity"
	"storefront_backend/internal/shared/apperr"
)

// ReceiptDir is the upload directory for payment receipts.
const ReceiptDir = "payments"

// Upload is an uploaded file. Body is read once.
type Upload struct {
	Name string
	Body io.Reader
}

// paymentUsecase はpaymentの参照と単独更新を扱います。
type paymentUsecase struct {
	payments PaymentRepository
	files    FileStore
}

// NewPaymentUsecase はpaymentUsecaseの新しいインスタンスを生成します。
func NewPaymentUsecase(payments PaymentRepository, files FileStore) *paymentUsecase {
	return &paymentUsecase{payments: payments, files: files}
}

// ListPayments returns every payment with its order.
func (u *paymentUsecase) ListPayments(ctx context.Context) ([]entity.Payment, error) {
	payments, err := u.payments.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to fetch payments", err)
	}
	return payments, nil
}

// GetPayment returns ErrPaymentNotFound when the payment does not exist.
func (u *paymentUsecase) GetPayment(ctx context.Context, id uint) (*entity.Payment, error) {
	p, err := u.payments.FindByID(ctx, id)
	if err != nil {
		return nil, wrapLookup(err, ErrPaymentNotFound, "Failed to fetch payment")
	}
	return p, nil
}

// ListPaymentsByUserID は空の結果を ErrNoPaymentsForUser として扱います。
func (u *paymentUsecase) ListPaymentsByUserID(ctx context.Context, userID uint) ([]entity.Payment, error) {
	payments, err := u.payments.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to fetch payments", err)
	}
	if len(payments) == 0 {
		return nil, ErrNoPaymentsForUser
	}
	return payments, nil
}

// UpdatePayment は指定フィールドを更新します。receipt があれば保存し、そのパスを payment_image に設定します。
func (u *paymentUsecase) UpdatePayment(ctx context.Context, id uint, upd entity.PaymentUpdate, receipt *Upload) (*entity.Payment, error) {
	// 存在しない支払いのためにファイルを保存しない
	if _, err := u.GetPayment(ctx, id); err != nil {
		return nil, err
	}
	if upd.Amount != nil && upd.Amount.IsNegative() {
		return nil, apperr.New(apperr.KindValidation, "Amount must not be negative")
	}

	if receipt != nil {
		path, err := u.files.Save(ctx, ReceiptDir, receipt.Name, receipt.Body)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "Image upload failed", err)
		}
		upd.PaymentImage = &path
	}

	if err := u.payments.Update(ctx, id, upd); err != nil {
		return nil, wrapLookup(err, ErrPaymentNotFound, "An unexpected error occurred")
	}
	slog.Info("payment updated", "payment_id", id, "receipt", receipt != nil)
	return u.GetPayment(ctx, id)
}
