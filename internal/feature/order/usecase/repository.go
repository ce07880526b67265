package usecase

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"storefront_backend/internal/feature/order/domain/entity"
)

// OrderRepository abstracts persistence of orders and their details.
// 書き込みメソッドは ctx に紐づくトランザクションに参加します。
type OrderRepository interface {
	// Create inserts o together with o.Details.
	Create(ctx context.Context, o *entity.Order) error
	FindAll(ctx context.Context) ([]entity.Order, error)
	// FindByID returns ErrOrderNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*entity.Order, error)
	FindByUserID(ctx context.Context, userID uint) ([]entity.Order, error)
	UpdateFields(ctx context.Context, id uint, upd entity.OrderUpdate) error
	DeleteDetails(ctx context.Context, orderID uint) error
	CreateDetails(ctx context.Context, orderID uint, details []entity.OrderDetail) error
	// Delete returns ErrOrderNotFound when no row matches.
	Delete(ctx context.Context, id uint) error
}

// PaymentRepository abstracts persistence of payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	// UpdateByOrderID updates every payment of the order. nil arguments are left untouched.
	UpdateByOrderID(ctx context.Context, orderID uint, status *string, amount *decimal.Decimal) error
	DeleteByOrderID(ctx context.Context, orderID uint) error
	FindAll(ctx context.Context) ([]entity.Payment, error)
	// FindByID returns ErrPaymentNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*entity.Payment, error)
	FindByUserID(ctx context.Context, userID uint) ([]entity.Payment, error)
	// Update returns ErrPaymentNotFound when no row matches.
	Update(ctx context.Context, id uint, upd entity.PaymentUpdate) error
}

// Transactor runs fn atomically. *db.Transactor satisfies it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// FileStore saves uploaded files and returns their public path.
type FileStore interface {
	Save(ctx context.Context, dir, originalName string, r io.Reader) (string, error)
}
