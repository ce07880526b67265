package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"storefront_backend/internal/feature/order/domain/entity"
	"storefront_backend/internal/shared/apperr"
)

// ItemInput is one requested line item.
type ItemInput struct {
	ProductID uint
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderInput carries the fields of a new order. Pointer fields are optional
// unless validate says otherwise.
type CreateOrderInput struct {
	UserID          uint
	OrderDate       *time.Time
	Items           []ItemInput
	PaymentMethod   string
	TotalAmount     *decimal.Decimal
	FullName        string
	ShippingAddress string
	PhoneNumber     string
	ShippingMethod  string
	ShippingPrice   *decimal.Decimal
	DiscountID      *uint
	DiscountAmount  *decimal.Decimal
	OriginalAmount  *decimal.Decimal
	FinalAmount     *decimal.Decimal
}

// UpdateOrderInput carries an order update. Items replaces every detail; nil is rejected.
type UpdateOrderInput struct {
	Fields        entity.OrderUpdate
	PaymentStatus *string
	Items         []ItemInput
}

// orderUsecase はorderとpaymentをまたぐ書き込みをひとつのトランザクションで実行します。
type orderUsecase struct {
	orders   OrderRepository
	payments PaymentRepository
	tx       Transactor
	now      func() time.Time
}

// NewOrderUsecase はorderUsecaseの新しいインスタンスを生成します。
func NewOrderUsecase(orders OrderRepository, payments PaymentRepository, tx Transactor) *orderUsecase {
	return &orderUsecase{orders: orders, payments: payments, tx: tx, now: time.Now}
}

func negative(d *decimal.Decimal) bool {
	return d != nil && d.IsNegative()
}

func validateItems(items []ItemInput) error {
	for _, it := range items {
		if it.ProductID == 0 || it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			return ErrInvalidOrder
		}
	}
	return nil
}

func (in CreateOrderInput) validate() error {
	if in.UserID == 0 || len(in.Items) == 0 || in.PaymentMethod == "" || in.TotalAmount == nil ||
		in.FullName == "" || in.ShippingAddress == "" || in.PhoneNumber == "" ||
		in.ShippingMethod == "" || in.ShippingPrice == nil {
		return ErrInvalidOrder
	}
	if negative(in.TotalAmount) || negative(in.ShippingPrice) || negative(in.DiscountAmount) ||
		negative(in.OriginalAmount) || negative(in.FinalAmount) {
		return ErrInvalidOrder
	}
	return validateItems(in.Items)
}

func toDetails(items []ItemInput) []entity.OrderDetail {
	details := make([]entity.OrderDetail, 0, len(items))
	for _, it := range items {
		details = append(details, entity.OrderDetail{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return details
}

func valueOr(d *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if d == nil {
		return fallback
	}
	return *d
}

// CreateOrder は注文・明細・支払いをひとつのトランザクションで作成します。
// いずれかの書き込みが失敗した場合、何も保存されません。
func (u *orderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (*entity.Order, *entity.Payment, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}

	orderDate := u.now()
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}
	total := *in.TotalAmount

	order := &entity.Order{
		UserID:          in.UserID,
		OrderDate:       orderDate,
		Status:          entity.StatusProcessing,
		TotalAmount:     total,
		FullName:        in.FullName,
		ShippingAddress: in.ShippingAddress,
		PhoneNumber:     in.PhoneNumber,
		ShippingMethod:  in.ShippingMethod,
		ShippingPrice:   *in.ShippingPrice,
		DiscountID:      in.DiscountID,
		DiscountAmount:  valueOr(in.DiscountAmount, decimal.Zero),
		OriginalAmount:  valueOr(in.OriginalAmount, total),
		FinalAmount:     valueOr(in.FinalAmount, total),
		Details:         toDetails(in.Items),
	}
	var payment *entity.Payment

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.orders.Create(ctx, order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		payment = &entity.Payment{
			OrderID:       order.ID,
			Amount:        total,
			PaymentMethod: in.PaymentMethod,
			PaymentStatus: entity.PaymentStatusPending,
		}
		if err := u.payments.Create(ctx, payment); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindInternal, "Failed to create order", err)
	}

	slog.Info("order created", "order_id", order.ID, "payment_id", payment.ID, "user_id", order.UserID)
	return order, payment, nil
}

// GetOrders returns every order with its details and payments.
func (u *orderUsecase) GetOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := u.orders.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to retrieve orders", err)
	}
	return orders, nil
}

// GetOrderByID returns ErrOrderNotFound when the order does not exist.
func (u *orderUsecase) GetOrderByID(ctx context.Context, id uint) (*entity.Order, error) {
	order, err := u.orders.FindByID(ctx, id)
	if err != nil {
		return nil, wrapLookup(err, ErrOrderNotFound, "Failed to retrieve order")
	}
	return order, nil
}

// GetOrdersByUserID は空の結果を ErrNoOrdersForUser として扱います。
func (u *orderUsecase) GetOrdersByUserID(ctx context.Context, userID uint) ([]entity.Order, error) {
	orders, err := u.orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to retrieve orders", err)
	}
	if len(orders) == 0 {
		return nil, ErrNoOrdersForUser
	}
	return orders, nil
}

// UpdateOrder は注文の更新、支払いの更新、明細の置き換えをひとつのトランザクションで行います。
func (u *orderUsecase) UpdateOrder(ctx context.Context, id uint, in UpdateOrderInput) (*entity.Order, error) {
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.orders.FindByID(ctx, id); err != nil {
			return err
		}
		if in.Items == nil || negative(in.Fields.TotalAmount) {
			return ErrInvalidOrder
		}
		if err := validateItems(in.Items); err != nil {
			return err
		}

		if err := u.orders.UpdateFields(ctx, id, in.Fields); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if in.PaymentStatus != nil || in.Fields.TotalAmount != nil {
			if err := u.payments.UpdateByOrderID(ctx, id, in.PaymentStatus, in.Fields.TotalAmount); err != nil {
				return fmt.Errorf("update payments: %w", err)
			}
		}
		if err := u.orders.DeleteDetails(ctx, id); err != nil {
			return fmt.Errorf("delete details: %w", err)
		}
		if err := u.orders.CreateDetails(ctx, id, toDetails(in.Items)); err != nil {
			return fmt.Errorf("insert details: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, wrapLookup(err, ErrOrderNotFound, "Failed to update order")
	}

	slog.Info("order updated", "order_id", id, "items", len(in.Items))
	return u.GetOrderByID(ctx, id)
}

// DeleteOrder は明細、支払い、注文の順にひとつのトランザクションで削除します。
func (u *orderUsecase) DeleteOrder(ctx context.Context, id uint) error {
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.orders.DeleteDetails(ctx, id); err != nil {
			return fmt.Errorf("delete details: %w", err)
		}
		if err := u.payments.DeleteByOrderID(ctx, id); err != nil {
			return fmt.Errorf("delete payments: %w", err)
		}
		return u.orders.Delete(ctx, id)
	})
	if err != nil {
		return wrapLookup(err, ErrOrderNotFound, "Failed to delete order")
	}
	slog.Info("order deleted", "order_id", id)
	return nil
}

// wrapLookup passes application errors through and wraps anything else as internal.
func wrapLookup(err, notFound error, message string) error {
	if errors.Is(err, notFound) {
		return notFound
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Wrap(apperr.KindInternal, message, err)
}
