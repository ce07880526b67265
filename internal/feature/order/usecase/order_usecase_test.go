package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_backend/internal/feature/order/domain/entity"
	"storefront_backend/internal/shared/apperr"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strp(s string) *string { return &s }

func validInput() CreateOrderInput {
	return CreateOrderInput{
		UserID:          5,
		Items:           []ItemInput{{ProductID: 10, Quantity: 2, UnitPrice: decimal.RequireFromString("25.00")}},
		PaymentMethod:   "bank_transfer",
		TotalAmount:     dec("60.00"),
		FullName:        "Alice Smith",
		ShippingAddress: "1 Main St",
		PhoneNumber:     "0812345678",
		ShippingMethod:  "EMS",
		ShippingPrice:   dec("10.00"),
	}
}

func TestOrderUsecase_CreateOrder(t *testing.T) {
	now := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	t.Run("writes order then payment in one transaction", func(t *testing.T) {
		orders := &mockOrderRepository{}
		payments := &mockPaymentRepository{calls: &orders.calls}
		tx := &fakeTransactor{}
		uc := NewOrderUsecase(orders, payments, tx)
		uc.now = func() time.Time { return now }

		order, payment, err := uc.CreateOrder(context.Background(), validInput())

		require.NoError(t, err)
		assert.Equal(t, 1, tx.count)
		assert.Equal(t, []string{"orders.Create", "payments.Create"}, orders.calls)

		assert.Equal(t, entity.StatusProcessing, order.Status)
		assert.Equal(t, now, order.OrderDate)
		assert.True(t, order.DiscountAmount.IsZero())
		assert.True(t, order.OriginalAmount.Equal(decimal.RequireFromString("60")))
		assert.True(t, order.FinalAmount.Equal(decimal.RequireFromString("60")))
		require.Len(t, order.Details, 1)
		assert.Equal(t, uint(10), order.Details[0].ProductID)

		assert.Equal(t, order.ID, payment.OrderID)
		assert.Equal(t, entity.PaymentStatusPending, payment.PaymentStatus)
		assert.Equal(t, "bank_transfer", payment.PaymentMethod)
		assert.True(t, payment.Amount.Equal(order.TotalAmount))
	})

	t.Run("keeps supplied discount fields and date", func(t *testing.T) {
		uc := NewOrderUsecase(&mockOrderRepository{}, &mockPaymentRepository{}, &fakeTransactor{})
		in := validInput()
		date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		discountID := uint(3)
		in.OrderDate = &date
		in.DiscountID = &discountID
		in.DiscountAmount = dec("6.00")
		in.OriginalAmount = dec("66.00")
		in.FinalAmount = dec("60.00")

		order, _, err := uc.CreateOrder(context.Background(), in)

		require.NoError(t, err)
		assert.Equal(t, date, order.OrderDate)
		assert.Equal(t, &discountID, order.DiscountID)
		assert.True(t, order.DiscountAmount.Equal(decimal.RequireFromString("6")))
		assert.True(t, order.OriginalAmount.Equal(decimal.RequireFromString("66")))
	})

	t.Run("free shipping is allowed", func(t *testing.T) {
		uc := NewOrderUsecase(&mockOrderRepository{}, &mockPaymentRepository{}, &fakeTransactor{})
		in := validInput()
		in.ShippingPrice = dec("0")

		_, _, err := uc.CreateOrder(context.Background(), in)

		assert.NoError(t, err)
	})

	invalid := []struct {
		name   string
		mutate func(*CreateOrderInput)
	}{
		{"missing user", func(in *CreateOrderInput) { in.UserID = 0 }},
		{"no items", func(in *CreateOrderInput) { in.Items = nil }},
		{"missing payment method", func(in *CreateOrderInput) { in.PaymentMethod = "" }},
		{"missing total", func(in *CreateOrderInput) { in.TotalAmount = nil }},
		{"missing full name", func(in *CreateOrderInput) { in.FullName = "" }},
		{"missing address", func(in *CreateOrderInput) { in.ShippingAddress = "" }},
		{"missing phone", func(in *CreateOrderInput) { in.PhoneNumber = "" }},
		{"missing shipping method", func(in *CreateOrderInput) { in.ShippingMethod = "" }},
		{"missing shipping price", func(in *CreateOrderInput) { in.ShippingPrice = nil }},
		{"negative total", func(in *CreateOrderInput) { in.TotalAmount = dec("-1") }},
		{"zero quantity", func(in *CreateOrderInput) { in.Items[0].Quantity = 0 }},
		{"missing product", func(in *CreateOrderInput) { in.Items[0].ProductID = 0 }},
	}
	for _, tt := range invalid {
		t.Run("invalid: "+tt.name, func(t *testing.T) {
			orders := &mockOrderRepository{}
			tx := &fakeTransactor{}
			uc := NewOrderUsecase(orders, &mockPaymentRepository{}, tx)
			in := validInput()
			tt.mutate(&in)

			_, _, err := uc.CreateOrder(context.Background(), in)

			assert.ErrorIs(t, err, ErrInvalidOrder)
			assert.Zero(t, tx.count, "nothing may be written")
			assert.Empty(t, orders.calls)
		})
	}

	t.Run("payment failure is internal", func(t *testing.T) {
		payments := &mockPaymentRepository{CreateFunc: func(*entity.Payment) error { return errors.New("disk full") }}
		uc := NewOrderUsecase(&mockOrderRepository{}, payments, &fakeTransactor{})

		_, _, err := uc.CreateOrder(context.Background(), validInput())

		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
		assert.Equal(t, "Failed to create order", apperr.MessageOf(err, ""))
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestOrderUsecase_Reads(t *testing.T) {
	orders := &mockOrderRepository{
		FindByIDFunc: func(id uint) (*entity.Order, error) {
			if id == 1 {
				return &entity.Order{ID: 1}, nil
			}
			return nil, ErrOrderNotFound
		},
		FindByUserIDFunc: func(userID uint) ([]entity.Order, error) {
			if userID == 5 {
				return []entity.Order{{ID: 1, UserID: 5}}, nil
			}
			return []entity.Order{}, nil
		},
		FindAllFunc: func() ([]entity.Order, error) { return nil, errors.New("db down") },
	}
	uc := NewOrderUsecase(orders, &mockPaymentRepository{}, &fakeTransactor{})
	ctx := context.Background()

	o, err := uc.GetOrderByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), o.ID)

	_, err = uc.GetOrderByID(ctx, 2)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	list, err := uc.GetOrdersByUserID(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.GetOrdersByUserID(ctx, 6)
	assert.ErrorIs(t, err, ErrNoOrdersForUser)

	_, err = uc.GetOrders(ctx)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestOrderUsecase_UpdateOrder(t *testing.T) {
	t.Run("updates order, payments and replaces details", func(t *testing.T) {
		var gotStatus *string
		var gotAmount *decimal.Decimal
		var gotDetails []entity.OrderDetail
		orders := &mockOrderRepository{
			CreateDetailsFunc: func(orderID uint, details []entity.OrderDetail) error {
				assert.Equal(t, uint(4), orderID)
				gotDetails = details
				return nil
			},
		}
		payments := &mockPaymentRepository{
			calls: &orders.calls,
			UpdateByOrderIDFunc: func(orderID uint, status *string, amount *decimal.Decimal) error {
				gotStatus, gotAmount = status, amount
				return nil
			},
		}
		tx := &fakeTransactor{}
		uc := NewOrderUsecase(orders, payments, tx)

		in := UpdateOrderInput{
			Fields:        entity.OrderUpdate{Status: strp("shipped"), TotalAmount: dec("80.00")},
			PaymentStatus: strp("paid"),
			Items: []ItemInput{
				{ProductID: 1, Quantity: 1, UnitPrice: decimal.RequireFromString("30")},
				{ProductID: 2, Quantity: 2, UnitPrice: decimal.RequireFromString("25")},
			},
		}
		_, err := uc.UpdateOrder(context.Background(), 4, in)

		require.NoError(t, err)
		assert.Equal(t, 1, tx.count)
		assert.Equal(t, []string{
			"orders.FindByID", "orders.UpdateFields", "payments.UpdateByOrderID",
			"orders.DeleteDetails", "orders.CreateDetails", "orders.FindByID",
		}, orders.calls)
		assert.Equal(t, "paid", *gotStatus)
		assert.True(t, gotAmount.Equal(decimal.RequireFromString("80")))
		assert.Len(t, gotDetails, 2)
	})

	t.Run("empty items leaves zero details", func(t *testing.T) {
		var created []entity.OrderDetail
		orders := &mockOrderRepository{CreateDetailsFunc: func(_ uint, d []entity.OrderDetail) error {
			created = d
			return nil
		}}
		payments := &mockPaymentRepository{UpdateByOrderIDFunc: func(uint, *string, *decimal.Decimal) error {
			t.Error("payments must not be touched without status or amount")
			return nil
		}}
		uc := NewOrderUsecase(orders, payments, &fakeTransactor{})

		_, err := uc.UpdateOrder(context.Background(), 4, UpdateOrderInput{Items: []ItemInput{}})

		require.NoError(t, err)
		assert.Contains(t, orders.calls, "orders.DeleteDetails")
		assert.Empty(t, created)
	})

	t.Run("missing order is checked first", func(t *testing.T) {
		orders := &mockOrderRepository{FindByIDFunc: func(uint) (*entity.Order, error) { return nil, ErrOrderNotFound }}
		uc := NewOrderUsecase(orders, &mockPaymentRepository{}, &fakeTransactor{})

		_, err := uc.UpdateOrder(context.Background(), 99, UpdateOrderInput{})

		assert.ErrorIs(t, err, ErrOrderNotFound)
		assert.Equal(t, []string{"orders.FindByID"}, orders.calls)
	})

	t.Run("items are required", func(t *testing.T) {
		orders := &mockOrderRepository{}
		uc := NewOrderUsecase(orders, &mockPaymentRepository{}, &fakeTransactor{})

		_, err := uc.UpdateOrder(context.Background(), 4, UpdateOrderInput{})

		assert.ErrorIs(t, err, ErrInvalidOrder)
		assert.NotContains(t, orders.calls, "orders.UpdateFields")
	})

	t.Run("detail failure is internal", func(t *testing.T) {
		orders := &mockOrderRepository{CreateDetailsFunc: func(uint, []entity.OrderDetail) error {
			return errors.New("constraint")
		}}
		uc := NewOrderUsecase(orders, &mockPaymentRepository{}, &fakeTransactor{})

		_, err := uc.UpdateOrder(context.Background(), 4, UpdateOrderInput{Items: []ItemInput{{ProductID: 1, Quantity: 1}}})

		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
		assert.Equal(t, "Failed to update order", apperr.MessageOf(err, ""))
	})
}

func TestOrderUsecase_DeleteOrder(t *testing.T) {
	t.Run("deletes details, payments, order in order", func(t *testing.T) {
		orders := &mockOrderRepository{}
		payments := &mockPaymentRepository{calls: &orders.calls}
		tx := &fakeTransactor{}
		uc := NewOrderUsecase(orders, payments, tx)

		require.NoError(t, uc.DeleteOrder(context.Background(), 3))
		assert.Equal(t, 1, tx.count)
		assert.Equal(t, []string{"orders.DeleteDetails", "payments.DeleteByOrderID", "orders.Delete"}, orders.calls)
	})

	t.Run("missing order", func(t *testing.T) {
		orders := &mockOrderRepository{DeleteFunc: func(uint) error { return ErrOrderNotFound }}
		uc := NewOrderUsecase(orders, &mockPaymentRepository{}, &fakeTransactor{})

		assert.ErrorIs(t, uc.DeleteOrder(context.Background(), 3), ErrOrderNotFound)
	})
}
