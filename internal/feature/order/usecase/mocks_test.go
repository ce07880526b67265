package usecase

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"storefront_backend/internal/feature/order/domain/entity"
)

// mockOrderRepository is a mock implementation of OrderRepository.
type mockOrderRepository struct {
	CreateFunc        func(o *entity.Order) error
	FindAllFunc       func() ([]entity.Order, error)
	FindByIDFunc      func(id uint) (*entity.Order, error)
	FindByUserIDFunc  func(userID uint) ([]entity.Order, error)
	UpdateFieldsFunc  func(id uint, upd entity.OrderUpdate) error
	DeleteDetailsFunc func(orderID uint) error
	CreateDetailsFunc func(orderID uint, details []entity.OrderDetail) error
	DeleteFunc        func(id uint) error

	calls []string
}

func (m *mockOrderRepository) Create(_ context.Context, o *entity.Order) error {
	m.calls = append(m.calls, "orders.Create")
	if m.CreateFunc != nil {
		return m.CreateFunc(o)
	}
	o.ID = 1
	return nil
}

func (m *mockOrderRepository) FindAll(context.Context) ([]entity.Order, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc()
	}
	return nil, nil
}

func (m *mockOrderRepository) FindByID(_ context.Context, id uint) (*entity.Order, error) {
	m.calls = append(m.calls, "orders.FindByID")
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return &entity.Order{ID: id}, nil
}

func (m *mockOrderRepository) FindByUserID(_ context.Context, userID uint) ([]entity.Order, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(userID)
	}
	return nil, nil
}

func (m *mockOrderRepository) UpdateFields(_ context.Context, id uint, upd entity.OrderUpdate) error {
	m.calls = append(m.calls, "orders.UpdateFields")
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(id, upd)
	}
	return nil
}

func (m *mockOrderRepository) DeleteDetails(_ context.Context, orderID uint) error {
	m.calls = append(m.calls, "orders.DeleteDetails")
	if m.DeleteDetailsFunc != nil {
		return m.DeleteDetailsFunc(orderID)
	}
	return nil
}

func (m *mockOrderRepository) CreateDetails(_ context.Context, orderID uint, details []entity.OrderDetail) error {
	m.calls = append(m.calls, "orders.CreateDetails")
	if m.CreateDetailsFunc != nil {
		return m.CreateDetailsFunc(orderID, details)
	}
	return nil
}

func (m *mockOrderRepository) Delete(_ context.Context, id uint) error {
	m.calls = append(m.calls, "orders.Delete")
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

// mockPaymentRepository is a mock implementation of PaymentRepository.
type mockPaymentRepository struct {
	CreateFunc          func(p *entity.Payment) error
	UpdateByOrderIDFunc func(orderID uint, status *string, amount *decimal.Decimal) error
	DeleteByOrderIDFunc func(orderID uint) error
	FindAllFunc         func() ([]entity.Payment, error)
	FindByIDFunc        func(id uint) (*entity.Payment, error)
	FindByUserIDFunc    func(userID uint) ([]entity.Payment, error)
	UpdateFunc          func(id uint, upd entity.PaymentUpdate) error

	calls *[]string
}

func (m *mockPaymentRepository) record(name string) {
	if m.calls != nil {
		*m.calls = append(*m.calls, name)
	}
}

func (m *mockPaymentRepository) Create(_ context.Context, p *entity.Payment) error {
	m.record("payments.Create")
	if m.CreateFunc != nil {
		return m.CreateFunc(p)
	}
	p.ID = 1
	return nil
}

func (m *mockPaymentRepository) UpdateByOrderID(_ context.Context, orderID uint, status *string, amount *decimal.Decimal) error {
	m.record("payments.UpdateByOrderID")
	if m.UpdateByOrderIDFunc != nil {
		return m.UpdateByOrderIDFunc(orderID, status, amount)
	}
	return nil
}

func (m *mockPaymentRepository) DeleteByOrderID(_ context.Context, orderID uint) error {
	m.record("payments.DeleteByOrderID")
	if m.DeleteByOrderIDFunc != nil {
		return m.DeleteByOrderIDFunc(orderID)
	}
	return nil
}

func (m *mockPaymentRepository) FindAll(context.Context) ([]entity.Payment, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc()
	}
	return nil, nil
}

func (m *mockPaymentRepository) FindByID(_ context.Context, id uint) (*entity.Payment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return &entity.Payment{ID: id}, nil
}

func (m *mockPaymentRepository) FindByUserID(_ context.Context, userID uint) ([]entity.Payment, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(userID)
	}
	return nil, nil
}

func (m *mockPaymentRepository) Update(_ context.Context, id uint, upd entity.PaymentUpdate) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, upd)
	}
	return nil
}

// fakeTransactor runs fn inline and counts transactions.
type fakeTransactor struct {
	count int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.count++
	return fn(ctx)
}

// mockFileStore is a mock implementation of FileStore.
type mockFileStore struct {
	SaveFunc func(dir, name string, r io.Reader) (string, error)
	saved    int
}

func (m *mockFileStore) Save(_ context.Context, dir, name string, r io.Reader) (string, error) {
	m.saved++
	if m.SaveFunc != nil {
		return m.SaveFunc(dir, name, r)
	}
	return "/" + dir + "/1.png", nil
}
