package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_backend/internal/feature/discount/domain/entity"
	"storefront_backend/internal/shared/apperr"
)

// mockDiscountRepo embeds the interface so tests only stub what they call.
type mockDiscountRepo struct {
	DiscountRepository
	CreateFunc   func(d *entity.Discount) error
	FindByIDFunc func(id uint) (*entity.Discount, error)
}

func (m *mockDiscountRepo) Create(_ context.Context, d *entity.Discount) error {
	return m.CreateFunc(d)
}

func (m *mockDiscountRepo) FindByID(_ context.Context, id uint) (*entity.Discount, error) {
	return m.FindByIDFunc(id)
}

type mockGrantRepo struct {
	UserDiscountRepository
	exists bool
	err    error
}

func (m *mockGrantRepo) UserExists(context.Context, uint) (bool, error) { return m.exists, m.err }

type passTransactor struct{}

func (passTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func dec(n int64) *decimal.Decimal {
	v := decimal.NewFromInt(n)
	return &v
}

func TestCreateDiscount_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   CreateDiscountInput
	}{
		{"missing code", CreateDiscountInput{Percent: dec(10)}},
		{"blank code", CreateDiscountInput{Code: "   "}},
		{"negative amount", CreateDiscountInput{Code: "A", Amount: dec(-1)}},
		{"percent over 100", CreateDiscountInput{Code: "A", Percent: dec(101)}},
		{"negative percent", CreateDiscountInput{Code: "A", Percent: dec(-5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockDiscountRepo{CreateFunc: func(*entity.Discount) error {
				t.Fatal("Create should not be called")
				return nil
			}}
			uc := NewDiscountUsecase(repo, &mockGrantRepo{}, passTransactor{})

			_, err := uc.CreateDiscount(context.Background(), tt.in)
			assert.ErrorIs(t, err, ErrInvalidDiscount)
		})
	}
}

func TestCreateDiscount_TrimsCode(t *testing.T) {
	var saved *entity.Discount
	repo := &mockDiscountRepo{CreateFunc: func(d *entity.Discount) error {
		saved = d
		d.ID = 1
		return nil
	}}
	uc := NewDiscountUsecase(repo, &mockGrantRepo{}, passTransactor{})

	d, err := uc.CreateDiscount(context.Background(), CreateDiscountInput{Code: " SPRING ", Percent: dec(100)})
	require.NoError(t, err)
	assert.Same(t, saved, d)
	assert.Equal(t, "SPRING", d.Code)
	assert.Equal(t, entity.StatusActive, d.Status)
}

func TestCreateDiscount_StorageFailure(t *testing.T) {
	repo := &mockDiscountRepo{CreateFunc: func(*entity.Discount) error { return errors.New("db down") }}
	uc := NewDiscountUsecase(repo, &mockGrantRepo{}, passTransactor{})

	_, err := uc.CreateDiscount(context.Background(), CreateDiscountInput{Code: "A"})
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Equal(t, "Failed to create discount", apperr.MessageOf(err, ""))
}

func TestGrant_Guards(t *testing.T) {
	found := func(uint) (*entity.Discount, error) { return &entity.Discount{ID: 1}, nil }

	t.Run("missing ids", func(t *testing.T) {
		uc := NewDiscountUsecase(&mockDiscountRepo{}, &mockGrantRepo{}, passTransactor{})
		_, err := uc.Grant(context.Background(), 0, 1)
		assert.ErrorIs(t, err, ErrInvalidUserDiscount)
	})

	t.Run("unknown user", func(t *testing.T) {
		uc := NewDiscountUsecase(&mockDiscountRepo{FindByIDFunc: found}, &mockGrantRepo{exists: false}, passTransactor{})
		_, err := uc.Grant(context.Background(), 5, 1)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("user lookup failure", func(t *testing.T) {
		uc := NewDiscountUsecase(&mockDiscountRepo{FindByIDFunc: found}, &mockGrantRepo{err: errors.New("timeout")}, passTransactor{})
		_, err := uc.Grant(context.Background(), 5, 1)
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	})

	t.Run("apply to all without id", func(t *testing.T) {
		uc := NewDiscountUsecase(&mockDiscountRepo{}, &mockGrantRepo{}, passTransactor{})
		_, err := uc.ApplyToAll(context.Background(), 0)
		assert.ErrorIs(t, err, ErrInvalidUserDiscount)
	})
}
