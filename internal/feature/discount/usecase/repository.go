package usecase

import (
	"context"

	"storefront_backend/internal/feature/discount/domain/entity"
)

// DiscountRepository abstracts persistence of discount codes.
type DiscountRepository interface {
	// Create returns ErrDiscountCodeTaken on a duplicate code.
	Create(ctx context.Context, d *entity.Discount) error
	FindAll(ctx context.Context) ([]entity.Discount, error)
	// FindByID returns ErrDiscountNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*entity.Discount, error)
	// Update returns ErrDiscountNotFound or ErrDiscountCodeTaken.
	Update(ctx context.Context, id uint, upd entity.DiscountUpdate) error
	// Delete returns ErrDiscountNotFound when no row matches.
	Delete(ctx context.Context, id uint) error
}

// UserDiscountRepository abstracts persistence of discount grants.
type UserDiscountRepository interface {
	// Create returns ErrAlreadyGranted when the pair already exists.
	Create(ctx context.Context, ud *entity.UserDiscount) error
	// CreateBatch inserts every grant in one statement.
	CreateBatch(ctx context.Context, uds []entity.UserDiscount) error
	// FindByUserID returns the user's grants with the discount preloaded. status "" matches any.
	FindByUserID(ctx context.Context, userID uint, status string) ([]entity.UserDiscount, error)
	// FindByID returns ErrUserDiscountNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*entity.UserDiscount, error)
	// Update returns ErrUserDiscountNotFound or ErrAlreadyGranted.
	Update(ctx context.Context, id uint, upd entity.UserDiscountUpdate) error
	// Delete returns ErrUserDiscountNotFound when no row matches.
	Delete(ctx context.Context, id uint) error
	DeleteByDiscountID(ctx context.Context, discountID uint) error

	UserExists(ctx context.Context, userID uint) (bool, error)
	CountUsers(ctx context.Context) (int64, error)
	// UserIDsWithout lists users that do not hold discountID, ordered by id.
	UserIDsWithout(ctx context.Context, discountID uint) ([]uint, error)
}

// Transactor runs fn atomically. *db.Transactor satisfies it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
