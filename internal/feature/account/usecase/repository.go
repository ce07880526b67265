package usecase

import (
	"context"
	"io"

	"storefront_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts persistence of user accounts.
type UserRepository interface {
	// Create inserts u without its associations. 重複時は ErrUsernameTaken を返します。
	Create(ctx context.Context, u *entity.User) error
	// FindAll returns every user with the health profile preloaded.
	FindAll(ctx context.Context) ([]entity.User, error)
	// FindByID returns ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// HealthInfoRepository abstracts persistence of health profiles.
type HealthInfoRepository interface {
	Create(ctx context.Context, h *entity.HealthInfo) error
	FindAll(ctx context.Context) ([]entity.HealthInfo, error)
	// FindByUserID returns ErrHealthInfoNotFound when no row matches.
	FindByUserID(ctx context.Context, userID uint) (*entity.HealthInfo, error)
	// Update returns ErrHealthInfoNotFound when no row matches.
	Update(ctx context.Context, userID uint, upd entity.HealthInfoUpdate) error
}

// Transactor runs fn atomically. *db.Transactor satisfies it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// FileStore saves uploaded files and returns their public path.
type FileStore interface {
	Save(ctx context.Context, dir, originalName string, r io.Reader) (string, error)
}
