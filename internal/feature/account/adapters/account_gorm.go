// Package adapters はaccountフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"storefront_backend/internal/feature/account/usecase"
	"storefront_backend/internal/feature/auth/domain/entity"
	"storefront_backend/internal/platform/db"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
type userGorm struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts u. HealthInfo is written separately by the caller.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := db.Conn(ctx, r.db).Omit("HealthInfo").Create(u).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrUsernameTaken
		}
		return err
	}
	return nil
}

// FindAll returns every user ordered by id.
func (r *userGorm) FindAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := db.Conn(ctx, r.db).Preload("HealthInfo").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByID はIDでユーザーを取得します。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := db.Conn(ctx, r.db).Preload("HealthInfo").First(&u, id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// healthInfoGorm はHealthInfoRepositoryインターフェースのGORM実装です。
type healthInfoGorm struct {
	db *gorm.DB
}

var _ usecase.HealthInfoRepository = (*healthInfoGorm)(nil)

// NewHealthInfoGorm は指定されたgorm.DB接続でhealthInfoGormの新しいインスタンスを生成します。
func NewHealthInfoGorm(db *gorm.DB) *healthInfoGorm {
	return &healthInfoGorm{db: db}
}

func (r *healthInfoGorm) Create(ctx context.Context, h *entity.HealthInfo) error {
	return db.Conn(ctx, r.db).Create(h).Error
}

func (r *healthInfoGorm) FindAll(ctx context.Context) ([]entity.HealthInfo, error) {
	var list []entity.HealthInfo
	if err := db.Conn(ctx, r.db).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// FindByUserID はユーザーIDでヘルスプロフィールを取得します。
func (r *healthInfoGorm) FindByUserID(ctx context.Context, userID uint) (*entity.HealthInfo, error) {
	var h entity.HealthInfo
	if err := db.Conn(ctx, r.db).Where("user_id = ?", userID).First(&h).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrHealthInfoNotFound
		}
		return nil, err
	}
	return &h, nil
}

// Update は指定された列のみ更新します。
func (r *healthInfoGorm) Update(ctx context.Context, userID uint, upd entity.HealthInfoUpdate) error {
	cols := upd.Columns()
	if len(cols) == 0 {
		_, err := r.FindByUserID(ctx, userID)
		return err
	}
	res := db.Conn(ctx, r.db).Model(&entity.HealthInfo{}).Where("user_id = ?", userID).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrHealthInfoNotFound
	}
	return nil
}
