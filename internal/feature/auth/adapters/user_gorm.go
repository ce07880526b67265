// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"storefront_backend/internal/feature/auth/domain/entity"
	"storefront_backend/internal/feature/auth/usecase"
	"storefront_backend/internal/platform/db"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// FindByUserName はユーザー名でユーザーを取得します。
func (r *userGorm) FindByUserName(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	if err := db.Conn(ctx, r.db).Where("username = ?", username).First(&u).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByUserNameOrEmail はユーザー名またはヘルスプロフィールのメールで最初に一致したユーザーを取得します。
func (r *userGorm) FindByUserNameOrEmail(ctx context.Context, value string) (*entity.User, error) {
	byEmail := r.db.Model(&entity.HealthInfo{}).Select("user_id").Where("email = ?", value)

	var u entity.User
	err := db.Conn(ctx, r.db).
		Preload("HealthInfo").
		Where("username = ? OR id IN (?)", value, byEmail).
		Order("id").
		First(&u).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetResetToken は保留中のリセットトークンを上書きします。
func (r *userGorm) SetResetToken(ctx context.Context, userID uint, token string, expiry time.Time) error {
	res := db.Conn(ctx, r.db).Model(&entity.User{}).Where("id = ?", userID).Updates(map[string]any{
		"reset_token":        token,
		"reset_token_expiry": expiry.UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// FindByValidResetToken は有効期限内のトークンを持つユーザーを取得します。
func (r *userGorm) FindByValidResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error) {
	var u entity.User
	err := db.Conn(ctx, r.db).
		Where("reset_token = ? AND reset_token_expiry >= ?", token, now.UTC()).
		First(&u).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ConsumeResetToken はトークン値を条件にした1つのUPDATEで、パスワードの書き換えとトークンの消去を行います。
func (r *userGorm) ConsumeResetToken(ctx context.Context, userID uint, token string, now time.Time, passwordHash string) (bool, error) {
	res := db.Conn(ctx, r.db).Model(&entity.User{}).
		Where("id = ? AND reset_token = ? AND reset_token_expiry >= ?", userID, token, now.UTC()).
		Updates(map[string]any{
			"password":           passwordHash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
