// Package adapters はdiscountフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	authentity "storefront_backend/internal/feature/auth/domain/entity"
	"storefront_backend/internal/feature/discount/domain/entity"
	"storefront_backend/internal/feature/discount/usecase"
	"storefront_backend/internal/platform/db"
)

// discountGorm はDiscountRepositoryインターフェースのGORM実装です。
type discountGorm struct {
	db *gorm.DB
}

var _ usecase.DiscountRepository = (*discountGorm)(nil)

// NewDiscountGorm は指定されたgorm.DB接続でdiscountGormの新しいインスタンスを生成します。
func NewDiscountGorm(db *gorm.DB) *discountGorm {
	return &discountGorm{db: db}
}

func (r *discountGorm) Create(ctx context.Context, d *entity.Discount) error {
	if err := db.Conn(ctx, r.db).Create(d).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrDiscountCodeTaken
		}
		return err
	}
	return nil
}

func (r *discountGorm) FindAll(ctx context.Context) ([]entity.Discount, error) {
	var list []entity.Discount
	if err := db.Conn(ctx, r.db).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *discountGorm) FindByID(ctx context.Context, id uint) (*entity.Discount, error) {
	var d entity.Discount
	if err := db.Conn(ctx, r.db).First(&d, id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrDiscountNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Update は指定された列のみ更新します。
func (r *discountGorm) Update(ctx context.Context, id uint, upd entity.DiscountUpdate) error {
	cols := upd.Columns()
	if len(cols) == 0 {
		_, err := r.FindByID(ctx, id)
		return err
	}
	res := db.Conn(ctx, r.db).Model(&entity.Discount{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		if db.IsDuplicateKey(res.Error) {
			return usecase.ErrDiscountCodeTaken
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrDiscountNotFound
	}
	return nil
}

func (r *discountGorm) Delete(ctx context.Context, id uint) error {
	res := db.Conn(ctx, r.db).Delete(&entity.Discount{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrDiscountNotFound
	}
	return nil
}

// userDiscountGorm はUserDiscountRepositoryインターフェースのGORM実装です。
type userDiscountGorm struct {
	db *gorm.DB
}

var _ usecase.UserDiscountRepository = (*userDiscountGorm)(nil)

// NewUserDiscountGorm は指定されたgorm.DB接続でuserDiscountGormの新しいインスタンスを生成します。
func NewUserDiscountGorm(db *gorm.DB) *userDiscountGorm {
	return &userDiscountGorm{db: db}
}

func (r *userDiscountGorm) Create(ctx context.Context, ud *entity.UserDiscount) error {
	if err := db.Conn(ctx, r.db).Omit("Discount").Create(ud).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrAlreadyGranted
		}
		return err
	}
	return nil
}

func (r *userDiscountGorm) CreateBatch(ctx context.Context, uds []entity.UserDiscount) error {
	if err := db.Conn(ctx, r.db).Omit("Discount").Create(&uds).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrAlreadyGranted
		}
		return err
	}
	return nil
}

// FindByUserID はユーザーの付与を割引付きで取得します。
func (r *userDiscountGorm) FindByUserID(ctx context.Context, userID uint, status string) ([]entity.UserDiscount, error) {
	q := db.Conn(ctx, r.db).Preload("Discount").Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []entity.UserDiscount
	if err := q.Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *userDiscountGorm) FindByID(ctx context.Context, id uint) (*entity.UserDiscount, error) {
	var ud entity.UserDiscount
	if err := db.Conn(ctx, r.db).Preload("Discount").First(&ud, id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrUserDiscountNotFound
		}
		return nil, err
	}
	return &ud, nil
}

func (r *userDiscountGorm) Update(ctx context.Context, id uint, upd entity.UserDiscountUpdate) error {
	cols := upd.Columns()
	if len(cols) == 0 {
		_, err := r.FindByID(ctx, id)
		return err
	}
	res := db.Conn(ctx, r.db).Model(&entity.UserDiscount{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		if db.IsDuplicateKey(res.Error) {
			return usecase.ErrAlreadyGranted
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserDiscountNotFound
	}
	return nil
}

func (r *userDiscountGorm) Delete(ctx context.Context, id uint) error {
	res := db.Conn(ctx, r.db).Delete(&entity.UserDiscount{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserDiscountNotFound
	}
	return nil
}

func (r *userDiscountGorm) DeleteByDiscountID(ctx context.Context, discountID uint) error {
	return db.Conn(ctx, r.db).Where("discount_id = ?", discountID).Delete(&entity.UserDiscount{}).Error
}

func (r *userDiscountGorm) UserExists(ctx context.Context, userID uint) (bool, error) {
	var n int64
	if err := db.Conn(ctx, r.db).Model(&authentity.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *userDiscountGorm) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := db.Conn(ctx, r.db).Model(&authentity.User{}).Count(&n).Error
	return n, err
}

// UserIDsWithout は discountID を持たないユーザーのIDを返します。
func (r *userDiscountGorm) UserIDsWithout(ctx context.Context, discountID uint) ([]uint, error) {
	granted := r.db.Model(&entity.UserDiscount{}).Select("user_id").Where("discount_id = ?", discountID)

	var ids []uint
	err := db.Conn(ctx, r.db).Model(&authentity.User{}).
		Where("id NOT IN (?)", granted).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
