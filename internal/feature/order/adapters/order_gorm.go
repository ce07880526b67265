// Package adapters はorderフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"storefront_backend/internal/feature/order/domain/entity"
	"storefront_backend/internal/feature/order/usecase"
	"storefront_backend/internal/platform/db"
)

// orderGorm はOrderRepositoryインターフェースのGORM実装です。
type orderGorm struct {
	db *gorm.DB
}

var _ usecase.OrderRepository = (*orderGorm)(nil)

// NewOrderGorm は指定されたgorm.DB接続でorderGormの新しいインスタンスを生成します。
func NewOrderGorm(db *gorm.DB) *orderGorm {
	return &orderGorm{db: db}
}

func (r *orderGorm) withRelations(ctx context.Context) *gorm.DB {
	return db.Conn(ctx, r.db).
		Preload("Details", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Preload("Payments", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") })
}

// Create inserts the order and its details.
func (r *orderGorm) Create(ctx context.Context, o *entity.Order) error {
	return db.Conn(ctx, r.db).Create(o).Error
}

// FindAll returns every order, oldest first.
func (r *orderGorm) FindAll(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := r.withRelations(ctx).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByID はIDで注文を取得します。存在しない場合は usecase.ErrOrderNotFound を返します。
func (r *orderGorm) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.withRelations(ctx).First(&o, id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByUserID returns the user's orders, oldest first.
func (r *orderGorm) FindByUserID(ctx context.Context, userID uint) ([]entity.Order, error) {
	var orders []entity.Order
	if err := r.withRelations(ctx).Where("user_id = ?", userID).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateFields は指定された列のみ更新します。
func (r *orderGorm) UpdateFields(ctx context.Context, id uint, upd entity.OrderUpdate) error {
	cols := upd.Columns()
	if len(cols) == 0 {
		return nil
	}
	return db.Conn(ctx, r.db).Model(&entity.Order{}).Where("id = ?", id).Updates(cols).Error
}

// DeleteDetails removes every detail of the order.
func (r *orderGorm) DeleteDetails(ctx context.Context, orderID uint) error {
	return db.Conn(ctx, r.db).Where("order_id = ?", orderID).Delete(&entity.OrderDetail{}).Error
}

// CreateDetails inserts details for the order.
func (r *orderGorm) CreateDetails(ctx context.Context, orderID uint, details []entity.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	for i := range details {
		details[i].OrderID = orderID
	}
	return db.Conn(ctx, r.db).Create(&details).Error
}

// Delete removes the order row.
func (r *orderGorm) Delete(ctx context.Context, id uint) error {
	res := db.Conn(ctx, r.db).Delete(&entity.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrOrderNotFound
	}
	return nil
}
