package adapters

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront_backend/internal/feature/order/domain/entity"
	"storefront_backend/internal/feature/order/usecase"
	"storefront_backend/internal/platform/db"
)

// paymentGorm はPaymentRepositoryインターフェースのGORM実装です。
type paymentGorm struct {
	db *gorm.DB
}

var _ usecase.PaymentRepository = (*paymentGorm)(nil)

// NewPaymentGorm は指定されたgorm.DB接続でpaymentGormの新しいインスタンスを生成します。
func NewPaymentGorm(db *gorm.DB) *paymentGorm {
	return &paymentGorm{db: db}
}

// Create inserts p.
func (r *paymentGorm) Create(ctx context.Context, p *entity.Payment) error {
	return db.Conn(ctx, r.db).Create(p).Error
}

// UpdateByOrderID updates status and amount of every payment of the order.
func (r *paymentGorm) UpdateByOrderID(ctx context.Context, orderID uint, status *string, amount *decimal.Decimal) error {
	cols := map[string]any{}
	if status != nil {
		cols["payment_status"] = *status
	}
	if amount != nil {
		cols["amount"] = *amount
	}
	if len(cols) == 0 {
		return nil
	}
	return db.Conn(ctx, r.db).Model(&entity.Payment{}).Where("order_id = ?", orderID).Updates(cols).Error
}

// DeleteByOrderID removes every payment of the order.
func (r *paymentGorm) DeleteByOrderID(ctx context.Context, orderID uint) error {
	return db.Conn(ctx, r.db).Where("order_id = ?", orderID).Delete(&entity.Payment{}).Error
}

// FindAll returns every payment with its order.
func (r *paymentGorm) FindAll(ctx context.Context) ([]entity.Payment, error) {
	var payments []entity.Payment
	if err := db.Conn(ctx, r.db).Preload("Order").Order("id").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// FindByID はIDで支払いを取得します。存在しない場合は usecase.ErrPaymentNotFound を返します。
func (r *paymentGorm) FindByID(ctx context.Context, id uint) (*entity.Payment, error) {
	var p entity.Payment
	if err := db.Conn(ctx, r.db).Preload("Order").First(&p, id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, usecase.ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByUserID returns payments whose order belongs to userID.
func (r *paymentGorm) FindByUserID(ctx context.Context, userID uint) ([]entity.Payment, error) {
	userOrders := r.db.Model(&entity.Order{}).Select("id").Where("user_id = ?", userID)

	var payments []entity.Payment
	err := db.Conn(ctx, r.db).
		Preload("Order").
		Where("order_id IN (?)", userOrders).
		Order("id").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// Update は指定された列のみ更新します。
func (r *paymentGorm) Update(ctx context.Context, id uint, upd entity.PaymentUpdate) error {
	cols := upd.Columns()
	if len(cols) == 0 {
		_, err := r.FindByID(ctx, id)
		return err
	}
	res := db.Conn(ctx, r.db).Model(&entity.Payment{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrPaymentNotFound
	}
	return nil
}
