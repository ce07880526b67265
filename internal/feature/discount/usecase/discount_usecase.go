package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"storefront_backend/internal/feature/discount/domain/entity"
	"storefront_backend/internal/shared/apperr"
)

var hundred = decimal.NewFromInt(100)

// CreateDiscountInput carries a new discount code.
type CreateDiscountInput struct {
	Code           string
	Amount         *decimal.Decimal
	Percent        *decimal.Decimal
	ExpirationDate *time.Time
}

// discountUsecase は割引コードとユーザーへの付与を扱います。
type discountUsecase struct {
	discounts DiscountRepository
	grants    UserDiscountRepository
	tx        Transactor
}

// NewDiscountUsecase はdiscountUsecaseの新しいインスタンスを生成します。
func NewDiscountUsecase(discounts DiscountRepository, grants UserDiscountRepository, tx Transactor) *discountUsecase {
	return &discountUsecase{discounts: discounts, grants: grants, tx: tx}
}

func validValues(amount, percent *decimal.Decimal) bool {
	if amount != nil && amount.IsNegative() {
		return false
	}
	if percent != nil && (percent.IsNegative() || percent.GreaterThan(hundred)) {
		return false
	}
	return true
}

// CreateDiscount は status=active の割引コードを作成します。
func (u *discountUsecase) CreateDiscount(ctx context.Context, in CreateDiscountInput) (*entity.Discount, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || !validValues(in.Amount, in.Percent) {
		return nil, ErrInvalidDiscount
	}
	d := &entity.Discount{
		Code:           code,
		Amount:         in.Amount,
		Percent:        in.Percent,
		ExpirationDate: in.ExpirationDate,
		Status:         entity.StatusActive,
	}
	if err := u.discounts.Create(ctx, d); err != nil {
		return nil, wrapLookup(err, ErrDiscountCodeTaken, "Failed to create discount")
	}
	slog.Info("discount created", "discount_id", d.ID, "code", d.Code)
	return d, nil
}

func (u *discountUsecase) ListDiscounts(ctx context.Context) ([]entity.Discount, error) {
	list, err := u.discounts.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to fetch discounts", err)
	}
	return list, nil
}

func (u *discountUsecase) GetDiscount(ctx context.Context, id uint) (*entity.Discount, error) {
	d, err := u.discounts.FindByID(ctx, id)
	if err != nil {
		return nil, wrapLookup(err, ErrDiscountNotFound, "Failed to fetch discount")
	}
	return d, nil
}

// UpdateDiscount は指定フィールドのみ更新し、更新後の値を返します。
func (u *discountUsecase) UpdateDiscount(ctx context.Context, id uint, upd entity.DiscountUpdate) (*entity.Discount, error) {
	if upd.Code != nil && strings.TrimSpace(*upd.Code) == "" {
		return nil, ErrInvalidDiscount
	}
	if !validValues(upd.Amount, upd.Percent) {
		return nil, ErrInvalidDiscount
	}
	if err := u.discounts.Update(ctx, id, upd); err != nil {
		if errors.Is(err, ErrDiscountCodeTaken) {
			return nil, err
		}
		return nil, wrapLookup(err, ErrDiscountNotFound, "Failed to update discount")
	}
	return u.GetDiscount(ctx, id)
}

// DeleteDiscount はひとつのトランザクションで付与と割引コードを削除します。
func (u *discountUsecase) DeleteDiscount(ctx context.Context, id uint) error {
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.discounts.FindByID(ctx, id); err != nil {
			return err
		}
		if err := u.grants.DeleteByDiscountID(ctx, id); err != nil {
			return err
		}
		return u.discounts.Delete(ctx, id)
	})
	if err != nil {
		return wrapLookup(err, ErrDiscountNotFound, "Failed to delete discount")
	}
	slog.Info("discount deleted", "discount_id", id)
	return nil
}

// wrapLookup はsentinelをそのまま返し、それ以外を内部エラーとして包みます。
func wrapLookup(err error, sentinel *apperr.Error, message string) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return apperr.Wrap(apperr.KindInternal, message, err)
}
