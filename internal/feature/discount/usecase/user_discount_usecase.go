package usecase

import (
	"context"
	"errors"
	"log/slog"

	"storefront_backend/internal/feature/discount/domain/entity"
	"storefront_backend/internal/shared/apperr"
)

// Grant は割引をユーザーに付与します。
// 割引またはユーザーが存在しなければ NotFound、付与済みなら ErrAlreadyGranted を返します。
func (u *discountUsecase) Grant(ctx context.Context, userID, discountID uint) (*entity.UserDiscount, error) {
	if userID == 0 || discountID == 0 {
		return nil, ErrInvalidUserDiscount
	}
	if _, err := u.GetDiscount(ctx, discountID); err != nil {
		return nil, err
	}
	ok, err := u.grants.UserExists(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to create user discount", err)
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	ud := &entity.UserDiscount{UserID: userID, DiscountID: discountID, Status: entity.StatusActive}
	if err := u.grants.Create(ctx, ud); err != nil {
		return nil, wrapLookup(err, ErrAlreadyGranted, "Failed to create user discount")
	}
	slog.Info("discount granted", "user_id", userID, "discount_id", discountID)
	return ud, nil
}

// ListByUser returns every grant of the user. 0件は空配列です。
func (u *discountUsecase) ListByUser(ctx context.Context, userID uint) ([]entity.UserDiscount, error) {
	return u.listByUser(ctx, userID, "")
}

// ListActiveByUser returns the user's grants whose status is active.
func (u *discountUsecase) ListActiveByUser(ctx context.Context, userID uint) ([]entity.UserDiscount, error) {
	return u.listByUser(ctx, userID, entity.StatusActive)
}

func (u *discountUsecase) listByUser(ctx context.Context, userID uint, status string) ([]entity.UserDiscount, error) {
	list, err := u.grants.FindByUserID(ctx, userID, status)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to fetch user discounts", err)
	}
	if list == nil {
		list = []entity.UserDiscount{}
	}
	return list, nil
}

func (u *discountUsecase) GetUserDiscount(ctx context.Context, id uint) (*entity.UserDiscount, error) {
	ud, err := u.grants.FindByID(ctx, id)
	if err != nil {
		return nil, wrapLookup(err, ErrUserDiscountNotFound, "Failed to fetch user discount")
	}
	return ud, nil
}

// UpdateUserDiscount は付与の user/discount/status を更新します。
func (u *discountUsecase) UpdateUserDiscount(ctx context.Context, id uint, upd entity.UserDiscountUpdate) (*entity.UserDiscount, error) {
	if upd.DiscountID != nil {
		if _, err := u.GetDiscount(ctx, *upd.DiscountID); err != nil {
			return nil, err
		}
	}
	if err := u.grants.Update(ctx, id, upd); err != nil {
		if errors.Is(err, ErrAlreadyGranted) {
			return nil, err
		}
		return nil, wrapLookup(err, ErrUserDiscountNotFound, "Failed to update user discount")
	}
	return u.GetUserDiscount(ctx, id)
}

func (u *discountUsecase) DeleteUserDiscount(ctx context.Context, id uint) error {
	if err := u.grants.Delete(ctx, id); err != nil {
		return wrapLookup(err, ErrUserDiscountNotFound, "Failed to delete user discount")
	}
	return nil
}

// ApplyToAll は割引を持っていない全ユーザーに、ひとつのトランザクションで付与します。
// 新しく作成された付与のみを返します。
func (u *discountUsecase) ApplyToAll(ctx context.Context, discountID uint) ([]entity.UserDiscount, error) {
	if discountID == 0 {
		return nil, ErrInvalidUserDiscount
	}
	var created []entity.UserDiscount
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.discounts.FindByID(ctx, discountID); err != nil {
			return err
		}
		n, err := u.grants.CountUsers(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNoUsers
		}
		ids, err := u.grants.UserIDsWithout(ctx, discountID)
		if err != nil {
			return err
		}
		created = make([]entity.UserDiscount, 0, len(ids))
		for _, id := range ids {
			created = append(created, entity.UserDiscount{UserID: id, DiscountID: discountID, Status: entity.StatusActive})
		}
		if len(created) == 0 {
			return nil
		}
		return u.grants.CreateBatch(ctx, created)
	})
	if err != nil {
		if errors.Is(err, ErrDiscountNotFound) || errors.Is(err, ErrNoUsers) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to apply discount to all users", err)
	}
	slog.Info("discount applied to users", "discount_id", discountID, "granted", len(created))
	return created, nil
}
