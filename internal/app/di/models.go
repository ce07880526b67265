package di

import (
	authentity "storefront_backend/internal/feature/auth/domain/entity"
	discountentity "storefront_backend/internal/feature/discount/domain/entity"
	orderentity "storefront_backend/internal/feature/order/domain/entity"
)

// Models returns every persisted entity, parents before children.
func Models() []any {
	return []any{
		&authentity.User{},
		&authentity.HealthInfo{},
		&discountentity.Discount{},
		&discountentity.UserDiscount{},
		&orderentity.Order{},
		&orderentity.OrderDetail{},
		&orderentity.Payment{},
	}
}
