package di

import (
	"fmt"

	"gorm.io/gorm"

	"storefront_backend/internal/app/router"
	accountadapters "storefront_backend/internal/feature/account/adapters"
	accounthandler "storefront_backend/internal/feature/account/transport/handler"
	accountusecase "storefront_backend/internal/feature/account/usecase"
	authadapters "storefront_backend/internal/feature/auth/adapters"
	authhandler "storefront_backend/internal/feature/auth/transport/handler"
	authusecase "storefront_backend/internal/feature/auth/usecase"
	discountadapters "storefront_backend/internal/feature/discount/adapters"
	discounthandler "storefront_backend/internal/feature/discount/transport/handler"
	discountusecase "storefront_backend/internal/feature/discount/usecase"
	orderadapters "storefront_backend/internal/feature/order/adapters"
	orderhandler "storefront_backend/internal/feature/order/transport/handler"
	orderusecase "storefront_backend/internal/feature/order/usecase"
	"storefront_backend/internal/platform/db"
	platformhandler "storefront_backend/internal/platform/http/handler"
	jwtmw "storefront_backend/internal/platform/jwt"
	"storefront_backend/internal/platform/storage"
)

// Deps are the shared resources every feature is built from.
type Deps struct {
	DB           *gorm.DB
	Sessions     *jwtmw.Manager
	Mailer       authusecase.Mailer
	Files        *storage.Local
	SecureCookie bool
}

// NewHandlers builds repositories, usecases and handlers for every feature.
func NewHandlers(d Deps) (router.Handlers, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return router.Handlers{}, fmt.Errorf("access sql.DB: %w", err)
	}
	tx := db.NewTransactor(d.DB)

	// Repository
	authUsers := authadapters.NewUserGorm(d.DB)
	accountUsers := accountadapters.NewUserGorm(d.DB)
	profiles := accountadapters.NewHealthInfoGorm(d.DB)
	orders := orderadapters.NewOrderGorm(d.DB)
	payments := orderadapters.NewPaymentGorm(d.DB)
	discounts := discountadapters.NewDiscountGorm(d.DB)
	grants := discountadapters.NewUserDiscountGorm(d.DB)

	// Usecase
	authUC := authusecase.NewAuthUsecase(authUsers, d.Sessions, d.Mailer)
	accountUC := accountusecase.NewAccountUsecase(accountUsers, profiles, tx, d.Files)
	orderUC := orderusecase.NewOrderUsecase(orders, payments, tx)
	paymentUC := orderusecase.NewPaymentUsecase(payments, d.Files)
	discountUC := discountusecase.NewDiscountUsecase(discounts, grants, tx)

	// Handler
	return router.Handlers{
		Health:   platformhandler.NewHealthHandler(sqlDB),
		Auth:     authhandler.NewAuthHandler(authUC, d.SecureCookie),
		Account:  accounthandler.NewAccountHandler(accountUC),
		Order:    orderhandler.NewOrderHandler(orderUC),
		Payment:  orderhandler.NewPaymentHandler(paymentUC),
		Discount: discounthandler.NewDiscountHandler(discountUC),
	}, nil
}
