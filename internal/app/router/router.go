// Package router wires every feature handler into one gin engine.
package router

import (
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	accounthandler "storefront_backend/internal/feature/account/transport/handler"
	accountusecase "storefront_backend/internal/feature/account/usecase"
	authentity "storefront_backend/internal/feature/auth/domain/entity"
	authhandler "storefront_backend/internal/feature/auth/transport/handler"
	discounthandler "storefront_backend/internal/feature/discount/transport/handler"
	orderhandler "storefront_backend/internal/feature/order/transport/handler"
	orderusecase "storefront_backend/internal/feature/order/usecase"
	platformhandler "storefront_backend/internal/platform/http/handler"
	jwtmw "storefront_backend/internal/platform/jwt"
	"storefront_backend/internal/platform/ratelimit"
)

// APIPrefix is the mount point of every business endpoint.
const APIPrefix = "/api/v1"

// Handlers collects the feature handlers.
type Handlers struct {
	Health   *platformhandler.HealthHandler
	Auth     *authhandler.AuthHandler
	Account  *accounthandler.AccountHandler
	Order    *orderhandler.OrderHandler
	Payment  *orderhandler.PaymentHandler
	Discount *discounthandler.DiscountHandler
}

// Options configures cross-cutting middleware.
type Options struct {
	Sessions    jwtmw.TokenParser
	Limiter     ratelimit.Store
	RateLimit   ratelimit.Config
	CORSOrigins []string
	// UploadDir は /profiles と /payments を配信するルートディレクトリです。
	UploadDir string
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.Default()

	// ブラウザのSPAからクッキー付きで呼ばれるため credentials を許可する
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)

	// アップロード画像
	r.Static("/"+accountusecase.ProfileDir, filepath.Join(opts.UploadDir, accountusecase.ProfileDir))
	r.Static("/"+orderusecase.ReceiptDir, filepath.Join(opts.UploadDir, orderusecase.ReceiptDir))

	session := jwtmw.SessionRequired(opts.Sessions)
	admin := jwtmw.RoleRequired(authentity.RoleAdmin)
	limited := func(scope string) gin.HandlerFunc {
		cfg := opts.RateLimit
		cfg.Scope = scope
		return ratelimit.Middleware(opts.Limiter, cfg)
	}

	api := r.Group(APIPrefix)

	// 認証不要
	api.POST("/login", h.Auth.Login)
	api.GET("/logout", h.Auth.Logout)
	api.PUT("/request-password-reset", h.Auth.RequestPasswordReset)
	api.PUT("/reset-password", h.Auth.ResetPassword)
	api.POST("/users", h.Account.CreateUser)

	users := api.Group("/users", session, admin)
	{
		users.GET("", h.Account.ListUsers)
		users.GET("/:id", h.Account.GetUser)
	}

	// 一覧は管理者のみ、個別は本人か管理者（ハンドラーで確認）
	health := api.Group("/healthinfo", limited("healthinfo"), session)
	{
		health.GET("", admin, h.Account.ListHealthInfo)
		health.GET("/:userId", h.Account.GetHealthInfo)
		health.PUT("/:userId", h.Account.UpdateHealthInfo)
	}

	// 認証必須のルート
	orders := api.Group("/orders", session)
	{
		orders.POST("", h.Order.Create)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.DELETE("/:id", h.Order.Delete)
		orders.GET("/byuser/:userId", h.Order.ListByUser)
	}

	payments := api.Group("/payments", session)
	{
		payments.GET("", h.Payment.List)
		payments.GET("/:paymentId", h.Payment.Get)
		payments.PUT("/:paymentId", h.Payment.Update)
		payments.GET("/user/:userId", h.Payment.ListByUser)
	}

	// 読み取りは公開、書き込みは管理者のみ
	discounts := api.Group("/discounts", limited("discounts"))
	{
		discounts.GET("", h.Discount.List)
		discounts.GET("/:id", h.Discount.Get)
		discounts.POST("", session, admin, h.Discount.Create)
		discounts.PUT("/:id", session, admin, h.Discount.Update)
		discounts.DELETE("/:id", session, admin, h.Discount.Delete)
	}

	grants := api.Group("/userdiscounts", session)
	{
		grants.GET("/:id", h.Discount.GetUserDiscount)
		grants.GET("/user/:userId", h.Discount.ListByUser)
		grants.GET("/user/active/:userId", h.Discount.ListActiveByUser)
		grants.POST("", admin, h.Discount.Grant)
		grants.PUT("/:id", admin, h.Discount.UpdateUserDiscount)
		grants.DELETE("/:id", admin, h.Discount.DeleteUserDiscount)
	}
	api.POST("/apply-discount-to-all", session, admin, h.Discount.ApplyToAll)

	return r
}
