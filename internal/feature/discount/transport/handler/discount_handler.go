// Package handler はdiscountフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/feature/discount/domain/entity"
	"storefront_backend/internal/feature/discount/transport/http/dto"
	"storefront_backend/internal/feature/discount/usecase"
	"storefront_backend/internal/platform/http/response"
)

// DiscountUsecase は割引コードと付与のユースケースを定義します。
type DiscountUsecase interface {
	CreateDiscount(ctx context.Context, in usecase.CreateDiscountInput) (*entity.Discount, error)
	ListDiscounts(ctx context.Context) ([]entity.Discount, error)
	GetDiscount(ctx context.Context, id uint) (*entity.Discount, error)
	UpdateDiscount(ctx context.Context, id uint, upd entity.DiscountUpdate) (*entity.Discount, error)
	DeleteDiscount(ctx context.Context, id uint) error

	Grant(ctx context.Context, userID, discountID uint) (*entity.UserDiscount, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.UserDiscount, error)
	ListActiveByUser(ctx context.Context, userID uint) ([]entity.UserDiscount, error)
	GetUserDiscount(ctx context.Context, id uint) (*entity.UserDiscount, error)
	UpdateUserDiscount(ctx context.Context, id uint, upd entity.UserDiscountUpdate) (*entity.UserDiscount, error)
	DeleteUserDiscount(ctx context.Context, id uint) error
	ApplyToAll(ctx context.Context, discountID uint) ([]entity.UserDiscount, error)
}

// DiscountHandler は /discounts, /userdiscounts, /apply-discount-to-all を処理します。
type DiscountHandler struct {
	discounts DiscountUsecase
}

// NewDiscountHandler はDiscountHandlerの新しいインスタンスを生成します。
func NewDiscountHandler(discounts DiscountUsecase) *DiscountHandler {
	return &DiscountHandler{discounts: discounts}
}

// Create は割引コードを作成し、201を返却します。重複コードは409です。
func (h *DiscountHandler) Create(c *gin.Context) {
	var req dto.DiscountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, usecase.ErrInvalidDiscount.Message, err)
		return
	}
	in, err := req.ToCreate()
	if err != nil {
		response.BadRequest(c, usecase.ErrInvalidDiscount.Message, err)
		return
	}
	d, err := h.discounts.CreateDiscount(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err, "Failed to create discount")
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *DiscountHandler) List(c *gin.Context) {
	list, err := h.discounts.ListDiscounts(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Failed to fetch discounts")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *DiscountHandler) Get(c *gin.Context) {
	id, ok := response.UintParam(c, "id")
	if !ok {
		return
	}
	d, err := h.discounts.GetDiscount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, "Failed to fetch discount")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DiscountHandler) Update(c *gin.Context) {
	id, ok := response.UintParam(c, "id")
	if !ok {
		return
	}
	var req dto.DiscountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, usecase.ErrInvalidDiscount.Message, err)
		return
	}
	upd, err := req.ToUpdate()
	if err != nil {
		response.BadRequest(c, usecase.ErrInvalidDiscount.Message, err)
		return
	}
	d, err := h.discounts.UpdateDiscount(c.Request.Context(), id, upd)
	if err != nil {
		response.Error(c, err, "Failed to update discount")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DiscountHandler) Delete(c *gin.Context) {
	id, ok := response.UintParam(c, "id")
	if !ok {
		return
	}
	if err := h.discounts.DeleteDiscount(c.Request.Context(), id); err != nil {
		response.Error(c, err, "Failed to delete discount")
		return
	}
	response.Message(c, http.StatusOK, "Discount deleted successfully")
}

// Grant は割引をユーザーに付与します。付与済みなら409です。
func (h *DiscountHandler) Grant(c *gin.Context) {
	var req dto.GrantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, usecase.ErrInvalidUserDiscount.Message, err)
		return
	}
	ud, err := h.discounts.Grant(c.Request.Context(), req.UserID, req.DiscountID)
	if err != nil {
		response.Error(c, err, "Failed to create user discount")
		return
	}
	c.JSON(http.StatusCreated, ud)
}

func (h *DiscountHandler) ListByUser(c *gin.Context) {
	userID, ok := response.UintParam(c, "userId")
	if !ok {
		return
	}
	list, err := h.discounts.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err, "Failed to fetch user discounts")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *DiscountHandler) ListActiveByUser(c *gin.Context) {
	userID, ok := response.UintParam(c, "userId")
	if !ok {
		return
	}
	list, err := h.discounts.ListActiveByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err, "Failed to fetch user discounts")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *DiscountHandler) GetUserDiscount(c *gin.Context) {
	id, ok := response.UintParam(c, "id")
	if !ok {
		return
	}
	ud, err := h.discounts.GetUserDiscount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, "Failed to fetch user discount")
		return
	}
	c.JSON(http.StatusOK, ud)
}

func (h *DiscountHandler) UpdateUserDiscount(c *gin.Context) {
	id, ok := response.UintParam(c, "id")
	if !ok {
		return
	}
	var req dto.UserDiscountUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid user discount data", err)
		return
	}
	ud, err := h.discounts.UpdateUserDiscount(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		response.Error(c, err, "Failed to update user discount")
		return
	}
	c.JSON(http.StatusOK, ud)
}

func (h *DiscountHandler) DeleteUserDiscount(c *gin.Context) {
	id, ok := response.UintParam(c, "id")
	if !ok {
		return
	}
	if err := h.discounts.DeleteUserDiscount(c.Request.Context(), id); err != nil {
		response.Error(c, err, "Failed to delete user discount")
		return
	}
	response.Message(c, http.StatusOK, "User discount deleted successfully")
}

// ApplyToAll は割引を未付与の全ユーザーに付与し、新しい付与を返却します。
func (h *DiscountHandler) ApplyToAll(c *gin.Context) {
	var req dto.ApplyToAllReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Discount ID is required", err)
		return
	}
	created, err := h.discounts.ApplyToAll(c.Request.Context(), req.DiscountID)
	if err != nil {
		response.Error(c, err, "Failed to apply discount to all users")
		return
	}
	c.JSON(http.StatusOK, dto.ApplyToAllRes{
		Message:       fmt.Sprintf("Discount applied to %d users successfully.", len(created)),
		UserDiscounts: created,
	})
}
