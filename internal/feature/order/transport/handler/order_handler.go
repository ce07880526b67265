// Package handler はorderフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/feature/order/domain/entity"
	"storefront_backend/internal/feature/order/transport/http/dto"
	"storefront_backend/internal/feature/order/usecase"
	"storefront_backend/internal/platform/http/response"
)

// OrderUsecase は注文操作のユースケースを定義します。
type OrderUsecase interface {
	CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (*entity.Order, *entity.Payment, error)
	GetOrders(ctx context.Context) ([]entity.Order, error)
	GetOrderByID(ctx context.Context, id uint) (*entity.Order, error)
	GetOrdersByUserID(ctx context.Context, userID uint) ([]entity.Order, error)
	UpdateOrder(ctx context.Context, id uint, in usecase.UpdateOrderInput) (*entity.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
}

// OrderHandler は注文操作のHTTPリクエストを処理します。
type OrderHandler struct {
	orders OrderUsecase
}

// NewOrderHandler はOrderHandlerの新しいインスタンスを生成します。
func NewOrderHandler(orders OrderUsecase) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create は注文と支払いを作成し、201を返却します。
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, usecase.ErrInvalidOrder.Message, err)
		return
	}
	order, payment, err := h.orders.CreateOrder(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, dto.CreateOrderRes{
		Message: "Order created successfully.",
		Order:   order,
		Payment: payment,
	})
}

// List returns every order.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.GetOrders(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Failed to retrieve orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Get returns one order by :id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := response.UintParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, "Failed to retrieve order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListByUser returns the orders of :userId. 0件の場合は404です。
func (h *OrderHandler) ListByUser(c *gin.Context) {
	userID, ok := response.UintParam(c, "userId")
	if !ok {
		return
	}
	orders, err := h.orders.GetOrdersByUserID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err, "Failed to retrieve orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Update は注文を更新し、明細を置き換えます。
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := response.UintParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, usecase.ErrInvalidOrder.Message, err)
		return
	}
	order, err := h.orders.UpdateOrder(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, dto.UpdateOrderRes{Message: "Order updated successfully.", Order: order})
}

// Delete removes the order with its details and payments.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := response.UintParam(c, "id")
	if !ok {
		return
	}
	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err, "Failed to delete order")
		return
	}
	response.Message(c, http.StatusOK, "Order deleted successfully")
}
