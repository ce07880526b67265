// Package handler はaccountフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/feature/account/transport/http/dto"
	"storefront_backend/internal/feature/account/usecase"
	"storefront_backend/internal/feature/auth/domain/entity"
	"storefront_backend/internal/platform/http/response"
	jwtmw "storefront_backend/internal/platform/jwt"
)

// profileImageField is the multipart field carrying the profile image.
const profileImageField = "profile_image"

// AccountUsecase はユーザーとヘルスプロフィールのユースケースを定義します。
type AccountUsecase interface {
	CreateUser(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error)
	ListUsers(ctx context.Context) ([]entity.User, error)
	GetUser(ctx context.Context, id uint) (*entity.User, error)
	ListHealthInfo(ctx context.Context) ([]entity.HealthInfo, error)
	GetHealthInfo(ctx context.Context, userID uint) (*entity.HealthInfo, error)
	UpdateHealthInfo(ctx context.Context, userID uint, upd entity.HealthInfoUpdate, image *usecase.Upload) (*entity.HealthInfo, error)
}

// AccountHandler は /users と /healthinfo のHTTPリクエストを処理します。
type AccountHandler struct {
	accounts AccountUsecase
}

// NewAccountHandler はAccountHandlerの新しいインスタンスを生成します。
func NewAccountHandler(accounts AccountUsecase) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// CreateUser はユーザー登録APIエンドポイントを処理します。
// - ロールは常に customer。管理者は storefrontctl create-user で作成する
// - 重複ユーザー名は409、パスワードが8文字未満なら400
// - 成功時は201でユーザーを返却
func (h *AccountHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid user data", err)
		return
	}
	user, err := h.accounts.CreateUser(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err, "Failed to create user!")
		return
	}
	c.JSON(http.StatusCreated, dto.CreateUserRes{Message: "User created successfully!", User: user})
}

func (h *AccountHandler) ListUsers(c *gin.Context) {
	users, err := h.accounts.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Failed to fetch users!")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AccountHandler) GetUser(c *gin.Context) {
	id, ok := response.UintParam(c, "id")
	if !ok {
		return
	}
	user, err := h.accounts.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, "Failed to fetch user!")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AccountHandler) ListHealthInfo(c *gin.Context) {
	list, err := h.accounts.ListHealthInfo(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Failed to fetch all health info")
		return
	}
	c.JSON(http.StatusOK, list)
}

// canAccess reports whether the session may read or change userID's profile.
// 管理者以外は自分のユーザーIDのみ。拒否時は403を書き込みます。
func (h *AccountHandler) canAccess(c *gin.Context, userID uint) bool {
	if c.GetString(jwtmw.ContextRole) == entity.RoleAdmin {
		return true
	}
	user, err := h.accounts.GetUser(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, usecase.ErrUserNotFound) {
		response.Error(c, err, "Failed to fetch user!")
		return false
	}
	if err != nil || user.UserName != c.GetString(jwtmw.ContextUsername) {
		c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorBody{Message: "Forbidden"})
		return false
	}
	return true
}

func (h *AccountHandler) GetHealthInfo(c *gin.Context) {
	userID, ok := response.UintParam(c, "userId")
	if !ok || !h.canAccess(c, userID) {
		return
	}
	info, err := h.accounts.GetHealthInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err, "Failed to fetch health info")
		return
	}
	c.JSON(http.StatusOK, info)
}

// UpdateHealthInfo は multipart フォームの指定項目のみ更新します。profile_image があれば保存します。
func (h *AccountHandler) UpdateHealthInfo(c *gin.Context) {
	userID, ok := response.UintParam(c, "userId")
	if !ok || !h.canAccess(c, userID) {
		return
	}

	var req dto.UpdateHealthInfoReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid health info data", err)
		return
	}
	upd, err := req.ToUpdate()
	if err != nil {
		response.BadRequest(c, "Invalid health info data", err)
		return
	}

	var image *usecase.Upload
	fh, err := c.FormFile(profileImageField)
	switch {
	case err == nil:
		f, openErr := fh.Open()
		if openErr != nil {
			response.Error(c, fmt.Errorf("open profile image: %w", openErr), "Error uploading file")
			return
		}
		defer f.Close()
		image = &usecase.Upload{Name: fh.Filename, Body: f}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		response.BadRequest(c, "Error uploading file", err)
		return
	}

	info, err := h.accounts.UpdateHealthInfo(c.Request.Context(), userID, upd, image)
	if err != nil {
		response.Error(c, err, "An unexpected error occurred.")
		return
	}
	c.JSON(http.StatusOK, dto.UpdateHealthInfoRes{
		Status:     "ok",
		Message:    fmt.Sprintf("Health info for User with ID = %d is updated", userID),
		HealthInfo: info,
	})
}
