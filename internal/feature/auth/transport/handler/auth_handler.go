// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/feature/auth/transport/http/dto"
	"storefront_backend/internal/feature/auth/usecase"
	jwtmw "storefront_backend/internal/platform/jwt"
	"storefront_backend/internal/platform/http/response"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Login(ctx context.Context, username, password string) (*usecase.LoginResult, error)
	RequestPasswordReset(ctx context.Context, usernameOrEmail string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth         AuthUsecase
	secureCookie bool
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// secureCookie はセッションクッキーに Secure 属性を付けるかどうかです。
func NewAuthHandler(auth AuthUsecase, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookie: secureCookie}
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - ユーザー未登録時は404、パスワード不一致時は401を返却
// - 成功時はセッションクッキーを設定し、トークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username and password are required", err)
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err, "An error occurred during login")
		return
	}

	jwtmw.SetSessionCookie(c, res.Token, h.secureCookie)
	c.JSON(http.StatusOK, dto.LoginRes{
		Message: "Login successful",
		ID:      res.ID,
		Role:    res.Role,
		Token:   res.Token,
	})
}

// Logout はセッションクッキーを削除します。トークン自体は失効しません。
func (h *AuthHandler) Logout(c *gin.Context) {
	jwtmw.ClearSessionCookie(c, h.secureCookie)
	response.Message(c, http.StatusOK, "Logout successful")
}

// RequestPasswordReset はリセットトークンを発行してメールで送信します。
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.RequestPasswordResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username or email is required", err)
		return
	}
	if err := h.auth.RequestPasswordReset(c.Request.Context(), req.UsernameOrEmail); err != nil {
		response.Error(c, err, "An error occurred")
		return
	}
	response.Message(c, http.StatusOK, "Password reset link sent to email.")
}

// ResetPassword はリセットトークンを消費して新しいパスワードを設定します。
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Reset token and a new password of at least 8 characters are required", err)
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), req.ResetToken, req.NewPassword); err != nil {
		response.Error(c, err, "An error occurred")
		return
	}
	response.Message(c, http.StatusOK, "Password updated successfully!")
}
