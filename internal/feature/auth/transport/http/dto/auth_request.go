// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRes is the body of a successful login. トークンはクッキーにも設定されます。
type LoginRes struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
	Role    string `json:"role"`
	Token   string `json:"token"`
}

// RequestPasswordResetReq represents the body of PUT /request-password-reset.
type RequestPasswordResetReq struct {
	UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
}

// ResetPasswordReq represents the body of PUT /reset-password.
type ResetPasswordReq struct {
	ResetToken  string `json:"resetToken" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
