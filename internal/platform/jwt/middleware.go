package jwtmw

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/platform/http/response"
)

// Context keys set by SessionRequired.
const (
	ContextUsername = "username"
	ContextRole     = "role"
)

// TokenParser verifies a session token. *Manager satisfies it.
type TokenParser interface {
	ParseToken(tokenStr string) (*Claims, error)
}

// SessionRequired returns a Gin middleware that reads the session token from the
// authToken cookie and restricts access to authenticated users only.
// Authorization ヘッダーのBearerトークンは受け付けません。
func SessionRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get session cookie
		tokenStr, err := c.Cookie(SessionCookieName)
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorBody{Message: "Unauthorized"})
			return
		}

		// 2. Verify signature and expiry
		claims, err := parser.ParseToken(tokenStr)
		if err != nil {
			slog.Warn("session verification failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorBody{Message: "Unauthorized"})
			return
		}

		// 3. Attach identity for downstream handlers
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RoleRequired allows the request only when SessionRequired attached one of roles.
// It must be registered after SessionRequired.
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if !slices.Contains(roles, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorBody{Message: "Forbidden"})
			return
		}
		c.Next()
	}
}
