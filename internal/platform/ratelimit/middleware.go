package ratelimit

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/platform/http/response"
)

// Config configures Middleware.
type Config struct {
	Limit  int
	Window time.Duration
	// Scope separates counters of different route groups.
	Scope   string
	Message string
}

// Middleware rejects clients that exceed cfg.Limit requests per cfg.Window with 429.
// store のエラー時はリクエストを通します。
func Middleware(store Store, cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := cfg.Scope + ":" + c.ClientIP()

		res, err := store.Allow(c.Request.Context(), key, cfg.Limit, cfg.Window)
		if err != nil {
			slog.Warn("rate limit store unavailable, allowing request", "error", err, "remote_addr", c.ClientIP())
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			slog.Warn("rate limit exceeded", "scope", cfg.Scope, "count", res.Count, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.ErrorBody{Message: cfg.Message})
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(cfg.Limit-res.Count))
		c.Next()
	}
}
