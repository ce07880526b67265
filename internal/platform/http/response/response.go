// Package response はJSONレスポンスの共通エンベロープを提供します。
// 2xx以外のレスポンスは必ず人が読める message フィールドを持ちます。
package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/shared/apperr"
)

// ErrorBody is the body of every non-2xx response.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageBody is a body carrying only a message.
type MessageBody struct {
	Message string `json:"message"`
}

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a JSON error envelope.
// fallback は err がメッセージを持たない場合に使われます。
// 内部エラーの場合のみ原因を error フィールドに含めます。
func Error(c *gin.Context, err error, fallback string) {
	kind := apperr.KindOf(err)
	status := StatusFor(kind)
	body := ErrorBody{Message: apperr.MessageOf(err, fallback)}

	if kind == apperr.KindInternal {
		body.Error = err.Error()
		slog.Error("request failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	} else {
		slog.Warn("request rejected", "kind", kind.String(), "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	}

	c.AbortWithStatusJSON(status, body)
}

// Message writes a message-only JSON body.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, MessageBody{Message: message})
}

// BadRequest writes a 400 with message, used for malformed bodies and path parameters.
func BadRequest(c *gin.Context, message string, err error) {
	slog.Warn("bad request", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{Message: message})
}

// UintParam reads the path parameter name as a positive integer.
// 不正な値の場合は400を書き込み、false を返します。
func UintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		if err == nil {
			err = errors.New("must be positive")
		}
		BadRequest(c, "Invalid "+name, err)
		return 0, false
	}
	return uint(n), true
}
