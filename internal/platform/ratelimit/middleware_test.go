package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (Result, error) {
	return Result{}, errors.New("redis down")
}

const tooMany = "Too many requests, please try again after 3 minutes!"

func newLimitedRouter(store Store, limit int) *gin.Engine {
	r := gin.New()
	r.GET("/discounts", Middleware(store, Config{Limit: limit, Window: 3 * time.Minute, Scope: "discounts", Message: tooMany}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestMiddleware_RejectsOverLimit(t *testing.T) {
	r := newLimitedRouter(NewMemoryStore(), 2)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/discounts", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/discounts", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"`+tooMany+`"}`, w.Body.String())
	assert.Equal(t, "180", w.Header().Get("Retry-After"))
}

func TestMiddleware_SeparateClients(t *testing.T) {
	r := newLimitedRouter(NewMemoryStore(), 1)

	req := httptest.NewRequest(http.MethodGet, "/discounts", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/discounts", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_FailsOpen(t *testing.T) {
	r := newLimitedRouter(failingStore{}, 1)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/discounts", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
