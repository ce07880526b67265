package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_backend/internal/app/di"
	"storefront_backend/internal/app/router"
	authentity "storefront_backend/internal/feature/auth/domain/entity"
	"storefront_backend/internal/platform/db/dbtest"
	jwtmw "storefront_backend/internal/platform/jwt"
	"storefront_backend/internal/platform/mail"
	"storefront_backend/internal/platform/ratelimit"
	"storefront_backend/internal/platform/storage"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type server struct {
	engine    *gin.Engine
	sessions  *jwtmw.Manager
	uploadDir string
}

func newServer(t *testing.T, limit int) *server {
	t.Helper()
	gdb := dbtest.Open(t, di.Models()...)
	uploadDir := t.TempDir()
	sessions := jwtmw.NewManager("test-secret", jwtmw.SessionTTL)

	h, err := di.NewHandlers(di.Deps{
		DB:       gdb,
		Sessions: sessions,
		Mailer:   mail.LogSender{},
		Files:    storage.NewLocal(uploadDir),
	})
	require.NoError(t, err)

	engine := router.NewRouter(h, router.Options{
		Sessions:    sessions,
		Limiter:     ratelimit.NewMemoryStore(),
		RateLimit:   ratelimit.Config{Limit: limit, Window: 3 * time.Minute, Message: "Too many requests, please try again after 3 minutes!"},
		CORSOrigins: []string{"http://localhost:3000"},
		UploadDir:   uploadDir,
	})
	return &server{engine: engine, sessions: sessions, uploadDir: uploadDir}
}

func (s *server) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *server) cookieFor(t *testing.T, role string) *http.Cookie {
	t.Helper()
	token, err := s.sessions.GenerateToken("someone", role)
	require.NoError(t, err)
	return &http.Cookie{Name: jwtmw.SessionCookieName, Value: token}
}

func TestRouter_Health(t *testing.T) {
	s := newServer(t, 30)

	w := s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"up"}`, w.Body.String())
}

func TestRouter_SignupLoginAndOrder(t *testing.T) {
	s := newServer(t, 30)

	w := s.do(t, http.MethodPost, "/api/v1/users", gin.H{
		"username":   "alice",
		"password":   "password123",
		"healthInfo": gin.H{"email": "alice@example.com"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/login", gin.H{"username": "alice", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		ID   uint   `json:"id"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, authentity.RoleCustomer, login.Role)

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == jwtmw.SessionCookieName {
			session = c
		}
	}
	require.NotNil(t, session, "login must set the session cookie")

	order := gin.H{
		"userId":          login.ID,
		"items":           []gin.H{{"productId": 1, "quantity": 2, "unitPrice": "10.00"}},
		"paymentMethod":   "promptpay",
		"totalAmount":     "20.00",
		"fullName":        "Alice",
		"shippingAddress": "1 Main St",
		"phoneNumber":     "0812345678",
		"shipping_method": "Kerry",
		"shipping_price":  "0",
	}

	w = s.do(t, http.MethodPost, "/api/v1/orders", order)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/orders", order, session)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/orders/byuser/1", nil, session)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/orders/byuser/2", nil, session)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/payments/user/1", nil, session)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_DiscountWritesNeedAdmin(t *testing.T) {
	s := newServer(t, 30)
	body := gin.H{"discount_code": "DISCOUNT2024", "discount_percent": 10}

	w := s.do(t, http.MethodPost, "/api/v1/discounts", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/discounts", body, s.cookieFor(t, authentity.RoleCustomer))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/discounts", body, s.cookieFor(t, authentity.RoleAdmin))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/discounts", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == jwtmw.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestRouter_SignupCannotChooseAdmin(t *testing.T) {
	s := newServer(t, 30)

	w := s.do(t, http.MethodPost, "/api/v1/users", gin.H{
		"username": "mallory",
		"password": "password123",
		"role":     authentity.RoleAdmin,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		User struct {
			ID   uint   `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, authentity.RoleCustomer, created.User.Role)

	w = s.do(t, http.MethodPost, "/api/v1/login", gin.H{"username": "mallory", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/v1/users", nil, cookie).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/v1/healthinfo", nil, cookie).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/api/v1/discounts", gin.H{"discount_code": "FREE", "discount_percent": "100"}, cookie).Code)
}

func TestRouter_HealthInfoIsOwnerOnly(t *testing.T) {
	s := newServer(t, 30)

	ids := map[string]uint{}
	for _, name := range []string{"alice", "bob"} {
		w := s.do(t, http.MethodPost, "/api/v1/users", gin.H{"username": name, "password": "password123"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created struct {
			User struct {
				ID uint `json:"id"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		ids[name] = created.User.ID
	}

	w := s.do(t, http.MethodPost, "/api/v1/login", gin.H{"username": "alice", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	alice := sessionCookie(w)
	require.NotNil(t, alice)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/healthinfo/%d", ids["alice"]), nil, alice).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/healthinfo/%d", ids["bob"]), nil, alice).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/healthinfo/%d", ids["bob"]), nil, s.cookieFor(t, authentity.RoleAdmin)).Code)
}

func TestRouter_RateLimitedGroups(t *testing.T) {
	s := newServer(t, 2)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/discounts", nil).Code)
	}
	w := s.do(t, http.MethodGet, "/api/v1/discounts", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "180", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"message":"Too many requests, please try again after 3 minutes!"}`, w.Body.String())

	// 別スコープのカウンターは独立
	w = s.do(t, http.MethodGet, "/api/v1/healthinfo", nil, s.cookieFor(t, authentity.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)

	// 制限対象外のグループ
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/orders", nil).Code)
	}
}

func TestRouter_ServesUploads(t *testing.T) {
	s := newServer(t, 30)
	dir := filepath.Join(s.uploadDir, "payments")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.png"), []byte("png"), 0o644))

	w := s.do(t, http.MethodGet, "/payments/1.png", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())
}
