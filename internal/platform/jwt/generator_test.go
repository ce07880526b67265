package jwtmw

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// fixedClock は常に同じ時刻を返す時計を生成します。
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// TestNewManager は各種設定でManagerが正しく生成されることを検証します。
func TestNewManager(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		secret     string
		expiration time.Duration
	}{
		{"session config", "my-secret-key", SessionTTL},
		{"long expiration", "secret", 24 * time.Hour * 30},
		{"short expiration", "s", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewManager(tt.secret, tt.expiration)

			if string(m.secret) != tt.secret {
				t.Errorf("expected secret %q, got %q", tt.secret, string(m.secret))
			}
			if m.Expiration() != tt.expiration {
				t.Errorf("expected expiration %v, got %v", tt.expiration, m.Expiration())
			}
		})
	}
}

// TestManager_GenerateToken は生成されたトークンが正しいクレームを含むことを検証します。
func TestManager_GenerateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		role     string
	}{
		{"customer", "alice", "customer"},
		{"admin", "root", "admin"},
		{"unicode username", "ผู้ใช้", "customer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewManager("test-secret", SessionTTL)
			tokenStr, err := m.GenerateToken(tt.username, tt.role)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				return []byte("test-secret"), nil
			})
			if err != nil || !token.Valid {
				t.Fatalf("failed to parse token: %v", err)
			}

			claims := token.Claims.(jwt.MapClaims)
			if claims["username"] != tt.username {
				t.Errorf("expected username %q, got %v", tt.username, claims["username"])
			}
			if claims["role"] != tt.role {
				t.Errorf("expected role %q, got %v", tt.role, claims["role"])
			}
			if _, ok := claims["iat"]; !ok {
				t.Error("expected iat claim to be set")
			}
		})
	}
}

// TestManager_RoundTrip はトークンが同じusername/roleへ復号でき、ちょうど4時間有効であることを検証します。
func TestManager_RoundTrip(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	m := NewManager("test-secret", SessionTTL).WithClock(fixedClock(issuedAt))

	tokenStr, err := m.GenerateToken("alice", "customer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := m.ParseToken(tokenStr)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if claims.Username != "alice" || claims.Role != "customer" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 4*time.Hour {
		t.Errorf("expected 4h validity, got %v", got)
	}
	if !claims.IssuedAt.Time.Equal(issuedAt) {
		t.Errorf("expected iat %v, got %v", issuedAt, claims.IssuedAt.Time)
	}
}

// TestManager_ParseToken_Expiry は発行から4時間を過ぎたトークンが拒否されることを検証します。
func TestManager_ParseToken_Expiry(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tokenStr, err := NewManager("test-secret", SessionTTL).WithClock(fixedClock(issuedAt)).GenerateToken("alice", "customer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr bool
	}{
		{"just issued", issuedAt, false},
		{"one second before expiry", issuedAt.Add(SessionTTL - time.Second), false},
		{"one second after expiry", issuedAt.Add(SessionTTL + time.Second), true},
		{"a day later", issuedAt.Add(24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verifier := NewManager("test-secret", SessionTTL).WithClock(fixedClock(tt.at))
			_, err := verifier.ParseToken(tokenStr)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidToken) {
					t.Errorf("expected ErrInvalidToken, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// TestManager_ParseToken_Invalid は不正なトークンが拒否されることを検証します。
func TestManager_ParseToken_Invalid(t *testing.T) {
	t.Parallel()

	other, _ := NewManager("other-secret", SessionTTL).GenerateToken("alice", "customer")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"username": "alice",
		"role":     "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	noneStr, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"username": "alice", "role": "admin"})
	noExpStr, _ := noExp.SignedString([]byte("test-secret"))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", other},
		{"none algorithm", noneStr},
		{"missing exp", noExpStr},
	}

	m := NewManager("test-secret", SessionTTL)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := m.ParseToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
