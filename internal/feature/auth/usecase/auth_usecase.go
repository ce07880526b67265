// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront_backend/internal/feature/auth/domain/entity"
	"storefront_backend/internal/shared/apperr"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// resetTokenBytes はリセットトークンの乱数バイト数です。16進で12文字になります。
	resetTokenBytes = 6

	// ResetTokenTTL はリセットトークンの有効期間です。
	ResetTokenTTL = time.Hour
)

// dummyHash はユーザーが存在しない場合にも bcrypt 比較を行うためのハッシュです。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// FindByUserName はユーザー名に一致するユーザーを取得します。
	// 存在しない場合は ErrUserNotFound を返します。
	FindByUserName(ctx context.Context, username string) (*entity.User, error)

	// FindByUserNameOrEmail はユーザー名またはヘルスプロフィールのメールアドレスで検索します。
	// HealthInfo はプリロードされます。存在しない場合は ErrUserNotFound を返します。
	FindByUserNameOrEmail(ctx context.Context, value string) (*entity.User, error)

	// SetResetToken は保留中のトークンを上書きして保存します。
	SetResetToken(ctx context.Context, userID uint, token string, expiry time.Time) error

	// FindByValidResetToken は token を持ち、期限が now 以降のユーザーを取得します。
	// 存在しない場合は ErrUserNotFound を返します。
	FindByValidResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error)

	// ConsumeResetToken はトークンがまだ有効な場合に限り、パスワードを書き換えリセット情報を消去します。
	// 書き換えた場合 true を返します。
	ConsumeResetToken(ctx context.Context, userID uint, token string, now time.Time, passwordHash string) (bool, error)
}

// TokenIssuer はセッショントークンを発行します。
type TokenIssuer interface {
	GenerateToken(username, role string) (string, error)
}

// Mailer はパスワードリセットメールを送信します。
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, username, token string) error
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	ID    uint
	Role  string
	Token string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	tokens   TokenIssuer
	mailer   Mailer
	now      func() time.Time
	newToken func() (string, error)
	cost     int
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, mailer Mailer) *authUsecase {
	return &authUsecase{
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		now:      time.Now,
		newToken: generateResetToken,
		cost:     bcrypt.DefaultCost,
	}
}

// ValidatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func generateResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Login はユーザーを認証し、成功時にセッショントークンを返します。
// タイミング攻撃を緩和するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := u.users.FindByUserName(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	passwordHash := dummyHash
	if user != nil {
		passwordHash = user.Password
	}
	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if user == nil {
		return nil, ErrUserNotFound
	}
	if compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.UserName, user.Role)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to generate token", err)
	}

	slog.Info("user login successful", "user_id", user.ID, "role", user.Role)
	return &LoginResult{ID: user.ID, Role: user.Role, Token: token}, nil
}

// RequestPasswordReset は新しいリセットトークンを保存し、メールで送信します。
// 送信に失敗してもトークンは保存されたままです。
func (u *authUsecase) RequestPasswordReset(ctx context.Context, usernameOrEmail string) error {
	user, err := u.users.FindByUserNameOrEmail(ctx, usernameOrEmail)
	if errors.Is(err, ErrUserNotFound) {
		return ErrUserOrEmailNotFound
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	email := user.Email()
	if email == "" {
		return ErrUserOrEmailNotFound
	}

	token, err := u.newToken()
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Failed to generate reset token", err)
	}
	if err := u.users.SetResetToken(ctx, user.ID, token, u.now().Add(ResetTokenTTL)); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	if err := u.mailer.SendPasswordReset(ctx, email, user.UserName, token); err != nil {
		return apperr.Wrap(apperr.KindInternal, "Failed to send password reset email", err)
	}
	slog.Info("password reset requested", "user_id", user.ID)
	return nil
}

// ResetPassword はトークンを検証し、新しいパスワードを設定します。
// トークンは一度だけ使用できます。
func (u *authUsecase) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	now := u.now()
	user, err := u.users.FindByValidResetToken(ctx, resetToken, now)
	if errors.Is(err, ErrUserNotFound) {
		return ErrInvalidOrExpiredToken
	}
	if err != nil {
		return fmt.Errorf("find reset token: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), u.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	ok, err := u.users.ConsumeResetToken(ctx, user.ID, resetToken, now, string(hashed))
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if !ok {
		// 並行リクエストが先にトークンを消費した
		return ErrInvalidOrExpiredToken
	}

	slog.Info("password reset completed", "user_id", user.ID)
	return nil
}
