package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"storefront_backend/internal/feature/auth/domain/entity"
	authusecase "storefront_backend/internal/feature/auth/usecase"
	"storefront_backend/internal/shared/apperr"
)

// ProfileDir is the upload directory for profile images.
const ProfileDir = "profiles"

// Upload is an uploaded file. Body is read once.
type Upload struct {
	Name string
	Body io.Reader
}

// HealthInfoInput is the profile submitted with a new account.
type HealthInfoInput struct {
	FirstName   string
	LastName    string
	Gender      string
	Email       string
	Address     string
	PhoneNumber string
	Age         int
	Weight      float64
	Height      float64
}

// CreateUserInput carries a registration request. Role defaults to customer.
type CreateUserInput struct {
	Username   string
	Password   string
	Role       string
	HealthInfo HealthInfoInput
}

// accountUsecase はユーザー登録とヘルスプロフィールの操作を実装します。
type accountUsecase struct {
	users   UserRepository
	profile HealthInfoRepository
	tx      Transactor
	files   FileStore
	cost    int
}

// NewAccountUsecase はaccountUsecaseの新しいインスタンスを生成します。
func NewAccountUsecase(users UserRepository, profile HealthInfoRepository, tx Transactor, files FileStore) *accountUsecase {
	return &accountUsecase{users: users, profile: profile, tx: tx, files: files, cost: bcrypt.DefaultCost}
}

func (in CreateUserInput) validate() (role string, err error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return "", ErrInvalidUser
	}
	if err := authusecase.ValidatePassword(in.Password); err != nil {
		return "", err
	}
	switch in.Role {
	case "":
		return entity.RoleCustomer, nil
	case entity.RoleAdmin, entity.RoleCustomer:
		return in.Role, nil
	default:
		return "", ErrInvalidRole
	}
}

// CreateUser はユーザーとヘルスプロフィールをひとつのトランザクションで作成します。
// ステータスは Active で作成されます。
func (u *accountUsecase) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	role, err := in.validate()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to create user!", fmt.Errorf("hash password: %w", err))
	}

	user := &entity.User{
		UserName: strings.TrimSpace(in.Username),
		Password: string(hash),
		Role:     role,
		Status:   entity.StatusActive,
	}
	hi := in.HealthInfo
	profile := &entity.HealthInfo{
		FirstName:   hi.FirstName,
		LastName:    hi.LastName,
		Gender:      hi.Gender,
		Email:       strings.TrimSpace(hi.Email),
		Address:     hi.Address,
		PhoneNumber: hi.PhoneNumber,
		Age:         hi.Age,
		Weight:      hi.Weight,
		Height:      hi.Height,
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.users.Create(ctx, user); err != nil {
			return err
		}
		profile.UserID = user.ID
		return u.profile.Create(ctx, profile)
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to create user!", err)
	}

	user.HealthInfo = profile
	slog.Info("user created", "user_id", user.ID, "username", user.UserName, "role", user.Role)
	return user, nil
}

// ListUsers returns every user with the health profile.
func (u *accountUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := u.users.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to fetch users!", err)
	}
	return users, nil
}

// GetUser returns ErrUserNotFound when the user does not exist.
func (u *accountUsecase) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, wrapLookup(err, ErrUserNotFound, "Failed to fetch user!")
	}
	return user, nil
}

// ListHealthInfo returns every health profile.
func (u *accountUsecase) ListHealthInfo(ctx context.Context) ([]entity.HealthInfo, error) {
	list, err := u.profile.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to fetch all health info", err)
	}
	return list, nil
}

// GetHealthInfo returns ErrHealthInfoNotFound when the user has no profile.
func (u *accountUsecase) GetHealthInfo(ctx context.Context, userID uint) (*entity.HealthInfo, error) {
	h, err := u.profile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, wrapLookup(err, ErrHealthInfoNotFound, "Failed to fetch health info")
	}
	return h, nil
}

// UpdateHealthInfo は指定フィールドのみ更新します。image があれば profiles/ に保存し、そのパスを設定します。
func (u *accountUsecase) UpdateHealthInfo(ctx context.Context, userID uint, upd entity.HealthInfoUpdate, image *Upload) (*entity.HealthInfo, error) {
	if _, err := u.GetHealthInfo(ctx, userID); err != nil {
		return nil, err
	}

	if image != nil {
		path, err := u.files.Save(ctx, ProfileDir, image.Name, image.Body)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "Error uploading file", err)
		}
		upd.ProfileImage = &path
	}

	if err := u.profile.Update(ctx, userID, upd); err != nil {
		return nil, wrapLookup(err, ErrHealthInfoNotFound, "An unexpected error occurred.")
	}
	slog.Info("health info updated", "user_id", userID, "image", image != nil)
	return u.GetHealthInfo(ctx, userID)
}

// wrapLookup はsentinelをそのまま返し、それ以外を内部エラーとして包みます。
func wrapLookup(err error, sentinel *apperr.Error, message string) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return apperr.Wrap(apperr.KindInternal, message, err)
}
