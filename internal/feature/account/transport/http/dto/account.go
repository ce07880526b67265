// Package dto defines request and response bodies for the account feature.
package dto

import (
	"fmt"
	"strconv"

	"storefront_backend/internal/feature/account/usecase"
	"storefront_backend/internal/feature/auth/domain/entity"
)

// HealthInfoReq is the profile part of POST /users.
type HealthInfoReq struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Gender      string  `json:"gender"`
	Email       string  `json:"email" binding:"omitempty,email"`
	Address     string  `json:"address"`
	PhoneNumber string  `json:"phone_number"`
	Age         int     `json:"age"`
	Weight      float64 `json:"weight"`
	Height      float64 `json:"height"`
}

// CreateUserReq represents the body of POST /users.
// ロールは受け付けません。公開登録は常に customer です。
type CreateUserReq struct {
	Username   string        `json:"username" binding:"required"`
	Password   string        `json:"password" binding:"required"`
	HealthInfo HealthInfoReq `json:"healthInfo"`
}

// ToInput converts the request into the usecase input with the customer role.
func (r CreateUserReq) ToInput() usecase.CreateUserInput {
	h := r.HealthInfo
	return usecase.CreateUserInput{
		Username: r.Username,
		Password: r.Password,
		Role:     entity.RoleCustomer,
		HealthInfo: usecase.HealthInfoInput{
			FirstName:   h.FirstName,
			LastName:    h.LastName,
			Gender:      h.Gender,
			Email:       h.Email,
			Address:     h.Address,
			PhoneNumber: h.PhoneNumber,
			Age:         h.Age,
			Weight:      h.Weight,
			Height:      h.Height,
		},
	}
}

// CreateUserRes is the body of a successful POST /users.
type CreateUserRes struct {
	Message string       `json:"message"`
	User    *entity.User `json:"user"`
}

// UpdateHealthInfoReq is bound from the multipart form of PUT /healthinfo/:userId.
// 数値項目も文字列で受け取り、ToUpdate で変換します。
type UpdateHealthInfoReq struct {
	FirstName   *string `form:"first_name" json:"first_name"`
	LastName    *string `form:"last_name" json:"last_name"`
	Gender      *string `form:"gender" json:"gender"`
	Email       *string `form:"email" json:"email"`
	Address     *string `form:"address" json:"address"`
	PhoneNumber *string `form:"phone_number" json:"phone_number"`
	Age         *string `form:"age" json:"age"`
	Weight      *string `form:"weight" json:"weight"`
	Height      *string `form:"height" json:"height"`
}

// ToUpdate parses the form fields. 空文字列は未指定として扱います。
func (r UpdateHealthInfoReq) ToUpdate() (entity.HealthInfoUpdate, error) {
	upd := entity.HealthInfoUpdate{
		FirstName:   nonEmpty(r.FirstName),
		LastName:    nonEmpty(r.LastName),
		Gender:      nonEmpty(r.Gender),
		Email:       nonEmpty(r.Email),
		Address:     nonEmpty(r.Address),
		PhoneNumber: nonEmpty(r.PhoneNumber),
	}
	if s := nonEmpty(r.Age); s != nil {
		n, err := strconv.Atoi(*s)
		if err != nil {
			return upd, fmt.Errorf("age: %w", err)
		}
		upd.Age = &n
	}
	var err error
	if upd.Weight, err = parseFloat("weight", r.Weight); err != nil {
		return upd, err
	}
	if upd.Height, err = parseFloat("height", r.Height); err != nil {
		return upd, err
	}
	return upd, nil
}

func parseFloat(field string, s *string) (*float64, error) {
	if nonEmpty(s) == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &f, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// UpdateHealthInfoRes is the body of a successful health info update.
type UpdateHealthInfoRes struct {
	Status     string             `json:"status"`
	Message    string             `json:"message"`
	HealthInfo *entity.HealthInfo `json:"healthInfo"`
}
