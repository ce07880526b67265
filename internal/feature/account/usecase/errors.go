// Package usecase はaccountフィーチャー（ユーザー登録とヘルスプロフィール）のビジネスロジックを実装します。
package usecase

import "storefront_backend/internal/shared/apperr"

var (
	// ErrUserNotFound is returned when a user cannot be found by ID.
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "User not found!")

	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = apperr.New(apperr.KindConflict, "Username already exists")

	// ErrInvalidUser is returned when username or password is missing.
	ErrInvalidUser = apperr.New(apperr.KindValidation, "Username and password are required")

	// ErrInvalidRole is returned for a role other than admin or customer.
	ErrInvalidRole = apperr.New(apperr.KindValidation, "Role must be admin or customer")

	// ErrHealthInfoNotFound is returned when the user has no health profile.
	ErrHealthInfoNotFound = apperr.New(apperr.KindNotFound, "Health info not found for this user")
)
