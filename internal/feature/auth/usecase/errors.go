// Package usecase implements the business logic for the auth feature.
package usecase

import "storefront_backend/internal/shared/apperr"

var (
	// ErrUserNotFound is returned when no user has the given username.
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "User not found!")

	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "Invalid username or password!")

	// ErrUserOrEmailNotFound is returned when a reset is requested for an unknown user or one without an email.
	ErrUserOrEmailNotFound = apperr.New(apperr.KindNotFound, "User or email not found")

	// ErrInvalidOrExpiredToken is returned for a reset token that is unknown, already used, or expired.
	ErrInvalidOrExpiredToken = apperr.New(apperr.KindValidation, "Invalid or expired token")

	// ErrPasswordTooShort is returned when a new password is shorter than minPasswordLength.
	ErrPasswordTooShort = apperr.New(apperr.KindValidation, "Password must be at least 8 characters long")
)
