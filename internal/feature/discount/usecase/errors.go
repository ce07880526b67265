// Package usecase implements discount codes and per-user grants.
package usecase

import "storefront_backend/internal/shared/apperr"

var (
	// ErrDiscountNotFound is returned when a discount cannot be found by ID.
	ErrDiscountNotFound = apperr.New(apperr.KindNotFound, "Discount not found")

	// ErrDiscountCodeTaken is returned when the code is already in use.
	ErrDiscountCodeTaken = apperr.New(apperr.KindConflict, "Discount code already exists")

	// ErrInvalidDiscount is returned for a missing code or a negative or out-of-range value.
	ErrInvalidDiscount = apperr.New(apperr.KindValidation, "Invalid discount data")

	// ErrUserDiscountNotFound is returned when a grant cannot be found by ID.
	ErrUserDiscountNotFound = apperr.New(apperr.KindNotFound, "User discount not found")

	// ErrAlreadyGranted is returned when the user already holds the discount.
	ErrAlreadyGranted = apperr.New(apperr.KindConflict, "User already has this discount")

	// ErrInvalidUserDiscount is returned when user or discount id is missing.
	ErrInvalidUserDiscount = apperr.New(apperr.KindValidation, "User ID and discount ID are required")

	// ErrUserNotFound is returned when a grant targets a user that does not exist.
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "User not found!")

	// ErrNoUsers is returned by ApplyToAll when no user exists.
	ErrNoUsers = apperr.New(apperr.KindNotFound, "No users found")
)
