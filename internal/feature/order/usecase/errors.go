// Package usecase implements order and payment business logic.
package usecase

import "storefront_backend/internal/shared/apperr"

var (
	// ErrInvalidOrder is returned when a required order field is missing or malformed.
	ErrInvalidOrder = apperr.New(apperr.KindValidation, "Invalid order data")

	// ErrOrderNotFound is returned when an order cannot be found by ID.
	ErrOrderNotFound = apperr.New(apperr.KindNotFound, "Order not found")

	// ErrNoOrdersForUser is returned when a user has no orders.
	ErrNoOrdersForUser = apperr.New(apperr.KindNotFound, "No orders found for this user")

	// ErrPaymentNotFound is returned when a payment cannot be found by ID.
	ErrPaymentNotFound = apperr.New(apperr.KindNotFound, "Payment not found")

	// ErrNoPaymentsForUser is returned when a user has no payments.
	ErrNoPaymentsForUser = apperr.New(apperr.KindNotFound, "No payments found for this user")
)
