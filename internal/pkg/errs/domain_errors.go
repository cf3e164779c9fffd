package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Booking errors
	ErrBookingNotFound        = errors.New("booking not found")
	ErrInvalidLineItem        = errors.New("invalid line item")
	ErrInvalidStayPeriod      = errors.New("invalid stay period")
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// Coupon errors
	ErrCouponNotFound = errors.New("coupon not found")
	ErrInvalidCoupon  = errors.New("invalid coupon")

	// Draft errors
	ErrDraftNotFound = errors.New("draft not found")

	// Payment errors
	ErrPaymentVerificationFailed = errors.New("payment verification failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrRepositoryConflict      = errors.New("repository conflict")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
