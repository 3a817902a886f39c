package commands

import (
	"travel-booking/internal/pkg/errs"
)

var (
	ErrValidation              = errs.New("validation failed")
	ErrPackageNotFound         = errs.New("package not found")
	ErrOfferNotFound           = errs.New("offer not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrInsufficientSeats       = errs.New("insufficient seats")
	ErrLiveOfferExists         = errs.New("another offer is already live")
	ErrBookingConflict         = errs.New("booking id belongs to another user")
	ErrBookingNotStarted       = errs.New("booking id was not issued by start booking")
	ErrBookingForbidden        = errs.New("booking not owned by user")
	ErrRedemptionNotFound      = errs.New("no redeemable coupon matches")
	ErrDiscountCodeExists      = errs.New("discount code already exists")
	ErrEmailTaken              = errs.New("email already registered")
	ErrSequenceUnavailable     = errs.New("sequence unavailable")
	ErrPaymentUpstream         = errs.New("payment gateway failure")
	ErrStorageUpstream         = errs.New("object storage failure")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyMismatch     = errs.New("idempotency key reused with a different request")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)
