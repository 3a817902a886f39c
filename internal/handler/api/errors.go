package api

import (
	"log/slog"
	"net/http"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/domain/coupon"
	"travel-booking/internal/domain/discount"
	"travel-booking/internal/domain/lottery"
	"travel-booking/internal/domain/offer"
	"travel-booking/internal/handler/httperr"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var (
	errUnauthenticated = errs.New("unauthenticated")
	errInvalidRequest  = errs.New("invalid request")
)

type conflictRule struct {
	target error
	reason string
}

// Checked in order; the first match wins.
var conflictRules = []conflictRule{
	{commands.ErrInsufficientSeats, "insufficient_seats"},
	{commands.ErrLiveOfferExists, "live_offer_exists"},
	{commands.ErrBookingConflict, "booking_conflict"},
	{commands.ErrBookingNotStarted, "booking_not_started"},
	{commands.ErrIdempotencyMismatch, "idempotency_mismatch"},
	{commands.ErrIdempotencyInProgress, "idempotency_in_progress"},
	{commands.ErrPaymentAlreadyUsed, "payment_already_used"},
	{commands.ErrDiscountCodeExists, "discount_code_exists"},
	{commands.ErrEmailTaken, "email_taken"},
	{coupon.ErrCouponAlreadyUsed, "coupon_used"},
	{coupon.ErrCouponNotRedeemable, "coupon_not_redeemable"},
	{coupon.ErrAlreadyWinner, "already_winner"},
	{lottery.ErrPartialMatch, "partial_match"},
	{offer.ErrOfferNotLive, "offer_not_live"},
	{offer.ErrOfferExpired, "offer_expired"},
	{booking.ErrInvalidTransition, "invalid_transition"},
}

var notFoundErrors = []error{
	commands.ErrPackageNotFound,
	commands.ErrOfferNotFound,
	commands.ErrBookingNotFound,
	commands.ErrRedemptionNotFound,
	queries.ErrPackageNotFound,
	queries.ErrOfferNotFound,
	queries.ErrNoLiveOffer,
	queries.ErrBookingNotFound,
	queries.ErrUserNotFound,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errs.Is(err, t) {
			return true
		}
	}
	return false
}

// respondError translates usecase errors into the public error body.
func respondError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, discount.ErrRejected):
		httperr.AbortWithReason(c, http.StatusUnprocessableEntity, err, "Discount code rejected", discount.Reason(err))
		return
	case errs.Is(err, commands.ErrValidation),
		errs.Is(err, queries.ErrInvalidCursor),
		errs.Is(err, commands.ErrUnsupportedMediaType):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", validationDetail(err))
		return
	case errs.Is(err, commands.ErrUploadTooLarge):
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, err, "Upload too large", nil)
		return
	case isAny(err, notFoundErrors):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		return
	case errs.Is(err, commands.ErrBookingForbidden), errs.Is(err, queries.ErrBookingAccessDenied):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		return
	case errs.Is(err, commands.ErrPaymentUpstream), errs.Is(err, commands.ErrStorageUpstream):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Upstream service failed", nil)
		return
	case errs.Is(err, commands.ErrSequenceUnavailable):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Service unavailable", nil)
		return
	}

	for _, rule := range conflictRules {
		if errs.Is(err, rule.target) {
			httperr.AbortWithReason(c, http.StatusConflict, err, "Conflict", rule.reason)
			return
		}
	}

	slog.ErrorContext(c.Request.Context(), "unhandled usecase error",
		"path", c.FullPath(),
		"error", err.Error(),
		"stack", errs.ExtractStackLines(err, 12))
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
}

// validationDetail exposes the innermost message of a validation error, never infra text.
func validationDetail(err error) any {
	if !errs.Is(err, commands.ErrValidation) {
		return nil
	}
	return gin.H{"message": errs.UnwrapAll(err).Error()}
}

func abortBadRequest(c *gin.Context, err error) {
	if err == nil {
		err = errInvalidRequest
	}
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
}

func abortUnauthorized(c *gin.Context) {
	httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
}
