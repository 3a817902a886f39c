package discount

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidUsageLimit = errors.New("usage limit per user must be positive")
	ErrInvalidMinOrder   = errors.New("minimum order amount cannot be negative")
	ErrInvalidTotal      = errors.New("order total must be positive")

	// ErrRejected is the identity shared by every evaluation failure.
	ErrRejected     = errors.New("discount code rejected")
	ErrNotFound     = fmt.Errorf("%w: %s", ErrRejected, ReasonNotFound)
	ErrExpired      = fmt.Errorf("%w: %s", ErrRejected, ReasonExpired)
	ErrLimitReached = fmt.Errorf("%w: %s", ErrRejected, ReasonLimitReached)
	ErrBelowMinimum = fmt.Errorf("%w: %s", ErrRejected, ReasonBelowMinimum)
)

const (
	ReasonNotFound     = "not_found"
	ReasonExpired      = "expired"
	ReasonLimitReached = "usage_limit_reached"
	ReasonBelowMinimum = "min_order_amount_not_met"
)

// Reason maps an evaluation error to its reason code, or "" for other errors.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, ErrExpired):
		return ReasonExpired
	case errors.Is(err, ErrLimitReached):
		return ReasonLimitReached
	case errors.Is(err, ErrBelowMinimum):
		return ReasonBelowMinimum
	default:
		return ""
	}
}

type Quote struct {
	DiscountAmount int64
	FinalAmount    int64
}

// Coupon is a promo code with per-user usage accounting.
type Coupon struct {
	id                uuid.UUID
	code              Code
	discount          Discount
	minOrderAmount    int64
	expiresAt         time.Time
	usageLimitPerUser int
	createdAt         time.Time
}

func NewCoupon(code Code, d Discount, minOrderAmount int64, expiresAt time.Time, usageLimitPerUser int, now time.Time) (*Coupon, error) {
	if minOrderAmount < 0 {
		return nil, ErrInvalidMinOrder
	}
	if usageLimitPerUser <= 0 {
		return nil, ErrInvalidUsageLimit
	}
	if !expiresAt.After(now) {
		return nil, ErrExpired
	}
	return &Coupon{
		id:                uuid.New(),
		code:              code,
		discount:          d,
		minOrderAmount:    minOrderAmount,
		expiresAt:         expiresAt,
		usageLimitPerUser: usageLimitPerUser,
		createdAt:         now,
	}, nil
}

func ReconstructCoupon(id uuid.UUID, code Code, d Discount, minOrderAmount int64, expiresAt time.Time, usageLimitPerUser int, createdAt time.Time) *Coupon {
	return &Coupon{
		id:                id,
		code:              code,
		discount:          d,
		minOrderAmount:    minOrderAmount,
		expiresAt:         expiresAt,
		usageLimitPerUser: usageLimitPerUser,
		createdAt:         createdAt,
	}
}

// Evaluate runs the checks in order (expiry, per-user limit, minimum order) and
// stops at the first failure. Existence is checked by the caller.
func (c *Coupon) Evaluate(usedCount int, total int64, now time.Time) (Quote, error) {
	if total <= 0 {
		return Quote{}, ErrInvalidTotal
	}
	if now.After(c.expiresAt) {
		return Quote{}, ErrExpired
	}
	if usedCount >= c.usageLimitPerUser {
		return Quote{}, ErrLimitReached
	}
	if total < c.minOrderAmount {
		return Quote{}, ErrBelowMinimum
	}
	amount := c.discount.AmountFor(total)
	return Quote{DiscountAmount: amount, FinalAmount: max(0, total-amount)}, nil
}

func (c *Coupon) ID() uuid.UUID          { return c.id }
func (c *Coupon) Code() Code             { return c.code }
func (c *Coupon) Discount() Discount     { return c.discount }
func (c *Coupon) MinOrderAmount() int64  { return c.minOrderAmount }
func (c *Coupon) ExpiresAt() time.Time   { return c.expiresAt }
func (c *Coupon) UsageLimitPerUser() int { return c.usageLimitPerUser }
func (c *Coupon) CreatedAt() time.Time   { return c.createdAt }
