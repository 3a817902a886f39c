package coupon

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPaymentIDRequired = errors.New("payment id is required")
	ErrCouponNotPaid     = errors.New("coupon payment is not successful")
	ErrAlreadyWinner     = errors.New("coupon has already won")

	// ErrCouponNotRedeemable is the single identity callers match on; the reasons below wrap it.
	ErrCouponNotRedeemable = errors.New("coupon is not redeemable")
	ErrCouponAlreadyUsed   = fmt.Errorf("%w: already used", ErrCouponNotRedeemable)
	ErrCouponNotWinner     = fmt.Errorf("%w: not a winning coupon", ErrCouponNotRedeemable)
	ErrCouponNotOwned      = fmt.Errorf("%w: belongs to another user", ErrCouponNotRedeemable)
	ErrCouponWrongPackage  = fmt.Errorf("%w: won for a different package", ErrCouponNotRedeemable)
)

// Coupon is a purchased lottery ticket against an offer.
type Coupon struct {
	id                  uuid.UUID
	offerID             uuid.UUID
	userID              uuid.UUID
	number              Number
	paymentID           string
	paymentStatus       PaymentStatus
	isWinner            bool
	associatedPackageID *uuid.UUID
	prizeName           *string
	wonAt               *time.Time
	isUsed              bool
	usedAt              *time.Time
	createdAt           time.Time
}

func NewPurchasedCoupon(offerID, userID uuid.UUID, number Number, paymentID string, now time.Time) (*Coupon, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, ErrPaymentIDRequired
	}
	if _, err := NewNumber(number.String()); err != nil {
		return nil, err
	}
	return &Coupon{
		id:            uuid.New(),
		offerID:       offerID,
		userID:        userID,
		number:        number,
		paymentID:     paymentID,
		paymentStatus: PaymentStatusSuccess,
		createdAt:     now,
	}, nil
}

func ReconstructCoupon(
	id, offerID, userID uuid.UUID,
	number Number,
	paymentID string,
	paymentStatus PaymentStatus,
	isWinner bool,
	associatedPackageID *uuid.UUID,
	prizeName *string,
	wonAt *time.Time,
	isUsed bool,
	usedAt *time.Time,
	createdAt time.Time,
) *Coupon {
	return &Coupon{
		id:                  id,
		offerID:             offerID,
		userID:              userID,
		number:              number,
		paymentID:           paymentID,
		paymentStatus:       paymentStatus,
		isWinner:            isWinner,
		associatedPackageID: associatedPackageID,
		prizeName:           prizeName,
		wonAt:               wonAt,
		isUsed:              isUsed,
		usedAt:              usedAt,
		createdAt:           createdAt,
	}
}

// MarkWinner binds the coupon to the package it was drawn for.
func (c *Coupon) MarkWinner(packageID uuid.UUID, prizeName string, now time.Time) error {
	if c.paymentStatus != PaymentStatusSuccess {
		return ErrCouponNotPaid
	}
	if c.isWinner {
		return ErrAlreadyWinner
	}
	c.isWinner = true
	c.associatedPackageID = &packageID
	c.prizeName = &prizeName
	c.wonAt = &now
	return nil
}

// CheckRedeemable evaluates the one-shot redemption rule. A used coupon fails first,
// regardless of the other fields.
func (c *Coupon) CheckRedeemable(userID, packageID uuid.UUID) error {
	if c.isUsed {
		return ErrCouponAlreadyUsed
	}
	if !c.isWinner {
		return ErrCouponNotWinner
	}
	if c.userID != userID {
		return ErrCouponNotOwned
	}
	if c.associatedPackageID == nil || *c.associatedPackageID != packageID {
		return ErrCouponWrongPackage
	}
	return nil
}

func (c *Coupon) Redeem(userID, packageID uuid.UUID, now time.Time) error {
	if err := c.CheckRedeemable(userID, packageID); err != nil {
		return err
	}
	c.isUsed = true
	c.usedAt = &now
	return nil
}

// RedemptionDiscount is one seat of the prize package, never more than the booking total.
func RedemptionDiscount(packagePrice, bookingTotal int64) int64 {
	if bookingTotal <= 0 || packagePrice <= 0 {
		return 0
	}
	return min(packagePrice, bookingTotal)
}

func (c *Coupon) ID() uuid.UUID                   { return c.id }
func (c *Coupon) OfferID() uuid.UUID              { return c.offerID }
func (c *Coupon) UserID() uuid.UUID               { return c.userID }
func (c *Coupon) Number() Number                  { return c.number }
func (c *Coupon) PaymentID() string               { return c.paymentID }
func (c *Coupon) PaymentStatus() PaymentStatus    { return c.paymentStatus }
func (c *Coupon) IsWinner() bool                  { return c.isWinner }
func (c *Coupon) AssociatedPackageID() *uuid.UUID { return c.associatedPackageID }
func (c *Coupon) PrizeName() *string              { return c.prizeName }
func (c *Coupon) WonAt() *time.Time               { return c.wonAt }
func (c *Coupon) IsUsed() bool                    { return c.isUsed }
func (c *Coupon) UsedAt() *time.Time              { return c.usedAt }
func (c *Coupon) CreatedAt() time.Time            { return c.createdAt }
