//go:build unit || e2e

package builder

import (
	"time"

	"travel-booking/internal/domain/coupon"

	"github.com/google/uuid"
)

type CouponBuilder struct {
	ID        uuid.UUID
	OfferID   uuid.UUID
	UserID    uuid.UUID
	Number    string
	PaymentID string
	Status    coupon.PaymentStatus
	WonFor    *uuid.UUID
	PrizeName *string
	WonAt     *time.Time
	IsUsed    bool
	CreatedAt time.Time
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		ID:        uuid.New(),
		OfferID:   uuid.New(),
		UserID:    uuid.New(),
		Number:    "000001",
		PaymentID: "pay_" + uuid.NewString()[:8],
		Status:    coupon.PaymentStatusSuccess,
		CreatedAt: time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC),
	}
}

func (c *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(c)
	return c
}

func (c *CouponBuilder) WithNumber(n string) *CouponBuilder {
	c.Number = n
	return c
}

// AsWinner marks the coupon as having won packageID.
func (c *CouponBuilder) AsWinner(packageID uuid.UUID, prize string) *CouponBuilder {
	wonAt := c.CreatedAt.Add(24 * time.Hour)
	c.WonFor = &packageID
	c.PrizeName = &prize
	c.WonAt = &wonAt
	return c
}

func (c *CouponBuilder) AsUsed() *CouponBuilder {
	c.IsUsed = true
	return c
}

func (c *CouponBuilder) BuildDomain() *coupon.Coupon {
	var usedAt *time.Time
	if c.IsUsed {
		t := c.CreatedAt.Add(48 * time.Hour)
		usedAt = &t
	}
	return coupon.ReconstructCoupon(
		c.ID, c.OfferID, c.UserID,
		coupon.Number(c.Number),
		c.PaymentID,
		c.Status,
		c.WonFor != nil,
		c.WonFor,
		c.PrizeName,
		c.WonAt,
		c.IsUsed,
		usedAt,
		c.CreatedAt,
	)
}
