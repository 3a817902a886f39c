//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"travel-booking/internal/domain/coupon"
	"travel-booking/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, coupon.Number("000001"), coupon.FormatNumber(1))
	assert.Equal(t, coupon.Number("123456"), coupon.FormatNumber(123456))
	assert.Equal(t, coupon.Number("1000000"), coupon.FormatNumber(1000000))
}

func TestNewNumber(t *testing.T) {
	for _, ok := range []string{"000001", " 123456 ", "1234567"} {
		_, err := coupon.NewNumber(ok)
		assert.NoError(t, err, ok)
	}
	for _, ng := range []string{"", "12345", "12a456", "-00001"} {
		_, err := coupon.NewNumber(ng)
		assert.ErrorIs(t, err, coupon.ErrInvalidCouponNumber, ng)
	}
}

func TestNewPurchasedCoupon(t *testing.T) {
	now := time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC)

	c, err := coupon.NewPurchasedCoupon(uuid.New(), uuid.New(), coupon.FormatNumber(7), "pay_123", now)
	require.NoError(t, err)
	assert.Equal(t, coupon.PaymentStatusSuccess, c.PaymentStatus())
	assert.False(t, c.IsWinner())
	assert.False(t, c.IsUsed())

	_, err = coupon.NewPurchasedCoupon(uuid.New(), uuid.New(), coupon.FormatNumber(7), "  ", now)
	assert.ErrorIs(t, err, coupon.ErrPaymentIDRequired)
}

func TestCoupon_MarkWinner(t *testing.T) {
	now := time.Date(2026, 6, 3, 9, 0, 0, 0, time.UTC)
	pkgID := uuid.New()

	c := builder.NewCouponBuilder().BuildDomain()
	require.NoError(t, c.MarkWinner(pkgID, "Goa Beach Escape", now))
	assert.True(t, c.IsWinner())
	assert.Equal(t, pkgID, *c.AssociatedPackageID())
	assert.Equal(t, "Goa Beach Escape", *c.PrizeName())
	assert.Equal(t, now, *c.WonAt())

	assert.ErrorIs(t, c.MarkWinner(uuid.New(), "Other", now), coupon.ErrAlreadyWinner)
	assert.Equal(t, pkgID, *c.AssociatedPackageID())
}

func TestCoupon_Redeem(t *testing.T) {
	now := time.Date(2026, 6, 4, 9, 0, 0, 0, time.UTC)
	pkgID := uuid.New()

	winner := func() (*builder.CouponBuilder, uuid.UUID) {
		b := builder.NewCouponBuilder().AsWinner(pkgID, "Goa Beach Escape")
		return b, b.UserID
	}

	t.Run("当選・本人・対象パッケージで一度だけ利用OK", func(t *testing.T) {
		b, owner := winner()
		c := b.BuildDomain()

		require.NoError(t, c.Redeem(owner, pkgID, now))
		assert.True(t, c.IsUsed())
		assert.Equal(t, now, *c.UsedAt())

		assert.ErrorIs(t, c.Redeem(owner, pkgID, now), coupon.ErrCouponAlreadyUsed)
	})

	t.Run("利用済みは他の条件に関係なく失敗", func(t *testing.T) {
		b, _ := winner()
		c := b.AsUsed().BuildDomain()

		err := c.CheckRedeemable(uuid.New(), uuid.New())
		assert.ErrorIs(t, err, coupon.ErrCouponAlreadyUsed)
		assert.ErrorIs(t, err, coupon.ErrCouponNotRedeemable)
	})

	t.Run("非当選NG", func(t *testing.T) {
		b := builder.NewCouponBuilder()
		assert.ErrorIs(t, b.BuildDomain().CheckRedeemable(b.UserID, pkgID), coupon.ErrCouponNotWinner)
	})

	t.Run("他人のクーポンNG", func(t *testing.T) {
		b, _ := winner()
		assert.ErrorIs(t, b.BuildDomain().CheckRedeemable(uuid.New(), pkgID), coupon.ErrCouponNotOwned)
	})

	t.Run("別パッケージNG", func(t *testing.T) {
		b, owner := winner()
		c := b.BuildDomain()
		require.ErrorIs(t, c.Redeem(owner, uuid.New(), now), coupon.ErrCouponWrongPackage)
		assert.False(t, c.IsUsed())
	})
}

func TestRedemptionDiscount(t *testing.T) {
	assert.Equal(t, int64(25000), coupon.RedemptionDiscount(25000, 50000))
	assert.Equal(t, int64(12000), coupon.RedemptionDiscount(25000, 12000))
	assert.Zero(t, coupon.RedemptionDiscount(25000, 0))
	assert.Zero(t, coupon.RedemptionDiscount(0, 50000))
}
