//go:build unit

package discount_test

import (
	"testing"
	"time"

	"travel-booking/internal/domain/discount"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func save10(t *testing.T) *discount.Coupon {
	t.Helper()
	code, err := discount.NewCode("save10")
	require.NoError(t, err)
	maxDiscount := int64(100)
	d, err := discount.NewPercentageDiscount(10, &maxDiscount)
	require.NoError(t, err)
	c, err := discount.NewCoupon(code, d, 500, now.Add(30*24*time.Hour), 1, now)
	require.NoError(t, err)
	return c
}

func TestCoupon_Evaluate_SAVE10(t *testing.T) {
	c := save10(t)
	assert.Equal(t, discount.Code("SAVE10"), c.Code())

	q, err := c.Evaluate(0, 2000, now)
	require.NoError(t, err)
	assert.Equal(t, int64(100), q.DiscountAmount)
	assert.Equal(t, int64(1900), q.FinalAmount)

	_, err = c.Evaluate(1, 2000, now)
	assert.ErrorIs(t, err, discount.ErrLimitReached)
	assert.Equal(t, discount.ReasonLimitReached, discount.Reason(err))
}

func TestCoupon_Evaluate_Order(t *testing.T) {
	c := save10(t)
	expired := c.ExpiresAt().Add(time.Second)

	tests := []struct {
		name   string
		used   int
		total  int64
		at     time.Time
		reason string
	}{
		// expiry wins over limit and minimum
		{name: "期限切れが最優先", used: 5, total: 100, at: expired, reason: discount.ReasonExpired},
		{name: "上限が最低金額より優先", used: 1, total: 100, at: now, reason: discount.ReasonLimitReached},
		{name: "最低金額未満", used: 0, total: 499, at: now, reason: discount.ReasonBelowMinimum},
		{name: "最低金額ちょうどOK", used: 0, total: 500, at: now},
		{name: "期限ちょうどOK", used: 0, total: 500, at: c.ExpiresAt()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Evaluate(tt.used, tt.total, tt.at)
			if tt.reason == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, discount.ErrRejected)
			assert.Equal(t, tt.reason, discount.Reason(err))
		})
	}
}

func TestDiscount_AmountFor(t *testing.T) {
	flat, err := discount.NewFlatDiscount(300)
	require.NoError(t, err)
	assert.Equal(t, int64(300), flat.AmountFor(1000))
	assert.Equal(t, int64(200), flat.AmountFor(200), "capped at total")

	pct, err := discount.NewPercentageDiscount(15, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(150), pct.AmountFor(1000))
	assert.Zero(t, pct.AmountFor(0))

	full, err := discount.NewPercentageDiscount(100, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(999), full.AmountFor(999))
}

func TestNewDiscount_Validation(t *testing.T) {
	zero := int64(0)

	_, err := discount.NewFlatDiscount(0)
	assert.ErrorIs(t, err, discount.ErrInvalidDiscountAmount)
	_, err = discount.NewPercentageDiscount(101, nil)
	assert.ErrorIs(t, err, discount.ErrInvalidDiscountPercent)
	_, err = discount.NewPercentageDiscount(10, &zero)
	assert.ErrorIs(t, err, discount.ErrInvalidMaxDiscount)
	_, err = discount.NewKind("bogus")
	assert.ErrorIs(t, err, discount.ErrInvalidKind)
	_, err = discount.NewCode("a b")
	assert.ErrorIs(t, err, discount.ErrInvalidCode)
}

func TestReason_Unrelated(t *testing.T) {
	assert.Equal(t, "", discount.Reason(discount.ErrInvalidTotal))
	assert.Equal(t, discount.ReasonNotFound, discount.Reason(discount.ErrNotFound))
}
