//go:build unit

package commands_test

import (
	"context"
	"testing"

	"travel-booking/internal/domain/discount"
	"travel-booking/internal/testutil"
	"travel-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// SAVE10: 10% off, capped at 100, orders of 500 or more, once per user.
func save10(t *testing.T) *discount.Coupon {
	t.Helper()
	pct, err := discount.NewPercentageDiscount(10, ptr(int64(100)))
	require.NoError(t, err)
	return discount.ReconstructCoupon(uuid.New(), discount.Code("SAVE10"), pct, 500, testNow.AddDate(0, 0, 30), 1, testNow.AddDate(0, 0, -1))
}

func TestDiscountCommands_Apply(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: 上限付き割引を適用し利用回数を加算する", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		promo := save10(t)
		m.discounts.EXPECT().FindByCode(gomock.Any(), gomock.Any(), discount.Code("SAVE10")).Return(promo, nil)
		m.discounts.EXPECT().LockUsage(gomock.Any(), gomock.Any(), promo.ID(), userID).Return(0, nil)
		m.discounts.EXPECT().IncrementUsage(gomock.Any(), gomock.Any(), promo.ID(), userID).Return(nil)

		quote, err := commands.NewDiscountCommands(m.uow, m.clock).Apply(context.Background(), userID, " save10 ", 2000)

		require.NoError(t, err)
		assert.Equal(t, &commands.DiscountQuote{Code: "SAVE10", DiscountAmount: 100, FinalAmount: 1900}, quote)
	})

	t.Run("異常系: 2回目は利用上限で拒否し加算しない", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		promo := save10(t)
		m.discounts.EXPECT().FindByCode(gomock.Any(), gomock.Any(), gomock.Any()).Return(promo, nil)
		m.discounts.EXPECT().LockUsage(gomock.Any(), gomock.Any(), promo.ID(), userID).Return(1, nil)

		_, err := commands.NewDiscountCommands(m.uow, m.clock).Apply(context.Background(), userID, "SAVE10", 2000)

		testutil.RequireErrorIs(t, err, discount.ErrLimitReached)
		assert.Equal(t, discount.ReasonLimitReached, discount.Reason(err))
	})

	t.Run("異常系: 存在しないコード", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		m.discounts.EXPECT().FindByCode(gomock.Any(), gomock.Any(), discount.Code("NOPE")).Return(nil, notFoundErr())

		_, err := commands.NewDiscountCommands(m.uow, m.clock).Apply(context.Background(), userID, "NOPE", 2000)

		testutil.ErrorIs(t, err, discount.ErrNotFound)
	})

	t.Run("異常系: 有効期限切れは利用回数より先に判定する", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		promo := save10(t)
		m.clock.Set(promo.ExpiresAt().AddDate(0, 0, 1))
		m.discounts.EXPECT().FindByCode(gomock.Any(), gomock.Any(), gomock.Any()).Return(promo, nil)
		m.discounts.EXPECT().LockUsage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(5, nil)

		_, err := commands.NewDiscountCommands(m.uow, m.clock).Apply(context.Background(), userID, "SAVE10", 2000)

		testutil.ErrorIs(t, err, discount.ErrExpired)
	})

	t.Run("異常系: 形式不正のコードは検証エラー", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))

		_, err := commands.NewDiscountCommands(m.uow, m.clock).Apply(context.Background(), userID, "save 10!", 2000)

		testutil.ErrorIs(t, err, commands.ErrValidation)
	})
}

func TestDiscountCommands_Preview(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: 利用回数を消費せずに見積もる", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		promo := save10(t)
		m.discounts.EXPECT().FindByCode(gomock.Any(), gomock.Any(), gomock.Any()).Return(promo, nil)
		m.discounts.EXPECT().UsageCount(gomock.Any(), gomock.Any(), promo.ID(), userID).Return(0, nil)

		quote, err := commands.NewDiscountCommands(m.uow, m.clock).Preview(context.Background(), userID, "SAVE10", 800)

		require.NoError(t, err)
		assert.Equal(t, int64(80), quote.DiscountAmount)
		assert.Equal(t, int64(720), quote.FinalAmount)
	})

	t.Run("異常系: 最低注文金額未満", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		m.discounts.EXPECT().FindByCode(gomock.Any(), gomock.Any(), gomock.Any()).Return(save10(t), nil)
		m.discounts.EXPECT().UsageCount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)

		_, err := commands.NewDiscountCommands(m.uow, m.clock).Preview(context.Background(), userID, "SAVE10", 499)

		testutil.ErrorIs(t, err, discount.ErrBelowMinimum)
	})
}

func TestDiscountCommands_CreateDiscountCoupon(t *testing.T) {
	valid := commands.CreateDiscountInput{
		Code:              "SAVE10",
		Kind:              "percentage",
		Value:             10,
		MaxDiscount:       ptr(int64(100)),
		MinOrderAmount:    500,
		ExpiresAt:         testNow.AddDate(0, 1, 0),
		UsageLimitPerUser: 1,
	}

	t.Run("正常系", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		m.discounts.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		id, err := commands.NewDiscountCommands(m.uow, m.clock).CreateDiscountCoupon(context.Background(), valid)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	})

	t.Run("異常系: 重複コード", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		m.discounts.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(constraintErr("discount_coupons_code_key"))

		_, err := commands.NewDiscountCommands(m.uow, m.clock).CreateDiscountCoupon(context.Background(), valid)

		testutil.ErrorIs(t, err, commands.ErrDiscountCodeExists)
	})

	t.Run("異常系: 不正な割引種別", func(t *testing.T) {
		m := newUowMocks(gomock.NewController(t))
		in := valid
		in.Kind = "bogo"

		_, err := commands.NewDiscountCommands(m.uow, m.clock).CreateDiscountCoupon(context.Background(), in)

		testutil.ErrorIs(t, err, commands.ErrValidation)
	})
}
