//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"travel-booking/internal/domain/coupon"
	"travel-booking/internal/domain/offer"
	"travel-booking/internal/infra/db"
	commandsmock "travel-booking/internal/mock/commands"
	"travel-booking/internal/testutil"
	"travel-booking/internal/testutil/builder"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CouponCommandsTestSuite struct {
	suite.Suite
	m       *uowMocks
	payment *commandsmock.MockPaymentGateway
	sut     commands.CouponCommands
}

func (s *CouponCommandsTestSuite) SetupSubTest() {
	ctrl := gomock.NewController(s.T())
	s.m = newUowMocks(ctrl)
	s.payment = commandsmock.NewMockPaymentGateway(ctrl)
	s.sut = commands.NewCouponCommands(s.m.uow, s.payment, s.m.clock)
}

func TestCouponCommandsSuite(t *testing.T) {
	suite.Run(t, new(CouponCommandsTestSuite))
}

func offerSnapshot(o *builder.OfferBuilder) *shared.OfferSnapshot {
	return &shared.OfferSnapshot{
		ID:           o.ID,
		Title:        o.Title,
		TotalCoupons: o.TotalCoupons,
		Price:        o.Price,
		EndDate:      o.EndDate,
		Status:       string(o.Status),
	}
}

func (s *CouponCommandsTestSuite) TestPurchase() {
	userID := uuid.New()

	s.Run("正常系: クーポン価格で決済オーダーを作成する", func() {
		o := builder.NewOfferBuilder()
		s.m.reads.EXPECT().OfferByID(gomock.Any(), o.ID).Return(offerSnapshot(o), nil)
		s.payment.EXPECT().CreateOrder(gomock.Any(), o.Price, "coupon:"+o.ID.String()+":"+userID.String()).
			Return(&commands.PaymentOrder{OrderID: "order_c1", Amount: o.Price}, nil)

		order, err := s.sut.Purchase(context.Background(), o.ID, userID)

		s.Require().NoError(err)
		s.Equal("order_c1", order.OrderID)
	})

	s.Run("異常系: 終了したオファー", func() {
		o := builder.NewOfferBuilder().Ended()
		s.m.reads.EXPECT().OfferByID(gomock.Any(), o.ID).Return(offerSnapshot(o), nil)

		_, err := s.sut.Purchase(context.Background(), o.ID, userID)

		testutil.ErrorIs(s.T(), err, offer.ErrOfferNotLive)
	})

	s.Run("異常系: 終了日を過ぎたオファー", func() {
		o := builder.NewOfferBuilder().With(func(o *builder.OfferBuilder) { o.EndDate = testNow })
		s.m.reads.EXPECT().OfferByID(gomock.Any(), o.ID).Return(offerSnapshot(o), nil)

		_, err := s.sut.Purchase(context.Background(), o.ID, userID)

		testutil.ErrorIs(s.T(), err, offer.ErrOfferExpired)
	})

	s.Run("異常系: 決済サービス障害", func() {
		o := builder.NewOfferBuilder()
		s.m.reads.EXPECT().OfferByID(gomock.Any(), o.ID).Return(offerSnapshot(o), nil)
		s.payment.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("503"))

		_, err := s.sut.Purchase(context.Background(), o.ID, userID)

		testutil.ErrorIs(s.T(), err, commands.ErrPaymentUpstream)
	})
}

func (s *CouponCommandsTestSuite) TestConfirmPurchase() {
	userID := uuid.New()
	o := builder.NewOfferBuilder()

	s.Run("正常系: オファー単位の連番でクーポンを発行する", func() {
		s.m.coupons.EXPECT().FindByPaymentID(gomock.Any(), gomock.Any(), "pay_1").Return(nil, notFoundErr())
		s.m.offers.EXPECT().FindByID(gomock.Any(), gomock.Any(), o.ID).Return(o.BuildDomain(), nil)
		s.m.counters.EXPECT().Next(gomock.Any(), gomock.Any(), "offer_coupon:"+o.ID.String()).Return(int64(17), nil)
		s.m.coupons.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, c *coupon.Coupon) error {
				s.Equal(coupon.PaymentStatusSuccess, c.PaymentStatus())
				s.Equal(userID, c.UserID())
				return nil
			})

		result, err := s.sut.ConfirmPurchase(context.Background(), o.ID, userID, " pay_1 ")

		s.Require().NoError(err)
		s.Equal("000017", result.Number)
		s.False(result.IsReplayed)
	})

	s.Run("正常系: 同じ決済IDの再送は既存クーポンを返す", func() {
		existing := builder.NewCouponBuilder().With(func(c *builder.CouponBuilder) {
			c.OfferID = o.ID
			c.UserID = userID
			c.PaymentID = "pay_1"
		}).WithNumber("000017").BuildDomain()
		s.m.coupons.EXPECT().FindByPaymentID(gomock.Any(), gomock.Any(), "pay_1").Return(existing, nil)

		result, err := s.sut.ConfirmPurchase(context.Background(), o.ID, userID, "pay_1")

		s.Require().NoError(err)
		s.True(result.IsReplayed)
		s.Equal(existing.ID(), result.CouponID)
		s.Equal("000017", result.Number)
	})

	s.Run("異常系: 他ユーザーが使った決済ID", func() {
		existing := builder.NewCouponBuilder().With(func(c *builder.CouponBuilder) { c.OfferID = o.ID }).BuildDomain()
		s.m.coupons.EXPECT().FindByPaymentID(gomock.Any(), gomock.Any(), "pay_1").Return(existing, nil)

		_, err := s.sut.ConfirmPurchase(context.Background(), o.ID, userID, "pay_1")

		testutil.ErrorIs(s.T(), err, commands.ErrPaymentAlreadyUsed)
	})

	s.Run("正常系: 同時確定で一意制約に負けたら勝者のクーポンを返す", func() {
		winner := builder.NewCouponBuilder().With(func(c *builder.CouponBuilder) {
			c.OfferID = o.ID
			c.UserID = userID
		}).BuildDomain()
		gomock.InOrder(
			s.m.coupons.EXPECT().FindByPaymentID(gomock.Any(), gomock.Any(), "pay_2").Return(nil, notFoundErr()),
			s.m.coupons.EXPECT().FindByPaymentID(gomock.Any(), gomock.Any(), "pay_2").Return(winner, nil),
		)
		s.m.offers.EXPECT().FindByID(gomock.Any(), gomock.Any(), o.ID).Return(o.BuildDomain(), nil)
		s.m.counters.EXPECT().Next(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(18), nil)
		s.m.coupons.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(constraintErr("uq_coupons_payment_id"))

		result, err := s.sut.ConfirmPurchase(context.Background(), o.ID, userID, "pay_2")

		s.Require().NoError(err)
		s.True(result.IsReplayed)
		s.Equal(winner.ID(), result.CouponID)
	})

	s.Run("異常系: 決済IDが空", func() {
		_, err := s.sut.ConfirmPurchase(context.Background(), o.ID, userID, "  ")

		testutil.ErrorIs(s.T(), err, commands.ErrValidation)
	})

	s.Run("異常系: 存在しないオファー", func() {
		s.m.coupons.EXPECT().FindByPaymentID(gomock.Any(), gomock.Any(), "pay_3").Return(nil, notFoundErr())
		s.m.offers.EXPECT().FindByID(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, notFoundErr())

		_, err := s.sut.ConfirmPurchase(context.Background(), uuid.New(), userID, "pay_3")

		testutil.ErrorIs(s.T(), err, commands.ErrOfferNotFound)
	})
}

func (s *CouponCommandsTestSuite) TestPreviewRedemption() {
	userID := uuid.New()
	pkg := builder.NewPackageBuilder()

	s.Run("正常系: 1席分の割引を使用せずに返す", func() {
		winner := builder.NewCouponBuilder().With(func(c *builder.CouponBuilder) { c.UserID = userID }).
			AsWinner(pkg.ID, pkg.Title).BuildDomain()
		s.m.reads.EXPECT().PackageByID(gomock.Any(), pkg.ID).Return(pkg.BuildSnapshot(), nil)
		s.m.coupons.EXPECT().ListByNumberForUser(gomock.Any(), gomock.Any(), coupon.Number("000001"), userID, false).
			Return([]*coupon.Coupon{winner}, nil)

		preview, err := s.sut.PreviewRedemption(context.Background(), userID, "000001", pkg.ID, 0)

		s.Require().NoError(err)
		s.Equal(pkg.Price, preview.DiscountAmount)
		s.False(winner.IsUsed())
	})

	s.Run("正常系: 合計が1席分より小さければ合計が上限", func() {
		winner := builder.NewCouponBuilder().With(func(c *builder.CouponBuilder) { c.UserID = userID }).
			AsWinner(pkg.ID, pkg.Title).BuildDomain()
		s.m.reads.EXPECT().PackageByID(gomock.Any(), pkg.ID).Return(pkg.BuildSnapshot(), nil)
		s.m.coupons.EXPECT().ListByNumberForUser(gomock.Any(), gomock.Any(), gomock.Any(), userID, false).
			Return([]*coupon.Coupon{winner}, nil)

		preview, err := s.sut.PreviewRedemption(context.Background(), userID, "000001", pkg.ID, 1000)

		s.Require().NoError(err)
		s.Equal(int64(1000), preview.DiscountAmount)
	})

	s.Run("異常系: 別パッケージで当選したクーポン", func() {
		winner := builder.NewCouponBuilder().With(func(c *builder.CouponBuilder) { c.UserID = userID }).
			AsWinner(uuid.New(), "Elsewhere").BuildDomain()
		s.m.reads.EXPECT().PackageByID(gomock.Any(), pkg.ID).Return(pkg.BuildSnapshot(), nil)
		s.m.coupons.EXPECT().ListByNumberForUser(gomock.Any(), gomock.Any(), gomock.Any(), userID, false).
			Return([]*coupon.Coupon{winner}, nil)

		_, err := s.sut.PreviewRedemption(context.Background(), userID, "000001", pkg.ID, 0)

		testutil.ErrorIs(s.T(), err, coupon.ErrCouponWrongPackage)
		testutil.ErrorIs(s.T(), err, coupon.ErrCouponNotRedeemable)
	})

	s.Run("異常系: 該当クーポンなし", func() {
		s.m.reads.EXPECT().PackageByID(gomock.Any(), pkg.ID).Return(pkg.BuildSnapshot(), nil)
		s.m.coupons.EXPECT().ListByNumberForUser(gomock.Any(), gomock.Any(), gomock.Any(), userID, false).Return(nil, nil)

		_, err := s.sut.PreviewRedemption(context.Background(), userID, "000001", pkg.ID, 0)

		testutil.ErrorIs(s.T(), err, commands.ErrRedemptionNotFound)
	})
}
