//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-booking/internal/domain/offer"
	commandsmock "travel-booking/internal/mock/commands"
	"travel-booking/internal/testutil"
	"travel-booking/internal/testutil/builder"
	"travel-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OfferCommandsTestSuite struct {
	suite.Suite
	m     *uowMocks
	cache *commandsmock.MockLiveOfferInvalidator
	sut   commands.OfferCommands
}

func (s *OfferCommandsTestSuite) SetupSubTest() {
	ctrl := gomock.NewController(s.T())
	s.m = newUowMocks(ctrl)
	s.cache = commandsmock.NewMockLiveOfferInvalidator(ctrl)
	s.sut = commands.NewOfferCommands(s.m.uow, s.cache, s.m.clock)
}

func TestOfferCommandsSuite(t *testing.T) {
	suite.Run(t, new(OfferCommandsTestSuite))
}

func (s *OfferCommandsTestSuite) TestCreateOffer() {
	input := func() commands.CreateOfferInput {
		return commands.CreateOfferInput{
			Title:        "Diwali Draw",
			TotalCoupons: 500,
			Price:        299,
			EndDate:      testNow.Add(72 * time.Hour),
		}
	}

	s.Run("正常系: ライブのオファーがなければ作成してキャッシュを破棄する", func() {
		s.m.offers.EXPECT().FindLiveForUpdate(gomock.Any(), gomock.Any()).Return(nil, notFoundErr())
		s.m.offers.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.cache.EXPECT().InvalidateLive(gomock.Any()).Return(nil)

		id, err := s.sut.CreateOffer(context.Background(), input())

		s.Require().NoError(err)
		s.NotEqual(uuid.Nil, id)
	})

	s.Run("異常系: ライブのオファーが既にある", func() {
		s.m.offers.EXPECT().FindLiveForUpdate(gomock.Any(), gomock.Any()).Return(builder.NewOfferBuilder().BuildDomain(), nil)

		_, err := s.sut.CreateOffer(context.Background(), input())

		testutil.ErrorIs(s.T(), err, commands.ErrLiveOfferExists)
	})

	s.Run("正常系: replaceLive なら既存を終了して作成する", func() {
		live := builder.NewOfferBuilder().BuildDomain()
		in := input()
		in.ReplaceLive = true
		s.m.offers.EXPECT().FindLiveForUpdate(gomock.Any(), gomock.Any()).Return(live, nil).Times(2)
		s.m.offers.EXPECT().Save(gomock.Any(), gomock.Any(), live).Return(nil)
		s.m.offers.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.cache.EXPECT().InvalidateLive(gomock.Any()).Return(nil)

		_, err := s.sut.CreateOffer(context.Background(), input())
		testutil.RequireErrorIs(s.T(), err, commands.ErrLiveOfferExists, "replaceLive=false rejects")

		_, err = s.sut.CreateOffer(context.Background(), in)

		s.Require().NoError(err)
		s.Equal(offer.StatusEnded, live.Status())
	})

	s.Run("異常系: 同時作成で単一ライブ制約に負けた", func() {
		s.m.offers.EXPECT().FindLiveForUpdate(gomock.Any(), gomock.Any()).Return(nil, notFoundErr())
		s.m.offers.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(constraintErr("uq_offers_single_live"))

		_, err := s.sut.CreateOffer(context.Background(), input())

		testutil.ErrorIs(s.T(), err, commands.ErrLiveOfferExists)
	})

	s.Run("異常系: 終了日が過去", func() {
		in := input()
		in.EndDate = testNow.Add(-time.Minute)

		_, err := s.sut.CreateOffer(context.Background(), in)

		testutil.ErrorIs(s.T(), err, commands.ErrValidation)
		testutil.ErrorIs(s.T(), err, offer.ErrEndDateInPast)
	})

	s.Run("正常系: キャッシュ破棄の失敗は作成を失敗させない", func() {
		s.m.offers.EXPECT().FindLiveForUpdate(gomock.Any(), gomock.Any()).Return(nil, notFoundErr())
		s.m.offers.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.cache.EXPECT().InvalidateLive(gomock.Any()).Return(errors.New("redis: connection refused"))

		_, err := s.sut.CreateOffer(context.Background(), input())

		s.NoError(err)
	})
}

func (s *OfferCommandsTestSuite) TestEndOffer() {
	s.Run("正常系: ライブのオファーを終了する", func() {
		target := builder.NewOfferBuilder().BuildDomain()
		s.m.offers.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), target.ID()).Return(target, nil)
		s.m.offers.EXPECT().Save(gomock.Any(), gomock.Any(), target).Return(nil)
		s.cache.EXPECT().InvalidateLive(gomock.Any()).Return(nil)

		s.Require().NoError(s.sut.EndOffer(context.Background(), target.ID()))
		s.Equal(offer.StatusEnded, target.Status())
	})

	s.Run("正常系: 終了済みなら何もしない", func() {
		target := builder.NewOfferBuilder().Ended().BuildDomain()
		s.m.offers.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), target.ID()).Return(target, nil)

		s.NoError(s.sut.EndOffer(context.Background(), target.ID()))
	})

	s.Run("異常系: 存在しないオファー", func() {
		s.m.offers.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, notFoundErr())

		testutil.ErrorIs(s.T(), s.sut.EndOffer(context.Background(), uuid.New()), commands.ErrOfferNotFound)
	})
}

func (s *OfferCommandsTestSuite) TestExpireOffers() {
	s.Run("正常系: 期限切れを終了した件数を返す", func() {
		s.m.offers.EXPECT().EndExpired(gomock.Any(), gomock.Any(), testNow).Return([]uuid.UUID{uuid.New(), uuid.New()}, nil)
		s.cache.EXPECT().InvalidateLive(gomock.Any()).Return(nil)

		n, err := s.sut.ExpireOffers(context.Background())

		s.Require().NoError(err)
		s.Equal(2, n)
	})

	s.Run("正常系: 対象なしならキャッシュに触れない", func() {
		s.m.offers.EXPECT().EndExpired(gomock.Any(), gomock.Any(), testNow).Return(nil, nil)

		n, err := s.sut.ExpireOffers(context.Background())

		s.Require().NoError(err)
		s.Zero(n)
	})
}
