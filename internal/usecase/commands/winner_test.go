//go:build unit

package commands_test

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"travel-booking/internal/domain/coupon"
	"travel-booking/internal/domain/lottery"
	"travel-booking/internal/infra/db"
	"travel-booking/internal/testutil"
	"travel-booking/internal/testutil/builder"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WinnerCommandsTestSuite struct {
	suite.Suite
	m       *uowMocks
	sut     commands.WinnerCommands
	actorID uuid.UUID
	key     uuid.UUID
}

func (s *WinnerCommandsTestSuite) SetupSubTest() {
	s.m = newUowMocks(gomock.NewController(s.T()))
	s.sut = commands.NewWinnerCommands(s.m.uow, rand.New(rand.NewPCG(7, 11)), s.m.clock, 24*time.Hour)
	s.actorID = uuid.New()
	s.key = uuid.New()
}

func TestWinnerCommandsSuite(t *testing.T) {
	suite.Run(t, new(WinnerCommandsTestSuite))
}

func eligibleCoupons(offerID uuid.UUID, n int) []*coupon.Coupon {
	out := make([]*coupon.Coupon, n)
	for i := range out {
		out[i] = builder.NewCouponBuilder().
			With(func(c *builder.CouponBuilder) { c.OfferID = offerID }).
			WithNumber(string(coupon.FormatNumber(int64(i + 1)))).
			BuildDomain()
	}
	return out
}

// expectFreshKey lets the idempotency claim succeed and the result be stored.
func (s *WinnerCommandsTestSuite) expectFreshKey() {
	s.m.idempotency.EXPECT().
		TryInsert(gomock.Any(), gomock.Any(), s.key, s.actorID, gomock.Any(), gomock.Any(), testNow.Add(24*time.Hour)).
		Return(true, nil)
	s.m.idempotency.EXPECT().UpdateStatusCompleted(gomock.Any(), gomock.Any(), s.key, s.actorID, gomock.Any()).Return(nil)
}

func (s *WinnerCommandsTestSuite) TestAnnounceWinners_Random() {
	o := builder.NewOfferBuilder()
	pkg := builder.NewPackageBuilder()

	s.Run("正常系: 対象から重複なく指定数を選び当選メールを1件ずつ積む", func() {
		target := o.BuildDomain()
		pool := eligibleCoupons(o.ID, 10)
		s.expectFreshKey()
		s.m.offers.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), o.ID).Return(target, nil)
		s.m.packages.EXPECT().FindByID(gomock.Any(), gomock.Any(), pkg.ID).Return(pkg.BuildDomain(), nil)
		s.m.coupons.EXPECT().LockEligible(gomock.Any(), gomock.Any(), o.ID).Return(pool, nil)
		s.m.coupons.EXPECT().MarkWinner(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(3)
		s.m.notifications.EXPECT().
			CreateJob(gomock.Any(), gomock.Any(), commands.JobKindEmail, commands.TopicWinnerEmail, gomock.Any(), testNow).
			Return(nil).Times(3)
		s.m.offers.EXPECT().Save(gomock.Any(), gomock.Any(), target).Return(nil)

		result, err := s.sut.AnnounceWinners(context.Background(),
			commands.AnnounceWinnersInput{OfferID: o.ID, PackageID: pkg.ID, NumberOfWinners: 3}, s.actorID, s.key)

		s.Require().NoError(err)
		s.Equal("random", result.Mode)
		s.Equal(3, result.Selected)
		s.False(result.Truncated)
		s.Equal(pkg.Title, result.PrizeName)

		seen := map[uuid.UUID]bool{}
		for _, w := range result.Winners {
			s.False(seen[w.CouponID], "duplicate winner %s", w.CouponNumber)
			seen[w.CouponID] = true
		}
		s.Require().NotNil(target.GrandPrize())
		s.Equal(pkg.Title, *target.GrandPrize())
	})

	s.Run("正常系: 対象不足なら全員当選で truncated", func() {
		pool := eligibleCoupons(o.ID, 2)
		s.expectFreshKey()
		s.m.offers.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), o.ID).Return(o.BuildDomain(), nil)
		s.m.packages.EXPECT().FindByID(gomock.Any(), gomock.Any(), pkg.ID).Return(pkg.BuildDomain(), nil)
		s.m.coupons.EXPECT().LockEligible(gomock.Any(), gomock.Any(), o.ID).Return(pool, nil)
		s.m.coupons.EXPECT().MarkWinner(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
		s.m.notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		s.m.offers.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.sut.AnnounceWinners(context.Background(),
			commands.AnnounceWinnersInput{OfferID: o.ID, PackageID: pkg.ID, NumberOfWinners: 5}, s.actorID, s.key)

		s.Require().NoError(err)
		s.Equal(5, result.Requested)
		s.Equal(2, result.Selected)
		s.True(result.Truncated)
	})

	s.Run("正常系: 既に大賞が記録されていれば上書きしない", func() {
		prior := "Earlier Prize"
		target := builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = o.ID
			b.GrandPrize = &prior
		}).BuildDomain()
		s.expectFreshKey()
		s.m.offers.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), o.ID).Return(target, nil)
		s.m.packages.EXPECT().FindByID(gomock.Any(), gomock.Any(), pkg.ID).Return(pkg.BuildDomain(), nil)
		s.m.coupons.EXPECT().LockEligible(gomock.Any(), gomock.Any(), o.ID).Return(eligibleCoupons(o.ID, 1), nil)
		s.m.coupons.EXPECT().MarkWinner(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		s.m.notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.sut.AnnounceWinners(context.Background(),
			commands.AnnounceWinnersInput{OfferID: o.ID, PackageID: pkg.ID, NumberOfWinners: 1}, s.actorID, s.key)

		s.Require().NoError(err)
		s.Equal(prior, *target.GrandPrize())
	})

	s.Run("異常系: 当選数が0", func() {
		_, err := s.sut.AnnounceWinners(context.Background(),
			commands.AnnounceWinnersInput{OfferID: o.ID, PackageID: pkg.ID}, s.actorID, s.key)

		testutil.ErrorIs(s.T(), err, commands.ErrValidation)
		testutil.ErrorIs(s.T(), err, lottery.ErrInvalidWinnerCount)
	})

	s.Run("異常系: 存在しないパッケージ", func() {
		s.expectFreshKeyInsertOnly()
		s.m.offers.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), o.ID).Return(o.BuildDomain(), nil)
		s.m.packages.EXPECT().FindByID(gomock.Any(), gomock.Any(), pkg.ID).Return(nil, notFoundErr())

		_, err := s.sut.AnnounceWinners(context.Background(),
			commands.AnnounceWinnersInput{OfferID: o.ID, PackageID: pkg.ID, NumberOfWinners: 1}, s.actorID, s.key)

		testutil.ErrorIs(s.T(), err, commands.ErrPackageNotFound)
	})
}

func (s *WinnerCommandsTestSuite) expectFreshKeyInsertOnly() {
	s.m.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), s.key, s.actorID, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil)
}

func (s *WinnerCommandsTestSuite) TestAnnounceWinners_Explicit() {
	o := builder.NewOfferBuilder()
	pkg := builder.NewPackageBuilder()

	s.Run("正常系: 指定番号をそのまま当選にする(重複指定は1件)", func() {
		pool := eligibleCoupons(o.ID, 2)
		s.expectFreshKey()
		s.m.offers.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), o.ID).Return(o.BuildDomain(), nil)
		s.m.packages.EXPECT().FindByID(gomock.Any(), gomock.Any(), pkg.ID).Return(pkg.BuildDomain(), nil)
		s.m.coupons.EXPECT().
			LockByNumbers(gomock.Any(), gomock.Any(), o.ID, []coupon.Number{"000001", "000002"}).
			Return(pool, nil)
		s.m.coupons.EXPECT().MarkWinner(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
		s.m.notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		s.m.offers.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.sut.AnnounceWinners(context.Background(), commands.AnnounceWinnersInput{
			OfferID:       o.ID,
			PackageID:     pkg.ID,
			CouponNumbers: []string{"000001", "000002", "000001"},
		}, s.actorID, s.key)

		s.Require().NoError(err)
		s.Equal("explicit", result.Mode)
		got := []string{result.Winners[0].CouponNumber, result.Winners[1].CouponNumber}
		if diff := cmp.Diff([]string{"000001", "000002"}, got); diff != "" {
			s.Failf("winners mismatch", "(-want +got):\n%s", diff)
		}
	})

	s.Run("異常系: 一部の番号が見つからなければ何も当選にしない", func() {
		s.expectFreshKeyInsertOnly()
		s.m.offers.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), o.ID).Return(o.BuildDomain(), nil)
		s.m.packages.EXPECT().FindByID(gomock.Any(), gomock.Any(), pkg.ID).Return(pkg.BuildDomain(), nil)
		s.m.coupons.EXPECT().LockByNumbers(gomock.Any(), gomock.Any(), o.ID, gomock.Any()).Return(eligibleCoupons(o.ID, 2), nil)

		_, err := s.sut.AnnounceWinners(context.Background(), commands.AnnounceWinnersInput{
			OfferID:       o.ID,
			PackageID:     pkg.ID,
			CouponNumbers: []string{"000001", "000002", "000003"},
		}, s.actorID, s.key)

		testutil.RequireErrorIs(s.T(), err, lottery.ErrPartialMatch)
		var partial *lottery.PartialMatchError
		s.Require().ErrorAs(err, &partial)
		s.Equal(2, partial.Found)
		s.Equal(3, partial.Requested)
	})

	s.Run("異常系: 番号の形式不正", func() {
		_, err := s.sut.AnnounceWinners(context.Background(), commands.AnnounceWinnersInput{
			OfferID:       o.ID,
			PackageID:     pkg.ID,
			CouponNumbers: []string{"12a"},
		}, s.actorID, s.key)

		testutil.ErrorIs(s.T(), err, commands.ErrValidation)
	})
}

func (s *WinnerCommandsTestSuite) TestAnnounceWinners_Idempotency() {
	o := builder.NewOfferBuilder()
	pkg := builder.NewPackageBuilder()
	in := commands.AnnounceWinnersInput{OfferID: o.ID, PackageID: pkg.ID, NumberOfWinners: 1}

	s.Run("正常系: 同じキーの再送は保存済みの結果を返し再抽選しない", func() {
		var stored []byte
		var hash string
		s.m.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), s.key, s.actorID, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, _, _ uuid.UUID, _, requestHash string, _ time.Time) (bool, error) {
				hash = requestHash
				return true, nil
			})
		s.m.idempotency.EXPECT().UpdateStatusCompleted(gomock.Any(), gomock.Any(), s.key, s.actorID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, _, _ uuid.UUID, body []byte) error {
				stored = body
				return nil
			})
		s.m.offers.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), o.ID).Return(o.BuildDomain(), nil)
		s.m.packages.EXPECT().FindByID(gomock.Any(), gomock.Any(), pkg.ID).Return(pkg.BuildDomain(), nil)
		s.m.coupons.EXPECT().LockEligible(gomock.Any(), gomock.Any(), o.ID).Return(eligibleCoupons(o.ID, 4), nil)
		s.m.coupons.EXPECT().MarkWinner(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		s.m.notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.m.offers.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		first, err := s.sut.AnnounceWinners(context.Background(), in, s.actorID, s.key)
		s.Require().NoError(err)

		s.m.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), s.key, s.actorID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)
		s.m.idempotency.EXPECT().Get(gomock.Any(), gomock.Any(), s.key, s.actorID).
			DoAndReturn(func(context.Context, db.DBTX, uuid.UUID, uuid.UUID) (*shared.IdempotencyRecord, error) {
				return &shared.IdempotencyRecord{
					Key:          s.key,
					UserID:       s.actorID,
					Endpoint:     "POST /api/admin/offers/:id/winners",
					Status:       shared.IdempotencyStatusCompleted,
					RequestHash:  hash,
					ResponseBody: stored,
					ExpiresAt:    testNow.Add(time.Hour),
				}, nil
			})

		second, err := s.sut.AnnounceWinners(context.Background(), in, s.actorID, s.key)

		s.Require().NoError(err)
		s.True(second.IsReplayed)
		s.Equal(first.Winners, second.Winners)
	})

	s.Run("異常系: 同じキーで異なるリクエスト", func() {
		s.m.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), s.key, s.actorID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)
		s.m.idempotency.EXPECT().Get(gomock.Any(), gomock.Any(), s.key, s.actorID).Return(&shared.IdempotencyRecord{
			Endpoint:    "POST /api/admin/offers/:id/winners",
			Status:      shared.IdempotencyStatusCompleted,
			RequestHash: "another-request",
			ExpiresAt:   testNow.Add(time.Hour),
		}, nil)

		_, err := s.sut.AnnounceWinners(context.Background(), in, s.actorID, s.key)

		testutil.ErrorIs(s.T(), err, commands.ErrIdempotencyMismatch)
	})

	s.Run("異常系: 処理中のキー", func() {
		var endpoint, hash string
		s.m.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), s.key, s.actorID, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, _, _ uuid.UUID, ep, requestHash string, _ time.Time) (bool, error) {
				endpoint, hash = ep, requestHash
				return false, nil
			})
		s.m.idempotency.EXPECT().Get(gomock.Any(), gomock.Any(), s.key, s.actorID).
			DoAndReturn(func(context.Context, db.DBTX, uuid.UUID, uuid.UUID) (*shared.IdempotencyRecord, error) {
				return &shared.IdempotencyRecord{
					Endpoint:    endpoint,
					Status:      shared.IdempotencyStatusProcessing,
					RequestHash: hash,
					ExpiresAt:   testNow.Add(time.Hour),
				}, nil
			})

		_, err := s.sut.AnnounceWinners(context.Background(), in, s.actorID, s.key)

		testutil.ErrorIs(s.T(), err, commands.ErrIdempotencyInProgress)
	})

	s.Run("正常系: 期限切れのキーは取り直して再実行する", func() {
		s.m.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), s.key, s.actorID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)
		s.m.idempotency.EXPECT().Get(gomock.Any(), gomock.Any(), s.key, s.actorID).Return(&shared.IdempotencyRecord{
			Status:    shared.IdempotencyStatusProcessing,
			ExpiresAt: testNow.Add(-time.Minute),
		}, nil)
		s.m.idempotency.EXPECT().ClaimExpiredIdempotencyKey(gomock.Any(), gomock.Any(), s.key, s.actorID, gomock.Any(), gomock.Any()).
			Return(int64(1), nil)
		s.m.idempotency.EXPECT().UpdateStatusCompleted(gomock.Any(), gomock.Any(), s.key, s.actorID, gomock.Any()).Return(nil)
		s.m.offers.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), o.ID).Return(o.BuildDomain(), nil)
		s.m.packages.EXPECT().FindByID(gomock.Any(), gomock.Any(), pkg.ID).Return(pkg.BuildDomain(), nil)
		s.m.coupons.EXPECT().LockEligible(gomock.Any(), gomock.Any(), o.ID).Return(eligibleCoupons(o.ID, 1), nil)
		s.m.coupons.EXPECT().MarkWinner(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		s.m.notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.m.offers.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.sut.AnnounceWinners(context.Background(), in, s.actorID, s.key)

		s.Require().NoError(err)
		s.False(result.IsReplayed)
	})
}
