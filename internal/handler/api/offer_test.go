//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"travel-booking/internal/domain/lottery"
	"travel-booking/internal/domain/user"
	"travel-booking/internal/handler/api"
	resdto "travel-booking/internal/handler/dto/response"
	commandsmock "travel-booking/internal/mock/commands"
	queriesmock "travel-booking/internal/mock/queries"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/testutil/builder"
	"travel-booking/internal/testutil/httptest"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OfferHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	offers      *commandsmock.MockOfferCommands
	winners     *commandsmock.MockWinnerCommands
	offerReads  *queriesmock.MockOfferQueries
	couponReads *queriesmock.MockCouponQueries
	actor       *actor
}

func (s *OfferHandlerTestSuite) SetupSubTest() {
	s.router = newTestEngine()

	ctrl := gomock.NewController(s.T())
	s.offers = commandsmock.NewMockOfferCommands(ctrl)
	s.winners = commandsmock.NewMockWinnerCommands(ctrl)
	s.offerReads = queriesmock.NewMockOfferQueries(ctrl)
	s.couponReads = queriesmock.NewMockCouponQueries(ctrl)
	s.actor = &actor{ID: uuid.New(), Role: user.RoleAdmin}

	handler := api.NewOfferHandler(s.offers, s.winners, s.offerReads, s.couponReads)
	auth := newAuth(ctrl, s.actor)

	s.router.GET("/api/offers/live", handler.GetLive)
	s.router.GET("/api/offers/:id", handler.Get)

	admin := s.router.Group("/api/admin/offers", auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleAdmin))
	admin.GET("", handler.List)
	admin.POST("", handler.Create)
	admin.POST("/:id/end", handler.End)
	admin.POST("/:id/winners", handler.AnnounceWinners)
	admin.GET("/:id/coupons", handler.ListCoupons)
}

func TestOfferHandlerSuite(t *testing.T) {
	suite.Run(t, new(OfferHandlerTestSuite))
}

func (s *OfferHandlerTestSuite) TestGetLive() {
	s.Run("正常系", func() {
		view := builder.NewOfferBuilder().With(func(o *builder.OfferBuilder) { o.SoldCoupons = 12 }).BuildView()
		s.offerReads.EXPECT().GetLive(gomock.Any()).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/offers/live", nil, "")

		var response resdto.OfferResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID.String(), response.ID)
		s.Equal(12, response.SoldCoupons)
		s.Equal(view.EndDate.Unix(), response.EndDate)
	})

	s.Run("異常系: ライブのオファーなし", func() {
		s.offerReads.EXPECT().GetLive(gomock.Any()).Return(nil, queries.ErrNoLiveOffer)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/offers/live", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

func (s *OfferHandlerTestSuite) TestGet() {
	s.Run("異常系: IDがUUIDでない", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/offers/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *OfferHandlerTestSuite) TestCreate() {
	o := builder.NewOfferBuilder()

	s.Run("正常系: 201とLocation", func() {
		s.offers.EXPECT().CreateOffer(gomock.Any(), gomock.Any()).Return(o.ID, nil)
		s.offerReads.EXPECT().GetByID(gomock.Any(), o.ID).Return(o.BuildView(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/offers", o.BuildCreateDTO(), testToken)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/offers/" + o.ID.String()})
	})

	s.Run("異常系: ライブのオファーが既にある", func() {
		s.offers.EXPECT().CreateOffer(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errs.Mark(errors.New("duplicate key value violates unique constraint"), commands.ErrLiveOfferExists))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/offers", o.BuildCreateDTO(), testToken)

		httptest.AssertErrorReason(s.T(), rec, http.StatusConflict, "live_offer_exists")
	})

	s.Run("異常系: スタッフは作成できない", func() {
		s.actor.Role = user.RoleStaff

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/offers", o.BuildCreateDTO(), testToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}

func (s *OfferHandlerTestSuite) TestAnnounceWinners() {
	offerID := uuid.New()
	url := "/api/admin/offers/" + offerID.String() + "/winners"
	pkgID := uuid.New()
	body := map[string]any{"packageId": pkgID.String(), "numberOfWinners": 2}
	key := uuid.New()
	headers := map[string]string{"Idempotency-Key": key.String()}

	result := &commands.AnnounceWinnersResult{
		OfferID:   offerID,
		PackageID: pkgID,
		PrizeName: "Goa Beach Escape",
		Mode:      "random",
		Requested: 2,
		Selected:  2,
		Winners: []commands.Winner{
			{CouponID: uuid.New(), CouponNumber: "000004", UserID: uuid.New()},
			{CouponID: uuid.New(), CouponNumber: "000011", UserID: uuid.New()},
		},
	}

	s.Run("正常系: 当選者を返す", func() {
		s.winners.EXPECT().AnnounceWinners(gomock.Any(), commands.AnnounceWinnersInput{
			OfferID: offerID, PackageID: pkgID, NumberOfWinners: 2,
		}, s.actor.ID, key).Return(result, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, testToken, headers)

		var response resdto.AnnounceWinnersResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Winners, 2)
		s.Equal("000004", response.Winners[0].CouponNumber)
		s.Empty(rec.Header().Get("Idempotent-Replayed"))
	})

	s.Run("正常系: 再送は保存済みの結果とヘッダー", func() {
		replayed := *result
		replayed.IsReplayed = true
		s.winners.EXPECT().AnnounceWinners(gomock.Any(), gomock.Any(), gomock.Any(), key).Return(&replayed, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, testToken, headers)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true"})
	})

	s.Run("異常系: Idempotency-Key がない", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, testToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key")
	})

	s.Run("異常系: Idempotency-Key が UUID でない", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, testToken,
			map[string]string{"Idempotency-Key": "abc"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key")
	})

	s.Run("異常系: 番号が6桁でない", func() {
		bad := map[string]any{"packageId": pkgID.String(), "numberOfWinners": 1, "couponNumbers": []string{"12"}}

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, bad, testToken, headers)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("異常系: 衝突系エラー", func() {
		cases := []struct {
			name   string
			err    error
			reason string
		}{
			{name: "同じキーで別の内容", err: commands.ErrIdempotencyMismatch, reason: "idempotency_mismatch"},
			{name: "同じキーが処理中", err: commands.ErrIdempotencyInProgress, reason: "idempotency_in_progress"},
			{name: "指定番号の一部が見つからない", err: &lottery.PartialMatchError{Found: 1, Requested: 2}, reason: "partial_match"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.winners.EXPECT().AnnounceWinners(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, testToken, headers)

				httptest.AssertErrorReason(s.T(), rec, http.StatusConflict, tc.reason)
			})
		}
	})
}

func (s *OfferHandlerTestSuite) TestListCoupons() {
	s.Run("正常系: 当選者のみで絞り込む", func() {
		offerID := uuid.New()
		s.couponReads.EXPECT().ListByOffer(gomock.Any(), offerID, queries.CouponFilters{WinnersOnly: true}, gomock.Any(), 20).
			Return(&queries.Page[*queries.CouponView]{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/admin/offers/"+offerID.String()+"/coupons?winners=true", nil, testToken)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *OfferHandlerTestSuite) TestEnd() {
	s.Run("正常系: 204", func() {
		offerID := uuid.New()
		s.offers.EXPECT().EndOffer(gomock.Any(), offerID).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/offers/"+offerID.String()+"/end", nil, testToken)

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("異常系: 存在しないオファー", func() {
		s.offers.EXPECT().EndOffer(gomock.Any(), gomock.Any()).Return(commands.ErrOfferNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/offers/"+uuid.NewString()+"/end", nil, testToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}
