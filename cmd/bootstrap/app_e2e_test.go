//go:build e2e

package bootstrap_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"travel-booking/cmd/bootstrap"
	"travel-booking/cmd/bootstrap/components"
	"travel-booking/internal/domain/user"
	"travel-booking/internal/handler/dto/request"
	resdto "travel-booking/internal/handler/dto/response"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/testutil/authtest"
	"travel-booking/internal/testutil/dbtest"
	"travel-booking/internal/testutil/httptest"
	"travel-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

type AppE2ESuite struct {
	suite.Suite
	pool   *pgxpool.Pool
	router *gin.Engine
}

func TestAppE2ESuite(t *testing.T) {
	suite.Run(t, new(AppE2ESuite))
}

func (s *AppE2ESuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	t := s.T()

	pool, dbConfig := dbtest.NewPool(t)
	rdb := dbtest.NewRedis(t)
	cfg := config.NewTestConfig()
	cfg.DB = dbConfig
	cfg.Storage = config.StorageConfig{Region: "auto", Bucket: "travel-media-test", MaxUploadSize: 1 << 20}

	var router *gin.Engine
	app := fx.New(
		fx.Provide(
			func() config.Config { return cfg },
			func() *pgxpool.Pool { return pool },
			func() *redis.Client { return rdb },
			func() *gin.Engine { return gin.New() },
			fx.Annotate(bootstrap.NewObjectStorage, fx.As(new(commands.ObjectStorage))),
			bootstrap.NewPaymentGateway,
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")
	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		_ = app.Stop(stopCtx)
	})

	s.pool = pool
	s.router = router
}

func (s *AppE2ESuite) SetupSubTest() {
	s.Require().NoError(dbtest.ResetDB(s.pool))
}

func (s *AppE2ESuite) login(email string) string {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: "password123"}, "")

	var res resdto.LoginResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
	s.Require().NotEmpty(res.AccessToken)
	return res.AccessToken
}

func (s *AppE2ESuite) TestHealth() {
	s.Run("ヘルスチェック", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *AppE2ESuite) TestAuth() {
	s.Run("登録したユーザーは customer でログインできる", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/register",
			request.RegisterRequest{Email: "asha@example.com", Password: "password123", DisplayName: "Asha"}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)

		token := s.login("asha@example.com")
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/auth/me", nil, token)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.Contains(rec.Body.String(), `"customer"`)
	})

	s.Run("同じメールの二重登録は409", func() {
		dbtest.CreateUser(s.T(), s.pool, "taken@example.com", string(user.RoleCustomer))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/register",
			request.RegisterRequest{Email: "taken@example.com", Password: "password123", DisplayName: "Taken"}, "")

		httptest.AssertErrorReason(s.T(), rec, http.StatusConflict, "email_taken")
	})

	s.Run("別の鍵で署名されたトークンは401", func() {
		id := dbtest.CreateUser(s.T(), s.pool, "forged@example.com", string(user.RoleCustomer))
		forged := config.NewTestConfig().JWT
		forged.Secret = "some-other-secret"
		token := authtest.NewJWTHelper(forged).GenerateToken(s.T(), id, user.RoleAdmin)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/offers", nil, token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("customer は管理APIに入れない", func() {
		dbtest.CreateUser(s.T(), s.pool, "guest@example.com", string(user.RoleCustomer))
		token := s.login("guest@example.com")

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/offers", nil, token)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}

func (s *AppE2ESuite) TestLotteryToBooking() {
	s.Run("購入から当選、予約での利用まで", func() {
		dbtest.CreateUser(s.T(), s.pool, "admin@example.com", string(user.RoleAdmin))
		dbtest.CreateUser(s.T(), s.pool, "priya@example.com", string(user.RoleCustomer))
		adminToken := s.login("admin@example.com")
		customerToken := s.login("priya@example.com")

		// package
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/packages",
			request.CreatePackageRequest{Title: "Goa Beach Escape", Price: 25000, TotalSeats: 4}, adminToken)
		var pkg resdto.PackageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &pkg)

		// offer
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/offers",
			request.CreateOfferRequest{Title: "Monsoon Mega Draw", TotalCoupons: 100, Price: 499, EndDate: time.Now().Add(72 * time.Hour)}, adminToken)
		var offer resdto.OfferResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &offer)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/offers/live", nil, "")
		var live resdto.OfferResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &live)
		s.Equal(offer.ID, live.ID)

		// coupon purchase
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/offers/"+offer.ID+"/coupons/purchase", nil, customerToken)
		var order resdto.PaymentOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &order)
		s.Equal(int64(499), order.Amount)

		confirmURL := "/api/offers/" + offer.ID + "/coupons/confirm"
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, confirmURL,
			request.ConfirmCouponRequest{PaymentID: "pay_lottery_1"}, customerToken)
		var purchased resdto.ConfirmCouponResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &purchased)
		s.Equal("000001", purchased.CouponNumber)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, confirmURL,
			request.ConfirmCouponRequest{PaymentID: "pay_lottery_1"}, customerToken)
		var replayed resdto.ConfirmCouponResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &replayed)
		s.True(replayed.Replayed)
		s.Equal(purchased.CouponID, replayed.CouponID)

		// winners
		rec = httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/admin/offers/"+offer.ID+"/winners",
			request.AnnounceWinnersRequest{PackageID: uuid.MustParse(pkg.ID), NumberOfWinners: 1, CouponNumbers: []string{"000001"}},
			adminToken, map[string]string{"Idempotency-Key": uuid.NewString()})
		var winners resdto.AnnounceWinnersResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &winners)
		s.Equal(1, winners.Selected)
		s.Equal("Goa Beach Escape", winners.PrizeName)

		// booking with the winning coupon
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/start",
			request.StartBookingRequest{PackageID: uuid.MustParse(pkg.ID), Seats: 2, PaymentType: "full", Amount: 50000}, customerToken)
		var started resdto.StartBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &started)

		number := "000001"
		confirm := request.ConfirmBookingRequest{
			BookingID:   started.BookingID,
			PackageID:   uuid.MustParse(pkg.ID),
			PaymentID:   "pay_booking_1",
			Amount:      50000,
			PaymentType: "full",
			Seats:       2,
			Travelers: []request.TravelerRequest{
				{FullName: "Priya Nair", Age: 31, Gender: "F"},
				{FullName: "Arjun Nair", Age: 33, Gender: "M"},
			},
			CouponNumber: &number,
		}
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/confirm", confirm, customerToken)
		var booked resdto.ConfirmBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &booked)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + started.BookingID})
		s.Require().NotNil(booked.Booking)
		s.Equal(int64(25000), booked.Booking.DiscountAmount)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/confirm", confirm, customerToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.Equal(2, dbtest.AvailableSeats(s.T(), s.pool, uuid.MustParse(pkg.ID)))

		// the coupon is spent
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/start",
			request.StartBookingRequest{PackageID: uuid.MustParse(pkg.ID), Seats: 2, PaymentType: "full", Amount: 50000}, customerToken)
		var restarted resdto.StartBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &restarted)

		second := confirm
		second.BookingID = restarted.BookingID
		second.PaymentID = "pay_booking_2"
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/confirm", second, customerToken)
		httptest.AssertErrorReason(s.T(), rec, http.StatusConflict, "coupon_used")
		s.Equal(2, dbtest.AvailableSeats(s.T(), s.pool, uuid.MustParse(pkg.ID)))
	})

	s.Run("座席が足りなければ409", func() {
		dbtest.CreateUser(s.T(), s.pool, "late@example.com", string(user.RoleCustomer))
		token := s.login("late@example.com")
		pkgID := dbtest.CreatePackage(s.T(), s.pool, "Ladakh Road Trip", 30000, 2)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/start",
			request.StartBookingRequest{PackageID: pkgID, Seats: 2, PaymentType: "full", Amount: 60000}, token)
		var started resdto.StartBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &started)

		// someone else confirmed between start and confirm
		_, err := s.pool.Exec(context.Background(), "UPDATE packages SET available_seats = 1 WHERE id = $1", pkgID)
		s.Require().NoError(err)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/confirm", request.ConfirmBookingRequest{
			BookingID:   started.BookingID,
			PackageID:   pkgID,
			PaymentID:   "pay_late",
			Amount:      60000,
			PaymentType: "full",
			Seats:       2,
			Travelers: []request.TravelerRequest{
				{FullName: "Ravi", Age: 40, Gender: "M"},
				{FullName: "Meera", Age: 38, Gender: "F"},
			},
		}, token)

		httptest.AssertErrorReason(s.T(), rec, http.StatusConflict, "insufficient_seats")
		s.Equal(1, dbtest.AvailableSeats(s.T(), s.pool, pkgID))
	})

	s.Run("採番されていない予約番号は409", func() {
		dbtest.CreateUser(s.T(), s.pool, "guess@example.com", string(user.RoleCustomer))
		token := s.login("guess@example.com")
		pkgID := dbtest.CreatePackage(s.T(), s.pool, "Spiti Valley Trek", 15000, 3)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/confirm", request.ConfirmBookingRequest{
			BookingID:   "OKB999999999",
			PackageID:   pkgID,
			PaymentID:   "pay_guess",
			Amount:      15000,
			PaymentType: "full",
			Seats:       1,
			Travelers:   []request.TravelerRequest{{FullName: "Kabir", Age: 29}},
		}, token)

		httptest.AssertErrorReason(s.T(), rec, http.StatusConflict, "booking_not_started")
		s.Equal(3, dbtest.AvailableSeats(s.T(), s.pool, pkgID))
	})
}
