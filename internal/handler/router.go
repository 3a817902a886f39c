package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"travel-booking/internal/domain/user"
	"travel-booking/internal/handler/api"
	"travel-booking/internal/handler/middleware"
	"travel-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *api.AuthHandler
	Package  *api.PackageHandler
	Offer    *api.OfferHandler
	Coupon   *api.CouponHandler
	Discount *api.DiscountHandler
	Booking  *api.BookingHandler
}

type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
	Logger    *middleware.Logger
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	setupMiddleware(engine, cfg, mw)
	setupRoutes(engine, h, mw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, mw Middlewares) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(mw.Logger.LoggingMiddleware())
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, mw Middlewares) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := mw.Auth.RequireAuth()
	staff := mw.Auth.RequireRoleAtLeast(user.RoleStaff)
	admin := mw.Auth.RequireRoleAtLeast(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(requireAuth)
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		addRoutes(apiGroup.Group("/packages"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Package.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Package.Get},
		})

		offers := apiGroup.Group("/offers")
		{
			addRoutes(offers, []route{
				{Method: http.MethodGet, Path: "/live", Handler: h.Offer.GetLive},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Offer.Get},
				{
					Method:  http.MethodPost,
					Path:    "/:id/coupons/purchase",
					Handler: h.Coupon.Purchase,
					Mw:      []gin.HandlerFunc{requireAuth, mw.RateLimit.Limit("coupon_purchase")},
				},
				{
					Method:  http.MethodPost,
					Path:    "/:id/coupons/confirm",
					Handler: h.Coupon.Confirm,
					Mw:      []gin.HandlerFunc{requireAuth},
				},
			})
		}

		coupons := apiGroup.Group("/coupons")
		coupons.Use(requireAuth)
		{
			addRoutes(coupons, []route{
				{Method: http.MethodGet, Path: "/mine", Handler: h.Coupon.ListMine},
				{Method: http.MethodPost, Path: "/redemption-preview", Handler: h.Coupon.PreviewRedemption},
			})
		}

		discounts := apiGroup.Group("/discounts")
		discounts.Use(requireAuth)
		{
			addRoutes(discounts, []route{
				{Method: http.MethodPost, Path: "/apply", Handler: h.Discount.Apply},
				{Method: http.MethodPost, Path: "/preview", Handler: h.Discount.Preview},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(requireAuth)
		{
			addRoutes(bookings, []route{
				{
					Method:  http.MethodPost,
					Path:    "/start",
					Handler: h.Booking.Start,
					Mw:      []gin.HandlerFunc{mw.RateLimit.Limit("booking_start")},
				},
				{Method: http.MethodPost, Path: "/confirm", Handler: h.Booking.Confirm},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.ListMine},
				{Method: http.MethodGet, Path: "/:bookingId", Handler: h.Booking.Get},
				{Method: http.MethodPost, Path: "/:bookingId/cancel", Handler: h.Booking.Cancel},
			})
		}

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(requireAuth)
		{
			addRoutes(adminGroup, []route{
				{Method: http.MethodPost, Path: "/packages", Handler: h.Package.Create, Mw: []gin.HandlerFunc{staff}},
				{Method: http.MethodPatch, Path: "/packages/:id/seats", Handler: h.Package.AdjustSeats, Mw: []gin.HandlerFunc{staff}},
				{Method: http.MethodPost, Path: "/packages/:id/image", Handler: h.Package.UploadImage, Mw: []gin.HandlerFunc{staff}},
				{Method: http.MethodGet, Path: "/bookings", Handler: h.Booking.ListAll, Mw: []gin.HandlerFunc{staff}},

				{Method: http.MethodPost, Path: "/uploads/banners", Handler: h.Package.UploadBanner, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodGet, Path: "/offers", Handler: h.Offer.List, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodPost, Path: "/offers", Handler: h.Offer.Create, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodPost, Path: "/offers/:id/end", Handler: h.Offer.End, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodPost, Path: "/offers/:id/winners", Handler: h.Offer.AnnounceWinners, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodGet, Path: "/offers/:id/coupons", Handler: h.Offer.ListCoupons, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodPost, Path: "/discounts", Handler: h.Discount.Create, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodPatch, Path: "/bookings/:bookingId", Handler: h.Booking.UpdateStatus, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodDelete, Path: "/bookings/:bookingId", Handler: h.Booking.Delete, Mw: []gin.HandlerFunc{admin}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
