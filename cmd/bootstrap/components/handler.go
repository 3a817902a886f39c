package components

import (
	"travel-booking/internal/handler"
	"travel-booking/internal/handler/api"
	"travel-booking/internal/handler/middleware"
	"travel-booking/internal/infra/cache"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/jwt"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewAuthHandler,
		api.NewPackageHandler,
		api.NewOfferHandler,
		api.NewCouponHandler,
		api.NewDiscountHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
		NewRateLimitMiddleware,
		NewHandlers,
		NewMiddlewares,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAuthHandler(cmds commands.AuthCommands, users queries.UserQueries, tokens *jwt.Service, cfg config.Config) *api.AuthHandler {
	return api.NewAuthHandler(cmds, users, tokens, cfg.Cookie)
}

func NewHandlers(
	auth *api.AuthHandler,
	pkg *api.PackageHandler,
	offer *api.OfferHandler,
	coupon *api.CouponHandler,
	discount *api.DiscountHandler,
	booking *api.BookingHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:     auth,
		Package:  pkg,
		Offer:    offer,
		Coupon:   coupon,
		Discount: discount,
		Booking:  booking,
	}
}

func NewMiddlewares(auth *middleware.AuthMiddleware, rl *middleware.RateLimitMiddleware, logger *middleware.Logger) handler.Middlewares {
	return handler.Middlewares{Auth: auth, RateLimit: rl, Logger: logger}
}

func NewRateLimitMiddleware(limiter *cache.RateLimiter, cfg config.Config) *middleware.RateLimitMiddleware {
	return middleware.NewRateLimitMiddleware(limiter, cfg.RateLimit.Enabled)
}
