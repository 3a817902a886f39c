package components

import (
	"travel-booking/internal/domain/lottery"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"
	"travel-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	lottery.NewSecureSource,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingSequencer,
		commands.NewOfferCommands,
		commands.NewCouponCommands,
		commands.NewDiscountCommands,
		NewCatalogCommands,
		NewWinnerCommands,
		NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewCatalogQueries,
		queries.NewOfferQueries,
		queries.NewCouponQueries,
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewCatalogCommands(uow shared.UnitOfWork, storage commands.ObjectStorage, clk clock.Clock, cfg config.Config) commands.CatalogCommands {
	return commands.NewCatalogCommands(uow, storage, clk, cfg.Storage.MaxUploadSize)
}

func NewWinnerCommands(uow shared.UnitOfWork, source lottery.Source, clk clock.Clock, cfg config.Config) commands.WinnerCommands {
	return commands.NewWinnerCommands(uow, source, clk, cfg.Booking.IdempotencyTTL)
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	sequencer commands.BookingSequencer,
	payment commands.PaymentGateway,
	clk clock.Clock,
	cfg config.Config,
) commands.BookingCommands {
	return commands.NewBookingCommands(uow, sequencer, payment, clk, commands.BookingOptions{
		RestoreSeatsOnCancel: cfg.Booking.RestoreSeatsOnCancel,
		LookupTimeout:        cfg.Payment.LookupTimeout,
	})
}

