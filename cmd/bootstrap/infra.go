package bootstrap

import (
	"context"
	"log/slog"

	"travel-booking/internal/infra/broker"
	"travel-booking/internal/infra/cache"
	"travel-booking/internal/infra/payment"
	"travel-booking/internal/infra/storage"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/tracing"
	"travel-booking/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		NewRedis,
		NewBroker,
		fx.Annotate(
			NewObjectStorage,
			fx.As(new(commands.ObjectStorage)),
		),
		NewPaymentGateway,
	),
	fx.Invoke(InitTracing),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := cache.NewRedisClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}

func NewBroker(lc fx.Lifecycle, cfg config.Config) *broker.Publisher {
	pub := broker.NewPublisher(cfg.RabbitMQ)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub
}

func NewObjectStorage(cfg config.Config) (*storage.S3Storage, error) {
	return storage.NewS3Storage(context.Background(), cfg.Storage)
}

func NewPaymentGateway(cfg config.Config) commands.PaymentGateway {
	switch cfg.Payment.Provider {
	case "http":
		return payment.NewHTTPGateway(cfg.Payment)
	default:
		slog.Warn("fake payment gateway in use", "provider", cfg.Payment.Provider)
		return payment.NewFakeGateway(cfg.Payment.Currency)
	}
}

func InitTracing(lc fx.Lifecycle, cfg config.Config) error {
	tp, err := tracing.Init(context.Background(), cfg.Tracing)
	if err != nil {
		return err
	}
	if tp == nil {
		return nil
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})
	return nil
}
