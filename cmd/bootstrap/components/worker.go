package components

import (
	"context"
	"sync"

	"travel-booking/internal/infra/broker"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/shared"
	"travel-booking/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewDispatcher,
		NewOfferSweeper,
	),
	fx.Invoke(RunWorkers),
)

func NewDispatcher(uow shared.UnitOfWork, pub *broker.Publisher, clk clock.Clock, cfg config.Config) *worker.Dispatcher {
	return worker.NewDispatcher(uow, pub, clk, cfg.Worker)
}

func NewOfferSweeper(offers commands.OfferCommands, cfg config.Config) *worker.OfferSweeper {
	return worker.NewOfferSweeper(offers, cfg.Worker.SweepInterval)
}

// RunWorkers ties the background loops to the app lifecycle.
func RunWorkers(lc fx.Lifecycle, cfg config.Config, d *worker.Dispatcher, s *worker.OfferSweeper) {
	if !cfg.Worker.Enabled {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				d.Run(ctx)
			}()
			go func() {
				defer wg.Done()
				s.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
