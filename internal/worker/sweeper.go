package worker

import (
	"context"
	"log/slog"
	"time"
)

type OfferExpirer interface {
	ExpireOffers(ctx context.Context) (int, error)
}

// OfferSweeper ends live offers whose end date has passed.
type OfferSweeper struct {
	offers   OfferExpirer
	interval time.Duration
	logger   *slog.Logger
}

func NewOfferSweeper(offers OfferExpirer, interval time.Duration) *OfferSweeper {
	return &OfferSweeper{
		offers:   offers,
		interval: interval,
		logger:   slog.Default().With("component", "offer_sweeper"),
	}
}

func (s *OfferSweeper) Run(ctx context.Context) {
	s.logger.Info("オファー期限切れスイーパー開始", "interval", s.interval.String())
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("オファー期限切れスイーパー停止")
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

func (s *OfferSweeper) SweepOnce(ctx context.Context) int {
	n, err := s.offers.ExpireOffers(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("offer sweep failed", "error", err.Error())
		}
		return 0
	}
	return n
}
