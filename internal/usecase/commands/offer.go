package commands

import (
	"context"
	"log/slog"
	"time"

	"travel-booking/internal/domain/offer"
	"travel-booking/internal/infra"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/pkg/metrics"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateOfferInput struct {
	Title        string
	TotalCoupons int
	Price        int64
	EndDate      time.Time
	BannerRef    string
	// ReplaceLive ends the current live offer instead of rejecting the request.
	ReplaceLive bool
}

type OfferCommands interface {
	CreateOffer(ctx context.Context, in CreateOfferInput) (uuid.UUID, error)
	EndOffer(ctx context.Context, offerID uuid.UUID) error
	// ExpireOffers ends every live offer whose end date has passed and returns how many.
	ExpireOffers(ctx context.Context) (int, error)
}

type offerCommandsImpl struct {
	uow   shared.UnitOfWork
	cache LiveOfferInvalidator
	clock clock.Clock
}

func NewOfferCommands(uow shared.UnitOfWork, cache LiveOfferInvalidator, clk clock.Clock) OfferCommands {
	return &offerCommandsImpl{uow: uow, cache: cache, clock: clk}
}

func (o *offerCommandsImpl) CreateOffer(ctx context.Context, in CreateOfferInput) (uuid.UUID, error) {
	now := o.clock.Now()
	created, err := offer.NewOffer(in.Title, in.TotalCoupons, in.Price, in.EndDate, in.BannerRef, now)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}

	err = o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		live, err := tx.Offers().FindLiveForUpdate(ctx, tx.DB())
		switch {
		case err == nil:
			if !in.ReplaceLive {
				return ErrLiveOfferExists
			}
			live.End(now)
			if err := tx.Offers().Save(ctx, tx.DB(), live); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			slog.Info("live offer replaced", "ended_offer_id", live.ID(), "new_offer_id", created.ID())
		case !infra.IsKind(err, infra.KindNotFound):
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Offers().Create(ctx, tx.DB(), created); err != nil {
			// a concurrent create won the single-live index
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrLiveOfferExists)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	o.invalidateLive(ctx)
	return created.ID(), nil
}

// EndOffer is legal from any status; ending an ended offer changes nothing.
func (o *offerCommandsImpl) EndOffer(ctx context.Context, offerID uuid.UUID) error {
	changed := false
	err := o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		target, err := tx.Offers().FindByIDForUpdate(ctx, tx.DB(), offerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOfferNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if changed = target.End(o.clock.Now()); !changed {
			return nil
		}
		if err := tx.Offers().Save(ctx, tx.DB(), target); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if changed {
		o.invalidateLive(ctx)
	}
	return nil
}

func (o *offerCommandsImpl) ExpireOffers(ctx context.Context) (int, error) {
	var ended []uuid.UUID
	err := o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		ended, err = tx.Offers().EndExpired(ctx, tx.DB(), o.clock.Now())
		return err
	})
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if len(ended) > 0 {
		metrics.OffersExpiredTotal.Add(float64(len(ended)))
		slog.Info("expired offers ended", "count", len(ended), "offer_ids", ended)
		o.invalidateLive(ctx)
	}
	return len(ended), nil
}

// cache failures only delay visibility until the TTL passes
func (o *offerCommandsImpl) invalidateLive(ctx context.Context) {
	if err := o.cache.InvalidateLive(ctx); err != nil {
		slog.Warn("failed to invalidate live offer cache", "error", err.Error())
	}
}
