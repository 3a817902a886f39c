package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"travel-booking/internal/domain/coupon"
	"travel-booking/internal/domain/lottery"
	"travel-booking/internal/infra"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/pkg/metrics"
	"travel-booking/internal/pkg/tracing"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const announceWinnersEndpoint = "POST /api/admin/offers/:id/winners"

type AnnounceWinnersInput struct {
	OfferID         uuid.UUID `json:"offer_id"`
	PackageID       uuid.UUID `json:"package_id"`
	NumberOfWinners int       `json:"number_of_winners"`
	CouponNumbers   []string  `json:"coupon_numbers"`
}

type Winner struct {
	CouponID     uuid.UUID `json:"coupon_id"`
	CouponNumber string    `json:"coupon_number"`
	UserID       uuid.UUID `json:"user_id"`
}

// AnnounceWinnersResult is stored verbatim as the idempotent response.
type AnnounceWinnersResult struct {
	OfferID    uuid.UUID `json:"offer_id"`
	PackageID  uuid.UUID `json:"package_id"`
	PrizeName  string    `json:"prize_name"`
	Mode       string    `json:"mode"`
	Requested  int       `json:"requested"`
	Selected   int       `json:"selected"`
	Truncated  bool      `json:"truncated"`
	Winners    []Winner  `json:"winners"`
	IsReplayed bool      `json:"-"`
}

type WinnerCommands interface {
	AnnounceWinners(ctx context.Context, in AnnounceWinnersInput, actorID, idempotencyKey uuid.UUID) (*AnnounceWinnersResult, error)
}

type winnerCommandsImpl struct {
	uow            shared.UnitOfWork
	source         lottery.Source
	clock          clock.Clock
	idempotencyTTL time.Duration
}

func NewWinnerCommands(uow shared.UnitOfWork, source lottery.Source, clk clock.Clock, idempotencyTTL time.Duration) WinnerCommands {
	return &winnerCommandsImpl{
		uow:            uow,
		source:         source,
		clock:          clk,
		idempotencyTTL: idempotencyTTL,
	}
}

func (w *winnerCommandsImpl) AnnounceWinners(
	ctx context.Context,
	in AnnounceWinnersInput,
	actorID, idempotencyKey uuid.UUID,
) (result *AnnounceWinnersResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "winner.AnnounceWinners",
		attribute.String("offer.id", in.OfferID.String()),
		attribute.String("package.id", in.PackageID.String()))
	defer func() { tracing.End(span, err) }()

	draw, err := lottery.NewDraw(in.NumberOfWinners, in.CouponNumbers)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	requestHash := calculateRequestHash(in)

	err = w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := w.clock.Now()
		stored, err := claimIdempotencyKey(ctx, tx, idempotencyKey, actorID, announceWinnersEndpoint, requestHash, now, w.idempotencyTTL)
		if err != nil {
			return err
		}
		if stored != nil {
			var replay AnnounceWinnersResult
			if err := json.Unmarshal(stored, &replay); err != nil {
				return errs.Wrap(err, "failed to decode stored winners response")
			}
			replay.IsReplayed = true
			result = &replay
			return nil
		}

		result, err = w.selectWinners(ctx, tx, in, draw, now)
		if err != nil {
			return err
		}

		body, err := json.Marshal(result)
		if err != nil {
			return errs.Wrap(err, "failed to encode winners response")
		}
		if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, actorID, body); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.IsReplayed {
		metrics.WinnersAnnouncedTotal.WithLabelValues(result.Mode).Add(float64(result.Selected))
		slog.Info("winners announced",
			"offer_id", result.OfferID,
			"package_id", result.PackageID,
			"mode", result.Mode,
			"requested", result.Requested,
			"selected", result.Selected,
			"truncated", result.Truncated)
	}
	return result, nil
}

func (w *winnerCommandsImpl) selectWinners(
	ctx context.Context,
	tx shared.Tx,
	in AnnounceWinnersInput,
	draw lottery.Draw,
	now time.Time,
) (*AnnounceWinnersResult, error) {
	target, err := tx.Offers().FindByIDForUpdate(ctx, tx.DB(), in.OfferID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	pkg, err := tx.Packages().FindByID(ctx, tx.DB(), in.PackageID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var selected []*coupon.Coupon
	truncated := false
	switch draw.Mode() {
	case lottery.ModeExplicit:
		found, err := tx.Coupons().LockByNumbers(ctx, tx.DB(), target.ID(), draw.Requested())
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := lottery.CheckExplicit(draw.Count(), found); err != nil {
			return nil, err
		}
		selected = found
	default:
		eligible, err := tx.Coupons().LockEligible(ctx, tx.DB(), target.ID())
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		selected = lottery.Sample(eligible, draw.Count(), w.source)
		truncated = len(eligible) < draw.Count()
	}

	prize := pkg.Title()
	winners := make([]Winner, 0, len(selected))
	for _, c := range selected {
		if err := c.MarkWinner(pkg.ID(), prize, now); err != nil {
			return nil, err
		}
		ok, err := tx.Coupons().MarkWinner(ctx, tx.DB(), c)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !ok {
			return nil, errs.Wrapf(coupon.ErrAlreadyWinner, "coupon %s", c.Number())
		}
		if err := w.enqueueWinnerEmail(ctx, tx, target.ID(), target.Title(), pkg.ID(), c, now); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		winners = append(winners, Winner{CouponID: c.ID(), CouponNumber: c.Number().String(), UserID: c.UserID()})
	}

	if target.AwardGrandPrize(prize, now) {
		if err := tx.Offers().Save(ctx, tx.DB(), target); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	return &AnnounceWinnersResult{
		OfferID:   target.ID(),
		PackageID: pkg.ID(),
		PrizeName: prize,
		Mode:      string(draw.Mode()),
		Requested: draw.Count(),
		Selected:  len(winners),
		Truncated: truncated,
		Winners:   winners,
	}, nil
}

// The email goes out after commit through the dispatcher; a send failure never touches the winners.
func (w *winnerCommandsImpl) enqueueWinnerEmail(
	ctx context.Context,
	tx shared.Tx,
	offerID uuid.UUID,
	offerTitle string,
	packageID uuid.UUID,
	c *coupon.Coupon,
	now time.Time,
) error {
	payload, err := json.Marshal(map[string]any{
		"type":          TopicWinnerEmail,
		"offer_id":      offerID,
		"offer_title":   offerTitle,
		"package_id":    packageID,
		"coupon_id":     c.ID(),
		"coupon_number": c.Number(),
		"user_id":       c.UserID(),
		"prize_name":    c.PrizeName(),
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), JobKindEmail, TopicWinnerEmail, payload, now)
}
