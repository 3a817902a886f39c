package commands

import (
	"context"
	"time"

	"travel-booking/internal/domain/discount"
	"travel-booking/internal/infra"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/pkg/metrics"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type DiscountQuote struct {
	Code           string
	DiscountAmount int64
	FinalAmount    int64
}

type CreateDiscountInput struct {
	Code              string
	Kind              string
	Value             int64
	MaxDiscount       *int64
	MinOrderAmount    int64
	ExpiresAt         time.Time
	UsageLimitPerUser int
}

type DiscountCommands interface {
	// Apply evaluates the code and consumes one use for userID.
	Apply(ctx context.Context, userID uuid.UUID, code string, total int64) (*DiscountQuote, error)
	Preview(ctx context.Context, userID uuid.UUID, code string, total int64) (*DiscountQuote, error)
	CreateDiscountCoupon(ctx context.Context, in CreateDiscountInput) (uuid.UUID, error)
}

type discountCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewDiscountCommands(uow shared.UnitOfWork, clk clock.Clock) DiscountCommands {
	return &discountCommandsImpl{uow: uow, clock: clk}
}

func (d *discountCommandsImpl) Apply(ctx context.Context, userID uuid.UUID, code string, total int64) (*DiscountQuote, error) {
	normalized, err := discount.NewCode(code)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	var quote *DiscountQuote
	err = d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		quote, err = applyDiscount(ctx, tx, normalized, userID, total, d.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (d *discountCommandsImpl) Preview(ctx context.Context, userID uuid.UUID, code string, total int64) (*DiscountQuote, error) {
	normalized, err := discount.NewCode(code)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	var quote *DiscountQuote
	err = d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		promo, err := findDiscount(ctx, tx, normalized)
		if err != nil {
			return err
		}
		used, err := tx.Discounts().UsageCount(ctx, tx.DB(), promo.ID(), userID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		q, err := promo.Evaluate(used, total, d.clock.Now())
		if err != nil {
			return markEvaluationErr(err)
		}
		quote = &DiscountQuote{Code: normalized.String(), DiscountAmount: q.DiscountAmount, FinalAmount: q.FinalAmount}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (d *discountCommandsImpl) CreateDiscountCoupon(ctx context.Context, in CreateDiscountInput) (uuid.UUID, error) {
	code, err := discount.NewCode(in.Code)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}
	kind, err := discount.NewKind(in.Kind)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}
	value, err := discount.NewDiscount(kind, in.Value, in.MaxDiscount)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}
	promo, err := discount.NewCoupon(code, value, in.MinOrderAmount, in.ExpiresAt, in.UsageLimitPerUser, d.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}

	err = d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Discounts().Create(ctx, tx.DB(), promo)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, errs.Mark(err, ErrDiscountCodeExists)
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return promo.ID(), nil
}

// applyDiscount evaluates and consumes one use inside the caller's transaction.
// The usage row lock serialises concurrent applications by the same user.
func applyDiscount(ctx context.Context, tx shared.Tx, code discount.Code, userID uuid.UUID, total int64, now time.Time) (*DiscountQuote, error) {
	promo, err := findDiscount(ctx, tx, code)
	if err != nil {
		return nil, err
	}

	used, err := tx.Discounts().LockUsage(ctx, tx.DB(), promo.ID(), userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	q, err := promo.Evaluate(used, total, now)
	if err != nil {
		return nil, markEvaluationErr(err)
	}
	if err := tx.Discounts().IncrementUsage(ctx, tx.DB(), promo.ID(), userID); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	metrics.DiscountsAppliedTotal.Inc()
	return &DiscountQuote{Code: code.String(), DiscountAmount: q.DiscountAmount, FinalAmount: q.FinalAmount}, nil
}

func findDiscount(ctx context.Context, tx shared.Tx, code discount.Code) (*discount.Coupon, error) {
	promo, err := tx.Discounts().FindByCode(ctx, tx.DB(), code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			metrics.DiscountsRejectedTotal.WithLabelValues(discount.ReasonNotFound).Inc()
			return nil, discount.ErrNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return promo, nil
}

func markEvaluationErr(err error) error {
	if reason := discount.Reason(err); reason != "" {
		metrics.DiscountsRejectedTotal.WithLabelValues(reason).Inc()
		return err
	}
	return errs.Mark(err, ErrValidation)
}
