package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"travel-booking/internal/domain/coupon"
	"travel-booking/internal/domain/offer"
	"travel-booking/internal/infra"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/pkg/metrics"
	"travel-booking/internal/pkg/tracing"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

var ErrPaymentAlreadyUsed = errs.New("payment id already confirmed for another coupon")

type ConfirmPurchaseResult struct {
	CouponID   uuid.UUID
	Number     string
	IsReplayed bool
}

type RedemptionPreview struct {
	CouponID       uuid.UUID
	DiscountAmount int64
}

type CouponCommands interface {
	Purchase(ctx context.Context, offerID, userID uuid.UUID) (*PaymentOrder, error)
	ConfirmPurchase(ctx context.Context, offerID, userID uuid.UUID, paymentID string) (*ConfirmPurchaseResult, error)
	PreviewRedemption(ctx context.Context, userID uuid.UUID, number string, packageID uuid.UUID, bookingTotal int64) (*RedemptionPreview, error)
}

type couponCommandsImpl struct {
	uow     shared.UnitOfWork
	payment PaymentGateway
	clock   clock.Clock
}

func NewCouponCommands(uow shared.UnitOfWork, payment PaymentGateway, clk clock.Clock) CouponCommands {
	return &couponCommandsImpl{uow: uow, payment: payment, clock: clk}
}

// Purchase opens a payment order for one coupon. Nothing is persisted until ConfirmPurchase.
func (c *couponCommandsImpl) Purchase(ctx context.Context, offerID, userID uuid.UUID) (order *PaymentOrder, err error) {
	ctx, span := tracing.StartSpan(ctx, "coupon.Purchase", attribute.String("offer.id", offerID.String()))
	defer func() { tracing.End(span, err) }()

	target, err := c.uow.CommandReads().OfferByID(ctx, offerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	live := offer.ReconstructOffer(target.ID, target.Title, target.TotalCoupons, target.Price, target.EndDate,
		offer.Status(target.Status), "", nil, time.Time{}, time.Time{})
	if err := live.CheckPurchasable(c.clock.Now()); err != nil {
		return nil, err
	}

	receipt := fmt.Sprintf("coupon:%s:%s", offerID, userID)
	order, err = c.payment.CreateOrder(ctx, target.Price, receipt)
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentUpstream)
	}
	return order, nil
}

// ConfirmPurchase is idempotent by payment id.
func (c *couponCommandsImpl) ConfirmPurchase(ctx context.Context, offerID, userID uuid.UUID, paymentID string) (*ConfirmPurchaseResult, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, errs.Mark(coupon.ErrPaymentIDRequired, ErrValidation)
	}

	var result *ConfirmPurchaseResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Coupons().FindByPaymentID(ctx, tx.DB(), paymentID)
		if err == nil {
			result, err = replayedCoupon(existing, offerID, userID)
			return err
		}
		if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if _, err := tx.Offers().FindByID(ctx, tx.DB(), offerID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOfferNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		seq, err := tx.Counters().Next(ctx, tx.DB(), offerCouponCounter(offerID))
		if err != nil {
			return errs.Mark(err, ErrSequenceUnavailable)
		}

		purchased, err := coupon.NewPurchasedCoupon(offerID, userID, coupon.FormatNumber(seq), paymentID, c.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}
		if err := tx.Coupons().Create(ctx, tx.DB(), purchased); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return err
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result = &ConfirmPurchaseResult{CouponID: purchased.ID(), Number: purchased.Number().String()}
		return nil
	})
	if err == nil {
		if !result.IsReplayed {
			metrics.CouponsPurchasedTotal.Inc()
			slog.Info("coupon purchased", "offer_id", offerID, "user_id", userID, "coupon_number", result.Number)
		}
		return result, nil
	}

	// a concurrent confirm with the same payment id committed first
	if !infra.IsKind(err, infra.KindDuplicateKey) {
		return nil, err
	}
	var existing *coupon.Coupon
	lookupErr := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		existing, err = tx.Coupons().FindByPaymentID(ctx, tx.DB(), paymentID)
		return err
	})
	if lookupErr != nil {
		return nil, errs.Mark(lookupErr, ErrDatabaseOperationFailed)
	}
	return replayedCoupon(existing, offerID, userID)
}

// PreviewRedemption validates a winning coupon against a package without consuming it.
func (c *couponCommandsImpl) PreviewRedemption(ctx context.Context, userID uuid.UUID, number string, packageID uuid.UUID, bookingTotal int64) (*RedemptionPreview, error) {
	num, err := coupon.NewNumber(number)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	pkg, err := c.uow.CommandReads().PackageByID(ctx, packageID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if bookingTotal <= 0 {
		bookingTotal = pkg.Price
	}

	var preview *RedemptionPreview
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		list, err := tx.Coupons().ListByNumberForUser(ctx, tx.DB(), num, userID, false)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		selected, err := selectRedeemable(list, userID, packageID)
		if err != nil {
			return err
		}
		preview = &RedemptionPreview{
			CouponID:       selected.ID(),
			DiscountAmount: coupon.RedemptionDiscount(pkg.Price, bookingTotal),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return preview, nil
}

func replayedCoupon(existing *coupon.Coupon, offerID, userID uuid.UUID) (*ConfirmPurchaseResult, error) {
	if existing.UserID() != userID || existing.OfferID() != offerID {
		return nil, ErrPaymentAlreadyUsed
	}
	return &ConfirmPurchaseResult{
		CouponID:   existing.ID(),
		Number:     existing.Number().String(),
		IsReplayed: true,
	}, nil
}

// selectRedeemable picks the first coupon passing the redemption rule. When none does,
// the reason reported is the one of the best candidate (unused coupons sort first).
func selectRedeemable(list []*coupon.Coupon, userID, packageID uuid.UUID) (*coupon.Coupon, error) {
	if len(list) == 0 {
		return nil, ErrRedemptionNotFound
	}
	var firstErr error
	for _, candidate := range list {
		err := candidate.CheckRedeemable(userID, packageID)
		if err == nil {
			return candidate, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

func offerCouponCounter(offerID uuid.UUID) string {
	return "offer_coupon:" + offerID.String()
}
