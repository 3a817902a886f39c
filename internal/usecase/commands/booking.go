package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/domain/coupon"
	"travel-booking/internal/domain/discount"
	"travel-booking/internal/domain/user"
	"travel-booking/internal/infra"
	"travel-booking/internal/infra/repository"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/pkg/metrics"
	"travel-booking/internal/pkg/tracing"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type StartBookingInput struct {
	PackageID   uuid.UUID
	Seats       int
	PaymentType string
	Amount      int64
}

type StartBookingResult struct {
	BookingID string
	Order     *PaymentOrder
}

type TravelerInput struct {
	FullName string
	Age      int
	Gender   string
}

type ConfirmBookingInput struct {
	BookingID    string
	PackageID    uuid.UUID
	PaymentID    string
	Amount       int64
	PaymentType  string
	Seats        int
	Travelers    []TravelerInput
	CouponNumber *string
	DiscountCode *string
}

type ConfirmBookingResult struct {
	BookingID  string
	IsReplayed bool
}

type BookingCommands interface {
	StartBooking(ctx context.Context, userID uuid.UUID, in StartBookingInput) (*StartBookingResult, error)
	ConfirmBooking(ctx context.Context, userID uuid.UUID, in ConfirmBookingInput) (*ConfirmBookingResult, error)
	CancelBooking(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID string) error
	UpdateBookingStatus(ctx context.Context, bookingID, status string) error
	DeleteBooking(ctx context.Context, bookingID string) error
}

type BookingOptions struct {
	RestoreSeatsOnCancel bool
	LookupTimeout        time.Duration
}

type bookingCommandsImpl struct {
	uow       shared.UnitOfWork
	sequencer BookingSequencer
	payment   PaymentGateway
	clock     clock.Clock
	opts      BookingOptions
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	sequencer BookingSequencer,
	payment PaymentGateway,
	clk clock.Clock,
	opts BookingOptions,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:       uow,
		sequencer: sequencer,
		payment:   payment,
		clock:     clk,
		opts:      opts,
	}
}

// StartBooking mints a booking id and opens a payment order. The seat check here is
// advisory; seats are only taken on confirmation.
func (b *bookingCommandsImpl) StartBooking(ctx context.Context, userID uuid.UUID, in StartBookingInput) (result *StartBookingResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "booking.StartBooking", attribute.String("package.id", in.PackageID.String()))
	defer func() { tracing.End(span, err) }()

	if in.Seats <= 0 {
		return nil, errs.Mark(booking.ErrInvalidSeats, ErrValidation)
	}
	if in.Amount <= 0 {
		return nil, errs.Mark(booking.ErrInvalidAmount, ErrValidation)
	}
	if _, err := booking.NewPaymentType(in.PaymentType); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	pkg, err := b.uow.CommandReads().PackageByID(ctx, in.PackageID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if pkg.AvailableSeats < in.Seats {
		return nil, ErrInsufficientSeats
	}

	bookingID, err := b.sequencer.NextBookingID(ctx)
	if err != nil {
		return nil, err
	}

	order, err := b.payment.CreateOrder(ctx, in.Amount, bookingID.String())
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentUpstream)
	}

	start := &shared.BookingStart{
		BookingID: bookingID.String(),
		UserID:    userID,
		PackageID: in.PackageID,
		OrderID:   order.OrderID,
		Amount:    in.Amount,
		Seats:     in.Seats,
		CreatedAt: b.clock.Now(),
	}
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.BookingStarts().Create(ctx, tx.DB(), start)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	slog.Info("booking started", "booking_id", bookingID.String(), "user_id", userID, "order_id", order.OrderID)
	return &StartBookingResult{BookingID: bookingID.String(), Order: order}, nil
}

func (b *bookingCommandsImpl) ConfirmBooking(ctx context.Context, userID uuid.UUID, in ConfirmBookingInput) (result *ConfirmBookingResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "booking.ConfirmBooking",
		attribute.String("booking.id", in.BookingID),
		attribute.String("package.id", in.PackageID.String()),
		attribute.Int("booking.seats", in.Seats))
	defer func() { tracing.End(span, err) }()

	params, err := b.validateConfirm(userID, in)
	if err != nil {
		return nil, err
	}

	if replay, err := b.replayExisting(ctx, params.BookingID, userID); replay != nil || err != nil {
		return replay, err
	}

	params.PaymentMethod = b.lookupPaymentMethod(ctx, in.PaymentID)

	var replay *ConfirmBookingResult
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := b.lockStart(ctx, tx, params)
		if err != nil {
			return err
		}
		replay = existing
		if replay != nil {
			return nil
		}
		return b.confirmInTx(ctx, tx, params, in)
	})
	if err != nil {
		// a concurrent confirmation of the same booking id committed first; our seats rolled back
		if infra.IsConstraint(err, repository.BookingIDConstraint) {
			replay, replayErr := b.replayExisting(ctx, params.BookingID, userID)
			if replayErr != nil {
				return nil, replayErr
			}
			if replay != nil {
				return replay, nil
			}
		}
		return nil, err
	}
	if replay != nil {
		metrics.BookingsReplayedTotal.Inc()
		return replay, nil
	}

	metrics.BookingsConfirmedTotal.Inc()
	slog.Info("booking confirmed",
		"booking_id", params.BookingID.String(),
		"user_id", userID,
		"package_id", in.PackageID,
		"seats", in.Seats)
	return &ConfirmBookingResult{BookingID: params.BookingID.String()}, nil
}

func (b *bookingCommandsImpl) validateConfirm(userID uuid.UUID, in ConfirmBookingInput) (booking.NewBookingParams, error) {
	bookingID, err := booking.NewBookingID(in.BookingID)
	if err != nil {
		return booking.NewBookingParams{}, errs.Mark(err, ErrValidation)
	}
	paymentType, err := booking.NewPaymentType(in.PaymentType)
	if err != nil {
		return booking.NewBookingParams{}, errs.Mark(err, ErrValidation)
	}
	travelers := make([]booking.Traveler, 0, len(in.Travelers))
	for _, t := range in.Travelers {
		traveler, err := booking.NewTraveler(t.FullName, t.Age, t.Gender)
		if err != nil {
			return booking.NewBookingParams{}, errs.Mark(err, ErrValidation)
		}
		travelers = append(travelers, traveler)
	}

	params := booking.NewBookingParams{
		BookingID:   bookingID,
		UserID:      userID,
		PackageID:   in.PackageID,
		PaymentID:   in.PaymentID,
		Amount:      in.Amount,
		PaymentType: paymentType,
		SeatsBooked: in.Seats,
		Travelers:   travelers,
	}
	// dry run of the entity rules before any seat is touched
	if _, err := booking.NewConfirmedBooking(params, b.clock.Now()); err != nil {
		return booking.NewBookingParams{}, errs.Mark(err, ErrValidation)
	}
	return params, nil
}

func (b *bookingCommandsImpl) replayExisting(ctx context.Context, bookingID booking.BookingID, userID uuid.UUID) (*ConfirmBookingResult, error) {
	existing, err := b.uow.CommandReads().BookingByBookingID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if existing.UserID != userID {
		return nil, ErrBookingConflict
	}
	metrics.BookingsReplayedTotal.Inc()
	return &ConfirmBookingResult{BookingID: existing.BookingID, IsReplayed: true}, nil
}

// lockStart takes the start row lock before any seat, coupon or discount row. Concurrent
// confirmations of one id queue here, and the later one finds the committed booking.
func (b *bookingCommandsImpl) lockStart(ctx context.Context, tx shared.Tx, params booking.NewBookingParams) (*ConfirmBookingResult, error) {
	start, err := tx.BookingStarts().FindForUpdate(ctx, tx.DB(), params.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotStarted
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if start.UserID != params.UserID {
		return nil, ErrBookingConflict
	}
	if start.PackageID != params.PackageID {
		return nil, errs.Mark(errs.Newf("booking %s was started for another package", params.BookingID), ErrValidation)
	}

	existing, err := tx.Bookings().FindByBookingID(ctx, tx.DB(), params.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if existing.UserID() != params.UserID {
		return nil, ErrBookingConflict
	}
	return &ConfirmBookingResult{BookingID: existing.BookingID().String(), IsReplayed: true}, nil
}

// lookupPaymentMethod never fails the booking; the payment is already captured.
func (b *bookingCommandsImpl) lookupPaymentMethod(ctx context.Context, paymentID string) string {
	lookupCtx, cancel := context.WithTimeout(ctx, b.opts.LookupTimeout)
	defer cancel()

	method, err := b.payment.PaymentMethod(lookupCtx, paymentID)
	if err != nil || method == "" {
		if err != nil {
			slog.Warn("payment method lookup failed", "payment_id", paymentID, "error", err.Error())
		}
		return booking.UnknownPaymentMethod
	}
	return method
}

func (b *bookingCommandsImpl) confirmInTx(ctx context.Context, tx shared.Tx, params booking.NewBookingParams, in ConfirmBookingInput) error {
	now := b.clock.Now()

	if err := reserveSeats(ctx, tx, params.PackageID, params.SeatsBooked); err != nil {
		return err
	}

	confirmed, err := booking.NewConfirmedBooking(params, now)
	if err != nil {
		return errs.Mark(err, ErrValidation)
	}

	if in.DiscountCode != nil && *in.DiscountCode != "" {
		code, err := discount.NewCode(*in.DiscountCode)
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}
		quote, err := applyDiscount(ctx, tx, code, params.UserID, confirmed.RemainingAmount(), now)
		if err != nil {
			return err
		}
		if err := confirmed.ApplyDiscount(quote.DiscountAmount); err != nil {
			return errs.Mark(err, ErrValidation)
		}
		confirmed.AttachDiscountCode(quote.Code)
	}

	if in.CouponNumber != nil && *in.CouponNumber != "" {
		if err := b.redeemCoupon(ctx, tx, confirmed, *in.CouponNumber, now); err != nil {
			return err
		}
	}

	if err := tx.Bookings().Create(ctx, tx.DB(), confirmed); err != nil {
		if infra.IsConstraint(err, repository.BookingIDConstraint) {
			return err
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	payload, err := json.Marshal(map[string]any{
		"type":            TopicBookingConfirmed,
		"booking_id":      confirmed.BookingID().String(),
		"user_id":         confirmed.UserID(),
		"package_id":      confirmed.PackageID(),
		"seats":           confirmed.SeatsBooked(),
		"amount":          confirmed.Amount(),
		"discount_amount": confirmed.DiscountAmount(),
	})
	if err != nil {
		return err
	}
	if err := tx.Notifications().CreateJob(ctx, tx.DB(), JobKindEmail, TopicBookingConfirmed, payload, now); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// redeemCoupon consumes a winning coupon in the booking transaction, so a failed
// booking never spends it.
func (b *bookingCommandsImpl) redeemCoupon(ctx context.Context, tx shared.Tx, confirmed *booking.Booking, number string, now time.Time) error {
	num, err := coupon.NewNumber(number)
	if err != nil {
		return errs.Mark(err, ErrValidation)
	}

	candidates, err := tx.Coupons().ListByNumberForUser(ctx, tx.DB(), num, confirmed.UserID(), true)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	selected, err := selectRedeemable(candidates, confirmed.UserID(), confirmed.PackageID())
	if err != nil {
		return err
	}

	pkg, err := tx.Packages().FindByID(ctx, tx.DB(), confirmed.PackageID())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := selected.Redeem(confirmed.UserID(), confirmed.PackageID(), now); err != nil {
		return err
	}
	ok, err := tx.Coupons().MarkUsed(ctx, tx.DB(), selected)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !ok {
		return coupon.ErrCouponAlreadyUsed
	}

	if err := confirmed.ApplyDiscount(coupon.RedemptionDiscount(pkg.Price(), confirmed.RemainingAmount())); err != nil {
		return errs.Mark(err, ErrValidation)
	}
	confirmed.AttachCoupon(selected.ID())
	metrics.CouponsRedeemedTotal.Inc()
	return nil
}

func (b *bookingCommandsImpl) CancelBooking(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID string) error {
	id, err := booking.NewBookingID(bookingID)
	if err != nil {
		return errs.Mark(err, ErrValidation)
	}

	canceled := false
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		target, err := b.findForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if !target.IsOwnedBy(actorID) && !actorRole.AtLeast(user.RoleAdmin) {
			return ErrBookingForbidden
		}
		canceled, err = b.cancel(ctx, tx, target)
		return err
	})
	if err != nil {
		return err
	}

	if canceled {
		metrics.BookingsCanceledTotal.Inc()
		slog.Info("booking canceled", "booking_id", id.String(), "actor_id", actorID)
	}
	return nil
}

func (b *bookingCommandsImpl) UpdateBookingStatus(ctx context.Context, bookingID, status string) error {
	id, err := booking.NewBookingID(bookingID)
	if err != nil {
		return errs.Mark(err, ErrValidation)
	}
	next, err := booking.NewStatus(status)
	if err != nil {
		return errs.Mark(err, ErrValidation)
	}

	return b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		target, err := b.findForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if next == booking.StatusCanceled {
			_, err = b.cancel(ctx, tx, target)
			return err
		}
		if err := target.TransitionTo(next, b.clock.Now()); err != nil {
			return err
		}
		if err := tx.Bookings().Save(ctx, tx.DB(), target); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (b *bookingCommandsImpl) DeleteBooking(ctx context.Context, bookingID string) error {
	id, err := booking.NewBookingID(bookingID)
	if err != nil {
		return errs.Mark(err, ErrValidation)
	}

	return b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		deleted, err := tx.Bookings().Delete(ctx, tx.DB(), id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !deleted {
			return ErrBookingNotFound
		}
		return nil
	})
}

func (b *bookingCommandsImpl) findForUpdate(ctx context.Context, tx shared.Tx, id booking.BookingID) (*booking.Booking, error) {
	target, err := tx.Bookings().FindByBookingIDForUpdate(ctx, tx.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return target, nil
}

// cancel applies the cancellation policy; seats go back only when configured.
func (b *bookingCommandsImpl) cancel(ctx context.Context, tx shared.Tx, target *booking.Booking) (bool, error) {
	changed, err := target.Cancel(b.clock.Now())
	if err != nil {
		return false, err
	}

	released := false
	if b.opts.RestoreSeatsOnCancel && target.NeedsSeatRelease() {
		if err := releaseSeats(ctx, tx, target); err != nil {
			return false, err
		}
		released = true
	}

	if changed || released {
		if err := tx.Bookings().Save(ctx, tx.DB(), target); err != nil {
			return false, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return changed, nil
}
