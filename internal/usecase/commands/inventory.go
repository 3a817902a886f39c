package commands

import (
	"context"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/domain/catalog"
	"travel-booking/internal/infra"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/pkg/metrics"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const bookingIDCounter = "booking_id"

type BookingSequencer interface {
	NextBookingID(ctx context.Context) (booking.BookingID, error)
}

type bookingSequencerImpl struct {
	uow shared.UnitOfWork
}

func NewBookingSequencer(uow shared.UnitOfWork) BookingSequencer {
	return &bookingSequencerImpl{uow: uow}
}

// NextBookingID fails closed: without a number no order or booking may be created.
func (s *bookingSequencerImpl) NextBookingID(ctx context.Context) (booking.BookingID, error) {
	var seq int64
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		seq, err = tx.Counters().Next(ctx, tx.DB(), bookingIDCounter)
		return err
	})
	if err != nil {
		return "", errs.Mark(err, ErrSequenceUnavailable)
	}
	return booking.FormatBookingID(seq), nil
}

// reserveSeats is the single conditional decrement; it never applies partially.
func reserveSeats(ctx context.Context, tx shared.Tx, packageID uuid.UUID, count int) error {
	if count <= 0 {
		return errs.Mark(catalog.ErrInvalidSeatCount, ErrValidation)
	}

	ok, err := tx.Packages().ReserveSeats(ctx, tx.DB(), packageID, count)
	if err != nil {
		metrics.SeatReservationsFailed.WithLabelValues("db_error").Inc()
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if ok {
		metrics.SeatsReservedTotal.Add(float64(count))
		return nil
	}

	// zero rows: tell a missing package apart from a sold-out one
	if _, err := tx.Packages().FindByID(ctx, tx.DB(), packageID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			metrics.SeatReservationsFailed.WithLabelValues("not_found").Inc()
			return ErrPackageNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	metrics.SeatReservationsFailed.WithLabelValues("insufficient").Inc()
	return errs.Mark(catalog.ErrInsufficientSeats, ErrInsufficientSeats)
}

// releaseSeats returns a canceled booking's seats exactly once.
func releaseSeats(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	if !b.NeedsSeatRelease() {
		return nil
	}
	if err := tx.Packages().ReleaseSeats(ctx, tx.DB(), b.PackageID(), b.SeatsBooked()); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrPackageNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	b.MarkSeatsReleased()
	metrics.SeatsReleasedTotal.Add(float64(b.SeatsBooked()))
	return nil
}
