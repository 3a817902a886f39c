package repository

import (
	"context"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra"
	"travel-booking/internal/infra/db"
	"travel-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingIDConstraint is raised when two confirmations race on one booking id.
const BookingIDConstraint = "uq_bookings_booking_id"

const bookingColumns = `id, booking_id, user_id, package_id, payment_id, payment_method, amount, discount_amount,
payment_type, status, seats_booked, coupon_id, discount_code, seats_released, created_at, updated_at`

const (
	insertBookingSQL = `
INSERT INTO bookings (` + bookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	insertTravelerSQL = `
INSERT INTO booking_travelers (booking_id, position, full_name, age, gender)
VALUES ($1, $2, $3, $4, $5)`

	findBookingSQL          = `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`
	findBookingForUpdateSQL = findBookingSQL + ` FOR UPDATE`

	listTravelersSQL = `
SELECT full_name, age, gender FROM booking_travelers
WHERE booking_id = $1
ORDER BY position`

	saveBookingSQL = `
UPDATE bookings
SET status = $2, seats_released = $3, updated_at = $4
WHERE id = $1`

	deleteBookingSQL = `DELETE FROM bookings WHERE booking_id = $1`
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	_, err := tx.Exec(ctx, insertBookingSQL,
		b.ID(), b.BookingID().String(), b.UserID(), b.PackageID(), b.PaymentID(), b.PaymentMethod(),
		b.Amount(), b.DiscountAmount(), string(b.PaymentType()), string(b.Status()), b.SeatsBooked(),
		pgconv.UUIDPtrToPgtype(b.CouponID()), pgconv.StringPtrToPgtype(b.DiscountCode()), b.SeatsReleased(),
		b.CreatedAt(), b.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}

	for i, t := range b.Travelers() {
		if _, err := tx.Exec(ctx, insertTravelerSQL, b.ID(), i+1, t.FullName, t.Age, t.Gender); err != nil {
			return infra.WrapRepoErr("failed to create booking traveler", err)
		}
	}
	return nil
}

func (r *BookingRepository) FindByBookingID(ctx context.Context, tx db.DBTX, bookingID booking.BookingID) (*booking.Booking, error) {
	return r.find(ctx, tx, findBookingSQL, bookingID)
}

func (r *BookingRepository) FindByBookingIDForUpdate(ctx context.Context, tx db.DBTX, bookingID booking.BookingID) (*booking.Booking, error) {
	return r.find(ctx, tx, findBookingForUpdateSQL, bookingID)
}

func (r *BookingRepository) Save(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	tag, err := tx.Exec(ctx, saveBookingSQL, b.ID(), string(b.Status()), b.SeatsReleased(), b.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to save booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, tx db.DBTX, bookingID booking.BookingID) (bool, error) {
	tag, err := tx.Exec(ctx, deleteBookingSQL, bookingID.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete booking", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) find(ctx context.Context, tx db.DBTX, query string, bookingID booking.BookingID) (*booking.Booking, error) {
	p, err := scanBooking(tx.QueryRow(ctx, query, bookingID.String()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	rows, err := tx.Query(ctx, listTravelersSQL, p.ID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking travelers", err)
	}
	p.Travelers, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (booking.Traveler, error) {
		var t booking.Traveler
		err := row.Scan(&t.FullName, &t.Age, &t.Gender)
		return t, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read booking travelers", err)
	}

	return booking.Reconstruct(*p), nil
}

func scanBooking(row pgx.Row) (*booking.ReconstructParams, error) {
	var (
		p                   booking.ReconstructParams
		bookingID           string
		paymentType, status string
		couponID            pgtype.UUID
		discountCode        pgtype.Text
	)
	if err := row.Scan(&p.ID, &bookingID, &p.UserID, &p.PackageID, &p.PaymentID, &p.PaymentMethod, &p.Amount, &p.DiscountAmount,
		&paymentType, &status, &p.SeatsBooked, &couponID, &discountCode, &p.SeatsReleased, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.BookingID = booking.BookingID(bookingID)
	p.PaymentType = booking.PaymentType(paymentType)
	p.Status = booking.Status(status)
	p.CouponID = pgconv.UUIDPtrFromPgtype(couponID)
	p.DiscountCode = pgconv.StringPtrFromPgtype(discountCode)
	return &p, nil
}
