package repository

import (
	"context"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra"
	"travel-booking/internal/infra/db"
	"travel-booking/internal/usecase/shared"
)

const (
	insertBookingStartSQL = `
INSERT INTO booking_starts (booking_id, user_id, package_id, order_id, amount, seats, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	findBookingStartForUpdateSQL = `
SELECT booking_id, user_id, package_id, order_id, amount, seats, created_at
FROM booking_starts
WHERE booking_id = $1
FOR UPDATE`
)

type BookingStartRepository struct{}

func NewBookingStartRepository() *BookingStartRepository {
	return &BookingStartRepository{}
}

func (r *BookingStartRepository) Create(ctx context.Context, tx db.DBTX, s *shared.BookingStart) error {
	_, err := tx.Exec(ctx, insertBookingStartSQL,
		s.BookingID, s.UserID, s.PackageID, s.OrderID, s.Amount, s.Seats, s.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to record booking start", err)
	}
	return nil
}

func (r *BookingStartRepository) FindForUpdate(ctx context.Context, tx db.DBTX, bookingID booking.BookingID) (*shared.BookingStart, error) {
	var s shared.BookingStart
	err := tx.QueryRow(ctx, findBookingStartForUpdateSQL, bookingID.String()).
		Scan(&s.BookingID, &s.UserID, &s.PackageID, &s.OrderID, &s.Amount, &s.Seats, &s.CreatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock booking start", err)
	}
	return &s, nil
}
