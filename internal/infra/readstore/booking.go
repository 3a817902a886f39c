package readstore

import (
	"context"

	"travel-booking/internal/infra"
	"travel-booking/internal/infra/db"
	"travel-booking/internal/pkg/pgconv"
	"travel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	getBookingViewSQL = `
SELECT b.id, b.booking_id, b.user_id, u.email, b.package_id, p.title, b.payment_id, b.payment_method,
       b.payment_type, b.amount, b.discount_amount, b.status, b.seats_booked, b.coupon_id, b.discount_code,
       b.created_at, b.updated_at
FROM bookings b
JOIN users u ON u.id = b.user_id
JOIN packages p ON p.id = b.package_id
WHERE b.booking_id = $1`

	getBookingTravelersSQL = `
SELECT full_name, age, gender FROM booking_travelers
WHERE booking_id = $1
ORDER BY position`

	listBookingsSQL = `
SELECT b.id, b.booking_id, b.user_id, b.package_id, p.title, b.amount, b.discount_amount, b.status, b.seats_booked, b.created_at
FROM bookings b
JOIN packages p ON p.id = b.package_id
WHERE ($4::uuid IS NULL OR b.user_id = $4)
  AND ($5::text IS NULL OR b.status = $5)
  AND ($6::uuid IS NULL OR b.package_id = $6)
  AND ($1::timestamptz IS NULL OR (b.created_at, b.id) < ($1, $2::uuid))
ORDER BY b.created_at DESC, b.id DESC
LIMIT $3`
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByBookingID(ctx context.Context, bookingID string) (*queries.BookingView, error) {
	var (
		v            queries.BookingView
		couponID     pgtype.UUID
		discountCode pgtype.Text
	)
	err := r.db.QueryRow(ctx, getBookingViewSQL, bookingID).Scan(
		&v.ID, &v.BookingID, &v.UserID, &v.UserEmail, &v.PackageID, &v.PackageTitle, &v.PaymentID, &v.PaymentMethod,
		&v.PaymentType, &v.Amount, &v.DiscountAmount, &v.Status, &v.SeatsBooked, &couponID, &discountCode,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get booking view", err)
	}
	v.CouponID = pgconv.UUIDPtrFromPgtype(couponID)
	v.DiscountCode = pgconv.StringPtrFromPgtype(discountCode)

	rows, err := r.db.Query(ctx, getBookingTravelersSQL, v.ID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get booking travelers", err)
	}
	v.Travelers, err = pgx.CollectRows(rows, pgx.RowToStructByPos[queries.TravelerView])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read booking travelers", err)
	}
	return &v, nil
}

func (r *BookingReadStore) List(ctx context.Context, userID *uuid.UUID, filters queries.BookingFilters, ks queries.Keyset) ([]*queries.BookingListItem, error) {
	args := append(keysetArgs(ks),
		pgconv.UUIDPtrToPgtype(userID),
		pgconv.StringPtrToPgtype(filters.Status),
		pgconv.UUIDPtrToPgtype(filters.PackageID),
	)
	rows, err := r.db.Query(ctx, listBookingsSQL, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[queries.BookingListItem])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read bookings", err)
	}
	return items, nil
}
