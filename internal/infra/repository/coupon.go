package repository

import (
	"context"
	"time"

	"travel-booking/internal/domain/coupon"
	"travel-booking/internal/infra"
	"travel-booking/internal/infra/db"
	"travel-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const couponColumns = `id, offer_id, user_id, coupon_number, payment_id, payment_status, is_winner,
associated_package_id, prize_name, won_at, is_used, used_at, created_at`

const (
	insertCouponSQL = `
INSERT INTO coupons (id, offer_id, user_id, coupon_number, payment_id, payment_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	findCouponByPaymentSQL = `SELECT ` + couponColumns + ` FROM coupons WHERE payment_id = $1`

	// id order keeps concurrent draws from deadlocking each other
	lockEligibleCouponsSQL = `
SELECT ` + couponColumns + `
FROM coupons
WHERE offer_id = $1 AND payment_status = 'success' AND is_winner = FALSE
ORDER BY id
FOR UPDATE`

	lockCouponsByNumberSQL = `
SELECT ` + couponColumns + `
FROM coupons
WHERE offer_id = $1 AND coupon_number = ANY($2::text[]) AND payment_status = 'success'
ORDER BY id
FOR UPDATE`

	listCouponsByNumberForUserSQL = `
SELECT ` + couponColumns + `
FROM coupons
WHERE coupon_number = $1 AND user_id = $2
ORDER BY is_used, won_at NULLS LAST, created_at`

	markCouponWinnerSQL = `
UPDATE coupons
SET is_winner = TRUE, associated_package_id = $2, prize_name = $3, won_at = $4
WHERE id = $1 AND is_winner = FALSE AND payment_status = 'success'`

	// flips exactly once
	markCouponUsedSQL = `
UPDATE coupons
SET is_used = TRUE, used_at = $2
WHERE id = $1 AND is_used = FALSE AND is_winner = TRUE`
)

type CouponRepository struct{}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{}
}

func (r *CouponRepository) Create(ctx context.Context, tx db.DBTX, c *coupon.Coupon) error {
	_, err := tx.Exec(ctx, insertCouponSQL,
		c.ID(), c.OfferID(), c.UserID(), c.Number().String(), c.PaymentID(), string(c.PaymentStatus()), c.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create coupon", err)
	}
	return nil
}

func (r *CouponRepository) FindByPaymentID(ctx context.Context, tx db.DBTX, paymentID string) (*coupon.Coupon, error) {
	c, err := scanCoupon(tx.QueryRow(ctx, findCouponByPaymentSQL, paymentID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find coupon by payment", err)
	}
	return c, nil
}

func (r *CouponRepository) LockEligible(ctx context.Context, tx db.DBTX, offerID uuid.UUID) ([]*coupon.Coupon, error) {
	return r.queryCoupons(ctx, tx, "failed to lock eligible coupons", lockEligibleCouponsSQL, offerID)
}

func (r *CouponRepository) LockByNumbers(ctx context.Context, tx db.DBTX, offerID uuid.UUID, numbers []coupon.Number) ([]*coupon.Coupon, error) {
	raw := make([]string, len(numbers))
	for i, n := range numbers {
		raw[i] = n.String()
	}
	return r.queryCoupons(ctx, tx, "failed to lock coupons by number", lockCouponsByNumberSQL, offerID, raw)
}

func (r *CouponRepository) ListByNumberForUser(ctx context.Context, tx db.DBTX, number coupon.Number, userID uuid.UUID, lock bool) ([]*coupon.Coupon, error) {
	query := listCouponsByNumberForUserSQL
	if lock {
		query += ` FOR UPDATE`
	}
	return r.queryCoupons(ctx, tx, "failed to list coupons by number", query, number.String(), userID)
}

func (r *CouponRepository) MarkWinner(ctx context.Context, tx db.DBTX, c *coupon.Coupon) (bool, error) {
	tag, err := tx.Exec(ctx, markCouponWinnerSQL,
		c.ID(), pgconv.UUIDPtrToPgtype(c.AssociatedPackageID()), pgconv.StringPtrToPgtype(c.PrizeName()), pgconv.TimePtrToPgtype(c.WonAt()))
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark coupon winner", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *CouponRepository) MarkUsed(ctx context.Context, tx db.DBTX, c *coupon.Coupon) (bool, error) {
	tag, err := tx.Exec(ctx, markCouponUsedSQL, c.ID(), pgconv.TimePtrToPgtype(c.UsedAt()))
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark coupon used", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *CouponRepository) queryCoupons(ctx context.Context, tx db.DBTX, msg, query string, args ...any) ([]*coupon.Coupon, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	var out []*coupon.Coupon
	for rows.Next() {
		c, scanErr := scanCoupon(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr(msg, scanErr)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return out, nil
}

func scanCoupon(row pgx.Row) (*coupon.Coupon, error) {
	var (
		id, offerID, userID uuid.UUID
		number, paymentID   string
		paymentStatus       string
		isWinner, isUsed    bool
		packageID           pgtype.UUID
		prizeName           pgtype.Text
		wonAt, usedAt       pgtype.Timestamptz
		createdAt           time.Time
	)
	if err := row.Scan(&id, &offerID, &userID, &number, &paymentID, &paymentStatus, &isWinner,
		&packageID, &prizeName, &wonAt, &isUsed, &usedAt, &createdAt); err != nil {
		return nil, err
	}
	return coupon.ReconstructCoupon(
		id, offerID, userID,
		coupon.Number(number),
		paymentID,
		coupon.PaymentStatus(paymentStatus),
		isWinner,
		pgconv.UUIDPtrFromPgtype(packageID),
		pgconv.StringPtrFromPgtype(prizeName),
		pgconv.TimePtrFromPgtype(wonAt),
		isUsed,
		pgconv.TimePtrFromPgtype(usedAt),
		createdAt,
	), nil
}
