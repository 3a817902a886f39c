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
	couponViewSelect = `
SELECT c.id, c.offer_id, o.title, c.user_id, u.email, c.coupon_number, c.payment_id, c.is_winner,
       c.associated_package_id, c.prize_name, c.won_at, c.is_used, c.used_at, c.created_at
FROM coupons c
JOIN offers o ON o.id = c.offer_id
JOIN users u ON u.id = c.user_id`

	listCouponsByUserSQL = couponViewSelect + `
WHERE c.user_id = $4
  AND ($1::timestamptz IS NULL OR (c.created_at, c.id) < ($1, $2::uuid))
ORDER BY c.created_at DESC, c.id DESC
LIMIT $3`

	listCouponsByOfferSQL = couponViewSelect + `
WHERE c.offer_id = $4
  AND (NOT $5::boolean OR c.is_winner)
  AND ($1::timestamptz IS NULL OR (c.created_at, c.id) < ($1, $2::uuid))
ORDER BY c.created_at DESC, c.id DESC
LIMIT $3`
)

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: dbtx}
}

func (r *CouponReadStore) ListByUser(ctx context.Context, userID uuid.UUID, ks queries.Keyset) ([]*queries.CouponView, error) {
	return r.list(ctx, listCouponsByUserSQL, append(keysetArgs(ks), userID)...)
}

func (r *CouponReadStore) ListByOffer(ctx context.Context, offerID uuid.UUID, filters queries.CouponFilters, ks queries.Keyset) ([]*queries.CouponView, error) {
	return r.list(ctx, listCouponsByOfferSQL, append(keysetArgs(ks), offerID, filters.WinnersOnly)...)
}

func (r *CouponReadStore) list(ctx context.Context, query string, args ...any) ([]*queries.CouponView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupons", err)
	}
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.CouponView, error) {
		var (
			v         queries.CouponView
			packageID pgtype.UUID
			prizeName pgtype.Text
			wonAt     pgtype.Timestamptz
			usedAt    pgtype.Timestamptz
		)
		err := row.Scan(&v.ID, &v.OfferID, &v.OfferTitle, &v.UserID, &v.UserEmail, &v.CouponNumber, &v.PaymentID, &v.IsWinner,
			&packageID, &prizeName, &wonAt, &v.IsUsed, &usedAt, &v.CreatedAt)
		if err != nil {
			return nil, err
		}
		v.AssociatedPackageID = pgconv.UUIDPtrFromPgtype(packageID)
		v.PrizeName = pgconv.StringPtrFromPgtype(prizeName)
		v.WonAt = pgconv.TimePtrFromPgtype(wonAt)
		v.UsedAt = pgconv.TimePtrFromPgtype(usedAt)
		return &v, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read coupons", err)
	}
	return views, nil
}
