package repository

import (
	"context"
	"time"

	"travel-booking/internal/domain/discount"
	"travel-booking/internal/infra"
	"travel-booking/internal/infra/db"
	"travel-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertDiscountSQL = `
INSERT INTO discount_coupons (id, code, discount_type, value, max_discount, min_order_amount, expires_at, usage_limit_per_user, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`

	findDiscountByCodeSQL = `
SELECT id, code, discount_type, value, max_discount, min_order_amount, expires_at, usage_limit_per_user, created_at
FROM discount_coupons
WHERE code = $1`

	discountUsageSQL = `
SELECT used_count FROM discount_usages
WHERE discount_coupon_id = $1 AND user_id = $2`

	ensureDiscountUsageSQL = `
INSERT INTO discount_usages (discount_coupon_id, user_id, used_count)
VALUES ($1, $2, 0)
ON CONFLICT (discount_coupon_id, user_id) DO NOTHING`

	lockDiscountUsageSQL = discountUsageSQL + ` FOR UPDATE`

	incrementDiscountUsageSQL = `
UPDATE discount_usages
SET used_count = used_count + 1, updated_at = now()
WHERE discount_coupon_id = $1 AND user_id = $2`
)

type DiscountRepository struct{}

func NewDiscountRepository() *DiscountRepository {
	return &DiscountRepository{}
}

func (r *DiscountRepository) Create(ctx context.Context, tx db.DBTX, c *discount.Coupon) error {
	d := c.Discount()
	_, err := tx.Exec(ctx, insertDiscountSQL,
		c.ID(), c.Code().String(), string(d.Kind()), d.Value(), pgconv.Int64PtrToPgtype(d.MaxDiscount()),
		c.MinOrderAmount(), c.ExpiresAt(), c.UsageLimitPerUser(), c.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create discount coupon", err)
	}
	return nil
}

func (r *DiscountRepository) FindByCode(ctx context.Context, tx db.DBTX, code discount.Code) (*discount.Coupon, error) {
	c, err := scanDiscount(tx.QueryRow(ctx, findDiscountByCodeSQL, code.String()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find discount coupon", err)
	}
	return c, nil
}

// UsageCount treats a missing usage row as zero uses.
func (r *DiscountRepository) UsageCount(ctx context.Context, tx db.DBTX, couponID, userID uuid.UUID) (int, error) {
	var n int
	err := tx.QueryRow(ctx, discountUsageSQL, couponID, userID).Scan(&n)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, nil
		}
		return 0, infra.WrapRepoErr("failed to read discount usage", err)
	}
	return n, nil
}

func (r *DiscountRepository) LockUsage(ctx context.Context, tx db.DBTX, couponID, userID uuid.UUID) (int, error) {
	if _, err := tx.Exec(ctx, ensureDiscountUsageSQL, couponID, userID); err != nil {
		return 0, infra.WrapRepoErr("failed to create discount usage", err)
	}
	var n int
	if err := tx.QueryRow(ctx, lockDiscountUsageSQL, couponID, userID).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to lock discount usage", err)
	}
	return n, nil
}

func (r *DiscountRepository) IncrementUsage(ctx context.Context, tx db.DBTX, couponID, userID uuid.UUID) error {
	tag, err := tx.Exec(ctx, incrementDiscountUsageSQL, couponID, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to increment discount usage", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("discount usage not locked", nil, infra.KindNotFound)
	}
	return nil
}

func scanDiscount(row pgx.Row) (*discount.Coupon, error) {
	var (
		id                   uuid.UUID
		code, kind           string
		value, minOrder      int64
		maxDiscount          pgtype.Int8
		usageLimit           int
		expiresAt, createdAt time.Time
	)
	if err := row.Scan(&id, &code, &kind, &value, &maxDiscount, &minOrder, &expiresAt, &usageLimit, &createdAt); err != nil {
		return nil, err
	}
	d, err := discount.NewDiscount(discount.Kind(kind), value, pgconv.Int64PtrFromPgtype(maxDiscount))
	if err != nil {
		return nil, err
	}
	return discount.ReconstructCoupon(id, discount.Code(code), d, minOrder, expiresAt, usageLimit, createdAt), nil
}
