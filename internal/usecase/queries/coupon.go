package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CouponFilters struct {
	WinnersOnly bool
}

type CouponQueries interface {
	ListMine(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) (*Page[*CouponView], error)
	ListByOffer(ctx context.Context, offerID uuid.UUID, filters CouponFilters, after *Cursor, limit int) (*Page[*CouponView], error)
}

type CouponReadStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID, ks Keyset) ([]*CouponView, error)
	ListByOffer(ctx context.Context, offerID uuid.UUID, filters CouponFilters, ks Keyset) ([]*CouponView, error)
}

type couponQueriesImpl struct {
	store CouponReadStore
}

func NewCouponQueries(store CouponReadStore) CouponQueries {
	return &couponQueriesImpl{store: store}
}

func (q *couponQueriesImpl) ListMine(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) (*Page[*CouponView], error) {
	ks, err := newKeyset(after, limit)
	if err != nil {
		return nil, err
	}
	rows, err := q.store.ListByUser(ctx, userID, ks)
	if err != nil {
		return nil, err
	}
	return paginate(rows, ks.Limit, couponKey), nil
}

func (q *couponQueriesImpl) ListByOffer(ctx context.Context, offerID uuid.UUID, filters CouponFilters, after *Cursor, limit int) (*Page[*CouponView], error) {
	ks, err := newKeyset(after, limit)
	if err != nil {
		return nil, err
	}
	rows, err := q.store.ListByOffer(ctx, offerID, filters, ks)
	if err != nil {
		return nil, err
	}
	return paginate(rows, ks.Limit, couponKey), nil
}

func couponKey(v *CouponView) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID }
