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
	offerViewColumns = `o.id, o.title, o.total_coupons,
(SELECT count(*) FROM coupons c WHERE c.offer_id = o.id) AS sold_coupons,
o.price, o.end_date, o.status, o.banner_ref, o.grand_prize, o.created_at, o.updated_at`

	getOfferViewSQL  = `SELECT ` + offerViewColumns + ` FROM offers o WHERE o.id = $1`
	getLiveOfferSQL  = `SELECT ` + offerViewColumns + ` FROM offers o WHERE o.status = 'live'`
	listOfferViewSQL = `
SELECT ` + offerViewColumns + `
FROM offers o
WHERE ($1::timestamptz IS NULL OR (o.created_at, o.id) < ($1, $2::uuid))
ORDER BY o.created_at DESC, o.id DESC
LIMIT $3`
)

type OfferReadStore struct {
	db db.DBTX
}

func NewOfferReadStore(dbtx db.DBTX) *OfferReadStore {
	return &OfferReadStore{db: dbtx}
}

func (r *OfferReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OfferView, error) {
	v, err := scanOfferView(r.db.QueryRow(ctx, getOfferViewSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get offer view", err)
	}
	return v, nil
}

func (r *OfferReadStore) FindLive(ctx context.Context) (*queries.OfferView, error) {
	v, err := scanOfferView(r.db.QueryRow(ctx, getLiveOfferSQL))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get live offer", err)
	}
	return v, nil
}

func (r *OfferReadStore) List(ctx context.Context, ks queries.Keyset) ([]*queries.OfferView, error) {
	rows, err := r.db.Query(ctx, listOfferViewSQL, keysetArgs(ks)...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list offers", err)
	}
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.OfferView, error) {
		return scanOfferView(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read offers", err)
	}
	return views, nil
}

func scanOfferView(row pgx.Row) (*queries.OfferView, error) {
	var (
		v          queries.OfferView
		grandPrize pgtype.Text
	)
	if err := row.Scan(&v.ID, &v.Title, &v.TotalCoupons, &v.SoldCoupons, &v.Price, &v.EndDate, &v.Status, &v.BannerRef,
		&grandPrize, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.GrandPrize = pgconv.StringPtrFromPgtype(grandPrize)
	return &v, nil
}
