package repository

import (
	"context"
	"time"

	"travel-booking/internal/domain/offer"
	"travel-booking/internal/infra"
	"travel-booking/internal/infra/db"
	"travel-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const offerColumns = `id, title, total_coupons, price, end_date, status, banner_ref, grand_prize, created_at, updated_at`

// LiveOfferIndex guards the single-live-offer rule at the database level.
const LiveOfferIndex = "uq_offers_single_live"

const (
	insertOfferSQL = `
INSERT INTO offers (` + offerColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	findOfferSQL              = `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`
	findOfferForUpdateSQL     = findOfferSQL + ` FOR UPDATE`
	findLiveOfferForUpdateSQL = `SELECT ` + offerColumns + ` FROM offers WHERE status = 'live' FOR UPDATE`

	saveOfferSQL = `
UPDATE offers
SET status = $2, grand_prize = $3, updated_at = $4
WHERE id = $1`

	endExpiredOffersSQL = `
UPDATE offers
SET status = 'ended', updated_at = $1
WHERE status = 'live' AND end_date <= $1
RETURNING id`
)

type OfferRepository struct{}

func NewOfferRepository() *OfferRepository {
	return &OfferRepository{}
}

func (r *OfferRepository) Create(ctx context.Context, tx db.DBTX, o *offer.Offer) error {
	_, err := tx.Exec(ctx, insertOfferSQL,
		o.ID(), o.Title(), o.TotalCoupons(), o.Price(), o.EndDate(), string(o.Status()), o.BannerRef(), pgconv.StringPtrToPgtype(o.GrandPrize()), o.CreatedAt(), o.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create offer", err)
	}
	return nil
}

func (r *OfferRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*offer.Offer, error) {
	o, err := scanOffer(tx.QueryRow(ctx, findOfferSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find offer", err)
	}
	return o, nil
}

func (r *OfferRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*offer.Offer, error) {
	o, err := scanOffer(tx.QueryRow(ctx, findOfferForUpdateSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock offer", err)
	}
	return o, nil
}

func (r *OfferRepository) FindLiveForUpdate(ctx context.Context, tx db.DBTX) (*offer.Offer, error) {
	o, err := scanOffer(tx.QueryRow(ctx, findLiveOfferForUpdateSQL))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock live offer", err)
	}
	return o, nil
}

func (r *OfferRepository) Save(ctx context.Context, tx db.DBTX, o *offer.Offer) error {
	tag, err := tx.Exec(ctx, saveOfferSQL, o.ID(), string(o.Status()), pgconv.StringPtrToPgtype(o.GrandPrize()), o.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to save offer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OfferRepository) EndExpired(ctx context.Context, tx db.DBTX, now time.Time) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, endExpiredOffersSQL, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to end expired offers", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read expired offers", err)
	}
	return ids, nil
}

func scanOffer(row pgx.Row) (*offer.Offer, error) {
	var (
		id                   uuid.UUID
		title                string
		totalCoupons         int
		price                int64
		endDate              time.Time
		status               string
		bannerRef            string
		grandPrize           pgtype.Text
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &title, &totalCoupons, &price, &endDate, &status, &bannerRef, &grandPrize, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return offer.ReconstructOffer(id, title, totalCoupons, price, endDate, offer.Status(status), bannerRef, pgconv.StringPtrFromPgtype(grandPrize), createdAt, updatedAt), nil
}
