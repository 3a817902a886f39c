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
	packageViewColumns = `id, title, description, price, total_seats, available_seats, image_url, created_at, updated_at`

	getPackageViewSQL = `SELECT ` + packageViewColumns + ` FROM packages WHERE id = $1`

	listPackageViewsSQL = `
SELECT ` + packageViewColumns + `
FROM packages
WHERE ($1::timestamptz IS NULL OR (created_at, id) < ($1, $2::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $3`
)

type PackageReadStore struct {
	db db.DBTX
}

func NewPackageReadStore(dbtx db.DBTX) *PackageReadStore {
	return &PackageReadStore{db: dbtx}
}

func (r *PackageReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PackageView, error) {
	v, err := scanPackageView(r.db.QueryRow(ctx, getPackageViewSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get package view", err)
	}
	return v, nil
}

func (r *PackageReadStore) List(ctx context.Context, ks queries.Keyset) ([]*queries.PackageView, error) {
	rows, err := r.db.Query(ctx, listPackageViewsSQL, keysetArgs(ks)...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list packages", err)
	}
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.PackageView, error) {
		return scanPackageView(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read packages", err)
	}
	return views, nil
}

func scanPackageView(row pgx.Row) (*queries.PackageView, error) {
	var (
		v        queries.PackageView
		imageURL pgtype.Text
	)
	if err := row.Scan(&v.ID, &v.Title, &v.Description, &v.Price, &v.TotalSeats, &v.AvailableSeats, &imageURL, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.ImageURL = pgconv.StringPtrFromPgtype(imageURL)
	return &v, nil
}
