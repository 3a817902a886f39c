package repository

import (
	"context"
	"time"

	"travel-booking/internal/domain/catalog"
	"travel-booking/internal/infra"
	"travel-booking/internal/infra/db"
	"travel-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const packageColumns = `id, title, description, price, total_seats, available_seats, image_url, created_at, updated_at`

const (
	insertPackageSQL = `
INSERT INTO packages (` + packageColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	findPackageSQL          = `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`
	findPackageForUpdateSQL = findPackageSQL + ` FOR UPDATE`

	// single conditional statement: never oversells, never partially applies
	reserveSeatsSQL = `
UPDATE packages
SET available_seats = available_seats - $2, updated_at = now()
WHERE id = $1 AND available_seats >= $2`

	releaseSeatsSQL = `
UPDATE packages
SET available_seats = LEAST(total_seats, available_seats + $2), updated_at = now()
WHERE id = $1`

	updatePackageSeatsSQL = `
UPDATE packages
SET total_seats = $2, available_seats = $3, updated_at = $4
WHERE id = $1`

	updatePackageImageSQL = `UPDATE packages SET image_url = $2, updated_at = $3 WHERE id = $1`
)

type PackageRepository struct{}

func NewPackageRepository() *PackageRepository {
	return &PackageRepository{}
}

func (r *PackageRepository) Create(ctx context.Context, tx db.DBTX, p *catalog.Package) error {
	_, err := tx.Exec(ctx, insertPackageSQL,
		p.ID(), p.Title(), p.Description(), p.Price(), p.TotalSeats(), p.AvailableSeats(), pgconv.StringPtrToPgtype(p.ImageURL()), p.CreatedAt(), p.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create package", err)
	}
	return nil
}

func (r *PackageRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*catalog.Package, error) {
	p, err := scanPackage(tx.QueryRow(ctx, findPackageSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find package", err)
	}
	return p, nil
}

func (r *PackageRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*catalog.Package, error) {
	p, err := scanPackage(tx.QueryRow(ctx, findPackageForUpdateSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock package", err)
	}
	return p, nil
}

func (r *PackageRepository) ReserveSeats(ctx context.Context, tx db.DBTX, id uuid.UUID, count int) (bool, error) {
	tag, err := tx.Exec(ctx, reserveSeatsSQL, id, count)
	if err != nil {
		return false, infra.WrapRepoErr("failed to reserve seats", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PackageRepository) ReleaseSeats(ctx context.Context, tx db.DBTX, id uuid.UUID, count int) error {
	tag, err := tx.Exec(ctx, releaseSeatsSQL, id, count)
	if err != nil {
		return infra.WrapRepoErr("failed to release seats", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("package not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PackageRepository) UpdateSeats(ctx context.Context, tx db.DBTX, p *catalog.Package) error {
	tag, err := tx.Exec(ctx, updatePackageSeatsSQL, p.ID(), p.TotalSeats(), p.AvailableSeats(), p.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update package seats", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("package not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PackageRepository) UpdateImage(ctx context.Context, tx db.DBTX, id uuid.UUID, imageURL string, at time.Time) error {
	tag, err := tx.Exec(ctx, updatePackageImageSQL, id, imageURL, at)
	if err != nil {
		return infra.WrapRepoErr("failed to update package image", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("package not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanPackage(row pgx.Row) (*catalog.Package, error) {
	var (
		id                    uuid.UUID
		title, description    string
		price                 int64
		totalSeats, available int
		imageURL              pgtype.Text
		createdAt, updatedAt  time.Time
	)
	if err := row.Scan(&id, &title, &description, &price, &totalSeats, &available, &imageURL, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return catalog.ReconstructPackage(id, title, description, price, totalSeats, available, pgconv.StringPtrFromPgtype(imageURL), createdAt, updatedAt), nil
}
