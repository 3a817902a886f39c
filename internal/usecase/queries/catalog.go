package queries

import (
	"context"
	"time"

	"travel-booking/internal/infra"
	"travel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrPackageNotFound = errs.New("package not found")

type CatalogQueries interface {
	GetPackage(ctx context.Context, id uuid.UUID) (*PackageView, error)
	ListPackages(ctx context.Context, after *Cursor, limit int) (*Page[*PackageView], error)
}

type PackageReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PackageView, error)
	List(ctx context.Context, ks Keyset) ([]*PackageView, error)
}

type catalogQueriesImpl struct {
	store PackageReadStore
}

func NewCatalogQueries(store PackageReadStore) CatalogQueries {
	return &catalogQueriesImpl{store: store}
}

func (q *catalogQueriesImpl) GetPackage(ctx context.Context, id uuid.UUID) (*PackageView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *catalogQueriesImpl) ListPackages(ctx context.Context, after *Cursor, limit int) (*Page[*PackageView], error) {
	ks, err := newKeyset(after, limit)
	if err != nil {
		return nil, err
	}
	rows, err := q.store.List(ctx, ks)
	if err != nil {
		return nil, err
	}
	return paginate(rows, ks.Limit, func(v *PackageView) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID }), nil
}
