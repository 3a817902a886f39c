package queries

import (
	"context"
	"log/slog"
	"time"

	"travel-booking/internal/infra"
	"travel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOfferNotFound = errs.New("offer not found")
	ErrNoLiveOffer   = errs.New("no live offer")
)

type OfferQueries interface {
	GetLive(ctx context.Context) (*OfferView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*OfferView, error)
	List(ctx context.Context, after *Cursor, limit int) (*Page[*OfferView], error)
}

type OfferReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OfferView, error)
	FindLive(ctx context.Context) (*OfferView, error)
	List(ctx context.Context, ks Keyset) ([]*OfferView, error)
}

// LiveOfferCache returns (nil, nil) on a miss.
type LiveOfferCache interface {
	GetLive(ctx context.Context) (*OfferView, error)
	SetLive(ctx context.Context, v *OfferView) error
	InvalidateLive(ctx context.Context) error
}

type offerQueriesImpl struct {
	store OfferReadStore
	cache LiveOfferCache
}

func NewOfferQueries(store OfferReadStore, cache LiveOfferCache) OfferQueries {
	return &offerQueriesImpl{store: store, cache: cache}
}

// GetLive reads through the cache; cache failures fall back to the database.
func (q *offerQueriesImpl) GetLive(ctx context.Context) (*OfferView, error) {
	if cached, err := q.cache.GetLive(ctx); err != nil {
		slog.WarnContext(ctx, "live offer cache read failed", "error", err.Error())
	} else if cached != nil {
		return cached, nil
	}

	v, err := q.store.FindLive(ctx)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNoLiveOffer
		}
		return nil, err
	}

	if err := q.cache.SetLive(ctx, v); err != nil {
		slog.WarnContext(ctx, "live offer cache write failed", "error", err.Error())
	}
	return v, nil
}

func (q *offerQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OfferView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *offerQueriesImpl) List(ctx context.Context, after *Cursor, limit int) (*Page[*OfferView], error) {
	ks, err := newKeyset(after, limit)
	if err != nil {
		return nil, err
	}
	rows, err := q.store.List(ctx, ks)
	if err != nil {
		return nil, err
	}
	return paginate(rows, ks.Limit, func(v *OfferView) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID }), nil
}
