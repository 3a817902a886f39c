package queries

import (
	"context"
	"time"

	"travel-booking/internal/domain/user"
	"travel-booking/internal/infra"
	"travel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound     = errs.New("booking not found")
	ErrBookingAccessDenied = errs.New("booking access denied")
)

type BookingFilters struct {
	Status    *string
	PackageID *uuid.UUID
}

type BookingQueries interface {
	GetByBookingID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID string) (*BookingView, error)
	// GetByBookingIDSystem skips the ownership check; used for replays after a write.
	GetByBookingIDSystem(ctx context.Context, bookingID string) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) (*Page[*BookingListItem], error)
	ListAll(ctx context.Context, filters BookingFilters, after *Cursor, limit int) (*Page[*BookingListItem], error)
}

type BookingReadStore interface {
	FindByBookingID(ctx context.Context, bookingID string) (*BookingView, error)
	List(ctx context.Context, userID *uuid.UUID, filters BookingFilters, ks Keyset) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByBookingID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID string) (*BookingView, error) {
	v, err := q.GetByBookingIDSystem(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if v.UserID != actorID && !actorRole.AtLeast(user.RoleStaff) {
		return nil, ErrBookingAccessDenied
	}
	return v, nil
}

func (q *bookingQueriesImpl) GetByBookingIDSystem(ctx context.Context, bookingID string) (*BookingView, error) {
	v, err := q.store.FindByBookingID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) (*Page[*BookingListItem], error) {
	return q.list(ctx, &userID, BookingFilters{}, after, limit)
}

func (q *bookingQueriesImpl) ListAll(ctx context.Context, filters BookingFilters, after *Cursor, limit int) (*Page[*BookingListItem], error) {
	return q.list(ctx, nil, filters, after, limit)
}

func (q *bookingQueriesImpl) list(ctx context.Context, userID *uuid.UUID, filters BookingFilters, after *Cursor, limit int) (*Page[*BookingListItem], error) {
	ks, err := newKeyset(after, limit)
	if err != nil {
		return nil, err
	}
	rows, err := q.store.List(ctx, userID, filters, ks)
	if err != nil {
		return nil, err
	}
	return paginate(rows, ks.Limit, func(v *BookingListItem) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID }), nil
}
