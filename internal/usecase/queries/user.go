package queries

import (
	"context"

	"travel-booking/internal/domain/user"
	"travel-booking/internal/infra"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUserNotFound = errs.New("user not found")
	ErrUserInactive = errs.New("user inactive")
)

// Capabilities a client can use to decide which booking and lottery actions to offer.
const (
	CapBook             = "book"
	CapPurchaseCoupons  = "purchase_coupons"
	CapManagePackages   = "manage_packages"
	CapViewAllBookings  = "view_all_bookings"
	CapManageOffers     = "manage_offers"
	CapAnnounceWinners  = "announce_winners"
	CapManageDiscounts  = "manage_discounts"
	CapOverrideBookings = "override_bookings"
)

// each role inherits everything granted to the roles below it
var roleCapabilities = []struct {
	min  user.Role
	caps []string
}{
	{user.RoleCustomer, []string{CapBook, CapPurchaseCoupons}},
	{user.RoleStaff, []string{CapManagePackages, CapViewAllBookings}},
	{user.RoleAdmin, []string{CapManageOffers, CapAnnounceWinners, CapManageDiscounts, CapOverrideBookings}},
}

func CapabilitiesFor(role user.Role) []string {
	caps := []string{}
	for _, rc := range roleCapabilities {
		if role.AtLeast(rc.min) {
			caps = append(caps, rc.caps...)
		}
	}
	return caps
}

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

type userQueriesImpl struct {
	store UserReadStore
}

func NewUserQueries(store UserReadStore) UserQueries {
	return &userQueriesImpl{store: store}
}

// GetCurrentUser rejects deactivated accounts even while their access token is still valid.
func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (_ *AuthorizedUserView, err error) {
	ctx, span := tracing.StartSpan(ctx, "user.GetCurrentUser", attribute.String("user.id", userID.String()))
	defer func() { tracing.End(span, err) }()

	v, err := q.store.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to load current user")
	}
	if !v.IsActive {
		return nil, ErrUserInactive
	}

	role, err := user.NewRole(v.Role)
	if err != nil {
		return nil, errs.Wrapf(err, "user %s has unknown role %q", userID, v.Role)
	}
	v.Capabilities = CapabilitiesFor(role)
	span.SetAttributes(attribute.String("user.role", role.String()))
	return v, nil
}
