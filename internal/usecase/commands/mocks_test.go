//go:build unit

package commands_test

import (
	"context"
	"time"

	"travel-booking/internal/infra"
	sharedmock "travel-booking/internal/mock/shared"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

// uowMocks wires a mock UnitOfWork whose Within runs fn against a mock Tx.
type uowMocks struct {
	ctrl          *gomock.Controller
	uow           *sharedmock.MockUnitOfWork
	tx            *sharedmock.MockTx
	reads         *sharedmock.MockCommandReads
	packages      *sharedmock.MockPackageRepository
	offers        *sharedmock.MockOfferRepository
	coupons       *sharedmock.MockCouponRepository
	counters      *sharedmock.MockCounterRepository
	bookings      *sharedmock.MockBookingRepository
	bookingStarts *sharedmock.MockBookingStartRepository
	discounts     *sharedmock.MockDiscountRepository
	idempotency   *sharedmock.MockIdempotencyRepository
	notifications *sharedmock.MockNotificationRepository
	users         *sharedmock.MockUserRepository
	clock         *clock.MockClock
}

func newUowMocks(ctrl *gomock.Controller) *uowMocks {
	m := &uowMocks{
		ctrl:          ctrl,
		uow:           sharedmock.NewMockUnitOfWork(ctrl),
		tx:            sharedmock.NewMockTx(ctrl),
		reads:         sharedmock.NewMockCommandReads(ctrl),
		packages:      sharedmock.NewMockPackageRepository(ctrl),
		offers:        sharedmock.NewMockOfferRepository(ctrl),
		coupons:       sharedmock.NewMockCouponRepository(ctrl),
		counters:      sharedmock.NewMockCounterRepository(ctrl),
		bookings:      sharedmock.NewMockBookingRepository(ctrl),
		bookingStarts: sharedmock.NewMockBookingStartRepository(ctrl),
		discounts:     sharedmock.NewMockDiscountRepository(ctrl),
		idempotency:   sharedmock.NewMockIdempotencyRepository(ctrl),
		notifications: sharedmock.NewMockNotificationRepository(ctrl),
		users:         sharedmock.NewMockUserRepository(ctrl),
		clock:         clock.NewMockClock(testNow),
	}

	m.tx.EXPECT().Packages().Return(m.packages).AnyTimes()
	m.tx.EXPECT().Offers().Return(m.offers).AnyTimes()
	m.tx.EXPECT().Coupons().Return(m.coupons).AnyTimes()
	m.tx.EXPECT().Counters().Return(m.counters).AnyTimes()
	m.tx.EXPECT().Bookings().Return(m.bookings).AnyTimes()
	m.tx.EXPECT().BookingStarts().Return(m.bookingStarts).AnyTimes()
	m.tx.EXPECT().Discounts().Return(m.discounts).AnyTimes()
	m.tx.EXPECT().Idempotency().Return(m.idempotency).AnyTimes()
	m.tx.EXPECT().Notifications().Return(m.notifications).AnyTimes()
	m.tx.EXPECT().Users().Return(m.users).AnyTimes()
	m.tx.EXPECT().Reads().Return(m.reads).AnyTimes()
	m.tx.EXPECT().DB().Return(nil).AnyTimes()

	m.uow.EXPECT().CommandReads().Return(m.reads).AnyTimes()
	m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, m.tx)
		}).AnyTimes()
	return m
}

func notFoundErr() error {
	return infra.WrapRepoErr("not found", nil, infra.KindNotFound)
}

func dbFailureErr() error {
	return infra.WrapRepoErr("connection reset", &pgconn.PgError{Code: "08006"})
}

func constraintErr(name string) error {
	return infra.WrapRepoErr("duplicate", &pgconn.PgError{Code: "23505", ConstraintName: name})
}
