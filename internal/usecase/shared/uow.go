package shared

import (
	"context"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/domain/catalog"
	"travel-booking/internal/domain/coupon"
	"travel-booking/internal/domain/discount"
	"travel-booking/internal/domain/offer"
	"travel-booking/internal/domain/user"
	"travel-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Packages() PackageRepository
	Offers() OfferRepository
	Coupons() CouponRepository
	Counters() CounterRepository
	Bookings() BookingRepository
	BookingStarts() BookingStartRepository
	Discounts() DiscountRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	PackageByID(ctx context.Context, id uuid.UUID) (*PackageSnapshot, error)
	OfferByID(ctx context.Context, id uuid.UUID) (*OfferSnapshot, error)
	BookingByBookingID(ctx context.Context, bookingID booking.BookingID) (*BookingSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
}

type PackageRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *catalog.Package) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*catalog.Package, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*catalog.Package, error)
	// ReserveSeats reports false when the row is missing or has too few seats.
	ReserveSeats(ctx context.Context, tx db.DBTX, id uuid.UUID, count int) (bool, error)
	ReleaseSeats(ctx context.Context, tx db.DBTX, id uuid.UUID, count int) error
	UpdateSeats(ctx context.Context, tx db.DBTX, p *catalog.Package) error
	UpdateImage(ctx context.Context, tx db.DBTX, id uuid.UUID, imageURL string, at time.Time) error
}

type OfferRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *offer.Offer) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*offer.Offer, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*offer.Offer, error)
	FindLiveForUpdate(ctx context.Context, tx db.DBTX) (*offer.Offer, error)
	Save(ctx context.Context, tx db.DBTX, o *offer.Offer) error
	EndExpired(ctx context.Context, tx db.DBTX, now time.Time) ([]uuid.UUID, error)
}

type CouponRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *coupon.Coupon) error
	FindByPaymentID(ctx context.Context, tx db.DBTX, paymentID string) (*coupon.Coupon, error)
	LockEligible(ctx context.Context, tx db.DBTX, offerID uuid.UUID) ([]*coupon.Coupon, error)
	LockByNumbers(ctx context.Context, tx db.DBTX, offerID uuid.UUID, numbers []coupon.Number) ([]*coupon.Coupon, error)
	// ListByNumberForUser returns every coupon of userID carrying number, oldest win first.
	ListByNumberForUser(ctx context.Context, tx db.DBTX, number coupon.Number, userID uuid.UUID, lock bool) ([]*coupon.Coupon, error)
	MarkWinner(ctx context.Context, tx db.DBTX, c *coupon.Coupon) (bool, error)
	MarkUsed(ctx context.Context, tx db.DBTX, c *coupon.Coupon) (bool, error)
}

type CounterRepository interface {
	Next(ctx context.Context, tx db.DBTX, name string) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	FindByBookingID(ctx context.Context, tx db.DBTX, bookingID booking.BookingID) (*booking.Booking, error)
	FindByBookingIDForUpdate(ctx context.Context, tx db.DBTX, bookingID booking.BookingID) (*booking.Booking, error)
	Save(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	Delete(ctx context.Context, tx db.DBTX, bookingID booking.BookingID) (bool, error)
}

type BookingStartRepository interface {
	Create(ctx context.Context, tx db.DBTX, s *BookingStart) error
	// FindForUpdate serializes confirmations of one booking id.
	FindForUpdate(ctx context.Context, tx db.DBTX, bookingID booking.BookingID) (*BookingStart, error)
}

type DiscountRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *discount.Coupon) error
	FindByCode(ctx context.Context, tx db.DBTX, code discount.Code) (*discount.Coupon, error)
	UsageCount(ctx context.Context, tx db.DBTX, couponID, userID uuid.UUID) (int, error)
	// LockUsage locks (creating if needed) the usage row and returns its count.
	LockUsage(ctx context.Context, tx db.DBTX, couponID, userID uuid.UUID) (int, error)
	IncrementUsage(ctx context.Context, tx db.DBTX, couponID, userID uuid.UUID) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) (*IdempotencyRecord, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, responseBody []byte) error
	ClaimExpiredIdempotencyKey(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	ClaimDue(ctx context.Context, tx db.DBTX, now time.Time, limit int) ([]NotificationJob, error)
	UpdateJobStatus(ctx context.Context, tx db.DBTX, jobID uuid.UUID, status string, lastError *string) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) error
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID, at time.Time) error
}
