package uow

import (
	"context"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra/db"
	"travel-booking/internal/infra/repository"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type commandReads struct {
	uow  *PostgresUoW
	dbtx db.DBTX

	// Lazy-initialized repositories
	packageRepo     *repository.PackageRepository
	offerRepo       *repository.OfferRepository
	bookingRepo     *repository.BookingRepository
	idempotencyRepo *repository.IdempotencyRepository
}

func (r *commandReads) PackageByID(ctx context.Context, id uuid.UUID) (*shared.PackageSnapshot, error) {
	if r.packageRepo == nil {
		r.packageRepo = repository.NewPackageRepository()
	}

	p, err := r.packageRepo.FindByID(ctx, r.dbtx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.PackageSnapshot{
		ID:             p.ID(),
		Title:          p.Title(),
		Price:          p.Price(),
		TotalSeats:     p.TotalSeats(),
		AvailableSeats: p.AvailableSeats(),
	}
	return snapshot, nil
}

func (r *commandReads) OfferByID(ctx context.Context, id uuid.UUID) (*shared.OfferSnapshot, error) {
	if r.offerRepo == nil {
		r.offerRepo = repository.NewOfferRepository()
	}

	o, err := r.offerRepo.FindByID(ctx, r.dbtx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.OfferSnapshot{
		ID:           o.ID(),
		Title:        o.Title(),
		TotalCoupons: o.TotalCoupons(),
		Price:        o.Price(),
		EndDate:      o.EndDate(),
		Status:       string(o.Status()),
	}
	return snapshot, nil
}

func (r *commandReads) BookingByBookingID(ctx context.Context, bookingID booking.BookingID) (*shared.BookingSnapshot, error) {
	if r.bookingRepo == nil {
		r.bookingRepo = repository.NewBookingRepository()
	}

	b, err := r.bookingRepo.FindByBookingID(ctx, r.dbtx, bookingID)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.BookingSnapshot{
		ID:        b.ID(),
		BookingID: b.BookingID().String(),
		UserID:    b.UserID(),
		PackageID: b.PackageID(),
		Status:    string(b.Status()),
	}
	return snapshot, nil
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	if r.idempotencyRepo == nil {
		r.idempotencyRepo = repository.NewIdempotencyRepository()
	}
	return r.idempotencyRepo.Get(ctx, r.dbtx, key, userID)
}

func (r *commandReads) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	return r.uow.users.FindByEmail(ctx, r.dbtx, email)
}

func (r *commandReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	return r.uow.users.FindByID(ctx, r.dbtx, id)
}
