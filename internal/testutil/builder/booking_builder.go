//go:build unit || e2e

package builder

import (
	"time"

	"travel-booking/internal/domain/booking"
	reqdto "travel-booking/internal/handler/dto/request"
	"travel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID             uuid.UUID
	BookingID      string
	UserID         uuid.UUID
	PackageID      uuid.UUID
	PaymentID      string
	PaymentMethod  string
	PaymentType    booking.PaymentType
	Amount         int64
	DiscountAmount int64
	Status         booking.Status
	Seats          int
	CouponNumber   *string
	DiscountCode   *string
	SeatsReleased  bool
	CreatedAt      time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:            uuid.New(),
		BookingID:     "OKB000001",
		UserID:        uuid.New(),
		PackageID:     uuid.New(),
		PaymentID:     "pay_booking_1",
		PaymentMethod: "card",
		PaymentType:   booking.PaymentFull,
		Amount:        50000,
		Status:        booking.StatusConfirmed,
		Seats:         2,
		CreatedAt:     time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) travelers() []booking.Traveler {
	out := make([]booking.Traveler, b.Seats)
	for i := range out {
		out[i] = booking.Traveler{FullName: "Traveler " + string(rune('A'+i)), Age: 30 + i, Gender: "female"}
	}
	return out
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.Reconstruct(booking.ReconstructParams{
		ID:             b.ID,
		BookingID:      booking.BookingID(b.BookingID),
		UserID:         b.UserID,
		PackageID:      b.PackageID,
		PaymentID:      b.PaymentID,
		PaymentMethod:  b.PaymentMethod,
		Amount:         b.Amount,
		DiscountAmount: b.DiscountAmount,
		PaymentType:    b.PaymentType,
		Status:         b.Status,
		SeatsBooked:    b.Seats,
		Travelers:      b.travelers(),
		DiscountCode:   b.DiscountCode,
		SeatsReleased:  b.SeatsReleased,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.CreatedAt,
	})
}

func (b *BookingBuilder) BuildConfirmDTO() reqdto.ConfirmBookingRequest {
	travelers := make([]reqdto.TravelerRequest, 0, b.Seats)
	for _, t := range b.travelers() {
		travelers = append(travelers, reqdto.TravelerRequest{FullName: t.FullName, Age: t.Age, Gender: t.Gender})
	}
	return reqdto.ConfirmBookingRequest{
		BookingID:    b.BookingID,
		PackageID:    b.PackageID,
		PaymentID:    b.PaymentID,
		Amount:       b.Amount,
		PaymentType:  string(b.PaymentType),
		Seats:        b.Seats,
		Travelers:    travelers,
		CouponNumber: b.CouponNumber,
		DiscountCode: b.DiscountCode,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	travelers := make([]queries.TravelerView, 0, b.Seats)
	for _, t := range b.travelers() {
		travelers = append(travelers, queries.TravelerView{FullName: t.FullName, Age: t.Age, Gender: t.Gender})
	}
	return &queries.BookingView{
		ID:             b.ID,
		BookingID:      b.BookingID,
		UserID:         b.UserID,
		UserEmail:      "test@example.com",
		PackageID:      b.PackageID,
		PackageTitle:   "Goa Beach Escape",
		PaymentID:      b.PaymentID,
		PaymentMethod:  b.PaymentMethod,
		PaymentType:    string(b.PaymentType),
		Amount:         b.Amount,
		DiscountAmount: b.DiscountAmount,
		Status:         string(b.Status),
		SeatsBooked:    b.Seats,
		DiscountCode:   b.DiscountCode,
		Travelers:      travelers,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.CreatedAt,
	}
}
