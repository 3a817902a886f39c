package request

import (
	"travel-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type StartBookingRequest struct {
	PackageID   uuid.UUID `json:"packageId" binding:"required"`
	Seats       int       `json:"seats" binding:"required,gt=0"`
	PaymentType string    `json:"paymentType" binding:"required,oneof=full partial advance"`
	Amount      int64     `json:"amount" binding:"required,gt=0"`
}

func (r *StartBookingRequest) ToInput() commands.StartBookingInput {
	return commands.StartBookingInput{
		PackageID:   r.PackageID,
		Seats:       r.Seats,
		PaymentType: r.PaymentType,
		Amount:      r.Amount,
	}
}

type TravelerRequest struct {
	FullName string `json:"fullName" binding:"required,max=200"`
	Age      int    `json:"age" binding:"gt=0,lte=120"`
	Gender   string `json:"gender" binding:"omitempty,max=32"`
}

type ConfirmBookingRequest struct {
	BookingID    string            `json:"bookingId" binding:"required"`
	PackageID    uuid.UUID         `json:"packageId" binding:"required"`
	PaymentID    string            `json:"paymentId" binding:"required,max=100"`
	Amount       int64             `json:"amount" binding:"required,gt=0"`
	PaymentType  string            `json:"paymentType" binding:"required,oneof=full partial advance"`
	Seats        int               `json:"seats" binding:"required,gt=0"`
	// the per-seat count is checked by the domain
	Travelers    []TravelerRequest `json:"travelers" binding:"omitempty,dive"`
	CouponNumber *string           `json:"couponNumber" binding:"omitempty,len=6,numeric"`
	DiscountCode *string           `json:"discountCode" binding:"omitempty,max=32"`
}

func (r *ConfirmBookingRequest) ToInput() commands.ConfirmBookingInput {
	travelers := make([]commands.TravelerInput, len(r.Travelers))
	for i, t := range r.Travelers {
		travelers[i] = commands.TravelerInput{FullName: t.FullName, Age: t.Age, Gender: t.Gender}
	}
	return commands.ConfirmBookingInput{
		BookingID:    r.BookingID,
		PackageID:    r.PackageID,
		PaymentID:    r.PaymentID,
		Amount:       r.Amount,
		PaymentType:  r.PaymentType,
		Seats:        r.Seats,
		Travelers:    travelers,
		CouponNumber: r.CouponNumber,
		DiscountCode: r.DiscountCode,
	}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Confirmed Canceled Completed"`
}
