package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSeats         = errors.New("seats booked must be positive")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrPaymentIDRequired    = errors.New("payment id is required")
	ErrInvalidTransition    = errors.New("booking status transition not allowed")
	ErrDiscountExceedsTotal = errors.New("discount exceeds booking amount")
)

const UnknownPaymentMethod = "unknown"

type Booking struct {
	id             uuid.UUID
	bookingID      BookingID
	userID         uuid.UUID
	packageID      uuid.UUID
	paymentID      string
	paymentMethod  string
	amount         int64
	discountAmount int64
	paymentType    PaymentType
	status         Status
	seatsBooked    int
	travelers      []Traveler
	couponID       *uuid.UUID
	discountCode   *string
	seatsReleased  bool
	createdAt      time.Time
	updatedAt      time.Time
}

type NewBookingParams struct {
	BookingID     BookingID
	UserID        uuid.UUID
	PackageID     uuid.UUID
	PaymentID     string
	PaymentMethod string
	Amount        int64
	PaymentType   PaymentType
	SeatsBooked   int
	Travelers     []Traveler
}

// NewConfirmedBooking builds a booking for a captured payment.
func NewConfirmedBooking(p NewBookingParams, now time.Time) (*Booking, error) {
	if p.SeatsBooked <= 0 {
		return nil, ErrInvalidSeats
	}
	if p.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(p.PaymentID) == "" {
		return nil, ErrPaymentIDRequired
	}
	if err := ValidateTravelers(p.SeatsBooked, p.Travelers); err != nil {
		return nil, err
	}
	method := strings.TrimSpace(p.PaymentMethod)
	if method == "" {
		method = UnknownPaymentMethod
	}
	return &Booking{
		id:            uuid.New(),
		bookingID:     p.BookingID,
		userID:        p.UserID,
		packageID:     p.PackageID,
		paymentID:     p.PaymentID,
		paymentMethod: method,
		amount:        p.Amount,
		paymentType:   p.PaymentType,
		status:        StatusConfirmed,
		seatsBooked:   p.SeatsBooked,
		travelers:     append([]Traveler(nil), p.Travelers...),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

type ReconstructParams struct {
	ID             uuid.UUID
	BookingID      BookingID
	UserID         uuid.UUID
	PackageID      uuid.UUID
	PaymentID      string
	PaymentMethod  string
	Amount         int64
	DiscountAmount int64
	PaymentType    PaymentType
	Status         Status
	SeatsBooked    int
	Travelers      []Traveler
	CouponID       *uuid.UUID
	DiscountCode   *string
	SeatsReleased  bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func Reconstruct(p ReconstructParams) *Booking {
	return &Booking{
		id:             p.ID,
		bookingID:      p.BookingID,
		userID:         p.UserID,
		packageID:      p.PackageID,
		paymentID:      p.PaymentID,
		paymentMethod:  p.PaymentMethod,
		amount:         p.Amount,
		discountAmount: p.DiscountAmount,
		paymentType:    p.PaymentType,
		status:         p.Status,
		seatsBooked:    p.SeatsBooked,
		travelers:      p.Travelers,
		couponID:       p.CouponID,
		discountCode:   p.DiscountCode,
		seatsReleased:  p.SeatsReleased,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}
}

// ApplyDiscount accumulates a discount from a promo code or a redeemed coupon.
func (b *Booking) ApplyDiscount(amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if b.discountAmount+amount > b.amount {
		return ErrDiscountExceedsTotal
	}
	b.discountAmount += amount
	return nil
}

func (b *Booking) AttachCoupon(couponID uuid.UUID) {
	b.couponID = &couponID
}

func (b *Booking) AttachDiscountCode(code string) {
	b.discountCode = &code
}

// RemainingAmount is what is still discountable after earlier discounts.
func (b *Booking) RemainingAmount() int64 {
	return b.amount - b.discountAmount
}

// Cancel reports whether the status changed. Canceling twice is a no-op.
func (b *Booking) Cancel(now time.Time) (bool, error) {
	if b.status == StatusCanceled {
		return false, nil
	}
	if !b.status.CanTransitionTo(StatusCanceled) {
		return false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.status, StatusCanceled)
	}
	b.status = StatusCanceled
	b.updatedAt = now
	return true, nil
}

func (b *Booking) TransitionTo(next Status, now time.Time) error {
	if b.status == next {
		return nil
	}
	if !b.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.status, next)
	}
	b.status = next
	b.updatedAt = now
	return nil
}

// NeedsSeatRelease is true for a canceled booking whose seats were not returned yet.
func (b *Booking) NeedsSeatRelease() bool {
	return b.status == StatusCanceled && !b.seatsReleased
}

func (b *Booking) MarkSeatsReleased() {
	b.seatsReleased = true
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) BookingID() BookingID     { return b.bookingID }
func (b *Booking) UserID() uuid.UUID        { return b.userID }
func (b *Booking) PackageID() uuid.UUID     { return b.packageID }
func (b *Booking) PaymentID() string        { return b.paymentID }
func (b *Booking) PaymentMethod() string    { return b.paymentMethod }
func (b *Booking) Amount() int64            { return b.amount }
func (b *Booking) DiscountAmount() int64    { return b.discountAmount }
func (b *Booking) PaymentType() PaymentType { return b.paymentType }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) SeatsBooked() int         { return b.seatsBooked }
func (b *Booking) Travelers() []Traveler    { return b.travelers }
func (b *Booking) CouponID() *uuid.UUID     { return b.couponID }
func (b *Booking) DiscountCode() *string    { return b.discountCode }
func (b *Booking) SeatsReleased() bool      { return b.seatsReleased }
func (b *Booking) CreatedAt() time.Time     { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time     { return b.updatedAt }
