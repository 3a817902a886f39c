package queries

import (
	"time"

	"github.com/google/uuid"
)

// PackageView represents read-optimized package data
type PackageView struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Price          int64     `json:"price"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	ImageURL       *string   `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OfferView represents read-optimized offer data
type OfferView struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	TotalCoupons int       `json:"total_coupons"`
	SoldCoupons  int       `json:"sold_coupons"`
	Price        int64     `json:"price"`
	EndDate      time.Time `json:"end_date"`
	Status       string    `json:"status"`
	BannerRef    string    `json:"banner_ref"`
	GrandPrize   *string   `json:"grand_prize,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CouponView represents a purchased lottery coupon
type CouponView struct {
	ID                  uuid.UUID  `json:"id"`
	OfferID             uuid.UUID  `json:"offer_id"`
	OfferTitle          string     `json:"offer_title"`
	UserID              uuid.UUID  `json:"user_id"`
	UserEmail           string     `json:"user_email"`
	CouponNumber        string     `json:"coupon_number"`
	PaymentID           string     `json:"payment_id"`
	IsWinner            bool       `json:"is_winner"`
	AssociatedPackageID *uuid.UUID `json:"associated_package_id,omitempty"`
	PrizeName           *string    `json:"prize_name,omitempty"`
	WonAt               *time.Time `json:"won_at,omitempty"`
	IsUsed              bool       `json:"is_used"`
	UsedAt              *time.Time `json:"used_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

type TravelerView struct {
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
}

// BookingView represents a booking with its package and travelers
type BookingView struct {
	ID             uuid.UUID      `json:"id"`
	BookingID      string         `json:"booking_id"`
	UserID         uuid.UUID      `json:"user_id"`
	UserEmail      string         `json:"user_email"`
	PackageID      uuid.UUID      `json:"package_id"`
	PackageTitle   string         `json:"package_title"`
	PaymentID      string         `json:"payment_id"`
	PaymentMethod  string         `json:"payment_method"`
	PaymentType    string         `json:"payment_type"`
	Amount         int64          `json:"amount"`
	DiscountAmount int64          `json:"discount_amount"`
	Status         string         `json:"status"`
	SeatsBooked    int            `json:"seats_booked"`
	CouponID       *uuid.UUID     `json:"coupon_id,omitempty"`
	DiscountCode   *string        `json:"discount_code,omitempty"`
	Travelers      []TravelerView `json:"travelers"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type BookingListItem struct {
	ID             uuid.UUID `json:"id"`
	BookingID      string    `json:"booking_id"`
	UserID         uuid.UUID `json:"user_id"`
	PackageID      uuid.UUID `json:"package_id"`
	PackageTitle   string    `json:"package_title"`
	Amount         int64     `json:"amount"`
	DiscountAmount int64     `json:"discount_amount"`
	Status         string    `json:"status"`
	SeatsBooked    int       `json:"seats_booked"`
	CreatedAt      time.Time `json:"created_at"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	Capabilities []string  `json:"capabilities"` // derived from Role
}

// Page carries one keyset page of results.
type Page[T any] struct {
	Items []T
	Next  *Cursor
}
