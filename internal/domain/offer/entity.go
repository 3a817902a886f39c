package offer

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTitle        = errors.New("offer title must be 1-200 characters")
	ErrInvalidTotalCoupons = errors.New("total coupons must be positive")
	ErrInvalidPrice        = errors.New("coupon price must be positive")
	ErrEndDateInPast       = errors.New("offer end date must be in the future")
	ErrOfferNotLive        = errors.New("offer is not live")
	ErrOfferExpired        = errors.New("offer has passed its end date")
)

type Status string

const (
	StatusLive  Status = "live"
	StatusEnded Status = "ended"
)

func (s Status) IsValid() bool {
	return s == StatusLive || s == StatusEnded
}

// Offer is a time-boxed campaign selling lottery coupons.
type Offer struct {
	id           uuid.UUID
	title        string
	totalCoupons int
	price        int64
	endDate      time.Time
	status       Status
	bannerRef    string
	grandPrize   *string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewOffer(title string, totalCoupons int, price int64, endDate time.Time, bannerRef string, now time.Time) (*Offer, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 200 {
		return nil, ErrInvalidTitle
	}
	if totalCoupons <= 0 {
		return nil, ErrInvalidTotalCoupons
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	if !endDate.After(now) {
		return nil, ErrEndDateInPast
	}
	return &Offer{
		id:           uuid.New(),
		title:        title,
		totalCoupons: totalCoupons,
		price:        price,
		endDate:      endDate,
		status:       StatusLive,
		bannerRef:    strings.TrimSpace(bannerRef),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructOffer(id uuid.UUID, title string, totalCoupons int, price int64, endDate time.Time, status Status, bannerRef string, grandPrize *string, createdAt, updatedAt time.Time) *Offer {
	return &Offer{
		id:           id,
		title:        title,
		totalCoupons: totalCoupons,
		price:        price,
		endDate:      endDate,
		status:       status,
		bannerRef:    bannerRef,
		grandPrize:   grandPrize,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// End is idempotent and legal from any status. It reports whether the status changed.
func (o *Offer) End(now time.Time) bool {
	if o.status == StatusEnded {
		return false
	}
	o.status = StatusEnded
	o.updatedAt = now
	return true
}

// AwardGrandPrize sets the grand prize if none is recorded yet.
func (o *Offer) AwardGrandPrize(prize string, now time.Time) bool {
	if o.grandPrize != nil && *o.grandPrize != "" {
		return false
	}
	o.grandPrize = &prize
	o.updatedAt = now
	return true
}

func (o *Offer) IsExpired(now time.Time) bool {
	return !now.Before(o.endDate)
}

// CheckPurchasable gates new coupon orders.
func (o *Offer) CheckPurchasable(now time.Time) error {
	if o.status != StatusLive {
		return ErrOfferNotLive
	}
	if o.IsExpired(now) {
		return ErrOfferExpired
	}
	return nil
}

func (o *Offer) ID() uuid.UUID        { return o.id }
func (o *Offer) Title() string        { return o.title }
func (o *Offer) TotalCoupons() int    { return o.totalCoupons }
func (o *Offer) Price() int64         { return o.price }
func (o *Offer) EndDate() time.Time   { return o.endDate }
func (o *Offer) Status() Status       { return o.status }
func (o *Offer) BannerRef() string    { return o.bannerRef }
func (o *Offer) GrandPrize() *string  { return o.grandPrize }
func (o *Offer) CreatedAt() time.Time { return o.createdAt }
func (o *Offer) UpdatedAt() time.Time { return o.updatedAt }
