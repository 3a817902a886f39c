//go:build unit || e2e

package builder

import (
	"time"

	"travel-booking/internal/domain/offer"
	reqdto "travel-booking/internal/handler/dto/request"
	"travel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type OfferBuilder struct {
	ID           uuid.UUID
	Title        string
	TotalCoupons int
	SoldCoupons  int
	Price        int64
	EndDate      time.Time
	Status       offer.Status
	BannerRef    string
	GrandPrize   *string
	CreatedAt    time.Time
}

func NewOfferBuilder() *OfferBuilder {
	return &OfferBuilder{
		ID:           uuid.New(),
		Title:        "Monsoon Mega Draw",
		TotalCoupons: 1000,
		Price:        499,
		EndDate:      time.Date(2026, 12, 31, 18, 0, 0, 0, time.UTC),
		Status:       offer.StatusLive,
		BannerRef:    "banners/monsoon.png",
		CreatedAt:    time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (o *OfferBuilder) With(mutate func(*OfferBuilder)) *OfferBuilder {
	mutate(o)
	return o
}

func (o *OfferBuilder) Ended() *OfferBuilder {
	o.Status = offer.StatusEnded
	return o
}

func (o *OfferBuilder) BuildDomain() *offer.Offer {
	return offer.ReconstructOffer(o.ID, o.Title, o.TotalCoupons, o.Price, o.EndDate, o.Status, o.BannerRef, o.GrandPrize, o.CreatedAt, o.CreatedAt)
}

func (o *OfferBuilder) BuildView() *queries.OfferView {
	return &queries.OfferView{
		ID:           o.ID,
		Title:        o.Title,
		TotalCoupons: o.TotalCoupons,
		SoldCoupons:  o.SoldCoupons,
		Price:        o.Price,
		EndDate:      o.EndDate,
		Status:       string(o.Status),
		BannerRef:    o.BannerRef,
		GrandPrize:   o.GrandPrize,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.CreatedAt,
	}
}

func (o *OfferBuilder) BuildCreateDTO() reqdto.CreateOfferRequest {
	return reqdto.CreateOfferRequest{
		Title:        o.Title,
		TotalCoupons: o.TotalCoupons,
		Price:        o.Price,
		EndDate:      o.EndDate,
		BannerRef:    o.BannerRef,
	}
}
