package request

import (
	"time"

	"travel-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateOfferRequest struct {
	Title        string    `json:"title" binding:"required,max=200"`
	TotalCoupons int       `json:"totalCoupons" binding:"required,gt=0"`
	Price        int64     `json:"price" binding:"required,gt=0"`
	EndDate      time.Time `json:"endDate" binding:"required"`
	BannerRef    string    `json:"bannerRef"`
	ReplaceLive  bool      `json:"replaceLive"`
}

func (r *CreateOfferRequest) ToInput() commands.CreateOfferInput {
	return commands.CreateOfferInput{
		Title:        r.Title,
		TotalCoupons: r.TotalCoupons,
		Price:        r.Price,
		EndDate:      r.EndDate,
		BannerRef:    r.BannerRef,
		ReplaceLive:  r.ReplaceLive,
	}
}

type AnnounceWinnersRequest struct {
	PackageID       uuid.UUID `json:"packageId" binding:"required"`
	NumberOfWinners int       `json:"numberOfWinners" binding:"required,gt=0"`
	CouponNumbers   []string  `json:"couponNumbers" binding:"omitempty,dive,len=6,numeric"`
}

func (r *AnnounceWinnersRequest) ToInput(offerID uuid.UUID) commands.AnnounceWinnersInput {
	return commands.AnnounceWinnersInput{
		OfferID:         offerID,
		PackageID:       r.PackageID,
		NumberOfWinners: r.NumberOfWinners,
		CouponNumbers:   r.CouponNumbers,
	}
}
