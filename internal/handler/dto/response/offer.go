package response

import (
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"
)

type OfferResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	TotalCoupons int     `json:"total_coupons"`
	SoldCoupons  int     `json:"sold_coupons"`
	Price        int64   `json:"price"`
	EndDate      int64   `json:"end_date"`
	Status       string  `json:"status"`
	BannerRef    string  `json:"banner_ref"`
	GrandPrize   *string `json:"grand_prize,omitempty"`
	CreatedAt    int64   `json:"created_at"`
}

func FromOfferView(v *queries.OfferView) *OfferResponse {
	res := &OfferResponse{}
	_ = copyView(res, v)
	return res
}

type WinnerResponse struct {
	CouponID     string `json:"coupon_id"`
	CouponNumber string `json:"coupon_number"`
	UserID       string `json:"user_id"`
}

type AnnounceWinnersResponse struct {
	OfferID   string           `json:"offer_id"`
	PackageID string           `json:"package_id"`
	PrizeName string           `json:"prize_name"`
	Mode      string           `json:"mode"`
	Requested int              `json:"requested"`
	Selected  int              `json:"selected"`
	Truncated bool             `json:"truncated"`
	Winners   []WinnerResponse `json:"winners"`
}

func FromAnnounceWinners(r *commands.AnnounceWinnersResult) *AnnounceWinnersResponse {
	winners := make([]WinnerResponse, len(r.Winners))
	for i, w := range r.Winners {
		winners[i] = WinnerResponse{
			CouponID:     w.CouponID.String(),
			CouponNumber: w.CouponNumber,
			UserID:       w.UserID.String(),
		}
	}
	return &AnnounceWinnersResponse{
		OfferID:   r.OfferID.String(),
		PackageID: r.PackageID.String(),
		PrizeName: r.PrizeName,
		Mode:      r.Mode,
		Requested: r.Requested,
		Selected:  r.Selected,
		Truncated: r.Truncated,
		Winners:   winners,
	}
}
