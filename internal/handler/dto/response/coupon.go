package response

import (
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"
)

type PaymentOrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

func FromPaymentOrder(o *commands.PaymentOrder) *PaymentOrderResponse {
	return &PaymentOrderResponse{
		OrderID:  o.OrderID,
		Amount:   o.Amount,
		Currency: o.Currency,
		Receipt:  o.Receipt,
	}
}

type ConfirmCouponResponse struct {
	CouponID     string `json:"coupon_id"`
	CouponNumber string `json:"coupon_number"`
	Replayed     bool   `json:"replayed"`
}

type CouponResponse struct {
	ID                  string  `json:"id"`
	OfferID             string  `json:"offer_id"`
	OfferTitle          string  `json:"offer_title"`
	UserEmail           string  `json:"user_email,omitempty"`
	CouponNumber        string  `json:"coupon_number"`
	IsWinner            bool    `json:"is_winner"`
	AssociatedPackageID *string `json:"associated_package_id,omitempty"`
	PrizeName           *string `json:"prize_name,omitempty"`
	WonAt               *int64  `json:"won_at,omitempty"`
	IsUsed              bool    `json:"is_used"`
	CreatedAt           int64   `json:"created_at"`
}

func FromCouponView(v *queries.CouponView) *CouponResponse {
	res := &CouponResponse{
		ID:           v.ID.String(),
		OfferID:      v.OfferID.String(),
		OfferTitle:   v.OfferTitle,
		UserEmail:    v.UserEmail,
		CouponNumber: v.CouponNumber,
		IsWinner:     v.IsWinner,
		PrizeName:    v.PrizeName,
		IsUsed:       v.IsUsed,
		CreatedAt:    v.CreatedAt.Unix(),
	}
	if v.AssociatedPackageID != nil {
		id := v.AssociatedPackageID.String()
		res.AssociatedPackageID = &id
	}
	if v.WonAt != nil {
		ts := v.WonAt.Unix()
		res.WonAt = &ts
	}
	return res
}

type RedemptionPreviewResponse struct {
	CouponID       string `json:"coupon_id"`
	DiscountAmount int64  `json:"discount_amount"`
}
