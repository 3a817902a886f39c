package response

import "travel-booking/internal/usecase/commands"

type DiscountQuoteResponse struct {
	Code           string `json:"code"`
	DiscountAmount int64  `json:"discount_amount"`
	FinalAmount    int64  `json:"final_amount"`
}

func FromDiscountQuote(q *commands.DiscountQuote) *DiscountQuoteResponse {
	return &DiscountQuoteResponse{
		Code:           q.Code,
		DiscountAmount: q.DiscountAmount,
		FinalAmount:    q.FinalAmount,
	}
}
