package request

import (
	"time"

	"travel-booking/internal/usecase/commands"
)

type ApplyDiscountRequest struct {
	Code       string `json:"code" binding:"required,max=32"`
	OrderTotal int64  `json:"orderTotal" binding:"required,gt=0"`
}

type CreateDiscountRequest struct {
	Code              string    `json:"code" binding:"required,max=32"`
	Kind              string    `json:"kind" binding:"required,oneof=flat percentage"`
	Value             int64     `json:"value" binding:"required,gt=0"`
	MaxDiscount       *int64    `json:"maxDiscount" binding:"omitempty,gt=0"`
	MinOrderAmount    int64     `json:"minOrderAmount" binding:"gte=0"`
	ExpiresAt         time.Time `json:"expiresAt" binding:"required"`
	UsageLimitPerUser int       `json:"usageLimitPerUser" binding:"required,gt=0"`
}

func (r *CreateDiscountRequest) ToInput() commands.CreateDiscountInput {
	return commands.CreateDiscountInput{
		Code:              r.Code,
		Kind:              r.Kind,
		Value:             r.Value,
		MaxDiscount:       r.MaxDiscount,
		MinOrderAmount:    r.MinOrderAmount,
		ExpiresAt:         r.ExpiresAt,
		UsageLimitPerUser: r.UsageLimitPerUser,
	}
}
