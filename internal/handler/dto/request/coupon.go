package request

import "github.com/google/uuid"

type ConfirmCouponRequest struct {
	PaymentID string `json:"paymentId" binding:"required,max=100"`
}

type RedemptionPreviewRequest struct {
	CouponNumber string    `json:"couponNumber" binding:"required,len=6,numeric"`
	PackageID    uuid.UUID `json:"packageId" binding:"required"`
	BookingTotal int64     `json:"bookingTotal" binding:"required,gt=0"`
}
