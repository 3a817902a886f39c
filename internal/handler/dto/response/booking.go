package response

import "travel-booking/internal/usecase/queries"

type StartBookingResponse struct {
	BookingID string                `json:"booking_id"`
	Order     *PaymentOrderResponse `json:"order"`
}

type ConfirmBookingResponse struct {
	Booking  *BookingResponse `json:"booking"`
	Replayed bool             `json:"replayed"`
}

type TravelerResponse struct {
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
}

type BookingResponse struct {
	BookingID      string             `json:"booking_id"`
	UserID         string             `json:"user_id"`
	PackageID      string             `json:"package_id"`
	PackageTitle   string             `json:"package_title"`
	PaymentID      string             `json:"payment_id"`
	PaymentMethod  string             `json:"payment_method"`
	PaymentType    string             `json:"payment_type"`
	Amount         int64              `json:"amount"`
	DiscountAmount int64              `json:"discount_amount"`
	Status         string             `json:"status"`
	SeatsBooked    int                `json:"seats_booked"`
	DiscountCode   *string            `json:"discount_code,omitempty"`
	Travelers      []TravelerResponse `json:"travelers"`
	CreatedAt      int64              `json:"created_at"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	res := &BookingResponse{}
	_ = copyView(res, v)
	if res.Travelers == nil {
		res.Travelers = []TravelerResponse{}
	}
	return res
}

type BookingListItemResponse struct {
	BookingID      string `json:"booking_id"`
	PackageID      string `json:"package_id"`
	PackageTitle   string `json:"package_title"`
	Amount         int64  `json:"amount"`
	DiscountAmount int64  `json:"discount_amount"`
	Status         string `json:"status"`
	SeatsBooked    int    `json:"seats_booked"`
	CreatedAt      int64  `json:"created_at"`
}

func FromBookingListItem(v *queries.BookingListItem) *BookingListItemResponse {
	return &BookingListItemResponse{
		BookingID:      v.BookingID,
		PackageID:      v.PackageID.String(),
		PackageTitle:   v.PackageTitle,
		Amount:         v.Amount,
		DiscountAmount: v.DiscountAmount,
		Status:         v.Status,
		SeatsBooked:    v.SeatsBooked,
		CreatedAt:      v.CreatedAt.Unix(),
	}
}
