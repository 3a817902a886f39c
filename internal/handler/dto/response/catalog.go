package response

import "travel-booking/internal/usecase/queries"

type PackageResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Price          int64   `json:"price"`
	TotalSeats     int     `json:"total_seats"`
	AvailableSeats int     `json:"available_seats"`
	ImageURL       *string `json:"image_url,omitempty"`
	CreatedAt      int64   `json:"created_at"`
	UpdatedAt      int64   `json:"updated_at"`
}

func FromPackageView(v *queries.PackageView) *PackageResponse {
	res := &PackageResponse{}
	_ = copyView(res, v)
	return res
}
