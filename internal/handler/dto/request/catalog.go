package request

import "travel-booking/internal/usecase/commands"

type CreatePackageRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"max=5000"`
	Price       int64   `json:"price" binding:"required,gt=0"`
	TotalSeats  int     `json:"totalSeats" binding:"gte=0"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url"`
}

func (r *CreatePackageRequest) ToInput() commands.CreatePackageInput {
	return commands.CreatePackageInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		TotalSeats:  r.TotalSeats,
		ImageURL:    r.ImageURL,
	}
}

type AdjustSeatsRequest struct {
	// pointer so that zero passes the required check
	TotalSeats *int `json:"totalSeats" binding:"required,gte=0"`
}
