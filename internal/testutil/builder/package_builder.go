//go:build unit || e2e

package builder

import (
	"time"

	"travel-booking/internal/domain/catalog"
	reqdto "travel-booking/internal/handler/dto/request"
	"travel-booking/internal/usecase/queries"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type PackageBuilder struct {
	ID             uuid.UUID
	Title          string
	Description    string
	Price          int64
	TotalSeats     int
	AvailableSeats int
	ImageURL       *string
	CreatedAt      time.Time
}

func NewPackageBuilder() *PackageBuilder {
	return &PackageBuilder{
		ID:             uuid.New(),
		Title:          "Goa Beach Escape",
		Description:    "Four nights by the sea",
		Price:          25000,
		TotalSeats:     20,
		AvailableSeats: 20,
		CreatedAt:      time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (p *PackageBuilder) With(mutate func(*PackageBuilder)) *PackageBuilder {
	mutate(p)
	return p
}

func (p *PackageBuilder) WithSeats(total, available int) *PackageBuilder {
	p.TotalSeats = total
	p.AvailableSeats = available
	return p
}

func (p *PackageBuilder) BuildDomain() *catalog.Package {
	return catalog.ReconstructPackage(p.ID, p.Title, p.Description, p.Price, p.TotalSeats, p.AvailableSeats, p.ImageURL, p.CreatedAt, p.CreatedAt)
}

func (p *PackageBuilder) BuildSnapshot() *shared.PackageSnapshot {
	return &shared.PackageSnapshot{
		ID:             p.ID,
		Title:          p.Title,
		Price:          p.Price,
		TotalSeats:     p.TotalSeats,
		AvailableSeats: p.AvailableSeats,
	}
}

func (p *PackageBuilder) BuildView() *queries.PackageView {
	return &queries.PackageView{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		Price:          p.Price,
		TotalSeats:     p.TotalSeats,
		AvailableSeats: p.AvailableSeats,
		ImageURL:       p.ImageURL,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.CreatedAt,
	}
}

func (p *PackageBuilder) BuildCreateDTO() reqdto.CreatePackageRequest {
	return reqdto.CreatePackageRequest{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		TotalSeats:  p.TotalSeats,
		ImageURL:    p.ImageURL,
	}
}
