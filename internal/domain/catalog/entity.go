package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTitle       = errors.New("package title must be 1-200 characters")
	ErrInvalidPrice       = errors.New("package price must be positive")
	ErrInvalidTotalSeats  = errors.New("total seats cannot be negative")
	ErrInvalidSeatCount   = errors.New("seat count must be positive")
	ErrInsufficientSeats  = errors.New("insufficient seats available")
	ErrSeatsAlreadyBooked = errors.New("total seats cannot drop below seats already booked")
)

// Package is a sellable itinerary with a finite seat inventory.
// 0 <= availableSeats <= totalSeats always holds.
type Package struct {
	id             uuid.UUID
	title          string
	description    string
	price          int64
	totalSeats     int
	availableSeats int
	imageURL       *string
	createdAt      time.Time
	updatedAt      time.Time
}

func NewPackage(title, description string, price int64, totalSeats int, imageURL *string, now time.Time) (*Package, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 200 {
		return nil, ErrInvalidTitle
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	if totalSeats < 0 {
		return nil, ErrInvalidTotalSeats
	}
	return &Package{
		id:             uuid.New(),
		title:          title,
		description:    strings.TrimSpace(description),
		price:          price,
		totalSeats:     totalSeats,
		availableSeats: totalSeats,
		imageURL:       imageURL,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructPackage(id uuid.UUID, title, description string, price int64, totalSeats, availableSeats int, imageURL *string, createdAt, updatedAt time.Time) *Package {
	return &Package{
		id:             id,
		title:          title,
		description:    description,
		price:          price,
		totalSeats:     totalSeats,
		availableSeats: availableSeats,
		imageURL:       imageURL,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// CheckReservable validates a reservation request against the current snapshot.
// The authoritative check is the conditional update in the store.
func (p *Package) CheckReservable(count int) error {
	if count <= 0 {
		return ErrInvalidSeatCount
	}
	if p.availableSeats < count {
		return ErrInsufficientSeats
	}
	return nil
}

// AdjustTotalSeats changes the business ceiling and moves availability by the same delta.
func (p *Package) AdjustTotalSeats(newTotal int, now time.Time) error {
	if newTotal < 0 {
		return ErrInvalidTotalSeats
	}
	booked := p.totalSeats - p.availableSeats
	if newTotal < booked {
		return ErrSeatsAlreadyBooked
	}
	p.availableSeats = newTotal - booked
	p.totalSeats = newTotal
	p.updatedAt = now
	return nil
}

func (p *Package) BookedSeats() int { return p.totalSeats - p.availableSeats }

func (p *Package) ID() uuid.UUID        { return p.id }
func (p *Package) Title() string        { return p.title }
func (p *Package) Description() string  { return p.description }
func (p *Package) Price() int64         { return p.price }
func (p *Package) TotalSeats() int      { return p.totalSeats }
func (p *Package) AvailableSeats() int  { return p.availableSeats }
func (p *Package) ImageURL() *string    { return p.imageURL }
func (p *Package) CreatedAt() time.Time { return p.createdAt }
func (p *Package) UpdatedAt() time.Time { return p.updatedAt }
