package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots keep commands independent of read-side view types

type PackageSnapshot struct {
	ID             uuid.UUID
	Title          string
	Price          int64
	TotalSeats     int
	AvailableSeats int
}

type OfferSnapshot struct {
	ID           uuid.UUID
	Title        string
	TotalCoupons int
	Price        int64
	EndDate      time.Time
	Status       string
}

type BookingSnapshot struct {
	ID        uuid.UUID
	BookingID string
	UserID    uuid.UUID
	PackageID uuid.UUID
	Status    string
}

// BookingStart binds a minted booking id to the user and package it was issued for.
type BookingStart struct {
	BookingID string
	UserID    uuid.UUID
	PackageID uuid.UUID
	OrderID   string
	Amount    int64
	Seats     int
	CreatedAt time.Time
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	Role         string
	IsActive     bool
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key          uuid.UUID
	UserID       uuid.UUID
	Endpoint     string
	Status       string
	RequestHash  string
	ResponseBody []byte
	ExpiresAt    time.Time
}

const (
	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	RunAt    time.Time
	Attempts int
}
