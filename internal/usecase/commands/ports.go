package commands

import (
	"context"
	"io"
)

// Outbound ports. Adapters live in internal/infra.

type PaymentOrder struct {
	OrderID  string
	Amount   int64
	Currency string
	Receipt  string
}

type PaymentGateway interface {
	// CreateOrder opens a payment order for amount (minor units) tagged with receipt.
	CreateOrder(ctx context.Context, amount int64, receipt string) (*PaymentOrder, error)
	// PaymentMethod resolves the instrument used for a captured payment, e.g. "card" or "upi".
	PaymentMethod(ctx context.Context, paymentID string) (string, error)
}

type ObjectStorage interface {
	// Put stores body under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

type LiveOfferInvalidator interface {
	InvalidateLive(ctx context.Context) error
}

const (
	JobKindEmail = "email"

	TopicBookingConfirmed = "booking_confirmed"
	TopicWinnerEmail      = "winner_email"
)
