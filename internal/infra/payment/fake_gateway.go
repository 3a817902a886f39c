package payment

import (
	"context"
	"sync"

	"travel-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

// FakeGateway accepts every order; used in development and tests.
type FakeGateway struct {
	currency string

	mu      sync.Mutex
	methods map[string]string
}

func NewFakeGateway(currency string) *FakeGateway {
	return &FakeGateway{currency: currency, methods: map[string]string{}}
}

func (f *FakeGateway) CreateOrder(_ context.Context, amount int64, receipt string) (*commands.PaymentOrder, error) {
	return &commands.PaymentOrder{
		OrderID:  "order_" + uuid.NewString()[:14],
		Amount:   amount,
		Currency: f.currency,
		Receipt:  receipt,
	}, nil
}

// SetMethod registers the instrument PaymentMethod reports for paymentID.
func (f *FakeGateway) SetMethod(paymentID, method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.methods[paymentID] = method
}

func (f *FakeGateway) PaymentMethod(_ context.Context, paymentID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.methods[paymentID]; ok {
		return m, nil
	}
	return "card", nil
}
