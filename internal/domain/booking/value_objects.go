package booking

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidBookingID   = errors.New("invalid booking id")
	ErrInvalidPaymentType = errors.New("payment type must be full, partial or advance")
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrInvalidTraveler    = errors.New("invalid traveler")
	ErrTravelerMismatch   = errors.New("traveler count must match seats booked")
)

const bookingIDPrefix = "OKB"

var bookingIDRegex = regexp.MustCompile(`^OKB[0-9]{6,}$`)

type BookingID string

// FormatBookingID renders a sequencer value, e.g. 123 -> OKB000123.
func FormatBookingID(seq int64) BookingID {
	return BookingID(fmt.Sprintf("%s%06d", bookingIDPrefix, seq))
}

func NewBookingID(s string) (BookingID, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if !bookingIDRegex.MatchString(s) {
		return "", ErrInvalidBookingID
	}
	return BookingID(s), nil
}

func (b BookingID) String() string {
	return string(b)
}

type PaymentType string

const (
	PaymentFull    PaymentType = "full"
	PaymentPartial PaymentType = "partial"
	PaymentAdvance PaymentType = "advance"
)

func NewPaymentType(s string) (PaymentType, error) {
	switch p := PaymentType(strings.ToLower(strings.TrimSpace(s))); p {
	case PaymentFull, PaymentPartial, PaymentAdvance:
		return p, nil
	default:
		return "", ErrInvalidPaymentType
	}
}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCanceled  Status = "Canceled"
	StatusCompleted Status = "Completed"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusCanceled},
}

func NewStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

type Traveler struct {
	FullName string
	Age      int
	Gender   string
}

func NewTraveler(fullName string, age int, gender string) (Traveler, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" || len(fullName) > 200 {
		return Traveler{}, fmt.Errorf("%w: full name is required", ErrInvalidTraveler)
	}
	if age <= 0 || age > 120 {
		return Traveler{}, fmt.Errorf("%w: age out of range", ErrInvalidTraveler)
	}
	return Traveler{FullName: fullName, Age: age, Gender: strings.TrimSpace(gender)}, nil
}

// ValidateTravelers requires one traveler per seat when more than one seat is booked.
func ValidateTravelers(seats int, travelers []Traveler) error {
	if seats > 1 && len(travelers) != seats {
		return ErrTravelerMismatch
	}
	if seats == 1 && len(travelers) > 1 {
		return ErrTravelerMismatch
	}
	return nil
}
