package discount

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCode            = errors.New("invalid discount code format")
	ErrInvalidDiscountAmount  = errors.New("flat discount must be positive")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 1 and 100")
	ErrInvalidMaxDiscount     = errors.New("max discount must be positive")
	ErrInvalidKind            = errors.New("discount type must be flat or percentage")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

// NewCode normalises to trimmed upper case before validating.
func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type Kind string

const (
	KindFlat       Kind = "flat"
	KindPercentage Kind = "percentage"
)

func NewKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindFlat, KindPercentage:
		return k, nil
	default:
		return "", ErrInvalidKind
	}
}

// Discount holds either a flat amount or a whole percentage with an optional cap.
type Discount struct {
	kind        Kind
	value       int64
	maxDiscount *int64
}

func NewFlatDiscount(amount int64) (Discount, error) {
	if amount <= 0 {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{kind: KindFlat, value: amount}, nil
}

func NewPercentageDiscount(percent int64, maxDiscount *int64) (Discount, error) {
	if percent < 1 || percent > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	if maxDiscount != nil && *maxDiscount <= 0 {
		return Discount{}, ErrInvalidMaxDiscount
	}
	return Discount{kind: KindPercentage, value: percent, maxDiscount: maxDiscount}, nil
}

func NewDiscount(kind Kind, value int64, maxDiscount *int64) (Discount, error) {
	switch kind {
	case KindFlat:
		return NewFlatDiscount(value)
	case KindPercentage:
		return NewPercentageDiscount(value, maxDiscount)
	default:
		return Discount{}, ErrInvalidKind
	}
}

func (d Discount) Kind() Kind          { return d.kind }
func (d Discount) Value() int64        { return d.value }
func (d Discount) MaxDiscount() *int64 { return d.maxDiscount }

// AmountFor returns the discount for total, never negative and never above total.
func (d Discount) AmountFor(total int64) int64 {
	if total <= 0 {
		return 0
	}
	var amount int64
	switch d.kind {
	case KindFlat:
		amount = d.value
	case KindPercentage:
		amount = total * d.value / 100
		if d.maxDiscount != nil && amount > *d.maxDiscount {
			amount = *d.maxDiscount
		}
	}
	return max(0, min(amount, total))
}
