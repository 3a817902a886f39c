package coupon

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidCouponNumber = errors.New("invalid coupon number format")

const numberWidth = 6

var numberRegex = regexp.MustCompile(`^[0-9]{6,}$`)

// Number is the display identifier of a coupon, unique within its offer.
type Number string

// FormatNumber renders an offer-scoped sequence value as a zero-padded coupon number.
func FormatNumber(seq int64) Number {
	return Number(fmt.Sprintf("%0*d", numberWidth, seq))
}

func NewNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if !numberRegex.MatchString(s) {
		return "", ErrInvalidCouponNumber
	}
	return Number(s), nil
}

func (n Number) String() string {
	return string(n)
}

type PaymentStatus string

// Pending purchases are never persisted, so success is the only stored status.
const PaymentStatusSuccess PaymentStatus = "success"
