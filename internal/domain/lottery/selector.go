package lottery

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"travel-booking/internal/domain/coupon"
)

var (
	ErrInvalidWinnerCount = errors.New("number of winners must be positive")
	ErrPartialMatch       = errors.New("explicit coupon numbers partially matched")
)

type Mode string

const (
	ModeRandom   Mode = "random"
	ModeExplicit Mode = "explicit"
)

// Source is the randomness used by Sample. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// PartialMatchError reports how many explicitly requested coupons were usable.
type PartialMatchError struct {
	Found     int
	Requested int
}

func (e *PartialMatchError) Error() string {
	return fmt.Sprintf("%s: found %d of %d requested", ErrPartialMatch.Error(), e.Found, e.Requested)
}

func (e *PartialMatchError) Is(target error) bool {
	return target == ErrPartialMatch
}

// Draw describes one winner announcement request.
type Draw struct {
	mode      Mode
	count     int
	requested []coupon.Number
}

// NewDraw picks explicit mode when numbers are given; duplicates collapse to one request each.
func NewDraw(numberOfWinners int, explicit []string) (Draw, error) {
	if len(explicit) > 0 {
		seen := make(map[coupon.Number]struct{}, len(explicit))
		numbers := make([]coupon.Number, 0, len(explicit))
		for _, raw := range explicit {
			n, err := coupon.NewNumber(raw)
			if err != nil {
				return Draw{}, err
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			numbers = append(numbers, n)
		}
		return Draw{mode: ModeExplicit, count: len(numbers), requested: numbers}, nil
	}
	if numberOfWinners <= 0 {
		return Draw{}, ErrInvalidWinnerCount
	}
	return Draw{mode: ModeRandom, count: numberOfWinners}, nil
}

func (d Draw) Mode() Mode                 { return d.mode }
func (d Draw) Count() int                 { return d.count }
func (d Draw) Requested() []coupon.Number { return d.requested }

// CheckExplicit enforces the all-or-nothing rule: every requested number must resolve
// to a paid coupon, and none may have won already.
func CheckExplicit(requested int, found []*coupon.Coupon) error {
	paid := 0
	for _, c := range found {
		if c.PaymentStatus() == coupon.PaymentStatusSuccess {
			paid++
		}
	}
	if paid != requested {
		return &PartialMatchError{Found: paid, Requested: requested}
	}
	for _, c := range found {
		if c.IsWinner() {
			return fmt.Errorf("%w: %s", coupon.ErrAlreadyWinner, c.Number())
		}
	}
	return nil
}

// Sample draws n items uniformly without replacement using a partial Fisher-Yates shuffle.
// When n exceeds len(items) every item is returned; the input slice is not modified.
func Sample[T any](items []T, n int, src Source) []T {
	pool := make([]T, len(items))
	copy(pool, items)
	if n > len(pool) {
		n = len(pool)
	}
	for i := 0; i < n; i++ {
		j := i + src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// lockedSource serialises access to a non-concurrent *rand.Rand.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// NewSecureSource seeds a ChaCha8 generator from crypto/rand.
func NewSecureSource() Source {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic("lottery: crypto/rand unavailable: " + err.Error())
	}
	return &lockedSource{r: rand.New(rand.NewChaCha8(seed))}
}
