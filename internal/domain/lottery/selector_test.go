//go:build unit

package lottery_test

import (
	"math/rand/v2"
	"testing"

	"travel-booking/internal/domain/coupon"
	"travel-booking/internal/domain/lottery"
	"travel-booking/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() lottery.Source {
	return rand.New(rand.NewPCG(1, 2))
}

func TestSample(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	t.Run("重複なしでn件", func(t *testing.T) {
		got := lottery.Sample(items, 3, seeded())
		require.Len(t, got, 3)
		seen := map[int]bool{}
		for _, v := range got {
			assert.False(t, seen[v], "duplicate %d", v)
			seen[v] = true
		}
	})

	t.Run("要求数が母数を超えたら全件", func(t *testing.T) {
		got := lottery.Sample(items, 50, seeded())
		assert.ElementsMatch(t, items, got)
	})

	t.Run("入力スライスは変更しない", func(t *testing.T) {
		_ = lottery.Sample(items, 10, seeded())
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, items)
	})

	t.Run("各要素がほぼ一様に選ばれる", func(t *testing.T) {
		src := seeded()
		counts := make([]int, len(items))
		const rounds = 20000
		for range rounds {
			for _, v := range lottery.Sample(items, 3, src) {
				counts[v]++
			}
		}
		// expected 6000 each
		for i, c := range counts {
			assert.InDelta(t, 6000, c, 400, "item %d", i)
		}
	})
}

func TestNewDraw(t *testing.T) {
	d, err := lottery.NewDraw(3, nil)
	require.NoError(t, err)
	assert.Equal(t, lottery.ModeRandom, d.Mode())
	assert.Equal(t, 3, d.Count())

	_, err = lottery.NewDraw(0, nil)
	assert.ErrorIs(t, err, lottery.ErrInvalidWinnerCount)

	d, err = lottery.NewDraw(0, []string{"000001", "000002", "000001"})
	require.NoError(t, err)
	assert.Equal(t, lottery.ModeExplicit, d.Mode())
	assert.Equal(t, []coupon.Number{"000001", "000002"}, d.Requested())

	_, err = lottery.NewDraw(1, []string{"12"})
	assert.ErrorIs(t, err, coupon.ErrInvalidCouponNumber)
}

func TestCheckExplicit(t *testing.T) {
	paid := func(n string) *coupon.Coupon { return builder.NewCouponBuilder().WithNumber(n).BuildDomain() }

	t.Run("全件見つかればOK", func(t *testing.T) {
		assert.NoError(t, lottery.CheckExplicit(2, []*coupon.Coupon{paid("000001"), paid("000002")}))
	})

	t.Run("一部のみ見つかった場合は件数を報告", func(t *testing.T) {
		err := lottery.CheckExplicit(3, []*coupon.Coupon{paid("000001"), paid("000002")})
		require.ErrorIs(t, err, lottery.ErrPartialMatch)

		var pm *lottery.PartialMatchError
		require.ErrorAs(t, err, &pm)
		assert.Equal(t, 2, pm.Found)
		assert.Equal(t, 3, pm.Requested)
	})

	t.Run("当選済みを含むとNG", func(t *testing.T) {
		won := builder.NewCouponBuilder().WithNumber("000003").AsWinner(uuid.New(), "Trip").BuildDomain()
		err := lottery.CheckExplicit(2, []*coupon.Coupon{paid("000001"), won})
		assert.ErrorIs(t, err, coupon.ErrAlreadyWinner)
	})
}

func TestNewSecureSource(t *testing.T) {
	src := lottery.NewSecureSource()
	for range 100 {
		v := src.IntN(7)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 7)
	}
}
