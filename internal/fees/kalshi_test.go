package fees

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/kalshi-scout/internal/models"
)

func TestFeeRoundsUpToCent(t *testing.T) {
	// 0.07 * 1 * 0.5 * 0.5 = $0.0175, rounded up to $0.02.
	fee, err := Taker.Fee(1, 50)
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.NewFromFloat(0.02)), "fee = %s", fee)

	// 0.07 * 100 * 0.5 * 0.5 = $1.75 exactly, no rounding needed.
	fee, err = Taker.Fee(100, 50)
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.NewFromFloat(1.75)), "fee = %s", fee)
}

func TestPerContractAmortizesRounding(t *testing.T) {
	// At the reference lot the 50c per-contract fee is $0.0175, matching
	// the continuous formula rather than the single-contract ceiling.
	perContract, err := Taker.PerContract(50)
	require.NoError(t, err)
	assert.True(t, perContract.Equal(decimal.NewFromFloat(0.0175)), "per contract = %s", perContract)

	prob, err := Taker.AsProbability(50)
	require.NoError(t, err)
	assert.InDelta(t, 0.0175, prob, 1e-9)
}

func TestFeePeaksAtFifty(t *testing.T) {
	peak, err := Taker.Fee(1000, 50)
	require.NoError(t, err)

	for p := 1; p <= 99; p++ {
		if p == 50 {
			continue
		}
		fee, err := Taker.Fee(1000, p)
		require.NoError(t, err)
		assert.True(t, fee.LessThanOrEqual(peak), "fee(%d) = %s exceeds peak %s", p, fee, peak)
	}
}

func TestFeeMonotonicInContracts(t *testing.T) {
	for _, price := range []int{10, 35, 50, 72, 95} {
		prev := decimal.Zero
		for n := 1; n <= 200; n += 7 {
			fee, err := Taker.Fee(n, price)
			require.NoError(t, err)
			assert.True(t, fee.GreaterThanOrEqual(prev),
				"fee decreased at contracts=%d price=%d", n, price)
			prev = fee
		}
	}
}

func TestFeeInvalidInput(t *testing.T) {
	cases := []struct {
		name      string
		contracts int
		price     int
	}{
		{"zero contracts", 0, 50},
		{"negative contracts", -5, 50},
		{"price too low", 10, 0},
		{"price too high", 10, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Taker.Fee(tc.contracts, tc.price)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestMakerScheduleCheaper(t *testing.T) {
	takerFee, err := Taker.Fee(100, 50)
	require.NoError(t, err)
	makerFee, err := Maker.Fee(100, 50)
	require.NoError(t, err)
	assert.True(t, makerFee.LessThan(takerFee))
}

func TestEffectiveCost(t *testing.T) {
	// 10 contracts at 40c: $4.00 notional + ceil(0.07*10*0.4*0.6) = $0.17.
	cost, err := Taker.EffectiveCost(10, 40)
	require.NoError(t, err)
	assert.True(t, cost.Equal(decimal.NewFromFloat(4.17)), "cost = %s", cost)
}

func TestScheduleByID(t *testing.T) {
	assert.Equal(t, Maker.ID, ScheduleByID("maker").ID)
	assert.Equal(t, Taker.ID, ScheduleByID("taker").ID)
	assert.Equal(t, Taker.ID, ScheduleByID("").ID)
}
