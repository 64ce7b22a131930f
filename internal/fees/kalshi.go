// Package fees implements the Kalshi per-trade fee schedule.
//
// The venue charges ceil(multiplier * contracts * p * (1-p)) rounded up
// to the next cent, where p is the contract price in dollars. The fee
// peaks at 50c and falls toward 1c and 99c. That shape is
// correctness-relevant: it governs which edges survive fee deduction.
package fees

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/kalshi-scout/internal/models"
)

// ReferenceLot is the contract count used to express the per-contract
// fee as a probability. Quoting the fee at a realistic lot size keeps
// the cent rounding from overstating the cost of a single contract.
const ReferenceLot = 100

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Schedule is a venue fee schedule identified by its multiplier.
type Schedule struct {
	ID         string
	Multiplier decimal.Decimal
}

// Standard Kalshi schedules.
var (
	Taker = Schedule{ID: "taker", Multiplier: decimal.NewFromFloat(0.07)}
	Maker = Schedule{ID: "maker", Multiplier: decimal.NewFromFloat(0.0175)}
)

// ScheduleByID resolves a configured schedule name, defaulting to taker.
func ScheduleByID(id string) Schedule {
	if id == Maker.ID {
		return Maker
	}
	return Taker
}

// Fee returns the dollar fee for trading the given number of contracts
// at the given price, rounded up to the next cent.
func (s Schedule) Fee(contracts, priceCents int) (decimal.Decimal, error) {
	if contracts <= 0 || priceCents < 1 || priceCents > 99 {
		return decimal.Zero, models.ErrInvalidInput
	}

	p := decimal.NewFromInt(int64(priceCents)).Div(hundred)
	raw := s.Multiplier.
		Mul(decimal.NewFromInt(int64(contracts))).
		Mul(p).
		Mul(one.Sub(p))

	// Round up to the next cent.
	return raw.Mul(hundred).Ceil().Div(hundred), nil
}

// PerContract returns the fee for a single contract amortized over the
// reference lot, in dollars.
func (s Schedule) PerContract(priceCents int) (decimal.Decimal, error) {
	fee, err := s.Fee(ReferenceLot, priceCents)
	if err != nil {
		return decimal.Zero, err
	}
	return fee.Div(decimal.NewFromInt(ReferenceLot)), nil
}

// AsProbability expresses the per-contract fee as a probability
// equivalent on a $1-max contract. Edge computation and position sizing
// must both go through this conversion to stay numerically consistent.
func (s Schedule) AsProbability(priceCents int) (float64, error) {
	fee, err := s.PerContract(priceCents)
	if err != nil {
		return 0, err
	}
	return fee.InexactFloat64(), nil
}

// EffectiveCost returns the total outlay for a position: price times
// contracts plus the fee.
func (s Schedule) EffectiveCost(contracts, priceCents int) (decimal.Decimal, error) {
	fee, err := s.Fee(contracts, priceCents)
	if err != nil {
		return decimal.Zero, err
	}
	notional := decimal.NewFromInt(int64(priceCents)).
		Div(hundred).
		Mul(decimal.NewFromInt(int64(contracts)))
	return notional.Add(fee), nil
}
