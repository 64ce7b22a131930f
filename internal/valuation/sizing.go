package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/kalshi-scout/internal/fees"
	"github.com/yourusername/kalshi-scout/internal/models"
)

// DefaultSizingCounts are the contract counts shown in position-sizing
// tables when none are configured.
var DefaultSizingCounts = []int{1, 10, 50, 100}

// SizingRow is one line of a position-sizing table: the all-in cost,
// payout on a win, and expected value for a given contract count.
type SizingRow struct {
	Contracts     int
	Cost          decimal.Decimal
	ProfitIfWin   decimal.Decimal
	ExpectedValue decimal.Decimal
}

// SizingTable derives cost/profit/EV rows for an opportunity at the
// given contract counts. It is built from the same fee primitives as
// the edge computation, so the two stay numerically consistent:
//
//	cost    = contracts*price + fee(contracts)
//	profit  = contracts*(1-price) - fee(contracts)
//	EV      = true_prob*profit - (1-true_prob)*cost
func SizingTable(opp *models.Opportunity, schedule fees.Schedule, counts []int) ([]SizingRow, error) {
	if len(counts) == 0 {
		counts = DefaultSizingCounts
	}

	hundred := decimal.NewFromInt(100)
	price := decimal.NewFromInt(int64(opp.PriceCents)).Div(hundred)
	trueProb := decimal.NewFromFloat(opp.TrueProb)
	loseProb := decimal.NewFromInt(1).Sub(trueProb)

	rows := make([]SizingRow, 0, len(counts))
	for _, n := range counts {
		fee, err := schedule.Fee(n, opp.PriceCents)
		if err != nil {
			return nil, err
		}
		contracts := decimal.NewFromInt(int64(n))
		cost := contracts.Mul(price).Add(fee)
		profit := contracts.Mul(decimal.NewFromInt(1).Sub(price)).Sub(fee)
		ev := trueProb.Mul(profit).Sub(loseProb.Mul(cost))

		rows = append(rows, SizingRow{
			Contracts:     n,
			Cost:          cost,
			ProfitIfWin:   profit,
			ExpectedValue: ev.Round(4),
		})
	}
	return rows, nil
}
