// Package odds converts sportsbook prices into comparable probabilities.
//
// Moneyline quotes carry the bookmaker's margin ("vig"): the implied
// probabilities of the two sides of a game sum to more than 100%,
// typically 104-105%. Normalizing the pair back to 100% recovers the
// probabilities the book is actually pricing, which is the baseline the
// valuation pipeline compares against prediction-market prices.
package odds

import (
	"math"

	"github.com/yourusername/kalshi-scout/internal/models"
)

// ToProbability converts American odds to a raw implied probability.
// Negative odds denote favorites (-150: risk $150 to win $100), positive
// odds denote underdogs (+130: risk $100 to win $130).
func ToProbability(american int) (float64, error) {
	if american == 0 {
		return 0, models.ErrInvalidOdds
	}
	if american > 0 {
		return 100.0 / (float64(american) + 100.0), nil
	}
	o := float64(-american)
	return o / (o + 100.0), nil
}

// ToProbabilityFloat validates and converts odds parsed from an external
// feed, which may arrive as a non-finite or fractional float.
func ToProbabilityFloat(american float64) (float64, error) {
	if math.IsNaN(american) || math.IsInf(american, 0) {
		return 0, models.ErrInvalidOdds
	}
	return ToProbability(int(math.Round(american)))
}

// RemoveVig normalizes the raw implied probabilities of a mutually
// exclusive two-outcome market so they sum to exactly one, preserving
// their ratio.
func RemoveVig(probA, probB float64) (float64, float64, error) {
	total := probA + probB
	if total <= 0 {
		return 0, 0, models.ErrInvalidOdds
	}
	return probA / total, probB / total, nil
}

// Consensus reduces multiple bookmakers' quotes for the same side to a
// single representative raw probability: the arithmetic mean of the
// per-book implied probabilities, computed before vig removal. Averaging
// raw probabilities and removing vig once on the aggregated pair avoids
// double-penalizing for vig across books. Returns the number of quotes
// that contributed.
func Consensus(quotes []models.Quote) (float64, int, error) {
	if len(quotes) == 0 {
		return 0, 0, models.ErrInsufficientData
	}

	var sum float64
	var count int
	for _, q := range quotes {
		prob, err := ToProbability(q.AmericanOdds)
		if err != nil {
			// A single malformed quote should not poison the consensus.
			continue
		}
		sum += prob
		count++
	}

	if count == 0 {
		return 0, 0, models.ErrInsufficientData
	}
	return sum / float64(count), count, nil
}
