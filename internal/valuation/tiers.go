package valuation

import "github.com/yourusername/kalshi-scout/internal/models"

// TierRule maps a minimum bookmaker count to a confidence tier. Rules
// are configuration, not code: tier boundaries arrive as an ordered
// list with ascending MinBookmakers.
type TierRule struct {
	MinBookmakers int
	Label         models.Tier
}

// DefaultTierRules returns the standard tier boundaries: fewer than 3
// books is LOW, 3-6 is MEDIUM, 7 or more is HIGH.
func DefaultTierRules() []TierRule {
	return []TierRule{
		{MinBookmakers: 0, Label: models.TierLow},
		{MinBookmakers: 3, Label: models.TierMedium},
		{MinBookmakers: 7, Label: models.TierHigh},
	}
}

// TierFor picks the highest rule whose bound the bookmaker count meets.
func TierFor(rules []TierRule, bookmakers int) models.Tier {
	tier := models.TierLow
	for _, rule := range rules {
		if bookmakers >= rule.MinBookmakers {
			tier = rule.Label
		}
	}
	return tier
}
