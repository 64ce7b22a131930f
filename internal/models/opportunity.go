package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Action is the recommended trade on a prediction-market contract.
type Action string

// Recommended actions
const (
	ActionBuyYes Action = "BUY YES"
	ActionBuyNo  Action = "BUY NO"
)

// Tier is a coarse confidence label derived from the number of
// independent bookmakers backing the Vegas consensus.
type Tier string

// Confidence tiers
const (
	TierLow    Tier = "LOW"
	TierMedium Tier = "MEDIUM"
	TierHigh   Tier = "HIGH"
)

// Opportunity represents a fee-adjusted value discrepancy between the
// Vegas consensus probability and a prediction-market price. Immutable
// once constructed by the value finder.
type Opportunity struct {
	Sport   string `json:"sport"`
	Matchup string `json:"matchup"`
	Ticker  string `json:"ticker"`
	// Team is the side the action refers to.
	Team   string `json:"team"`
	Action Action `json:"action"`
	// PriceCents is the executable price of the action side: the yes ask
	// for BUY YES, its complement for BUY NO.
	PriceCents int     `json:"price_cents"`
	MarketProb float64 `json:"market_prob"`
	TrueProb   float64 `json:"true_prob"`
	GrossEdge  float64 `json:"gross_edge"`
	// FeePerContract is the venue fee in dollars at the reference lot size.
	FeePerContract decimal.Decimal `json:"fee_per_contract"`
	NetEdge        float64         `json:"net_edge"`
	EVPerContract  decimal.Decimal `json:"ev_per_contract"`
	BookmakerCount int             `json:"bookmaker_count"`
	Tier           Tier            `json:"tier"`
}

// DisplayAction returns a human-readable recommendation, e.g.
// "BUY YES on Los Angeles Lakers".
func (o *Opportunity) DisplayAction() string {
	return fmt.Sprintf("%s on %s", o.Action, o.Team)
}

// SkipRecord explains why a matched pair (or one of its sides) was not
// evaluated. Skips are normal outcomes, not errors, but they are counted
// and reported for auditability.
type SkipRecord struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}
