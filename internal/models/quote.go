package models

import "time"

// Side identifies which team of a two-outcome market a quote refers to.
type Side string

// Quote sides
const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Quote represents a single bookmaker's moneyline price for one side of
// an event, in American odds notation. Immutable once fetched.
type Quote struct {
	Bookmaker    string    `json:"bookmaker" validate:"required"`
	Side         Side      `json:"side" validate:"required,oneof=home away"`
	AmericanOdds int       `json:"american_odds"`
	ObservedAt   time.Time `json:"observed_at"`
}
