package models

import "time"

// VegasEvent represents a single sporting event as reported by the odds
// provider, with moneyline quotes from one or more bookmakers per side.
type VegasEvent struct {
	ID           string    `json:"id"`
	SportKey     string    `json:"sport_key" validate:"required"`
	HomeTeam     string    `json:"home_team" validate:"required"`
	AwayTeam     string    `json:"away_team" validate:"required"`
	CommenceTime time.Time `json:"commence_time"`
	Quotes       []Quote   `json:"quotes"`
}

// QuotesForSide returns the subset of quotes for one side of the event.
func (e *VegasEvent) QuotesForSide(side Side) []Quote {
	quotes := make([]Quote, 0, len(e.Quotes)/2)
	for _, q := range e.Quotes {
		if q.Side == side {
			quotes = append(quotes, q)
		}
	}
	return quotes
}

// Matchup returns the conventional "Away @ Home" label for the event.
func (e *VegasEvent) Matchup() string {
	return e.AwayTeam + " @ " + e.HomeTeam
}
