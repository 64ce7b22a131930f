package models

// MatchedPair aligns a Vegas event with the prediction-market contract
// that represents the same real-world game. Never mutated after creation.
type MatchedPair struct {
	Event      VegasEvent
	Contract   MarketContract
	Confidence float64
	// HomeIsYes records the side mapping: true when the contract's yes
	// outcome corresponds to the Vegas home team.
	HomeIsYes bool
}

// YesSide returns which Vegas side the contract's yes outcome maps to.
func (p *MatchedPair) YesSide() Side {
	if p.HomeIsYes {
		return SideHome
	}
	return SideAway
}

// YesTeam returns the team name backing the contract's yes outcome.
func (p *MatchedPair) YesTeam() string {
	if p.HomeIsYes {
		return p.Event.HomeTeam
	}
	return p.Event.AwayTeam
}
