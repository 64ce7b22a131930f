// Package matcher aligns events from the odds provider with contracts
// listed on the prediction-market venue. The two catalogs are
// independently keyed: team naming, ticker formats, and scheduled times
// all differ, so matching is similarity-driven rather than exact.
package matcher

import (
	"fmt"
	"time"

	"github.com/yourusername/kalshi-scout/internal/models"
)

// Default matching parameters.
const (
	DefaultMinSimilarity     = 0.6
	DefaultCommenceTolerance = 6 * time.Hour
)

// Config controls candidate filtering and scoring.
type Config struct {
	// MinSimilarity is the per-side score both teams must clear.
	MinSimilarity float64
	// CommenceTolerance bounds the allowed commence-time discrepancy
	// between the two sources, absorbing clock and schedule drift.
	CommenceTolerance time.Duration
	// Aliases supplies extra name-to-code mappings on top of the static
	// tables.
	Aliases map[string]string
}

// Matcher pairs Vegas events with venue contracts. It is a pure
// function over its configuration: no state survives a call, so
// matching is deterministic and idempotent.
type Matcher struct {
	cfg Config
}

// New creates a matcher, filling in defaults for zero-valued settings.
func New(cfg Config) *Matcher {
	if cfg.MinSimilarity <= 0 {
		cfg.MinSimilarity = DefaultMinSimilarity
	}
	if cfg.CommenceTolerance <= 0 {
		cfg.CommenceTolerance = DefaultCommenceTolerance
	}
	return &Matcher{cfg: cfg}
}

// Match pairs each event with its best-scoring contract. Events with no
// contract clearing the threshold simply produce no pair; that is a
// normal outcome for illiquid or newly-listed games. Only malformed
// input is an error.
func (m *Matcher) Match(events []models.VegasEvent, contracts []models.MarketContract) ([]models.MatchedPair, error) {
	pairs := make([]models.MatchedPair, 0, len(events))
	for i := range events {
		pair, err := m.MatchEvent(&events[i], contracts)
		if err != nil {
			return nil, err
		}
		if pair != nil {
			pairs = append(pairs, *pair)
		}
	}
	return pairs, nil
}

// MatchEvent finds the single best contract for one event, or nil when
// no candidate clears the similarity threshold.
func (m *Matcher) MatchEvent(event *models.VegasEvent, contracts []models.MarketContract) (*models.MatchedPair, error) {
	if event.HomeTeam == "" || event.AwayTeam == "" || event.SportKey == "" {
		return nil, fmt.Errorf("event %q: %w", event.ID, models.ErrMalformedEvent)
	}

	venueSport := VenueSport(event.SportKey)

	var best *models.MarketContract
	var bestScore float64
	var bestDelta time.Duration

	for i := range contracts {
		contract := &contracts[i]
		if contract.Sport != venueSport {
			continue
		}
		delta := absDuration(contract.CommenceTime.Sub(event.CommenceTime))
		if !contract.CommenceTime.IsZero() && delta > m.cfg.CommenceTolerance {
			continue
		}

		score := m.scoreContract(event, contract)
		if score < m.cfg.MinSimilarity {
			continue
		}
		if best == nil || score > bestScore || (score == bestScore && delta < bestDelta) {
			best = contract
			bestScore = score
			bestDelta = delta
		}
	}

	if best == nil {
		return nil, nil
	}

	return &models.MatchedPair{
		Event:      *event,
		Contract:   *best,
		Confidence: bestScore,
		HomeIsYes:  m.homeIsYes(event, best),
	}, nil
}

// scoreContract computes the combined similarity for a candidate. Both
// teams must individually clear the threshold against the contract's
// matchup text; the combined score is their mean.
func (m *Matcher) scoreContract(event *models.VegasEvent, contract *models.MarketContract) float64 {
	text := contract.Title
	if text == "" {
		text = contract.Ticker
	}
	homeScore := Similarity(event.HomeTeam, text, m.cfg.Aliases)
	awayScore := Similarity(event.AwayTeam, text, m.cfg.Aliases)
	if homeScore < m.cfg.MinSimilarity || awayScore < m.cfg.MinSimilarity {
		return 0
	}
	return (homeScore + awayScore) / 2
}

// homeIsYes fixes the side mapping from whichever team aligns better
// with the contract's side label.
func (m *Matcher) homeIsYes(event *models.VegasEvent, contract *models.MarketContract) bool {
	label := contract.SideLabel
	if label == "" {
		label = contract.Ticker
	}
	homeScore := Similarity(event.HomeTeam, label, m.cfg.Aliases)
	awayScore := Similarity(event.AwayTeam, label, m.cfg.Aliases)
	return homeScore >= awayScore
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
