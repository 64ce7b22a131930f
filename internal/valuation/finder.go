// Package valuation computes fee-adjusted edge for matched event/contract
// pairs and ranks the surviving opportunities.
package valuation

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/kalshi-scout/internal/fees"
	"github.com/yourusername/kalshi-scout/internal/models"
	"github.com/yourusername/kalshi-scout/internal/odds"
)

// DefaultMinNetEdge is the smallest post-fee edge worth reporting.
const DefaultMinNetEdge = 0.02

// Config controls opportunity filtering and confidence tiering.
type Config struct {
	MinNetEdge float64
	Tiers      []TierRule
	Fees       fees.Schedule
}

// Finder turns matched pairs into ranked opportunities. It performs no
// I/O: all data arrives pre-fetched and each pair is valued
// independently.
type Finder struct {
	cfg    Config
	logger *logrus.Logger
}

// NewFinder creates a value finder, filling defaults for zero-valued
// settings.
func NewFinder(cfg Config, logger *logrus.Logger) *Finder {
	if cfg.MinNetEdge == 0 {
		cfg.MinNetEdge = DefaultMinNetEdge
	}
	if len(cfg.Tiers) == 0 {
		cfg.Tiers = DefaultTierRules()
	}
	if cfg.Fees.ID == "" {
		cfg.Fees = fees.Taker
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Finder{cfg: cfg, logger: logger}
}

// Find evaluates every matched pair and returns opportunities sorted by
// net edge descending (ties: bookmaker count descending, then matchup
// label), plus a record of every pair side that could not be evaluated.
// Skips are normal outcomes, reported for auditability rather than
// raised as errors.
func (f *Finder) Find(pairs []models.MatchedPair) ([]models.Opportunity, []models.SkipRecord) {
	opportunities := make([]models.Opportunity, 0, len(pairs))
	skips := make([]models.SkipRecord, 0)

	for i := range pairs {
		pair := &pairs[i]
		opps, skip := f.evaluatePair(pair)
		if skip != nil {
			skips = append(skips, *skip)
			continue
		}
		opportunities = append(opportunities, opps...)
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		a, b := &opportunities[i], &opportunities[j]
		if a.NetEdge != b.NetEdge {
			return a.NetEdge > b.NetEdge
		}
		if a.BookmakerCount != b.BookmakerCount {
			return a.BookmakerCount > b.BookmakerCount
		}
		return a.Matchup < b.Matchup
	})

	return opportunities, skips
}

// evaluatePair values both tradable directions of one matched pair.
func (f *Finder) evaluatePair(pair *models.MatchedPair) ([]models.Opportunity, *models.SkipRecord) {
	homeQuotes := pair.Event.QuotesForSide(models.SideHome)
	awayQuotes := pair.Event.QuotesForSide(models.SideAway)

	// A two-sided market with an unquoted side is unusable; fabricating
	// a probability for the empty side would poison the vig removal.
	homeRaw, homeCount, err := odds.Consensus(homeQuotes)
	if err != nil {
		return nil, f.skip(pair, "no usable quotes for home side")
	}
	awayRaw, awayCount, err := odds.Consensus(awayQuotes)
	if err != nil {
		return nil, f.skip(pair, "no usable quotes for away side")
	}

	trueHome, trueAway, err := odds.RemoveVig(homeRaw, awayRaw)
	if err != nil {
		return nil, f.skip(pair, "degenerate consensus probabilities")
	}

	price := pair.Contract.YesPriceCents
	if price < 1 || price > 99 {
		return nil, f.skip(pair, "yes price outside tradable range")
	}

	trueYes := trueAway
	if pair.HomeIsYes {
		trueYes = trueHome
	}

	// The consensus is only as broad as its thinner side.
	books := homeCount
	if awayCount < books {
		books = awayCount
	}

	var opps []models.Opportunity
	if opp, ok := f.evaluateSide(pair, models.ActionBuyYes, price, trueYes, books); ok {
		opps = append(opps, opp)
	}
	if opp, ok := f.evaluateSide(pair, models.ActionBuyNo, 100-price, 1-trueYes, books); ok {
		opps = append(opps, opp)
	}
	return opps, nil
}

// evaluateSide computes gross and net edge for one direction and keeps
// it only when the net edge clears the threshold. Falling short is
// normal control flow, not a skip.
func (f *Finder) evaluateSide(pair *models.MatchedPair, action models.Action, priceCents int, trueProb float64, books int) (models.Opportunity, bool) {
	feeProb, err := f.cfg.Fees.AsProbability(priceCents)
	if err != nil {
		return models.Opportunity{}, false
	}
	feePerContract, err := f.cfg.Fees.PerContract(priceCents)
	if err != nil {
		return models.Opportunity{}, false
	}

	marketProb := float64(priceCents) / 100
	grossEdge := trueProb - marketProb
	netEdge := grossEdge - feeProb

	if netEdge < f.cfg.MinNetEdge {
		return models.Opportunity{}, false
	}

	// On a $1-max contract the per-contract expected value collapses to
	// the net edge in dollars.
	evPerContract := decimal.NewFromFloat(netEdge).Round(4)

	opp := models.Opportunity{
		Sport:          pair.Event.SportKey,
		Matchup:        pair.Event.Matchup(),
		Ticker:         pair.Contract.Ticker,
		Team:           pair.YesTeam(),
		Action:         action,
		PriceCents:     priceCents,
		MarketProb:     marketProb,
		TrueProb:       trueProb,
		GrossEdge:      grossEdge,
		FeePerContract: feePerContract,
		NetEdge:        netEdge,
		EVPerContract:  evPerContract,
		BookmakerCount: books,
		Tier:           TierFor(f.cfg.Tiers, books),
	}

	f.logger.WithFields(logrus.Fields{
		"ticker":    opp.Ticker,
		"action":    opp.Action,
		"net_edge":  opp.NetEdge,
		"true_prob": opp.TrueProb,
	}).Debug("Opportunity found")

	return opp, true
}

func (f *Finder) skip(pair *models.MatchedPair, reason string) *models.SkipRecord {
	f.logger.WithFields(logrus.Fields{
		"ticker": pair.Contract.Ticker,
		"reason": reason,
	}).Debug("Skipping matched pair")
	return &models.SkipRecord{Label: pair.Contract.Ticker, Reason: reason}
}
