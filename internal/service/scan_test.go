package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/kalshi-scout/internal/matcher"
	"github.com/yourusername/kalshi-scout/internal/models"
	"github.com/yourusername/kalshi-scout/internal/valuation"
)

type fakeOddsProvider struct {
	events map[string][]models.VegasEvent
	err    error
}

func (f *fakeOddsProvider) FetchEvents(ctx context.Context, sportKey string) ([]models.VegasEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events[sportKey], nil
}

func (f *fakeOddsProvider) QuotaRemaining() int { return 472 }
func (f *fakeOddsProvider) Name() string        { return "fake_odds" }

type fakeMarketProvider struct {
	contracts map[string][]models.MarketContract
	err       error
}

func (f *fakeMarketProvider) FetchContracts(ctx context.Context, sport string) ([]models.MarketContract, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.contracts[sport], nil
}

func (f *fakeMarketProvider) Name() string { return "fake_markets" }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testScanner(odds *fakeOddsProvider, markets *fakeMarketProvider, sports []string) *Scanner {
	return NewScanner(
		odds,
		markets,
		matcher.New(matcher.Config{}),
		valuation.NewFinder(valuation.Config{MinNetEdge: 0.02}, quietLogger()),
		sports,
		quietLogger(),
	)
}

func nbaFixture() (*fakeOddsProvider, *fakeMarketProvider) {
	commence := time.Date(2026, 1, 15, 3, 0, 0, 0, time.UTC)
	odds := &fakeOddsProvider{events: map[string][]models.VegasEvent{
		"basketball_nba": {
			{
				ID:           "evt-1",
				SportKey:     "basketball_nba",
				HomeTeam:     "Los Angeles Lakers",
				AwayTeam:     "Boston Celtics",
				CommenceTime: commence,
				Quotes: []models.Quote{
					{Bookmaker: "draftkings", Side: models.SideHome, AmericanOdds: -150},
					{Bookmaker: "draftkings", Side: models.SideAway, AmericanOdds: 130},
				},
			},
		},
	}}
	markets := &fakeMarketProvider{contracts: map[string][]models.MarketContract{
		"nba": {
			{
				Ticker:        "KXNBAGAME-26JAN15BOSLAL-LAL",
				Sport:         "nba",
				SideLabel:     "LAL",
				Title:         "Celtics at Lakers Winner?",
				YesPriceCents: 50,
				CommenceTime:  commence,
			},
		},
	}}
	return odds, markets
}

func TestScanEndToEnd(t *testing.T) {
	odds, markets := nbaFixture()
	scanner := testScanner(odds, markets, []string{"basketball_nba"})

	result, err := scanner.Scan(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.RunID.String())
	assert.Equal(t, 1, result.EventsFetched)
	assert.Equal(t, 1, result.ContractsFetched)
	assert.Equal(t, 1, result.PairsMatched)
	assert.Equal(t, 472, result.QuotaRemaining)

	require.Len(t, result.Opportunities, 1)
	opp := result.Opportunities[0]
	assert.Equal(t, models.ActionBuyYes, opp.Action)
	assert.Equal(t, "Los Angeles Lakers", opp.Team)
	assert.InDelta(t, 0.062, opp.NetEdge, 0.001)
}

func TestScanPartialFailureContinues(t *testing.T) {
	odds, markets := nbaFixture()
	scanner := testScanner(odds, markets, []string{"basketball_nba", "icehockey_nhl"})

	// NHL has no fixture data; that yields an empty fetch, not a failure.
	result, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.PairsMatched)
}

func TestScanAllSportsFailing(t *testing.T) {
	odds := &fakeOddsProvider{err: errors.New("connection refused")}
	markets := &fakeMarketProvider{}
	scanner := testScanner(odds, markets, []string{"basketball_nba"})

	_, err := scanner.Scan(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch")
}

func TestScanMarketFetchFailureSkipsSport(t *testing.T) {
	odds, _ := nbaFixture()
	markets := &fakeMarketProvider{err: errors.New("listing unavailable")}
	scanner := testScanner(odds, markets, []string{"basketball_nba"})

	_, err := scanner.Scan(context.Background())
	// The single configured sport failed, so the scan fails.
	require.Error(t, err)
}

func TestScanNoContractsNoOpportunities(t *testing.T) {
	odds, _ := nbaFixture()
	markets := &fakeMarketProvider{contracts: map[string][]models.MarketContract{}}
	scanner := testScanner(odds, markets, []string{"basketball_nba"})

	result, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.PairsMatched)
	assert.Empty(t, result.Opportunities)
}
