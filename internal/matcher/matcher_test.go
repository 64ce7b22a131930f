package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/kalshi-scout/internal/models"
)

var gameTime = time.Date(2026, 1, 15, 19, 0, 0, 0, time.UTC)

func nbaEvent() models.VegasEvent {
	return models.VegasEvent{
		ID:           "evt-1",
		SportKey:     "basketball_nba",
		HomeTeam:     "Los Angeles Lakers",
		AwayTeam:     "Boston Celtics",
		CommenceTime: gameTime,
	}
}

func lakersContract() models.MarketContract {
	return models.MarketContract{
		Ticker:        "KXNBAGAME-26JAN15BOSLAL-LAL",
		Sport:         "nba",
		SideLabel:     "LAL",
		Title:         "Celtics at Lakers Winner?",
		YesPriceCents: 50,
		CommenceTime:  gameTime.Add(30 * time.Minute),
	}
}

func TestMatchEventAlignsTeamsAndSides(t *testing.T) {
	m := New(Config{})
	event := nbaEvent()
	contracts := []models.MarketContract{lakersContract()}

	pair, err := m.MatchEvent(&event, contracts)
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, "KXNBAGAME-26JAN15BOSLAL-LAL", pair.Contract.Ticker)
	assert.True(t, pair.HomeIsYes, "LAL side label should map to the home team")
	assert.Equal(t, "Los Angeles Lakers", pair.YesTeam())
	assert.GreaterOrEqual(t, pair.Confidence, DefaultMinSimilarity)
}

func TestMatchEventHandlesCityAliases(t *testing.T) {
	// "LA Lakers" and "Los Angeles Lakers" must canonicalize identically.
	m := New(Config{})
	event := nbaEvent()
	event.HomeTeam = "LA Lakers"

	pair, err := m.MatchEvent(&event, []models.MarketContract{lakersContract()})
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.True(t, pair.HomeIsYes)
}

func TestMatchEventNoMatchIsNotAnError(t *testing.T) {
	m := New(Config{})
	event := nbaEvent()
	contract := lakersContract()
	contract.Title = "Thunder at Nuggets Winner?"
	contract.SideLabel = "OKC"
	contract.Ticker = "KXNBAGAME-26JAN15OKCDEN-OKC"

	pair, err := m.MatchEvent(&event, []models.MarketContract{contract})
	require.NoError(t, err)
	assert.Nil(t, pair)
}

func TestMatchEventRespectsCommenceWindow(t *testing.T) {
	m := New(Config{CommenceTolerance: 2 * time.Hour})
	event := nbaEvent()
	contract := lakersContract()
	contract.CommenceTime = gameTime.Add(26 * time.Hour)

	pair, err := m.MatchEvent(&event, []models.MarketContract{contract})
	require.NoError(t, err)
	assert.Nil(t, pair, "a contract a day away is a different game")
}

func TestMatchEventRespectsSport(t *testing.T) {
	m := New(Config{})
	event := nbaEvent()
	contract := lakersContract()
	contract.Sport = "nhl"

	pair, err := m.MatchEvent(&event, []models.MarketContract{contract})
	require.NoError(t, err)
	assert.Nil(t, pair)
}

func TestMatchEventTiesBreakOnTimeDelta(t *testing.T) {
	m := New(Config{CommenceTolerance: 26 * time.Hour})
	event := nbaEvent()
	near := lakersContract()
	far := lakersContract()
	far.Ticker = "KXNBAGAME-26JAN16BOSLAL-LAL"
	far.CommenceTime = gameTime.Add(24 * time.Hour)

	pair, err := m.MatchEvent(&event, []models.MarketContract{far, near})
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, near.Ticker, pair.Contract.Ticker)
}

func TestMatchEventMalformedInput(t *testing.T) {
	m := New(Config{})
	event := nbaEvent()
	event.HomeTeam = ""

	_, err := m.MatchEvent(&event, []models.MarketContract{lakersContract()})
	assert.ErrorIs(t, err, models.ErrMalformedEvent)

	event = nbaEvent()
	event.SportKey = ""
	_, err = m.MatchEvent(&event, []models.MarketContract{lakersContract()})
	assert.ErrorIs(t, err, models.ErrMalformedEvent)
}

func TestMatchIsIdempotent(t *testing.T) {
	m := New(Config{})
	events := []models.VegasEvent{nbaEvent()}
	contracts := []models.MarketContract{lakersContract()}

	first, err := m.Match(events, contracts)
	require.NoError(t, err)
	second, err := m.Match(events, contracts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMatchUsesConfiguredAliases(t *testing.T) {
	m := New(Config{Aliases: map[string]string{"gotham knights": "gkn"}})
	event := models.VegasEvent{
		ID:           "evt-2",
		SportKey:     "basketball_nba",
		HomeTeam:     "Gotham Knights",
		AwayTeam:     "Boston Celtics",
		CommenceTime: gameTime,
	}
	contract := models.MarketContract{
		Ticker:        "KXNBAGAME-26JAN15BOSGKN-GKN",
		Sport:         "nba",
		SideLabel:     "GKN",
		Title:         "Celtics at GKN Winner?",
		YesPriceCents: 40,
		CommenceTime:  gameTime,
	}

	pair, err := m.MatchEvent(&event, []models.MarketContract{contract})
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.True(t, pair.HomeIsYes)
}

func TestSimilarityScores(t *testing.T) {
	tests := []struct {
		team string
		text string
		want float64
	}{
		{"Los Angeles Lakers", "LAL", 1},
		{"Los Angeles Lakers", "Celtics at Lakers Winner?", 1},
		{"Boston Celtics", "LAL", 0},
		{"New York Rangers", "Rangers at Islanders Winner?", 1},
		{"", "anything", 0},
	}
	for _, tt := range tests {
		got := Similarity(tt.team, tt.text, nil)
		assert.InDelta(t, tt.want, got, 1e-9, "Similarity(%q, %q)", tt.team, tt.text)
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "lakers", NormalizeName("Los Angeles Lakers"))
	assert.Equal(t, "thunder", NormalizeName("Oklahoma City Thunder"))
	assert.Equal(t, "red sox", NormalizeName("Boston  Red Sox"))
}

func TestVenueSport(t *testing.T) {
	assert.Equal(t, "nba", VenueSport("basketball_nba"))
	assert.Equal(t, "nfl", VenueSport("americanfootball_nfl"))
	assert.Equal(t, "cricket_ipl", VenueSport("cricket_ipl"))
}
