package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/kalshi-scout/internal/models"
)

const oddsAPISourceName = "odds_api"

// OddsAPIClient implements OddsProvider against The Odds API v4.
type OddsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	regions    string
	logger     *logrus.Logger

	mu             sync.Mutex
	quotaRemaining int
}

// oddsAPIEvent represents an event from The Odds API
type oddsAPIEvent struct {
	ID           string             `json:"id"`
	SportKey     string             `json:"sport_key"`
	CommenceTime time.Time          `json:"commence_time"`
	HomeTeam     string             `json:"home_team"`
	AwayTeam     string             `json:"away_team"`
	Bookmakers   []oddsAPIBookmaker `json:"bookmakers"`
}

// oddsAPIBookmaker represents one sportsbook's entry for an event
type oddsAPIBookmaker struct {
	Key        string          `json:"key"`
	Title      string          `json:"title"`
	LastUpdate time.Time       `json:"last_update"`
	Markets    []oddsAPIMarket `json:"markets"`
}

// oddsAPIMarket represents one market (we only request h2h/moneyline)
type oddsAPIMarket struct {
	Key      string           `json:"key"`
	Outcomes []oddsAPIOutcome `json:"outcomes"`
}

// oddsAPIOutcome represents one side's price within a market
type oddsAPIOutcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// NewOddsAPIClient creates a new client for The Odds API
func NewOddsAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey, regions string, logger *logrus.Logger) *OddsAPIClient {
	if regions == "" {
		regions = "us"
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &OddsAPIClient{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         apiKey,
		regions:        regions,
		logger:         logger,
		quotaRemaining: -1,
	}
}

// FetchEvents retrieves upcoming events with moneyline quotes for a sport key
func (c *OddsAPIClient) FetchEvents(ctx context.Context, sportKey string) ([]models.VegasEvent, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/odds?%s", c.baseURL, url.PathEscape(sportKey), url.Values{
		"apiKey":     {c.apiKey},
		"regions":    {c.regions},
		"markets":    {"h2h"},
		"oddsFormat": {"american"},
	}.Encode())

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeNetworkError, "failed to fetch events", err)
	}
	defer resp.Body.Close()

	c.recordQuota(resp)

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeAuthenticationFailed, "invalid API key", nil)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeRateLimitExceeded, "request quota exhausted", nil)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var rawEvents []oddsAPIEvent
	if err := json.NewDecoder(resp.Body).Decode(&rawEvents); err != nil {
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	events := make([]models.VegasEvent, 0, len(rawEvents))
	for i := range rawEvents {
		event, err := c.convertEvent(&rawEvents[i])
		if err != nil {
			c.logger.WithFields(logrus.Fields{
				"event_id": rawEvents[i].ID,
				"error":    err,
			}).Warn("Skipping malformed event")
			continue
		}
		events = append(events, *event)
	}

	return events, nil
}

// QuotaRemaining returns the request quota left on the account, or -1
// when no response has carried the header yet
func (c *OddsAPIClient) QuotaRemaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quotaRemaining
}

// Name returns the data source name
func (c *OddsAPIClient) Name() string {
	return oddsAPISourceName
}

// recordQuota captures the provider's quota header from a response
func (c *OddsAPIClient) recordQuota(resp *http.Response) {
	header := resp.Header.Get("X-Requests-Remaining")
	if header == "" {
		return
	}
	remaining, err := strconv.Atoi(header)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.quotaRemaining = remaining
	c.mu.Unlock()
}

// convertEvent converts a provider event into a VegasEvent, collecting
// one home and one away moneyline quote per bookmaker
func (c *OddsAPIClient) convertEvent(raw *oddsAPIEvent) (*models.VegasEvent, error) {
	if raw.HomeTeam == "" || raw.AwayTeam == "" {
		return nil, fmt.Errorf("event %s missing team names: %w", raw.ID, models.ErrMalformedEvent)
	}

	event := &models.VegasEvent{
		ID:           raw.ID,
		SportKey:     raw.SportKey,
		HomeTeam:     raw.HomeTeam,
		AwayTeam:     raw.AwayTeam,
		CommenceTime: raw.CommenceTime,
	}

	for _, book := range raw.Bookmakers {
		for _, market := range book.Markets {
			if market.Key != "h2h" {
				continue
			}
			for _, outcome := range market.Outcomes {
				side, ok := sideForOutcome(outcome.Name, raw.HomeTeam, raw.AwayTeam)
				if !ok {
					// Draw outcomes and the like have no contract analog
					continue
				}
				odds := int(outcome.Price)
				if float64(odds) != outcome.Price || (odds > -100 && odds < 100) {
					c.logger.WithFields(logrus.Fields{
						"bookmaker": book.Key,
						"price":     outcome.Price,
					}).Debug("Dropping non-American price")
					continue
				}
				event.Quotes = append(event.Quotes, models.Quote{
					Bookmaker:    book.Key,
					Side:         side,
					AmericanOdds: odds,
					ObservedAt:   book.LastUpdate,
				})
			}
		}
	}

	return event, nil
}

// sideForOutcome maps an outcome name to the home or away side
func sideForOutcome(name, homeTeam, awayTeam string) (models.Side, bool) {
	switch name {
	case homeTeam:
		return models.SideHome, true
	case awayTeam:
		return models.SideAway, true
	default:
		return "", false
	}
}
