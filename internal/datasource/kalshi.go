package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/kalshi-scout/internal/models"
)

const kalshiSourceName = "kalshi"

// seriesBySport maps venue sport codes to Kalshi game-winner series
// tickers.
var seriesBySport = map[string]string{
	"nfl":   "KXNFLGAME",
	"nba":   "KXNBAGAME",
	"mlb":   "KXMLBGAME",
	"nhl":   "KXNHLGAME",
	"ncaab": "KXNCAAMBGAME",
	"ncaaw": "KXNCAAWBGAME",
}

// KalshiClient implements MarketProvider against the Kalshi trade API.
type KalshiClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *logrus.Logger
}

// kalshiMarketsResponse represents a page of the markets listing
type kalshiMarketsResponse struct {
	Markets []kalshiMarket `json:"markets"`
	Cursor  string         `json:"cursor"`
}

// kalshiMarket represents one market from the Kalshi API
type kalshiMarket struct {
	Ticker      string    `json:"ticker"`
	EventTicker string    `json:"event_ticker"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	YesBid      int       `json:"yes_bid"`
	YesAsk      int       `json:"yes_ask"`
	NoBid       int       `json:"no_bid"`
	NoAsk       int       `json:"no_ask"`
	CloseTime   time.Time `json:"close_time"`
	FeeSchedule string    `json:"fee_schedule_id"`
}

// NewKalshiClient creates a new Kalshi market data client
func NewKalshiClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger *logrus.Logger) *KalshiClient {
	if logger == nil {
		logger = logrus.New()
	}
	return &KalshiClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// FetchContracts retrieves open game-winner contracts for a venue sport
// code, following pagination cursors until the listing is exhausted
func (c *KalshiClient) FetchContracts(ctx context.Context, sport string) ([]models.MarketContract, error) {
	series, ok := seriesBySport[sport]
	if !ok {
		return nil, NewDataSourceError(kalshiSourceName, ErrCodeNotFound, fmt.Sprintf("no series for sport %q", sport), nil)
	}

	var contracts []models.MarketContract
	cursor := ""
	for {
		page, next, err := c.fetchMarketsPage(ctx, series, cursor)
		if err != nil {
			return nil, err
		}

		for i := range page {
			contract, err := c.convertMarket(&page[i], sport)
			if err != nil {
				c.logger.WithFields(logrus.Fields{
					"ticker": page[i].Ticker,
					"error":  err,
				}).Debug("Skipping unusable market")
				continue
			}
			contracts = append(contracts, *contract)
		}

		if next == "" {
			break
		}
		cursor = next
	}

	return contracts, nil
}

// Name returns the data source name
func (c *KalshiClient) Name() string {
	return kalshiSourceName
}

// fetchMarketsPage retrieves one page of the markets listing
func (c *KalshiClient) fetchMarketsPage(ctx context.Context, series, cursor string) ([]kalshiMarket, string, error) {
	params := url.Values{
		"series_ticker": {series},
		"status":        {"open"},
		"limit":         {"1000"},
	}
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	endpoint := fmt.Sprintf("%s/markets?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", NewDataSourceError(kalshiSourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, "", NewDataSourceError(kalshiSourceName, ErrCodeNetworkError, "failed to fetch markets", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, "", NewDataSourceError(kalshiSourceName, ErrCodeAuthenticationFailed, "invalid API key", nil)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, "", NewDataSourceError(kalshiSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, "", NewDataSourceError(kalshiSourceName, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var page kalshiMarketsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", NewDataSourceError(kalshiSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	return page.Markets, page.Cursor, nil
}

// convertMarket converts a Kalshi market into a MarketContract. The ask
// is the executable price for a taker; markets without a live ask are
// dropped.
func (c *KalshiClient) convertMarket(market *kalshiMarket, sport string) (*models.MarketContract, error) {
	if market.YesAsk < 1 || market.YesAsk > 99 {
		return nil, fmt.Errorf("no tradable yes ask (%d)", market.YesAsk)
	}

	feeSchedule := market.FeeSchedule
	if feeSchedule == "" {
		feeSchedule = "taker"
	}

	return &models.MarketContract{
		Ticker:        market.Ticker,
		Sport:         sport,
		SideLabel:     sideLabelFromTicker(market.Ticker),
		Title:         market.Title,
		YesPriceCents: market.YesAsk,
		MinContracts:  1,
		FeeScheduleID: feeSchedule,
		CommenceTime:  market.CloseTime,
	}, nil
}

// sideLabelFromTicker extracts the team code suffix from a game-winner
// ticker, e.g. "KXNBAGAME-26JAN15BOSLAL-LAL" yields "LAL".
func sideLabelFromTicker(ticker string) string {
	idx := strings.LastIndex(ticker, "-")
	if idx < 0 || idx == len(ticker)-1 {
		return ""
	}
	return ticker[idx+1:]
}

// SportForTicker resolves the venue sport code from a ticker's series
// prefix, or "" when the series is not a tracked game-winner series.
func SportForTicker(ticker string) string {
	series := ticker
	if idx := strings.Index(ticker, "-"); idx > 0 {
		series = ticker[:idx]
	}
	for sport, s := range seriesBySport {
		if s == series {
			return sport
		}
	}
	return ""
}
