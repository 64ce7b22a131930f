// Package service orchestrates the scan pipeline: fetch odds and market
// listings, match them, and value the matched pairs.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/kalshi-scout/internal/datasource"
	"github.com/yourusername/kalshi-scout/internal/matcher"
	"github.com/yourusername/kalshi-scout/internal/metrics"
	"github.com/yourusername/kalshi-scout/internal/models"
	"github.com/yourusername/kalshi-scout/internal/valuation"
)

// Scanner runs the fetch-match-value pipeline across configured sports.
type Scanner struct {
	odds    datasource.OddsProvider
	markets datasource.MarketProvider
	matcher *matcher.Matcher
	finder  *valuation.Finder
	sports  []string
	logger  *logrus.Logger
}

// ScanResult summarizes one scan run.
type ScanResult struct {
	RunID            uuid.UUID
	StartedAt        time.Time
	Duration         time.Duration
	EventsFetched    int
	ContractsFetched int
	PairsMatched     int
	Opportunities    []models.Opportunity
	Skips            []models.SkipRecord
	QuotaRemaining   int
}

// sportFetch carries one sport's fetched data across the pipeline
type sportFetch struct {
	sportKey  string
	events    []models.VegasEvent
	contracts []models.MarketContract
	err       error
}

// NewScanner creates a scanner over the given providers and pipeline stages
func NewScanner(
	odds datasource.OddsProvider,
	markets datasource.MarketProvider,
	m *matcher.Matcher,
	finder *valuation.Finder,
	sports []string,
	logger *logrus.Logger,
) *Scanner {
	if logger == nil {
		logger = logrus.New()
	}
	return &Scanner{
		odds:    odds,
		markets: markets,
		matcher: m,
		finder:  finder,
		sports:  sports,
		logger:  logger,
	}
}

// Scan fetches both sources for every configured sport, matches events
// to contracts, and values the matched pairs. Sports whose fetch fails
// are logged and skipped; the scan fails only when every sport fails.
func (s *Scanner) Scan(ctx context.Context) (*ScanResult, error) {
	result := &ScanResult{
		RunID:          uuid.New(),
		StartedAt:      time.Now(),
		QuotaRemaining: -1,
	}

	log := s.logger.WithFields(logrus.Fields{
		"run_id": result.RunID,
		"sports": s.sports,
	})
	log.Info("Starting scan")

	fetches := s.fetchAll(ctx)

	var failures int
	var allPairs []models.MatchedPair
	for _, fetch := range fetches {
		if fetch.err != nil {
			failures++
			metrics.RecordProviderError(s.providerLabel(fetch.err))
			log.WithFields(logrus.Fields{
				"sport": fetch.sportKey,
				"error": fetch.err,
			}).Error("Fetch failed, skipping sport")
			continue
		}

		result.EventsFetched += len(fetch.events)
		result.ContractsFetched += len(fetch.contracts)

		pairs, err := s.matcher.Match(fetch.events, fetch.contracts)
		if err != nil {
			return nil, fmt.Errorf("matching %s: %w", fetch.sportKey, err)
		}
		allPairs = append(allPairs, pairs...)
	}

	if failures == len(s.sports) && len(s.sports) > 0 {
		metrics.RecordScanError()
		return nil, fmt.Errorf("all %d sports failed to fetch", failures)
	}

	result.PairsMatched = len(allPairs)
	result.Opportunities, result.Skips = s.finder.Find(allPairs)
	result.QuotaRemaining = s.odds.QuotaRemaining()
	result.Duration = time.Since(result.StartedAt)

	s.recordMetrics(result)

	log.WithFields(logrus.Fields{
		"events":        result.EventsFetched,
		"contracts":     result.ContractsFetched,
		"pairs":         result.PairsMatched,
		"opportunities": len(result.Opportunities),
		"skips":         len(result.Skips),
		"duration":      result.Duration,
	}).Info("Scan complete")

	return result, nil
}

// fetchAll retrieves events and contracts for every sport concurrently.
// Each sport issues its two provider calls in parallel as well.
func (s *Scanner) fetchAll(ctx context.Context) []sportFetch {
	fetches := make([]sportFetch, len(s.sports))

	var wg sync.WaitGroup
	for i, sportKey := range s.sports {
		wg.Add(1)
		go func(i int, sportKey string) {
			defer wg.Done()
			fetches[i] = s.fetchSport(ctx, sportKey)
		}(i, sportKey)
	}
	wg.Wait()

	return fetches
}

// fetchSport retrieves the odds events and market contracts for one sport
func (s *Scanner) fetchSport(ctx context.Context, sportKey string) sportFetch {
	fetch := sportFetch{sportKey: sportKey}
	venueSport := matcher.VenueSport(sportKey)

	var wg sync.WaitGroup
	var eventsErr, contractsErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		start := time.Now()
		fetch.events, eventsErr = s.odds.FetchEvents(ctx, sportKey)
		metrics.RecordFetchDuration(s.odds.Name(), time.Since(start).Seconds())
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		fetch.contracts, contractsErr = s.markets.FetchContracts(ctx, venueSport)
		metrics.RecordFetchDuration(s.markets.Name(), time.Since(start).Seconds())
	}()
	wg.Wait()

	if eventsErr != nil {
		fetch.err = fmt.Errorf("odds fetch: %w", eventsErr)
	} else if contractsErr != nil {
		fetch.err = fmt.Errorf("market fetch: %w", contractsErr)
	}
	return fetch
}

// recordMetrics publishes scan counters and gauges
func (s *Scanner) recordMetrics(result *ScanResult) {
	metrics.RecordScan(result.Duration.Seconds())
	metrics.LastScanTimestamp.Set(float64(result.StartedAt.Unix()))
	metrics.EventsMatched.Set(float64(result.PairsMatched))
	if result.QuotaRemaining >= 0 {
		metrics.ProviderQuotaRemaining.Set(float64(result.QuotaRemaining))
	}
	for _, opp := range result.Opportunities {
		metrics.RecordOpportunity(string(opp.Tier))
	}
	for _, skip := range result.Skips {
		metrics.RecordSkip(skip.Reason)
	}
}

// providerLabel attributes a fetch failure to a provider for metrics
func (s *Scanner) providerLabel(err error) string {
	var dsErr datasource.DataSourceError
	if errors.As(err, &dsErr) {
		return dsErr.Source
	}
	return "unknown"
}
