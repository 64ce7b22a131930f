// Package metrics provides the centralized Prometheus metrics registry for
// the scanner.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ScansTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "kalshi_scout",
		Name:      "scans_total",
		Help:      "Total number of scan runs",
	})
	ScanErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "kalshi_scout",
		Name:      "scan_errors_total",
		Help:      "Total number of scan runs that failed",
	})
	OpportunitiesFoundTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kalshi_scout",
		Name:      "opportunities_found_total",
		Help:      "Total number of opportunities found, by tier",
	}, []string{"tier"})
	PairsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kalshi_scout",
		Name:      "pairs_skipped_total",
		Help:      "Total number of matched pairs skipped during valuation, by reason",
	}, []string{"reason"})
	ProviderErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kalshi_scout",
		Name:      "provider_errors_total",
		Help:      "Total number of provider fetch failures, by provider",
	}, []string{"provider"})
)

// Gauge metrics
var (
	LastScanTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "kalshi_scout",
		Name:      "last_scan_timestamp_seconds",
		Help:      "Unix time of the most recent completed scan",
	})
	EventsMatched = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "kalshi_scout",
		Name:      "events_matched",
		Help:      "Number of event/contract pairs matched in the last scan",
	})
	ProviderQuotaRemaining = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "kalshi_scout",
		Name:      "provider_quota_remaining",
		Help:      "Remaining request quota reported by the odds provider",
	})
)

// Histogram metrics
var (
	FetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kalshi_scout",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of provider fetches in seconds, by provider",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})
	ScanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "kalshi_scout",
		Name:      "scan_duration_seconds",
		Help:      "End-to-end duration of scan runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ScansTotal)
		registry.MustRegister(ScanErrorsTotal)
		registry.MustRegister(OpportunitiesFoundTotal)
		registry.MustRegister(PairsSkippedTotal)
		registry.MustRegister(ProviderErrorsTotal)

		registry.MustRegister(LastScanTimestamp)
		registry.MustRegister(EventsMatched)
		registry.MustRegister(ProviderQuotaRemaining)

		registry.MustRegister(FetchDuration)
		registry.MustRegister(ScanDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordScan records a completed scan run.
func RecordScan(durationSeconds float64) {
	ScansTotal.Inc()
	ScanDuration.Observe(durationSeconds)
}

// RecordScanError records a failed scan run.
func RecordScanError() {
	ScanErrorsTotal.Inc()
}

// RecordOpportunity records a found opportunity by tier.
func RecordOpportunity(tier string) {
	OpportunitiesFoundTotal.WithLabelValues(tier).Inc()
}

// RecordSkip records a skipped pair by reason.
func RecordSkip(reason string) {
	PairsSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordProviderError records a provider fetch failure.
func RecordProviderError(provider string) {
	ProviderErrorsTotal.WithLabelValues(provider).Inc()
}

// RecordFetchDuration records how long a provider fetch took.
func RecordFetchDuration(provider string, durationSeconds float64) {
	FetchDuration.WithLabelValues(provider).Observe(durationSeconds)
}
