package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/kalshi-scout/internal/models"
)

// OddsProvider defines the interface for fetching sportsbook odds from an
// external aggregator.
type OddsProvider interface {
	// FetchEvents retrieves upcoming events with moneyline quotes for a
	// provider sport key (e.g. "basketball_nba")
	FetchEvents(ctx context.Context, sportKey string) ([]models.VegasEvent, error)

	// QuotaRemaining returns the request quota left on the provider
	// account, or -1 when unknown
	QuotaRemaining() int

	// Name returns the name of the data source
	Name() string
}

// MarketProvider defines the interface for fetching prediction-market
// contract listings.
type MarketProvider interface {
	// FetchContracts retrieves open contracts for a venue sport code
	// (e.g. "nba")
	FetchContracts(ctx context.Context, sport string) ([]models.MarketContract, error)

	// Name returns the name of the data source
	Name() string
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// Error constructors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
