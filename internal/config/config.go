// Package config provides configuration management for the Kalshi Scout
// application.
package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Providers ProvidersConfig `mapstructure:"providers" validate:"required"`
	Scan      ScanConfig      `mapstructure:"scan" validate:"required"`
	HTTP      HTTPConfig      `mapstructure:"http" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Output    OutputConfig    `mapstructure:"output"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ProvidersConfig groups the two external data providers
type ProvidersConfig struct {
	OddsAPI OddsAPIConfig `mapstructure:"odds_api" validate:"required"`
	Kalshi  KalshiConfig  `mapstructure:"kalshi" validate:"required"`
}

// OddsAPIConfig represents The Odds API client configuration
type OddsAPIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key"`
	Regions string `mapstructure:"regions"`
}

// KalshiConfig represents the Kalshi API client configuration
type KalshiConfig struct {
	BaseURL   string `mapstructure:"base_url" validate:"required,url"`
	StreamURL string `mapstructure:"stream_url"`
	APIKey    string `mapstructure:"api_key"`
}

// ScanConfig represents valuation pipeline configuration
type ScanConfig struct {
	Sports                   []string          `mapstructure:"sports" validate:"required,min=1,dive,sportkey"`
	MinNetEdge               float64           `mapstructure:"min_net_edge" validate:"gte=0,lte=1"`
	MinSimilarity            float64           `mapstructure:"min_similarity" validate:"gt=0,lte=1"`
	CommenceToleranceMinutes int               `mapstructure:"commence_tolerance_minutes" validate:"gt=0"`
	FeeSchedule              string            `mapstructure:"fee_schedule" validate:"required,oneof=taker maker"`
	Tiers                    []TierConfig      `mapstructure:"tiers" validate:"required,min=1,dive"`
	TeamAliases              map[string]string `mapstructure:"team_aliases"`
	SizingContracts          []int             `mapstructure:"sizing_contracts" validate:"omitempty,dive,gt=0"`
}

// TierConfig represents one confidence tier boundary; tiers are data,
// not code, and must arrive ordered by ascending min_bookmakers.
type TierConfig struct {
	MinBookmakers int    `mapstructure:"min_bookmakers" validate:"gte=0"`
	Label         string `mapstructure:"label" validate:"required,oneof=LOW MEDIUM HIGH"`
}

// HTTPConfig represents outbound HTTP client configuration
type HTTPConfig struct {
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
}

// CacheConfig represents market-listing cache configuration
type CacheConfig struct {
	MarketTTLSeconds int `mapstructure:"market_ttl_seconds" validate:"gte=0"`
}

// WatchConfig represents repeated-scan (watch mode) configuration
type WatchConfig struct {
	Cron          string `mapstructure:"cron"`
	StreamEnabled bool   `mapstructure:"stream_enabled"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// OutputConfig represents CSV export configuration
type OutputConfig struct {
	ExportPath string `mapstructure:"export_path"`
}

// CommenceTolerance returns the matcher's time window as a duration
func (c *ScanConfig) CommenceTolerance() time.Duration {
	return time.Duration(c.CommenceToleranceMinutes) * time.Minute
}

// MarketTTL returns the market cache TTL as a duration
func (c *CacheConfig) MarketTTL() time.Duration {
	return time.Duration(c.MarketTTLSeconds) * time.Second
}

// Timeout returns the HTTP client timeout as a duration
func (c *HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
