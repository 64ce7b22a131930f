// Package config provides configuration management for the Kalshi Scout
// application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment
// variables. It expands environment variable placeholders in the YAML
// file (${VAR_NAME}) and falls back to defaults when the file is absent.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix("KALSHI_SCOUT")

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		// Expand environment variables in the configuration (${VAR} syntax)
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If the file doesn't exist, continue with defaults and environment variables

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults registers defaults so a minimal config file still yields a
// runnable scanner.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "kalshi-scout")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("providers.odds_api.base_url", "https://api.the-odds-api.com/v4")
	v.SetDefault("providers.odds_api.regions", "us")
	v.SetDefault("providers.kalshi.base_url", "https://api.elections.kalshi.com/trade-api/v2")
	v.SetDefault("providers.kalshi.stream_url", "wss://api.elections.kalshi.com/trade-api/ws/v2")

	v.SetDefault("scan.sports", []string{"americanfootball_nfl", "basketball_nba"})
	v.SetDefault("scan.min_net_edge", 0.02)
	v.SetDefault("scan.min_similarity", 0.6)
	v.SetDefault("scan.commence_tolerance_minutes", 360)
	v.SetDefault("scan.fee_schedule", "taker")
	v.SetDefault("scan.tiers", []map[string]interface{}{
		{"min_bookmakers": 0, "label": "LOW"},
		{"min_bookmakers": 3, "label": "MEDIUM"},
		{"min_bookmakers": 7, "label": "HIGH"},
	})
	v.SetDefault("scan.sizing_contracts", []int{1, 10, 50, 100})

	v.SetDefault("http.timeout_seconds", 30)
	v.SetDefault("http.max_retries", 3)
	v.SetDefault("http.rate_limit", 5.0)

	v.SetDefault("cache.market_ttl_seconds", 300)

	v.SetDefault("watch.cron", "*/10 * * * *")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("output.export_path", "./output")
}
