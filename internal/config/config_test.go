// Package config provides configuration management for the Kalshi Scout
// application.
package config

import (
	"os"
	"testing"
	"time"
)

const (
	validConfigPath              = "testdata/valid_config.yaml"
	nonexistentConfigPath        = "testdata/nonexistent_config.yaml"
	expectedNoErrorLoadingConfig = "expected no error loading config, got %v"
	expectedNoErrorMsg           = "expected no error, got %v"
	expectedNonNilConfig         = "expected non-nil config"
	scoutName                    = "kalshi-scout"
	developmentEnv               = "development"
	invalidEnv                   = "invalid"
	testAppName                  = "test-app"
	testOddsAPIKey               = "ODDS_API_KEY"
	expandedSecretValue          = "expanded_secret_value"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg == nil {
		t.Fatal(expectedNonNilConfig)
	}

	if cfg.App.Name != scoutName {
		t.Errorf("expected app name '%s', got '%s'", scoutName, cfg.App.Name)
	}

	if cfg.App.Environment != developmentEnv {
		t.Errorf("expected environment '%s', got '%s'", developmentEnv, cfg.App.Environment)
	}

	if len(cfg.Scan.Sports) != 2 {
		t.Errorf("expected 2 sports, got %d", len(cfg.Scan.Sports))
	}

	if cfg.Scan.MinNetEdge != 0.03 {
		t.Errorf("expected min_net_edge 0.03, got %v", cfg.Scan.MinNetEdge)
	}

	if cfg.Scan.TeamAliases["gotham knights"] != "gkn" {
		t.Errorf("expected team alias for gotham knights, got %v", cfg.Scan.TeamAliases)
	}
}

// TestLoadConfigMissingFileUsesDefaults tests that a missing config file
// falls back to defaults rather than failing
func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Name != scoutName {
		t.Errorf("expected default app name '%s', got '%s'", scoutName, cfg.App.Name)
	}

	if cfg.Scan.MinNetEdge != 0.02 {
		t.Errorf("expected default min_net_edge 0.02, got %v", cfg.Scan.MinNetEdge)
	}

	if cfg.Scan.FeeSchedule != "taker" {
		t.Errorf("expected default fee schedule 'taker', got '%s'", cfg.Scan.FeeSchedule)
	}
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	os.Setenv("KALSHI_SCOUT_APP_NAME", testAppName)
	defer os.Unsetenv("KALSHI_SCOUT_APP_NAME")

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Name != testAppName {
		t.Errorf("expected app name '%s' from environment, got '%s'", testAppName, cfg.App.Name)
	}
}

// TestLoadConfigEnvironmentVariableExpansion tests ${VAR} expansion in
// the config file body
func TestLoadConfigEnvironmentVariableExpansion(t *testing.T) {
	os.Setenv(testOddsAPIKey, expandedSecretValue)
	defer os.Unsetenv(testOddsAPIKey)

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if cfg.Providers.OddsAPI.APIKey != expandedSecretValue {
		t.Errorf("expected API key '%s' from expansion, got '%s'", expandedSecretValue, cfg.Providers.OddsAPI.APIKey)
	}
}

// TestValidateSuccess tests validation of a valid configuration
func TestValidateSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	err = Validate(cfg)
	if err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

// TestValidateInvalidEnvironment tests validation of invalid environment
func TestValidateInvalidEnvironment(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.App.Environment = invalidEnv
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for invalid environment")
	}
}

// TestValidateInvalidSportKey tests validation of malformed sport keys
func TestValidateInvalidSportKey(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Scan.Sports = []string{"NBA"}
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for malformed sport key")
	}
}

// TestValidateEmptySports tests validation of an empty sports list
func TestValidateEmptySports(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Scan.Sports = []string{}
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for empty sports list")
	}
}

// TestValidateTierOrdering tests cross-field tier boundary checks
func TestValidateTierOrdering(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Scan.Tiers = []TierConfig{
		{MinBookmakers: 0, Label: "LOW"},
		{MinBookmakers: 5, Label: "MEDIUM"},
		{MinBookmakers: 3, Label: "HIGH"},
	}
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for unordered tiers")
	}

	cfg.Scan.Tiers = []TierConfig{
		{MinBookmakers: 2, Label: "LOW"},
	}
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for tiers not anchored at zero")
	}
}

// TestValidateProductionRequiresAPIKey tests production-only requirements
func TestValidateProductionRequiresAPIKey(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.App.Environment = "production"
	cfg.Providers.OddsAPI.APIKey = ""
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for missing API key in production")
	}
}

// TestDurationHelpers tests the duration conversion helpers
func TestDurationHelpers(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if cfg.Scan.CommenceTolerance() != 240*time.Minute {
		t.Errorf("expected commence tolerance 240m, got %v", cfg.Scan.CommenceTolerance())
	}

	if cfg.Cache.MarketTTL() != 120*time.Second {
		t.Errorf("expected market TTL 120s, got %v", cfg.Cache.MarketTTL())
	}

	if cfg.HTTP.Timeout() != 15*time.Second {
		t.Errorf("expected HTTP timeout 15s, got %v", cfg.HTTP.Timeout())
	}
}

// TestIsDevelopment tests environment check function
func TestIsDevelopment(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: developmentEnv},
	}

	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return true")
	}

	if cfg.IsProduction() {
		t.Error("expected IsProduction() to return false")
	}
}

// TestIsProduction tests production environment check
func TestIsProduction(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: "production"},
	}

	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to return true")
	}

	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return false")
	}
}

// TestOverlaySecretsOnConfig tests that fetched secrets replace only the
// fields they carry
func TestOverlaySecretsOnConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Providers.OddsAPI.APIKey = "original"

	overlaySecretsOnConfig(cfg, &SecretsOverlay{KalshiAPIKey: "kalshi-secret"})

	if cfg.Providers.OddsAPI.APIKey != "original" {
		t.Errorf("expected odds API key untouched, got '%s'", cfg.Providers.OddsAPI.APIKey)
	}
	if cfg.Providers.Kalshi.APIKey != "kalshi-secret" {
		t.Errorf("expected kalshi API key overlaid, got '%s'", cfg.Providers.Kalshi.APIKey)
	}
}
