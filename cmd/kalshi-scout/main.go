// Package main provides the entry point for the value scanner CLI.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/kalshi-scout/internal/config"
	"github.com/yourusername/kalshi-scout/internal/datasource"
	"github.com/yourusername/kalshi-scout/internal/fees"
	"github.com/yourusername/kalshi-scout/internal/health"
	"github.com/yourusername/kalshi-scout/internal/logger"
	"github.com/yourusername/kalshi-scout/internal/matcher"
	"github.com/yourusername/kalshi-scout/internal/metrics"
	"github.com/yourusername/kalshi-scout/internal/models"
	"github.com/yourusername/kalshi-scout/internal/output"
	"github.com/yourusername/kalshi-scout/internal/scheduler"
	"github.com/yourusername/kalshi-scout/internal/service"
	"github.com/yourusername/kalshi-scout/internal/valuation"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// allSportKeys are the provider sport keys with a matching venue series.
var allSportKeys = []string{
	"americanfootball_nfl",
	"basketball_nba",
	"basketball_ncaab",
	"basketball_wncaab",
	"icehockey_nhl",
	"baseball_mlb",
}

var (
	configFile     string
	minEdge        float64
	sports         []string
	allSports      bool
	exportCSV      bool
	detailedExport bool
	trackHistory   bool
	compact        bool
	dryRun         bool
	watch          bool

	cfg    *config.Config
	appLog *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().Float64Var(&minEdge, "min-edge", 0, "Override the minimum net edge threshold (e.g. 0.03)")
	rootCmd.Flags().StringSliceVar(&sports, "sports", nil, "Sport keys to scan (overrides config)")
	rootCmd.Flags().BoolVar(&allSports, "all-sports", false, "Scan every supported sport")
	rootCmd.Flags().BoolVar(&exportCSV, "export-csv", false, "Export results to a CSV file")
	rootCmd.Flags().BoolVar(&detailedExport, "detailed-export", false, "Also export the detailed CSV report")
	rootCmd.Flags().BoolVar(&trackHistory, "track-history", false, "Append results to the history CSV")
	rootCmd.Flags().BoolVar(&compact, "compact", false, "Print a compact table instead of full cards")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate configuration and exit without fetching")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "Keep scanning on the configured cron schedule")
}

var rootCmd = &cobra.Command{
	Use:   "kalshi-scout",
	Short: "Scan for value discrepancies between Vegas odds and Kalshi prices",
	Long: `Fetches moneyline odds from The Odds API and game-winner contracts from
Kalshi, aligns the two catalogs, and reports contracts priced below the
devigged Vegas consensus after venue fees.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if dryRun {
			printResolvedConfig()
			return nil
		}
		if watch {
			return runWatch()
		}
		return runOnce()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// setup loads, overlays, and validates configuration, then builds the logger
func setup() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	applyFlagOverrides()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"version":     Version,
		"environment": cfg.App.Environment,
		"sports":      cfg.Scan.Sports,
	}).Info("Kalshi Scout starting")

	return nil
}

// applyFlagOverrides lets CLI flags win over file and env settings
func applyFlagOverrides() {
	if minEdge > 0 {
		cfg.Scan.MinNetEdge = minEdge
	}
	if allSports {
		cfg.Scan.Sports = allSportKeys
	} else if len(sports) > 0 {
		cfg.Scan.Sports = sports
	}
}

// buildScanner wires providers and pipeline stages from configuration.
// The cached market provider is returned separately so watch mode can
// invalidate it on streamed price updates.
func buildScanner() (*service.Scanner, *datasource.CachedMarketProvider) {
	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.Timeout = cfg.HTTP.Timeout()
	httpCfg.MaxRetries = cfg.HTTP.MaxRetries
	httpCfg.RateLimit = cfg.HTTP.RateLimit
	httpClient := datasource.NewRateLimitedHTTPClient(httpCfg, appLog)

	oddsClient := datasource.NewOddsAPIClient(
		httpClient,
		cfg.Providers.OddsAPI.BaseURL,
		cfg.Providers.OddsAPI.APIKey,
		cfg.Providers.OddsAPI.Regions,
		appLog,
	)
	kalshiClient := datasource.NewKalshiClient(
		httpClient,
		cfg.Providers.Kalshi.BaseURL,
		cfg.Providers.Kalshi.APIKey,
		appLog,
	)
	markets := datasource.NewCachedMarketProvider(kalshiClient, cfg.Cache.MarketTTL(), appLog)

	m := matcher.New(matcher.Config{
		MinSimilarity:     cfg.Scan.MinSimilarity,
		CommenceTolerance: cfg.Scan.CommenceTolerance(),
		Aliases:           cfg.Scan.TeamAliases,
	})

	finder := valuation.NewFinder(valuation.Config{
		MinNetEdge: cfg.Scan.MinNetEdge,
		Tiers:      tierRules(),
		Fees:       fees.ScheduleByID(cfg.Scan.FeeSchedule),
	}, appLog)

	return service.NewScanner(oddsClient, markets, m, finder, cfg.Scan.Sports, appLog), markets
}

// tierRules converts configured tiers into valuation rules
func tierRules() []valuation.TierRule {
	rules := make([]valuation.TierRule, 0, len(cfg.Scan.Tiers))
	for _, tier := range cfg.Scan.Tiers {
		rules = append(rules, valuation.TierRule{
			MinBookmakers: tier.MinBookmakers,
			Label:         models.Tier(tier.Label),
		})
	}
	return rules
}

// runOnce performs a single scan and renders the results
func runOnce() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	scanner, _ := buildScanner()
	result, err := scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	renderResult(result)
	return exportResult(result)
}

// runWatch keeps scanning on the configured cron schedule until interrupted
func runWatch() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	scanner, markets := buildScanner()

	if cfg.Watch.StreamEnabled {
		if err := startStream(ctx, markets); err != nil {
			appLog.WithError(err).Warn("Price stream unavailable, relying on cache TTL")
		}
	}

	var monitor *health.Server
	if cfg.Metrics.Enabled {
		monitor = health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Commit:      GitCommit,
			Port:        strconv.Itoa(cfg.Metrics.Port),
			MetricsPath: cfg.Metrics.Path,
			Metrics:     metrics.Handler(),
			Logger:      appLog,
		})
		if err := monitor.Start(ctx); err != nil {
			return fmt.Errorf("failed to start monitoring server: %w", err)
		}
		monitor.SetReady(true)
	}

	sched := scheduler.NewScheduler(scanner, appLog)
	err := sched.ScheduleScan(cfg.Watch.Cron, func(result *service.ScanResult) {
		renderResult(result)
		if err := exportResult(result); err != nil {
			appLog.WithError(err).Error("Export failed")
		}
		if monitor != nil {
			monitor.RecordScan()
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule scans: %w", err)
	}

	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	appLog.WithField("next_run", sched.NextRun()).Info("Watch mode running")

	<-ctx.Done()
	appLog.Info("Shutting down")
	return sched.Stop()
}

// startStream connects the Kalshi price stream and invalidates the
// market cache whenever a tracked game ticker moves, so the next scan
// refetches that sport's listing instead of waiting out the TTL.
func startStream(ctx context.Context, markets *datasource.CachedMarketProvider) error {
	stream := datasource.NewStreamClient(cfg.Providers.Kalshi.StreamURL, cfg.Providers.Kalshi.APIKey, appLog)
	stream.AddHandler(func(update datasource.TickerUpdate) error {
		if sport := datasource.SportForTicker(update.Ticker); sport != "" {
			markets.Invalidate(sport)
		}
		return nil
	})

	if err := stream.Connect(ctx); err != nil {
		return err
	}
	if err := stream.SubscribeToTickers(ctx, nil); err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		stream.Close()
	}()
	return nil
}

// renderResult prints the scan result to stdout
func renderResult(result *service.ScanResult) {
	console := output.NewConsole(os.Stdout, fees.ScheduleByID(cfg.Scan.FeeSchedule), cfg.Scan.SizingContracts)
	if compact {
		console.PrintCompact(result.Opportunities)
	} else {
		console.PrintOpportunities(result.Opportunities)
	}
	console.PrintSummary(result.EventsFetched, result.ContractsFetched, result.Opportunities)

	if result.QuotaRemaining >= 0 {
		fmt.Fprintf(os.Stdout, "Odds API quota remaining: %d\n", result.QuotaRemaining)
	}
}

// exportResult writes the requested CSV artifacts
func exportResult(result *service.ScanResult) error {
	if !exportCSV && !detailedExport && !trackHistory {
		return nil
	}
	if len(result.Opportunities) == 0 {
		appLog.Info("Nothing to export")
		return nil
	}

	exporter := output.NewCSVExporter(cfg.Output.ExportPath, fees.ScheduleByID(cfg.Scan.FeeSchedule), appLog)
	if exportCSV {
		if _, err := exporter.Export(result.Opportunities); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
	}
	if detailedExport {
		if _, err := exporter.ExportDetailed(result.Opportunities); err != nil {
			return fmt.Errorf("detailed export: %w", err)
		}
	}
	if trackHistory {
		if _, err := exporter.AppendHistory(result.Opportunities); err != nil {
			return fmt.Errorf("history export: %w", err)
		}
	}
	return nil
}

// printResolvedConfig shows the effective settings for a dry run
func printResolvedConfig() {
	fmt.Println("Configuration OK")
	fmt.Printf("  Environment:        %s\n", cfg.App.Environment)
	fmt.Printf("  Sports:             %v\n", cfg.Scan.Sports)
	fmt.Printf("  Min net edge:       %.4f\n", cfg.Scan.MinNetEdge)
	fmt.Printf("  Min similarity:     %.2f\n", cfg.Scan.MinSimilarity)
	fmt.Printf("  Commence tolerance: %s\n", cfg.Scan.CommenceTolerance())
	fmt.Printf("  Fee schedule:       %s\n", cfg.Scan.FeeSchedule)
	fmt.Printf("  Market cache TTL:   %s\n", cfg.Cache.MarketTTL())
	fmt.Printf("  Export path:        %s\n", cfg.Output.ExportPath)
	if watch {
		fmt.Printf("  Watch cron:         %s\n", cfg.Watch.Cron)
	}
}
