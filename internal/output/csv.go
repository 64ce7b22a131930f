package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/kalshi-scout/internal/fees"
	"github.com/yourusername/kalshi-scout/internal/models"
	"github.com/yourusername/kalshi-scout/internal/valuation"
)

const historyFilename = "opportunity_history.csv"

// CSVExporter writes opportunity reports under the configured export
// directory.
type CSVExporter struct {
	exportPath string
	schedule   fees.Schedule
	logger     *logrus.Logger
}

// NewCSVExporter creates a CSV exporter rooted at exportPath
func NewCSVExporter(exportPath string, schedule fees.Schedule, logger *logrus.Logger) *CSVExporter {
	if exportPath == "" {
		exportPath = "./output"
	}
	if schedule.ID == "" {
		schedule = fees.Taker
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &CSVExporter{exportPath: exportPath, schedule: schedule, logger: logger}
}

// Export writes the standard per-opportunity report to a timestamped
// file and returns its path
func (e *CSVExporter) Export(opps []models.Opportunity) (string, error) {
	filename := fmt.Sprintf("value_bets_%s.csv", time.Now().Format("20060102_150405"))

	header := []string{
		"sport", "matchup", "ticker", "team", "action", "price_cents",
		"market_prob", "true_prob", "gross_edge", "net_edge",
		"fee_per_contract", "ev_per_contract", "ev_100_contracts",
		"num_bookmakers", "confidence",
	}

	rows := make([][]string, 0, len(opps))
	for i := range opps {
		opp := &opps[i]
		rows = append(rows, []string{
			opp.Sport,
			opp.Matchup,
			opp.Ticker,
			opp.Team,
			string(opp.Action),
			strconv.Itoa(opp.PriceCents),
			fmt.Sprintf("%.4f", opp.MarketProb),
			fmt.Sprintf("%.4f", opp.TrueProb),
			fmt.Sprintf("%.4f", opp.GrossEdge),
			fmt.Sprintf("%.4f", opp.NetEdge),
			opp.FeePerContract.StringFixed(4),
			opp.EVPerContract.StringFixed(4),
			e.ev100(opp).StringFixed(2),
			strconv.Itoa(opp.BookmakerCount),
			string(opp.Tier),
		})
	}

	path, err := e.writeFile(filename, header, rows, false)
	if err != nil {
		return "", err
	}

	e.logger.WithFields(logrus.Fields{
		"path":          path,
		"opportunities": len(opps),
	}).Info("Exported opportunities to CSV")
	return path, nil
}

// ExportDetailed writes the condensed human-report variant with
// formatted percentages and a scan timestamp
func (e *CSVExporter) ExportDetailed(opps []models.Opportunity) (string, error) {
	filename := fmt.Sprintf("value_bets_detailed_%s.csv", time.Now().Format("20060102_150405"))
	timestamp := time.Now().Format(time.RFC3339)

	header := []string{
		"timestamp", "sport", "matchup", "ticker", "recommendation",
		"net_edge_pct", "ev_100_contracts", "num_bookmakers", "confidence",
	}

	rows := make([][]string, 0, len(opps))
	for i := range opps {
		opp := &opps[i]
		rows = append(rows, []string{
			timestamp,
			opp.Sport,
			opp.Matchup,
			opp.Ticker,
			opp.DisplayAction(),
			fmt.Sprintf("%.2f%%", opp.NetEdge*100),
			"$" + e.ev100(opp).StringFixed(2),
			strconv.Itoa(opp.BookmakerCount),
			string(opp.Tier),
		})
	}

	path, err := e.writeFile(filename, header, rows, false)
	if err != nil {
		return "", err
	}

	e.logger.WithField("path", path).Info("Exported detailed report")
	return path, nil
}

// AppendHistory appends opportunities to the rolling history file,
// writing the header only when the file is new
func (e *CSVExporter) AppendHistory(opps []models.Opportunity) (string, error) {
	timestamp := time.Now().Format(time.RFC3339)

	header := []string{
		"scan_timestamp", "sport", "matchup", "ticker", "action", "team",
		"net_edge", "ev_100_contracts", "confidence",
	}

	rows := make([][]string, 0, len(opps))
	for i := range opps {
		opp := &opps[i]
		rows = append(rows, []string{
			timestamp,
			opp.Sport,
			opp.Matchup,
			opp.Ticker,
			string(opp.Action),
			opp.Team,
			fmt.Sprintf("%.4f", opp.NetEdge),
			e.ev100(opp).StringFixed(2),
			string(opp.Tier),
		})
	}

	path, err := e.writeFile(historyFilename, header, rows, true)
	if err != nil {
		return "", err
	}

	e.logger.WithFields(logrus.Fields{
		"path":          path,
		"opportunities": len(opps),
	}).Info("Appended opportunities to history")
	return path, nil
}

// writeFile writes (or appends) CSV rows, creating the export directory
// on demand
func (e *CSVExporter) writeFile(filename string, header []string, rows [][]string, appendMode bool) (string, error) {
	if err := os.MkdirAll(e.exportPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(e.exportPath, filename)

	flags := os.O_CREATE | os.O_WRONLY
	writeHeader := true
	if appendMode {
		flags |= os.O_APPEND
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			writeHeader = false
		}
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return "", fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to write rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}

	return path, nil
}

// ev100 returns the expected value of a 100-contract position
func (e *CSVExporter) ev100(opp *models.Opportunity) decimal.Decimal {
	rows, err := valuation.SizingTable(opp, e.schedule, []int{100})
	if err != nil || len(rows) == 0 {
		return decimal.Zero
	}
	return rows[0].ExpectedValue
}
