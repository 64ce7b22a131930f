// Package output renders scan results for humans (console) and for
// spreadsheets (CSV).
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/kalshi-scout/internal/fees"
	"github.com/yourusername/kalshi-scout/internal/models"
	"github.com/yourusername/kalshi-scout/internal/valuation"
)

// sportDisplayNames maps provider sport keys to short display labels.
var sportDisplayNames = map[string]string{
	"americanfootball_nfl": "NFL",
	"basketball_nba":       "NBA",
	"basketball_ncaab":     "NCAAB",
	"basketball_wncaab":    "WNCAAB",
	"icehockey_nhl":        "NHL",
	"baseball_mlb":         "MLB",
}

// Console renders opportunities as full cards, a compact table, or a
// run summary.
type Console struct {
	w            io.Writer
	schedule     fees.Schedule
	sizingCounts []int
}

// NewConsole creates a console renderer. The fee schedule and sizing
// counts drive the per-opportunity position table.
func NewConsole(w io.Writer, schedule fees.Schedule, sizingCounts []int) *Console {
	if schedule.ID == "" {
		schedule = fees.Taker
	}
	if len(sizingCounts) == 0 {
		sizingCounts = valuation.DefaultSizingCounts
	}
	return &Console{w: w, schedule: schedule, sizingCounts: sizingCounts}
}

// SportDisplayName returns the short label for a provider sport key
func SportDisplayName(sportKey string) string {
	if name, ok := sportDisplayNames[sportKey]; ok {
		return name
	}
	return strings.ToUpper(sportKey)
}

// PrintOpportunities renders the full card view for every opportunity
func (c *Console) PrintOpportunities(opps []models.Opportunity) {
	fmt.Fprintf(c.w, "\n%s\n", strings.Repeat("=", 80))
	fmt.Fprintln(c.w, "VEGAS-KALSHI VALUE OPPORTUNITIES")
	fmt.Fprintf(c.w, "%s\n\n", strings.Repeat("=", 80))

	if len(opps) == 0 {
		fmt.Fprintln(c.w, "No value opportunities found meeting criteria.")
		return
	}

	for i := range opps {
		c.printCard(&opps[i], i+1)
		fmt.Fprintln(c.w)
	}
}

// printCard renders one opportunity with its edge analysis and sizing table
func (c *Console) printCard(opp *models.Opportunity, index int) {
	fmt.Fprintf(c.w, "#%d | %s\n", index, SportDisplayName(opp.Sport))
	fmt.Fprintf(c.w, "   Matchup: %s\n\n", opp.Matchup)

	border := "   +" + strings.Repeat("-", 56) + "+"
	fmt.Fprintln(c.w, border)
	fmt.Fprintf(c.w, "   |%s|\n", center("TRADE ACTION", 56))
	fmt.Fprintln(c.w, border)
	fmt.Fprintf(c.w, "   |  Ticker: %-46s|\n", opp.Ticker)
	fmt.Fprintf(c.w, "   |  Action: %-46s|\n", opp.DisplayAction())
	fmt.Fprintf(c.w, "   |  Price:  %-46s|\n", fmt.Sprintf("%dc per contract", opp.PriceCents))
	fmt.Fprintln(c.w, border)
	fmt.Fprintln(c.w)

	fmt.Fprintln(c.w, "   Edge Analysis:")
	fmt.Fprintf(c.w, "     Vegas True Prob:  %s\n", formatPercent(opp.TrueProb, 1))
	fmt.Fprintf(c.w, "     Market Price:     %s (%dc)\n", formatPercent(opp.MarketProb, 1), opp.PriceCents)
	fmt.Fprintf(c.w, "     Gross Edge:       %s\n", formatPercent(opp.GrossEdge, 2))
	fmt.Fprintf(c.w, "     Fee/Contract:     $%s\n", opp.FeePerContract.StringFixed(4))
	fmt.Fprintf(c.w, "     NET EDGE:         %s\n\n", formatPercent(opp.NetEdge, 2))

	c.printSizing(opp)

	fmt.Fprintf(c.w, "   Confidence: %s (%d bookmakers)\n", opp.Tier, opp.BookmakerCount)
	fmt.Fprintln(c.w, strings.Repeat("-", 80))
}

// printSizing renders the position-sizing table for one opportunity
func (c *Console) printSizing(opp *models.Opportunity) {
	rows, err := valuation.SizingTable(opp, c.schedule, c.sizingCounts)
	if err != nil {
		return
	}

	fmt.Fprintln(c.w, "   Position Sizing (venue min = 1 contract):")
	fmt.Fprintln(c.w, "     Contracts    Cost         Profit if Win    EV")
	fmt.Fprintln(c.w, "     ----------   ----------   --------------   --------")
	for _, row := range rows {
		fmt.Fprintf(c.w, "     %-12d $%-11s $%-15s $%s\n",
			row.Contracts,
			row.Cost.StringFixed(2),
			row.ProfitIfWin.StringFixed(2),
			row.ExpectedValue.StringFixed(2))
	}
	fmt.Fprintln(c.w)
}

// PrintCompact renders a one-line-per-opportunity table
func (c *Console) PrintCompact(opps []models.Opportunity) {
	if len(opps) == 0 {
		fmt.Fprintln(c.w, "No opportunities found.")
		return
	}

	fmt.Fprintf(c.w, "\n%-7s %-9s %-25s %-30s %-7s %-8s %-8s\n",
		"Sport", "Action", "Team", "Ticker", "Price", "Edge", "EV(100)")
	fmt.Fprintln(c.w, strings.Repeat("-", 100))

	for i := range opps {
		opp := &opps[i]
		fmt.Fprintf(c.w, "%-7s %-9s %-25s %-30s %-7s %-8s $%-8s\n",
			truncate(SportDisplayName(opp.Sport), 6),
			opp.Action,
			truncate(opp.Team, 24),
			truncate(opp.Ticker, 29),
			fmt.Sprintf("%dc", opp.PriceCents),
			formatPercent(opp.NetEdge, 1),
			c.ev100(opp).StringFixed(2))
	}
	fmt.Fprintln(c.w)
}

// PrintSummary renders aggregate statistics for a scan run
func (c *Console) PrintSummary(eventCount, marketCount int, opps []models.Opportunity) {
	fmt.Fprintf(c.w, "\n%s\n", strings.Repeat("=", 60))
	fmt.Fprintln(c.w, "SUMMARY")
	fmt.Fprintln(c.w, strings.Repeat("=", 60))
	fmt.Fprintf(c.w, "Total Vegas events analyzed: %d\n", eventCount)
	fmt.Fprintf(c.w, "Market contracts checked: %d\n", marketCount)
	fmt.Fprintf(c.w, "Value opportunities found: %d\n", len(opps))

	if len(opps) == 0 {
		fmt.Fprintln(c.w)
		return
	}

	var edgeSum float64
	totalEV := decimal.Zero
	tierCounts := map[models.Tier]int{}
	sportCounts := map[string]int{}
	for i := range opps {
		opp := &opps[i]
		edgeSum += opp.NetEdge
		totalEV = totalEV.Add(c.ev100(opp))
		tierCounts[opp.Tier]++
		sportCounts[SportDisplayName(opp.Sport)]++
	}

	fmt.Fprintf(c.w, "Average net edge: %s\n", formatPercent(edgeSum/float64(len(opps)), 2))
	fmt.Fprintf(c.w, "Total EV (100 contracts each): $%s\n", totalEV.StringFixed(2))
	fmt.Fprintf(c.w, "\nBy confidence: High: %d, Medium: %d, Low: %d\n",
		tierCounts[models.TierHigh], tierCounts[models.TierMedium], tierCounts[models.TierLow])

	sports := make([]string, 0, len(sportCounts))
	for sport := range sportCounts {
		sports = append(sports, sport)
	}
	sort.Strings(sports)
	parts := make([]string, 0, len(sports))
	for _, sport := range sports {
		parts = append(parts, fmt.Sprintf("%s: %d", sport, sportCounts[sport]))
	}
	fmt.Fprintf(c.w, "By sport: %s\n\n", strings.Join(parts, ", "))
}

// ev100 returns the expected value of a 100-contract position
func (c *Console) ev100(opp *models.Opportunity) decimal.Decimal {
	rows, err := valuation.SizingTable(opp, c.schedule, []int{100})
	if err != nil || len(rows) == 0 {
		return decimal.Zero
	}
	return rows[0].ExpectedValue
}

func formatPercent(value float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, value*100)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
