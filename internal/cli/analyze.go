package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"barscope/internal/analysis"
	"barscope/internal/analysis/report"
	"barscope/internal/logging"
	"barscope/internal/marketdata"
)

const fetchTimeout = 60 * time.Second

// fetchAndAnalyze fetches bars for the symbol and runs the full pipeline.
func fetchAndAnalyze(app *App, cmd *cobra.Command, symbol string) (*report.Result, error) {
	periodFlag, _ := cmd.Flags().GetString("period")
	period, err := marketdata.ParsePeriod(periodFlag)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
	defer cancel()

	source := app.Source(cmd)
	start := time.Now()
	candles, err := source.Fetch(ctx, symbol, period)
	logging.LogFetch(app.Logger, source.Name(), symbol, string(period), len(candles), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	analyzer := report.NewAnalyzer(app.Config.Analysis, logging.WithSymbol(app.Logger, symbol))
	return analyzer.Analyze(symbol, candles)
}

func newAnalyzeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <symbol>",
		Short: "Full structural analysis for a symbol",
		Long: `Analyze a symbol's historical bars and report trend, support/resistance
levels, order blocks, high-volume nodes, detected patterns and trading
signals.`,
		Example: `  barscope analyze AAPL
  barscope analyze MSFT --period 6mo
  barscope analyze AAPL --csv bars.csv --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			result, err := fetchAndAnalyze(app, cmd, symbol)
			if err != nil {
				output.Error("Analysis failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(result.Report)
			}

			printReport(output, result)
			return nil
		},
	}
}

func printReport(output *Output, result *report.Result) {
	r := result.Report

	output.Bold("=== %s ===", r.Symbol)
	output.Printf("Current price: %.2f\n", r.CurrentPrice)

	switch r.Trend {
	case analysis.StrongUptrend, analysis.ModerateUptrend:
		output.Bullish("Trend: %s", r.Trend)
	case analysis.StrongDowntrend, analysis.ModerateDowntrend:
		output.Bearish("Trend: %s", r.Trend)
	default:
		output.Printf("Trend: %s\n", r.Trend)
	}

	output.Println()
	output.Info("Support levels:")
	for _, p := range r.SupportLevels {
		output.Printf("  %.2f\n", p)
	}
	output.Info("Resistance levels:")
	for _, p := range r.ResistanceLevels {
		output.Printf("  %.2f\n", p)
	}

	output.Println()
	output.Printf("Order blocks found: %d\n", r.OrderBlocksFound)
	for _, b := range r.RecentOrderBlocks {
		output.Printf("  %s  %s  [%.2f - %.2f]  strength %.2f\n",
			b.Timestamp.Format("2006-01-02"), b.Kind, b.Low, b.High, b.Strength)
	}

	output.Println()
	output.Printf("High-volume nodes: ")
	for i, n := range r.HighVolumeNodes {
		if i > 0 {
			output.Printf(", ")
		}
		output.Printf("%.2f", n)
	}
	output.Println()

	if len(r.Patterns) > 0 {
		output.Println()
		output.Info("Patterns:")
		seen := map[string]int{}
		for _, name := range r.Patterns {
			seen[name]++
		}
		for _, name := range uniqueOrdered(r.Patterns) {
			output.Printf("  %s x%d\n", name, seen[name])
		}
	}

	output.Println()
	output.Info("Trading signals:")
	for _, s := range r.TradingSignals {
		output.Printf("  %s\n", s)
	}
}

// uniqueOrdered returns the distinct strings in first-seen order.
func uniqueOrdered(values []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
