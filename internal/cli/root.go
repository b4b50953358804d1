// Package cli provides the command-line interface for the analyzer.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"barscope/internal/config"
	"barscope/internal/logging"
	"barscope/internal/marketdata"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// Source builds the configured market data source. The --csv flag overrides
// the configured source for one invocation.
func (a *App) Source(cmd *cobra.Command) marketdata.Source {
	if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
		return marketdata.NewCSVSource(csvPath)
	}
	if a.Config.Data.Source == "csv" && a.Config.Data.CSVPath != "" {
		return marketdata.NewCSVSource(a.Config.Data.CSVPath)
	}
	return marketdata.NewYahooSource(a.Config.Data.ProxyURL)
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "barscope",
		Short: "barscope - structural analysis of a single symbol's price history",
		Long: `barscope analyzes one symbol's historical daily bars and surfaces
recurring structural features: support/resistance levels, order blocks,
volume concentration by price, a trend classification and trading signals.

Use 'barscope analyze AAPL' for the full report, or the focused
subcommands (levels, profile, signals) for one structure at a time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("period", cfg.Data.DefaultPeriod, "lookback period (1mo, 3mo, 6mo, 1y, 2y, 5y)")
	rootCmd.PersistentFlags().String("csv", "", "read bars from a CSV file instead of the configured source")

	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newLevelsCmd(app))
	rootCmd.AddCommand(newProfileCmd(app))
	rootCmd.AddCommand(newSignalsCmd(app))

	return rootCmd
}
