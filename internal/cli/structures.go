package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newLevelsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "levels <symbol>",
		Short: "Support and resistance levels for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			result, err := fetchAndAnalyze(app, cmd, symbol)
			if err != nil {
				output.Error("Analysis failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"symbol":      symbol,
					"supports":    result.Supports,
					"resistances": result.Resistances,
				})
			}

			output.Bold("=== %s levels ===", symbol)
			output.Info("Resistance (high to low):")
			for _, l := range result.Resistances {
				output.Printf("  %.2f\n", l.Price)
			}
			output.Info("Support (low to high):")
			for _, l := range result.Supports {
				output.Printf("  %.2f\n", l.Price)
			}
			return nil
		},
	}
}

func newProfileCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "profile <symbol>",
		Short: "Volume-by-price profile for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			result, err := fetchAndAnalyze(app, cmd, symbol)
			if err != nil {
				output.Error("Analysis failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"symbol":            symbol,
					"profile":           result.Profile,
					"high_volume_nodes": result.Report.HighVolumeNodes,
				})
			}

			output.Bold("=== %s volume profile ===", symbol)
			maxVol := result.Profile.MaxVolume()
			for i := len(result.Profile.Bins) - 1; i >= 0; i-- {
				b := result.Profile.Bins[i]
				barLen := 0
				if maxVol > 0 {
					barLen = int(float64(b.Volume) / float64(maxVol) * 40)
				}
				output.Printf("%10.2f | %s %d\n", b.Mid, strings.Repeat("#", barLen), b.Volume)
			}
			return nil
		},
	}
}

func newSignalsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signals <symbol>",
		Short: "Trading signals for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			result, err := fetchAndAnalyze(app, cmd, symbol)
			if err != nil {
				output.Error("Analysis failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"symbol":  symbol,
					"signals": result.Signals,
				})
			}

			output.Bold("=== %s signals ===", symbol)
			for _, s := range result.Signals {
				output.Printf("  [%s] %s\n", s.Kind, s.Message)
			}
			return nil
		},
	}
}
