// Package config provides configuration management for the analyzer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"barscope/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Data     DataConfig     `mapstructure:"data"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AnalysisConfig enumerates every tunable of the analysis pipeline.
type AnalysisConfig struct {
	// MAWindows are the moving average windows, in bars.
	MAWindows []int `mapstructure:"ma_windows"`
	// SRWindow is the number of bars on each side required to confirm a
	// support/resistance extremum.
	SRWindow int `mapstructure:"sr_window"`
	// SRThreshold is the relative price distance under which two levels are
	// merged into one (fraction, e.g. 0.02 = 2%).
	SRThreshold float64 `mapstructure:"sr_threshold"`
	// OBLookback is the trailing window, in bars, an order block candidate
	// must break out of.
	OBLookback int `mapstructure:"ob_lookback"`
	// PriceBins is the number of equal-width bins in the volume profile.
	PriceBins int `mapstructure:"price_bins"`
	// HVNThresholdRatio is the fraction of the maximum bin volume a bin must
	// reach to count as a high-volume node.
	HVNThresholdRatio float64 `mapstructure:"hvn_threshold_ratio"`
	// DojiThreshold is the body/range ratio under which a candle is a doji.
	DojiThreshold float64 `mapstructure:"doji_threshold"`
	// ConsolidationPeriod is the trailing range, in bars, used for breakout
	// detection.
	ConsolidationPeriod int `mapstructure:"consolidation_period"`
	// BreakoutThreshold is the fraction by which a close must clear the
	// consolidation range to count as a breakout.
	BreakoutThreshold float64 `mapstructure:"breakout_threshold"`
	// TopLevels is how many support/resistance levels the report keeps.
	TopLevels int `mapstructure:"top_levels"`
}

// DataConfig holds market data source configuration.
type DataConfig struct {
	Source        string `mapstructure:"source"`   // "yahoo", "csv"
	CSVPath       string `mapstructure:"csv_path"` // bar file for the csv source
	ProxyURL      string `mapstructure:"proxy_url"`
	DefaultPeriod string `mapstructure:"default_period"` // 1mo, 3mo, 6mo, 1y, 2y, 5y
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  bool   `mapstructure:"file"`
}

// DefaultAnalysisConfig returns the default analysis tunables.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		MAWindows:           []int{20, 50, 200},
		SRWindow:            20,
		SRThreshold:         0.02,
		OBLookback:          10,
		PriceBins:           20,
		HVNThresholdRatio:   0.7,
		DojiThreshold:       0.1,
		ConsolidationPeriod: 20,
		BreakoutThreshold:   0.02,
		TopLevels:           3,
	}
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/barscope"
	}
	return filepath.Join(home, ".config", "barscope")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing config
// file yields the defaults rather than an error.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultAnalysisConfig()
	v.SetDefault("analysis.ma_windows", def.MAWindows)
	v.SetDefault("analysis.sr_window", def.SRWindow)
	v.SetDefault("analysis.sr_threshold", def.SRThreshold)
	v.SetDefault("analysis.ob_lookback", def.OBLookback)
	v.SetDefault("analysis.price_bins", def.PriceBins)
	v.SetDefault("analysis.hvn_threshold_ratio", def.HVNThresholdRatio)
	v.SetDefault("analysis.doji_threshold", def.DojiThreshold)
	v.SetDefault("analysis.consolidation_period", def.ConsolidationPeriod)
	v.SetDefault("analysis.breakout_threshold", def.BreakoutThreshold)
	v.SetDefault("analysis.top_levels", def.TopLevels)
	v.SetDefault("data.source", "yahoo")
	v.SetDefault("data.default_period", "1y")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", false)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BARSCOPE_PROXY_URL"); v != "" {
		cfg.Data.ProxyURL = v
	}
	if v := os.Getenv("BARSCOPE_DATA_SOURCE"); v != "" {
		cfg.Data.Source = v
	}
	if v := os.Getenv("BARSCOPE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	a := c.Analysis
	if len(a.MAWindows) == 0 {
		return errors.NewValidationError("analysis.ma_windows", a.MAWindows, "at least one window required")
	}
	for _, w := range a.MAWindows {
		if w <= 0 {
			return errors.NewValidationError("analysis.ma_windows", w, "windows must be positive")
		}
	}
	if a.SRWindow <= 0 {
		return errors.NewValidationError("analysis.sr_window", a.SRWindow, "must be positive")
	}
	if a.SRThreshold <= 0 || a.SRThreshold >= 1 {
		return errors.NewValidationError("analysis.sr_threshold", a.SRThreshold, "must be in (0,1)")
	}
	if a.OBLookback <= 0 {
		return errors.NewValidationError("analysis.ob_lookback", a.OBLookback, "must be positive")
	}
	if a.PriceBins <= 0 {
		return errors.NewValidationError("analysis.price_bins", a.PriceBins, "must be positive")
	}
	if a.HVNThresholdRatio <= 0 || a.HVNThresholdRatio > 1 {
		return errors.NewValidationError("analysis.hvn_threshold_ratio", a.HVNThresholdRatio, "must be in (0,1]")
	}
	if a.DojiThreshold <= 0 || a.DojiThreshold >= 1 {
		return errors.NewValidationError("analysis.doji_threshold", a.DojiThreshold, "must be in (0,1)")
	}
	if a.ConsolidationPeriod <= 0 {
		return errors.NewValidationError("analysis.consolidation_period", a.ConsolidationPeriod, "must be positive")
	}
	if a.BreakoutThreshold <= 0 {
		return errors.NewValidationError("analysis.breakout_threshold", a.BreakoutThreshold, "must be positive")
	}
	if a.TopLevels <= 0 {
		return errors.NewValidationError("analysis.top_levels", a.TopLevels, "must be positive")
	}
	switch c.Data.Source {
	case "", "yahoo", "csv":
	default:
		return errors.NewValidationError("data.source", c.Data.Source, "must be 'yahoo' or 'csv'")
	}
	return nil
}
