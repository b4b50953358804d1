// Package report assembles the outputs of the analysis pipeline into one
// immutable report value.
package report

import (
	"github.com/rs/zerolog"

	"barscope/internal/analysis"
	"barscope/internal/analysis/blocks"
	"barscope/internal/analysis/indicators"
	"barscope/internal/analysis/levels"
	"barscope/internal/analysis/patterns"
	"barscope/internal/analysis/signals"
	"barscope/internal/analysis/trend"
	"barscope/internal/analysis/volume"
	"barscope/internal/config"
	"barscope/internal/errors"
	"barscope/internal/models"
)

// Report is the primary output contract of an analysis run. It is created
// once per run and never mutated afterwards.
type Report struct {
	Symbol            string              `json:"symbol"`
	CurrentPrice      float64             `json:"current_price"`
	Trend             analysis.TrendLabel `json:"trend"`
	SupportLevels     []float64           `json:"support_levels"`
	ResistanceLevels  []float64           `json:"resistance_levels"`
	OrderBlocksFound  int                 `json:"order_blocks_found"`
	RecentOrderBlocks []blocks.OrderBlock `json:"recent_order_blocks"`
	HighVolumeNodes   []float64           `json:"high_volume_nodes"`
	TradingSignals    []string            `json:"trading_signals"`
	Patterns          []string            `json:"patterns"`
}

// Result carries the report plus every derived structure, for consumers that
// render charts or inspect the raw outputs. All fields are read-only.
type Result struct {
	Report      Report
	Candles     []models.Candle
	MAs         map[int]indicators.ValueSeries
	Supports    []analysis.Level
	Resistances []analysis.Level
	Blocks      []blocks.OrderBlock
	Profile     *volume.Profile
	Signals     []analysis.Signal
	Patterns    []analysis.Pattern
}

// recentBlockCount is how many of the latest order blocks the report keeps.
const recentBlockCount = 3

// Analyzer runs the full analysis pipeline over one candle series.
type Analyzer struct {
	cfg    config.AnalysisConfig
	logger zerolog.Logger
}

// NewAnalyzer creates an analyzer with the given tunables.
func NewAnalyzer(cfg config.AnalysisConfig, logger zerolog.Logger) *Analyzer {
	return &Analyzer{cfg: cfg, logger: logger}
}

// Analyze validates the series and computes every derived structure. The
// series itself is never modified; identical input and configuration always
// produce an identical result. A series shorter than two bars is a
// precondition failure.
func (a *Analyzer) Analyze(symbol string, candles []models.Candle) (*Result, error) {
	if len(candles) < 2 {
		return nil, errors.Wrapf(errors.ErrInsufficientData, "%s: %d bars", symbol, len(candles))
	}
	if err := models.ValidateCandles(candles); err != nil {
		return nil, errors.Wrap(err, symbol)
	}
	if len(candles) < 2*a.cfg.SRWindow+1 {
		a.logger.Warn().
			Str("symbol", symbol).
			Int("bars", len(candles)).
			Int("sr_window", a.cfg.SRWindow).
			Msg("Series shorter than level detection window, levels will be empty")
	}

	mas := indicators.MovingAverages(candles, withTrendWindows(a.cfg.MAWindows))

	supports, resistances := levels.NewDetector(a.cfg.SRWindow, a.cfg.SRThreshold).Find(candles)
	orderBlocks := blocks.NewDetector(a.cfg.OBLookback).Identify(candles)
	profile := volume.Build(candles, a.cfg.PriceBins)
	hvns := volume.HighVolumeNodes(profile, a.cfg.HVNThresholdRatio)

	label := trend.Classify(candles, mas[20], mas[50])
	sigs := signals.NewGenerator().Generate(candles, mas[20], supports, resistances)

	var pats []analysis.Pattern
	pats = append(pats, patterns.NewChartDetector(a.cfg.SRWindow/4, a.cfg.ConsolidationPeriod, a.cfg.BreakoutThreshold).Detect(candles)...)
	pats = append(pats, patterns.NewCandlestickDetector(a.cfg.DojiThreshold).Detect(candles)...)

	result := &Result{
		Report:      a.assemble(symbol, candles, label, supports, resistances, orderBlocks, hvns, sigs, pats),
		Candles:     candles,
		MAs:         mas,
		Supports:    supports,
		Resistances: resistances,
		Blocks:      orderBlocks,
		Profile:     profile,
		Signals:     sigs,
		Patterns:    pats,
	}

	a.logger.Debug().
		Str("symbol", symbol).
		Int("bars", len(candles)).
		Str("trend", string(label)).
		Int("supports", len(supports)).
		Int("resistances", len(resistances)).
		Int("order_blocks", len(orderBlocks)).
		Int("hvns", len(hvns)).
		Msg("Analysis completed")

	return result, nil
}

func (a *Analyzer) assemble(symbol string, candles []models.Candle, label analysis.TrendLabel,
	supports, resistances []analysis.Level, orderBlocks []blocks.OrderBlock,
	hvns []float64, sigs []analysis.Signal, pats []analysis.Pattern) Report {

	recent := orderBlocks
	if len(recent) > recentBlockCount {
		recent = recent[len(recent)-recentBlockCount:]
	}

	messages := make([]string, len(sigs))
	for i, s := range sigs {
		messages[i] = s.Message
	}

	patternNames := make([]string, len(pats))
	for i, p := range pats {
		patternNames[i] = p.Name
	}

	return Report{
		Symbol:            symbol,
		CurrentPrice:      candles[len(candles)-1].Close,
		Trend:             label,
		SupportLevels:     topLevels(supports, a.cfg.TopLevels),
		ResistanceLevels:  topLevels(resistances, a.cfg.TopLevels),
		OrderBlocksFound:  len(orderBlocks),
		RecentOrderBlocks: recent,
		HighVolumeNodes:   hvns,
		TradingSignals:    messages,
		Patterns:          patternNames,
	}
}

// withTrendWindows ensures the 20 and 50 bar windows are always computed;
// trend classification and crossover signals read them whatever windows the
// configuration asks for.
func withTrendWindows(windows []int) []int {
	out := append([]int(nil), windows...)
	for _, w := range []int{20, 50} {
		present := false
		for _, have := range out {
			if have == w {
				present = true
				break
			}
		}
		if !present {
			out = append(out, w)
		}
	}
	return out
}

// topLevels keeps the first k level prices, preserving detector order
// (supports ascending, resistances descending).
func topLevels(lvls []analysis.Level, k int) []float64 {
	prices := make([]float64, 0, k)
	for i, l := range lvls {
		if i >= k {
			break
		}
		prices = append(prices, l.Price)
	}
	return prices
}
