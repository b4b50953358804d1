// Package patterns provides chart and candlestick pattern detection.
package patterns

import (
	"math"

	"barscope/internal/analysis"
	"barscope/internal/models"
)

// ChartDetector detects chart patterns in price data.
type ChartDetector struct {
	swingWindow         int     // bars on each side for swing point confirmation
	tolerancePercent    float64 // tolerance for matching two peak/trough prices
	consolidationPeriod int     // trailing range for breakout detection
	breakoutThreshold   float64 // fraction the close must clear the range by
}

// NewChartDetector creates a chart pattern detector.
func NewChartDetector(swingWindow, consolidationPeriod int, breakoutThreshold float64) *ChartDetector {
	if swingWindow <= 0 {
		swingWindow = 3
	}
	if consolidationPeriod <= 0 {
		consolidationPeriod = 20
	}
	if breakoutThreshold <= 0 {
		breakoutThreshold = 0.02
	}
	return &ChartDetector{
		swingWindow:         swingWindow,
		tolerancePercent:    0.02,
		consolidationPeriod: consolidationPeriod,
		breakoutThreshold:   breakoutThreshold,
	}
}

func (d *ChartDetector) Name() string {
	return "ChartDetector"
}

// SwingPoint represents a swing high or low point.
type SwingPoint struct {
	Index  int
	Price  float64
	IsHigh bool
}

// Detect detects double top/bottom and breakout patterns.
func (d *ChartDetector) Detect(candles []models.Candle) []analysis.Pattern {
	var patterns []analysis.Pattern

	swings := d.findSwingPoints(candles)
	if p := d.detectDoubleTop(swings); p != nil {
		patterns = append(patterns, *p)
	}
	if p := d.detectDoubleBottom(swings); p != nil {
		patterns = append(patterns, *p)
	}
	patterns = append(patterns, d.findBreakouts(candles)...)

	return patterns
}

// findSwingPoints identifies strict swing highs and lows.
func (d *ChartDetector) findSwingPoints(candles []models.Candle) []SwingPoint {
	var swings []SwingPoint
	n := len(candles)

	for i := d.swingWindow; i < n-d.swingWindow; i++ {
		isSwingHigh := true
		isSwingLow := true
		for j := 1; j <= d.swingWindow; j++ {
			if candles[i].High <= candles[i-j].High || candles[i].High <= candles[i+j].High {
				isSwingHigh = false
			}
			if candles[i].Low >= candles[i-j].Low || candles[i].Low >= candles[i+j].Low {
				isSwingLow = false
			}
			if !isSwingHigh && !isSwingLow {
				break
			}
		}
		if isSwingHigh {
			swings = append(swings, SwingPoint{Index: i, Price: candles[i].High, IsHigh: true})
		}
		if isSwingLow {
			swings = append(swings, SwingPoint{Index: i, Price: candles[i].Low, IsHigh: false})
		}
	}

	return swings
}

func (d *ChartDetector) pricesEqual(p1, p2 float64) bool {
	if p1 == 0 {
		return p2 == 0
	}
	return math.Abs(p1-p2)/p1 <= d.tolerancePercent
}

// detectDoubleTop looks for two approximately equal swing highs separated by
// a retracement low, scanning from the most recent pair backwards.
func (d *ChartDetector) detectDoubleTop(swings []SwingPoint) *analysis.Pattern {
	highs := swingHighs(swings)
	lows := swingLows(swings)
	if len(highs) < 2 || len(lows) < 1 {
		return nil
	}

	for i := len(highs) - 1; i >= 1; i-- {
		first := highs[i-1]
		second := highs[i]

		if !d.pricesEqual(first.Price, second.Price) {
			continue
		}
		if !hasRetracementBetween(lows, first.Index, second.Index) {
			continue
		}

		return &analysis.Pattern{
			Name:       "Double Top",
			Type:       analysis.PatternTypeChart,
			Direction:  analysis.PatternBearish,
			StartIndex: first.Index,
			EndIndex:   second.Index,
			Strength:   0.75,
		}
	}
	return nil
}

// detectDoubleBottom is the bullish mirror of detectDoubleTop.
func (d *ChartDetector) detectDoubleBottom(swings []SwingPoint) *analysis.Pattern {
	highs := swingHighs(swings)
	lows := swingLows(swings)
	if len(lows) < 2 || len(highs) < 1 {
		return nil
	}

	for i := len(lows) - 1; i >= 1; i-- {
		first := lows[i-1]
		second := lows[i]

		if !d.pricesEqual(first.Price, second.Price) {
			continue
		}
		if !hasRetracementBetween(highs, first.Index, second.Index) {
			continue
		}

		return &analysis.Pattern{
			Name:       "Double Bottom",
			Type:       analysis.PatternTypeChart,
			Direction:  analysis.PatternBullish,
			StartIndex: first.Index,
			EndIndex:   second.Index,
			Strength:   0.75,
		}
	}
	return nil
}

// findBreakouts flags bars whose close clears the high/low range of the
// preceding consolidation period by more than the breakout threshold.
func (d *ChartDetector) findBreakouts(candles []models.Candle) []analysis.Pattern {
	var patterns []analysis.Pattern

	for i := d.consolidationPeriod; i < len(candles); i++ {
		rangeHigh := candles[i-d.consolidationPeriod].High
		rangeLow := candles[i-d.consolidationPeriod].Low
		for j := i - d.consolidationPeriod + 1; j < i; j++ {
			if candles[j].High > rangeHigh {
				rangeHigh = candles[j].High
			}
			if candles[j].Low < rangeLow {
				rangeLow = candles[j].Low
			}
		}

		close := candles[i].Close
		if close > rangeHigh*(1+d.breakoutThreshold) {
			patterns = append(patterns, analysis.Pattern{
				Name:       "Bullish Breakout",
				Type:       analysis.PatternTypeChart,
				Direction:  analysis.PatternBullish,
				StartIndex: i - d.consolidationPeriod,
				EndIndex:   i,
				Strength:   0.7,
			})
		} else if close < rangeLow*(1-d.breakoutThreshold) {
			patterns = append(patterns, analysis.Pattern{
				Name:       "Bearish Breakout",
				Type:       analysis.PatternTypeChart,
				Direction:  analysis.PatternBearish,
				StartIndex: i - d.consolidationPeriod,
				EndIndex:   i,
				Strength:   0.7,
			})
		}
	}
	return patterns
}

func swingHighs(swings []SwingPoint) []SwingPoint {
	var highs []SwingPoint
	for _, s := range swings {
		if s.IsHigh {
			highs = append(highs, s)
		}
	}
	return highs
}

func swingLows(swings []SwingPoint) []SwingPoint {
	var lows []SwingPoint
	for _, s := range swings {
		if !s.IsHigh {
			lows = append(lows, s)
		}
	}
	return lows
}

func hasRetracementBetween(swings []SwingPoint, start, end int) bool {
	for _, s := range swings {
		if s.Index > start && s.Index < end {
			return true
		}
	}
	return false
}
