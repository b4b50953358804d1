// Package patterns provides chart and candlestick pattern detection.
package patterns

import (
	"barscope/internal/analysis"
	"barscope/internal/models"
)

// CandlestickDetector detects candlestick patterns in price data.
type CandlestickDetector struct {
	dojiThreshold   float64 // body size as fraction of range for doji
	shadowThreshold float64 // shadow size as multiple of body for hammer/star
}

// NewCandlestickDetector creates a candlestick pattern detector.
func NewCandlestickDetector(dojiThreshold float64) *CandlestickDetector {
	if dojiThreshold <= 0 {
		dojiThreshold = 0.1
	}
	return &CandlestickDetector{
		dojiThreshold:   dojiThreshold,
		shadowThreshold: 2.0,
	}
}

func (d *CandlestickDetector) Name() string {
	return "CandlestickDetector"
}

// Detect detects all candlestick patterns in the given candles.
func (d *CandlestickDetector) Detect(candles []models.Candle) []analysis.Pattern {
	var patterns []analysis.Pattern

	for i := 0; i < len(candles); i++ {
		if p := d.detectDoji(candles, i); p != nil {
			patterns = append(patterns, *p)
		}
		if p := d.detectHammer(candles, i); p != nil {
			patterns = append(patterns, *p)
		}
		if p := d.detectShootingStar(candles, i); p != nil {
			patterns = append(patterns, *p)
		}
	}

	for i := 1; i < len(candles); i++ {
		if p := d.detectEngulfing(candles, i); p != nil {
			patterns = append(patterns, *p)
		}
	}

	return patterns
}

func upperShadow(c models.Candle) float64 {
	body := c.Open
	if c.Close > body {
		body = c.Close
	}
	return c.High - body
}

func lowerShadow(c models.Candle) float64 {
	body := c.Open
	if c.Close < body {
		body = c.Close
	}
	return body - c.Low
}

// detectDoji flags candles whose body is a small fraction of their range.
// A zero-range candle (open == close == high == low) counts as a doji: its
// body is zero by definition, not a division error.
func (d *CandlestickDetector) detectDoji(candles []models.Candle, idx int) *analysis.Pattern {
	c := candles[idx]
	ratio, ok := c.BodyRatio()
	if ok && ratio >= d.dojiThreshold {
		return nil
	}
	if !ok && c.Body() != 0 {
		return nil
	}

	return &analysis.Pattern{
		Name:       "Doji",
		Type:       analysis.PatternTypeCandlestick,
		Direction:  analysis.PatternNeutral,
		StartIndex: idx,
		EndIndex:   idx,
		Strength:   0.5,
	}
}

// detectEngulfing flags candles whose body fully contains the previous
// candle's body in the opposite direction.
func (d *CandlestickDetector) detectEngulfing(candles []models.Candle, idx int) *analysis.Pattern {
	prev := candles[idx-1]
	curr := candles[idx]

	if curr.Body() <= prev.Body() {
		return nil
	}

	if prev.IsBearish() && curr.IsBullish() {
		if curr.Open <= prev.Close && curr.Close >= prev.Open {
			return &analysis.Pattern{
				Name:       "Bullish Engulfing",
				Type:       analysis.PatternTypeCandlestick,
				Direction:  analysis.PatternBullish,
				StartIndex: idx - 1,
				EndIndex:   idx,
				Strength:   0.8,
			}
		}
	}

	if prev.IsBullish() && curr.IsBearish() {
		if curr.Open >= prev.Close && curr.Close <= prev.Open {
			return &analysis.Pattern{
				Name:       "Bearish Engulfing",
				Type:       analysis.PatternTypeCandlestick,
				Direction:  analysis.PatternBearish,
				StartIndex: idx - 1,
				EndIndex:   idx,
				Strength:   0.8,
			}
		}
	}

	return nil
}

// detectHammer flags candles with a long lower shadow and a small upper
// shadow, read as a bullish rejection of lower prices.
func (d *CandlestickDetector) detectHammer(candles []models.Candle, idx int) *analysis.Pattern {
	c := candles[idx]
	body := c.Body()
	if body == 0 {
		return nil
	}
	if lowerShadow(c) < body*d.shadowThreshold {
		return nil
	}
	if upperShadow(c) > body*0.5 {
		return nil
	}

	return &analysis.Pattern{
		Name:       "Hammer",
		Type:       analysis.PatternTypeCandlestick,
		Direction:  analysis.PatternBullish,
		StartIndex: idx,
		EndIndex:   idx,
		Strength:   0.7,
	}
}

// detectShootingStar is the bearish mirror of detectHammer.
func (d *CandlestickDetector) detectShootingStar(candles []models.Candle, idx int) *analysis.Pattern {
	c := candles[idx]
	body := c.Body()
	if body == 0 {
		return nil
	}
	if upperShadow(c) < body*d.shadowThreshold {
		return nil
	}
	if lowerShadow(c) > body*0.5 {
		return nil
	}

	return &analysis.Pattern{
		Name:       "Shooting Star",
		Type:       analysis.PatternTypeCandlestick,
		Direction:  analysis.PatternBearish,
		StartIndex: idx,
		EndIndex:   idx,
		Strength:   0.7,
	}
}
