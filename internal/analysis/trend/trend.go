// Package trend classifies the prevailing trend of a candle series against
// its moving averages.
package trend

import (
	"barscope/internal/analysis"
	"barscope/internal/analysis/indicators"
	"barscope/internal/models"
)

// Classify compares the latest close against the latest MA20 and MA50.
// Strong conditions are checked before moderate ones; if either average is
// still undefined, or the two averages are exactly equal, the trend is
// Sideways.
func Classify(candles []models.Candle, ma20, ma50 indicators.ValueSeries) analysis.TrendLabel {
	if len(candles) == 0 {
		return analysis.Sideways
	}

	price := candles[len(candles)-1].Close
	short, ok := ma20.Last()
	if !ok {
		return analysis.Sideways
	}
	long, ok := ma50.Last()
	if !ok {
		return analysis.Sideways
	}

	switch {
	case price > short && short > long:
		return analysis.StrongUptrend
	case short > long:
		return analysis.ModerateUptrend
	case price < short && short < long:
		return analysis.StrongDowntrend
	case short < long:
		return analysis.ModerateDowntrend
	default:
		return analysis.Sideways
	}
}
