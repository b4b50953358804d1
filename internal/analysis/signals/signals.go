// Package signals fuses indicator, level and volume inputs into discrete
// trading signals.
package signals

import (
	"fmt"

	"barscope/internal/analysis"
	"barscope/internal/analysis/indicators"
	"barscope/internal/models"
)

// Generator produces trading signals from a candle series and its derived
// structures. Checks run in a fixed order (MA crossover, level proximity,
// volume spike) and each appends at most one signal; the resulting order is
// the evaluation order, not a ranking.
type Generator struct {
	proximityThreshold float64 // relative distance for level proximity
	volumeSpikeRatio   float64 // latest/average volume ratio for a spike
}

// NewGenerator creates a signal generator with default thresholds.
func NewGenerator() *Generator {
	return &Generator{
		proximityThreshold: 0.01,
		volumeSpikeRatio:   1.5,
	}
}

// Generate evaluates all checks against the series. If nothing fires, a
// single placeholder signal is returned so callers can tell an evaluated
// quiet market from a skipped evaluation.
func (g *Generator) Generate(candles []models.Candle, ma20 indicators.ValueSeries, supports, resistances []analysis.Level) []analysis.Signal {
	var out []analysis.Signal

	if s := g.checkCrossover(candles, ma20); s != nil {
		out = append(out, *s)
	}
	if s := g.checkSupportProximity(candles, supports); s != nil {
		out = append(out, *s)
	}
	if s := g.checkResistanceProximity(candles, resistances); s != nil {
		out = append(out, *s)
	}
	if s := g.checkVolumeSpike(candles); s != nil {
		out = append(out, *s)
	}

	if len(out) == 0 {
		out = append(out, analysis.Signal{
			Kind:    analysis.SignalNone,
			Message: "No strong signals detected",
		})
	}
	return out
}

// checkCrossover emits a buy when the close crosses above the 20-bar moving
// average between the previous and the latest bar, and a sell on the mirror
// cross. Both MA values must be defined.
func (g *Generator) checkCrossover(candles []models.Candle, ma20 indicators.ValueSeries) *analysis.Signal {
	n := len(candles)
	if n < 2 {
		return nil
	}

	prevMA, ok := ma20.At(n - 2)
	if !ok {
		return nil
	}
	currMA, ok := ma20.At(n - 1)
	if !ok {
		return nil
	}

	prevClose := candles[n-2].Close
	currClose := candles[n-1].Close

	if prevClose <= prevMA && currClose > currMA {
		return &analysis.Signal{
			Kind:    analysis.SignalBuy,
			Message: "BUY - Price crossed above 20MA",
		}
	}
	if prevClose >= prevMA && currClose < currMA {
		return &analysis.Signal{
			Kind:    analysis.SignalSell,
			Message: "SELL - Price crossed below 20MA",
		}
	}
	return nil
}

func (g *Generator) checkSupportProximity(candles []models.Candle, supports []analysis.Level) *analysis.Signal {
	if len(candles) == 0 || len(supports) == 0 {
		return nil
	}
	close := candles[len(candles)-1].Close

	nearest := nearestLevel(close, supports)
	if relDistance(close, nearest.Price) >= g.proximityThreshold {
		return nil
	}
	return &analysis.Signal{
		Kind:    analysis.SignalPotentialBuy,
		Message: fmt.Sprintf("POTENTIAL BUY - Price near support %.2f", nearest.Price),
	}
}

func (g *Generator) checkResistanceProximity(candles []models.Candle, resistances []analysis.Level) *analysis.Signal {
	if len(candles) == 0 || len(resistances) == 0 {
		return nil
	}
	close := candles[len(candles)-1].Close

	nearest := nearestLevel(close, resistances)
	if relDistance(close, nearest.Price) >= g.proximityThreshold {
		return nil
	}
	return &analysis.Signal{
		Kind:    analysis.SignalPotentialSell,
		Message: fmt.Sprintf("POTENTIAL SELL - Price near resistance %.2f", nearest.Price),
	}
}

func (g *Generator) checkVolumeSpike(candles []models.Candle) *analysis.Signal {
	if len(candles) == 0 {
		return nil
	}
	avg := indicators.AverageVolume(candles)
	if avg == 0 {
		return nil
	}
	latest := float64(candles[len(candles)-1].Volume)
	if latest <= avg*g.volumeSpikeRatio {
		return nil
	}
	return &analysis.Signal{
		Kind:    analysis.SignalVolumeSpike,
		Message: fmt.Sprintf("VOLUME SPIKE - Latest volume %.1fx average", latest/avg),
	}
}

func nearestLevel(price float64, levels []analysis.Level) analysis.Level {
	nearest := levels[0]
	best := absDiff(price, nearest.Price)
	for _, l := range levels[1:] {
		if d := absDiff(price, l.Price); d < best {
			best = d
			nearest = l
		}
	}
	return nearest
}

// relDistance is |price-level| relative to the level price.
func relDistance(price, level float64) float64 {
	if level == 0 {
		return 1
	}
	return absDiff(price, level) / level
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
