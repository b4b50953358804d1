// Package levels identifies horizontal support and resistance levels from
// local price extrema.
package levels

import (
	"sort"

	"barscope/internal/analysis"
	"barscope/internal/models"
)

// Detector scans a candle series for support/resistance levels.
type Detector struct {
	window    int     // bars required on each side of an extremum
	threshold float64 // relative distance under which two levels merge
}

// NewDetector creates a support/resistance detector.
func NewDetector(window int, threshold float64) *Detector {
	if window <= 0 {
		window = 20
	}
	if threshold <= 0 {
		threshold = 0.02
	}
	return &Detector{window: window, threshold: threshold}
}

func (d *Detector) Name() string {
	return "LevelDetector"
}

// Find returns support levels sorted ascending and resistance levels sorted
// descending. A bar is a support candidate when its low is strictly below
// every low within the window on both sides; resistance mirrors on highs.
// Candidates closer than the threshold (relative to the higher price) are
// merged, and the earliest-seen candidate survives the merge.
func (d *Detector) Find(candles []models.Candle) (supports, resistances []analysis.Level) {
	n := len(candles)
	if n < 2*d.window+1 {
		return nil, nil
	}

	var supportPrices, resistancePrices []float64
	for i := d.window; i < n-d.window; i++ {
		if d.isLocalMin(candles, i) {
			supportPrices = append(supportPrices, candles[i].Low)
		}
		if d.isLocalMax(candles, i) {
			resistancePrices = append(resistancePrices, candles[i].High)
		}
	}

	supportPrices = Merge(supportPrices, d.threshold)
	resistancePrices = Merge(resistancePrices, d.threshold)

	sort.Float64s(supportPrices)
	sort.Sort(sort.Reverse(sort.Float64Slice(resistancePrices)))

	for _, p := range supportPrices {
		supports = append(supports, analysis.Level{Price: p, Type: analysis.LevelSupport})
	}
	for _, p := range resistancePrices {
		resistances = append(resistances, analysis.Level{Price: p, Type: analysis.LevelResistance})
	}
	return supports, resistances
}

func (d *Detector) isLocalMin(candles []models.Candle, i int) bool {
	for j := i - d.window; j <= i+d.window; j++ {
		if j == i {
			continue
		}
		if candles[i].Low >= candles[j].Low {
			return false
		}
	}
	return true
}

func (d *Detector) isLocalMax(candles []models.Candle, i int) bool {
	for j := i - d.window; j <= i+d.window; j++ {
		if j == i {
			continue
		}
		if candles[i].High <= candles[j].High {
			return false
		}
	}
	return true
}

// Merge deduplicates candidate prices in first-seen order: a price within the
// threshold of an already-kept price is dropped. Running Merge on its own
// output is a fixed point.
func Merge(prices []float64, threshold float64) []float64 {
	var kept []float64
	for _, p := range prices {
		duplicate := false
		for _, q := range kept {
			if sameLevel(p, q, threshold) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, p)
		}
	}
	return kept
}

func sameLevel(p, q, threshold float64) bool {
	hi := p
	if q > hi {
		hi = q
	}
	if hi == 0 {
		return p == q
	}
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff/hi < threshold
}
