// Package volume aggregates traded volume into price bins and derives
// high-volume nodes.
package volume

import (
	"barscope/internal/models"
)

// Bin is one price interval of the profile, identified by its midpoint.
type Bin struct {
	Low    float64 `json:"low"`
	High   float64 `json:"high"`
	Mid    float64 `json:"mid"`
	Volume int64   `json:"volume"`
}

// Profile maps equal-width price bins over [min(low), max(high)] to the
// volume traded through them.
type Profile struct {
	Bins     []Bin   `json:"bins"`
	BinWidth float64 `json:"bin_width"`
}

// MaxVolume returns the largest bin volume in the profile.
func (p *Profile) MaxVolume() int64 {
	var max int64
	for _, b := range p.Bins {
		if b.Volume > max {
			max = b.Volume
		}
	}
	return max
}

// Build computes the volume profile. Each bar's full volume is attributed to
// every bin its [low, high] range intersects, so a bar spanning several bins
// is counted in each of them. A series whose bars all trade at one price
// collapses into a single bin.
func Build(candles []models.Candle, priceBins int) *Profile {
	if len(candles) == 0 || priceBins <= 0 {
		return &Profile{}
	}

	lo := candles[0].Low
	hi := candles[0].High
	for _, c := range candles[1:] {
		if c.Low < lo {
			lo = c.Low
		}
		if c.High > hi {
			hi = c.High
		}
	}

	if hi == lo {
		var total int64
		for _, c := range candles {
			total += c.Volume
		}
		return &Profile{
			Bins: []Bin{{Low: lo, High: hi, Mid: lo, Volume: total}},
		}
	}

	width := (hi - lo) / float64(priceBins)
	bins := make([]Bin, priceBins)
	for i := range bins {
		bins[i].Low = lo + float64(i)*width
		bins[i].High = bins[i].Low + width
		bins[i].Mid = bins[i].Low + width/2
	}
	bins[priceBins-1].High = hi

	for _, c := range candles {
		first := binIndex(c.Low, lo, width, priceBins)
		last := binIndex(c.High, lo, width, priceBins)
		for i := first; i <= last; i++ {
			bins[i].Volume += c.Volume
		}
	}

	return &Profile{Bins: bins, BinWidth: width}
}

func binIndex(price, lo, width float64, n int) int {
	idx := int((price - lo) / width)
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// HighVolumeNodes returns the midpoints of bins whose volume reaches
// thresholdRatio of the maximum bin volume, in ascending price order.
func HighVolumeNodes(profile *Profile, thresholdRatio float64) []float64 {
	maxVol := profile.MaxVolume()
	if maxVol == 0 {
		return nil
	}
	cutoff := thresholdRatio * float64(maxVol)

	var nodes []float64
	for _, b := range profile.Bins {
		if float64(b.Volume) >= cutoff {
			nodes = append(nodes, b.Mid)
		}
	}
	return nodes
}
