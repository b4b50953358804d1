// Package indicators provides moving average calculations over candle series.
//
// Values produced before a window has enough trailing history are undefined,
// not zero: every series carries a validity mask and callers must check it
// before comparing values.
package indicators

import (
	"barscope/internal/models"
)

// ValueSeries is a per-bar indicator series with an explicit validity mask.
// Values[i] is meaningful only where Valid[i] is true.
type ValueSeries struct {
	Values []float64
	Valid  []bool
}

// At returns the value at index i and whether it is defined.
func (s ValueSeries) At(i int) (float64, bool) {
	if i < 0 || i >= len(s.Values) || !s.Valid[i] {
		return 0, false
	}
	return s.Values[i], true
}

// Last returns the final value of the series and whether it is defined.
func (s ValueSeries) Last() (float64, bool) {
	return s.At(len(s.Values) - 1)
}

// Len returns the length of the series.
func (s ValueSeries) Len() int {
	return len(s.Values)
}

// SMA computes the simple moving average of closing prices over the trailing
// window, inclusive of the current bar. Indices before window-1 are invalid.
func SMA(candles []models.Candle, window int) ValueSeries {
	n := len(candles)
	series := ValueSeries{
		Values: make([]float64, n),
		Valid:  make([]bool, n),
	}
	if window <= 0 || n < window {
		return series
	}

	var sum float64
	for i, c := range candles {
		sum += c.Close
		if i >= window {
			sum -= candles[i-window].Close
		}
		if i >= window-1 {
			series.Values[i] = sum / float64(window)
			series.Valid[i] = true
		}
	}
	return series
}

// MovingAverages computes the SMA for every requested window.
func MovingAverages(candles []models.Candle, windows []int) map[int]ValueSeries {
	result := make(map[int]ValueSeries, len(windows))
	for _, w := range windows {
		result[w] = SMA(candles, w)
	}
	return result
}

// AverageVolume returns the arithmetic mean of volumes over the whole series.
func AverageVolume(candles []models.Candle) float64 {
	if len(candles) == 0 {
		return 0
	}
	var total int64
	for _, c := range candles {
		total += c.Volume
	}
	return float64(total) / float64(len(candles))
}
