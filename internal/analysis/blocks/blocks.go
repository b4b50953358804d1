// Package blocks identifies order blocks: high-momentum candles that break
// out of their recent range, read as a proxy for institutional entry.
package blocks

import (
	"time"

	"barscope/internal/models"
)

// BlockKind represents the direction of an order block.
type BlockKind string

const (
	Bullish BlockKind = "bullish"
	Bearish BlockKind = "bearish"
)

// OrderBlock is one qualifying candle. Strength is the candle's body/range
// ratio and always lies in [0,1].
type OrderBlock struct {
	Timestamp time.Time `json:"timestamp"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Kind      BlockKind `json:"kind"`
	Strength  float64   `json:"strength"`
}

// minBodyRatio is the body/range ratio a candle must exceed to qualify.
const minBodyRatio = 0.6

// Detector scans for order blocks.
type Detector struct {
	lookback int
}

// NewDetector creates an order block detector. The lookback is the trailing
// window a candidate must break out of: a bullish block's high must exceed
// the highest high of the previous lookback bars (capped at available
// history), a bearish block's low must undercut the lowest low. A shorter
// lookback is a weaker condition and never yields fewer blocks.
func NewDetector(lookback int) *Detector {
	if lookback <= 0 {
		lookback = 10
	}
	return &Detector{lookback: lookback}
}

func (d *Detector) Name() string {
	return "OrderBlockDetector"
}

// Identify returns all order blocks in chronological order. Zero-range
// candles are skipped since their body ratio is undefined.
func (d *Detector) Identify(candles []models.Candle) []OrderBlock {
	var result []OrderBlock
	for i := 1; i < len(candles); i++ {
		c := candles[i]
		ratio, ok := c.BodyRatio()
		if !ok || ratio <= minBodyRatio {
			continue
		}

		start := i - d.lookback
		if start < 0 {
			start = 0
		}
		prior := candles[start:i]

		switch {
		case c.IsBullish() && c.High > highestHigh(prior):
			result = append(result, OrderBlock{
				Timestamp: c.Timestamp,
				High:      c.High,
				Low:       c.Low,
				Kind:      Bullish,
				Strength:  ratio,
			})
		case c.IsBearish() && c.Low < lowestLow(prior):
			result = append(result, OrderBlock{
				Timestamp: c.Timestamp,
				High:      c.High,
				Low:       c.Low,
				Kind:      Bearish,
				Strength:  ratio,
			})
		}
	}
	return result
}

func highestHigh(candles []models.Candle) float64 {
	h := candles[0].High
	for _, c := range candles[1:] {
		if c.High > h {
			h = c.High
		}
	}
	return h
}

func lowestLow(candles []models.Candle) float64 {
	l := candles[0].Low
	for _, c := range candles[1:] {
		if c.Low < l {
			l = c.Low
		}
	}
	return l
}
