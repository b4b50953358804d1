// Package models provides domain models for the analysis engine.
package models

import (
	"time"

	"barscope/internal/errors"
)

// Candle represents OHLCV data for a time period.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// IsBullish reports whether the candle closed above its open.
func (c Candle) IsBullish() bool {
	return c.Close > c.Open
}

// IsBearish reports whether the candle closed below its open.
func (c Candle) IsBearish() bool {
	return c.Close < c.Open
}

// Body returns the absolute open-close distance.
func (c Candle) Body() float64 {
	if c.Close > c.Open {
		return c.Close - c.Open
	}
	return c.Open - c.Close
}

// Range returns the high-low distance.
func (c Candle) Range() float64 {
	return c.High - c.Low
}

// BodyRatio returns Body/Range. The second return value is false when the
// candle has zero range, where the ratio is undefined.
func (c Candle) BodyRatio() (float64, bool) {
	rng := c.Range()
	if rng == 0 {
		return 0, false
	}
	return c.Body() / rng, true
}

// Validate checks a single candle for structural soundness.
func (c Candle) Validate() error {
	if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
		return errors.ErrMalformedBar
	}
	if c.Volume < 0 {
		return errors.ErrMalformedBar
	}
	if c.High < c.Low {
		return errors.ErrMalformedBar
	}
	maxBody := c.Open
	if c.Close > maxBody {
		maxBody = c.Close
	}
	minBody := c.Open
	if c.Close < minBody {
		minBody = c.Close
	}
	if c.High < maxBody || c.Low > minBody {
		return errors.ErrMalformedBar
	}
	return nil
}

// ValidateCandles checks a whole series: every candle must be well-formed and
// timestamps must be strictly increasing. The series is rejected as a whole on
// the first violation; malformed bars are never dropped or repaired silently.
func ValidateCandles(candles []Candle) error {
	if len(candles) == 0 {
		return errors.ErrInsufficientData
	}
	for i, c := range candles {
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "bar %d (%s)", i, c.Timestamp.Format("2006-01-02"))
		}
		if i > 0 && !candles[i-1].Timestamp.Before(c.Timestamp) {
			return errors.Wrapf(errors.ErrMalformedBar, "bar %d: timestamp not increasing", i)
		}
	}
	return nil
}
