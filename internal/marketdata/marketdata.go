// Package marketdata retrieves historical candles from external sources.
// Retry and timeout policy lives here; the analysis core never performs I/O.
package marketdata

import (
	"context"

	"barscope/internal/errors"
	"barscope/internal/models"
)

// Period is an enumerated lookback token accepted by sources.
type Period string

const (
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
)

// ParsePeriod validates a lookback token.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case Period1Mo, Period3Mo, Period6Mo, Period1Y, Period2Y, Period5Y:
		return Period(s), nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidPeriod, "%q", s)
	}
}

// Source supplies historical candles for a symbol. Implementations return
// bars in ascending timestamp order or an error wrapping ErrDataFetch.
type Source interface {
	Name() string
	Fetch(ctx context.Context, symbol string, period Period) ([]models.Candle, error)
}
