package marketdata

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"barscope/internal/errors"
	"barscope/internal/models"
)

// CSVSource implements Source from a local CSV file of daily bars, for
// offline analysis of already-exported data. Expected header:
// date,open,high,low,close,volume with dates formatted 2006-01-02.
type CSVSource struct {
	path string
}

// NewCSVSource creates a CSV-backed source.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) Name() string { return "csv" }

type csvBar struct {
	Date   string  `csv:"date"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume int64   `csv:"volume"`
}

// Fetch reads the file and returns the bars covering the requested period,
// measured back from the most recent bar in the file. The symbol argument is
// recorded in errors only; one file holds one symbol's bars.
func (s *CSVSource) Fetch(ctx context.Context, symbol string, period Period) ([]models.Candle, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.NewDataError(s.Name(), symbol, s.path, errors.Wrap(errors.ErrDataFetch, err.Error()))
	}
	defer f.Close()

	var rows []csvBar
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, errors.NewDataError(s.Name(), symbol, "parse failed", errors.Wrap(errors.ErrDataFetch, err.Error()))
	}
	if len(rows) == 0 {
		return nil, errors.NewDataError(s.Name(), symbol, "empty file", errors.ErrDataFetch)
	}

	candles := make([]models.Candle, 0, len(rows))
	for _, r := range rows {
		ts, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			return nil, errors.NewDataError(s.Name(), symbol, "bad date "+r.Date, errors.Wrap(errors.ErrDataFetch, err.Error()))
		}
		candles = append(candles, models.Candle{
			Timestamp: ts.UTC(),
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    r.Volume,
		})
	}

	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})

	cutoff := candles[len(candles)-1].Timestamp.Add(-periodDuration(period))
	first := sort.Search(len(candles), func(i int) bool {
		return !candles[i].Timestamp.Before(cutoff)
	})

	return candles[first:], nil
}

func periodDuration(p Period) time.Duration {
	const day = 24 * time.Hour
	switch p {
	case Period1Mo:
		return 31 * day
	case Period3Mo:
		return 92 * day
	case Period6Mo:
		return 183 * day
	case Period1Y:
		return 365 * day
	case Period2Y:
		return 2 * 365 * day
	case Period5Y:
		return 5 * 365 * day
	default:
		return 365 * day
	}
}
