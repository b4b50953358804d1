package indicators

import (
	"testing"
	"time"

	"barscope/internal/models"
)

func candlesFromCloses(closes []float64) []models.Candle {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, len(closes))
	for i, c := range closes {
		candles[i] = models.Candle{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		}
	}
	return candles
}

func TestSMAValues(t *testing.T) {
	candles := candlesFromCloses([]float64{10, 20, 30, 40, 50})
	series := SMA(candles, 3)

	if series.Len() != 5 {
		t.Fatalf("expected length 5, got %d", series.Len())
	}

	for i := 0; i < 2; i++ {
		if _, ok := series.At(i); ok {
			t.Errorf("index %d: expected undefined before warmup", i)
		}
	}

	expected := []float64{20, 30, 40}
	for i, want := range expected {
		got, ok := series.At(i + 2)
		if !ok {
			t.Fatalf("index %d: expected defined value", i+2)
		}
		if got != want {
			t.Errorf("index %d: expected %v, got %v", i+2, want, got)
		}
	}
}

func TestSMAInsufficientData(t *testing.T) {
	candles := candlesFromCloses([]float64{10, 20})
	series := SMA(candles, 5)

	for i := 0; i < series.Len(); i++ {
		if _, ok := series.At(i); ok {
			t.Errorf("index %d: expected undefined for short series", i)
		}
	}

	if _, ok := series.Last(); ok {
		t.Error("Last should be undefined for short series")
	}
}

func TestSMAInvalidWindow(t *testing.T) {
	candles := candlesFromCloses([]float64{10, 20, 30})
	series := SMA(candles, 0)
	if _, ok := series.Last(); ok {
		t.Error("zero window should produce no defined values")
	}
}

func TestMovingAverages(t *testing.T) {
	candles := candlesFromCloses([]float64{10, 20, 30, 40, 50, 60})
	mas := MovingAverages(candles, []int{2, 3})

	if len(mas) != 2 {
		t.Fatalf("expected 2 series, got %d", len(mas))
	}

	last2, ok := mas[2].Last()
	if !ok || last2 != 55 {
		t.Errorf("MA2 last: expected 55, got %v (defined=%v)", last2, ok)
	}
	last3, ok := mas[3].Last()
	if !ok || last3 != 50 {
		t.Errorf("MA3 last: expected 50, got %v (defined=%v)", last3, ok)
	}
}

func TestAverageVolume(t *testing.T) {
	candles := candlesFromCloses([]float64{10, 20, 30})
	candles[0].Volume = 100
	candles[1].Volume = 200
	candles[2].Volume = 300

	if avg := AverageVolume(candles); avg != 200 {
		t.Errorf("expected 200, got %v", avg)
	}
	if avg := AverageVolume(nil); avg != 0 {
		t.Errorf("expected 0 for empty series, got %v", avg)
	}
}
