package levels

import (
	"reflect"
	"testing"
	"time"

	"barscope/internal/analysis"
	"barscope/internal/models"
)

func makeCandles(lows, highs []float64) []models.Candle {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, len(lows))
	for i := range lows {
		mid := (lows[i] + highs[i]) / 2
		candles[i] = models.Candle{
			Timestamp: base.AddDate(0, 0, i),
			Open:      mid,
			High:      highs[i],
			Low:       lows[i],
			Close:     mid,
			Volume:    1000,
		}
	}
	return candles
}

func TestFindSupportResistance(t *testing.T) {
	lows := []float64{10, 10, 10, 5, 10, 10, 10, 10, 10, 10, 10}
	highs := []float64{20, 20, 20, 20, 20, 20, 20, 25, 20, 20, 20}
	candles := makeCandles(lows, highs)

	supports, resistances := NewDetector(2, 0.02).Find(candles)

	if len(supports) != 1 || supports[0].Price != 5 {
		t.Fatalf("expected single support at 5, got %+v", supports)
	}
	if supports[0].Type != analysis.LevelSupport {
		t.Errorf("wrong level type: %s", supports[0].Type)
	}
	if len(resistances) != 1 || resistances[0].Price != 25 {
		t.Fatalf("expected single resistance at 25, got %+v", resistances)
	}
}

func TestFindSortOrder(t *testing.T) {
	// Two separated dips (5 then 7) and two separated peaks (25 then 30).
	lows := []float64{10, 10, 10, 5, 10, 10, 10, 7, 10, 10, 10, 10}
	highs := []float64{20, 20, 20, 20, 20, 25, 20, 20, 20, 30, 20, 20}
	candles := makeCandles(lows, highs)

	supports, resistances := NewDetector(2, 0.02).Find(candles)

	if len(supports) != 2 || supports[0].Price != 5 || supports[1].Price != 7 {
		t.Errorf("supports not ascending: %+v", supports)
	}
	if len(resistances) != 2 || resistances[0].Price != 30 || resistances[1].Price != 25 {
		t.Errorf("resistances not descending: %+v", resistances)
	}
}

func TestFindShortSeries(t *testing.T) {
	candles := makeCandles([]float64{10, 9, 10}, []float64{20, 20, 20})
	supports, resistances := NewDetector(5, 0.02).Find(candles)
	if supports != nil || resistances != nil {
		t.Errorf("expected empty result for short series, got %v / %v", supports, resistances)
	}
}

func TestMergeDropsNearDuplicates(t *testing.T) {
	got := Merge([]float64{100, 101, 150}, 0.02)
	want := []float64{100, 150}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMergeEarliestSurvives(t *testing.T) {
	got := Merge([]float64{101, 100}, 0.02)
	if len(got) != 1 || got[0] != 101 {
		t.Errorf("expected earliest candidate 101 to survive, got %v", got)
	}
}

func TestMergeIdempotent(t *testing.T) {
	prices := []float64{100, 100.5, 120, 121, 200}
	once := Merge(prices, 0.02)
	twice := Merge(once, 0.02)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge is not a fixed point: %v vs %v", once, twice)
	}
}
