package signals

import (
	"testing"
	"time"

	"barscope/internal/analysis"
	"barscope/internal/analysis/indicators"
	"barscope/internal/models"
)

func twoBars(prevClose, currClose float64, currVolume int64) []models.Candle {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Candle{
		{Timestamp: base, Open: prevClose, High: prevClose + 1, Low: prevClose - 1, Close: prevClose, Volume: 1000},
		{Timestamp: base.AddDate(0, 0, 1), Open: currClose, High: currClose + 1, Low: currClose - 1, Close: currClose, Volume: currVolume},
	}
}

func maSeries(values ...float64) indicators.ValueSeries {
	valid := make([]bool, len(values))
	for i := range valid {
		valid[i] = true
	}
	return indicators.ValueSeries{Values: values, Valid: valid}
}

func kinds(signals []analysis.Signal) []analysis.SignalKind {
	out := make([]analysis.SignalKind, len(signals))
	for i, s := range signals {
		out[i] = s.Kind
	}
	return out
}

func TestCrossoverBuy(t *testing.T) {
	candles := twoBars(99, 103, 1000)
	ma20 := maSeries(100, 101)

	got := NewGenerator().Generate(candles, ma20, nil, nil)
	if len(got) != 1 || got[0].Kind != analysis.SignalBuy {
		t.Fatalf("expected single BUY, got %v", kinds(got))
	}
	if got[0].Message != "BUY - Price crossed above 20MA" {
		t.Errorf("unexpected message: %q", got[0].Message)
	}
}

func TestCrossoverSell(t *testing.T) {
	candles := twoBars(103, 99, 1000)
	ma20 := maSeries(100, 101)

	got := NewGenerator().Generate(candles, ma20, nil, nil)
	if len(got) != 1 || got[0].Kind != analysis.SignalSell {
		t.Fatalf("expected single SELL, got %v", kinds(got))
	}
}

func TestCrossoverRequiresDefinedMA(t *testing.T) {
	candles := twoBars(99, 103, 1000)
	ma20 := indicators.ValueSeries{Values: []float64{0, 101}, Valid: []bool{false, true}}

	got := NewGenerator().Generate(candles, ma20, nil, nil)
	if len(got) != 1 || got[0].Kind != analysis.SignalNone {
		t.Fatalf("undefined MA must not trigger a cross, got %v", kinds(got))
	}
}

func TestSupportProximity(t *testing.T) {
	candles := twoBars(105, 100.5, 1000)
	supports := []analysis.Level{
		{Price: 100, Type: analysis.LevelSupport},
		{Price: 80, Type: analysis.LevelSupport},
	}

	// MA values far from price so the cross check stays quiet.
	got := NewGenerator().Generate(candles, maSeries(90, 90), supports, nil)
	if len(got) != 1 || got[0].Kind != analysis.SignalPotentialBuy {
		t.Fatalf("expected single POTENTIAL_BUY, got %v", kinds(got))
	}
}

func TestResistanceProximity(t *testing.T) {
	candles := twoBars(95, 99.5, 1000)
	resistances := []analysis.Level{
		{Price: 100, Type: analysis.LevelResistance},
		{Price: 130, Type: analysis.LevelResistance},
	}

	got := NewGenerator().Generate(candles, maSeries(90, 90), nil, resistances)
	if len(got) != 1 || got[0].Kind != analysis.SignalPotentialSell {
		t.Fatalf("expected single POTENTIAL_SELL, got %v", kinds(got))
	}
}

func TestProximityNotTriggeredWhenFar(t *testing.T) {
	candles := twoBars(105, 103, 1000)
	supports := []analysis.Level{{Price: 100, Type: analysis.LevelSupport}}

	got := NewGenerator().Generate(candles, maSeries(90, 90), supports, nil)
	if len(got) != 1 || got[0].Kind != analysis.SignalNone {
		t.Fatalf("support 3%% away must not trigger, got %v", kinds(got))
	}
}

func TestVolumeSpike(t *testing.T) {
	candles := twoBars(100, 101, 10000)

	got := NewGenerator().Generate(candles, maSeries(90, 90), nil, nil)
	if len(got) != 1 || got[0].Kind != analysis.SignalVolumeSpike {
		t.Fatalf("expected single VOLUME_SPIKE, got %v", kinds(got))
	}
}

func TestNoSignalPlaceholder(t *testing.T) {
	candles := twoBars(100, 101, 1000)

	got := NewGenerator().Generate(candles, maSeries(90, 90), nil, nil)
	if len(got) != 1 || got[0].Kind != analysis.SignalNone {
		t.Fatalf("expected placeholder, got %v", kinds(got))
	}
}

func TestEvaluationOrder(t *testing.T) {
	// Cross up, near support, and a volume spike all at once.
	candles := twoBars(99, 100.5, 10000)
	ma20 := maSeries(100, 100.2)
	supports := []analysis.Level{{Price: 100, Type: analysis.LevelSupport}}

	got := NewGenerator().Generate(candles, ma20, supports, nil)
	want := []analysis.SignalKind{analysis.SignalBuy, analysis.SignalPotentialBuy, analysis.SignalVolumeSpike}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds(got))
	}
	for i := range want {
		if got[i].Kind != want[i] {
			t.Fatalf("expected %v, got %v", want, kinds(got))
		}
	}
}
