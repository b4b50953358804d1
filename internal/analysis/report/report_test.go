package report

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"barscope/internal/analysis"
	"barscope/internal/config"
	"barscope/internal/errors"
	"barscope/internal/models"
)

func risingSeries(n int) []models.Candle {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, n)
	for i := range candles {
		c := 100 + float64(i)
		candles[i] = models.Candle{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c - 0.5,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000 + int64(i)*10,
		}
	}
	return candles
}

func newAnalyzer() *Analyzer {
	return NewAnalyzer(config.DefaultAnalysisConfig(), zerolog.Nop())
}

func TestAnalyzeRisingSeries(t *testing.T) {
	candles := risingSeries(60)

	result, err := newAnalyzer().Analyze("TEST", candles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := result.Report
	if r.Symbol != "TEST" {
		t.Errorf("wrong symbol: %s", r.Symbol)
	}
	if r.CurrentPrice != candles[59].Close {
		t.Errorf("wrong current price: %v", r.CurrentPrice)
	}
	if r.Trend != analysis.StrongUptrend {
		t.Errorf("expected %s, got %s", analysis.StrongUptrend, r.Trend)
	}
	if len(r.TradingSignals) == 0 {
		t.Error("signals must never be empty, a placeholder is required")
	}
	if r.OrderBlocksFound != len(result.Blocks) {
		t.Errorf("block count mismatch: %d vs %d", r.OrderBlocksFound, len(result.Blocks))
	}
	if len(r.RecentOrderBlocks) > 3 {
		t.Errorf("at most 3 recent blocks, got %d", len(r.RecentOrderBlocks))
	}
}

func TestAnalyzeTrendIndependentOfConfiguredWindows(t *testing.T) {
	cfg := config.DefaultAnalysisConfig()
	cfg.MAWindows = []int{10, 30}

	result, err := NewAnalyzer(cfg, zerolog.Nop()).Analyze("TEST", risingSeries(60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Report.Trend != analysis.StrongUptrend {
		t.Errorf("expected %s, got %s", analysis.StrongUptrend, result.Report.Trend)
	}
	for _, w := range []int{10, 20, 30, 50} {
		if _, ok := result.MAs[w]; !ok {
			t.Errorf("missing %d-bar average", w)
		}
	}
}

func TestAnalyzeInsufficientData(t *testing.T) {
	_, err := newAnalyzer().Analyze("TEST", risingSeries(1))
	if !errors.Is(err, errors.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestAnalyzeMalformedSeries(t *testing.T) {
	candles := risingSeries(30)
	candles[7].High = candles[7].Low - 1

	_, err := newAnalyzer().Analyze("TEST", candles)
	if !errors.Is(err, errors.ErrMalformedBar) {
		t.Errorf("expected ErrMalformedBar, got %v", err)
	}
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	candles := risingSeries(60)
	snapshot := make([]models.Candle, len(candles))
	copy(snapshot, candles)

	if _, err := newAnalyzer().Analyze("TEST", candles); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(candles, snapshot) {
		t.Error("input series was mutated")
	}
}

func TestReportRoundTrip(t *testing.T) {
	candles := risingSeries(60)

	first, err := newAnalyzer().Analyze("TEST", candles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := newAnalyzer().Analyze("TEST", candles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.Report, second.Report) {
		t.Error("identical input must produce an identical report")
	}

	raw, err := json.Marshal(first.Report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(decoded.SupportLevels, first.Report.SupportLevels) {
		t.Error("support levels changed through serialization")
	}
	if !reflect.DeepEqual(decoded.ResistanceLevels, first.Report.ResistanceLevels) {
		t.Error("resistance levels changed through serialization")
	}
	if !reflect.DeepEqual(decoded.TradingSignals, first.Report.TradingSignals) {
		t.Error("signals changed through serialization")
	}
	if decoded.Trend != first.Report.Trend {
		t.Error("trend label changed through serialization")
	}
}
