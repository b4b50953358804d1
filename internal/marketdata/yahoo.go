package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"barscope/internal/errors"
	"barscope/internal/models"
	"barscope/pkg/utils"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooSource implements Source using the Yahoo Finance public chart API.
type YahooSource struct {
	client  *http.Client
	retry   utils.RetryConfig
	baseURL string
}

// NewYahooSource creates a Yahoo Finance source. proxyURL may be empty.
func NewYahooSource(proxyURL string) *YahooSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooSource{
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		retry:   utils.DefaultRetryConfig(),
		baseURL: yahooBaseURL,
	}
}

func (s *YahooSource) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Fetch retrieves daily candles for the given lookback period. Transient
// failures are retried with exponential backoff.
func (s *YahooSource) Fetch(ctx context.Context, symbol string, period Period) ([]models.Candle, error) {
	candles, err := utils.RetryWithResult(ctx, s.retry, func() ([]models.Candle, error) {
		return s.fetchChart(ctx, symbol, period)
	})
	if err != nil {
		if errors.Is(err, errors.ErrSymbolNotFound) {
			return nil, errors.NewDataError(s.Name(), symbol, "not found", err)
		}
		return nil, errors.NewDataError(s.Name(), symbol, "fetch failed", errors.Wrap(errors.ErrDataFetch, err.Error()))
	}
	return candles, nil
}

func (s *YahooSource) fetchChart(ctx context.Context, symbol string, period Period) ([]models.Candle, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		s.baseURL, url.PathEscape(symbol), period)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, utils.Permanent(errors.ErrSymbolNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("api error %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data returned")
	}
	quote := result.Indicators.Quote[0]

	candles := make([]models.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Yahoo nulls out fields on partially traded days and can return
		// quote arrays shorter than the timestamp list; skip those bars.
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			continue
		}
		if quote.Open[i] == nil || quote.High[i] == nil ||
			quote.Low[i] == nil || quote.Close[i] == nil || quote.Volume[i] == nil {
			continue
		}
		candles = append(candles, models.Candle{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      *quote.Open[i],
			High:      *quote.High[i],
			Low:       *quote.Low[i],
			Close:     *quote.Close[i],
			Volume:    *quote.Volume[i],
		})
	}

	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})

	return candles, nil
}
