package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"portfoliotracker/types"
)

var NoResultErr = errors.New("yahoo: no result")

const defaultYahooBaseURL = "https://query2.finance.yahoo.com"

// YahooProvider fetches daily closes from the Yahoo Finance v8 chart
// endpoint, one request per ticker covering the whole requested range.
type YahooProvider struct {
	cli     *http.Client
	baseURL string
}

func NewYahooProvider() *YahooProvider {
	return &YahooProvider{
		cli:     &http.Client{Timeout: 15 * time.Second},
		baseURL: defaultYahooBaseURL,
	}
}

// NewYahooProviderWithBase targets a non-default endpoint, e.g. a test
// server or caching proxy.
func NewYahooProviderWithBase(baseURL string) *YahooProvider {
	p := NewYahooProvider()
	p.baseURL = baseURL
	return p
}

func (p *YahooProvider) PriceHistory(ctx context.Context, tickers []string, start, end time.Time) (*History, error) {
	hist := NewHistory()
	for _, ticker := range tickers {
		if err := p.fetchInto(ctx, hist, ticker, start, end); err != nil {
			return nil, fmt.Errorf("fetch %s: %w", ticker, err)
		}
	}
	return hist, nil
}

func (p *YahooProvider) fetchInto(ctx context.Context, hist *History, ticker string, start, end time.Time) error {
	// The range upper bound is exclusive, so push it one day past the end.
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d&events=div%%2Csplits",
		p.baseURL, url.PathEscape(ticker),
		types.Midnight(start).Unix(), types.Midnight(end).AddDate(0, 0, 1).Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "portfoliotracker/1.0")

	resp, err := p.cli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo http %d", resp.StatusCode)
	}

	var raw struct {
		Chart struct {
			Result []struct {
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Close []float64 `json:"close"`
					} `json:"quote"`
					Adjclose []struct {
						Adjclose []float64 `json:"adjclose"`
					} `json:"adjclose"`
				} `json:"indicators"`
			} `json:"result"`
			Error any `json:"error"`
		} `json:"chart"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return err
	}
	if len(raw.Chart.Result) == 0 {
		return NoResultErr
	}

	r := raw.Chart.Result[0]
	// Prefer the adjusted close, fall back to the raw close.
	var closes []float64
	if len(r.Indicators.Adjclose) > 0 && len(r.Indicators.Adjclose[0].Adjclose) > 0 {
		closes = r.Indicators.Adjclose[0].Adjclose
	} else if len(r.Indicators.Quote) > 0 {
		closes = r.Indicators.Quote[0].Close
	}
	if len(closes) != len(r.Timestamp) {
		return NoResultErr
	}
	for i, ts := range r.Timestamp {
		if closes[i] <= 0 {
			// Gaps stay gaps: the replay carries the previous mark forward.
			continue
		}
		hist.Add(ticker, time.Unix(ts, 0).UTC(), decimal.NewFromFloat(closes[i]))
	}
	return nil
}

var _ Provider = (*YahooProvider)(nil)
