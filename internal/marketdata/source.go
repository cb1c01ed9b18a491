// Package marketdata supplies batched daily price histories to the
// accounting engine: one fetch per reconstruction covering every instrument
// and the whole date range, point lookups afterwards.
package marketdata

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"portfoliotracker/internal/engine"
	"portfoliotracker/types"
)

// Provider fetches a full price history in one round trip per instrument.
type Provider interface {
	PriceHistory(ctx context.Context, tickers []string, start, end time.Time) (*History, error)
}

// History is a date-indexed price table for a set of tickers. It satisfies
// the engine's PriceSource contract; absent entries are reported as
// engine.MissingPriceErr so the replay can skip them.
type History struct {
	prices map[string]map[string]decimal.Decimal
}

func NewHistory() *History {
	return &History{prices: make(map[string]map[string]decimal.Decimal)}
}

// Add records one close.
func (h *History) Add(ticker string, date time.Time, price decimal.Decimal) {
	day := types.Midnight(date).Format(types.DateFormat)
	if h.prices[ticker] == nil {
		h.prices[ticker] = make(map[string]decimal.Decimal)
	}
	h.prices[ticker][day] = price
}

// PriceAt is the point lookup used by the replay.
func (h *History) PriceAt(ticker string, date time.Time) (decimal.Decimal, error) {
	day := types.Midnight(date).Format(types.DateFormat)
	price, ok := h.prices[ticker][day]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s on %s", engine.MissingPriceErr, ticker, day)
	}
	return price, nil
}

// Series flattens one ticker's history into a date-sorted price series, the
// shape the benchmark join consumes.
func (h *History) Series(ticker string) []types.PricePoint {
	days := h.prices[ticker]
	out := make([]types.PricePoint, 0, len(days))
	for day, price := range days {
		d, err := time.Parse(types.DateFormat, day)
		if err != nil {
			continue
		}
		out = append(out, types.PricePoint{Date: d, Price: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Tickers lists the instruments present in the history.
func (h *History) Tickers() []string {
	out := make([]string, 0, len(h.prices))
	for ticker := range h.prices {
		out = append(out, ticker)
	}
	sort.Strings(out)
	return out
}

var _ engine.PriceSource = (*History)(nil)

// benchmarkSymbols maps the display names offered to users onto index
// tickers.
var benchmarkSymbols = map[string]string{
	"S&P 500":       "^GSPC",
	"NASDAQ":        "^IXIC",
	"Dow Jones":     "^DJI",
	"Russell 2000":  "^RUT",
	"Nikkei 225":    "^N225",
	"Hang Seng":     "^HSI",
	"Euro Stoxx 50": "^STOXX50E",
}

// BenchmarkSymbol resolves a benchmark display name to its index ticker.
func BenchmarkSymbol(name string) (string, error) {
	sym, ok := benchmarkSymbols[name]
	if !ok {
		return "", fmt.Errorf("%w: unknown benchmark %q", engine.BenchmarkUnavailableErr, name)
	}
	return sym, nil
}

// BenchmarkNames lists the supported benchmarks in a stable order.
func BenchmarkNames() []string {
	out := make([]string, 0, len(benchmarkSymbols))
	for name := range benchmarkSymbols {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
