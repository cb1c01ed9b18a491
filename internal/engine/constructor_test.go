package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"portfoliotracker/types"
)

// stubPrices is an in-memory price source keyed by ticker and day.
type stubPrices map[string]map[string]string

func (s stubPrices) PriceAt(ticker string, date time.Time) (decimal.Decimal, error) {
	day, ok := s[ticker][date.Format(types.DateFormat)]
	if !ok {
		return decimal.Zero, MissingPriceErr
	}
	return decimal.RequireFromString(day), nil
}

func newConstructorForTest(startCash string) *Constructor {
	return NewConstructor(ConstructorConfig{
		StartDate: monday,
		StartCash: decimal.RequireFromString(startCash),
		Currency:  "USD",
		Name:      "test",
	})
}

func TestConstructorRun(t *testing.T) {
	txns := []types.Transaction{
		newTrade(t, "SUBSCRIPTION", "10000", "0", "0", monday),
		newTrade(t, "AAPL", "100", "10", "0", monday.AddDate(0, 0, 1)),
	}
	prices := stubPrices{
		"AAPL": {
			"2023-03-07": "10",
			"2023-03-08": "11",
			// 2023-03-09 deliberately missing
			"2023-03-10": "12",
		},
	}

	c := newConstructorForTest("0")
	hist, err := c.Run(context.Background(), txns, prices, monday.AddDate(0, 0, 4))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(hist.Series) != 5 {
		t.Fatalf("Series length = %d, want 5", len(hist.Series))
	}
	wantEquity := []string{"10000", "10000", "10100", "10100", "10200"}
	for i, want := range wantEquity {
		assertDecimal(t, "TotalEquity day "+hist.Series[i].Date.Format(types.DateFormat), hist.Series[i].TotalEquity, want)
	}

	// The missing day carries the previous mark in aggregates but produces
	// no holding row.
	for _, row := range hist.AllHoldings {
		if row.HoldingDate.Format(types.DateFormat) == "2023-03-09" {
			t.Errorf("unexpected holding row on the unpriced day: %+v", row)
		}
	}

	if len(hist.Holdings) != 1 {
		t.Fatalf("Holdings length = %d, want 1", len(hist.Holdings))
	}
	h := hist.Holdings[0]
	if h.Symbol != "AAPL" {
		t.Errorf("Holdings symbol = %s, want AAPL", h.Symbol)
	}
	assertDecimal(t, "holding quantity", h.Quantity, "100")
	assertDecimal(t, "holding market price", h.MarketPrice, "12")
	assertDecimal(t, "holding unrealized", h.UnrealisedPnl, "200")
}

func TestConstructorNonBusinessDayAbortsBeforeMutation(t *testing.T) {
	saturday := monday.AddDate(0, 0, 5)
	txns := []types.Transaction{
		newTrade(t, "SUBSCRIPTION", "10000", "0", "0", monday),
		newTrade(t, "AAPL", "10", "10", "0", saturday),
	}

	c := newConstructorForTest("500")
	_, err := c.Run(context.Background(), txns, stubPrices{}, saturday.AddDate(0, 0, 2))

	var nbd *NonBusinessDayError
	if !errors.As(err, &nbd) {
		t.Fatalf("Run() error = %v, want NonBusinessDayError", err)
	}
	if nbd.Txn.Asset != "AAPL" {
		t.Errorf("offending transaction = %s, want the Saturday trade", nbd.Txn)
	}
	// The valid subscription must not have been applied either.
	assertDecimal(t, "Cash", c.Portfolio().Cash(), "500")
}

func TestConstructorSurfacesInsufficientFunds(t *testing.T) {
	txns := []types.Transaction{
		newTrade(t, "SUBSCRIPTION", "100", "0", "0", monday),
		newTrade(t, "WITHDRAWAL", "500", "0", "0", monday.AddDate(0, 0, 1)),
	}
	c := newConstructorForTest("0")
	_, err := c.Run(context.Background(), txns, stubPrices{}, monday.AddDate(0, 0, 2))
	if !errors.Is(err, InsufficientFundsErr) {
		t.Fatalf("Run() error = %v, want InsufficientFundsErr", err)
	}
}

func TestConstructorStableOrderWithinDay(t *testing.T) {
	// Same-day transactions must apply in input order: the subscription
	// funds the buy.
	txns := []types.Transaction{
		newTrade(t, "SUBSCRIPTION", "1000", "0", "0", monday),
		newTrade(t, "WITHDRAWAL", "400", "0", "0", monday),
	}
	c := newConstructorForTest("0")
	_, err := c.Run(context.Background(), txns, stubPrices{}, monday)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertDecimal(t, "Cash", c.Portfolio().Cash(), "600")
}

func TestConstructorCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newConstructorForTest("1000")
	_, err := c.Run(ctx, nil, stubPrices{}, monday.AddDate(0, 0, 4))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestConstructorEndBeforeStart(t *testing.T) {
	c := newConstructorForTest("1000")
	if _, err := c.Run(context.Background(), nil, stubPrices{}, monday.AddDate(0, 0, -3)); err == nil {
		t.Fatal("Run() with end before start: expected error")
	}
}
