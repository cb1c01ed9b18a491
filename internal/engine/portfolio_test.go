package engine

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestPortfolio(startCash string) *Portfolio {
	return NewPortfolio(monday, decimal.RequireFromString(startCash), "USD", "test")
}

func TestPortfolioCashFlows(t *testing.T) {
	tests := []struct {
		name      string
		startCash string
		subscribe string
		withdraw  string
		wantCash  string
		wantErr   error
	}{
		{"subscribe then withdraw", "1000", "500", "200", "1300", nil},
		{"withdraw everything", "1000", "0", "1000", "0", nil},
		{"withdraw beyond balance", "1000", "0", "1001", "1000", InsufficientFundsErr},
		{"zero subscription rejected", "1000", "0", "0", "1000", NonPositiveAmountErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPortfolio(tt.startCash)
			var err error
			if tt.subscribe != "0" {
				err = p.SubscribeFunds(monday, decimal.RequireFromString(tt.subscribe))
			}
			if err == nil {
				if tt.withdraw == "0" {
					err = p.SubscribeFunds(monday, decimal.Zero)
				} else {
					err = p.WithdrawFunds(monday, decimal.RequireFromString(tt.withdraw))
				}
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertDecimal(t, "Cash", p.Cash(), tt.wantCash)
		})
	}
}

func TestPortfolioTransactAsset(t *testing.T) {
	p := newTestPortfolio("10000")

	if err := p.TransactAsset(newTrade(t, "AAPL", "100", "10", "5", monday)); err != nil {
		t.Fatalf("TransactAsset() error = %v", err)
	}
	assertDecimal(t, "Cash after buy", p.Cash(), "8995")

	if err := p.TransactAsset(newTrade(t, "AAPL", "-40", "12", "2", monday.AddDate(0, 0, 1))); err != nil {
		t.Fatalf("TransactAsset() error = %v", err)
	}
	// Sell proceeds 480 minus 2 commission.
	assertDecimal(t, "Cash after sell", p.Cash(), "9473")

	pos, ok := p.Handler().Position("AAPL")
	if !ok {
		t.Fatal("position AAPL not created")
	}
	assertDecimal(t, "NetQuantity", pos.NetQuantity, "60")
}

func TestPortfolioRejectsCashFlowAsTrade(t *testing.T) {
	p := newTestPortfolio("1000")
	txn := newTrade(t, "SUBSCRIPTION", "500", "0", "0", monday)
	if err := p.TransactAsset(txn); !errors.Is(err, NotATradeErr) {
		t.Fatalf("TransactAsset(cash flow) error = %v, want NotATradeErr", err)
	}
	assertDecimal(t, "Cash", p.Cash(), "1000")
}

func TestPortfolioReconciliationIdentity(t *testing.T) {
	p := newTestPortfolio("10000")

	if err := p.SubscribeFunds(monday, decimal.RequireFromString("5000")); err != nil {
		t.Fatal(err)
	}
	if err := p.TransactAsset(newTrade(t, "AAPL", "100", "10", "5", monday)); err != nil {
		t.Fatal(err)
	}
	if err := p.TransactAsset(newTrade(t, "AAPL", "-40", "12", "2", monday.AddDate(0, 0, 1))); err != nil {
		t.Fatal(err)
	}
	pos, _ := p.Handler().Position("AAPL")
	pos.UpdateCurrentPrice(decimal.RequireFromString("11"), monday.AddDate(0, 0, 2))

	assertDecimal(t, "TotalRealisedPnl", p.TotalRealisedPnl(), "76")
	assertDecimal(t, "TotalUnrealisedPnl", p.TotalUnrealisedPnl(), "57")
	assertDecimal(t, "TotalMarketValue", p.TotalMarketValue(), "660")
	assertDecimal(t, "TotalEquity", p.TotalEquity(), "15133")

	// total_equity == start_cash + net flows + total P&L, the reconciliation
	// identity the whole ledger hangs on.
	identity := p.StartCash().Add(p.NetFlows()).Add(p.TotalPnl())
	if !p.TotalEquity().Equal(identity) {
		t.Errorf("TotalEquity() = %s, identity gives %s", p.TotalEquity(), identity)
	}
}

func TestPortfolioReplayDeterminism(t *testing.T) {
	build := func() *Portfolio {
		p := newTestPortfolio("10000")
		if err := p.TransactAsset(newTrade(t, "AAPL", "100", "10", "5", monday)); err != nil {
			t.Fatal(err)
		}
		if err := p.TransactAsset(newTrade(t, "MSFT", "-20", "200", "1", monday)); err != nil {
			t.Fatal(err)
		}
		if err := p.TransactAsset(newTrade(t, "AAPL", "-150", "12", "3", monday.AddDate(0, 0, 1))); err != nil {
			t.Fatal(err)
		}
		return p
	}

	a, b := build(), build()
	if !a.TotalEquity().Equal(b.TotalEquity()) {
		t.Errorf("equity differs across identical replays: %s vs %s", a.TotalEquity(), b.TotalEquity())
	}
	if !a.TotalPnl().Equal(b.TotalPnl()) {
		t.Errorf("P&L differs across identical replays: %s vs %s", a.TotalPnl(), b.TotalPnl())
	}
}
