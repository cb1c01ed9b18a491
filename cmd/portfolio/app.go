package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"sort"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"portfoliotracker/internal/config"
	"portfoliotracker/internal/engine"
	"portfoliotracker/internal/marketdata"
	"portfoliotracker/internal/repository"
	"portfoliotracker/internal/tradefile"
	"portfoliotracker/types"
)

// runFlags are the reconstruction flags shared by every report subcommand.
type runFlags struct {
	cfg      *config.Config
	trades   string
	start    string
	end      string
	cash     string
	name     string
	currency string
	progress bool
}

func (r *runFlags) register(f *flag.FlagSet) {
	f.StringVar(&r.trades, "trades", "", "path to a CSV trade table; when empty the trade ledger is read from the database")
	f.StringVar(&r.start, "start", "", "first day of the reconstruction, defaults to the first transaction date")
	f.StringVar(&r.end, "end", "", "last day of the reconstruction, defaults to today")
	f.StringVar(&r.cash, "cash", "0", "cash balance before the first transaction")
	f.StringVar(&r.name, "name", "portfolio", "portfolio name, also the ledger key in the database")
	f.StringVar(&r.currency, "currency", r.cfg.Currency, "reporting currency")
	f.BoolVar(&r.progress, "progress", true, "show replay progress")
}

// reconstruction bundles the replayed portfolio with its daily history and
// the price table the replay was marked against.
type reconstruction struct {
	portfolio *engine.Portfolio
	history   *engine.History
	prices    *marketdata.History
}

// reconstruct loads trades and prices, then replays the portfolio from its
// start date. Prices for extraTickers (benchmarks) ride along in the same
// batched fetch.
func (r *runFlags) reconstruct(ctx context.Context, extraTickers ...string) (*reconstruction, error) {
	startCash, err := decimal.NewFromString(r.cash)
	if err != nil {
		return nil, fmt.Errorf("cash %q: %w", r.cash, err)
	}

	var (
		provider marketdata.Provider
		txns     []types.Transaction
	)
	if r.cfg.DatabaseURL != "" {
		db, err := repository.NewDatabase(r.cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		provider = db
		if r.trades == "" {
			if txns, err = db.GetTrades(ctx, r.name); err != nil {
				return nil, err
			}
		}
	} else {
		if r.trades == "" {
			return nil, errors.New("no trade source: pass -trades or set DATABASE_URL")
		}
		if r.cfg.PriceAPIURL != "" {
			provider = marketdata.NewYahooProviderWithBase(r.cfg.PriceAPIURL)
		} else {
			provider = marketdata.NewYahooProvider()
		}
	}
	if r.trades != "" {
		if txns, err = tradefile.Load(r.trades); err != nil {
			return nil, err
		}
	}

	start, end, err := r.window(txns)
	if err != nil {
		return nil, err
	}

	tickers := append(tradeTickers(txns), extraTickers...)
	prices, err := provider.PriceHistory(ctx, tickers, start, end)
	if err != nil {
		return nil, err
	}

	constructor := engine.NewConstructor(engine.ConstructorConfig{
		StartDate:    start,
		StartCash:    startCash,
		Currency:     r.currency,
		Name:         r.name,
		ShowProgress: r.progress,
	})
	history, err := constructor.Run(ctx, txns, prices, end)
	if err != nil {
		return nil, err
	}
	return &reconstruction{
		portfolio: constructor.Portfolio(),
		history:   history,
		prices:    prices,
	}, nil
}

func (r *runFlags) window(txns []types.Transaction) (start, end time.Time, err error) {
	if r.start != "" {
		if start, err = types.ParseDate(r.start); err != nil {
			return
		}
	} else {
		if len(txns) == 0 {
			err = errors.New("no transactions to replay")
			return
		}
		start = txns[0].Date
		for _, txn := range txns[1:] {
			if txn.Date.Before(start) {
				start = txn.Date
			}
		}
	}
	if r.end != "" {
		if end, err = types.ParseDate(r.end); err != nil {
			return
		}
	} else {
		end = types.Midnight(time.Now())
	}
	return
}

// tradeTickers collects the distinct instruments traded, skipping cash flows.
func tradeTickers(txns []types.Transaction) []string {
	seen := map[string]bool{}
	for _, txn := range txns {
		if txn.Kind == types.KindTrade {
			seen[txn.Asset] = true
		}
	}
	out := make([]string, 0, len(seen))
	for ticker := range seen {
		out = append(out, ticker)
	}
	sort.Strings(out)
	return out
}

// formatMoney renders a decimal amount in the given currency, with the
// currency's own fraction and symbol rules.
func formatMoney(amount decimal.Decimal, code string) string {
	cur := money.New(0, code).Currency()
	return cur.Formatter().Format(amount.Shift(int32(cur.Fraction)).Round(0).IntPart())
}

// formatPercent renders a fractional return as a percentage.
func formatPercent(v decimal.Decimal) string {
	return v.Shift(2).StringFixed(2) + "%"
}
