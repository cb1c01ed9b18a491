package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"

	"portfoliotracker/types"
)

// MissingPriceErr marks a (ticker, date) lookup with no data. The replay
// treats it as recoverable: the instrument keeps its previous mark for that
// day and no holding row is snapshotted.
var MissingPriceErr = errors.New("no price for instrument on date")

// PriceSource answers point lookups against a price history that was fetched
// once, up front, for all instruments and the whole date range.
type PriceSource interface {
	PriceAt(ticker string, date time.Time) (decimal.Decimal, error)
}

// NonBusinessDayError aborts a reconstruction before any state mutation: a
// transaction dated off the trading calendar would corrupt the date grid.
type NonBusinessDayError struct {
	Txn types.Transaction
}

func (e *NonBusinessDayError) Error() string {
	return fmt.Sprintf("transaction %s must be on a business day", e.Txn)
}

// ConstructorConfig is the identity and policy of one reconstruction run.
type ConstructorConfig struct {
	StartDate    time.Time
	StartCash    decimal.Decimal
	Currency     string
	Name         string
	Calendar     Calendar // defaults to a plain weekday calendar
	ShowProgress bool
}

// Constructor replays an ordered transaction set against a business-day grid,
// mutating a fresh Portfolio and accumulating the daily snapshots. It owns
// its Portfolio exclusively; rerunning with a changed trade list means a new
// Constructor and a full walk from the start date.
type Constructor struct {
	cfg       ConstructorConfig
	cal       Calendar
	portfolio *Portfolio
}

func NewConstructor(cfg ConstructorConfig) *Constructor {
	cal := cfg.Calendar
	if cal == nil {
		cal = NewWeekdayCalendar()
	}
	return &Constructor{
		cfg:       cfg,
		cal:       cal,
		portfolio: NewPortfolio(cfg.StartDate, cfg.StartCash, cfg.Currency, cfg.Name),
	}
}

// Portfolio exposes the replayed state. Read-only after Run.
func (c *Constructor) Portfolio() *Portfolio { return c.portfolio }

// History is the result of one full reconstruction.
type History struct {
	// Holdings are the per-instrument rows whose mark date equals the end
	// date of the walk.
	Holdings []types.HoldingRow
	// AllHoldings are every per-instrument snapshot row, one per instrument
	// per day it could be priced.
	AllHoldings []types.HoldingRow
	// Series is the portfolio-level daily time series.
	Series []types.EquityPoint
}

// Run validates, sorts and replays the transactions day by day up to endDate.
// It checks ctx between day steps so an expensive walk can be abandoned.
func (c *Constructor) Run(ctx context.Context, txns []types.Transaction, prices PriceSource, endDate time.Time) (*History, error) {
	endDate = types.Midnight(endDate)
	if endDate.Before(c.portfolio.StartDate()) {
		return nil, fmt.Errorf("end date %s precedes portfolio start %s",
			endDate.Format(types.DateFormat), c.portfolio.StartDate().Format(types.DateFormat))
	}

	// Hard gate before any state mutation: one bad date aborts the whole
	// reconstruction, there is no partial result.
	for _, txn := range txns {
		if !c.cal.IsBusinessDay(txn.Date) {
			return nil, &NonBusinessDayError{Txn: txn}
		}
	}

	ordered := append([]types.Transaction(nil), txns...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	grid := businessDays(c.cal, c.portfolio.StartDate(), endDate)
	var bar *progressbar.ProgressBar
	if c.cfg.ShowProgress {
		bar = initProgressBar(len(grid))
	}

	hist := &History{}
	next := 0
	for _, day := range grid {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for next < len(ordered) && !ordered[next].Date.After(day) {
			if err := c.apply(ordered[next]); err != nil {
				return nil, err
			}
			next++
		}

		for _, asset := range c.portfolio.Handler().assets() {
			pos, _ := c.portfolio.Handler().Position(asset)
			price, err := prices.PriceAt(asset, day)
			if errors.Is(err, MissingPriceErr) {
				// Thin history (delisting, secondary-market holiday): carry
				// the previous mark forward and skip the day's snapshot.
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("price lookup %s on %s: %w", asset, day.Format(types.DateFormat), err)
			}
			pos.UpdateCurrentPrice(price, day)
			hist.AllHoldings = append(hist.AllHoldings, pos.holdingRow())
		}

		hist.Series = append(hist.Series, c.portfolio.equityPoint(day))
		if bar != nil {
			bar.Add(1)
		}
	}

	// The as-of date is the last day the grid actually visited; endDate
	// itself may fall on a weekend.
	if len(grid) > 0 {
		asOf := grid[len(grid)-1]
		for _, row := range hist.AllHoldings {
			if row.HoldingDate.Equal(asOf) {
				hist.Holdings = append(hist.Holdings, row)
			}
		}
	}
	return hist, nil
}

func (c *Constructor) apply(txn types.Transaction) error {
	switch txn.Kind {
	case types.KindSubscription:
		return c.portfolio.SubscribeFunds(txn.Date, txn.Quantity)
	case types.KindWithdrawal:
		return c.portfolio.WithdrawFunds(txn.Date, txn.Quantity)
	default:
		return c.portfolio.TransactAsset(txn)
	}
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Reconstructing portfolio..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
