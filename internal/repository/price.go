package repository

import (
	"context"
	"errors"
	"portfoliotracker/internal/marketdata"
	"time"

	"github.com/jackc/pgx/v5"
)

var _ marketdata.Provider = Database{}

// PriceHistory loads daily closes for the given tickers into a price history.
// It satisfies marketdata.Provider so a replay can be fed straight from the
// database instead of a remote source.
func (db Database) PriceHistory(ctx context.Context, tickers []string, start, end time.Time) (*marketdata.History, error) {
	rows, err := db.prices.DailyPrices(ctx, tickers, start, end)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NoPricesErr
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NoPricesErr
	}
	history := marketdata.NewHistory()
	for _, row := range rows {
		history.Add(row.Ticker, row.Day, row.Close)
	}
	return history, nil
}
