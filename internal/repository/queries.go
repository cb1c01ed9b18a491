package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// pgQueries is the Postgres implementation behind the repository interfaces.
type pgQueries struct {
	pool *pgxpool.Pool
}

func (q *pgQueries) AssetByTicker(ctx context.Context, ticker string) (assetRow, error) {
	var row assetRow
	err := q.pool.QueryRow(ctx,
		`SELECT id, ticker, name, created_at FROM assets WHERE ticker = $1`,
		ticker,
	).Scan(&row.ID, &row.Ticker, &row.Name, &row.CreatedAt)
	return row, err
}

func (q *pgQueries) DailyPrices(ctx context.Context, tickers []string, start, end time.Time) ([]priceRow, error) {
	rows, err := q.pool.Query(ctx,
		`SELECT a.ticker, p.day, p.close
		 FROM daily_prices p
		 JOIN assets a ON a.id = p.asset_id
		 WHERE a.ticker = ANY($1) AND p.day BETWEEN $2 AND $3
		 ORDER BY a.ticker, p.day`,
		tickers, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []priceRow
	for rows.Next() {
		var row priceRow
		if err := rows.Scan(&row.Ticker, &row.Day, &row.Close); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (q *pgQueries) TradesByPortfolio(ctx context.Context, portfolio string) ([]tradeRow, error) {
	rows, err := q.pool.Query(ctx,
		`SELECT symbol, quantity, price, day, commission, order_id
		 FROM trades
		 WHERE portfolio = $1
		 ORDER BY day, id`,
		portfolio,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tradeRow
	for rows.Next() {
		var row tradeRow
		if err := rows.Scan(&row.Symbol, &row.Quantity, &row.Price, &row.Day, &row.Commission, &row.OrderID); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
