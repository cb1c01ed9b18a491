package repository

import (
	"context"
	"errors"
	"fmt"
	"portfoliotracker/types"

	"github.com/jackc/pgx/v5"
)

// GetTrades loads every transaction recorded for a portfolio, oldest first.
func (db Database) GetTrades(ctx context.Context, portfolio string) ([]types.Transaction, error) {
	rows, err := db.trades.TradesByPortfolio(ctx, portfolio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NoTradesErr
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NoTradesErr
	}
	return convertTrades(rows)
}

func convertTrades(rows []tradeRow) ([]types.Transaction, error) {
	var txns []types.Transaction
	for _, row := range rows {
		txn, err := types.NewTransaction(row.Symbol, row.Quantity, row.Day, row.Price, row.Commission, row.OrderID)
		if err != nil {
			return nil, fmt.Errorf("trade %s: %w", row.OrderID, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}
