package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Global error declarations.
var (
	AssetNotFoundErr = errors.New("not found in datasource")
	NoPricesErr      = errors.New("no prices found in datasource")
	NoTradesErr      = errors.New("no trades found in datasource")
)

type assetRow struct {
	ID        int32
	Ticker    string
	Name      string
	CreatedAt time.Time
}

type priceRow struct {
	Ticker string
	Day    time.Time
	Close  decimal.Decimal
}

type tradeRow struct {
	Symbol     string
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Day        time.Time
	Commission decimal.Decimal
	OrderID    string
}

type assetsRepository interface {
	AssetByTicker(ctx context.Context, ticker string) (assetRow, error)
}
type pricesRepository interface {
	DailyPrices(ctx context.Context, tickers []string, start, end time.Time) ([]priceRow, error)
}
type tradesRepository interface {
	TradesByPortfolio(ctx context.Context, portfolio string) ([]tradeRow, error)
}

// Database struct that holds the database connection and queries.
type Database struct {
	assets assetsRepository
	prices pricesRepository
	trades tradesRepository
	conn   *pgxpool.Pool
}

// NewDatabase creates a new Database instance and verifies connectivity.
func NewDatabase(dbURL string) (Database, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return Database{}, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return Database{}, err
	}
	// Ensure the connection is established.
	if err := conn.Ping(context.Background()); err != nil {
		return Database{}, err
	}

	queries := &pgQueries{pool: conn}
	return Database{
		assets: queries,
		prices: queries,
		trades: queries,
		conn:   conn,
	}, nil
}

// Close releases the connection pool.
func (db Database) Close() {
	if db.conn != nil {
		db.conn.Close()
	}
}
