package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var startDay = time.Date(2023, 3, 6, 0, 0, 0, 0, time.UTC)
var endDay = startDay.AddDate(0, 0, 2)

type mockPricesRepository struct {
	sqlError error
	empty    bool
}

func TestDatabase_PriceHistory(t *testing.T) {
	type args struct {
		tickers []string
		start   time.Time
		end     time.Time
	}
	tests := []struct {
		name    string
		args    args
		sqlErr  error
		empty   bool
		wantErr error
	}{
		{"should throw NoPricesErr on empty result", args{[]string{"AAPL"}, startDay, endDay}, nil, true, NoPricesErr},
		{"should throw NoPricesErr", args{[]string{"AAPL"}, startDay, endDay}, pgx.ErrNoRows, false, NoPricesErr},
		{"should return history", args{[]string{"AAPL", "MSFT"}, startDay, endDay}, nil, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := Database{
				prices: mockPricesRepository{
					sqlError: tt.sqlErr,
					empty:    tt.empty,
				},
			}
			got, err := db.PriceHistory(context.Background(), tt.args.tickers, tt.args.start, tt.args.end)
			if err != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("PriceHistory() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			for _, ticker := range tt.args.tickers {
				for day := tt.args.start; !day.After(tt.args.end); day = day.AddDate(0, 0, 1) {
					price, err := got.PriceAt(ticker, day)
					if err != nil {
						t.Errorf("PriceHistory() missing %s on %s", ticker, day)
						continue
					}
					if !price.Equal(decimal.NewFromInt(day.Unix())) {
						t.Errorf("PriceHistory() %s price got = %v, want %v", ticker, price, day.Unix())
					}
				}
			}
		})
	}
}

func (m mockPricesRepository) DailyPrices(_ context.Context, tickers []string, start, end time.Time) ([]priceRow, error) {
	if m.sqlError != nil {
		return nil, m.sqlError
	}
	if m.empty {
		return []priceRow{}, nil
	}
	var rows []priceRow
	for _, ticker := range tickers {
		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			rows = append(rows, priceRow{
				Ticker: ticker,
				Day:    day,
				Close:  decimal.NewFromInt(day.Unix()),
			})
		}
	}
	return rows, nil
}
