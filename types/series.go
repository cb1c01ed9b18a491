package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquityPoint is one day of the portfolio-level time series.
type EquityPoint struct {
	Date               time.Time
	TotalEquity        decimal.Decimal
	TotalMarketValue   decimal.Decimal
	TotalRealisedPnl   decimal.Decimal
	TotalUnrealisedPnl decimal.Decimal
	TotalPnl           decimal.Decimal
}

// PricePoint is one day of an external price series.
type PricePoint struct {
	Date  time.Time
	Price decimal.Decimal
}

// ReturnPoint is one row of the returns frame handed to the statistics
// layer: portfolio and benchmark daily returns plus the levels they were
// derived from.
type ReturnPoint struct {
	Date            time.Time
	PortfolioReturn decimal.Decimal
	BenchmarkReturn decimal.Decimal
	TotalEquity     decimal.Decimal
	BenchmarkLevel  decimal.Decimal
}
