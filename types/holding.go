package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoldingRow is one per-instrument line of the holdings report: the priced
// state of a position on a given day.
type HoldingRow struct {
	Symbol        string
	Quantity      decimal.Decimal
	MarketPrice   decimal.Decimal
	MarketValue   decimal.Decimal
	AvgPrice      decimal.Decimal
	TotalCost     decimal.Decimal
	UnrealisedPnl decimal.Decimal
	RealisedPnl   decimal.Decimal
	TotalPnl      decimal.Decimal
	HoldingDate   time.Time
}
