package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"portfoliotracker/types"
)

// Position is the per-instrument ledger: open quantity, weighted-average
// cost, realized P&L booked on closes, and the latest mark-to-market state.
// A position that has been closed out stays in the handler as a
// zero-quantity, fully realized record.
//
// AvgPrice is commission-inclusive: a buy's commission raises the per-share
// cost basis, a sell's commission lowers the per-share proceeds of a short
// leg. Folding commission into the basis keeps the reconciliation identity
// total_equity == start_cash + net_flows + total_pnl exact at every mark,
// and makes partial-close commission attribution pro rata by construction:
// the closed slice carries exactly its share of the basis.
type Position struct {
	Asset         string
	NetQuantity   decimal.Decimal
	AvgPrice      decimal.Decimal
	RealisedPnl   decimal.Decimal
	UnrealisedPnl decimal.Decimal
	MarketPrice   decimal.Decimal
	CurrentDt     time.Time
}

func newPosition(asset string) *Position {
	return &Position{Asset: asset}
}

// Apply books a trade against the position.
//
// Same-direction trades (or trades on a flat position) blend the average
// price by relative size and book no realized P&L. Opposite-direction trades
// realize P&L on the closed quantity, net of the closing commission share
// allocated in proportion closed/trade quantity; if the trade is larger than
// the open quantity the position flips and the excess opens a new leg at the
// trade price with no realized history of its own.
func (p *Position) Apply(txn types.Transaction) {
	absTxn := txn.Quantity.Abs()

	switch {
	case p.NetQuantity.IsZero() || sameSide(p.NetQuantity, txn.Quantity):
		legDir := signOf(p.NetQuantity.Add(txn.Quantity))
		p.AvgPrice = blendedAvg(p.AvgPrice, p.NetQuantity.Abs(), txn.Price, absTxn, txn.Commission, legDir)
		p.NetQuantity = p.NetQuantity.Add(txn.Quantity)

	default:
		absOpen := p.NetQuantity.Abs()
		closed := decimal.Min(absTxn, absOpen)
		dir := signOf(p.NetQuantity)
		closeShare := txn.Commission.Mul(closed).Div(absTxn)

		p.RealisedPnl = p.RealisedPnl.
			Add(closed.Mul(txn.Price.Sub(p.AvgPrice)).Mul(dir)).
			Sub(closeShare)
		p.NetQuantity = p.NetQuantity.Add(txn.Quantity)

		switch {
		case p.NetQuantity.IsZero():
			// Fully closed: the average price is undefined until a new
			// opening trade arrives.
			p.AvgPrice = decimal.Zero
		case !sameSide(p.NetQuantity, dir):
			// Flipped through zero: the excess is a fresh leg at the trade
			// price carrying the unallocated slice of the commission.
			excess := p.NetQuantity.Abs()
			legComm := txn.Commission.Sub(closeShare)
			p.AvgPrice = blendedAvg(decimal.Zero, decimal.Zero, txn.Price, excess, legComm, signOf(p.NetQuantity))
		}
	}

	p.MarketPrice = txn.Price
	p.CurrentDt = txn.Date
	p.recalcUnrealised()
}

// UpdateCurrentPrice marks the position to market. Calling it twice with the
// same inputs is a no-op.
func (p *Position) UpdateCurrentPrice(price decimal.Decimal, dt time.Time) {
	p.MarketPrice = price
	p.CurrentDt = dt
	p.recalcUnrealised()
}

func (p *Position) recalcUnrealised() {
	if p.NetQuantity.IsZero() {
		p.UnrealisedPnl = decimal.Zero
		return
	}
	p.UnrealisedPnl = p.NetQuantity.Mul(p.MarketPrice.Sub(p.AvgPrice))
}

// TotalPnl is realized plus unrealized P&L. The identity holds after every
// trade and every price update.
func (p *Position) TotalPnl() decimal.Decimal {
	return p.RealisedPnl.Add(p.UnrealisedPnl)
}

// MarketValue is the open quantity at the latest mark.
func (p *Position) MarketValue() decimal.Decimal {
	return p.NetQuantity.Mul(p.MarketPrice)
}

// NetInclCommission is the signed cost basis of the open quantity including
// the commission attributable to it.
func (p *Position) NetInclCommission() decimal.Decimal {
	return p.NetQuantity.Mul(p.AvgPrice)
}

func (p *Position) holdingRow() types.HoldingRow {
	return types.HoldingRow{
		Symbol:        p.Asset,
		Quantity:      p.NetQuantity,
		MarketPrice:   p.MarketPrice,
		MarketValue:   p.MarketValue(),
		AvgPrice:      p.AvgPrice,
		TotalCost:     p.NetInclCommission(),
		UnrealisedPnl: p.UnrealisedPnl,
		RealisedPnl:   p.RealisedPnl,
		TotalPnl:      p.TotalPnl(),
		HoldingDate:   p.CurrentDt,
	}
}

func sameSide(a, b decimal.Decimal) bool {
	return (a.GreaterThan(decimal.Zero) && b.GreaterThan(decimal.Zero)) ||
		(a.LessThan(decimal.Zero) && b.LessThan(decimal.Zero))
}

func signOf(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// blendedAvg size-weights the existing basis with a new slice. Commission
// moves the basis toward the leg's disadvantage: it raises the cost of a
// long, lowers the per-share proceeds of a short.
func blendedAvg(existingAvg, existingQty, price, qty, commission, legDir decimal.Decimal) decimal.Decimal {
	total := existingQty.Add(qty)
	if total.IsZero() {
		return price
	}
	return existingAvg.Mul(existingQty).
		Add(price.Mul(qty)).
		Add(legDir.Mul(commission)).
		Div(total)
}
