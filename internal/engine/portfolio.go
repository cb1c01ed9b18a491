package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"portfoliotracker/types"
)

var (
	InsufficientFundsErr = errors.New("insufficient funds for withdrawal")
	NonPositiveAmountErr = errors.New("cash flow amount must be positive")
)

// Portfolio owns the cash balance and the position handler, and derives the
// portfolio-level aggregates from them on demand. One Portfolio belongs to
// exactly one reconstruction run; a changed trade list means a fresh
// Portfolio replayed from the start date.
type Portfolio struct {
	name      string
	currency  string
	startDate time.Time
	startCash decimal.Decimal

	cash     decimal.Decimal
	netFlows decimal.Decimal
	handler  *PositionHandler
}

func NewPortfolio(startDate time.Time, startCash decimal.Decimal, currency, name string) *Portfolio {
	return &Portfolio{
		name:      name,
		currency:  currency,
		startDate: types.Midnight(startDate),
		startCash: startCash,
		cash:      startCash,
		handler:   newPositionHandler(),
	}
}

func (p *Portfolio) Name() string          { return p.name }
func (p *Portfolio) Currency() string      { return p.currency }
func (p *Portfolio) StartDate() time.Time  { return p.startDate }
func (p *Portfolio) StartCash() decimal.Decimal { return p.startCash }
func (p *Portfolio) Cash() decimal.Decimal { return p.cash }

// NetFlows is the running sum of subscriptions minus withdrawals, kept for
// the equity reconciliation identity.
func (p *Portfolio) NetFlows() decimal.Decimal { return p.netFlows }

// Handler exposes the position handler for iteration. Mutation goes through
// TransactAsset only.
func (p *Portfolio) Handler() *PositionHandler { return p.handler }

// SubscribeFunds credits an external cash inflow. Subscriptions are not
// trading P&L.
func (p *Portfolio) SubscribeFunds(dt time.Time, amount decimal.Decimal) error {
	if !amount.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: subscription of %s on %s", NonPositiveAmountErr, amount, dt.Format(types.DateFormat))
	}
	p.cash = p.cash.Add(amount)
	p.netFlows = p.netFlows.Add(amount)
	return nil
}

// WithdrawFunds debits an external cash outflow. A withdrawal that would
// drive cash negative is rejected and leaves the balance unchanged.
func (p *Portfolio) WithdrawFunds(dt time.Time, amount decimal.Decimal) error {
	if !amount.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: withdrawal of %s on %s", NonPositiveAmountErr, amount, dt.Format(types.DateFormat))
	}
	if amount.GreaterThan(p.cash) {
		return fmt.Errorf("%w: withdrawal of %s exceeds cash balance %s on %s",
			InsufficientFundsErr, amount, p.cash, dt.Format(types.DateFormat))
	}
	p.cash = p.cash.Sub(amount)
	p.netFlows = p.netFlows.Sub(amount)
	return nil
}

// TransactAsset applies a trade: cash moves by the signed cost including
// commission, then the position handler books the trade.
func (p *Portfolio) TransactAsset(txn types.Transaction) error {
	if txn.IsCashFlow() {
		return fmt.Errorf("%w: %s", NotATradeErr, txn)
	}
	p.cash = p.cash.Sub(txn.CostWithCommission())
	return p.handler.Transact(txn)
}

// TotalMarketValue sums the marked value of every position.
func (p *Portfolio) TotalMarketValue() decimal.Decimal {
	total := decimal.Zero
	for _, pos := range p.handler.positions {
		total = total.Add(pos.MarketValue())
	}
	return total
}

func (p *Portfolio) TotalUnrealisedPnl() decimal.Decimal {
	total := decimal.Zero
	for _, pos := range p.handler.positions {
		total = total.Add(pos.UnrealisedPnl)
	}
	return total
}

func (p *Portfolio) TotalRealisedPnl() decimal.Decimal {
	total := decimal.Zero
	for _, pos := range p.handler.positions {
		total = total.Add(pos.RealisedPnl)
	}
	return total
}

func (p *Portfolio) TotalPnl() decimal.Decimal {
	return p.TotalRealisedPnl().Add(p.TotalUnrealisedPnl())
}

// TotalEquity is cash plus the market value of all open positions.
func (p *Portfolio) TotalEquity() decimal.Decimal {
	return p.cash.Add(p.TotalMarketValue())
}

func (p *Portfolio) equityPoint(dt time.Time) types.EquityPoint {
	return types.EquityPoint{
		Date:               dt,
		TotalEquity:        p.TotalEquity(),
		TotalMarketValue:   p.TotalMarketValue(),
		TotalRealisedPnl:   p.TotalRealisedPnl(),
		TotalUnrealisedPnl: p.TotalUnrealisedPnl(),
		TotalPnl:           p.TotalPnl(),
	}
}
