package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var InvalidTransactionErr = errors.New("invalid transaction")

// Reserved symbols used by trade tables to mark cash movements.
const (
	SubscriptionSymbol = "SUBSCRIPTION"
	WithdrawalSymbol   = "WITHDRAWAL"
)

type TransactionKind int

const (
	KindTrade TransactionKind = iota
	KindSubscription
	KindWithdrawal
)

func (k TransactionKind) String() string {
	switch k {
	case KindSubscription:
		return "subscription"
	case KindWithdrawal:
		return "withdrawal"
	default:
		return "trade"
	}
}

// Transaction is an immutable record of a single economic event: a trade in
// an instrument, or a cash subscription/withdrawal. Cash flows carry the
// amount in Quantity and have zero price and commission.
type Transaction struct {
	Asset      string
	Kind       TransactionKind
	Quantity   decimal.Decimal
	Direction  int
	Date       time.Time
	Price      decimal.Decimal
	Commission decimal.Decimal
	OrderID    string
}

// NewTransaction validates and builds a Transaction. The reserved symbols
// SUBSCRIPTION and WITHDRAWAL become cash-flow kinds; anything else is a
// trade in that instrument.
func NewTransaction(asset string, quantity decimal.Decimal, date time.Time, price, commission decimal.Decimal, orderID string) (Transaction, error) {
	if quantity.IsZero() {
		return Transaction{}, fmt.Errorf("%w: zero quantity for %s", InvalidTransactionErr, asset)
	}
	if price.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: negative price %s for %s", InvalidTransactionErr, price, asset)
	}
	if commission.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: negative commission %s for %s", InvalidTransactionErr, commission, asset)
	}
	if date.IsZero() {
		return Transaction{}, fmt.Errorf("%w: missing date for %s", InvalidTransactionErr, asset)
	}

	kind := KindTrade
	switch asset {
	case SubscriptionSymbol:
		kind = KindSubscription
	case WithdrawalSymbol:
		kind = KindWithdrawal
	}
	if kind != KindTrade {
		if quantity.IsNegative() {
			return Transaction{}, fmt.Errorf("%w: %s amount must be positive, got %s", InvalidTransactionErr, kind, quantity)
		}
		price = decimal.Zero
		commission = decimal.Zero
	}

	direction := 1
	if quantity.IsNegative() {
		direction = -1
	}

	return Transaction{
		Asset:      asset,
		Kind:       kind,
		Quantity:   quantity,
		Direction:  direction,
		Date:       Midnight(date),
		Price:      price,
		Commission: commission,
		OrderID:    orderID,
	}, nil
}

// IsCashFlow reports whether the transaction is a subscription or withdrawal
// rather than a trade.
func (t Transaction) IsCashFlow() bool {
	return t.Kind != KindTrade
}

// CostWithoutCommission is the signed trade value: positive for buys,
// negative for sells.
func (t Transaction) CostWithoutCommission() decimal.Decimal {
	return t.Quantity.Mul(t.Price)
}

// CostWithCommission is the signed cash impact of the trade. Commission is
// always paid, so it adds to the cost of buys and reduces sell proceeds.
func (t Transaction) CostWithCommission() decimal.Decimal {
	return t.CostWithoutCommission().Add(t.Commission)
}

// String renders the transaction with every field so a logged line is enough
// to reconstruct it.
func (t Transaction) String() string {
	return fmt.Sprintf("Transaction(asset=%s, kind=%s, quantity=%s, dt=%s, price=%s, order_id=%s, commission=%s)",
		t.Asset, t.Kind, t.Quantity, t.Date.Format(DateFormat), t.Price, t.OrderID, t.Commission)
}
