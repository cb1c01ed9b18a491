package engine

import (
	"errors"
	"fmt"
	"sort"

	"portfoliotracker/types"
)

var NotATradeErr = errors.New("cash flows are not routed through positions")

// PositionHandler is the exclusive owner of the instrument → Position map.
// A position exists in the map if and only if at least one trade for that
// instrument has been replayed.
type PositionHandler struct {
	positions map[string]*Position
}

func newPositionHandler() *PositionHandler {
	return &PositionHandler{positions: make(map[string]*Position)}
}

// Transact routes a trade to the instrument's position, creating it on the
// first trade.
func (h *PositionHandler) Transact(txn types.Transaction) error {
	if txn.IsCashFlow() {
		return fmt.Errorf("%w: %s", NotATradeErr, txn)
	}
	pos := h.positions[txn.Asset]
	if pos == nil {
		pos = newPosition(txn.Asset)
		h.positions[txn.Asset] = pos
	}
	pos.Apply(txn)
	return nil
}

// Positions exposes the full mapping for iteration.
func (h *PositionHandler) Positions() map[string]*Position {
	return h.positions
}

// Position looks up a single instrument.
func (h *PositionHandler) Position(asset string) (*Position, bool) {
	pos, ok := h.positions[asset]
	return pos, ok
}

// assets returns the instrument identifiers in a deterministic order.
func (h *PositionHandler) assets() []string {
	out := make([]string, 0, len(h.positions))
	for asset := range h.positions {
		out = append(out, asset)
	}
	sort.Strings(out)
	return out
}
