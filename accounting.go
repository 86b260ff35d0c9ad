package pietree

import (
	"github.com/halfpie/pietree/date"
)

// Holding is the result of replaying a position's ledger up to a cutoff
// date: the net share count, the weighted-average cost basis of what is
// still held, and any data-integrity warnings encountered on the way.
type Holding struct {
	Symbol    string
	Shares    Quantity
	CostBasis Amount
	Warnings  []Warning
}

// AverageCost is the cost basis per share still held. It is zero when no
// shares are held (or the count is negative, where an average would be
// meaningless).
func (h Holding) AverageCost() Amount {
	if !h.Shares.IsPositive() {
		return Amount{}
	}
	return h.CostBasis.Div(h.Shares)
}

// HoldingAt replays a position's ledger with the weighted-average cost
// method, considering only transactions dated on or before the cutoff.
//
// A buy adds its full cost and its shares. A sell removes shares at the
// running average cost. Selling while nothing is held still decrements the
// share count (which may go negative) but leaves the cost basis untouched;
// that degenerate case is flagged as an Oversold warning rather than being
// silently corrected, for compatibility with the historical behavior of
// the ledger format.
//
// The function is pure: it never mutates the position and holds no state
// between calls, so it is safe to invoke once per (position, date) pair
// during a reconstruction pass.
func HoldingAt(p *Position, cutoff date.Date) Holding {
	h := Holding{Symbol: p.Symbol()}
	for _, tx := range p.Transactions() {
		if tx.Date.After(cutoff) {
			// The ledger is sorted by date, so it is safe to break.
			break
		}
		switch tx.Kind {
		case Buy:
			h.CostBasis = h.CostBasis.Add(tx.Price.Mul(tx.Shares))
			h.Shares = h.Shares.Add(tx.Shares)
		case Sell:
			if h.Shares.IsPositive() {
				avgCost := h.CostBasis.Div(h.Shares)
				h.CostBasis = h.CostBasis.Sub(avgCost.Mul(tx.Shares))
			} else {
				h.Warnings = append(h.Warnings, Warning{Code: Oversold, Symbol: p.Symbol(), Date: tx.Date})
			}
			h.Shares = h.Shares.Sub(tx.Shares)
		}
	}
	if h.Shares.IsNegative() {
		h.Warnings = append(h.Warnings, Warning{Code: NegativeShares, Symbol: p.Symbol()})
	}
	return h
}

// NetShares is the signed sum of the position's transaction share counts,
// with no cutoff and no clamping.
func NetShares(p *Position) Quantity {
	var shares Quantity
	for _, tx := range p.Transactions() {
		shares = shares.Add(tx.SignedShares())
	}
	return shares
}
