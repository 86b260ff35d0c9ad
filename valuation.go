package pietree

import (
	"github.com/halfpie/pietree/date"
)

// Value computes a node's market value. For a position it is net shares
// times the last synced price, with no clamping: a position whose sells
// exceed its buys values negative, surfacing the data-entry error instead
// of hiding it. For a pie it is the recursive sum over its children; a
// childless pie values zero.
func Value(n Node) Amount {
	switch v := n.(type) {
	case *Position:
		return v.CurrentPrice().Mul(NetShares(v))
	case *Allocation:
		var total Amount
		for _, child := range v.Children() {
			total = total.Add(Value(child))
		}
		return total
	default:
		return Amount{}
	}
}

// valueAsOf values a node with share counts replayed up to the cutoff
// date, at the last synced prices.
func valueAsOf(n Node, on date.Date) Amount {
	switch v := n.(type) {
	case *Position:
		return v.CurrentPrice().Mul(HoldingAt(v, on).Shares)
	case *Allocation:
		var total Amount
		for _, child := range v.Children() {
			total = total.Add(valueAsOf(child, on))
		}
		return total
	default:
		return Amount{}
	}
}

// TreeValue is the value of the whole tree, cash excluded.
func (d *Document) TreeValue() Amount { return Value(d.root) }

// TotalValue is the portfolio total: the tree value plus the cash balance.
func (d *Document) TotalValue() Amount { return d.TreeValue().Add(d.cash) }

// ActualPercent is a node's share of its reference total: the portfolio
// total when its parent is the root, otherwise the parent's value. A zero
// denominator yields 0, never NaN.
func (d *Document) ActualPercent(n Node, parent *Allocation) Percent {
	var base Amount
	if parent == nil || parent.ID() == d.root.ID() {
		base = d.TotalValue()
	} else {
		base = Value(parent)
	}
	if base.IsZero() {
		return 0
	}
	return Percent(Value(n).Ratio(base) * 100)
}

// Drift is the signed gap between a node's actual and target percentages.
func (d *Document) Drift(n Node, parent *Allocation) Percent {
	return d.ActualPercent(n, parent) - n.Target()
}

// NodeMetric is one row of the per-node breakdown.
type NodeMetric struct {
	ID     string
	Name   string
	Leaf   bool // true for a position, false for a pie
	Depth  int  // 0 for direct children of the root
	Value  Amount
	Actual Percent
	Target Percent
	Drift  Percent
}

// Summary is the current-state valuation of the whole document, produced
// for the presentation layer.
type Summary struct {
	Date          date.Date
	TotalValue    Amount
	TotalInvested Amount
	ProfitLoss    Amount
	ROI           Percent
	Cash          Amount
	Nodes         []NodeMetric
	Warnings      []Warning
}

// NewSummary values the document as of the given reference date: share
// counts and invested capital replay the ledgers up to that date, prices
// are the last synced quotes. The date is an explicit parameter so the
// computation is deterministic and replayable.
func (d *Document) NewSummary(on date.Date) *Summary {
	s := &Summary{
		Date: on,
		Cash: d.cash,
	}

	for p := range d.Positions() {
		h := HoldingAt(p, on)
		s.TotalInvested = s.TotalInvested.Add(h.CostBasis)
		s.Warnings = append(s.Warnings, h.Warnings...)
	}
	tree := valueAsOf(d.root, on)
	s.TotalValue = tree.Add(d.cash)
	s.ProfitLoss = tree.Sub(s.TotalInvested)
	if s.TotalInvested.IsPositive() {
		s.ROI = Percent(s.ProfitLoss.Ratio(s.TotalInvested) * 100)
	}

	// Shares and percentages in the breakdown honor the same cutoff: a
	// node's reference total is the portfolio total for root children,
	// else its parent's as-of value.
	var visit func(pie *Allocation, base Amount, depth int)
	visit = func(pie *Allocation, base Amount, depth int) {
		for _, child := range pie.Children() {
			_, leaf := child.(*Position)
			value := valueAsOf(child, on)
			var actual Percent
			if !base.IsZero() {
				actual = Percent(value.Ratio(base) * 100)
			}
			s.Nodes = append(s.Nodes, NodeMetric{
				ID:     child.ID(),
				Name:   child.Name(),
				Leaf:   leaf,
				Depth:  depth,
				Value:  value,
				Actual: actual,
				Target: child.Target(),
				Drift:  actual - child.Target(),
			})
			if sub, ok := child.(*Allocation); ok {
				visit(sub, value, depth+1)
			}
		}
	}
	visit(d.root, s.TotalValue, 0)
	return s
}
