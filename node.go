package pietree

import (
	"iter"
	"strings"

	"github.com/google/uuid"
)

// Node is the tagged variant at the heart of the allocation tree. Exactly
// two types implement it: *Allocation (a pie grouping children under a
// target percentage) and *Position (a tradable leaf with its own ledger).
// Code consuming nodes switches exhaustively on these two types.
type Node interface {
	ID() string
	Name() string
	// Target is the advisory allocation percentage. Siblings need not sum
	// to 100; nothing enforces or validates it.
	Target() Percent
	SetTarget(Percent)
}

// Allocation is a pie: its value is entirely derived from its children, it
// holds no price or transactions of its own. Children are kept in insertion
// order, which is the display and iteration order.
type Allocation struct {
	id       string
	name     string
	target   Percent
	children []Node
}

// NewAllocation creates an empty pie with a fresh id.
func NewAllocation(name string, target Percent) *Allocation {
	return &Allocation{id: uuid.NewString(), name: name, target: target}
}

func (a *Allocation) ID() string            { return a.id }
func (a *Allocation) Name() string          { return a.name }
func (a *Allocation) Target() Percent       { return a.target }
func (a *Allocation) SetTarget(pct Percent) { a.target = pct }

// Children returns the pie's direct children in insertion order.
// The returned slice is the pie's own: callers must not reorder it.
func (a *Allocation) Children() []Node { return a.children }

// append adds a node at the end of the child list.
func (a *Allocation) append(n Node) { a.children = append(a.children, n) }

// removeChild drops the direct child with the given id. It reports whether
// a child was removed.
func (a *Allocation) removeChild(id string) bool {
	for i, child := range a.children {
		if child.ID() == id {
			a.children = append(a.children[:i], a.children[i+1:]...)
			return true
		}
	}
	return false
}

// Position is a leaf holding one tradable symbol. Its name is the ticker,
// case-normalized at creation.
type Position struct {
	id     string
	name   string
	target Percent
	txs    []Transaction
	price  Amount // last synced quote, zero if never synced
}

// NewPosition creates a position for a ticker with a fresh id. The ticker
// is upper-cased.
func NewPosition(ticker string, target Percent) *Position {
	return &Position{id: uuid.NewString(), name: normalizeSymbol(ticker), target: target}
}

// normalizeSymbol case-normalizes a ticker.
func normalizeSymbol(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

func (p *Position) ID() string            { return p.id }
func (p *Position) Name() string          { return p.name }
func (p *Position) Target() Percent       { return p.target }
func (p *Position) SetTarget(pct Percent) { p.target = pct }

// Symbol is the ticker this position trades. It is an alias of Name.
func (p *Position) Symbol() string { return p.name }

// CurrentPrice returns the last synced quote, zero if never synced.
func (p *Position) CurrentPrice() Amount { return p.price }

// SetCurrentPrice records a synced quote on the position.
func (p *Position) SetCurrentPrice(price Amount) { p.price = price }

// Transactions returns the position's ledger sorted by (date, seq).
// The ledger order on disk is not guaranteed, so it is normalized here.
func (p *Position) Transactions() []Transaction {
	txs := make([]Transaction, len(p.txs))
	copy(txs, p.txs)
	sortTransactions(txs)
	return txs
}

// findTransaction returns the index of a transaction by id, or -1.
func (p *Position) findTransaction(id string) int {
	for i, tx := range p.txs {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

// find looks up a node by id under root, depth-first pre-order.
// The first match wins; id uniqueness is expected but not enforced.
func find(root Node, id string) Node {
	if root.ID() == id {
		return root
	}
	if pie, ok := root.(*Allocation); ok {
		for _, child := range pie.children {
			if n := find(child, id); n != nil {
				return n
			}
		}
	}
	return nil
}

// findParent returns the Allocation owning the node with the given id, or
// nil when the id is the root's or unknown.
func findParent(root *Allocation, id string) *Allocation {
	for _, child := range root.children {
		if child.ID() == id {
			return root
		}
		if pie, ok := child.(*Allocation); ok {
			if p := findParent(pie, id); p != nil {
				return p
			}
		}
	}
	return nil
}

// walk yields every node under root (root included), depth-first pre-order.
func walk(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			if pie, ok := n.(*Allocation); ok {
				for _, child := range pie.children {
					if !visit(child) {
						return false
					}
				}
			}
			return true
		}
		visit(root)
	}
}
