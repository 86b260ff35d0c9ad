package pietree

import (
	"fmt"
	"iter"
	"slices"

	"github.com/halfpie/pietree/date"
)

// Document is the whole persisted portfolio: the allocation tree, the cash
// balance held outside the tree, and the sequence counter for transaction
// tie-breaking. It is a single-writer, last-write-wins snapshot; the
// engine never manages storage or write concurrency itself.
type Document struct {
	root *Allocation
	cash Amount
	seq  int64
}

// NewDocument creates a document with an empty root pie.
func NewDocument(rootName string) *Document {
	return &Document{root: NewAllocation(rootName, 100)}
}

// Root returns the tree root. The root is always an Allocation.
func (d *Document) Root() *Allocation { return d.root }

// Cash returns the cash balance held outside the tree.
func (d *Document) Cash() Amount { return d.cash }

// SetCash replaces the cash balance.
func (d *Document) SetCash(a Amount) { d.cash = a }

// Find looks up a node by id, depth-first pre-order; first match wins.
// It returns nil when no node carries the id.
func (d *Document) Find(id string) Node { return find(d.root, id) }

// FindPosition looks a position up by id or by ticker, in that order.
func (d *Document) FindPosition(key string) *Position {
	if p, ok := d.Find(key).(*Position); ok {
		return p
	}
	for p := range d.Positions() {
		if p.Symbol() == normalizeSymbol(key) {
			return p
		}
	}
	return nil
}

// Parent returns the pie owning the node, or nil for the root and for
// unknown ids.
func (d *Document) Parent(id string) *Allocation { return findParent(d.root, id) }

// Path returns the ids from the root down to the node, inclusive. This is
// a transient navigation aid, not an ownership edge. It returns nil for an
// unknown id.
func (d *Document) Path(id string) []string {
	var path []string
	var visit func(n Node) bool
	visit = func(n Node) bool {
		path = append(path, n.ID())
		if n.ID() == id {
			return true
		}
		if pie, ok := n.(*Allocation); ok {
			for _, child := range pie.children {
				if visit(child) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		return false
	}
	if !visit(d.root) {
		return nil
	}
	return path
}

// AddChild inserts a node at the end of a pie's child list. It fails with
// NotFound when parentID resolves to nothing and with InvalidTarget when it
// resolves to a Position.
func (d *Document) AddChild(parentID string, n Node) error {
	parent := d.Find(parentID)
	if parent == nil {
		return &StructuralError{Code: NotFound, ID: parentID}
	}
	pie, ok := parent.(*Allocation)
	if !ok {
		return &StructuralError{Code: InvalidTarget, ID: parentID}
	}
	pie.append(n)
	return nil
}

// Delete removes the node and its entire subtree. Deleting the root or an
// unknown id is a no-op, mirroring a best-effort cleanup policy.
func (d *Document) Delete(id string) {
	if id == d.root.ID() {
		return
	}
	if parent := findParent(d.root, id); parent != nil {
		parent.removeChild(id)
	}
}

// UpdateTarget updates a node's advisory target percentage in place.
// Sibling targets are never validated to sum to 100.
func (d *Document) UpdateTarget(id string, pct Percent) error {
	n := d.Find(id)
	if n == nil {
		return &StructuralError{Code: NotFound, ID: id}
	}
	n.SetTarget(pct)
	return nil
}

// Positions iterates over every Position leaf, depth-first pre-order. This
// is the flattened input to the historical reconstruction engine.
func (d *Document) Positions() iter.Seq[*Position] {
	return func(yield func(*Position) bool) {
		for n := range walk(d.root) {
			if p, ok := n.(*Position); ok {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// Symbols returns the sorted, de-duplicated tickers of all positions.
func (d *Document) Symbols() []string {
	seen := make(map[string]struct{})
	var symbols []string
	for p := range d.Positions() {
		if _, ok := seen[p.Symbol()]; ok {
			continue
		}
		seen[p.Symbol()] = struct{}{}
		symbols = append(symbols, p.Symbol())
	}
	slices.Sort(symbols)
	return symbols
}

// AddTransaction validates the transaction, stamps it with the next
// sequence number and appends it to the position's ledger.
func (d *Document) AddTransaction(positionID string, tx Transaction) error {
	p, err := d.position(positionID)
	if err != nil {
		return err
	}
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction for %s: %w", p.Symbol(), err)
	}
	d.seq++
	tx.Seq = d.seq
	p.txs = append(p.txs, tx)
	return nil
}

// UpdateTransaction replaces the dated fields of an existing transaction,
// keeping its id and sequence number.
func (d *Document) UpdateTransaction(positionID, txID string, kind Kind, on date.Date, shares Quantity, price Amount) error {
	p, err := d.position(positionID)
	if err != nil {
		return err
	}
	i := p.findTransaction(txID)
	if i < 0 {
		return &StructuralError{Code: NotFound, ID: txID}
	}
	updated := p.txs[i]
	updated.Kind, updated.Date, updated.Shares, updated.Price = kind, on, shares, price
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("invalid transaction for %s: %w", p.Symbol(), err)
	}
	p.txs[i] = updated
	return nil
}

// DeleteTransaction removes a transaction from a position's ledger.
// An unknown transaction id is a no-op.
func (d *Document) DeleteTransaction(positionID, txID string) error {
	p, err := d.position(positionID)
	if err != nil {
		return err
	}
	if i := p.findTransaction(txID); i >= 0 {
		p.txs = append(p.txs[:i], p.txs[i+1:]...)
	}
	return nil
}

func (d *Document) position(id string) (*Position, error) {
	n := d.Find(id)
	if n == nil {
		return nil, &StructuralError{Code: NotFound, ID: id}
	}
	p, ok := n.(*Position)
	if !ok {
		return nil, &StructuralError{Code: InvalidTarget, ID: id}
	}
	return p, nil
}
