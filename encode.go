package pietree

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The document is persisted as a single JSON snapshot. The node sum type is
// encoded with an explicit "kind" tag ("pie" or "position") so decoding can
// dispatch on it without duck-typed field checks.

const (
	kindPie      = "pie"
	kindPosition = "position"
)

// nodeJSON is the wire shape shared by both node variants; unused fields
// are omitted per kind.
type nodeJSON struct {
	Kind         string          `json:"kind"`
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Target       Percent         `json:"target"`
	Children     []nodeJSON       `json:"children,omitempty"`
	Transactions []Transaction    `json:"transactions,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
}

type documentJSON struct {
	Tree nodeJSON        `json:"tree"`
	Cash decimal.Decimal `json:"cash"`
	Seq  int64           `json:"seq"`
}

func encodeNode(n Node) nodeJSON {
	switch v := n.(type) {
	case *Allocation:
		out := nodeJSON{Kind: kindPie, ID: v.id, Name: v.name, Target: v.target}
		for _, child := range v.children {
			out.Children = append(out.Children, encodeNode(child))
		}
		return out
	case *Position:
		price := v.price.value
		return nodeJSON{
			Kind:         kindPosition,
			ID:           v.id,
			Name:         v.name,
			Target:       v.target,
			Transactions: v.txs,
			Price:        &price,
		}
	default:
		panic(fmt.Sprintf("unsupported node type %T", n))
	}
}

func decodeNode(in nodeJSON) (Node, error) {
	switch in.Kind {
	case kindPie:
		pie := &Allocation{id: in.ID, name: in.Name, target: in.Target}
		for _, child := range in.Children {
			n, err := decodeNode(child)
			if err != nil {
				return nil, err
			}
			pie.children = append(pie.children, n)
		}
		return pie, nil
	case kindPosition:
		if len(in.Children) > 0 {
			return nil, fmt.Errorf("position %q cannot have children", in.Name)
		}
		var price Amount
		if in.Price != nil {
			price = Amount{value: *in.Price}
		}
		return &Position{
			id:     in.ID,
			name:   normalizeSymbol(in.Name),
			target: in.Target,
			txs:    in.Transactions,
			price:  price,
		}, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", in.Kind)
	}
}

// EncodeDocument writes the document as an indented JSON snapshot.
func EncodeDocument(w io.Writer, d *Document) error {
	out := documentJSON{
		Tree: encodeNode(d.root),
		Cash: d.cash.value,
		Seq:  d.seq,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// DecodeDocument reads a document snapshot. The root must be a pie.
func DecodeDocument(r io.Reader) (*Document, error) {
	var in documentJSON
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("could not decode document: %w", err)
	}
	root, err := decodeNode(in.Tree)
	if err != nil {
		return nil, err
	}
	pie, ok := root.(*Allocation)
	if !ok {
		return nil, fmt.Errorf("document root must be a pie, got a %s", in.Tree.Kind)
	}
	d := &Document{root: pie, cash: Amount{value: in.Cash}, seq: in.Seq}
	// A hand-edited file may carry a stale counter, recover the high mark.
	for p := range d.Positions() {
		for _, tx := range p.txs {
			if tx.Seq > d.seq {
				d.seq = tx.Seq
			}
		}
	}
	return d, nil
}
