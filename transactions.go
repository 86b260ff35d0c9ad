package pietree

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/halfpie/pietree/date"
)

// Kind discriminates the two transaction variants of a position's ledger.
type Kind int

const (
	Buy Kind = iota
	Sell
)

func (k Kind) String() string {
	switch k {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown transaction kind: %q", s)
	}
}

// MarshalJSON encodes the kind as its string form.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes the kind from its string form.
func (k *Kind) UnmarshalJSON(bytes []byte) error {
	var s string
	if err := json.Unmarshal(bytes, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Transaction records a single trade in a position's ledger. Transactions
// belong exclusively to one Position and are immutable once created except
// through the document's explicit update and delete operations.
//
// Seq is a monotonic sequence number assigned by the owning document at
// creation time. It is the deterministic tie-break for transactions sharing
// the same date: replay order is (Date, Seq) ascending.
type Transaction struct {
	ID     string    `json:"id"`
	Date   date.Date `json:"date"`
	Kind   Kind      `json:"kind"`
	Shares Quantity  `json:"shares"`
	Price  Amount    `json:"price"`
	Seq    int64     `json:"seq"`
}

// NewTransaction creates a transaction with a fresh id. The sequence number
// is assigned when the transaction is appended to a document.
func NewTransaction(kind Kind, on date.Date, shares Quantity, price Amount) Transaction {
	return Transaction{
		ID:     uuid.NewString(),
		Date:   on,
		Kind:   kind,
		Shares: shares,
		Price:  price,
	}
}

// Validate checks the transaction fields against the data model: shares
// strictly positive, price non-negative.
func (t Transaction) Validate() error {
	if !t.Shares.IsPositive() {
		return fmt.Errorf("%s of %s shares: shares must be positive", t.Kind, t.Shares)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("%s at %s: price per share cannot be negative", t.Kind, t.Price)
	}
	return nil
}

// SignedShares returns the share count signed by kind: positive for a buy,
// negative for a sell.
func (t Transaction) SignedShares() Quantity {
	if t.Kind == Sell {
		return t.Shares.Neg()
	}
	return t.Shares
}

// sortTransactions orders a ledger chronologically, same-day entries by
// their creation sequence. The sort is stable so untagged entries (seq 0,
// from hand-edited documents) keep their relative order.
func sortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if c := txs[i].Date.Compare(txs[j].Date); c != 0 {
			return c < 0
		}
		return txs[i].Seq < txs[j].Seq
	})
}
