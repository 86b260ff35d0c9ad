package pietree

import (
	"testing"
	"time"

	"github.com/halfpie/pietree/date"
)

// setupLedgerTest creates a document with one position and records the
// given transactions through the document, so sequence numbers are stamped.
func setupLedgerTest(t *testing.T, txs ...Transaction) (*Document, *Position) {
	t.Helper()
	doc := NewDocument("Portfolio")
	p := NewPosition("aapl", 25)
	if err := doc.AddChild(doc.Root().ID(), p); err != nil {
		t.Fatalf("AddChild() failed: %v", err)
	}
	for _, tx := range txs {
		if err := doc.AddTransaction(p.ID(), tx); err != nil {
			t.Fatalf("AddTransaction(%s) failed: %v", tx.Kind, err)
		}
	}
	return doc, p
}

func d(day int) date.Date { return date.New(2025, time.March, day) }

func TestHoldingAt_WeightedAverageCost(t *testing.T) {
	testCases := []struct {
		name      string
		txs       []Transaction
		wantShare Quantity
		wantBasis Amount
		wantAvg   Amount
	}{
		{
			name:      "single buy",
			txs:       []Transaction{NewTransaction(Buy, d(1), Q(10), A(100))},
			wantShare: Q(10),
			wantBasis: A(1000),
			wantAvg:   A(100),
		},
		{
			name: "sell reduces basis at average cost",
			txs: []Transaction{
				NewTransaction(Buy, d(1), Q(10), A(100)),
				NewTransaction(Sell, d(2), Q(4), A(150)),
			},
			wantShare: Q(6),
			wantBasis: A(600),
			wantAvg:   A(100),
		},
		{
			name: "average is the weighted mean of buys",
			txs: []Transaction{
				NewTransaction(Buy, d(1), Q(10), A(100)),
				NewTransaction(Buy, d(2), Q(10), A(200)),
			},
			wantShare: Q(20),
			wantBasis: A(3000),
			wantAvg:   A(150),
		},
		{
			name: "selling everything leaves a zero basis",
			txs: []Transaction{
				NewTransaction(Buy, d(1), Q(10), A(100)),
				NewTransaction(Sell, d(2), Q(10), A(90)),
			},
			wantShare: Q(0),
			wantBasis: A(0),
			wantAvg:   A(0),
		},
		{
			name: "sell price does not change the basis of what is kept",
			txs: []Transaction{
				NewTransaction(Buy, d(1), Q(8), A(50)),
				NewTransaction(Sell, d(3), Q(2), A(500)),
			},
			wantShare: Q(6),
			wantBasis: A(300),
			wantAvg:   A(50),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, p := setupLedgerTest(t, tc.txs...)
			h := HoldingAt(p, d(31))
			if !h.Shares.Equal(tc.wantShare) {
				t.Errorf("Shares = %s, want %s", h.Shares, tc.wantShare)
			}
			if !h.CostBasis.Equal(tc.wantBasis) {
				t.Errorf("CostBasis = %s, want %s", h.CostBasis, tc.wantBasis)
			}
			if got := h.AverageCost(); !got.Equal(tc.wantAvg) {
				t.Errorf("AverageCost() = %s, want %s", got, tc.wantAvg)
			}
			if len(h.Warnings) != 0 {
				t.Errorf("Warnings = %v, want none", h.Warnings)
			}
		})
	}
}

func TestHoldingAt_Cutoff(t *testing.T) {
	_, p := setupLedgerTest(t,
		NewTransaction(Buy, d(1), Q(10), A(100)),
		NewTransaction(Buy, d(10), Q(10), A(200)),
	)

	h := HoldingAt(p, d(5))
	if !h.Shares.Equal(Q(10)) {
		t.Errorf("Shares at cutoff = %s, want 10", h.Shares)
	}
	if !h.CostBasis.Equal(A(1000)) {
		t.Errorf("CostBasis at cutoff = %s, want 1000", h.CostBasis)
	}

	// Before the first transaction the holding is empty.
	h = HoldingAt(p, d(1).Add(-1))
	if !h.Shares.IsZero() || !h.CostBasis.IsZero() {
		t.Errorf("holding before first transaction = %s shares, basis %s, want zero", h.Shares, h.CostBasis)
	}
}

func TestHoldingAt_Oversell(t *testing.T) {
	_, p := setupLedgerTest(t,
		NewTransaction(Buy, d(1), Q(5), A(100)),
		NewTransaction(Sell, d(2), Q(8), A(100)),
	)

	h := HoldingAt(p, d(31))
	if !h.Shares.Equal(Q(-3)) {
		t.Errorf("Shares = %s, want -3", h.Shares)
	}
	// The first sell still happens while shares are held, so the basis is
	// reduced at average cost for all 8 shares.
	if !h.CostBasis.Equal(A(-300)) {
		t.Errorf("CostBasis = %s, want -300", h.CostBasis)
	}
	if !h.AverageCost().IsZero() {
		t.Errorf("AverageCost() = %s, want 0 for a negative holding", h.AverageCost())
	}
	if len(h.Warnings) != 1 || h.Warnings[0].Code != NegativeShares {
		t.Fatalf("Warnings = %v, want a single negative-shares warning", h.Warnings)
	}
}

func TestHoldingAt_SellWithNothingHeld(t *testing.T) {
	_, p := setupLedgerTest(t,
		NewTransaction(Sell, d(1), Q(4), A(100)),
	)

	h := HoldingAt(p, d(31))
	if !h.Shares.Equal(Q(-4)) {
		t.Errorf("Shares = %s, want -4", h.Shares)
	}
	if !h.CostBasis.IsZero() {
		t.Errorf("CostBasis = %s, want untouched at 0", h.CostBasis)
	}
	var codes []WarningCode
	for _, w := range h.Warnings {
		codes = append(codes, w.Code)
	}
	if len(codes) != 2 || codes[0] != Oversold || codes[1] != NegativeShares {
		t.Fatalf("warning codes = %v, want [oversold negative-shares]", codes)
	}
}

func TestHoldingAt_SameDayOrder(t *testing.T) {
	// Buy and sell on the same date: the creation sequence decides the
	// replay order, so the sell happens after the buy and no oversell is
	// flagged.
	_, p := setupLedgerTest(t,
		NewTransaction(Buy, d(5), Q(10), A(100)),
		NewTransaction(Sell, d(5), Q(10), A(110)),
	)

	h := HoldingAt(p, d(5))
	if !h.Shares.IsZero() {
		t.Errorf("Shares = %s, want 0", h.Shares)
	}
	if len(h.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", h.Warnings)
	}
}

func TestNetShares(t *testing.T) {
	_, p := setupLedgerTest(t,
		NewTransaction(Buy, d(1), Q(10), A(100)),
		NewTransaction(Sell, d(2), Q(3), A(100)),
		NewTransaction(Sell, d(3), Q(9), A(100)),
	)
	if got := NetShares(p); !got.Equal(Q(-2)) {
		t.Errorf("NetShares() = %s, want -2", got)
	}
}

func TestTransactionValidate(t *testing.T) {
	testCases := []struct {
		name    string
		tx      Transaction
		wantErr bool
	}{
		{"valid buy", NewTransaction(Buy, d(1), Q(1), A(10)), false},
		{"free shares are valid", NewTransaction(Buy, d(1), Q(1), A(0)), false},
		{"zero shares", NewTransaction(Buy, d(1), Q(0), A(10)), true},
		{"negative shares", NewTransaction(Sell, d(1), Q(-1), A(10)), true},
		{"negative price", NewTransaction(Buy, d(1), Q(1), A(-10)), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tx.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
