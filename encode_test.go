package pietree

import (
	"bytes"
	"slices"
	"strings"
	"testing"
)

func TestDocumentRoundTrip(t *testing.T) {
	doc, _, _, aapl := setupValuedTree(t)
	doc.SetCash(A(250.50))
	if err := doc.AddTransaction(aapl.ID(), NewTransaction(Sell, d(9), Q(2), A(21.5))); err != nil {
		t.Fatalf("AddTransaction() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeDocument(&buf, doc); err != nil {
		t.Fatalf("EncodeDocument() failed: %v", err)
	}
	for _, want := range []string{`"kind": "pie"`, `"kind": "position"`, `"kind": "sell"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("snapshot does not contain %s:\n%s", want, buf.String())
		}
	}

	got, err := DecodeDocument(&buf)
	if err != nil {
		t.Fatalf("DecodeDocument() failed: %v", err)
	}

	if !got.Cash().Equal(doc.Cash()) {
		t.Errorf("Cash = %s, want %s", got.Cash(), doc.Cash())
	}
	if got.Root().Name() != "Portfolio" {
		t.Errorf("root name = %q, want Portfolio", got.Root().Name())
	}
	if !slices.Equal(got.Symbols(), doc.Symbols()) {
		t.Errorf("Symbols = %v, want %v", got.Symbols(), doc.Symbols())
	}

	// Same ids, targets, ledgers and prices after the round trip.
	p := got.FindPosition(aapl.ID())
	if p == nil {
		t.Fatalf("position %s lost in round trip", aapl.ID())
	}
	if !p.Target().Equal(aapl.Target()) {
		t.Errorf("target = %s, want %s", p.Target(), aapl.Target())
	}
	if !p.CurrentPrice().Equal(aapl.CurrentPrice()) {
		t.Errorf("price = %s, want %s", p.CurrentPrice(), aapl.CurrentPrice())
	}
	if len(p.Transactions()) != len(aapl.Transactions()) {
		t.Fatalf("len(Transactions) = %d, want %d", len(p.Transactions()), len(aapl.Transactions()))
	}
	for i, tx := range p.Transactions() {
		want := aapl.Transactions()[i]
		if tx.ID != want.ID || tx.Seq != want.Seq || tx.Kind != want.Kind ||
			tx.Date != want.Date || !tx.Shares.Equal(want.Shares) || !tx.Price.Equal(want.Price) {
			t.Errorf("Transactions[%d] = %+v, want %+v", i, tx, want)
		}
	}

	// The decoded document keeps numbering where the encoded one left off.
	if err := got.AddTransaction(p.ID(), NewTransaction(Buy, d(10), Q(1), A(1))); err != nil {
		t.Fatalf("AddTransaction() after decode failed: %v", err)
	}
	txs := got.FindPosition(aapl.ID()).Transactions()
	last := txs[len(txs)-1]
	if last.Seq <= highestSeq(aapl) {
		t.Errorf("new Seq = %d, want greater than the snapshot's high mark %d", last.Seq, highestSeq(aapl))
	}
}

func highestSeq(p *Position) int64 {
	var high int64
	for _, tx := range p.Transactions() {
		if tx.Seq > high {
			high = tx.Seq
		}
	}
	return high
}

func TestEncodeOmitsPriceOnPies(t *testing.T) {
	doc := NewDocument("Portfolio")
	if err := doc.AddChild(doc.Root().ID(), NewAllocation("Stocks", 60)); err != nil {
		t.Fatalf("AddChild() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeDocument(&buf, doc); err != nil {
		t.Fatalf("EncodeDocument() failed: %v", err)
	}
	if strings.Contains(buf.String(), `"price"`) {
		t.Errorf("pie nodes must not carry a price field:\n%s", buf.String())
	}

	// A position without the field decodes to a zero price.
	snapshot := `{"tree":{"kind":"pie","id":"r","name":"P","target":100,"children":[{"kind":"position","id":"a","name":"AAPL","target":10}]},"cash":0,"seq":0}`
	decoded, err := DecodeDocument(strings.NewReader(snapshot))
	if err != nil {
		t.Fatalf("DecodeDocument() failed: %v", err)
	}
	if p := decoded.FindPosition("a"); !p.CurrentPrice().IsZero() {
		t.Errorf("CurrentPrice() = %s, want 0 when the field is absent", p.CurrentPrice())
	}
}

func TestDecodeDocumentRejectsBadShapes(t *testing.T) {
	testCases := []struct {
		name string
		json string
	}{
		{"position root", `{"tree":{"kind":"position","id":"a","name":"AAPL","target":10},"cash":0,"seq":0}`},
		{"unknown kind", `{"tree":{"kind":"slice","id":"a","name":"X","target":10},"cash":0,"seq":0}`},
		{"position with children", `{"tree":{"kind":"pie","id":"r","name":"P","target":100,"children":[{"kind":"position","id":"a","name":"AAPL","target":10,"children":[{"kind":"pie","id":"b","name":"Q","target":1}]}]},"cash":0,"seq":0}`},
		{"not json", `{`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeDocument(strings.NewReader(tc.json)); err == nil {
				t.Errorf("DecodeDocument() succeeded, want error")
			}
		})
	}
}

func TestDecodeDocumentRecoversSeq(t *testing.T) {
	// A hand-edited file with a stale counter: the high mark in the
	// ledgers wins.
	snapshot := `{
	  "tree": {
	    "kind": "pie", "id": "r", "name": "P", "target": 100,
	    "children": [{
	      "kind": "position", "id": "a", "name": "AAPL", "target": 10,
	      "transactions": [
	        {"id": "t1", "date": "2025-03-01", "kind": "buy", "shares": 1, "price": 10, "seq": 7}
	      ]
	    }]
	  },
	  "cash": 0,
	  "seq": 2
	}`
	doc, err := DecodeDocument(strings.NewReader(snapshot))
	if err != nil {
		t.Fatalf("DecodeDocument() failed: %v", err)
	}
	if err := doc.AddTransaction("a", NewTransaction(Buy, d(2), Q(1), A(10))); err != nil {
		t.Fatalf("AddTransaction() failed: %v", err)
	}
	txs := doc.FindPosition("a").Transactions()
	if got := txs[len(txs)-1].Seq; got != 8 {
		t.Errorf("new Seq = %d, want 8 (after the ledger's high mark)", got)
	}
}
