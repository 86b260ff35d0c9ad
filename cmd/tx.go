package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/halfpie/pietree"
	"github.com/halfpie/pietree/date"
)

// tradeCmd carries the flags shared by buy and sell.
type tradeCmd struct {
	date   string
	shares string
	price  string
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date of the transaction.")
	f.StringVar(&c.shares, "q", "", "Number of shares (decimal).")
	f.StringVar(&c.price, "p", "", "Price per share (decimal).")
}

// record parses the trade flags and appends the transaction to the position.
func (c *tradeCmd) record(kind pietree.Kind, f *flag.FlagSet) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one argument: the position id or ticker.")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	shares, err := decimal.NewFromString(c.shares)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid share count %q\n", c.shares)
		return subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid price %q\n", c.price)
		return subcommands.ExitUsageError
	}

	doc, err := LoadDocument()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	pos := doc.FindPosition(f.Arg(0))
	if pos == nil {
		fmt.Fprintf(os.Stderr, "Error: no position %q\n", f.Arg(0))
		return subcommands.ExitFailure
	}

	tx := pietree.NewTransaction(kind, on, pietree.Q(shares), pietree.A(price))
	if err := doc.AddTransaction(pos.ID(), tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveDocument(doc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s of %s %s @ %s on %s\n", kind, shares, pos.Symbol(), price, on)
	return subcommands.ExitSuccess
}

type buyCmd struct{ tradeCmd }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a buy on a position" }
func (*buyCmd) Usage() string {
	return `pie buy -q <shares> -p <price> [-d <date>] <position>

  Records a buy transaction on a position, addressed by id or ticker.
`
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.record(pietree.Buy, f)
}

type sellCmd struct{ tradeCmd }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sell on a position" }
func (*sellCmd) Usage() string {
	return `pie sell -q <shares> -p <price> [-d <date>] <position>

  Records a sell transaction on a position, addressed by id or ticker.
  Selling more than is held is recorded as-is and flagged as a data
  integrity warning in reports.
`
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.record(pietree.Sell, f)
}

type txCmd struct{}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list a position's transactions" }
func (*txCmd) Usage() string {
	return `pie tx <position>

  Lists the position's ledger in replay order (date, then creation order).
`
}

func (*txCmd) SetFlags(*flag.FlagSet) {}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one argument: the position id or ticker.")
		return subcommands.ExitUsageError
	}
	doc, err := LoadDocument()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	pos := doc.FindPosition(f.Arg(0))
	if pos == nil {
		fmt.Fprintf(os.Stderr, "Error: no position %q\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	for _, tx := range pos.Transactions() {
		fmt.Printf("%s  %-4s  %8s @ %-10s  %s\n", tx.Date, tx.Kind, tx.Shares, tx.Price, tx.ID)
	}
	return subcommands.ExitSuccess
}

type rmTxCmd struct{}

func (*rmTxCmd) Name() string     { return "tx-rm" }
func (*rmTxCmd) Synopsis() string { return "delete a transaction from a position" }
func (*rmTxCmd) Usage() string {
	return `pie tx-rm <position> <transaction-id>

  Deletes a single transaction from a position's ledger.
`
}

func (*rmTxCmd) SetFlags(*flag.FlagSet) {}

func (c *rmTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected two arguments: position and transaction id.")
		return subcommands.ExitUsageError
	}
	doc, err := LoadDocument()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	pos := doc.FindPosition(f.Arg(0))
	if pos == nil {
		fmt.Fprintf(os.Stderr, "Error: no position %q\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	if err := doc.DeleteTransaction(pos.ID(), f.Arg(1)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveDocument(doc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type cashCmd struct{}

func (*cashCmd) Name() string     { return "cash" }
func (*cashCmd) Synopsis() string { return "set the cash balance held outside the tree" }
func (*cashCmd) Usage() string {
	return `pie cash <amount>

  Sets the portfolio's cash balance. Cash is added to the total portfolio
  value but belongs to no node.
`
}

func (*cashCmd) SetFlags(*flag.FlagSet) {}

func (c *cashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one argument: the cash amount.")
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
	doc, err := LoadDocument()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	doc.SetCash(pietree.A(amount))
	if err := SaveDocument(doc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
