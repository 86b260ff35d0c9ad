package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/halfpie/pietree"
	"github.com/halfpie/pietree/date"
	"github.com/halfpie/pietree/quote"
	"github.com/halfpie/pietree/renderer"
)

type summaryCmd struct {
	date string
	sync bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the portfolio valuation report" }
func (*summaryCmd) Usage() string {
	return `pie summary [-d <date>] [-sync]

  Prints the portfolio summary: totals, profit and loss, and the per-node
  breakdown with actual vs target weights. With -sync, current prices are
  refreshed from the provider first.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Valuation date. Transactions after it are ignored.")
	f.BoolVar(&c.sync, "sync", false, "Refresh current prices before valuing.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	doc, err := LoadDocument()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.sync {
		gw := quote.NewGateway(quote.NewYahoo(), FetchInterval(), Logger())
		failed, err := refreshPrices(ctx, gw, doc)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		for _, e := range failed {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
		}
		if err := SaveDocument(doc); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}
	printMarkdown(renderer.SummaryMarkdown(doc.NewSummary(on)))
	return subcommands.ExitSuccess
}

// refreshPrices fetches the latest quote for every distinct symbol and stamps
// it on all positions holding that symbol. Per-symbol failures are returned
// in the list; the error is the context's only (an aborted fetch).
func refreshPrices(ctx context.Context, gw *quote.Gateway, doc *pietree.Document) ([]pietree.SymbolError, error) {
	prices, failed, err := gw.CurrentPrices(ctx, doc.Symbols())
	if err != nil {
		return nil, err
	}
	for p := range doc.Positions() {
		if price, ok := prices[p.Symbol()]; ok {
			p.SetCurrentPrice(pietree.A(price))
		}
	}
	return failed, nil
}
