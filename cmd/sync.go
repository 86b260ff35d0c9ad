package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/halfpie/pietree/quote"
)

type syncCmd struct{}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "refresh current prices from the market data provider" }
func (*syncCmd) Usage() string {
	return `pie sync

  Fetches the latest price for every distinct ticker in the tree, one
  symbol at a time, and saves the document. Symbols that fail are
  reported and the rest are kept.
`
}

func (*syncCmd) SetFlags(*flag.FlagSet) {}

func (c *syncCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := LoadDocument()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	symbols := doc.Symbols()
	if len(symbols) == 0 {
		fmt.Println("No positions to sync.")
		return subcommands.ExitSuccess
	}
	gw := quote.NewGateway(quote.NewYahoo(), FetchInterval(), Logger())
	failed, err := refreshPrices(ctx, gw, doc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveDocument(doc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Synced %d of %d symbols.\n", len(symbols)-len(failed), len(symbols))
	for _, e := range failed {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
	}
	if len(failed) == len(symbols) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
