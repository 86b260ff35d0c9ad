package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/google/subcommands"

	"github.com/halfpie/pietree"
	"github.com/halfpie/pietree/date"
	"github.com/halfpie/pietree/quote"
	"github.com/halfpie/pietree/renderer"
)

type historyCmd struct {
	from string
	to   string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "reconstruct the portfolio's historical performance" }
func (*historyCmd) Usage() string {
	return `pie history [-s <date>] [-d <date>]

  Fetches daily closes for every ticker and the configured benchmarks,
  replays the ledgers day by day, and prints the value, invested capital
  and return series. Defaults to the last year, clipped at today.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	r := date.LastYear(date.Today())
	f.StringVar(&c.from, "s", r.From.String(), "Start of the period.")
	f.StringVar(&c.to, "d", r.To.String(), "End of the period.")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, err := date.Parse(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := date.Parse(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}
	period := date.NewRange(from, to).Clip(date.Today())

	doc, err := LoadDocument()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	positions := slices.Collect(doc.Positions())
	if len(positions) == 0 {
		fmt.Println("No positions to chart.")
		return subcommands.ExitSuccess
	}

	benchmarks := AppConfig().Benchmarks
	symbols := doc.Symbols()
	for _, b := range benchmarks {
		if !slices.Contains(symbols, b) {
			symbols = append(symbols, b)
		}
	}

	gw := quote.NewGateway(quote.NewYahoo(), FetchInterval(), Logger())
	market, err := gw.History(ctx, symbols, period)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	rec, err := pietree.Reconstruct(positions, market, benchmarks)
	if errors.Is(err, pietree.ErrNoData) {
		fmt.Fprintln(os.Stderr, "Error: no price data could be fetched for any position.")
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HistoryMarkdown(rec))
	return subcommands.ExitSuccess
}
