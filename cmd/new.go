package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/halfpie/pietree"
)

type newPieCmd struct {
	parent string
	target float64
}

func (*newPieCmd) Name() string     { return "new-pie" }
func (*newPieCmd) Synopsis() string { return "add a new pie under an existing pie" }
func (*newPieCmd) Usage() string {
	return `pie new-pie [-parent <id>] [-target <pct>] <name>

  Adds a new, empty pie at the end of the parent's child list. Without
  -parent the pie is added under the root.
`
}

func (c *newPieCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.parent, "parent", "", "Id of the parent pie. Defaults to the root.")
	f.Float64Var(&c.target, "target", 0, "Advisory target percentage (0-100).")
}

func (c *newPieCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one argument: the pie name.")
		return subcommands.ExitUsageError
	}
	doc, err := LoadDocument()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	parent := c.parent
	if parent == "" {
		parent = doc.Root().ID()
	}
	pie := pietree.NewAllocation(f.Arg(0), pietree.Percent(c.target))
	if err := doc.AddChild(parent, pie); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveDocument(doc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added pie %q with id %s\n", pie.Name(), pie.ID())
	return subcommands.ExitSuccess
}

type newPositionCmd struct {
	parent string
	target float64
}

func (*newPositionCmd) Name() string     { return "new-position" }
func (*newPositionCmd) Synopsis() string { return "add a new position (holding) under a pie" }
func (*newPositionCmd) Usage() string {
	return `pie new-position [-parent <id>] [-target <pct>] <ticker>

  Adds a new position for a ticker symbol at the end of the parent's child
  list. Tickers are case-normalized. Adding under another position is an
  error: holdings cannot have children.
`
}

func (c *newPositionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.parent, "parent", "", "Id of the parent pie. Defaults to the root.")
	f.Float64Var(&c.target, "target", 0, "Advisory target percentage (0-100).")
}

func (c *newPositionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one argument: the ticker.")
		return subcommands.ExitUsageError
	}
	doc, err := LoadDocument()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	parent := c.parent
	if parent == "" {
		parent = doc.Root().ID()
	}
	pos := pietree.NewPosition(f.Arg(0), pietree.Percent(c.target))
	if err := doc.AddChild(parent, pos); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveDocument(doc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added position %q with id %s\n", pos.Symbol(), pos.ID())
	return subcommands.ExitSuccess
}
