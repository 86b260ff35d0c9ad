package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/halfpie/pietree"
)

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete a node and its entire subtree" }
func (*rmCmd) Usage() string {
	return `pie rm <id>

  Deletes the node and everything under it, transactions included.
  Removing the root or an unknown id does nothing.
`
}

func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one argument: the node id.")
		return subcommands.ExitUsageError
	}
	doc, err := LoadDocument()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	doc.Delete(f.Arg(0))
	if err := SaveDocument(doc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type targetCmd struct{}

func (*targetCmd) Name() string     { return "target" }
func (*targetCmd) Synopsis() string { return "update a node's advisory target percentage" }
func (*targetCmd) Usage() string {
	return `pie target <id> <pct>

  Sets the target percentage in place. Targets are advisory: siblings are
  never required to sum to 100.
`
}

func (*targetCmd) SetFlags(*flag.FlagSet) {}

func (c *targetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected two arguments: node id and percentage.")
		return subcommands.ExitUsageError
	}
	var pct float64
	if _, err := fmt.Sscanf(f.Arg(1), "%f", &pct); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid percentage %q\n", f.Arg(1))
		return subcommands.ExitUsageError
	}
	doc, err := LoadDocument()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := doc.UpdateTarget(f.Arg(0), pietree.Percent(pct)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveDocument(doc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
