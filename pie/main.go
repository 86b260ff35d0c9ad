package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/halfpie/pietree/cmd"
)

// completion describes the command line for shell completion. It must be
// installed before flag.Parse, it exits the process when invoked by a shell.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"new-pie":      {Flags: map[string]complete.Predictor{"parent": predict.Nothing, "target": predict.Nothing}},
		"new-position": {Flags: map[string]complete.Predictor{"parent": predict.Nothing, "target": predict.Nothing}},
		"rm":       {},
		"target":   {},
		"buy":      {Flags: map[string]complete.Predictor{"d": predict.Nothing, "q": predict.Nothing, "p": predict.Nothing}},
		"sell":     {Flags: map[string]complete.Predictor{"d": predict.Nothing, "q": predict.Nothing, "p": predict.Nothing}},
		"tx":       {},
		"tx-rm":    {},
		"cash":     {},
		"summary":  {Flags: map[string]complete.Predictor{"d": predict.Nothing, "sync": predict.Nothing}},
		"history":  {Flags: map[string]complete.Predictor{"s": predict.Nothing, "d": predict.Nothing}},
		"sync":     {},
	},
	Flags: map[string]complete.Predictor{
		"file":   predict.Files("*.json"),
		"config": predict.Files("*.yaml"),
		"v":      predict.Nothing,
	},
}

func main() {
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
