// Package cmd implements the CLI application to manage a pie portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/halfpie/pietree"
)

// Register the subcommands.
// A main package calls Register() to declare subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&newPieCmd{}, "tree")
	c.Register(&newPositionCmd{}, "tree")
	c.Register(&rmCmd{}, "tree")
	c.Register(&targetCmd{}, "tree")

	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")
	c.Register(&rmTxCmd{}, "transactions")
	c.Register(&cashCmd{}, "transactions")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&syncCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var documentFile = flag.String("file", "", "Path to the portfolio document (JSON). Overrides the config file.")
var configFile = flag.String("config", "", "Path to the config file (YAML). Defaults to $HOME/.pietree.yaml")
var verbose = flag.Bool("v", false, "Enable debug logging.")

// Logger returns the application logger, console-formatted on stderr.
func Logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// documentPath resolves the document location: flag, then config, then default.
func documentPath() string {
	if *documentFile != "" {
		return *documentFile
	}
	return AppConfig().Document
}

// LoadDocument reads the portfolio document. A missing file yields a fresh
// empty document instead of an error.
func LoadDocument() (*pietree.Document, error) {
	path := documentPath()
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return pietree.NewDocument("Portfolio"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open document %q: %w", path, err)
	}
	defer f.Close()
	return pietree.DecodeDocument(f)
}

// SaveDocument writes the whole document back in one snapshot: the store is
// single writer, last write wins.
func SaveDocument(d *pietree.Document) error {
	path := documentPath()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not write document %q: %w", path, err)
	}
	defer f.Close()
	return pietree.EncodeDocument(f, d)
}

// printMarkdown renders a markdown report to the terminal.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		// Fall back to the raw markdown.
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}
