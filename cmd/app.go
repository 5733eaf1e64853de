// Package cmd implements the CLI application to evaluate and record
// fractional real-estate investments.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/lena"
	"github.com/etnz/lena/sqlite"
	"github.com/google/subcommands"
)

const (
	storeJSONL  = "jsonl"
	storeSQLite = "sqlite"
)

// groups lists the subcommands, by group.
var groups = []struct {
	name     string
	commands []subcommands.Command
}{
	{"properties", []subcommands.Command{&addPropertyCmd{}, &propertiesCmd{}, &rmPropertyCmd{}}},
	{"calculator", []subcommands.Command{&calcCmd{}}},
	{"investors", []subcommands.Command{
		&addInvestorCmd{}, &investorsCmd{}, &rmInvestorCmd{},
		&buyCmd{}, &purchasesCmd{}, &rmPurchaseCmd{}, &holdingsCmd{},
	}},
	{"data", []subcommands.Command{&fmtCmd{}, &migrateCmd{}}},
	{"help", []subcommands.Command{&topicCmd{}}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

// Commands returns every registered subcommand.
func Commands() []subcommands.Command {
	var list []subcommands.Command
	for _, g := range groups {
		list = append(list, g.commands...)
	}
	return list
}

// Has reports whether name is a subcommand of the application.
func Has(name string) bool {
	for _, cmd := range Commands() {
		if cmd.Name() == name {
			return true
		}
	}
	return false
}

// errUsage marks errors caused by a misuse of flags or arguments.
var errUsage = errors.New("usage")

// OpenStore opens the configured store.
func OpenStore(ctx context.Context) (lena.Store, error) {
	return openStore(ctx, config.Store, config.DataDir)
}

func openStore(ctx context.Context, kind, dir string) (lena.Store, error) {
	verbosef("opening %s store in %q", kind, dir)
	switch kind {
	case storeJSONL, "":
		return lena.OpenFileStore(dir)
	case storeSQLite:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cannot create data folder: %w", err)
		}
		return sqlite.Open(ctx, filepath.Join(dir, sqlite.Filename))
	default:
		return nil, fmt.Errorf("%w: unknown store %q, want %q or %q", errUsage, kind, storeJSONL, storeSQLite)
	}
}

// runner is the body of a subcommand: it returns the text to print.
type runner func(ctx context.Context, store lena.Store) (string, error)

// execute opens the store, runs the command and prints its output, as
// markdown when markdown is set.
func execute(ctx context.Context, run runner, markdown bool) subcommands.ExitStatus {
	store, err := OpenStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		if errors.Is(err, errUsage) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	defer store.Close()
	out, err := run(ctx, store)
	return finish(out, err, markdown)
}

// finish prints the outcome of a command and returns its exit status.
func finish(out string, err error, markdown bool) subcommands.ExitStatus {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	if markdown {
		printMarkdown(out)
	} else {
		fmt.Print(out)
	}
	return subcommands.ExitSuccess
}

// printMarkdown prints md to stdout, rendered for the terminal unless the
// style is raw.
func printMarkdown(md string) {
	if config.Style == "raw" {
		fmt.Print(md)
		return
	}
	style := glamour.WithAutoStyle()
	if config.Style != "auto" && config.Style != "" {
		style = glamour.WithStandardStyle(config.Style)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(0))
	if err != nil {
		log.Printf("warning, cannot render markdown: %v", err)
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Printf("warning, cannot render markdown: %v", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// visited returns the names of the flags set on the command line.
func visited(f *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string     { return fmt.Sprint(*l) }
func (l *stringList) Set(s string) error { *l = append(*l, s); return nil }
