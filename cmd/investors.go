package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/lena"
	"github.com/etnz/lena/renderer"
	"github.com/google/subcommands"
)

type addInvestorCmd struct {
	id    string
	name  string
	email string
}

func (*addInvestorCmd) Name() string     { return "add-investor" }
func (*addInvestorCmd) Synopsis() string { return "add or edit an investor" }
func (*addInvestorCmd) Usage() string {
	return `lena add-investor -name <name> [-email <email>]
lena add-investor -id <id> [-name <name>] [-email <email>]

  Adds a new investor, or edits the investor with that id.
`
}

func (c *addInvestorCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the investor to edit")
	f.StringVar(&c.name, "name", "", "investor name (required for a new investor)")
	f.StringVar(&c.email, "email", "", "investor email")
}

func (c *addInvestorCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := visited(f)
	return execute(ctx, func(ctx context.Context, store lena.Store) (string, error) {
		return c.run(ctx, store, set)
	}, false)
}

func (c *addInvestorCmd) run(ctx context.Context, store lena.Store, set map[string]bool) (string, error) {
	var i lena.Investor
	exists := false
	if c.id != "" {
		list, err := store.Investors(ctx)
		if err != nil {
			return "", err
		}
		i, exists = lena.FindInvestor(list, c.id)
		i.ID = c.id
	}
	if !exists && strings.TrimSpace(c.name) == "" {
		return "", fmt.Errorf("%w: -name is required for a new investor", errUsage)
	}
	if set["name"] {
		i.Name = c.name
	}
	if set["email"] {
		i.Email = c.email
	}

	i, err := store.PutInvestor(ctx, i)
	if err != nil {
		return "", err
	}
	verb := "added"
	if exists {
		verb = "updated"
	}
	return fmt.Sprintf("✅ Successfully %s investor %q (%s).\n", verb, i.Name, i.ID), nil
}

type investorsCmd struct{}

func (*investorsCmd) Name() string     { return "investors" }
func (*investorsCmd) Synopsis() string { return "list investors" }
func (*investorsCmd) Usage() string {
	return `lena investors

  Lists every investor.
`
}

func (*investorsCmd) SetFlags(f *flag.FlagSet) {}

func (c *investorsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c.run, true)
}

func (*investorsCmd) run(ctx context.Context, store lena.Store) (string, error) {
	list, err := store.Investors(ctx)
	if err != nil {
		return "", err
	}
	return renderer.InvestorsMarkdown(list), nil
}

type rmInvestorCmd struct{}

func (*rmInvestorCmd) Name() string     { return "rm-investor" }
func (*rmInvestorCmd) Synopsis() string { return "delete investors" }
func (*rmInvestorCmd) Usage() string {
	return `lena rm-investor <id>...

  Deletes investors. Their purchases are kept, and display them as "(unknown)".
`
}

func (*rmInvestorCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmInvestorCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids := f.Args()
	return execute(ctx, func(ctx context.Context, store lena.Store) (string, error) {
		return remove(ctx, "investor", ids, store.DeleteInvestor)
	}, false)
}
