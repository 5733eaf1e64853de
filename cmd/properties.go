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

type addPropertyCmd struct {
	id          string
	name        string
	address     string
	price       string
	rent        string
	expenses    string
	currency    string
	photos      stringList
	clearPhotos bool
}

func (*addPropertyCmd) Name() string     { return "add-property" }
func (*addPropertyCmd) Synopsis() string { return "add or edit a property" }
func (*addPropertyCmd) Usage() string {
	return `lena add-property -name <name> [-address <address>] [-price <amount>] [-rent <amount>] [-expenses <amount>] [-photo <file>]...
lena add-property -id <id> [flags to change]

  Adds a new property, or edits the property with that id: only the given
  flags are changed, and photos are appended.

  Amounts accept thousands separators ("75.000", "75,000"): every non-digit
  is ignored. Rent is monthly, expenses are annual.
  Photos are embedded in the record as data URLs.
`
}

func (c *addPropertyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the property to edit")
	f.StringVar(&c.name, "name", "", "property name (required for a new property)")
	f.StringVar(&c.address, "address", "", "property address")
	f.StringVar(&c.price, "price", "", "property price")
	f.StringVar(&c.rent, "rent", "", "expected monthly rent")
	f.StringVar(&c.expenses, "expenses", "", "annual expenses")
	f.StringVar(&c.currency, "c", "", "currency of the amounts, defaults to -currency")
	f.Var(&c.photos, "photo", "image file to embed, can be repeated")
	f.BoolVar(&c.clearPhotos, "clear-photos", false, "remove existing photos before adding new ones")
}

func (c *addPropertyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := visited(f)
	return execute(ctx, func(ctx context.Context, store lena.Store) (string, error) {
		return c.run(ctx, store, set)
	}, false)
}

func (c *addPropertyCmd) run(ctx context.Context, store lena.Store, set map[string]bool) (string, error) {
	var p lena.Property
	exists := false
	if c.id != "" {
		list, err := store.Properties(ctx)
		if err != nil {
			return "", err
		}
		p, exists = lena.FindProperty(list, c.id)
		p.ID = c.id
	}
	if !exists && strings.TrimSpace(c.name) == "" {
		return "", fmt.Errorf("%w: -name is required for a new property", errUsage)
	}

	currency := p.Currency()
	if set["c"] || currency == "" {
		currency = c.currency
		if currency == "" {
			currency = config.Currency
		}
	}
	if err := lena.ValidateCurrency(currency); err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	p.Price = p.Price.In(currency)
	p.Rent = p.Rent.In(currency)
	p.Expenses = p.Expenses.In(currency)

	if set["name"] {
		p.Name = c.name
	}
	if set["address"] {
		p.Address = c.address
	}
	if set["price"] {
		p.Price = lena.ParseMoney(c.price, currency)
	}
	if set["rent"] {
		p.Rent = lena.ParseMoney(c.rent, currency)
	}
	if set["expenses"] {
		p.Expenses = lena.ParseMoney(c.expenses, currency)
	}
	if c.clearPhotos {
		p.Photos = nil
	}
	if len(c.photos) > 0 {
		urls, err := lena.LoadPhotos(c.photos...)
		if err != nil {
			return "", err
		}
		p.Photos = append(p.Photos, urls...)
	}

	p, err := store.PutProperty(ctx, p)
	if err != nil {
		return "", err
	}
	verb := "added"
	if exists {
		verb = "updated"
	}
	return fmt.Sprintf("✅ Successfully %s property %q (%s).\n", verb, p.Name, p.ID), nil
}

type propertiesCmd struct{}

func (*propertiesCmd) Name() string     { return "properties" }
func (*propertiesCmd) Synopsis() string { return "list properties" }
func (*propertiesCmd) Usage() string {
	return `lena properties

  Lists every property.
`
}

func (*propertiesCmd) SetFlags(f *flag.FlagSet) {}

func (c *propertiesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c.run, true)
}

func (*propertiesCmd) run(ctx context.Context, store lena.Store) (string, error) {
	list, err := store.Properties(ctx)
	if err != nil {
		return "", err
	}
	return renderer.PropertiesMarkdown(list), nil
}

type rmPropertyCmd struct{}

func (*rmPropertyCmd) Name() string     { return "rm-property" }
func (*rmPropertyCmd) Synopsis() string { return "delete properties" }
func (*rmPropertyCmd) Usage() string {
	return `lena rm-property <id>...

  Deletes properties. Purchases of a deleted property are kept, and display
  it as "(unknown)".
`
}

func (*rmPropertyCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmPropertyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids := f.Args()
	return execute(ctx, func(ctx context.Context, store lena.Store) (string, error) {
		return remove(ctx, "property", ids, store.DeleteProperty)
	}, false)
}

// remove deletes records by id with del.
func remove(ctx context.Context, kind string, ids []string, del func(context.Context, string) error) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: at least one %s id is required", errUsage, kind)
	}
	var b strings.Builder
	for _, id := range ids {
		if err := del(ctx, id); err != nil {
			return b.String(), fmt.Errorf("cannot delete %s %q: %w", kind, id, err)
		}
		fmt.Fprintf(&b, "Deleted %s %s\n", kind, id)
	}
	return b.String(), nil
}
