package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/lena"
	"github.com/etnz/lena/date"
	"github.com/etnz/lena/renderer"
	"github.com/google/subcommands"
)

type buyCmd struct {
	investor string
	property string
	date     string
	units    string
	amount   string
	currency string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase of units" }
func (*buyCmd) Usage() string {
	return `lena buy -i <investor id> -p <property id> -units <count> [-amount <amount>] [-d <date>]

  Records that an investor bought units of a property. The investor and the
  property are not required to exist.

  The amount defaults to the units at the evaluation's default unit price.
  The date defaults to today. See the dates topic for supported formats.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.investor, "i", "", "investor id (required)")
	f.StringVar(&c.property, "p", "", "property id (required)")
	f.StringVar(&c.date, "d", date.Today().String(), "purchase date")
	f.StringVar(&c.units, "units", "", "number of units bought (required)")
	f.StringVar(&c.amount, "amount", "", "amount paid, entry fee included")
	f.StringVar(&c.currency, "c", "", "currency of the amount, defaults to the property's or -currency")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c.run, false)
}

func (c *buyCmd) run(ctx context.Context, store lena.Store) (string, error) {
	if c.investor == "" || c.property == "" || c.units == "" {
		return "", fmt.Errorf("%w: -i, -p and -units are required", errUsage)
	}
	on, err := date.Parse(c.date)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}

	units := lena.U(lena.ParseAmount(c.units))
	currency := c.currency
	properties, err := store.Properties(ctx)
	if err != nil {
		return "", err
	}
	p, found := lena.FindProperty(properties, c.property)
	if currency == "" && found {
		currency = p.Currency()
	}
	if currency == "" {
		currency = config.Currency
	}

	amount := lena.ParseMoney(c.amount, currency)
	if c.amount == "" {
		unitPrice := lena.DefaultInputs(currency).UnitPrice
		amount = lena.M(unitPrice.Amount().Mul(units.Decimal()), currency)
	}

	purchase, err := store.PutPurchase(ctx, lena.Purchase{
		InvestorID: c.investor,
		PropertyID: c.property,
		Date:       on,
		Units:      units,
		Amount:     amount,
	})
	if err != nil {
		return "", err
	}
	name := lena.Unknown
	if found {
		name = p.Name
	}
	return fmt.Sprintf("✅ Successfully recorded %s units of %s for %s (%s).\n", renderer.Units(units), name, amount, purchase.ID), nil
}

type purchasesCmd struct {
	period   string
	start    string
	end      string
	investor string
	property string
}

func (*purchasesCmd) Name() string     { return "purchases" }
func (*purchasesCmd) Synopsis() string { return "display the purchase history" }
func (*purchasesCmd) Usage() string {
	return `lena purchases [-p <period> | -s <start date>] [-d <end date>] [-investor <id>] [-property <id>]

  Displays purchases sorted by date, with investor and property names.
  Purchases of deleted records display "(unknown)".

  -p selects the day, week, month, quarter or year containing the date -d.
  -s selects purchases from that date to -d.
`
}

func (c *purchasesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "period: day, week, month, quarter or year")
	f.StringVar(&c.start, "s", "", "start date")
	f.StringVar(&c.end, "d", date.Today().String(), "end date")
	f.StringVar(&c.investor, "investor", "", "only purchases of this investor id")
	f.StringVar(&c.property, "property", "", "only purchases of this property id")
}

func (c *purchasesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c.run, true)
}

func (c *purchasesCmd) run(ctx context.Context, store lena.Store) (string, error) {
	filters, title, err := c.filters()
	if err != nil {
		return "", err
	}
	purchases, err := store.Purchases(ctx)
	if err != nil {
		return "", err
	}
	investors, err := store.Investors(ctx)
	if err != nil {
		return "", err
	}
	properties, err := store.Properties(ctx)
	if err != nil {
		return "", err
	}
	return renderer.PurchasesMarkdown(title, lena.History(purchases, investors, properties, filters...)), nil
}

// filters returns the purchase filters selected by the flags, and a title
// describing them.
func (c *purchasesCmd) filters() ([]func(lena.Purchase) bool, string, error) {
	var filters []func(lena.Purchase) bool
	title := "Purchases"

	if c.period != "" && c.start != "" {
		return nil, "", fmt.Errorf("%w: -p and -s are mutually exclusive", errUsage)
	}
	if c.period != "" || c.start != "" {
		end, err := date.Parse(c.end)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", errUsage, err)
		}
		var r date.Range
		if c.period != "" {
			p, err := date.ParsePeriod(c.period)
			if err != nil {
				return nil, "", fmt.Errorf("%w: %v", errUsage, err)
			}
			r = p.Range(end)
			title += fmt.Sprintf(" (%s, %s)", r.Name(), r)
		} else {
			start, err := date.Parse(c.start)
			if err != nil {
				return nil, "", fmt.Errorf("%w: %v", errUsage, err)
			}
			r = date.NewRange(start, end)
			title += fmt.Sprintf(" (%s)", r)
		}
		filters = append(filters, lena.During(r))
	}

	var by []string
	if c.investor != "" {
		filters = append(filters, lena.ByInvestor(c.investor))
		by = append(by, "investor "+c.investor)
	}
	if c.property != "" {
		filters = append(filters, lena.ByProperty(c.property))
		by = append(by, "property "+c.property)
	}
	if len(by) > 0 {
		title += " of " + strings.Join(by, " and ")
	}
	return filters, title, nil
}

type rmPurchaseCmd struct{}

func (*rmPurchaseCmd) Name() string     { return "rm-purchase" }
func (*rmPurchaseCmd) Synopsis() string { return "delete purchases" }
func (*rmPurchaseCmd) Usage() string {
	return `lena rm-purchase <id>...

  Deletes purchases.
`
}

func (*rmPurchaseCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmPurchaseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids := f.Args()
	return execute(ctx, func(ctx context.Context, store lena.Store) (string, error) {
		return remove(ctx, "purchase", ids, store.DeletePurchase)
	}, false)
}

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display what every investor owns" }
func (*holdingsCmd) Usage() string {
	return `lena holdings

  Displays the units and amounts purchased per investor and property.
`
}

func (*holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c.run, true)
}

func (*holdingsCmd) run(ctx context.Context, store lena.Store) (string, error) {
	purchases, err := store.Purchases(ctx)
	if err != nil {
		return "", err
	}
	investors, err := store.Investors(ctx)
	if err != nil {
		return "", err
	}
	properties, err := store.Properties(ctx)
	if err != nil {
		return "", err
	}
	return renderer.HoldingsMarkdown(lena.Holdings(purchases, investors, properties)), nil
}
