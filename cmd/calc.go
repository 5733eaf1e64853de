package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/lena"
	"github.com/etnz/lena/renderer"
	"github.com/google/subcommands"
)

type calcCmd struct {
	property    string
	price       string
	rent        string
	occupancy   float64
	expenses    string
	equity      string
	unitPrice   string
	investment  string
	platformFee float64
	entryFee    float64
	currency    string
	mode        string
	json        bool
	selector    string
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "evaluate a fractional investment" }
func (*calcCmd) Usage() string {
	return `lena calc [-property <id>] [-price <amount>] [-rent <amount>] [-occupancy <pct>] [-expenses <amount>]
          [-equity <amount>] [-unit-price <amount>] [-invest <amount>]
          [-platform-fee <pct>] [-entry-fee <pct>] [-mode tokens|shares] [-json | -select <jsonpath>]

  Computes the returns of buying units of a property.

  Unset inputs take the values of the property given with -property (price,
  rent, expenses, and the whole price as equity), or the defaults.
  Percentages snap to their slider: occupancy 0-100 by 1, platform fee 0-10
  by 0.1, entry fee 0-5 by 0.1.

  -json prints all the metrics as a JSON object. -select prints a single
  value from that object, for instance -select '$.cashOnCash'.
`
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.property, "property", "", "id of a property to evaluate")
	f.StringVar(&c.price, "price", "", "property price")
	f.StringVar(&c.rent, "rent", "", "expected monthly rent")
	f.Float64Var(&c.occupancy, "occupancy", 90, "occupancy rate in percent")
	f.StringVar(&c.expenses, "expenses", "", "annual expenses")
	f.StringVar(&c.equity, "equity", "", "total equity divided into units")
	f.StringVar(&c.unitPrice, "unit-price", "", "price of one unit")
	f.StringVar(&c.investment, "invest", "", "amount invested")
	f.Float64Var(&c.platformFee, "platform-fee", 2, "annual platform fee in percent of the net operating income")
	f.Float64Var(&c.entryFee, "entry-fee", 0.5, "one time entry fee in percent of the investment")
	f.StringVar(&c.currency, "c", "", "currency, defaults to the property's or -currency")
	f.StringVar(&c.mode, "mode", string(lena.Tokens), "unit kind, 'tokens' or 'shares'")
	f.BoolVar(&c.json, "json", false, "print metrics as JSON")
	f.StringVar(&c.selector, "select", "", "print the value at this JSONPath of the JSON metrics")
}

func (c *calcCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := visited(f)
	markdown := !c.json && c.selector == ""
	if c.property == "" {
		// no record is read: the data folder is left untouched.
		out, err := c.run(ctx, nil, set)
		return finish(out, err, markdown)
	}
	return execute(ctx, func(ctx context.Context, store lena.Store) (string, error) {
		return c.run(ctx, store, set)
	}, markdown)
}

func (c *calcCmd) run(ctx context.Context, store lena.Store, set map[string]bool) (string, error) {
	in, title, err := c.inputs(ctx, store, set)
	if err != nil {
		return "", err
	}
	m := lena.Compute(in)

	switch {
	case c.selector != "":
		return selectJSON(m, c.selector)
	case c.json:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	default:
		return renderer.RenderMetrics(renderer.NewMetricsReport(title, in, m)), nil
	}
}

// inputs builds the evaluation inputs from the defaults, the property, and
// the flags set on the command line, in that order.
func (c *calcCmd) inputs(ctx context.Context, store lena.Store, set map[string]bool) (lena.Inputs, string, error) {
	currency := c.currency
	if currency == "" {
		currency = config.Currency
	}
	in := lena.DefaultInputs(currency)
	title := ""

	if c.property != "" {
		list, err := store.Properties(ctx)
		if err != nil {
			return in, "", err
		}
		p, ok := lena.FindProperty(list, c.property)
		if !ok {
			return in, "", fmt.Errorf("%w: unknown property %q", errUsage, c.property)
		}
		in = in.Seed(p)
		title = "Evaluation of " + p.Name
	}
	if set["c"] {
		in.Currency = c.currency
	}
	if err := lena.ValidateCurrency(in.Currency); err != nil {
		return in, "", fmt.Errorf("%w: %v", errUsage, err)
	}

	mode, err := lena.ParseMode(c.mode)
	if err != nil {
		return in, "", fmt.Errorf("%w: %v", errUsage, err)
	}
	in.Mode = mode

	amounts := []struct {
		flag  string
		value string
		dst   *lena.Money
	}{
		{"price", c.price, &in.PropertyPrice},
		{"rent", c.rent, &in.ExpectedMonthlyRent},
		{"expenses", c.expenses, &in.AnnualExpenses},
		{"equity", c.equity, &in.TotalEquity},
		{"unit-price", c.unitPrice, &in.UnitPrice},
		{"invest", c.investment, &in.MyInvestment},
	}
	for _, a := range amounts {
		if set[a.flag] {
			*a.dst = lena.ParseMoney(a.value, in.Currency)
		}
	}

	in.OccupancyRate = lena.OccupancySlider.Snap(lena.Percent(c.occupancy))
	in.PlatformFeePct = lena.PlatformFeeSlider.Snap(lena.Percent(c.platformFee))
	in.EntryFeePct = lena.EntryFeeSlider.Snap(lena.Percent(c.entryFee))
	return in, title, nil
}

// selectJSON returns the value at path in the JSON form of v.
func selectJSON(v any, path string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return "", err
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("%w: invalid selector %q: %v", errUsage, path, err)
	}
	// a path may return a list of 1 answer or a single answer: keep the first one.
	if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
		jval = jlist[0]
	}
	if s, ok := jval.(string); ok {
		return s + "\n", nil
	}
	out, err := json.Marshal(jval)
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}
