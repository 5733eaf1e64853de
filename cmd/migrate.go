package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/lena"
	"github.com/google/subcommands"
)

type migrateCmd struct {
	to    string
	toDir string
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "copy every record into another store" }
func (*migrateCmd) Usage() string {
	return `lena migrate -to <jsonl|sqlite> [-to-dir <folder>]

  Copies every property, investor and purchase of the current store into the
  store given by -to, in the data folder unless -to-dir is set.
  Records keep their ids: records already in the target are replaced.
`
}

func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.to, "to", "", "target store, 'jsonl' or 'sqlite' (required)")
	f.StringVar(&c.toDir, "to-dir", "", "target data folder, defaults to -data-dir")
}

func (c *migrateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c.run, false)
}

func (c *migrateCmd) run(ctx context.Context, from lena.Store) (string, error) {
	dir := c.toDir
	if dir == "" {
		dir = config.DataDir
	}
	if c.to == "" {
		return "", fmt.Errorf("%w: -to is required", errUsage)
	}
	if c.to == config.Store && dir == config.DataDir {
		return "", fmt.Errorf("%w: cannot migrate a store into itself", errUsage)
	}
	to, err := openStore(ctx, c.to, dir)
	if err != nil {
		return "", err
	}
	defer to.Close()

	fmt.Fprintf(os.Stderr, "Migrating records to the %s store in %q...\n", c.to, dir)
	n, err := copyRecords(ctx, from, to)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Successfully migrated %d properties, %d investors and %d purchases.\n", n[0], n[1], n[2]), nil
}

// copyRecords puts every record of from into to, and returns the number of
// properties, investors and purchases copied.
func copyRecords(ctx context.Context, from, to lena.Store) ([3]int, error) {
	var n [3]int
	properties, err := from.Properties(ctx)
	if err != nil {
		return n, err
	}
	for _, p := range properties {
		if _, err := to.PutProperty(ctx, p); err != nil {
			return n, fmt.Errorf("cannot copy property %q: %w", p.ID, err)
		}
		n[0]++
	}
	investors, err := from.Investors(ctx)
	if err != nil {
		return n, err
	}
	for _, i := range investors {
		if _, err := to.PutInvestor(ctx, i); err != nil {
			return n, fmt.Errorf("cannot copy investor %q: %w", i.ID, err)
		}
		n[1]++
	}
	purchases, err := from.Purchases(ctx)
	if err != nil {
		return n, err
	}
	for _, p := range purchases {
		if _, err := to.PutPurchase(ctx, p); err != nil {
			return n, fmt.Errorf("cannot copy purchase %q: %w", p.ID, err)
		}
		n[2]++
	}
	return n, nil
}
