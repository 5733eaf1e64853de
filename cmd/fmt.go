package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/lena"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the record files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `lena fmt

  Validates every record of the jsonl store, and writes the files back in a
  canonical form: one record per line, keys in a fixed order. Use it after
  editing the files by hand.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c.run, false)
}

func (*fmtCmd) run(ctx context.Context, store lena.Store) (string, error) {
	fs, ok := store.(*lena.FileStore)
	if !ok {
		return "", fmt.Errorf("%w: fmt only applies to the %q store", errUsage, storeJSONL)
	}
	fmt.Fprintf(os.Stderr, "Formatting records in %q...\n", config.DataDir)
	n, err := fs.Rewrite(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Successfully formatted %d records.\n", n), nil
}
