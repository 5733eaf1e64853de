package cmd

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/lena"
	"github.com/etnz/lena/sqlite"
	"github.com/google/subcommands"
)

// withConfig replaces the global configuration for the duration of the test,
// with a fresh data folder.
func withConfig(t *testing.T) {
	t.Helper()
	saved := config
	config = Config{
		DataDir:  t.TempDir(),
		Store:    storeJSONL,
		Currency: "USD",
		Style:    "raw",
	}
	t.Cleanup(func() { config = saved })
}

// parseFlags parses args with the flags of c, and returns the flags set.
func parseFlags(t *testing.T, c subcommands.Command, args ...string) map[string]bool {
	t.Helper()
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("%s %v: %v", c.Name(), args, err)
	}
	return visited(fs)
}

// openTestStore opens the configured store.
func openTestStore(t *testing.T) lena.Store {
	t.Helper()
	store, err := OpenStore(context.Background())
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("LENA_DATA_DIR", "/srv/lena")
	t.Setenv("LENA_STORE", storeSQLite)
	t.Setenv("LENA_CURRENCY", "EUR")
	t.Setenv("LENA_STYLE", "dark")
	t.Setenv("LENA_VERBOSE", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	want := Config{DataDir: "/srv/lena", Store: storeSQLite, Currency: "EUR", Style: "dark", Verbose: true}
	if cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}

	t.Setenv("LENA_VERBOSE", "maybe")
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() with an invalid boolean should fail")
	}
}

func TestBindFlags(t *testing.T) {
	withConfig(t)
	t.Setenv("LENA_CURRENCY", "EUR")

	fs := flag.NewFlagSet("lena", flag.ContinueOnError)
	if err := BindFlags(fs); err != nil {
		t.Fatalf("BindFlags() error = %v", err)
	}
	if config.Currency != "EUR" {
		t.Errorf("environment default: currency = %q, want EUR", config.Currency)
	}
	if err := fs.Parse([]string{"-currency", "GBP", "-store", storeSQLite, "-v"}); err != nil {
		t.Fatal(err)
	}
	if config.Currency != "GBP" || config.Store != storeSQLite || !config.Verbose {
		t.Errorf("flags did not override the configuration: %+v", config)
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := openStore(ctx, storeJSONL, dir)
	if err != nil {
		t.Fatalf("openStore(jsonl) error = %v", err)
	}
	if _, ok := s.(*lena.FileStore); !ok {
		t.Errorf("openStore(jsonl) = %T, want *lena.FileStore", s)
	}
	s.Close()

	s, err = openStore(ctx, storeSQLite, filepath.Join(dir, "nested"))
	if err != nil {
		t.Fatalf("openStore(sqlite) error = %v", err)
	}
	if _, ok := s.(*sqlite.Store); !ok {
		t.Errorf("openStore(sqlite) = %T, want *sqlite.Store", s)
	}
	s.Close()
	if _, err := os.Stat(filepath.Join(dir, "nested", sqlite.Filename)); err != nil {
		t.Errorf("openStore(sqlite) did not create the database: %v", err)
	}

	if _, err := openStore(ctx, "csv", dir); !errors.Is(err, errUsage) {
		t.Errorf("openStore(csv) error = %v, want a usage error", err)
	}
}

func TestHas(t *testing.T) {
	for _, name := range []string{"calc", "add-property", "buy", "holdings", "topic"} {
		if !Has(name) {
			t.Errorf("Has(%q) = false", name)
		}
	}
	if Has("gains") {
		t.Error("Has(\"gains\") = true")
	}
}

func TestFinish(t *testing.T) {
	cases := []struct {
		err  error
		want subcommands.ExitStatus
	}{
		{nil, subcommands.ExitSuccess},
		{errors.New("disk full"), subcommands.ExitFailure},
		{errUsage, subcommands.ExitUsageError},
	}
	for _, tc := range cases {
		if got := finish("", tc.err, false); got != tc.want {
			t.Errorf("finish(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestStringList(t *testing.T) {
	var l stringList
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&l, "photo", "")
	if err := fs.Parse([]string{"-photo", "a.png", "-photo", "b.jpg"}); err != nil {
		t.Fatal(err)
	}
	if want := []string{"a.png", "b.jpg"}; !slices.Equal(l, want) {
		t.Errorf("stringList = %v, want %v", l, want)
	}
}

func TestExtensionEnv(t *testing.T) {
	withConfig(t)
	config.Store = storeSQLite
	config.Verbose = true

	got := extensionEnv()
	want := []string{
		"LENA_DATA_DIR=" + config.DataDir,
		"LENA_STORE=sqlite",
		"LENA_CURRENCY=USD",
		"LENA_STYLE=raw",
		"LENA_VERBOSE=true",
	}
	if !slices.Equal(got, want) {
		t.Errorf("extensionEnv() = %v, want %v", got, want)
	}
}

func TestRunExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, _ := RunExtension("nothing", nil); found {
		t.Error("RunExtension() found a missing extension")
	}
}

func TestCompletion(t *testing.T) {
	withConfig(t)
	global := flag.NewFlagSet("lena", flag.ContinueOnError)
	if err := BindFlags(global); err != nil {
		t.Fatal(err)
	}
	c := Completion(global)

	for _, name := range []string{"data-dir", "store", "currency", "style", "v"} {
		if _, ok := c.Flags[name]; !ok {
			t.Errorf("global flag %q is not completed", name)
		}
	}
	for _, cmd := range Commands() {
		if _, ok := c.Sub[cmd.Name()]; !ok {
			t.Errorf("command %q is not completed", cmd.Name())
		}
	}
	calc := c.Sub["calc"]
	if got := calc.Flags["mode"].Predict(""); !slices.Equal(got, []string{"tokens", "shares"}) {
		t.Errorf("calc -mode predicts %v", got)
	}
	if got := c.Sub["purchases"].Flags["p"].Predict(""); !slices.Contains(got, "quarter") {
		t.Errorf("purchases -p predicts %v", got)
	}
	if got := c.Sub["topic"].Args.Predict(""); !slices.Contains(got, "metrics") {
		t.Errorf("topic predicts %v", got)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	var deleted []string
	del := func(_ context.Context, id string) error {
		if id == "broken" {
			return errors.New("locked")
		}
		deleted = append(deleted, id)
		return nil
	}

	out, err := remove(ctx, "investor", []string{"ana", "bob"}, del)
	if err != nil {
		t.Fatalf("remove() error = %v", err)
	}
	if want := "Deleted investor ana\nDeleted investor bob\n"; out != want {
		t.Errorf("remove() = %q, want %q", out, want)
	}

	if _, err := remove(ctx, "investor", nil, del); !errors.Is(err, errUsage) {
		t.Errorf("remove() without ids error = %v, want a usage error", err)
	}
	out, err = remove(ctx, "investor", []string{"carl", "broken", "dan"}, del)
	if err == nil || !strings.Contains(err.Error(), `"broken"`) {
		t.Errorf("remove() error = %v, want an error naming the record", err)
	}
	if out != "Deleted investor carl\n" || slices.Contains(deleted, "dan") {
		t.Errorf("remove() kept going after an error: %q %v", out, deleted)
	}
}

func TestMigrate(t *testing.T) {
	withConfig(t)
	ctx := context.Background()
	from := openTestStore(t)

	p, err := from.PutProperty(ctx, lena.Property{Name: "Chacao", Price: lena.M(75000, "USD")})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := from.PutInvestor(ctx, lena.Investor{ID: "ana", Name: "Ana"}); err != nil {
		t.Fatal(err)
	}

	c := &migrateCmd{}
	parseFlags(t, c, "-to", storeSQLite)
	out, err := c.run(ctx, from)
	if err != nil {
		t.Fatalf("migrate error = %v", err)
	}
	if !strings.Contains(out, "1 properties, 1 investors and 0 purchases") {
		t.Errorf("migrate = %q", out)
	}

	to, err := sqlite.Open(ctx, filepath.Join(config.DataDir, sqlite.Filename))
	if err != nil {
		t.Fatal(err)
	}
	defer to.Close()
	properties, err := to.Properties(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(properties) != 1 || properties[0].ID != p.ID || properties[0].Name != "Chacao" {
		t.Errorf("migrated properties = %v", properties)
	}

	self := &migrateCmd{}
	parseFlags(t, self, "-to", storeJSONL)
	if _, err := self.run(ctx, from); !errors.Is(err, errUsage) {
		t.Errorf("migrate into itself error = %v, want a usage error", err)
	}
}

func TestFmt(t *testing.T) {
	withConfig(t)
	ctx := context.Background()
	store := openTestStore(t)
	if _, err := store.PutInvestor(ctx, lena.Investor{ID: "ana", Name: "Ana"}); err != nil {
		t.Fatal(err)
	}

	out, err := (&fmtCmd{}).run(ctx, store)
	if err != nil {
		t.Fatalf("fmt error = %v", err)
	}
	if !strings.Contains(out, "formatted 1 records") {
		t.Errorf("fmt = %q", out)
	}

	db, err := openStore(ctx, storeSQLite, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := (&fmtCmd{}).run(ctx, db); !errors.Is(err, errUsage) {
		t.Errorf("fmt on sqlite error = %v, want a usage error", err)
	}
}
