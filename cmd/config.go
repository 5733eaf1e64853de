package cmd

import (
	"flag"
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
)

// Config holds the global settings. Environment variables provide the
// defaults of the global flags.
type Config struct {
	DataDir  string `env:"LENA_DATA_DIR" envDefault:".lena"`
	Store    string `env:"LENA_STORE"    envDefault:"jsonl"`
	Currency string `env:"LENA_CURRENCY" envDefault:"USD"`
	Style    string `env:"LENA_STYLE"    envDefault:"auto"`
	Verbose  bool   `env:"LENA_VERBOSE"`
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use a global variable.
var config = Config{
	DataDir:  ".lena",
	Store:    storeJSONL,
	Currency: "USD",
	Style:    "auto",
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// BindFlags loads the environment and binds the global flags of fs to the
// configuration.
func BindFlags(fs *flag.FlagSet) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	config = cfg
	fs.StringVar(&config.DataDir, "data-dir", config.DataDir, "data folder")
	fs.StringVar(&config.Store, "store", config.Store, "storage backend, 'jsonl' or 'sqlite'")
	fs.StringVar(&config.Currency, "currency", config.Currency, "default currency for new records and evaluations")
	fs.StringVar(&config.Style, "style", config.Style, "markdown style: 'auto', 'dark', 'light', 'notty' or 'raw'")
	fs.BoolVar(&config.Verbose, "v", config.Verbose, "verbose logging")
	return nil
}

// verbosef logs only in verbose mode.
func verbosef(format string, args ...any) {
	if config.Verbose {
		log.Printf(format, args...)
	}
}
