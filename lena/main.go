// Command lena evaluates fractional real-estate investments and keeps the
// records of properties, investors and purchases.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/etnz/lena/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	if err := cmd.BindFlags(flag.CommandLine); err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	// exits when invoked by the shell for completion.
	cmd.Completion(flag.CommandLine).Complete("lena")

	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !cmd.Has(sub) && !isHelp(sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func isHelp(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	return false
}
