package cmd

import (
	"flag"
	"io"

	"github.com/etnz/lena/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	predictStores = predict.Set{storeJSONL, storeSQLite}
	predictStyles = predict.Set{"auto", "dark", "light", "notty", "raw"}
	// flagPredictors predicts flag values by "command.flag", or by "flag" for
	// every command.
	flagPredictors = map[string]complete.Predictor{
		"data-dir":    predict.Dirs("*"),
		"store":       predictStores,
		"style":       predictStyles,
		"currency":    predict.Something,
		"photo":       predict.Files("*"),
		"mode":        predict.Set{"tokens", "shares"},
		"migrate.to":  predictStores,
		"to-dir":      predict.Dirs("*"),
		"purchases.p": predict.Set{"day", "week", "month", "quarter", "year"},
	}
)

// Completion returns the shell completion of the application: the global
// flags, the subcommands and their flags.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags("", global),
	}
	for _, c := range Commands() {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: predictFlags(c.Name(), fs)}
		if c.Name() == "topic" {
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(append(topics, "*"))
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

// predictFlags returns a predictor for every flag of fs.
func predictFlags(command string, fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		if p, ok := flagPredictors[command+"."+f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
