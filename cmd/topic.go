package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/lena/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `lena topic [<topic>...]

  Shows documentation topics. Without a topic, lists them. '*' shows them all.
`
}

func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{docs.Index}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
