package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/dungeon"
	"github.com/etnz/dungeon/renderer"
	"github.com/google/subcommands"
)

type statusCmd struct{}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "display the progress of the session" }
func (*statusCmd) Usage() string {
	return `status

  Displays the target, the runs and their times compared to the average,
  and the expected time of completion.
`
}

func (*statusCmd) SetFlags(f *flag.FlagSet) {}

func (c *statusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		printMarkdown(renderer.RenderStatus(a.store.State(), a.store.Now(), a.loc))
		return subcommands.ExitSuccess
	})
}

type shareCmd struct{}

func (*shareCmd) Name() string     { return "share" }
func (*shareCmd) Synopsis() string { return "print the share text" }
func (*shareCmd) Usage() string {
	return `share

  Prints the share text filled with the progress of the session.
`
}

func (*shareCmd) SetFlags(f *flag.FlagSet) {}

func (c *shareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		fmt.Println(dungeon.ShareText(a.store.State()))
		return subcommands.ExitSuccess
	})
}
