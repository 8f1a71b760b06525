package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type targetCmd struct{}

func (*targetCmd) Name() string     { return "target" }
func (*targetCmd) Synopsis() string { return "set the target number of runs" }
func (*targetCmd) Usage() string {
	return `target <runs>

  Sets the number of runs of the session. Anything but a positive number
  sets the target to 1.
`
}

func (*targetCmd) SetFlags(f *flag.FlagSet) {}

func (c *targetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "target requires exactly one argument")
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		a.store.SetTargetRuns(f.Arg(0))
		fmt.Printf("목표: %d판\n", a.store.State().TargetRuns)
		return subcommands.ExitSuccess
	})
}
