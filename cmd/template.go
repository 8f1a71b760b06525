package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/dungeon"
	"github.com/google/subcommands"
)

type templateCmd struct {
	reset bool
}

func (*templateCmd) Name() string     { return "template" }
func (*templateCmd) Synopsis() string { return "show or set the share text template" }
func (*templateCmd) Usage() string {
	return `template [-reset] [<text>]

  Without argument, prints the template of the share text. Otherwise sets it.
  The placeholders {목표}, {현재}, {평균} and {최고} are replaced by the target,
  the number of runs, the average and the fastest time.
`
}

func (c *templateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.reset, "reset", false, "Restore the default template")
}

func (c *templateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		switch {
		case c.reset:
			a.store.SetShareTemplate(dungeon.DefaultShareTemplate)
		case f.NArg() > 0:
			a.store.SetShareTemplate(strings.Join(f.Args(), " "))
		}
		fmt.Println(a.store.State().ShareTemplate)
		return subcommands.ExitSuccess
	})
}
