package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/dungeon"
	"github.com/etnz/dungeon/renderer"
	"github.com/google/subcommands"
)

type tradesCmd struct {
	typ string
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "display the trades" }
func (*tradesCmd) Usage() string {
	return `trades [-type all|buy|sell]

  Displays the trades grouped by day, most recent first.
`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "all", "Restrict to a type of trades (all, buy, sell)")
}

func (c *tradesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := dungeon.ParseTradeFilter(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		printMarkdown(renderer.RenderTrades(a.store.State(), filter, a.loc))
		return subcommands.ExitSuccess
	})
}

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the profit of the day and of the week" }
func (*dashboardCmd) Usage() string {
	return `dashboard

  Displays the net profit of today's and this week's sales, weeks starting
  on monday, and the value of the stock.
`
}

func (*dashboardCmd) SetFlags(f *flag.FlagSet) {}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		printMarkdown(renderer.RenderDashboard(dungeon.Dashboard(a.store.State(), a.store.Now(), a.loc)))
		return subcommands.ExitSuccess
	})
}

type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display the price trends" }
func (*statsCmd) Usage() string {
	return `stats

  Displays, for each traded item, the average buy and sell prices and a
  chart of the prices, oldest first.
`
}

func (*statsCmd) SetFlags(f *flag.FlagSet) {}

func (c *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		printMarkdown(renderer.RenderStats(dungeon.MarketStats(a.store.State())))
		return subcommands.ExitSuccess
	})
}
