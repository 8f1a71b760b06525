package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/dungeon"
	"github.com/etnz/dungeon/renderer"
	"github.com/google/subcommands"
)

type itemCmd struct{}

func (*itemCmd) Name() string     { return "item" }
func (*itemCmd) Synopsis() string { return "add or remove an item of the catalog" }
func (*itemCmd) Usage() string {
	return `item add <name> <grade>
item rm <item>

  Adds an item to the catalog of tradable items, with a grade among white
  (일반), green (고급) and blue (희귀). Removing an item keeps its trades.
`
}

func (*itemCmd) SetFlags(f *flag.FlagSet) {}

func (c *itemCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	switch {
	case len(args) >= 3 && args[0] == "add":
		grade, err := dungeon.ParseGrade(args[len(args)-1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		name := strings.Join(args[1:len(args)-1], " ")
		return withApp(ctx, func(a *app) subcommands.ExitStatus {
			item, ok := a.store.AddMarketItem(name, grade)
			if !ok {
				fmt.Fprintln(os.Stderr, "품목 이름이 비어있습니다.")
				return subcommands.ExitFailure
			}
			fmt.Printf("품목 추가: %s [%s] %s\n", name, grade.Label(), item.ID)
			return subcommands.ExitSuccess
		})
	case len(args) == 2 && args[0] == "rm":
		return withApp(ctx, func(a *app) subcommands.ExitStatus {
			item, ok := findItem(a.store.State(), args[1])
			if !ok {
				return subcommands.ExitFailure
			}
			a.store.RemoveMarketItem(item.ID)
			fmt.Printf("품목 삭제: %s\n", args[1])
			return subcommands.ExitSuccess
		})
	default:
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
}

type itemsCmd struct{}

func (*itemsCmd) Name() string     { return "items" }
func (*itemsCmd) Synopsis() string { return "display the catalog" }
func (*itemsCmd) Usage() string {
	return `items

  Displays the catalog of tradable items grouped by grade.
`
}

func (*itemsCmd) SetFlags(f *flag.FlagSet) {}

func (c *itemsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		printMarkdown(renderer.RenderItems(a.store.State()))
		return subcommands.ExitSuccess
	})
}
