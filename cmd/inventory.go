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

type inventoryCmd struct{}

func (*inventoryCmd) Name() string     { return "inventory" }
func (*inventoryCmd) Synopsis() string { return "display the stock" }
func (*inventoryCmd) Usage() string {
	return `inventory

  Displays the items in stock with their quantity and average cost.
`
}

func (*inventoryCmd) SetFlags(f *flag.FlagSet) {}

func (c *inventoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		printMarkdown(renderer.RenderInventory(a.store.State()))
		return subcommands.ExitSuccess
	})
}

type invCmd struct{}

func (*invCmd) Name() string     { return "inv" }
func (*invCmd) Synopsis() string { return "correct or clear the stock of an item" }
func (*invCmd) Usage() string {
	return `inv edit <item> <qty> <avg>
inv rm <item>

  Overrides the stock of an item with a quantity and an average cost, or
  clears it. A quantity of 0 clears it too. Trades are left untouched.
`
}

func (*invCmd) SetFlags(f *flag.FlagSet) {}

func (c *invCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	switch {
	case len(args) == 4 && args[0] == "edit":
		qty, avg, err := parseStock(args[2], args[3])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		return withApp(ctx, func(a *app) subcommands.ExitStatus {
			item, ok := findItem(a.store.State(), args[1])
			if !ok {
				return subcommands.ExitFailure
			}
			if e, ok := editStock(a.store, item.ID, qty, avg); ok {
				fmt.Printf("창고 수정: %s %d개, 평단가 %s\n", args[1], e.Qty, e.AvgCost())
			} else {
				fmt.Printf("창고 삭제: %s\n", args[1])
			}
			return subcommands.ExitSuccess
		})
	case len(args) == 2 && args[0] == "rm":
		return withApp(ctx, func(a *app) subcommands.ExitStatus {
			item, ok := findItem(a.store.State(), args[1])
			if !ok {
				return subcommands.ExitFailure
			}
			a.store.DeleteInventoryItem(item.ID)
			fmt.Printf("창고 삭제: %s\n", args[1])
			return subcommands.ExitSuccess
		})
	default:
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
}

// editStock overrides the stock of item and returns it, false once cleared.
func editStock(s *dungeon.Store, item dungeon.ID, qty int64, avg dungeon.Money) (dungeon.InventoryEntry, bool) {
	s.EditInventoryItem(item, qty, avg)
	e, ok := s.State().Inventory[item]
	return e, ok
}
