package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/dungeon"
	"github.com/google/subcommands"
)

type tradeCmd struct {
	typ    dungeon.TradeType
	fee    string
	supply string
}

func newTradeCmd(typ dungeon.TradeType) *tradeCmd { return &tradeCmd{typ: typ} }

func (c *tradeCmd) Name() string { return string(c.typ) }
func (c *tradeCmd) Synopsis() string {
	if c.typ == dungeon.Buy {
		return "record the purchase of an item"
	}
	return "record the sale of an item"
}
func (c *tradeCmd) Usage() string {
	if c.typ == dungeon.Buy {
		return `buy <item> <qty> <price>

  Records the purchase of qty units of an item at a unit price. The stock
  of the item grows, valued at weighted average cost.
`
	}
	return `sell [-fee normal|world|none|<rate>] [-supply <type>] <item> <qty> <price>

  Records the sale of qty units of an item at a unit price. The revenue is
  the price net of the fee of the trading post, the net profit is the revenue
  minus the average cost of the units sold. Selling more than the stock sells
  the whole stock.
`
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	if c.typ == dungeon.Sell {
		f.StringVar(&c.fee, "fee", "normal", "Fee of the trading post: normal (10%), world (20%), none or a rate")
		f.StringVar(&c.supply, "supply", "", "Free form origin of the goods")
	}
}

func (c *tradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	qty, price, err := parseQtyPrice(f.Arg(1), f.Arg(2))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	req := dungeon.TradeRequest{Type: c.typ, Qty: qty, Price: price}
	if c.typ == dungeon.Sell {
		if req.FeeRate, err = parseFee(c.fee); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		req.SupplyType = c.supply
	}

	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		st := a.store.State()
		item, ok := findItem(st, f.Arg(0))
		if !ok {
			return subcommands.ExitFailure
		}
		req.ItemID = item.ID
		if stock := st.Inventory[item.ID].Qty; c.typ == dungeon.Sell && qty > stock {
			fmt.Fprintf(os.Stderr, "warning: only %d in stock\n", stock)
		}
		trade, ok := a.store.AddTrade(req)
		if !ok {
			fmt.Fprintln(os.Stderr, "거래를 기록할 수 없습니다.")
			return subcommands.ExitFailure
		}
		if trade.Type == dungeon.Buy {
			fmt.Printf("매입: %s %d개 × %s (%s)\n", f.Arg(0), trade.Qty, trade.Price, trade.ID)
		} else {
			fmt.Printf("판매: %s %d개 × %s, 순수익 %s (%s)\n", f.Arg(0), trade.Qty, trade.Price, trade.NetProfit.SignedString(), trade.ID)
		}
		return subcommands.ExitSuccess
	})
}

// parseQtyPrice parses the positive quantity and the unit price of a trade.
// Free items have a price of 0.
func parseQtyPrice(qty, price string) (int64, dungeon.Money, error) {
	q, err := parseAmount(qty, 1)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid quantity %q, want a positive integer", qty)
	}
	p, err := parseAmount(price, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid price %q, want an integer >= 0", price)
	}
	return q, dungeon.Money(p), nil
}

// parseStock parses the quantity and the average cost of a stock, both at
// least 0.
func parseStock(qty, avg string) (int64, dungeon.Money, error) {
	q, err := parseAmount(qty, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid quantity %q, want an integer >= 0", qty)
	}
	p, err := parseAmount(avg, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid average cost %q, want an integer >= 0", avg)
	}
	return q, dungeon.Money(p), nil
}

// parseAmount parses an integer of at least least, thousands separators are
// allowed.
func parseAmount(s string, least int64) (int64, error) {
	n, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return 0, err
	}
	if n < least {
		return 0, fmt.Errorf("%d is less than %d", n, least)
	}
	return n, nil
}

// parseFee parses the name of a trading post or a rate in [0, 1).
func parseFee(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "normal", "일반":
		return dungeon.NormalFee, nil
	case "world", "월드":
		return dungeon.WorldFee, nil
	case "none", "무수수료":
		return 0, nil
	}
	rate, err := strconv.ParseFloat(s, 64)
	if err != nil || rate < 0 || rate >= 1 {
		return 0, fmt.Errorf("invalid fee %q, want normal, world, none or a rate in [0, 1)", s)
	}
	return rate, nil
}

type previewCmd struct {
	fee string
}

func (*previewCmd) Name() string     { return "preview" }
func (*previewCmd) Synopsis() string { return "compute the outcome of a sale without recording it" }
func (*previewCmd) Usage() string {
	return `preview [-fee normal|world|none|<rate>] <item> <qty> <price>

  Prints the revenue, the cost of goods and the net profit that selling
  would yield given the current stock.
`
}

func (c *previewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fee, "fee", "normal", "Fee of the trading post: normal (10%), world (20%), none or a rate")
}

func (c *previewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	qty, price, err := parseQtyPrice(f.Arg(1), f.Arg(2))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	fee, err := parseFee(c.fee)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		st := a.store.State()
		item, ok := findItem(st, f.Arg(0))
		if !ok {
			return subcommands.ExitFailure
		}
		q := dungeon.SellPreview(st, item.ID, qty, price, fee)
		fmt.Printf("판매 수익: %s\n", q.Revenue)
		fmt.Printf("매입 원가: %s\n", q.CostOfGoods)
		fmt.Printf("순수익: %s\n", q.NetProfit.SignedString())
		return subcommands.ExitSuccess
	})
}

type rmtradeCmd struct{}

func (*rmtradeCmd) Name() string     { return "rmtrade" }
func (*rmtradeCmd) Synopsis() string { return "delete a trade and revert it" }
func (*rmtradeCmd) Usage() string {
	return `rmtrade <id>

  Deletes a trade, see 'dcl trades', and reverts its effect on the stock.
`
}

func (*rmtradeCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmtradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		if !a.store.DeleteTrade(dungeon.ID(f.Arg(0))) {
			fmt.Fprintf(os.Stderr, "no trade %q\n", f.Arg(0))
			return subcommands.ExitFailure
		}
		fmt.Println("거래가 삭제되었습니다.")
		return subcommands.ExitSuccess
	})
}

type cleartradesCmd struct {
	yes bool
}

func (*cleartradesCmd) Name() string     { return "cleartrades" }
func (*cleartradesCmd) Synopsis() string { return "delete trades in bulk" }
func (*cleartradesCmd) Usage() string {
	return `cleartrades [-y] all|buy|sell

  Deletes all the trades, or only the purchases or the sales, and rebuilds
  the stock from the remaining trades.
`
}

func (c *cleartradesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation")
}

func (c *cleartradesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	filter, err := dungeon.ParseTradeFilter(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if !c.yes && !confirm(os.Stdin, os.Stdout, "거래 내역을 삭제합니다.") {
		return subcommands.ExitSuccess
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		before := len(a.store.State().TradeHistory)
		a.store.BulkDeleteTrades(filter)
		fmt.Printf("%d건 삭제되었습니다.\n", before-len(a.store.State().TradeHistory))
		return subcommands.ExitSuccess
	})
}
