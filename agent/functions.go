package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/dungeon"
	"github.com/etnz/dungeon/docs"
	"github.com/etnz/dungeon/renderer"
	"google.golang.org/genai"
)

// Source gives access to the current state.
type Source interface {
	State() *dungeon.AppState
	Now() time.Time
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// view declares a function without parameters returning the markdown
// rendered by render.
func view(name, description string, render func() string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown document.",
			},
		},
		Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			return success(id, name, render())
		},
	}
}

func statusFunc(src Source, loc *time.Location) *Func {
	return view("Status",
		`Status returns the current session: target, number of runs, timer, average and fastest
		times, expected completion time and the list of runs with their gap to the average.`,
		func() string { return renderer.RenderStatus(src.State(), src.Now(), loc) })
}

func historyFunc(src Source, loc *time.Location) *Func {
	return view("History",
		`History returns the archived sessions, most recent first, with their statistics.`,
		func() string { return renderer.RenderHistory("History", src.State().History, loc) })
}

func dailyFunc(src Source, loc *time.Location) *Func {
	return view("DailySummary",
		`DailySummary returns the number of runs and the play time of each day, most recent first.`,
		func() string {
			return renderer.RenderDailySummary(dungeon.DailySummary(src.State().History, loc))
		})
}

func inventoryFunc(src Source) *Func {
	return view("Inventory",
		`Inventory returns the items in stock with their quantity, average cost and total cost.`,
		func() string { return renderer.RenderInventory(src.State()) })
}

func dashboardFunc(src Source, loc *time.Location) *Func {
	return view("Dashboard",
		`Dashboard returns today's and this week's net profit, the value of the stock and the
		number of items in stock.`,
		func() string { return renderer.RenderDashboard(dungeon.Dashboard(src.State(), src.Now(), loc)) })
}

func statsFunc(src Source) *Func {
	return view("Stats",
		`Stats returns, for each traded item, the series of buy and sell prices, oldest first,
		and their averages.`,
		func() string { return renderer.RenderStats(dungeon.MarketStats(src.State())) })
}

func tradesFunc(src Source, loc *time.Location) *Func {
	const name = "Trades"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Trades returns the trades grouped by day, most recent first.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"type": {
						Type:        genai.TypeString,
						Description: "Restrict to the trades of a type: all (default), buy or sell.",
						Enum:        []string{"all", "buy", "sell"},
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the trades of each day.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := stringArg(args, "type", "all")
			if err != nil {
				return failure(id, name, err)
			}
			filter, err := dungeon.ParseTradeFilter(s)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, renderer.RenderTrades(src.State(), filter, loc))
		},
	}
}

func sellPreviewFunc(src Source) *Func {
	const name = "SellPreview"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `SellPreview computes what a sale would yield given the current stock, without
			recording it: revenue after fees, cost of the goods sold and net profit.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"item":  {Type: genai.TypeString, Description: "The ID or the name of the item."},
					"qty":   {Type: genai.TypeInteger, Description: "The quantity to sell."},
					"price": {Type: genai.TypeInteger, Description: "The unit price, in 키나."},
					"fee": {
						Type:        genai.TypeNumber,
						Description: "The fee rate, 0.1 by default.\n\n" + must(docs.GetTopic("fees")),
					},
				},
				Required: []string{"item", "qty", "price"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The outcome of the sale.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			st := src.State()
			ref, err := stringArg(args, "item", "")
			if err != nil {
				return failure(id, name, err)
			}
			item, ok := st.FindItem(ref)
			if !ok {
				return failure(id, name, fmt.Errorf("unknown item %q", ref))
			}
			qty, err := numberArg(args, "qty", 0)
			if err != nil {
				return failure(id, name, err)
			}
			price, err := numberArg(args, "price", 0)
			if err != nil {
				return failure(id, name, err)
			}
			fee, err := numberArg(args, "fee", dungeon.NormalFee)
			if err != nil {
				return failure(id, name, err)
			}
			if qty <= 0 || price <= 0 {
				return failure(id, name, fmt.Errorf("qty and price must be positive"))
			}

			q := dungeon.SellPreview(st, item.ID, int64(qty), dungeon.Money(price), fee)
			stock := st.Inventory[item.ID]
			return success(id, name, fmt.Sprintf("Selling %d %s at %s (fee %s): revenue %s, cost of goods %s, net profit %s. In stock: %d.",
				int64(qty), item.Name, dungeon.Money(price), dungeon.FeeLabel(fee),
				q.Revenue, q.CostOfGoods, q.NetProfit.SignedString(), stock.Qty))
		},
	}
}

func stringArg(args map[string]any, name, def string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return def, fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	return s, nil
}

// numberArg reads a numeric argument, JSON numbers are decoded as float64.
func numberArg(args map[string]any, name string, def float64) (float64, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return def, fmt.Errorf("argument %q is not a number as expected but %T", name, v)
	}
}
