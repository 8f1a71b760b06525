package dungeon

import (
	"fmt"
	"strings"
)

// TradeType is the direction of a trade.
type TradeType string

const (
	Buy  TradeType = "buy"
	Sell TradeType = "sell"
)

// ParseTradeType parses "buy" or "sell".
func ParseTradeType(s string) (TradeType, error) {
	switch TradeType(strings.ToLower(s)) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown trade type %q, want buy or sell", s)
	}
}

// TradeFilter selects trades by type.
//
// Used by [Store.BulkDeleteTrades] it designates the trades to delete.
type TradeFilter string

const (
	AllTrades  TradeFilter = "all"
	BuyTrades  TradeFilter = "buy"
	SellTrades TradeFilter = "sell"
)

// ParseTradeFilter parses "all", "buy" or "sell".
func ParseTradeFilter(s string) (TradeFilter, error) {
	switch TradeFilter(strings.ToLower(s)) {
	case AllTrades:
		return AllTrades, nil
	case BuyTrades:
		return BuyTrades, nil
	case SellTrades:
		return SellTrades, nil
	default:
		return "", fmt.Errorf("unknown trade filter %q, want all, buy or sell", s)
	}
}

// Match reports whether the trade t is selected by the filter.
func (f TradeFilter) Match(t Trade) bool {
	switch f {
	case AllTrades:
		return true
	case BuyTrades:
		return t.Type == Buy
	case SellTrades:
		return t.Type == Sell
	default:
		return false
	}
}

// Well known fee rates of the trading posts.
const (
	NormalFee = 0.1
	WorldFee  = 0.2
)

// FeeLabel returns the korean name of the trading post charging rate.
func FeeLabel(rate float64) string {
	switch rate {
	case NormalFee:
		return "일반"
	case WorldFee:
		return "월드"
	default:
		return "무수수료"
	}
}
