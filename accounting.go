package dungeon

import (
	"slices"

	"github.com/shopspring/decimal"
)

// This file holds the weighted-average cost accounting of the inventory.
// All arithmetic is exact, results are floored toward minus infinity.

func qtyDecimal(q int64) decimal.Decimal { return decimal.NewFromInt(q) }

// floorDiv returns floor(num / den), den must not be zero.
func floorDiv(num, den decimal.Decimal) Money {
	q, r := num.QuoRem(den, 0)
	if !r.IsZero() && r.Sign() != den.Sign() {
		q = q.Sub(decimal.NewFromInt(1))
	}
	return Money(q.IntPart())
}

// sellRevenue returns floor(qty * price * (1 - feeRate)).
func sellRevenue(qty int64, price Money, feeRate float64) Money {
	net := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(feeRate))
	return Money(qtyDecimal(qty).Mul(price.decimal()).Mul(net).Floor().IntPart())
}

// costOfGoods returns floor(qty * avgCost) of a sell out of e, where avgCost is
// e.TotalCost/e.Qty, or 0 for an empty stock.
func costOfGoods(e InventoryEntry, qty int64) Money {
	if e.Qty <= 0 {
		return 0
	}
	return floorDiv(qtyDecimal(qty).Mul(e.TotalCost.decimal()), qtyDecimal(e.Qty))
}

// clamp resets a stock sold past zero.
func (e InventoryEntry) clamp() InventoryEntry {
	if e.Qty <= 0 {
		return InventoryEntry{}
	}
	return e
}

// applyBuy adds qty units bought at price.
func (e InventoryEntry) applyBuy(qty int64, price Money) InventoryEntry {
	e.Qty += qty
	e.TotalCost += Money(qty) * price
	return e
}

// applySell removes qty units at their average cost and returns the released cost.
func (e InventoryEntry) applySell(qty int64) (InventoryEntry, Money) {
	cost := costOfGoods(e, qty)
	e.Qty -= qty
	e.TotalCost -= cost
	return e.clamp(), cost
}

// revert undoes the effect of t on the stock.
func (e InventoryEntry) revert(t Trade) InventoryEntry {
	switch t.Type {
	case Buy:
		e.Qty -= t.Qty
		e.TotalCost -= Money(t.Qty) * t.Price
		return e.clamp()
	case Sell:
		e.Qty += t.Qty
		e.TotalCost += t.CostOfGoods()
	}
	return e
}

// SellQuote is the outcome of a sell at the current average cost.
type SellQuote struct {
	Revenue     Money
	CostOfGoods Money
	NetProfit   Money
}

// quoteSell computes the outcome of selling qty units at price out of e.
func quoteSell(e InventoryEntry, qty int64, price Money, feeRate float64) SellQuote {
	revenue := sellRevenue(qty, price, feeRate)
	cost := costOfGoods(e, qty)
	return SellQuote{Revenue: revenue, CostOfGoods: cost, NetProfit: revenue - cost}
}

// ReplayInventory rebuilds the inventory from scratch: a zero entry for every
// catalog item, then the trades (most recent first, as in the history)
// applied in chronological order.
func ReplayInventory(items []MarketItem, trades []Trade) map[ID]InventoryEntry {
	inv := make(map[ID]InventoryEntry, len(items))
	for _, it := range items {
		inv[it.ID] = InventoryEntry{}
	}
	for _, t := range slices.Backward(trades) {
		e := inv[t.ItemID]
		switch t.Type {
		case Buy:
			e = e.applyBuy(t.Qty, t.Price)
		case Sell:
			e, _ = e.applySell(t.Qty)
		}
		inv[t.ItemID] = e
	}
	return inv
}
