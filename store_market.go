package dungeon

import (
	"slices"
	"strings"
)

// AddMarketItem adds an item to the catalog. It returns false for an empty name.
func (s *Store) AddMarketItem(name string, grade Grade) (MarketItem, bool) {
	var item MarketItem
	ok := s.mutate(func(st *AppState) ([]event, bool) {
		if strings.TrimSpace(name) == "" {
			return nil, false
		}
		item = MarketItem{ID: newItemID(), Name: EscapeHTML(name), Grade: grade}
		st.MarketItems = appendCopy(st.MarketItems, item)
		return []event{{MarketItemsUpdated, nil}}, true
	})
	return item, ok
}

// RemoveMarketItem removes an item from the catalog. Its inventory and
// trades are kept.
func (s *Store) RemoveMarketItem(id ID) {
	s.mutate(func(st *AppState) ([]event, bool) {
		st.MarketItems = slices.DeleteFunc(slices.Clone(st.MarketItems), func(it MarketItem) bool { return it.ID == id })
		return []event{{MarketItemsUpdated, nil}}, true
	})
}

// TradeRequest describes a trade to record.
type TradeRequest struct {
	Type       TradeType
	ItemID     ID
	Qty        int64
	Price      Money   // unit price
	FeeRate    float64 // sell only
	SupplyType string  // sell only
}

// AddTrade records a trade at the top of the history and applies it to the
// inventory at weighted-average cost. It returns false if the item is not in
// the catalog.
func (s *Store) AddTrade(req TradeRequest) (Trade, bool) {
	var trade Trade
	ok := s.mutate(func(st *AppState) ([]event, bool) {
		item, found := st.Item(req.ItemID)
		if !found {
			return nil, false
		}
		trade = Trade{
			ID:         NewID(),
			Date:       s.now(),
			Type:       req.Type,
			ItemID:     item.ID,
			ItemName:   item.Name,
			Grade:      item.Grade,
			Qty:        req.Qty,
			Price:      req.Price,
			FeeRate:    req.FeeRate,
			SupplyType: req.SupplyType,
		}
		e := st.Inventory[item.ID]
		switch req.Type {
		case Buy:
			e = e.applyBuy(req.Qty, req.Price)
		case Sell:
			q := quoteSell(e, req.Qty, req.Price, req.FeeRate)
			trade.Revenue, trade.NetProfit = q.Revenue, q.NetProfit
			e, _ = e.applySell(req.Qty)
		}
		st.Inventory = cloneInventory(st.Inventory)
		st.Inventory[item.ID] = e
		st.TradeHistory = prepend(trade, st.TradeHistory)
		return []event{{MarketTradeAdded, nil}}, true
	})
	return trade, ok
}

// DeleteTrade removes a trade and reverts its effect on the inventory. It
// returns false for an unknown trade.
func (s *Store) DeleteTrade(id ID) bool {
	return s.mutate(func(st *AppState) ([]event, bool) {
		i := slices.IndexFunc(st.TradeHistory, func(t Trade) bool { return t.ID == id })
		if i < 0 {
			return nil, false
		}
		t := st.TradeHistory[i]
		st.Inventory = cloneInventory(st.Inventory)
		st.Inventory[t.ItemID] = st.Inventory[t.ItemID].revert(t)
		st.TradeHistory = slices.Delete(slices.Clone(st.TradeHistory), i, i+1)
		return []event{{MarketTradeAdded, nil}}, true
	})
}

// BulkDeleteTrades deletes the trades selected by filter and rebuilds the
// inventory by replaying the remaining ones.
func (s *Store) BulkDeleteTrades(filter TradeFilter) {
	s.mutate(func(st *AppState) ([]event, bool) {
		kept := slices.DeleteFunc(slices.Clone(st.TradeHistory), filter.Match)
		if kept == nil {
			kept = []Trade{}
		}
		st.TradeHistory = kept
		st.Inventory = ReplayInventory(st.MarketItems, kept)
		return []event{{MarketTradeAdded, nil}}, true
	})
}

// DeleteInventoryItem removes the stock of an item. Trades are kept.
func (s *Store) DeleteInventoryItem(id ID) {
	s.mutate(func(st *AppState) ([]event, bool) {
		st.Inventory = cloneInventory(st.Inventory)
		delete(st.Inventory, id)
		return []event{{MarketInventoryUpdated, nil}}, true
	})
}

// EditInventoryItem overrides the stock of an item. A qty of 0 or less
// removes it.
func (s *Store) EditInventoryItem(id ID, qty int64, avgPrice Money) {
	s.mutate(func(st *AppState) ([]event, bool) {
		st.Inventory = cloneInventory(st.Inventory)
		if qty <= 0 {
			delete(st.Inventory, id)
		} else {
			st.Inventory[id] = InventoryEntry{Qty: qty, TotalCost: Money(qty) * avgPrice}
		}
		return []event{{MarketInventoryUpdated, nil}}, true
	})
}
