package dungeon

import (
	"maps"
	"slices"
	"time"
)

// Default values of a fresh state.
const (
	DefaultTargetRuns    = 10
	DefaultShareTemplate = "🔥오늘 도태 {현재}/{목표} 완! (평균 {평균} / 최고 {최고})"
)

// RunRecord is one completed run.
type RunRecord struct {
	Time int64  `json:"time"` // duration in milliseconds
	Memo string `json:"memo"` // HTML escaped
}

// Session is an archived batch of runs with its statistics.
type Session struct {
	ID           ID          `json:"id"`
	StartTime    *time.Time  `json:"startTime"`
	EndTime      time.Time   `json:"endTime"`
	Duration     int64       `json:"duration"`     // wall-clock span in ms
	PlayDuration int64       `json:"playDuration"` // sum of the record times in ms
	TargetRuns   int         `json:"targetRuns"`
	RunCount     int         `json:"runCount"`
	AvgTime      float64     `json:"avgTime"`
	FastestTime  int64       `json:"fastestTime"`
	Records      []RunRecord `json:"records"`
}

// TotalPlayTime returns the play duration, computed from the records when
// the session predates its recording.
func (s Session) TotalPlayTime() int64 {
	if s.PlayDuration != 0 {
		return s.PlayDuration
	}
	return sumTimes(s.Records)
}

// MarketItem is an entry of the catalog of tradable items.
type MarketItem struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"` // HTML escaped
	Grade Grade  `json:"grade"`
}

// InventoryEntry is the stock of one item valued at its weighted-average cost.
//
// Qty == 0 implies TotalCost == 0.
type InventoryEntry struct {
	Qty       int64 `json:"qty"`
	TotalCost Money `json:"totalCost"`
}

// AvgCost returns the floored average unit cost, 0 for an empty stock.
func (e InventoryEntry) AvgCost() Money {
	if e.Qty <= 0 {
		return 0
	}
	return floorDiv(e.TotalCost.decimal(), qtyDecimal(e.Qty))
}

// Trade is one buy or sell of an item.
//
// ItemName and Grade are copies of the item at the time of the trade.
// Revenue and NetProfit are only set for sells.
type Trade struct {
	ID         ID        `json:"id"`
	Date       time.Time `json:"date"`
	Type       TradeType `json:"type"`
	ItemID     ID        `json:"itemId"`
	ItemName   string    `json:"itemName"`
	Grade      Grade     `json:"grade"`
	Qty        int64     `json:"qty"`
	Price      Money     `json:"price"` // unit price
	FeeRate    float64   `json:"feeRate"`
	SupplyType string    `json:"supplyType"`
	Revenue    Money     `json:"revenue"`
	NetProfit  Money     `json:"netProfit"`
}

// CostOfGoods returns the inventory cost released by a sell.
func (t Trade) CostOfGoods() Money { return t.Revenue - t.NetProfit }

// AppState is the whole state of the application.
//
// The persisted document is made of every field but the live timer ones.
// A state held by a reader is a snapshot: it must not be modified.
type AppState struct {
	TargetRuns       int                   `json:"targetRuns"`
	ShareTemplate    string                `json:"shareTemplate"`
	CurrentRunCount  int                   `json:"currentRunCount"`
	SessionStartTime *time.Time            `json:"sessionStartTime"`
	RunRecords       []RunRecord           `json:"runRecords"`
	History          []Session             `json:"history"`
	MarketItems      []MarketItem          `json:"marketItems"`
	Inventory        map[ID]InventoryEntry `json:"inventory"`
	TradeHistory     []Trade               `json:"tradeHistory"`

	IsRunning   bool      `json:"-"`
	StartTime   time.Time `json:"-"` // start of the current timing lap
	ElapsedTime int64     `json:"-"` // ms accumulated before StartTime
}

// DefaultState returns a fresh state.
func DefaultState() *AppState {
	return &AppState{
		TargetRuns:    DefaultTargetRuns,
		ShareTemplate: DefaultShareTemplate,
		RunRecords:    []RunRecord{},
		History:       []Session{},
		MarketItems:   []MarketItem{},
		Inventory:     map[ID]InventoryEntry{},
		TradeHistory:  []Trade{},
	}
}

// clone returns a shallow copy of the state.
//
// Collections are shared with the receiver: a mutation must replace a
// collection before changing it.
func (s *AppState) clone() *AppState {
	c := *s
	return &c
}

// Item returns the catalog item with the given id.
func (s *AppState) Item(id ID) (MarketItem, bool) {
	for _, it := range s.MarketItems {
		if it.ID == id {
			return it, true
		}
	}
	return MarketItem{}, false
}

// FindItem returns the catalog item designated by its id or by its exact name.
func (s *AppState) FindItem(ref string) (MarketItem, bool) {
	if it, ok := s.Item(ID(ref)); ok {
		return it, true
	}
	escaped := EscapeHTML(ref)
	for _, it := range s.MarketItems {
		if it.Name == escaped {
			return it, true
		}
	}
	return MarketItem{}, false
}

// Elapsed returns the live duration of the current run at now.
func (s *AppState) Elapsed(now time.Time) int64 {
	if !s.IsRunning {
		return s.ElapsedTime
	}
	return s.ElapsedTime + now.Sub(s.StartTime).Milliseconds()
}

// IsComplete reports whether the target number of runs is reached.
func (s *AppState) IsComplete() bool { return s.CurrentRunCount >= s.TargetRuns }

func prepend[T any](v T, s []T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, v)
	return append(out, s...)
}

// appendCopy appends to a copy of s, leaving s's backing array untouched.
func appendCopy[T any](s []T, v ...T) []T {
	out := make([]T, 0, len(s)+len(v))
	out = append(out, s...)
	return append(out, v...)
}

func cloneInventory(inv map[ID]InventoryEntry) map[ID]InventoryEntry {
	if inv == nil {
		return map[ID]InventoryEntry{}
	}
	return maps.Clone(inv)
}

func cloneRecords(r []RunRecord) []RunRecord { return slices.Clone(r) }
