package dungeon

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/dungeon/date"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RunStats returns the mean and the minimum time of records, zeros if there
// is none.
func RunStats(records []RunRecord) (avg float64, fastest int64) {
	if len(records) == 0 {
		return 0, 0
	}
	times := make([]float64, len(records))
	for i, r := range records {
		times[i] = float64(r.Time)
	}
	return stat.Mean(times, nil), int64(floats.Min(times))
}

// ETA returns the expected time at which the target is reached, running at
// the average pace from now. It returns false without any run or once the
// target is reached.
func ETA(st *AppState, now time.Time) (time.Time, bool) {
	if len(st.RunRecords) == 0 || st.CurrentRunCount >= st.TargetRuns {
		return time.Time{}, false
	}
	avg, _ := RunStats(st.RunRecords)
	remaining := float64(st.TargetRuns - st.CurrentRunCount)
	return now.Add(time.Duration(avg * remaining * float64(time.Millisecond))), true
}

// ShareText fills the share template of st with the current progress.
func ShareText(st *AppState) string {
	avg, fastest := RunStats(st.RunRecords)
	r := strings.NewReplacer(
		"{목표}", strconv.Itoa(st.TargetRuns),
		"{현재}", strconv.Itoa(st.CurrentRunCount),
		"{평균}", FormatShortTime(avg),
		"{최고}", FormatShortTime(float64(fastest)),
	)
	return r.Replace(st.ShareTemplate)
}

// DayTotal is the activity of a day.
type DayTotal struct {
	Day      date.Date
	Runs     int
	PlayTime int64 // ms
}

// Label returns the day as "2025-01-15 (수)".
func (d DayTotal) Label() string {
	return d.Day.String() + " (" + d.Day.KoreanWeekday() + ")"
}

// DailySummary totals the sessions of history per day they started on in
// loc, most recent day first.
func DailySummary(history []Session, loc *time.Location) []DayTotal {
	byDay := make(map[date.Date]*DayTotal)
	for _, h := range history {
		start := h.EndTime
		if h.StartTime != nil {
			start = *h.StartTime
		}
		day := date.Of(start.In(loc))
		t, ok := byDay[day]
		if !ok {
			t = &DayTotal{Day: day}
			byDay[day] = t
		}
		t.Runs += h.RunCount
		t.PlayTime += h.TotalPlayTime()
	}
	days := make([]DayTotal, 0, len(byDay))
	for _, t := range byDay {
		days = append(days, *t)
	}
	slices.SortFunc(days, func(a, b DayTotal) int {
		switch {
		case a.Day.After(b.Day):
			return -1
		case a.Day.Before(b.Day):
			return 1
		default:
			return 0
		}
	})
	return days
}

// DashboardReport summarizes the trading activity.
type DashboardReport struct {
	Today          date.Date
	Week           date.Range
	DailyProfit    Money // net profit of today's sells
	WeeklyProfit   Money // net profit of this week's sells
	InventoryValue Money // cost of the stock
	Items          int   // catalog size
	InStock        int   // items with a positive stock
}

// Dashboard computes the trading summary at now, days are seen in loc.
// Weeks start on monday.
func Dashboard(st *AppState, now time.Time, loc *time.Location) DashboardReport {
	today := date.Of(now.In(loc))
	r := DashboardReport{
		Today: today,
		Week:  date.NewRange(today, date.Weekly),
		Items: len(st.MarketItems),
	}
	for _, t := range st.TradeHistory {
		if t.Type != Sell {
			continue
		}
		day := date.Of(t.Date.In(loc))
		if day.Before(r.Week.From) {
			continue
		}
		r.WeeklyProfit += t.NetProfit
		if !day.Before(today) {
			r.DailyProfit += t.NetProfit
		}
	}
	for _, e := range st.Inventory {
		if e.TotalCost > 0 {
			r.InventoryValue += e.TotalCost
		}
		if e.Qty > 0 {
			r.InStock++
		}
	}
	return r
}

// ItemStats are the price series of an item, oldest first.
type ItemStats struct {
	Item       MarketItem
	BuyPrices  []Money
	SellPrices []Money
	AvgBuy     Money // floored
	AvgSell    Money // floored
}

// MarketStats returns the price statistics of the catalog items that have
// been traded, in catalog order.
func MarketStats(st *AppState) []ItemStats {
	trades := slices.Clone(st.TradeHistory)
	slices.SortStableFunc(trades, func(a, b Trade) int { return a.Date.Compare(b.Date) })

	index := make(map[ID]int, len(st.MarketItems))
	all := make([]ItemStats, len(st.MarketItems))
	for i, it := range st.MarketItems {
		index[it.ID] = i
		all[i].Item = it
	}
	for _, t := range trades {
		i, ok := index[t.ItemID]
		if !ok {
			continue
		}
		if t.Type == Buy {
			all[i].BuyPrices = append(all[i].BuyPrices, t.Price)
		} else {
			all[i].SellPrices = append(all[i].SellPrices, t.Price)
		}
	}
	var active []ItemStats
	for _, s := range all {
		if len(s.BuyPrices) == 0 && len(s.SellPrices) == 0 {
			continue
		}
		s.AvgBuy = averagePrice(s.BuyPrices)
		s.AvgSell = averagePrice(s.SellPrices)
		active = append(active, s)
	}
	return active
}

func averagePrice(prices []Money) Money {
	if len(prices) == 0 {
		return 0
	}
	var sum Money
	for _, p := range prices {
		sum += p
	}
	return floorDiv(sum.decimal(), qtyDecimal(int64(len(prices))))
}

// SellPreview returns what selling qty units of item at price would yield,
// given the current stock.
func SellPreview(st *AppState, item ID, qty int64, price Money, feeRate float64) SellQuote {
	return quoteSell(st.Inventory[item], qty, price, feeRate)
}

// BackupFileName returns the name of an export file made at now.
func BackupFileName(now time.Time, loc *time.Location) string {
	return "dungeon_backup_" + now.In(loc).Format("20060102_1504") + ".json"
}

// Stock is a positive stock of a catalog item.
type Stock struct {
	Item MarketItem
	InventoryEntry
}

// Stocks returns the positive stocks of catalog items, in catalog order.
func Stocks(st *AppState) []Stock {
	var list []Stock
	for _, it := range st.MarketItems {
		if e, ok := st.Inventory[it.ID]; ok && e.Qty > 0 {
			list = append(list, Stock{Item: it, InventoryEntry: e})
		}
	}
	return list
}

// ItemsByGrade returns the catalog items of each grade, in catalog order.
func ItemsByGrade(st *AppState) map[Grade][]MarketItem {
	groups := make(map[Grade][]MarketItem)
	for _, it := range st.MarketItems {
		groups[it.Grade] = append(groups[it.Grade], it)
	}
	return groups
}

// TradeDay is the trades of a day, most recent first.
type TradeDay struct {
	Day    date.Date
	Trades []Trade
}

// TradesByDay groups the trades selected by filter by their day in loc, most
// recent day first.
func TradesByDay(trades []Trade, filter TradeFilter, loc *time.Location) []TradeDay {
	var days []TradeDay
	index := make(map[date.Date]int)
	for _, t := range trades {
		if !filter.Match(t) {
			continue
		}
		day := date.Of(t.Date.In(loc))
		i, ok := index[day]
		if !ok {
			i = len(days)
			index[day] = i
			days = append(days, TradeDay{Day: day})
		}
		days[i].Trades = append(days[i].Trades, t)
	}
	slices.SortStableFunc(days, func(a, b TradeDay) int {
		return cmp.Compare(b.Day.String(), a.Day.String())
	})
	return days
}
