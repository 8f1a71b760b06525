package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/etnz/dungeon"
	"github.com/etnz/dungeon/date"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.September, 10, 20, 0, 0, 0, time.UTC)

// newTestApp returns an app on a memory storage with a frozen clock.
func newTestApp(t *testing.T) *app {
	t.Helper()
	a := &app{
		cfg: &Config{DataDir: t.TempDir(), Backend: BackendFile, LogLevel: "info"},
		log: zerolog.Nop(),
		loc: time.UTC,
	}
	a.store = dungeon.NewStore(dungeon.Options{
		Now:      func() time.Time { return testNow },
		Debounce: time.Hour,
		Logger:   &a.log,
	})
	return a
}

func TestPlay(t *testing.T) {
	a := newTestApp(t)
	a.store.SetTargetRunsInt(2)

	var out bytes.Buffer
	in := strings.NewReader("s\nn first\ns\nn\nn\nu\ne 1 1:05.00\nx\nw\nq\n")
	status := (&playCmd{refresh: time.Hour}).run(a, in, &out)
	require.Equal(t, subcommands.ExitSuccess, status)

	st := a.store.State()
	require.Len(t, st.History, 1)
	assert.Equal(t, 1, st.History[0].RunCount)
	assert.Equal(t, []dungeon.RunRecord{{Time: 65000, Memo: "first"}}, st.History[0].Records)
	assert.Equal(t, 0, st.CurrentRunCount)

	assert.Contains(t, out.String(), "1판 00:00.00")
	assert.Contains(t, out.String(), "2판 00:00.00")
	assert.Contains(t, out.String(), "🎉 목표 달성!")
	assert.Contains(t, out.String(), "타이머가 멈춰 있습니다.")
	assert.Contains(t, out.String(), "1판 기록 수정: 01:05.00")
	assert.Contains(t, out.String(), `unknown command "x"`)
	assert.Contains(t, out.String(), "세션 저장: 1판")
}

func TestPlay_QuitStopsTimer(t *testing.T) {
	a := newTestApp(t)
	var out bytes.Buffer
	status := (&playCmd{refresh: time.Millisecond}).run(a, strings.NewReader("s\n"), &out)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.False(t, a.store.State().IsRunning)
}

func TestEditRecord(t *testing.T) {
	a := newTestApp(t)
	require.True(t, a.store.ToggleTimer())
	require.True(t, a.store.RecordRun(""))

	assert.Error(t, editRecord(a.store, []string{"1"}))
	assert.Error(t, editRecord(a.store, []string{"one", "1:00"}))
	assert.Error(t, editRecord(a.store, []string{"1", "60"}))
	assert.Error(t, editRecord(a.store, []string{"2", "1:00"}))
	require.NoError(t, editRecord(a.store, []string{"1", "1:00.5"}))
	assert.Equal(t, int64(60500), a.store.State().RunRecords[0].Time)
}

func TestParseFee(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"normal", dungeon.NormalFee},
		{"World", dungeon.WorldFee},
		{"월드", dungeon.WorldFee},
		{"none", 0},
		{"0.15", 0.15},
	}
	for _, tt := range tests {
		got, err := parseFee(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	for _, in := range []string{"", "1", "-0.1", "free"} {
		_, err := parseFee(in)
		assert.Error(t, err, in)
	}
}

func TestParseQtyPrice(t *testing.T) {
	qty, price, err := parseQtyPrice("1,000", "12,500")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), qty)
	assert.Equal(t, dungeon.Money(12500), price)

	_, price, err = parseQtyPrice("3", "0")
	require.NoError(t, err, "free items")
	assert.Equal(t, dungeon.Money(0), price)

	for _, args := range [][2]string{{"0", "1"}, {"1", "-1"}, {"x", "1"}, {"1", "1.5"}} {
		_, _, err := parseQtyPrice(args[0], args[1])
		assert.Error(t, err, "%v", args)
	}
}

func TestParseStock(t *testing.T) {
	for _, args := range [][2]string{{"0", "100"}, {"5", "0"}, {"1,000", "12,500"}} {
		_, _, err := parseStock(args[0], args[1])
		assert.NoError(t, err, "%v", args)
	}
	for _, args := range [][2]string{{"-1", "100"}, {"5", "-1"}, {"x", "1"}} {
		_, _, err := parseStock(args[0], args[1])
		assert.Error(t, err, "%v", args)
	}
}

func TestEditStock(t *testing.T) {
	a := newTestApp(t)
	item, ok := a.store.AddMarketItem("Ore", dungeon.White)
	require.True(t, ok)
	_, ok = a.store.AddTrade(dungeon.TradeRequest{Type: dungeon.Buy, ItemID: item.ID, Qty: 6, Price: 100})
	require.True(t, ok)

	qty, avg, err := parseStock("5", "0")
	require.NoError(t, err)
	e, ok := editStock(a.store, item.ID, qty, avg)
	require.True(t, ok)
	assert.Equal(t, dungeon.InventoryEntry{Qty: 5}, e)

	qty, avg, err = parseStock("0", "100")
	require.NoError(t, err)
	_, ok = editStock(a.store, item.ID, qty, avg)
	assert.False(t, ok)
	assert.NotContains(t, a.store.State().Inventory, item.ID)
	assert.Len(t, a.store.State().TradeHistory, 1, "trades are kept")
}

func TestSessionsIn(t *testing.T) {
	day := func(d int) *time.Time {
		t := time.Date(2025, time.September, d, 23, 30, 0, 0, time.UTC)
		return &t
	}
	sessions := []dungeon.Session{
		{ID: "a", StartTime: day(10)},
		{ID: "b", StartTime: day(7)},
		{ID: "c", EndTime: *day(8)},
	}
	week := date.NewRange(date.New(2025, time.September, 10), date.Weekly)

	var ids []dungeon.ID
	for _, s := range sessionsIn(sessions, week, time.UTC) {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []dungeon.ID{"a", "c"}, ids)

	// 2025-09-07 23:30 UTC is monday 08:30 in Seoul.
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	assert.Len(t, sessionsIn(sessions, week, seoul), 3)
}

func TestQuery(t *testing.T) {
	a := newTestApp(t)
	item, ok := a.store.AddMarketItem("Ore", dungeon.White)
	require.True(t, ok)
	_, ok = a.store.AddTrade(dungeon.TradeRequest{Type: dungeon.Buy, ItemID: item.ID, Qty: 10, Price: 100})
	require.True(t, ok)
	_, ok = a.store.AddTrade(dungeon.TradeRequest{Type: dungeon.Sell, ItemID: item.ID, Qty: 4, Price: 150, FeeRate: 0.1})
	require.True(t, ok)

	out, err := query(a.store.State(), `$.tradeHistory[?(@.type == "sell")].netProfit`)
	require.NoError(t, err)
	var got []float64
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, []float64{140}, got)

	out, err = query(a.store.State(), `$.targetRuns`)
	require.NoError(t, err)
	assert.Equal(t, "10", string(out))

	_, err = query(a.store.State(), `$.[`)
	assert.Error(t, err)
}

func TestConfirm(t *testing.T) {
	var w bytes.Buffer
	assert.True(t, confirm(strings.NewReader("y\n"), &w, "delete?"))
	assert.True(t, confirm(strings.NewReader("YES\n"), &w, "delete?"))
	assert.False(t, confirm(strings.NewReader("\n"), &w, "delete?"))
	assert.False(t, confirm(strings.NewReader(""), &w, "delete?"))
}

func TestApp_DataPath(t *testing.T) {
	a := &app{cfg: &Config{DataDir: "/data", Backend: BackendFile}}
	assert.Equal(t, "/data/dungeonCounterData.json", a.dataPath())
	a.cfg.Backend = BackendSQLite
	assert.Equal(t, "/data/dungeon.db", a.dataPath())
}

func TestApp_Clock(t *testing.T) {
	a := &app{loc: time.UTC}
	t.Setenv(EnvTestingNow, "2006-01-02 15:04:05")
	now, err := a.clock()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC), now())

	t.Setenv(EnvTestingNow, "yesterday")
	_, err = a.clock()
	assert.Error(t, err)
}
