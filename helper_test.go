package dungeon

import (
	"testing"
	"time"
)

// testClock is a manual clock for the store.
type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
func (c *testClock) AdvanceMs(ms int64)      { c.Advance(time.Duration(ms) * time.Millisecond) }

// setupStore creates a store on a memory storage, with a manual clock set
// on wednesday 2025-09-10 at 20:00 UTC and a debounce long enough that
// only Flush persists.
func setupStore(t *testing.T) (*Store, *testClock, *MemoryStorage) {
	t.Helper()
	clock := &testClock{t: time.Date(2025, time.September, 10, 20, 0, 0, 0, time.UTC)}
	mem := NewMemoryStorage()
	s := NewStore(Options{Storage: mem, Now: clock.Now, Debounce: time.Hour})
	return s, clock, mem
}

// recorder collects the events published by a store.
type recorder struct {
	types []EventType
	data  []EventData
}

func (r *recorder) handler(t EventType) Handler {
	return func(d EventData) {
		r.types = append(r.types, t)
		r.data = append(r.data, d)
	}
}

// record subscribes r to every event of s.
func (r *recorder) record(s *Store) *recorder {
	for _, t := range []EventType{
		TargetUpdated, TimerStarted, TimerStopped, RecordAdded, RecordUndone, RecordEdited,
		AppReset, SessionSaved, HistoryDeleted, HistoryCleared, DataImported,
		MarketItemsUpdated, MarketTradeAdded, MarketInventoryUpdated,
	} {
		s.Subscribe(t, r.handler(t))
	}
	return r
}

// run records one run of ms milliseconds.
func run(t *testing.T, s *Store, clock *testClock, ms int64, memo string) {
	t.Helper()
	if !s.ToggleTimer() {
		t.Fatalf("ToggleTimer() = false, want true")
	}
	clock.AdvanceMs(ms)
	if !s.RecordRun(memo) {
		t.Fatalf("RecordRun() = false, want true")
	}
}

// addItem adds an item to the catalog.
func addItem(t *testing.T, s *Store, name string, grade Grade) MarketItem {
	t.Helper()
	item, ok := s.AddMarketItem(name, grade)
	if !ok {
		t.Fatalf("AddMarketItem(%q) = false, want true", name)
	}
	return item
}
