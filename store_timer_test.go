package dungeon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetTargetRuns(t *testing.T) {
	s, _, _ := setupStore(t)
	rec := new(recorder).record(s)

	tests := []struct {
		in   string
		want int
	}{
		{"5", 5},
		{"12 runs", 12},
		{"0", 1},
		{"-3", 1},
		{"abc", 1},
		{"", 1},
	}
	for _, tt := range tests {
		s.SetTargetRuns(tt.in)
		assert.Equal(t, tt.want, s.State().TargetRuns, "SetTargetRuns(%q)", tt.in)
		assert.Equal(t, TargetUpdatedData{Target: tt.want}, rec.data[len(rec.data)-1])
	}
	assert.Len(t, rec.types, len(tests))
}

func TestStore_SetShareTemplate(t *testing.T) {
	s, _, mem := setupStore(t)
	rec := new(recorder).record(s)

	s.SetShareTemplate("{현재}/{목표}")

	assert.Equal(t, "{현재}/{목표}", s.State().ShareTemplate)
	assert.Empty(t, rec.types, "no event expected")
	require.NoError(t, s.Flush(t.Context()))
	assert.Equal(t, 1, mem.Writes())
}

func TestStore_ToggleTimer(t *testing.T) {
	s, clock, _ := setupStore(t)
	rec := new(recorder).record(s)
	start := clock.Now()

	require.True(t, s.ToggleTimer())
	st := s.State()
	assert.True(t, st.IsRunning)
	assert.Equal(t, start, st.StartTime)
	require.NotNil(t, st.SessionStartTime)
	assert.Equal(t, start, *st.SessionStartTime)

	clock.AdvanceMs(1500)
	require.True(t, s.ToggleTimer())
	st = s.State()
	assert.False(t, st.IsRunning)
	assert.Equal(t, int64(1500), st.ElapsedTime)

	// restarting does not move the session start.
	clock.AdvanceMs(10000)
	require.True(t, s.ToggleTimer())
	assert.Equal(t, start, *s.State().SessionStartTime)
	clock.AdvanceMs(500)
	assert.Equal(t, int64(2000), s.State().Elapsed(clock.Now()))

	assert.Equal(t, []EventType{TimerStarted, TimerStopped, TimerStarted}, rec.types)
	assert.Equal(t, Signal{Type: TimerStopped}, rec.data[1])
}

func TestStore_ToggleTimer_TargetReached(t *testing.T) {
	s, clock, _ := setupStore(t)
	s.SetTargetRunsInt(1)
	run(t, s, clock, 1000, "")
	rec := new(recorder).record(s)
	before := s.State()

	assert.False(t, s.ToggleTimer())
	assert.Same(t, before, s.State(), "state must not change")
	assert.Empty(t, rec.types)
}

func TestStore_RecordRun(t *testing.T) {
	s, clock, _ := setupStore(t)

	assert.False(t, s.RecordRun("stopped"), "recording while stopped is a no-op")

	require.True(t, s.ToggleTimer())
	clock.AdvanceMs(1000)
	require.True(t, s.ToggleTimer()) // pause
	clock.AdvanceMs(60000)
	require.True(t, s.ToggleTimer())
	clock.AdvanceMs(234)

	rec := new(recorder).record(s)
	require.True(t, s.RecordRun("<b>boss</b>"))

	st := s.State()
	require.Len(t, st.RunRecords, 1)
	assert.Equal(t, RunRecord{Time: 1234, Memo: "&lt;b&gt;boss&lt;/b&gt;"}, st.RunRecords[0])
	assert.Equal(t, 1, st.CurrentRunCount)
	assert.False(t, st.IsRunning)
	assert.Zero(t, st.ElapsedTime)
	assert.Equal(t, clock.Now(), st.StartTime)
	assert.Equal(t, []EventType{RecordAdded}, rec.types)
	assert.Equal(t, RecordAddedData{Record: st.RunRecords[0], Count: 1, IsComplete: false}, rec.data[0])
}

func TestStore_ThreeRunsScenario(t *testing.T) {
	s, clock, _ := setupStore(t)
	s.SetTargetRunsInt(3)
	rec := new(recorder).record(s)

	run(t, s, clock, 1000, "")
	run(t, s, clock, 2000, "")
	run(t, s, clock, 3000, "")

	avg, fastest := RunStats(s.State().RunRecords)
	assert.Equal(t, 2000.0, avg)
	assert.Equal(t, int64(1000), fastest)

	var added []RecordAddedData
	for _, d := range rec.data {
		if a, ok := d.(RecordAddedData); ok {
			added = append(added, a)
		}
	}
	require.Len(t, added, 3)
	assert.False(t, added[0].IsComplete)
	assert.False(t, added[1].IsComplete)
	assert.True(t, added[2].IsComplete)
	assert.Equal(t, 3, added[2].Count)
	assert.True(t, s.State().IsComplete())
}

func TestStore_UndoLastRecord(t *testing.T) {
	s, clock, _ := setupStore(t)
	assert.False(t, s.UndoLastRecord(), "nothing to undo")

	s.SetTargetRunsInt(2)
	run(t, s, clock, 1000, "first")
	before := s.State()

	require.True(t, s.ToggleTimer())
	clock.AdvanceMs(700)
	require.True(t, s.RecordRun("second"))
	require.True(t, s.State().IsComplete())

	rec := new(recorder).record(s)
	require.True(t, s.UndoLastRecord())

	st := s.State()
	assert.Equal(t, before.CurrentRunCount, st.CurrentRunCount)
	assert.Equal(t, before.RunRecords, st.RunRecords)
	assert.False(t, st.IsRunning)
	assert.Equal(t, []EventType{RecordUndone}, rec.types)
	assert.Equal(t, RecordUndoneData{Count: 1, IsNowIncomplete: true}, rec.data[0])
}

func TestStore_EditRecordTime(t *testing.T) {
	s, clock, _ := setupStore(t)
	run(t, s, clock, 1000, "")
	run(t, s, clock, 2000, "")
	old := s.State()
	rec := new(recorder).record(s)

	assert.False(t, s.EditRecordTime(-1, 5))
	assert.False(t, s.EditRecordTime(2, 5))
	assert.Empty(t, rec.types)

	require.True(t, s.EditRecordTime(1, 61230))
	assert.Equal(t, int64(61230), s.State().RunRecords[1].Time)
	assert.Equal(t, int64(2000), old.RunRecords[1].Time, "previous snapshot must not change")
	assert.Equal(t, RecordEditedData{Index: 1, Time: 61230}, rec.data[0])
}

func TestStore_SaveSession(t *testing.T) {
	s, clock, _ := setupStore(t)
	_, ok := s.SaveSession()
	assert.False(t, ok, "no run to save")

	start := clock.Now()
	run(t, s, clock, 1000, "a")
	clock.AdvanceMs(5000)
	run(t, s, clock, 3000, "b")
	end := clock.Now()

	rec := new(recorder).record(s)
	session, ok := s.SaveSession()
	require.True(t, ok)

	assert.NotEmpty(t, session.ID)
	require.NotNil(t, session.StartTime)
	assert.Equal(t, start, *session.StartTime)
	assert.Equal(t, end, session.EndTime)
	assert.Equal(t, int64(9000), session.Duration)
	assert.Equal(t, int64(4000), session.PlayDuration)
	assert.Equal(t, 2000.0, session.AvgTime)
	assert.Equal(t, int64(1000), session.FastestTime)
	assert.Equal(t, 2, session.RunCount)
	assert.Equal(t, DefaultTargetRuns, session.TargetRuns)
	assert.Len(t, session.Records, 2)

	st := s.State()
	assert.Equal(t, []Session{session}, st.History)
	assert.Zero(t, st.CurrentRunCount)
	assert.Empty(t, st.RunRecords)
	assert.Nil(t, st.SessionStartTime)
	assert.False(t, st.IsRunning)
	assert.Zero(t, st.ElapsedTime)

	assert.Equal(t, []EventType{AppReset, SessionSaved}, rec.types)
	assert.Equal(t, SessionSavedData{Session: session}, rec.data[1])

	// sessions are listed most recent first.
	run(t, s, clock, 500, "")
	second, ok := s.SaveSession()
	require.True(t, ok)
	assert.Equal(t, []ID{second.ID, session.ID}, []ID{s.State().History[0].ID, s.State().History[1].ID})
}

func TestStore_History(t *testing.T) {
	s, clock, _ := setupStore(t)
	var ids []ID
	for range 3 {
		run(t, s, clock, 1000, "")
		h, ok := s.SaveSession()
		require.True(t, ok)
		ids = append(ids, h.ID)
	}
	rec := new(recorder).record(s)

	s.DeleteHistory(ids[1])
	require.Len(t, s.State().History, 2)
	assert.Equal(t, ids[2], s.State().History[0].ID)
	assert.Equal(t, ids[0], s.State().History[1].ID)

	s.ClearAllHistory()
	assert.Empty(t, s.State().History)
	assert.Equal(t, []EventType{HistoryDeleted, HistoryCleared}, rec.types)
	assert.Equal(t, HistoryDeletedData{ID: ids[1]}, rec.data[0])
}

func TestStore_ForceReset(t *testing.T) {
	s, clock, _ := setupStore(t)
	run(t, s, clock, 1000, "")
	require.True(t, s.ToggleTimer())
	rec := new(recorder).record(s)

	s.ForceReset()

	st := s.State()
	assert.Zero(t, st.CurrentRunCount)
	assert.Empty(t, st.RunRecords)
	assert.Nil(t, st.SessionStartTime)
	assert.False(t, st.IsRunning)
	assert.Equal(t, []EventType{AppReset}, rec.types)
}

func TestStore_ImportData(t *testing.T) {
	s, _, _ := setupStore(t)
	require.True(t, s.ToggleTimer())
	rec := new(recorder).record(s)

	imp, err := ParseDocument([]byte(`{"targetRuns":7,"currentRunCount":1,"runRecords":[{"time":1200,"memo":""}]}`))
	require.NoError(t, err)
	s.ImportData(imp)

	st := s.State()
	assert.Equal(t, 7, st.TargetRuns)
	assert.Equal(t, 1, st.CurrentRunCount)
	assert.False(t, st.IsRunning)
	assert.Equal(t, DefaultShareTemplate, st.ShareTemplate)
	assert.NotNil(t, st.TradeHistory)
	assert.Equal(t, []EventType{DataImported}, rec.types)
}

func TestStore_HandlerMayCallBack(t *testing.T) {
	s, clock, _ := setupStore(t)
	s.SetTargetRunsInt(1)
	// save as soon as the target is reached.
	var saved bool
	s.Subscribe(RecordAdded, func(d EventData) {
		if d.(RecordAddedData).IsComplete {
			_, saved = s.SaveSession()
		}
	})
	run(t, s, clock, 1000, "")
	assert.True(t, saved)
	assert.Len(t, s.State().History, 1)
}

func TestStore_SnapshotsAreImmutable(t *testing.T) {
	s, clock, _ := setupStore(t)
	run(t, s, clock, 1000, "")
	run(t, s, clock, 2000, "")
	snap := s.State()

	require.True(t, s.UndoLastRecord())
	run(t, s, clock, 3000, "")

	assert.Equal(t, []RunRecord{{Time: 1000}, {Time: 2000}}, snap.RunRecords)
	assert.Equal(t, []RunRecord{{Time: 1000}, {Time: 3000}}, s.State().RunRecords)
}

func TestStore_Persist(t *testing.T) {
	t.Run("Flush coalesces mutations", func(t *testing.T) {
		s, clock, mem := setupStore(t)
		for i := range 5 {
			s.SetTargetRunsInt(i + 2)
		}
		run(t, s, clock, 1000, "")
		assert.Zero(t, mem.Writes())

		require.NoError(t, s.Flush(t.Context()))
		require.NoError(t, s.Flush(t.Context()))
		assert.Equal(t, 1, mem.Writes())

		data, ok, err := mem.GetItem(t.Context(), DefaultKey)
		require.NoError(t, err)
		require.True(t, ok)
		st, err := ParseDocument(data)
		require.NoError(t, err)
		assert.Equal(t, 6, st.TargetRuns)
		assert.Len(t, st.RunRecords, 1)
	})

	t.Run("Debounce writes once after a burst", func(t *testing.T) {
		mem := NewMemoryStorage()
		s := NewStore(Options{Storage: mem, Debounce: 20 * time.Millisecond})
		for i := range 10 {
			s.SetTargetRunsInt(i + 1)
		}
		require.Eventually(t, func() bool { return mem.Writes() == 1 }, time.Second, 5*time.Millisecond)
		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, 1, mem.Writes())
	})

	t.Run("Precondition failures do not persist", func(t *testing.T) {
		s, _, mem := setupStore(t)
		assert.False(t, s.RecordRun(""))
		assert.False(t, s.UndoLastRecord())
		require.NoError(t, s.Flush(t.Context()))
		assert.Zero(t, mem.Writes())
	})
}

func TestStore_Load(t *testing.T) {
	t.Run("Missing document keeps defaults", func(t *testing.T) {
		s, _, _ := setupStore(t)
		require.NoError(t, s.Load(t.Context()))
		assert.Equal(t, DefaultState(), s.State())
	})

	t.Run("Invalid document keeps defaults", func(t *testing.T) {
		mem := NewMemoryStorage()
		require.NoError(t, mem.SetItem(t.Context(), DefaultKey, []byte(`{"targetRuns":0}`)))
		s := NewStore(Options{Storage: mem})
		require.NoError(t, s.Load(t.Context()))
		assert.Equal(t, DefaultTargetRuns, s.State().TargetRuns)
	})

	t.Run("Round trip", func(t *testing.T) {
		s, clock, mem := setupStore(t)
		s.SetTargetRunsInt(4)
		run(t, s, clock, 1000, "memo")
		item := addItem(t, s, "Sword", Blue)
		_, ok := s.AddTrade(TradeRequest{Type: Buy, ItemID: item.ID, Qty: 2, Price: 50})
		require.True(t, ok)
		require.NoError(t, s.Close(t.Context()))

		loaded := NewStore(Options{Storage: mem})
		require.NoError(t, loaded.Load(t.Context()))
		st := loaded.State()
		assert.Equal(t, 4, st.TargetRuns)
		assert.Equal(t, s.State().RunRecords, st.RunRecords)
		assert.Equal(t, s.State().MarketItems, st.MarketItems)
		assert.Equal(t, InventoryEntry{Qty: 2, TotalCost: 100}, st.Inventory[item.ID])
		assert.False(t, st.IsRunning)
	})
}
