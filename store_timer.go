package dungeon

import (
	"slices"
	"time"
)

// SetTargetRuns sets the target number of runs from user input. Anything
// but a positive integer sets the target to 1.
func (s *Store) SetTargetRuns(n string) {
	v, _ := parseLeadingInt(n)
	s.SetTargetRunsInt(int(v))
}

// SetTargetRunsInt sets the target number of runs, at least 1.
func (s *Store) SetTargetRunsInt(n int) {
	s.mutate(func(st *AppState) ([]event, bool) {
		st.TargetRuns = max(1, n)
		return []event{{TargetUpdated, TargetUpdatedData{Target: st.TargetRuns}}}, true
	})
}

// SetShareTemplate sets the share text template. It publishes nothing.
func (s *Store) SetShareTemplate(tmpl string) {
	s.mutate(func(st *AppState) ([]event, bool) {
		st.ShareTemplate = tmpl
		return nil, true
	})
}

// ToggleTimer starts or stops the timer of the current run.
//
// It returns false if the timer is stopped and the target is already reached.
func (s *Store) ToggleTimer() bool {
	return s.mutate(func(st *AppState) ([]event, bool) {
		now := s.now()
		if st.IsRunning {
			st.ElapsedTime += now.Sub(st.StartTime).Milliseconds()
			st.IsRunning = false
			return []event{{TimerStopped, nil}}, true
		}
		if st.CurrentRunCount >= st.TargetRuns {
			return nil, false
		}
		if st.CurrentRunCount == 0 && len(st.RunRecords) == 0 && st.SessionStartTime == nil {
			start := now
			st.SessionStartTime = &start
		}
		st.IsRunning = true
		st.StartTime = now
		return []event{{TimerStarted, nil}}, true
	})
}

// RecordRun completes the running run with memo. It returns false if the
// timer is stopped.
func (s *Store) RecordRun(memo string) bool {
	return s.mutate(func(st *AppState) ([]event, bool) {
		if !st.IsRunning {
			return nil, false
		}
		now := s.now()
		rec := RunRecord{
			Time: st.ElapsedTime + now.Sub(st.StartTime).Milliseconds(),
			Memo: EscapeHTML(memo),
		}
		st.RunRecords = appendCopy(st.RunRecords, rec)
		st.CurrentRunCount++
		st.ElapsedTime = 0
		st.StartTime = now
		st.IsRunning = false
		return []event{{RecordAdded, RecordAddedData{
			Record:     rec,
			Count:      st.CurrentRunCount,
			IsComplete: st.CurrentRunCount >= st.TargetRuns,
		}}}, true
	})
}

// UndoLastRecord removes the last run and stops the timer. It returns false
// if there is no run.
func (s *Store) UndoLastRecord() bool {
	return s.mutate(func(st *AppState) ([]event, bool) {
		if len(st.RunRecords) == 0 {
			return nil, false
		}
		st.RunRecords = slices.Clone(st.RunRecords[:len(st.RunRecords)-1])
		st.CurrentRunCount--
		st.IsRunning = false
		return []event{{RecordUndone, RecordUndoneData{
			Count:           st.CurrentRunCount,
			IsNowIncomplete: st.CurrentRunCount < st.TargetRuns,
		}}}, true
	})
}

// EditRecordTime replaces the time of the run at index. It returns false if
// index is out of range.
func (s *Store) EditRecordTime(index int, ms int64) bool {
	return s.mutate(func(st *AppState) ([]event, bool) {
		if index < 0 || index >= len(st.RunRecords) {
			return nil, false
		}
		st.RunRecords = cloneRecords(st.RunRecords)
		st.RunRecords[index].Time = ms
		return []event{{RecordEdited, RecordEditedData{Index: index, Time: ms}}}, true
	})
}

// SaveSession archives the runs as a new session at the top of the history
// and resets the run state. It returns false if there is no run.
func (s *Store) SaveSession() (Session, bool) {
	var session Session
	ok := s.mutate(func(st *AppState) ([]event, bool) {
		if len(st.RunRecords) == 0 {
			return nil, false
		}
		end := s.now()
		start := end
		if st.SessionStartTime != nil {
			start = *st.SessionStartTime
		}
		avg, fastest := RunStats(st.RunRecords)
		session = Session{
			ID:           NewID(),
			StartTime:    &start,
			EndTime:      end,
			Duration:     end.Sub(start).Milliseconds(),
			PlayDuration: sumTimes(st.RunRecords),
			TargetRuns:   st.TargetRuns,
			RunCount:     st.CurrentRunCount,
			AvgTime:      avg,
			FastestTime:  fastest,
			Records:      cloneRecords(st.RunRecords),
		}
		st.History = prepend(session, st.History)
		resetRuns(st)
		return []event{
			{AppReset, nil},
			{SessionSaved, SessionSavedData{Session: session}},
		}, true
	})
	return session, ok
}

// DeleteHistory removes the session id from the history.
func (s *Store) DeleteHistory(id ID) {
	s.mutate(func(st *AppState) ([]event, bool) {
		st.History = slices.DeleteFunc(slices.Clone(st.History), func(h Session) bool { return h.ID == id })
		return []event{{HistoryDeleted, HistoryDeletedData{ID: id}}}, true
	})
}

// ClearAllHistory removes every session.
func (s *Store) ClearAllHistory() {
	s.mutate(func(st *AppState) ([]event, bool) {
		st.History = []Session{}
		return []event{{HistoryCleared, nil}}, true
	})
}

// ForceReset discards the runs of the current session.
func (s *Store) ForceReset() {
	s.mutate(func(st *AppState) ([]event, bool) {
		resetRuns(st)
		return []event{{AppReset, nil}}, true
	})
}

// ImportData replaces the whole state by imp, a document decoded by
// [ParseDocument]. The timer is stopped.
func (s *Store) ImportData(imp *AppState) {
	s.mutate(func(st *AppState) ([]event, bool) {
		*st = *imp
		backfill(st)
		st.IsRunning = false
		st.StartTime = time.Time{}
		st.ElapsedTime = 0
		return []event{{DataImported, nil}}, true
	})
}

func resetRuns(st *AppState) {
	st.CurrentRunCount = 0
	st.RunRecords = []RunRecord{}
	st.SessionStartTime = nil
	st.IsRunning = false
	st.ElapsedTime = 0
}

func sumTimes(records []RunRecord) int64 {
	var sum int64
	for _, r := range records {
		sum += r.Time
	}
	return sum
}
