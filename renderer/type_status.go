package renderer

import (
	"time"

	"github.com/etnz/dungeon"
)

// Status is the view of the current session.
type Status struct {
	Target   int
	Count    int
	Running  bool
	Complete bool
	Elapsed  int64 // live time of the current run, ms
	Avg      float64
	Fastest  int64
	ETA      time.Time
	HasETA   bool
	Share    string
	Records  []RecordLine
}

// RecordLine is a run of the current session.
type RecordLine struct {
	Index int // 1-based
	dungeon.RunRecord
}

// NewStatus returns the view of st at now.
func NewStatus(st *dungeon.AppState, now time.Time) *Status {
	s := &Status{
		Target:   st.TargetRuns,
		Count:    st.CurrentRunCount,
		Running:  st.IsRunning,
		Complete: st.IsComplete(),
		Elapsed:  st.Elapsed(now),
		Share:    dungeon.ShareText(st),
	}
	s.Avg, s.Fastest = dungeon.RunStats(st.RunRecords)
	s.ETA, s.HasETA = dungeon.ETA(st, now)
	for i, r := range st.RunRecords {
		s.Records = append(s.Records, RecordLine{Index: i + 1, RunRecord: r})
	}
	return s
}

// History is a list of sessions.
type History struct {
	Title    string
	Sessions []dungeon.Session
}

// GradeGroup is the catalog items of a grade.
type GradeGroup struct {
	Grade dungeon.Grade
	Items []dungeon.MarketItem
}

// NewGradeGroups groups the catalog by grade, from common to rare. Empty
// groups are omitted.
func NewGradeGroups(st *dungeon.AppState) []GradeGroup {
	byGrade := dungeon.ItemsByGrade(st)
	var groups []GradeGroup
	for _, g := range dungeon.Grades {
		if items := byGrade[g]; len(items) > 0 {
			groups = append(groups, GradeGroup{Grade: g, Items: items})
		}
	}
	return groups
}
