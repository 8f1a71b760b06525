package date

import "time"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange return the period containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// ContainsTime reports whether the instant t, seen in loc, falls on a day of the range.
func (r Range) ContainsTime(t time.Time, loc *time.Location) bool {
	return r.Contains(Of(t.In(loc)))
}
