package date

import (
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	testCases := []struct {
		name   string
		in     Date
		period Period
		want   Range
	}{
		{
			name:   "A single day",
			in:     New(2025, time.September, 10),
			period: Daily,
			want:   Range{From: New(2025, time.September, 10), To: New(2025, time.September, 10)},
		},
		{
			name:   "A Wednesday",
			in:     New(2025, time.September, 10),
			period: Weekly,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 14)},
		},
		{
			name:   "A Sunday belongs to the week started on monday",
			in:     New(2025, time.September, 14),
			period: Weekly,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 14)},
		},
		{
			name:   "A Monday",
			in:     New(2025, time.September, 8),
			period: Weekly,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 14)},
		},
		{
			name:   "Week across months",
			in:     New(2025, time.October, 1),
			period: Weekly,
			want:   Range{From: New(2025, time.September, 29), To: New(2025, time.October, 5)},
		},
		{
			name:   "Leap year february",
			in:     New(2024, time.February, 10),
			period: Monthly,
			want:   Range{From: New(2024, time.February, 1), To: New(2024, time.February, 29)},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewRange(tc.in, tc.period); got != tc.want {
				t.Errorf("NewRange(%v, %v) = %v, want %v", tc.in, tc.period, got, tc.want)
			}
		})
	}
}

func TestRange_Contains(t *testing.T) {
	r := NewRange(New(2025, time.September, 10), Weekly)
	testCases := []struct {
		name string
		in   Date
		want bool
	}{
		{"First day", New(2025, time.September, 8), true},
		{"Last day", New(2025, time.September, 14), true},
		{"Day before", New(2025, time.September, 7), false},
		{"Day after", New(2025, time.September, 15), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.in); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRange_ContainsTime(t *testing.T) {
	seoul := time.FixedZone("KST", 9*3600)
	r := NewRange(New(2025, time.September, 8), Daily)

	// 2025-09-07T20:00Z is already monday morning in Seoul.
	on := time.Date(2025, time.September, 7, 20, 0, 0, 0, time.UTC)
	if !r.ContainsTime(on, seoul) {
		t.Errorf("ContainsTime(%v, KST) = false, want true", on)
	}
	if r.ContainsTime(on, time.UTC) {
		t.Errorf("ContainsTime(%v, UTC) = true, want false", on)
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Period
		wantErr bool
	}{
		{"Daily", "daily", Daily, false},
		{"Weekly", "weekly", Weekly, false},
		{"Monthly", "monthly", Monthly, false},
		{"Unknown", "unknown", Daily, true},
		{"Day", "day", Daily, false},
		{"Week", "Week", Weekly, false},
		{"Month", "month", Monthly, false},
		{"Quarter is not supported", "quarter", Daily, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePeriod(tc.in)
			if (err != nil) != tc.wantErr {
				t.Errorf("ParsePeriod() error = %v, wantErr %v", err, tc.wantErr)
				return
			}
			if got != tc.want {
				t.Errorf("ParsePeriod() = %v, want %v", got, tc.want)
			}
		})
	}
}
