package dungeon

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
)

// MoneyUnit is the display name of the single money unit.
const MoneyUnit = "키나"

// kina is the go-money currency code used to format amounts.
const kina = "KINA"

func init() {
	money.AddCurrency(kina, MoneyUnit, "1 $", ".", ",", 0)
}

// FormatTime formats a duration in milliseconds as "MM:SS.cc".
func FormatTime(ms float64) string {
	if math.IsNaN(ms) || ms < 0 {
		return "00:00.00"
	}
	totalSec := int64(math.Floor(ms / 1000))
	cs := int64(math.Floor(math.Mod(ms, 1000) / 10))
	return fmt.Sprintf("%02d:%02d.%02d", totalSec/60, totalSec%60, cs)
}

// FormatShortTime formats a duration in milliseconds as "M:SS".
func FormatShortTime(ms float64) string {
	if math.IsNaN(ms) || ms < 0 {
		return "00:00"
	}
	totalSec := int64(math.Floor(ms / 1000))
	return fmt.Sprintf("%d:%02d", totalSec/60, totalSec%60)
}

// ParseTimeToMs parses "M:SS" or "M:SS.cc" back to milliseconds.
//
// Digits after the first two of the fractional part are ignored, a single
// digit is read as tenths. It returns false when the string is not made of
// exactly two parts around ':' or when a component is not numeric.
func ParseTimeToMs(s string) (int64, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, false
	}
	m, ok := parseLeadingInt(parts[0])
	if !ok {
		return 0, false
	}
	sec := strings.Split(parts[1], ".")
	secs, ok := parseLeadingInt(sec[0])
	if !ok {
		return 0, false
	}
	var ms int64
	if len(sec) > 1 && sec[1] != "" {
		frac := sec[1]
		if len(frac) > 2 {
			frac = frac[:2]
		}
		frac += strings.Repeat("0", 2-len(frac))
		cs, ok := parseLeadingInt(frac)
		if !ok {
			return 0, false
		}
		ms = cs * 10
	}
	return m*60000 + secs*1000 + ms, true
}

// realTimeLayout is the layout of wall-clock timestamps.
const realTimeLayout = "2006.01.02 15:04"

// FormatRealTime formats an ISO-8601 timestamp as "YYYY.MM.DD HH:MM" in local time.
// It returns "" for an empty or unparseable input.
func FormatRealTime(iso string) string { return FormatRealTimeIn(iso, time.Local) }

// FormatRealTimeIn is like [FormatRealTime] in the location loc.
func FormatRealTimeIn(iso string, loc *time.Location) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return ""
	}
	return t.In(loc).Format(realTimeLayout)
}

// FormatDuration formats a duration in milliseconds as "1시간 2분 3초",
// dropping the leading units that are zero.
func FormatDuration(ms float64) string {
	if math.IsNaN(ms) || ms < 0 {
		return "알 수 없음"
	}
	t := int64(math.Floor(ms / 1000))
	h, m, s := t/3600, (t%3600)/60, t%60
	switch {
	case h > 0:
		return fmt.Sprintf("%d시간 %d분 %d초", h, m, s)
	case m > 0:
		return fmt.Sprintf("%d분 %d초", m, s)
	default:
		return fmt.Sprintf("%d초", s)
	}
}

// FormatMoney formats the integer part of n with thousands separators and the money unit.
func FormatMoney(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0
	}
	return Money(math.Trunc(n)).String()
}

// ParseNumber parses the leading integer of s, ignoring thousands separators.
// It returns 0 when s does not start with a number.
func ParseNumber(s string) int64 {
	n, _ := parseLeadingInt(strings.ReplaceAll(s, ",", ""))
	return n
}

// parseLeadingInt reads an optionally signed integer at the start of s,
// stopping at the first non digit. Leading spaces are skipped.
func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&#39;",
	`"`, "&quot;",
)

// EscapeHTML escapes the characters of s that are special in HTML.
func EscapeHTML(s string) string { return htmlEscaper.Replace(s) }
