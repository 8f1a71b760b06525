package renderer

import (
	"fmt"
	"html"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/etnz/dungeon"
)

// funcs returns the template functions, times are displayed in loc.
func funcs(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"time":     func(ms any) string { return dungeon.FormatTime(toFloat(ms)) },
		"short":    func(ms any) string { return dungeon.FormatShortTime(toFloat(ms)) },
		"duration": func(ms any) string { return dungeon.FormatDuration(toFloat(ms)) },
		"diff":     diff,
		"text":     text,
		"spark":    sparkline,
		"fee":      dungeon.FeeLabel,
		"kind":     kind,
		"realtime": func(t any) string { return realtime(t, loc, "2006.01.02 15:04") },
		"clock":    func(t any) string { return realtime(t, loc, "15:04") },
	}
}

// toFloat converts the numbers found in the state.
func toFloat(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	case dungeon.Money:
		return float64(x)
	default:
		return math.NaN()
	}
}

// diff returns the gap of ms to the average avg, ▼ when faster, ▲ when slower.
func diff(ms any, avg float64) string {
	if avg == 0 {
		return ""
	}
	d := toFloat(ms) - avg
	switch {
	case d < 0:
		return "▼ " + dungeon.FormatTime(-d)
	case d > 0:
		return "▲ " + dungeon.FormatTime(d)
	default:
		return "- 00:00.00"
	}
}

// text returns a user string stored HTML escaped, ready for a markdown table cell.
func text(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func kind(t dungeon.TradeType) string {
	switch t {
	case dungeon.Buy:
		return "매입"
	case dungeon.Sell:
		return "판매"
	default:
		return string(t)
	}
}

func realtime(v any, loc *time.Location, layout string) string {
	switch t := v.(type) {
	case time.Time:
		return t.In(loc).Format(layout)
	case *time.Time:
		if t == nil {
			return "-"
		}
		return t.In(loc).Format(layout)
	default:
		return fmt.Sprint(v)
	}
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// sparkline draws prices as a line of unicode blocks. It needs at least two prices.
func sparkline(prices []dungeon.Money) string {
	if len(prices) < 2 {
		return ""
	}
	lo, hi := prices[0], prices[0]
	for _, p := range prices {
		lo, hi = min(lo, p), max(hi, p)
	}
	span := float64(hi - lo)
	if span == 0 {
		span = 1
	}
	var b strings.Builder
	for _, p := range prices {
		i := int(float64(p-lo) / span * float64(len(sparks)-1))
		b.WriteRune(sparks[i])
	}
	return b.String()
}
