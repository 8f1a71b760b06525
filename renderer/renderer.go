// Package renderer renders the state of the tracker and its reports as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
	"time"

	"github.com/etnz/dungeon"
)

//go:embed *.md
var templates embed.FS

// RenderStatus renders the progress of the current session.
func RenderStatus(st *dungeon.AppState, now time.Time, loc *time.Location) string {
	partials := map[string]string{
		"status_records": "status_records.md",
	}
	return renderTemplate("status", "status.md", partials, NewStatus(st, now), loc)
}

// RenderHistory renders archived sessions under title.
func RenderHistory(title string, sessions []dungeon.Session, loc *time.Location) string {
	partials := map[string]string{
		"history_session": "history_session.md",
	}
	return renderTemplate("history", "history.md", partials, History{Title: title, Sessions: sessions}, loc)
}

// RenderDailySummary renders the play time per day.
func RenderDailySummary(days []dungeon.DayTotal) string {
	return renderTemplate("daily", "daily.md", nil, days, time.UTC)
}

// RenderItems renders the catalog grouped by grade.
func RenderItems(st *dungeon.AppState) string {
	return renderTemplate("items", "items.md", nil, NewGradeGroups(st), time.UTC)
}

// RenderInventory renders the positive stocks with their average cost.
func RenderInventory(st *dungeon.AppState) string {
	return renderTemplate("inventory", "inventory.md", nil, dungeon.Stocks(st), time.UTC)
}

// RenderTrades renders the trades selected by filter grouped by day.
func RenderTrades(st *dungeon.AppState, filter dungeon.TradeFilter, loc *time.Location) string {
	partials := map[string]string{
		"trades_day": "trades_day.md",
	}
	return renderTemplate("trades", "trades.md", partials, dungeon.TradesByDay(st.TradeHistory, filter, loc), loc)
}

// RenderDashboard renders the trading summary.
func RenderDashboard(r dungeon.DashboardReport) string {
	return renderTemplate("dashboard", "dashboard.md", nil, r, time.UTC)
}

// RenderStats renders the price trends of the traded items.
func RenderStats(stats []dungeon.ItemStats) string {
	return renderTemplate("stats", "stats.md", nil, stats, time.UTC)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any, loc *time.Location) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs(loc)).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
