package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/dungeon"
	"github.com/etnz/dungeon/date"
	"github.com/etnz/dungeon/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	period string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the archived sessions" }
func (*historyCmd) Usage() string {
	return `history [-p day|week|month]

  Displays the archived sessions, most recent first. With -p, only the
  sessions started in the current day, week or month are displayed.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Restrict to the current period (day, week, month)")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var period date.Period
	if c.period != "" {
		var err error
		if period, err = date.ParsePeriod(c.period); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		sessions := a.store.State().History
		title := "히스토리"
		if c.period != "" {
			r := date.NewRange(date.Of(a.store.Now().In(a.loc)), period)
			sessions = sessionsIn(sessions, r, a.loc)
			title = fmt.Sprintf("히스토리 (%s ~ %s)", r.From, r.To)
		}
		printMarkdown(renderer.RenderHistory(title, sessions, a.loc))
		return subcommands.ExitSuccess
	})
}

// sessionsIn returns the sessions started in r.
func sessionsIn(sessions []dungeon.Session, r date.Range, loc *time.Location) []dungeon.Session {
	var in []dungeon.Session
	for _, s := range sessions {
		start := s.EndTime
		if s.StartTime != nil {
			start = *s.StartTime
		}
		if r.ContainsTime(start, loc) {
			in = append(in, s)
		}
	}
	return in
}

type dailyCmd struct{}

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "display the runs and play time of each day" }
func (*dailyCmd) Usage() string {
	return `daily

  Totals the archived sessions per day they started on, most recent first.
`
}

func (*dailyCmd) SetFlags(f *flag.FlagSet) {}

func (c *dailyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		printMarkdown(renderer.RenderDailySummary(dungeon.DailySummary(a.store.State().History, a.loc)))
		return subcommands.ExitSuccess
	})
}

type rmhistCmd struct{}

func (*rmhistCmd) Name() string     { return "rmhist" }
func (*rmhistCmd) Synopsis() string { return "delete an archived session" }
func (*rmhistCmd) Usage() string {
	return `rmhist <id>

  Deletes the archived session with the given ID, see 'dcl history'.
`
}

func (*rmhistCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmhistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		id := dungeon.ID(f.Arg(0))
		before := len(a.store.State().History)
		a.store.DeleteHistory(id)
		if len(a.store.State().History) == before {
			fmt.Fprintf(os.Stderr, "no session %q\n", id)
			return subcommands.ExitFailure
		}
		fmt.Println("세션이 삭제되었습니다.")
		return subcommands.ExitSuccess
	})
}

type clearhistCmd struct {
	yes bool
}

func (*clearhistCmd) Name() string     { return "clearhist" }
func (*clearhistCmd) Synopsis() string { return "delete all the archived sessions" }
func (*clearhistCmd) Usage() string {
	return `clearhist [-y]

  Deletes every archived session.
`
}

func (c *clearhistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation")
}

func (c *clearhistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes && !confirm(os.Stdin, os.Stdout, "모든 히스토리를 삭제합니다.") {
		return subcommands.ExitSuccess
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		a.store.ClearAllHistory()
		fmt.Println("히스토리가 삭제되었습니다.")
		return subcommands.ExitSuccess
	})
}
