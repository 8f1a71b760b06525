package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/dungeon"
	"github.com/google/subcommands"
)

type saveCmd struct{}

func (*saveCmd) Name() string     { return "save" }
func (*saveCmd) Synopsis() string { return "archive the session in the history" }
func (*saveCmd) Usage() string {
	return `save

  Archives the runs of the session with their statistics and starts a new
  session.
`
}

func (*saveCmd) SetFlags(f *flag.FlagSet) {}

func (c *saveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		session, ok := a.store.SaveSession()
		if !ok {
			fmt.Fprintln(os.Stderr, "저장할 기록이 없습니다.")
			return subcommands.ExitFailure
		}
		fmt.Printf("세션 저장: %d판, 평균 %s (%s)\n", session.RunCount, dungeon.FormatTime(session.AvgTime), session.ID)
		return subcommands.ExitSuccess
	})
}

type resetCmd struct {
	yes bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "discard the runs of the session" }
func (*resetCmd) Usage() string {
	return `reset [-y]

  Discards the runs of the session without archiving them.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation")
}

func (c *resetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes && !confirm(os.Stdin, os.Stdout, "현재 기록을 모두 초기화합니다.") {
		return subcommands.ExitSuccess
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		a.store.ForceReset()
		fmt.Println("초기화되었습니다.")
		return subcommands.ExitSuccess
	})
}

type editCmd struct{}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "correct the time of a run" }
func (*editCmd) Usage() string {
	return `edit <run> <M:SS.cc>

  Replaces the time of a run of the session, runs are numbered from 1.
`
}

func (*editCmd) SetFlags(f *flag.FlagSet) {}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		if err := editRecord(a.store, f.Args()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}

type undoCmd struct{}

func (*undoCmd) Name() string     { return "undo" }
func (*undoCmd) Synopsis() string { return "remove the last run" }
func (*undoCmd) Usage() string {
	return `undo

  Removes the last run of the session.
`
}

func (*undoCmd) SetFlags(f *flag.FlagSet) {}

func (c *undoCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		if !a.store.UndoLastRecord() {
			fmt.Fprintln(os.Stderr, "취소할 기록이 없습니다.")
			return subcommands.ExitFailure
		}
		fmt.Printf("%d판 남음\n", a.store.State().CurrentRunCount)
		return subcommands.ExitSuccess
	})
}
