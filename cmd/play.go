package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/etnz/dungeon"
	"github.com/etnz/dungeon/renderer"
	"github.com/google/subcommands"
)

type playCmd struct {
	refresh time.Duration
}

func (*playCmd) Name() string     { return "play" }
func (*playCmd) Synopsis() string { return "time a session of runs interactively" }
func (*playCmd) Usage() string {
	return `play [-refresh <duration>]

  Starts an interactive session on the current runs. Commands:

    s                  start or stop the timer
    n [memo]           record the current run
    u                  undo the last run
    e <run> <M:SS.cc>  edit the time of a run
    w                  save the session to the history
    r                  reset the session
    p                  print the status
    q                  quit

  The running time is redrawn while the timer runs. A running timer is
  stopped when quitting.
`
}

func (c *playCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.refresh, "refresh", 50*time.Millisecond, "Refresh period of the running time")
}

func (c *playCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		return c.run(a, os.Stdin, os.Stdout)
	})
}

func (c *playCmd) run(a *app, r io.Reader, out io.Writer) subcommands.ExitStatus {
	w := &syncWriter{w: out}
	s := a.store
	d := &display{w: w, store: s, period: c.refresh}
	defer d.Stop()

	s.Subscribe(dungeon.TimerStarted, func(dungeon.EventData) { d.Start() })
	for _, t := range []dungeon.EventType{dungeon.TimerStopped, dungeon.RecordUndone, dungeon.AppReset} {
		s.Subscribe(t, func(dungeon.EventData) { d.Stop() })
	}
	s.Subscribe(dungeon.RecordAdded, func(e dungeon.EventData) {
		d.Stop()
		data := e.(dungeon.RecordAddedData)
		fmt.Fprintf(w, "%d판 %s\n", data.Count, dungeon.FormatTime(float64(data.Record.Time)))
		if data.IsComplete {
			fmt.Fprintln(w, "🎉 목표 달성! 'w' 로 세션을 저장하세요.")
		}
	})
	s.Subscribe(dungeon.RecordEdited, func(e dungeon.EventData) {
		data := e.(dungeon.RecordEditedData)
		fmt.Fprintf(w, "%d판 기록 수정: %s\n", data.Index+1, dungeon.FormatTime(float64(data.Time)))
	})
	s.Subscribe(dungeon.SessionSaved, func(e dungeon.EventData) {
		data := e.(dungeon.SessionSavedData)
		fmt.Fprintf(w, "세션 저장: %d판, 평균 %s\n", data.Session.RunCount, dungeon.FormatTime(data.Session.AvgTime))
	})

	fmt.Fprint(w, renderer.RenderStatus(s.State(), s.Now(), a.loc))
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "play> ")
		if !scanner.Scan() {
			break
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		switch cmd {
		case "":
		case "s":
			if !s.ToggleTimer() {
				fmt.Fprintln(w, "목표를 달성했습니다. 세션을 저장하거나 초기화하세요.")
			}
		case "n":
			if !s.RecordRun(arg) {
				fmt.Fprintln(w, "타이머가 멈춰 있습니다.")
			}
		case "u":
			if !s.UndoLastRecord() {
				fmt.Fprintln(w, "취소할 기록이 없습니다.")
			}
		case "e":
			if err := editRecord(s, strings.Fields(arg)); err != nil {
				fmt.Fprintln(w, err)
			}
		case "w":
			if _, ok := s.SaveSession(); !ok {
				fmt.Fprintln(w, "저장할 기록이 없습니다.")
			}
		case "r":
			s.ForceReset()
		case "p":
			d.Stop()
			fmt.Fprint(w, renderer.RenderStatus(s.State(), s.Now(), a.loc))
		case "q":
			return c.quit(s)
		default:
			fmt.Fprintf(w, "unknown command %q\n", cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "Error reading input:", err)
		return subcommands.ExitFailure
	}
	return c.quit(s)
}

func (c *playCmd) quit(s *dungeon.Store) subcommands.ExitStatus {
	if s.State().IsRunning {
		s.ToggleTimer()
	}
	return subcommands.ExitSuccess
}

// editRecord parses "<run> <M:SS.cc>" and edits the time of the run, 1-based.
func editRecord(s *dungeon.Store, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: <run> <M:SS.cc>")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid run number %q", args[0])
	}
	ms, ok := dungeon.ParseTimeToMs(args[1])
	if !ok {
		return fmt.Errorf("invalid time %q, want M:SS.cc", args[1])
	}
	if !s.EditRecordTime(i-1, ms) {
		return fmt.Errorf("no run %d", i)
	}
	return nil
}

// display redraws the running time while the timer runs.
type display struct {
	w      io.Writer
	store  *dungeon.Store
	period time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// Start starts redrawing, if not already.
func (d *display) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return
	}
	d.stop, d.done = make(chan struct{}), make(chan struct{})
	go d.loop(d.stop, d.done)
}

// Stop stops redrawing and waits for the last draw.
func (d *display) Stop() {
	d.mu.Lock()
	stop, done := d.stop, d.done
	d.stop, d.done = nil, nil
	d.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
	fmt.Fprintln(d.w)
}

func (d *display) loop(stop, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(d.period)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			elapsed := d.store.State().Elapsed(d.store.Now())
			fmt.Fprintf(d.w, "\r⏱ %s ", dungeon.FormatTime(float64(elapsed)))
		}
	}
}

// syncWriter serializes the writes of the display and of the prompt.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
