package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/etnz/dungeon"
	"github.com/etnz/dungeon/renderer"
	"github.com/fsnotify/fsnotify"
	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
)

type watchCmd struct {
	schedule string
	market   bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "display the status live" }
func (*watchCmd) Usage() string {
	return `watch [-market] [-refresh <cron spec>]

  Displays the status of the session, or the trading dashboard with -market,
  and redraws it whenever another dcl command changes the data. The view is
  also refreshed on a schedule to keep the expected completion time current.
  Stop with Ctrl+C.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.schedule, "refresh", "@every 1m", "Cron spec of the periodic refresh")
	f.BoolVar(&c.market, "market", false, "Display the trading dashboard")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		if err := c.watch(ctx, a); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}

func (c *watchCmd) watch(ctx context.Context, a *app) error {
	path := a.dataPath()
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()
	// Files are replaced on save, the directory is watched.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	refresh := make(chan struct{}, 1)
	sched := cron.New()
	if _, err := sched.AddFunc(c.schedule, func() {
		select {
		case refresh <- struct{}{}:
		default:
		}
	}); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", c.schedule, err)
	}
	sched.Start()
	defer sched.Stop()

	c.draw(a)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-refresh:
			c.draw(a)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(filepath.Base(ev.Name), filepath.Base(path)) || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			a.log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("data changed")
			if err := a.store.Load(ctx); err != nil {
				a.log.Error().Err(err).Msg("reloading data")
				continue
			}
			c.draw(a)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.log.Error().Err(err).Msg("watching data")
		}
	}
}

func (c *watchCmd) draw(a *app) {
	st := a.store.State()
	fmt.Print("\033[H\033[2J")
	if c.market {
		printMarkdown(renderer.RenderDashboard(dungeon.Dashboard(st, a.store.Now(), a.loc)))
		printMarkdown(renderer.RenderInventory(st))
		return
	}
	printMarkdown(renderer.RenderStatus(st, a.store.Now(), a.loc))
}
