// Package cmd implements the dcl command line: a dungeon run timer and a
// trading ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/dungeon"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&playCmd{}, "timer")
	c.Register(&targetCmd{}, "timer")
	c.Register(&templateCmd{}, "timer")
	c.Register(&statusCmd{}, "timer")
	c.Register(&shareCmd{}, "timer")
	c.Register(&saveCmd{}, "timer")
	c.Register(&resetCmd{}, "timer")
	c.Register(&editCmd{}, "timer")
	c.Register(&undoCmd{}, "timer")

	c.Register(&historyCmd{}, "history")
	c.Register(&dailyCmd{}, "history")
	c.Register(&rmhistCmd{}, "history")
	c.Register(&clearhistCmd{}, "history")

	c.Register(&itemCmd{}, "market")
	c.Register(&itemsCmd{}, "market")
	c.Register(newTradeCmd(dungeon.Buy), "market")
	c.Register(newTradeCmd(dungeon.Sell), "market")
	c.Register(&previewCmd{}, "market")
	c.Register(&rmtradeCmd{}, "market")
	c.Register(&cleartradesCmd{}, "market")
	c.Register(&inventoryCmd{}, "market")
	c.Register(&invCmd{}, "market")
	c.Register(&tradesCmd{}, "market")
	c.Register(&dashboardCmd{}, "market")
	c.Register(&statsCmd{}, "market")

	c.Register(&exportCmd{}, "data")
	c.Register(&importCmd{}, "data")
	c.Register(&queryCmd{}, "data")
	c.Register(&watchCmd{}, "data")

	c.Register(&assistCmd{}, "help")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Path to the YAML configuration file (defaults to $XDG_CONFIG_HOME/dcl/config.yaml)")
	dataDir    = flag.String("data", "", "Directory of the data, overrides the configuration")
	backend    = flag.String("backend", "", "Storage backend, file or sqlite, overrides the configuration")
	Verbose    = flag.Bool("v", false, "Enable debug logging")
)

// EnvTestingNow freezes the clock of the store, "2006-01-02 15:04:05" in
// the configured time zone.
const EnvTestingNow = "DCL_TESTING_NOW"

// app is what a command needs to run.
type app struct {
	cfg   *Config
	log   zerolog.Logger
	loc   *time.Location
	store *dungeon.Store
}

// openApp loads the configuration and the store.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: NewLogger(cfg.LogLevel, true)}
	if a.loc, err = cfg.Location(); err != nil {
		return nil, err
	}
	now, err := a.clock()
	if err != nil {
		return nil, err
	}
	storage, err := a.openStorage()
	if err != nil {
		return nil, err
	}
	a.store = dungeon.NewStore(dungeon.Options{
		Storage:  storage,
		Debounce: cfg.Debounce,
		Now:      now,
		Logger:   &a.log,
	})
	if err := a.store.Load(ctx); err != nil {
		storage.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) openStorage() (dungeon.Storage, error) {
	switch a.cfg.Backend {
	case BackendSQLite:
		if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return dungeon.NewSQLiteStorage(a.dataPath())
	default:
		return dungeon.NewFileStorage(a.cfg.DataDir)
	}
}

// dataPath returns the file holding the data.
func (a *app) dataPath() string {
	if a.cfg.Backend == BackendSQLite {
		return filepath.Join(a.cfg.DataDir, "dungeon.db")
	}
	return (&dungeon.FileStorage{Dir: a.cfg.DataDir}).Path(dungeon.DefaultKey)
}

// clock returns the time source of the store.
func (a *app) clock() (func() time.Time, error) {
	v := os.Getenv(EnvTestingNow)
	if v == "" {
		return time.Now, nil
	}
	t, err := time.ParseInLocation(time.DateTime, v, a.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvTestingNow, err)
	}
	return func() time.Time { return t }, nil
}

// Close persists the pending changes.
func (a *app) Close(ctx context.Context) error { return a.store.Close(ctx) }

// withApp opens the app, runs fn and closes the app. Errors are reported on
// stderr.
func withApp(ctx context.Context, fn func(a *app) subcommands.ExitStatus) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	status := fn(a)
	if err := a.Close(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error saving data:", err)
		return subcommands.ExitFailure
	}
	return status
}

// findItem resolves a catalog item by ID or name.
func findItem(st *dungeon.AppState, ref string) (dungeon.MarketItem, bool) {
	item, ok := st.FindItem(ref)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown item %q, see 'dcl items'\n", ref)
	}
	return item, ok
}

// printMarkdown renders md for the terminal, or prints it as is when the
// output is not a terminal.
func printMarkdown(md string) {
	if !isTerminal(os.Stdout) {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
