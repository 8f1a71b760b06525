// Package dungeon provides the state store of a local-first personal tracker
// for repeated dungeon runs and for the trading of the items they drop.
//
// The core functionalities include:
//   - Run Timer: timing each run of a session against a target count, with
//     single-step undo and manual correction of recorded times.
//   - Session History: archiving a finished batch of runs with its aggregate
//     statistics, and summarizing play time per day.
//   - Trading Ledger: recording buys and sells of catalog items, valuing the
//     inventory at its weighted-average cost and deriving the realised profit
//     of every sell.
//   - Persistence: one JSON document, validated at load and import, written
//     through a debounced [Storage] backend (file, SQLite or memory).
//
// Every mutation of the [Store] replaces the current [AppState] snapshot and
// publishes a named event to the subscribers of its [Notifier]. This package
// is the foundation of the `dcl` command-line tool.
package dungeon
