// Command dcl times dungeon runs and keeps the ledger of the trades of their loot.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/dungeon/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Exits when run by the shell to complete a command line.
	completion(commander).Complete("dcl")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
