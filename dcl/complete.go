package main

import (
	"flag"

	"github.com/etnz/dungeon/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors predicts the values of some flags, by "command.flag".
// Global flags have no command.
var flagPredictors = map[string]complete.Predictor{
	".config":       predict.Files("*.yaml"),
	".data":         predict.Dirs("*"),
	".backend":      predict.Set{"file", "sqlite"},
	"history.p":     predict.Set{"day", "week", "month"},
	"sell.fee":      predict.Set{"normal", "world", "none"},
	"preview.fee":   predict.Set{"normal", "world", "none"},
	"trades.type":   predict.Set{"all", "buy", "sell"},
	"export.o":      predict.Files("*.json"),
	"watch.refresh": predict.Set{"@every 1m", "@every 10s", "@hourly"},
}

// argPredictors predicts the arguments of some commands.
var argPredictors = map[string]complete.Predictor{
	"item":        predict.Set{"add", "rm"},
	"inv":         predict.Set{"edit", "rm"},
	"cleartrades": predict.Set{"all", "buy", "sell"},
	"import":      predict.Files("*.json"),
}

// completion builds the shell completion of the commands registered in c.
func completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags("", flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		root.Sub[cmd.Name()] = &complete.Command{
			Flags: flags(cmd.Name(), fs),
			Args:  argPredictors[cmd.Name()],
		}
	})
	if topics, err := docs.GetAllTopics(); err == nil {
		if t, ok := root.Sub["topic"]; ok {
			t.Args = predict.Set(append(topics, "*"))
		}
	}
	return root
}

func flags(command string, fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[command+"."+f.Name]; ok {
			m[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = predict.Nothing
			return
		}
		m[f.Name] = predict.Something
	})
	return m
}
