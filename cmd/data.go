package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/dungeon"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the data to a JSON file" }
func (*exportCmd) Usage() string {
	return `export [-o <file>]

  Writes the whole data as an indented JSON document. The default file is
  named after the current time, dungeon_backup_YYYYMMDD_HHMM.json. Use -o -
  to write on the standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		data, err := dungeon.EncodeDocument(a.store.State(), true)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if c.output == "-" {
			fmt.Println(string(data))
			return subcommands.ExitSuccess
		}
		name := c.output
		if name == "" {
			name = dungeon.BackupFileName(a.store.Now(), a.loc)
		}
		if err := os.WriteFile(name, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		fmt.Println(name)
		return subcommands.ExitSuccess
	})
}

type importCmd struct {
	yes bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the data by an exported file" }
func (*importCmd) Usage() string {
	return `import [-y] <file>

  Replaces the whole data by the content of a file written by 'dcl export'.
  An invalid file is rejected and the data is left untouched.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	data, err := os.ReadFile(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	st, err := dungeon.ParseDocument(data)
	if errors.Is(err, dungeon.ErrInvalidDocument) {
		fmt.Fprintln(os.Stderr, "올바르지 않은 파일입니다:", err)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if !c.yes && !confirm(os.Stdin, os.Stdout, "현재 데이터를 모두 덮어씁니다.") {
		return subcommands.ExitSuccess
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		a.store.ImportData(st)
		fmt.Printf("불러오기 완료: 히스토리 %d개, 거래 %d건\n", len(st.History), len(st.TradeHistory))
		return subcommands.ExitSuccess
	})
}

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the data" }
func (*queryCmd) Usage() string {
	return `query <jsonpath>

  Evaluates a JSONPath expression against the exported document and prints
  the result as JSON. For instance:

    dcl query '$.history[*].avgTime'
    dcl query '$.tradeHistory[?(@.type == "sell")].netProfit'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		out, err := query(a.store.State(), f.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
		return subcommands.ExitSuccess
	})
}

// query evaluates path against the document of st.
func query(st *dungeon.AppState, path string) ([]byte, error) {
	data, err := dungeon.EncodeDocument(st, false)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", path, err)
	}
	return json.MarshalIndent(v, "", "  ")
}
