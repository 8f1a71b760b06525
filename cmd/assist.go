package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/dungeon/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `assist [<question>]

  Starts an interactive session with an assistant that can read the runs,
  the history, the stock and the trades. It requires a Gemini API key,
  from GEMINI_API_KEY or the gemini_api_key configuration.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		if a.cfg.GeminiAPIKey == "" {
			fmt.Fprintf(os.Stderr, "missing Gemini API key, set %s\n", EnvGemini)
			return subcommands.ExitFailure
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  a.cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
			return subcommands.ExitFailure
		}

		coach := agent.NewCoach(a.store, a.loc, &a.log)
		accountant := agent.NewAccountant(a.store, a.loc, &a.log)
		assistant := agent.New(os.Stdout, os.Stdin, coach, accountant)

		if err := assistant.Run(ctx, client, initialPrompt); err != nil {
			fmt.Fprintln(os.Stderr, "Agent failed:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
