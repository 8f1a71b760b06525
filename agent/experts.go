package agent

import (
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and of solving the user's request.
			The user plays an online game: they clear dungeon runs against a timer and trade the
			items they loot on the in-game market. Amounts are in 키나, the game currency.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service, they keep the context of your previous questions.

			Devise a plan of questions to ask to each expert and come up with the best response.
			Answer in the language of the user.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewCoach returns the expert of the timed runs of src.
func NewCoach(src Source, loc *time.Location, logger *zerolog.Logger) *Expert {
	lib := []Function{statusFunc(src, loc), historyFunc(src, loc), dailyFunc(src, loc)}
	return &Expert{
		Name: "Coach",
		Description: `This is the Coach. They know the progress of the current session of dungeon runs,
		the time of each run, the average and fastest times and the archived sessions.
		Ask the Coach about pace, progress toward the target and past sessions.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the coach of a player clearing timed dungeon runs.
				Use the Tools to read the current session, the archived sessions and the daily totals.
				Times are formatted MM:SS.cc. Be concrete: quote run numbers and times.
			`}}},
		},
		Library: NewLibrary(lib),
		Logger:  logger,
	}
}

// NewAccountant returns the expert of the trading ledger of src.
func NewAccountant(src Source, loc *time.Location, logger *zerolog.Logger) *Expert {
	lib := []Function{
		inventoryFunc(src), tradesFunc(src, loc), dashboardFunc(src, loc),
		statsFunc(src), sellPreviewFunc(src),
	}
	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. They are in charge of reading the user's trading ledger:
		the item catalog, the stock valued at weighted average cost, the trades with their fees and
		net profits, and the price trends of each item.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's trading ledger.
				Use the Tools to extract the relevant figures:
				  - the stock and its average cost
				  - the trades and their net profit
				  - the daily and weekly profit
				  - the price trend of an item
				Before advising on a sale, preview it.
			`}}},
		},
		Library: NewLibrary(lib),
		Logger:  logger,
	}
}
