package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/etnz/bizcast"
	"github.com/etnz/bizcast/docs"
	"github.com/etnz/bizcast/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Files the bookkeeping functions read. The CLI overrides them with the
// values of its own flags before starting a session.
var (
	LedgerFile    = "ledger.jsonl"
	ForecastsFile = "forecasts.jsonl"
)

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// Used by facilitators to know what they can expect from the expert
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user runs a small business and is here primarily to understand how it is doing
			and where it is heading: revenue, expenses, profit, new customers, and how much
			the forecasts can be trusted.

			Devise a plan of questions to ask to each expert and come up with the best response
			to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the expert grounding answers in web search, for
// questions that go beyond the ledger (market conditions, pricing, sector
// news).
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is a market analyst,
		well aware of economic conditions, sectors and pricing practices.
		Ask the Analyst whenever you need recent or grounding information
		that cannot be derived from the user's own books.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a market analyst. You can search and find about anything related to
			markets, sectors, suppliers and pricing. You leverage Google Search to
			ground your assertions in a solid truth, and you know how to relate the
			latest news to a small business owner's concerns.
				`}}},
		},
	}
}

// NewBookkeeper creates the expert in charge of reading the user's ledger
// and forecasts.
func NewBookkeeper() *Expert {

	lib := []Function{MonthlyFigures, NextForecast, ForecastAccuracy}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's ledger of
		revenues and expenses. He can compute monthly figures, produce forecasts for the
		months ahead, and report how accurate past forecasts turned out to be.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's business ledger.
				You know how to use the Tools to extract relevant information about the
				user's revenues, expenses, customers and forecasts. You are part of a team
				of experts; pardon their approximative language and figure out what they meant.

				Use the available tools to get information about the user's business:
				  - monthly revenue and expense figures
				  - a forecast of the months ahead
				  - the accuracy of past forecasts
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

// MonthlyFigures reports the ledger's monthly revenue, expense and profit
// totals over a date range.
var MonthlyFigures = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "MonthlyFigures",
		Description: `MonthlyFigures lists one line per calendar month with the total revenue,
		total expenses and profit booked in the user's ledger. Without arguments it covers
		the whole ledger.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"from": {
					Type: genai.TypeString,
					Description: `The first date to include. The oldest transaction is the default.
					Otherwise it uses the date format below:

					` + must(docs.GetTopic("dates")),
				},
				"to": {
					Type:        genai.TypeString,
					Description: `The last date to include. Today is the default.`,
				},
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of monthly revenue, expenses and profit.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		ledger, err := decodeLedger()
		if err != nil {
			return errResponse(id, "MonthlyFigures", err)
		}

		from, err := parseDate(args, "from", ledger.OldestTransactionDate())
		if err != nil {
			return errResponse(id, "MonthlyFigures", err)
		}
		to, err := parseDate(args, "to", bizcast.Today())
		if err != nil {
			return errResponse(id, "MonthlyFigures", err)
		}
		if from.IsZero() {
			from = to
		}

		return okResponse(id, "MonthlyFigures", monthlyTable(ledger, bizcast.NewRange(from, to)))
	},
}

// NextForecast forecasts the months ahead from the ledger history.
var NextForecast = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "NextForecast",
		Description: `NextForecast projects the user's revenue, expenses, profit and new
		customers for the months ahead, from the monthly history in the ledger. It also
		describes the seasonal pattern found and how much to trust the forecast.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"months": {
					Type:        genai.TypeInteger,
					Description: "How many months ahead to forecast. 3 is the default.",
				},
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted forecast report.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		ledger, err := decodeLedger()
		if err != nil {
			return errResponse(id, "NextForecast", err)
		}

		months := 3
		if m, ok := args["months"].(float64); ok && m >= 1 {
			months = int(m)
		}

		outlook := bizcast.NewOutlook(ledger, bizcast.Today(), months, 0, nil)
		report := renderer.NewOutlookReport(outlook, "")
		return okResponse(id, "NextForecast", renderer.RenderForecast(report))
	},
}

// ForecastAccuracy reports how accurate past forecasts turned out to be.
var ForecastAccuracy = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "ForecastAccuracy",
		Description: `ForecastAccuracy lists the saved forecasts, validates the ones whose
		period has elapsed against the ledger, and reports accuracy percentages.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted accuracy report.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		ledger, err := decodeLedger()
		if err != nil {
			return errResponse(id, "ForecastAccuracy", err)
		}
		records, err := decodeForecasts()
		if err != nil {
			return errResponse(id, "ForecastAccuracy", err)
		}

		tracker := bizcast.NewTracker(ledger, records...)
		report := renderer.NewAccuracyReport(tracker.AccuracyData(), tracker.AccuracySummary())
		return okResponse(id, "ForecastAccuracy", renderer.RenderAccuracy(report))
	},
}

// monthlyTable renders the per-month figures of the range as markdown.
func monthlyTable(ledger *bizcast.Ledger, r bizcast.Range) string {
	var b strings.Builder
	b.WriteString("| Month | Revenue | Expenses | Profit |\n|:---|---:|---:|---:|\n")
	for month := range r.Months() {
		revenue := ledger.RevenueBetween(month)
		expenses := ledger.ExpensesBetween(month)
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			month.From.String()[:7], revenue, expenses, revenue.Sub(expenses).SignedString())
	}
	return b.String()
}

// decodeLedger decodes the ledger from the application's ledger file.
// If the file does not exist, it returns a new empty ledger.
func decodeLedger() (*bizcast.Ledger, error) {
	f, err := os.Open(LedgerFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// If the file doesn't exist, it's an empty ledger.
			return bizcast.NewLedger(), nil
		}
		return nil, fmt.Errorf("could not open ledger file %q: %w", LedgerFile, err)
	}
	defer f.Close()

	ledger, err := bizcast.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", LedgerFile, err)
	}
	return ledger, nil
}

// decodeForecasts decodes the saved forecast records from the application's
// forecasts file. A missing file is an empty history.
func decodeForecasts() ([]*bizcast.Record, error) {
	f, err := os.Open(ForecastsFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not open forecasts file %q: %w", ForecastsFile, err)
	}
	defer f.Close()

	records, err := bizcast.DecodeForecasts(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode forecasts file %q: %w", ForecastsFile, err)
	}
	return records, nil
}

func parseDate(args map[string]any, key string, fallback bizcast.Date) (bizcast.Date, error) {
	idate, hasDate := args[key]
	if !hasDate {
		return fallback, nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return fallback, fmt.Errorf("argument %q is not a string as expected but %T", key, idate)
	}

	date, err := bizcast.ParseDate(sdate)
	if err != nil {
		return fallback, fmt.Errorf("argument %q must be a valid date got %q. Below is the doc about the date format\n\n%s ", key, sdate, must(docs.GetTopic("dates")))
	}

	return date, nil
}
