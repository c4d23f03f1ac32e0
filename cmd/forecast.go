package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bizcast"
	"github.com/etnz/bizcast/renderer"
	"github.com/google/subcommands"
)

type forecastCmd struct {
	date    string
	periods int
	season  int
	method  string
	save    bool
}

func (*forecastCmd) Name() string     { return "forecast" }
func (*forecastCmd) Synopsis() string { return "forecast the months ahead from the ledger history" }
func (*forecastCmd) Usage() string {
	return `bzc forecast [-periods <n>] [-season <n>] [-method <method>] [-save] [-d <date>]

  Aggregates the ledger into monthly revenue and expense totals and projects
  the next months with exponential smoothing. With -save, the projection for
  the next calendar month is recorded so it can later be validated against
  actuals (see 'bzc topic accuracy').

Usage Examples:
# Forecast the next quarter and record next month's projection.
$ bzc forecast -periods 3 -save

`
}

func (p *forecastCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Forecast as of this date (defaults to today).")
	f.IntVar(&p.periods, "periods", 3, "How many months ahead to forecast.")
	f.IntVar(&p.season, "season", 0, "Season length in months. 0 detects it from the history.")
	f.StringVar(&p.method, "method", "auto", "Forecasting method (auto, additive, multiplicative).")
	f.BoolVar(&p.save, "save", false, "Record next month's projection for later validation.")
}

// forecasterFor maps the -method flag to a forecaster. "auto" returns nil,
// letting the outlook pick the model from the series.
func forecasterFor(method string) (bizcast.Forecaster, error) {
	switch method {
	case "auto":
		return nil, nil
	case "additive":
		return bizcast.ForecastAdditive, nil
	case "multiplicative":
		return bizcast.ForecastMultiplicative, nil
	default:
		return nil, fmt.Errorf("unknown method %q (want auto, additive or multiplicative)", method)
	}
}

func (p *forecastCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	forecaster, err := forecasterFor(p.method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
		return subcommands.ExitUsageError
	}

	today, err := parseDateFlag(p.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	records, err := DecodeForecasts()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	outlook := bizcast.NewOutlook(ledger, today, p.periods, p.season, forecaster)

	// Past forecasts qualify the new one.
	tracker := bizcast.NewTracker(ledger, records...)
	tracker.ValidatePastForecasts()
	var note string
	if _, _, ok := tracker.RecentAccuracy(bizcast.DefaultRecentForecasts); ok {
		note = tracker.AccuracySummary()
	}

	if p.save {
		rec := tracker.SaveForecast(outlook.Projection(0), outlook.Months[0])
		if err := EncodeForecasts(tracker.Records()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Recorded forecast for %s.\n", rec.Period())
	}

	printMarkdown(renderer.RenderForecast(renderer.NewOutlookReport(outlook, note)))

	return subcommands.ExitSuccess
}
