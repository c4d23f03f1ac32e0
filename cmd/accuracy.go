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

type accuracyCmd struct{}

func (*accuracyCmd) Name() string     { return "accuracy" }
func (*accuracyCmd) Synopsis() string { return "report how accurate past forecasts turned out" }
func (*accuracyCmd) Usage() string {
	return `bzc accuracy

  Validates every saved forecast whose period has elapsed against the
  actuals in the ledger, then reports the whole track record, newest first.
`
}

func (c *accuracyCmd) SetFlags(f *flag.FlagSet) {}

func (c *accuracyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	tracker := bizcast.NewTracker(ledger, records...)
	data := tracker.AccuracyData()

	// Newly validated records are frozen back to disk.
	if err := EncodeForecasts(tracker.Records()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderAccuracy(renderer.NewAccuracyReport(data, tracker.AccuracySummary())))

	return subcommands.ExitSuccess
}
