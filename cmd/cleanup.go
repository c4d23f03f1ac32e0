package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bizcast"
	"github.com/google/subcommands"
)

type cleanupCmd struct {
	max int
}

func (*cleanupCmd) Name() string     { return "cleanup" }
func (*cleanupCmd) Synopsis() string { return "trim the saved forecast records" }
func (*cleanupCmd) Usage() string {
	return `bzc cleanup [-max <n>]

  Retains at most N forecast records, keeping validated ones first and then
  the most recent periods. Cleanup never runs on its own.
`
}

func (p *cleanupCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.max, "max", bizcast.DefaultMaxRecords, "Maximum number of records to keep.")
}

func (p *cleanupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	removed := tracker.CleanupOldRecords(p.max)
	if removed == 0 {
		fmt.Println("Nothing to remove.")
		return subcommands.ExitSuccess
	}

	if err := EncodeForecasts(tracker.Records()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed %d record(s), %d kept.\n", removed, len(tracker.Records()))
	return subcommands.ExitSuccess
}
