// Package cmd implements the CLI application to keep the books and forecast
// the months ahead.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/bizcast"
	"github.com/google/subcommands"
)

// Commands lists the subcommands a main package registers on its commander.
var Commands = []subcommands.Command{
	&revenueCmd{},
	&expenseCmd{},
	&txCmd{},
	&forecastCmd{},
	&accuracyCmd{},
	&cleanupCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "ledger.jsonl", "Path to the ledger file containing transactions (JSONL format)")
var forecastsFile = flag.String("forecasts-file", "forecasts.jsonl", "Path to the saved forecast records file (JSONL format)")

// DecodeLedger decodes the ledger from the app ledger file. A missing file
// is an empty ledger.
func DecodeLedger() (*bizcast.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return bizcast.NewLedger(), nil
		}
		return nil, fmt.Errorf("could not open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	ledger, err := bizcast.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", *ledgerFile, err)
	}
	return ledger, nil
}

// DecodeForecasts decodes the saved forecast records from the app forecasts
// file. A missing file is an empty history.
func DecodeForecasts() ([]*bizcast.Record, error) {
	f, err := os.Open(*forecastsFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not open forecasts file %q: %w", *forecastsFile, err)
	}
	defer f.Close()

	records, err := bizcast.DecodeForecasts(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode forecasts file %q: %w", *forecastsFile, err)
	}
	return records, nil
}

// EncodeForecasts rewrites the app forecasts file with the given records.
func EncodeForecasts(records []*bizcast.Record) error {
	f, err := os.Create(*forecastsFile)
	if err != nil {
		return fmt.Errorf("could not create forecasts file %q: %w", *forecastsFile, err)
	}
	defer f.Close()

	if err := bizcast.EncodeForecasts(f, records); err != nil {
		return fmt.Errorf("could not write forecasts file %q: %w", *forecastsFile, err)
	}
	return nil
}

// EncodeTransaction appends a single transaction into the app ledger file.
func EncodeTransaction(tx bizcast.Transaction) subcommands.ExitStatus {
	filename := *ledgerFile
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := bizcast.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", filename)
	return subcommands.ExitSuccess
}

// printMarkdown renders a markdown report for the terminal. When the
// terminal cannot be styled the raw markdown is printed instead.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// parseDateFlag parses an optional date flag, defaulting to today.
func parseDateFlag(value string) (bizcast.Date, error) {
	if value == "" {
		return bizcast.Today(), nil
	}
	return bizcast.ParseDate(value)
}
