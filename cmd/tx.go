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

type txCmd struct {
	start    string
	date     string
	customer string
	head     int
	tail     int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions in the ledger" }
func (*txCmd) Usage() string {
	return `bzc tx [-s <start_date>] [-d <end_date>] [-c <customer>] [-head <n>] [-tail <n>]

  Lists transactions from the ledger, with options for filtering and limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.start, "s", "", "The start date for a custom range.")
	f.StringVar(&p.date, "d", "", "The end date for the range (defaults to today).")
	f.StringVar(&p.customer, "c", "", "Show only the revenues of one customer.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var periodRange bizcast.Range
	// If no date range flags are provided, use the full range of the ledger.
	useFullRange := p.start == "" && p.date == ""

	if !useFullRange {
		endDate, err := parseDateFlag(p.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitFailure
		}
		startDate := ledger.OldestTransactionDate()
		if p.start != "" {
			startDate, err = bizcast.ParseDate(p.start)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
				return subcommands.ExitFailure
			}
		}
		periodRange = bizcast.NewRange(startDate, endDate)
	}

	var filters []func(bizcast.Transaction) bool
	if p.customer != "" {
		filters = append(filters, bizcast.ByCustomer(p.customer))
	}

	var transactions []bizcast.Transaction
	for _, tx := range ledger.Transactions(filters...) {
		if useFullRange || periodRange.Contains(tx.When()) {
			transactions = append(transactions, tx)
		}
	}

	if p.head > 0 && len(transactions) > p.head {
		transactions = transactions[:p.head]
	}
	if p.tail > 0 && len(transactions) > p.tail {
		transactions = transactions[len(transactions)-p.tail:]
	}

	printMarkdown(renderer.Transactions(transactions))

	return subcommands.ExitSuccess
}
