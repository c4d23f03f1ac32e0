package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bizcast"
	"github.com/google/subcommands"
)

type revenueCmd struct {
	date     string
	customer string
	amount   float64
	currency string
	memo     string
}

func (*revenueCmd) Name() string     { return "revenue" }
func (*revenueCmd) Synopsis() string { return "record a revenue in the ledger" }
func (*revenueCmd) Usage() string {
	return `bzc revenue -a <amount> [-c <customer>] [-d <date>] [-cur <currency>] [-m <memo>]

  Records money earned on a given date. Naming the customer lets the
  forecaster count first-time customers as new ones.

Usage Examples:
# A 1000 EUR invoice paid by acme today.
$ bzc revenue -a 1000 -c acme

`
}

func (p *revenueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Date of the revenue (defaults to today).")
	f.StringVar(&p.customer, "c", "", "Customer who paid.")
	f.Float64Var(&p.amount, "a", 0, "Amount received.")
	f.StringVar(&p.currency, "cur", "EUR", "Currency of the amount.")
	f.StringVar(&p.memo, "m", "", "Optional note.")
}

func (p *revenueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.amount <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -a must be a positive amount.")
		return subcommands.ExitUsageError
	}
	on, err := parseDateFlag(p.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := bizcast.NewRevenue(on, p.customer, bizcast.M(p.amount, p.currency), p.memo)
	return EncodeTransaction(tx)
}
