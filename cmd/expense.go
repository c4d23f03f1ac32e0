package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bizcast"
	"github.com/google/subcommands"
)

type expenseCmd struct {
	date     string
	category string
	amount   float64
	currency string
	memo     string
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record an expense in the ledger" }
func (*expenseCmd) Usage() string {
	return `bzc expense -a <amount> [-c <category>] [-d <date>] [-cur <currency>] [-m <memo>]

  Records money spent on a given date, optionally under a category.

Usage Examples:
# This month's rent.
$ bzc expense -a 800 -c rent

`
}

func (p *expenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Date of the expense (defaults to today).")
	f.StringVar(&p.category, "c", "", "Expense category.")
	f.Float64Var(&p.amount, "a", 0, "Amount spent.")
	f.StringVar(&p.currency, "cur", "EUR", "Currency of the amount.")
	f.StringVar(&p.memo, "m", "", "Optional note.")
}

func (p *expenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.amount <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -a must be a positive amount.")
		return subcommands.ExitUsageError
	}
	on, err := parseDateFlag(p.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := bizcast.NewExpense(on, p.category, bizcast.M(p.amount, p.currency), p.memo)
	return EncodeTransaction(tx)
}
