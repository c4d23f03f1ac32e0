package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/bizcast"
)

// Transactions renders a chronological transaction list to markdown.
func Transactions(txs []bizcast.Transaction) string {
	var b strings.Builder
	b.WriteString("# Transactions\n\n")
	if len(txs) == 0 {
		b.WriteString("No transactions recorded.\n")
		return b.String()
	}
	var prev bizcast.Date
	for i, tx := range txs {
		when := tx.When().String()
		if i > 0 && prev == tx.When() {
			// Non-breaking spaces keep same-day lines aligned.
			when = strings.Repeat("\u00A0", len(when))
		}
		fmt.Fprintf(&b, "* %s: %s\n", when, Transaction(tx))
		prev = tx.When()
	}
	return b.String()
}

// Transaction renders the one-line detail of a transaction.
func Transaction(tx bizcast.Transaction) string {
	switch v := tx.(type) {
	case bizcast.Revenue:
		detail := fmt.Sprintf("revenue %s", v.Amount)
		if v.Customer != "" {
			detail += " from " + v.Customer
		}
		if v.Memo != "" {
			detail += fmt.Sprintf(" (%s)", v.Memo)
		}
		return detail
	case bizcast.Expense:
		detail := fmt.Sprintf("expense %s", v.Amount)
		if v.Category != "" {
			detail += " on " + v.Category
		}
		if v.Memo != "" {
			detail += fmt.Sprintf(" (%s)", v.Memo)
		}
		return detail
	default:
		return string(tx.What())
	}
}
