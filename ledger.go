package bizcast

import (
	"iter"
	"sort"
)

// Ledger represents the list of bookkeeping transactions.
//
// In a Ledger transactions are always in chronological order.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append appends transactions to this ledger and maintains the
// chronological order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// stableSort sorts the ledger by transaction date. The sort is stable, so
// transactions on the same day keep their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// Transactions returns an iterator that yields each transaction in
// chronological order. With no filter every transaction is yielded;
// otherwise a transaction is yielded when any filter accepts it.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := len(filters) == 0
			for _, filter := range filters {
				if filter(tx) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// OldestTransactionDate returns the date of the earliest transaction in the
// ledger, or the zero Date if the ledger is empty.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the latest transaction in the
// ledger, or the zero Date if the ledger is empty.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}

// RevenueBetween computes the total revenue in the date range, boundaries
// included.
func (l *Ledger) RevenueBetween(r Range) Money {
	var total Money
	for _, tx := range l.transactions {
		if tx.When().After(r.To) {
			// The ledger is sorted by date, so it's safe to break.
			break
		}
		if v, ok := tx.(Revenue); ok && r.Contains(v.Date) {
			total = total.Add(v.Amount)
		}
	}
	return total
}

// ExpensesBetween computes the total expenses in the date range, boundaries
// included.
func (l *Ledger) ExpensesBetween(r Range) Money {
	var total Money
	for _, tx := range l.transactions {
		if tx.When().After(r.To) {
			break
		}
		if v, ok := tx.(Expense); ok && r.Contains(v.Date) {
			total = total.Add(v.Amount)
		}
	}
	return total
}

// NewCustomersBetween counts the customers whose earliest revenue
// transaction falls within the date range.
func (l *Ledger) NewCustomersBetween(r Range) int {
	first := make(map[string]Date)
	for _, tx := range l.transactions {
		v, ok := tx.(Revenue)
		if !ok || v.Customer == "" {
			continue
		}
		// The ledger is chronological: the first sighting is the earliest.
		if _, seen := first[v.Customer]; !seen {
			first[v.Customer] = v.Date
		}
	}
	count := 0
	for _, on := range first {
		if r.Contains(on) {
			count++
		}
	}
	return count
}

// MonthlyRevenue aggregates revenue into one total per calendar month of
// the range, oldest first, as a series ready for the forecaster.
func (l *Ledger) MonthlyRevenue(r Range) []float64 {
	return l.monthlySeries(r, func(m Range) Money { return l.RevenueBetween(m) })
}

// MonthlyExpenses aggregates expenses into one total per calendar month of
// the range, oldest first, as a series ready for the forecaster.
func (l *Ledger) MonthlyExpenses(r Range) []float64 {
	return l.monthlySeries(r, func(m Range) Money { return l.ExpensesBetween(m) })
}

// MonthlyNewCustomers counts first-time customers per calendar month of the
// range, oldest first, as a series ready for the forecaster.
func (l *Ledger) MonthlyNewCustomers(r Range) []float64 {
	var series []float64
	for month := range r.Months() {
		series = append(series, float64(l.NewCustomersBetween(month)))
	}
	return series
}

func (l *Ledger) monthlySeries(r Range, total func(Range) Money) []float64 {
	var series []float64
	for month := range r.Months() {
		series = append(series, total(month).Float64())
	}
	return series
}

// ByCustomer returns a predicate that filters revenue transactions by
// customer name.
func ByCustomer(customer string) func(Transaction) bool {
	return func(tx Transaction) bool {
		v, ok := tx.(Revenue)
		return ok && v.Customer == customer
	}
}
