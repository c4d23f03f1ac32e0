package bizcast

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdRevenue CommandType = "revenue"
	CmdExpense CommandType = "expense"
)

// Transaction defines the common interface for the financial transactions
// that can be recorded in the ledger.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction.
	When() Date        // When returns the date on which the transaction occurred.
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of transaction.
	Date    Date        `json:"date"`           // Date is the date when the transaction took place.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional note for the transaction.
}

func (t baseCmd) What() CommandType { return t.Command }
func (t baseCmd) When() Date        { return t.Date }

// Revenue records money earned from a customer on a given date.
type Revenue struct {
	baseCmd
	Customer string `json:"customer,omitempty"` // Customer names who paid, used for new-customer counting.
	Amount   Money  `json:"amount"`
}

// NewRevenue creates a new Revenue transaction.
func NewRevenue(on Date, customer string, amount Money, memo string) Revenue {
	return Revenue{
		baseCmd:  baseCmd{Command: CmdRevenue, Date: on, Memo: memo},
		Customer: customer,
		Amount:   amount,
	}
}

// Expense records money spent in a given category on a given date.
type Expense struct {
	baseCmd
	Category string `json:"category,omitempty"`
	Amount   Money  `json:"amount"`
}

// NewExpense creates a new Expense transaction.
func NewExpense(on Date, category string, amount Money, memo string) Expense {
	return Expense{
		baseCmd:  baseCmd{Command: CmdExpense, Date: on, Memo: memo},
		Category: category,
		Amount:   amount,
	}
}
