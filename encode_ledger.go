package bizcast

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The ledger is persisted as JSONL, one transaction per line, so that the
// file stays human-readable and git-friendly.

func (v Revenue) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", v.Command)
	w.Append("date", v.Date)
	w.Optional("customer", v.Customer)
	w.Append("amount", v.Amount.Decimal())
	w.Optional("currency", v.Amount.Currency())
	w.Optional("memo", v.Memo)
	return w.MarshalJSON()
}

func (v Expense) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", v.Command)
	w.Append("date", v.Date)
	w.Optional("category", v.Category)
	w.Append("amount", v.Amount.Decimal())
	w.Optional("currency", v.Amount.Currency())
	w.Optional("memo", v.Memo)
	return w.MarshalJSON()
}

// txLine has all possible fields of a persisted transaction line.
type txLine struct {
	Command  CommandType     `json:"command"`
	Date     Date            `json:"date"`
	Customer string          `json:"customer"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Memo     string          `json:"memo"`
}

// DecodeLedger decodes a stream of JSONL transaction lines into a sorted
// Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var line txLine
		if err := json.Unmarshal(lineBytes, &line); err != nil {
			return nil, fmt.Errorf("invalid transaction line %q: %w", string(lineBytes), err)
		}

		switch line.Command {
		case CmdRevenue:
			ledger.Append(NewRevenue(line.Date, line.Customer, M(line.Amount, line.Currency), line.Memo))
		case CmdExpense:
			ledger.Append(NewExpense(line.Date, line.Category, M(line.Amount, line.Currency), line.Memo))
		default:
			return nil, fmt.Errorf("unknown command %q in line %q", line.Command, string(lineBytes))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	return ledger, nil
}

// EncodeTransaction writes a single transaction as one JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	b, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("could not encode %s transaction on %v: %w", tx.What(), tx.When(), err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}
	return nil
}

// EncodeLedger writes the whole ledger in canonical (chronological) JSONL form.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for _, tx := range l.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
