package bizcast

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// Forecast accuracy records are persisted as JSONL too. The actual-* fields
// and accuracy percentages only appear on validated lines.

func (r *Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.ID)
	w.Append("forecastDate", r.ForecastDate)
	w.Append("periodStart", r.PeriodStart)
	w.Append("periodEnd", r.PeriodEnd)
	w.Optional("currency", r.ForecastedRevenue.Currency())
	w.Append("forecastedRevenue", r.ForecastedRevenue.Decimal())
	w.Append("forecastedExpenses", r.ForecastedExpenses.Decimal())
	w.Append("forecastedProfit", r.ForecastedProfit.Decimal())
	w.Append("forecastedNewCustomers", r.ForecastedNewCustomers)
	w.Append("confidenceScore", r.Confidence)
	w.Append("method", r.Method)
	w.Append("isValidated", r.Validated)
	if r.Validated {
		w.Append("actualRevenue", r.ActualRevenue.Decimal())
		w.Append("actualExpenses", r.ActualExpenses.Decimal())
		w.Append("actualProfit", r.ActualProfit.Decimal())
		w.Append("actualNewCustomers", r.ActualNewCustomers)
		w.Append("revenueAccuracyPercent", float64(r.RevenueAccuracy))
		w.Append("expenseAccuracyPercent", float64(r.ExpenseAccuracy))
	}
	return w.MarshalJSON()
}

// recordLine has all possible fields of a persisted record line.
type recordLine struct {
	ID                     string          `json:"id"`
	ForecastDate           Date            `json:"forecastDate"`
	PeriodStart            Date            `json:"periodStart"`
	PeriodEnd              Date            `json:"periodEnd"`
	Currency               string          `json:"currency"`
	ForecastedRevenue      decimal.Decimal `json:"forecastedRevenue"`
	ForecastedExpenses     decimal.Decimal `json:"forecastedExpenses"`
	ForecastedProfit       decimal.Decimal `json:"forecastedProfit"`
	ForecastedNewCustomers int             `json:"forecastedNewCustomers"`
	Confidence             float64         `json:"confidenceScore"`
	Method                 Method          `json:"method"`
	Validated              bool            `json:"isValidated"`
	ActualRevenue          decimal.Decimal `json:"actualRevenue"`
	ActualExpenses         decimal.Decimal `json:"actualExpenses"`
	ActualProfit           decimal.Decimal `json:"actualProfit"`
	ActualNewCustomers     int             `json:"actualNewCustomers"`
	RevenueAccuracy        float64         `json:"revenueAccuracyPercent"`
	ExpenseAccuracy        float64         `json:"expenseAccuracyPercent"`
}

// DecodeForecasts decodes a stream of JSONL record lines, oldest first.
func DecodeForecasts(r io.Reader) ([]*Record, error) {
	var records []*Record
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}

		var line recordLine
		if err := json.Unmarshal(lineBytes, &line); err != nil {
			return nil, fmt.Errorf("invalid forecast record line %q: %w", string(lineBytes), err)
		}

		rec := &Record{
			ID:                     line.ID,
			ForecastDate:           line.ForecastDate,
			PeriodStart:            line.PeriodStart,
			PeriodEnd:              line.PeriodEnd,
			ForecastedRevenue:      M(line.ForecastedRevenue, line.Currency),
			ForecastedExpenses:     M(line.ForecastedExpenses, line.Currency),
			ForecastedProfit:       M(line.ForecastedProfit, line.Currency),
			ForecastedNewCustomers: line.ForecastedNewCustomers,
			Confidence:             line.Confidence,
			Method:                 line.Method,
			Validated:              line.Validated,
		}
		if line.Validated {
			rec.ActualRevenue = M(line.ActualRevenue, line.Currency)
			rec.ActualExpenses = M(line.ActualExpenses, line.Currency)
			rec.ActualProfit = M(line.ActualProfit, line.Currency)
			rec.ActualNewCustomers = line.ActualNewCustomers
			rec.RevenueAccuracy = Percent(line.RevenueAccuracy)
			rec.ExpenseAccuracy = Percent(line.ExpenseAccuracy)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read forecast records: %w", err)
	}
	return records, nil
}

// EncodeForecasts writes the records as JSONL, one record per line.
func EncodeForecasts(w io.Writer, records []*Record) error {
	out := bufio.NewWriter(w)
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("could not encode forecast record %s: %w", rec.ID, err)
		}
		if _, err := out.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return out.Flush()
}
