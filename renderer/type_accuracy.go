package renderer

import (
	"github.com/etnz/bizcast"
)

// AccuracyReport is a struct to represent forecast accuracy for rendering.
type AccuracyReport struct {
	AsOf               string          `json:"asOf"`
	ValidatedCount     int             `json:"validatedCount"`
	PendingCount       int             `json:"pendingCount"`
	AvgRevenueAccuracy bizcast.Percent `json:"avgRevenueAccuracy"`
	AvgExpenseAccuracy bizcast.Percent `json:"avgExpenseAccuracy"`
	BestMethod         string          `json:"bestMethod,omitempty"`
	WorstMethod        string          `json:"worstMethod,omitempty"`
	Summary            string          `json:"summary"`
	Records            []AccuracyRow   `json:"records"`
}

// AccuracyRow holds the data for a single tracked forecast line in a report.
// Actual figures are rendered as "-" until the record is validated.
type AccuracyRow struct {
	Period             string        `json:"period"`
	Status             string        `json:"status"`
	ForecastedRevenue  bizcast.Money `json:"forecastedRevenue"`
	ForecastedExpenses bizcast.Money `json:"forecastedExpenses"`
	ActualRevenue      string        `json:"actualRevenue"`
	ActualExpenses     string        `json:"actualExpenses"`
	RevenueAccuracy    string        `json:"revenueAccuracy"`
	ExpenseAccuracy    string        `json:"expenseAccuracy"`
}

// NewAccuracyReport creates a renderer.AccuracyReport from the tracker's
// aggregate view.
func NewAccuracyReport(data bizcast.AccuracyData, summary string) *AccuracyReport {
	r := &AccuracyReport{
		AsOf:               Now().Format("2006-01-02 15:04:05"),
		ValidatedCount:     data.ValidatedCount,
		AvgRevenueAccuracy: data.AvgRevenueAccuracy,
		AvgExpenseAccuracy: data.AvgExpenseAccuracy,
		Summary:            summary,
	}
	if best, ok := data.BestMethod(); ok {
		r.BestMethod = best.String()
	}
	if worst, ok := data.WorstMethod(); ok {
		r.WorstMethod = worst.String()
	}
	for _, rec := range data.Records {
		row := AccuracyRow{
			Period:             rec.Period().String(),
			Status:             "pending",
			ForecastedRevenue:  rec.ForecastedRevenue,
			ForecastedExpenses: rec.ForecastedExpenses,
			ActualRevenue:      "-",
			ActualExpenses:     "-",
			RevenueAccuracy:    "-",
			ExpenseAccuracy:    "-",
		}
		if rec.Validated {
			row.Status = "validated"
			row.ActualRevenue = rec.ActualRevenue.String()
			row.ActualExpenses = rec.ActualExpenses.String()
			row.RevenueAccuracy = rec.RevenueAccuracy.String()
			row.ExpenseAccuracy = rec.ExpenseAccuracy.String()
		} else {
			r.PendingCount++
		}
		r.Records = append(r.Records, row)
	}
	return r
}
