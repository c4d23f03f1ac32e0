package renderer

import (
	"os"
	"time"

	"github.com/etnz/bizcast"
)

// Now is the current time used in reports.
// It reads an environment override so that tests can pin a stable date.
func Now() time.Time {
	if os.Getenv("BIZCAST_TESTING_NOW") != "" {
		t, err := time.Parse("2006-01-02 15:04:05", os.Getenv("BIZCAST_TESTING_NOW"))
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}

// ForecastReport is a struct to represent forecast data for rendering.
type ForecastReport struct {
	AsOf          string          `json:"asOf"`
	Period        bizcast.Range   `json:"period"`
	Revenue       bizcast.Money   `json:"revenue"`
	Expenses      bizcast.Money   `json:"expenses"`
	Profit        bizcast.Money   `json:"profit"`
	NewCustomers  int             `json:"newCustomers"`
	Confidence    bizcast.Percent `json:"confidence"`
	Method        string          `json:"method"`
	HistoryMonths int             `json:"historyMonths"`
	Months        []MonthForecast `json:"months"`
	Seasonality   string          `json:"seasonality"`
	Trend         string          `json:"trend"`
	AccuracyNote  string          `json:"accuracyNote,omitempty"`
}

// MonthForecast holds the projected figures for a single calendar month.
type MonthForecast struct {
	Month    string        `json:"month"`
	Revenue  bizcast.Money `json:"revenue"`
	Expenses bizcast.Money `json:"expenses"`
	Profit   bizcast.Money `json:"profit"`
}

// NewOutlookReport creates the report for a whole outlook, one row per
// forecasted month. The headline projection is the first month's.
func NewOutlookReport(o bizcast.Outlook, accuracyNote string) *ForecastReport {
	var months []MonthForecast
	for i, m := range o.Months {
		p := o.Projection(i)
		months = append(months, MonthForecast{
			Month:    m.From.String()[:7],
			Revenue:  p.Revenue,
			Expenses: p.Expenses,
			Profit:   p.Profit(),
		})
	}
	return NewForecastReport(o.Months[0], o.Projection(0), months, o.Revenue.Seasonal, o.History, accuracyNote)
}

// NewForecastReport creates a renderer.ForecastReport from a projection and
// its seasonal diagnostics.
func NewForecastReport(period bizcast.Range, p bizcast.Projection, months []MonthForecast, pattern bizcast.SeasonalPattern, historyMonths int, accuracyNote string) *ForecastReport {
	return &ForecastReport{
		AsOf:          Now().Format("2006-01-02 15:04:05"),
		Period:        period,
		Revenue:       p.Revenue,
		Expenses:      p.Expenses,
		Profit:        p.Profit(),
		NewCustomers:  p.NewCustomers,
		Confidence:    bizcast.Percent(p.Confidence * 100).Clip(),
		Method:        p.Method.String(),
		HistoryMonths: historyMonths,
		Months:        months,
		Seasonality:   pattern.Description,
		Trend:         pattern.Direction.String(),
		AccuracyNote:  accuracyNote,
	}
}
