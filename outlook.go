package bizcast

import "math"

// Forecaster produces a forecast of the next periods of a series.
type Forecaster func(series []float64, seasonLength, periods int) Forecast

// Outlook bundles the forecasts derived from the ledger's monthly history:
// one per tracked series, aligned on the same forecasted calendar months.
type Outlook struct {
	History      int // number of history months used
	SeasonLength int
	Currency     string
	Revenue      Forecast
	Expenses     Forecast
	Customers    Forecast
	Months       []Range // forecasted calendar months, oldest first
}

// NewOutlook forecasts the ledger's monthly revenue, expenses and new
// customers for the given number of calendar months after today's month.
// A seasonLength of 0 detects the cycle from the revenue history, and a nil
// forecast defaults to AutoForecast.
func NewOutlook(l *Ledger, today Date, periods, seasonLength int, forecast Forecaster) Outlook {
	if forecast == nil {
		forecast = AutoForecast
	}
	if periods < 1 {
		periods = 1
	}

	history := MonthOf(today)
	if oldest := l.OldestTransactionDate(); !oldest.IsZero() {
		history = NewRange(oldest.StartOfMonth(), today.EndOfMonth())
	}
	revenue := l.MonthlyRevenue(history)
	expenses := l.MonthlyExpenses(history)
	customers := l.MonthlyNewCustomers(history)

	if seasonLength <= 0 {
		seasonLength = DetectSeasonLength(revenue, nil)
	}

	o := Outlook{
		History:      len(revenue),
		SeasonLength: seasonLength,
		Currency:     l.RevenueBetween(history).Currency(),
		Revenue:      forecast(revenue, seasonLength, periods),
		Expenses:     forecast(expenses, seasonLength, periods),
		Customers:    forecast(customers, seasonLength, periods),
	}
	for m, i := today.AddMonths(1), 0; i < periods; i++ {
		o.Months = append(o.Months, MonthOf(m))
		m = m.AddMonths(1)
	}
	return o
}

// Projection returns the financial projection for the i-th forecasted month.
func (o Outlook) Projection(i int) Projection {
	customers := 0
	if i < len(o.Customers.Values) {
		customers = int(math.Round(o.Customers.Values[i]))
	}
	return Projection{
		Revenue:      M(o.Revenue.Values[i], o.Currency),
		Expenses:     M(o.Expenses.Values[i], o.Currency),
		NewCustomers: customers,
		Confidence:   o.Confidence(),
		Method:       o.Revenue.Method,
	}
}

// Confidence scores how much to trust the outlook, in [0,1]. It grows with
// the depth of history and the clarity of the seasonal pattern.
func (o Outlook) Confidence() float64 {
	if o.Revenue.Method == NoData {
		return 0
	}
	c := 0.3 + 0.4*math.Min(1, float64(o.History)/24) + 0.3*o.Revenue.Seasonal.Strength
	return math.Min(1, c)
}
