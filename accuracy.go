package bizcast

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultRecentForecasts is how many validated forecasts the accuracy
	// summary looks back on.
	DefaultRecentForecasts = 6
	// DefaultMaxRecords is the retention cap applied by cleanup.
	DefaultMaxRecords = 24
)

// LedgerQuery is the collaborator the Tracker pulls realized totals from
// when a forecast period has elapsed.
type LedgerQuery interface {
	RevenueBetween(r Range) Money
	ExpensesBetween(r Range) Money
	NewCustomersBetween(r Range) int
}

var _ LedgerQuery = (*Ledger)(nil)

// Projection is a financial forecast for one analysis period, ready to be
// recorded by the Tracker.
type Projection struct {
	Revenue      Money
	Expenses     Money
	NewCustomers int
	Confidence   float64
	Method       Method
}

// Profit returns the projected profit.
func (p Projection) Profit() Money { return p.Revenue.Sub(p.Expenses) }

// Record is one saved forecast for an analysis period. The actual-* fields
// and the accuracy percentages are set exactly once, when the record is
// validated, and are immutable afterwards.
type Record struct {
	ID                     string
	ForecastDate           Date
	PeriodStart            Date
	PeriodEnd              Date
	ForecastedRevenue      Money
	ForecastedExpenses     Money
	ForecastedProfit       Money
	ForecastedNewCustomers int
	Confidence             float64
	Method                 Method
	Validated              bool

	// Set on validation only.
	ActualRevenue      Money
	ActualExpenses     Money
	ActualProfit       Money
	ActualNewCustomers int
	RevenueAccuracy    Percent
	ExpenseAccuracy    Percent
}

// Period returns the analysis period the record forecasts.
func (r *Record) Period() Range { return Range{From: r.PeriodStart, To: r.PeriodEnd} }

// Tracker stores one forecast per analysis period, validates forecasts
// against realized ledger totals once their period has elapsed, and reports
// historical accuracy. It mutates its in-memory record list in place; the
// host is responsible for persistence and for serializing concurrent access.
type Tracker struct {
	ledger  LedgerQuery
	records []*Record
	today   func() Date // swapped in tests
}

// NewTracker creates a Tracker over previously saved records (possibly
// none), pulling actuals from the given ledger.
func NewTracker(ledger LedgerQuery, records ...*Record) *Tracker {
	return &Tracker{ledger: ledger, records: records, today: Today}
}

// Records returns the tracked records in storage (chronological) order.
func (t *Tracker) Records() []*Record { return t.records }

// SaveForecast records a forecast for the given analysis period. If an
// unvalidated record for the exact same period already exists it is
// overwritten in place; saving is an upsert and never duplicates a period.
// The updated or created record is returned.
func (t *Tracker) SaveForecast(p Projection, period Range) *Record {
	for _, r := range t.records {
		if r.Validated || r.PeriodStart != period.From || r.PeriodEnd != period.To {
			continue
		}
		r.ForecastDate = t.today()
		r.ForecastedRevenue = p.Revenue
		r.ForecastedExpenses = p.Expenses
		r.ForecastedProfit = p.Profit()
		r.ForecastedNewCustomers = p.NewCustomers
		r.Confidence = p.Confidence
		r.Method = p.Method
		return r
	}

	r := &Record{
		ID:                     uuid.NewString(),
		ForecastDate:           t.today(),
		PeriodStart:            period.From,
		PeriodEnd:              period.To,
		ForecastedRevenue:      p.Revenue,
		ForecastedExpenses:     p.Expenses,
		ForecastedProfit:       p.Profit(),
		ForecastedNewCustomers: p.NewCustomers,
		Confidence:             p.Confidence,
		Method:                 p.Method,
	}
	t.records = append(t.records, r)
	return r
}

// ValidatePastForecasts freezes accuracy numbers for every unvalidated
// record whose period has fully elapsed (PeriodEnd strictly before today).
// Already-validated records are never touched, making the pass idempotent.
// It returns the number of records validated.
func (t *Tracker) ValidatePastForecasts() int {
	today := t.today()
	validated := 0
	for _, r := range t.records {
		if r.Validated || !r.PeriodEnd.Before(today) {
			continue
		}
		period := r.Period()
		r.ActualRevenue = t.ledger.RevenueBetween(period)
		r.ActualExpenses = t.ledger.ExpensesBetween(period)
		r.ActualProfit = r.ActualRevenue.Sub(r.ActualExpenses)
		r.ActualNewCustomers = t.ledger.NewCustomersBetween(period)
		r.RevenueAccuracy = accuracyPercent(r.ActualRevenue, r.ForecastedRevenue)
		r.ExpenseAccuracy = accuracyPercent(r.ActualExpenses, r.ForecastedExpenses)
		r.Validated = true
		validated++
	}
	return validated
}

// accuracyPercent scores how close a forecast came to the actual value:
// 100 means spot on, 0 means off by the actual amount or more. The actual
// is floored to epsilon so a zero actual does not divide by zero.
func accuracyPercent(actual, forecast Money) Percent {
	base := actual.Decimal().Abs()
	eps := decimal.NewFromFloat(epsilon)
	if base.LessThan(eps) {
		base = eps
	}
	deviation := actual.Sub(forecast).Decimal().Abs().Div(base).Mul(decimal.NewFromInt(100))
	return Percent(100 - deviation.InexactFloat64()).Clip()
}

// AccuracyData is the aggregate view over tracked records.
type AccuracyData struct {
	Records            []*Record // ordered by PeriodStart descending
	ValidatedCount     int
	AvgRevenueAccuracy Percent
	AvgExpenseAccuracy Percent
	MethodAccuracy     map[Method]Percent // mean combined accuracy per method
}

// AccuracyData validates elapsed forecasts and returns the record history,
// newest period first, together with summary statistics.
func (t *Tracker) AccuracyData() AccuracyData {
	t.ValidatePastForecasts()

	records := make([]*Record, len(t.records))
	copy(records, t.records)
	sort.SliceStable(records, func(i, j int) bool {
		return records[j].PeriodStart.Before(records[i].PeriodStart)
	})

	data := AccuracyData{Records: records, MethodAccuracy: map[Method]Percent{}}
	var revSum, expSum float64
	methodSum := map[Method]float64{}
	methodCount := map[Method]int{}
	for _, r := range records {
		if !r.Validated {
			continue
		}
		data.ValidatedCount++
		revSum += float64(r.RevenueAccuracy)
		expSum += float64(r.ExpenseAccuracy)
		methodSum[r.Method] += float64(r.RevenueAccuracy+r.ExpenseAccuracy) / 2
		methodCount[r.Method]++
	}
	if data.ValidatedCount > 0 {
		data.AvgRevenueAccuracy = Percent(revSum / float64(data.ValidatedCount))
		data.AvgExpenseAccuracy = Percent(expSum / float64(data.ValidatedCount))
	}
	for m, sum := range methodSum {
		data.MethodAccuracy[m] = Percent(sum / float64(methodCount[m]))
	}
	return data
}

// BestMethod returns the forecasting method with the highest average
// combined accuracy among validated records. ok is false when nothing is
// validated. Ties keep the first method in declaration order.
func (d AccuracyData) BestMethod() (Method, bool) { return d.rankMethod(true) }

// WorstMethod is the counterpart of BestMethod.
func (d AccuracyData) WorstMethod() (Method, bool) { return d.rankMethod(false) }

func (d AccuracyData) rankMethod(best bool) (Method, bool) {
	var pick Method
	found := false
	for _, m := range []Method{AdditiveHW, MultiplicativeHW, SimpleExponential, NoData} {
		acc, ok := d.MethodAccuracy[m]
		if !ok {
			continue
		}
		switch {
		case !found:
			pick, found = m, true
		case best && acc > d.MethodAccuracy[pick]:
			pick = m
		case !best && acc < d.MethodAccuracy[pick]:
			pick = m
		}
	}
	return pick, found
}

// RecentAccuracy averages the accuracy of the recentCount most-recently-ended
// validated forecasts. ok is false when no validated record exists.
func (t *Tracker) RecentAccuracy(recentCount int) (revenue, expenses Percent, ok bool) {
	recent := t.recentValidated(recentCount)
	if len(recent) == 0 {
		return 0, 0, false
	}
	var revSum, expSum float64
	for _, r := range recent {
		revSum += float64(r.RevenueAccuracy)
		expSum += float64(r.ExpenseAccuracy)
	}
	n := float64(len(recent))
	return Percent(revSum / n), Percent(expSum / n), true
}

// recentValidated returns up to n validated records, most recently ended first.
func (t *Tracker) recentValidated(n int) []*Record {
	var validated []*Record
	for _, r := range t.records {
		if r.Validated {
			validated = append(validated, r)
		}
	}
	sort.SliceStable(validated, func(i, j int) bool {
		if validated[i].PeriodEnd != validated[j].PeriodEnd {
			return validated[j].PeriodEnd.Before(validated[i].PeriodEnd)
		}
		return validated[j].PeriodStart.Before(validated[i].PeriodStart)
	})
	if n > 0 && len(validated) > n {
		validated = validated[:n]
	}
	return validated
}

// AccuracySummary phrases recent forecast accuracy for end users.
func (t *Tracker) AccuracySummary() string {
	recent := t.recentValidated(DefaultRecentForecasts)
	if len(recent) == 0 {
		return "No forecast accuracy data yet: forecasts are validated once their period has elapsed."
	}
	var revSum, expSum float64
	for _, r := range recent {
		revSum += float64(r.RevenueAccuracy)
		expSum += float64(r.ExpenseAccuracy)
	}
	n := float64(len(recent))
	avgAccuracy := (revSum/n + expSum/n) / 2
	errorMargin := 100 - avgAccuracy
	return fmt.Sprintf("Based on %d validated forecast(s), predictions were within ±%.1f%% of actual values on average.", len(recent), errorMargin)
}

// CleanupOldRecords retains at most maxRecords records, keeping validated
// ones first and then the most recent periods. It is an explicit retention
// pass, never invoked automatically, and a no-op under the cap. It returns
// the number of records discarded.
func (t *Tracker) CleanupOldRecords(maxRecords int) int {
	if maxRecords < 0 {
		maxRecords = 0
	}
	if len(t.records) <= maxRecords {
		return 0
	}

	ranked := make([]*Record, len(t.records))
	copy(ranked, t.records)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Validated != ranked[j].Validated {
			return ranked[i].Validated
		}
		return ranked[j].PeriodStart.Before(ranked[i].PeriodStart)
	})

	removed := len(ranked) - maxRecords
	kept := ranked[:maxRecords]
	// Back to storage (chronological) order.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].PeriodStart.Before(kept[j].PeriodStart)
	})
	t.records = kept
	return removed
}
