package bizcast

import (
	"strings"
	"testing"
)

// trackerAt returns a tracker over the ledger whose clock is frozen on a
// given day, so that validation cutoffs are deterministic.
func trackerAt(ledger LedgerQuery, today string, records ...*Record) *Tracker {
	t := NewTracker(ledger, records...)
	t.today = func() Date { return MustParseDate(today) }
	return t
}

func january() Range {
	return NewRange(MustParseDate("2025-01-01"), MustParseDate("2025-01-31"))
}

func TestTrackerSaveForecastUpserts(t *testing.T) {
	tracker := trackerAt(NewLedger(), "2025-01-01")

	first := tracker.SaveForecast(Projection{Revenue: EUR(1000), Expenses: EUR(600), Method: AdditiveHW}, january())
	second := tracker.SaveForecast(Projection{Revenue: EUR(1100), Expenses: EUR(650), NewCustomers: 2, Confidence: 0.7, Method: MultiplicativeHW}, january())

	if len(tracker.Records()) != 1 {
		t.Fatalf("got %d records, want 1 (upsert, not append)", len(tracker.Records()))
	}
	if first != second {
		t.Error("second save should overwrite the first record in place")
	}
	r := tracker.Records()[0]
	if r.ID == "" {
		t.Error("record has no ID")
	}
	if !r.ForecastedRevenue.Equal(EUR(1100)) || !r.ForecastedExpenses.Equal(EUR(650)) {
		t.Errorf("record keeps stale forecast: %s / %s", r.ForecastedRevenue, r.ForecastedExpenses)
	}
	if !r.ForecastedProfit.Equal(EUR(450)) {
		t.Errorf("forecasted profit = %s, want %s", r.ForecastedProfit, EUR(450))
	}
	if r.Method != MultiplicativeHW || r.ForecastedNewCustomers != 2 {
		t.Errorf("record not fully overwritten: %+v", r)
	}

	// A different period is a different record.
	february := NewRange(MustParseDate("2025-02-01"), MustParseDate("2025-02-28"))
	tracker.SaveForecast(Projection{Revenue: EUR(900)}, february)
	if len(tracker.Records()) != 2 {
		t.Fatalf("got %d records, want 2", len(tracker.Records()))
	}
}

func TestTrackerValidatePastForecasts(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewRevenue(MustParseDate("2025-01-10"), "acme", EUR(900), ""),
		NewExpense(MustParseDate("2025-01-15"), "rent", EUR(500), ""),
	)

	tracker := trackerAt(ledger, "2025-01-01")
	tracker.SaveForecast(Projection{Revenue: EUR(1000), Expenses: EUR(600)}, january())

	// The period has not elapsed yet: nothing to validate.
	if n := tracker.ValidatePastForecasts(); n != 0 {
		t.Fatalf("validated %d records before the period end", n)
	}

	// On the last day of the period it is still too early.
	tracker.today = func() Date { return MustParseDate("2025-01-31") }
	if n := tracker.ValidatePastForecasts(); n != 0 {
		t.Fatal("validated a record whose period end is today")
	}

	tracker.today = func() Date { return MustParseDate("2025-02-01") }
	if n := tracker.ValidatePastForecasts(); n != 1 {
		t.Fatalf("validated %d records, want 1", n)
	}

	r := tracker.Records()[0]
	if !r.Validated {
		t.Fatal("record not marked validated")
	}
	if !r.ActualRevenue.Equal(EUR(900)) || !r.ActualExpenses.Equal(EUR(500)) || !r.ActualProfit.Equal(EUR(400)) {
		t.Errorf("actuals = %s / %s / %s", r.ActualRevenue, r.ActualExpenses, r.ActualProfit)
	}
	if r.ActualNewCustomers != 1 {
		t.Errorf("actual new customers = %d, want 1", r.ActualNewCustomers)
	}
	// forecast 1000 vs actual 900: off by 100/900.
	if want := Percent(100 - 100.0/900.0*100); !r.RevenueAccuracy.Equal(want) {
		t.Errorf("revenue accuracy = %s, want %s", r.RevenueAccuracy, want)
	}
	if want := Percent(80); !r.ExpenseAccuracy.Equal(want) {
		t.Errorf("expense accuracy = %s, want %s", r.ExpenseAccuracy, want)
	}

	// Validation is frozen: later ledger activity must not change it.
	ledger.Append(NewRevenue(MustParseDate("2025-01-20"), "globex", EUR(5000), "late entry"))
	if n := tracker.ValidatePastForecasts(); n != 0 {
		t.Fatal("re-validated an already validated record")
	}
	if !tracker.Records()[0].ActualRevenue.Equal(EUR(900)) {
		t.Error("validated actuals changed on a second pass")
	}
}

func TestAccuracyPercent(t *testing.T) {
	testCases := []struct {
		name     string
		actual   Money
		forecast Money
		want     Percent
	}{
		{name: "under forecast", actual: EUR(1000), forecast: EUR(900), want: 90},
		{name: "over forecast", actual: EUR(1000), forecast: EUR(1100), want: 90},
		{name: "spot on", actual: EUR(1234.56), forecast: EUR(1234.56), want: 100},
		{name: "way off clips to zero", actual: EUR(100), forecast: EUR(500), want: 0},
		{name: "zero actual zero forecast", actual: EUR(0), forecast: EUR(0), want: 100},
		{name: "zero actual nonzero forecast", actual: EUR(0), forecast: EUR(10), want: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := accuracyPercent(tc.actual, tc.forecast); !got.Equal(tc.want) {
				t.Errorf("accuracyPercent(%s, %s) = %s, want %s", tc.actual, tc.forecast, got, tc.want)
			}
		})
	}
}

// seedRecords builds four monthly records, the first validated, the rest not.
func seedRecords() []*Record {
	months := []string{"2025-01", "2025-02", "2025-03", "2025-04"}
	var records []*Record
	for i, m := range months {
		start := MustParseDate(m + "-01")
		records = append(records, &Record{
			ID:          m,
			PeriodStart: start,
			PeriodEnd:   start.EndOfMonth(),
			Validated:   i == 0,
		})
	}
	records[0].RevenueAccuracy = 90
	records[0].ExpenseAccuracy = 80
	return records
}

func TestTrackerAccuracyData(t *testing.T) {
	tracker := trackerAt(NewLedger(), "2025-01-01", seedRecords()...)
	data := tracker.AccuracyData()

	if len(data.Records) != 4 {
		t.Fatalf("got %d records, want 4", len(data.Records))
	}
	for i := 1; i < len(data.Records); i++ {
		if data.Records[i-1].PeriodStart.Before(data.Records[i].PeriodStart) {
			t.Fatal("records not ordered by period start descending")
		}
	}
	if data.ValidatedCount != 1 {
		t.Errorf("validated count = %d, want 1", data.ValidatedCount)
	}
	if !data.AvgRevenueAccuracy.Equal(90) || !data.AvgExpenseAccuracy.Equal(80) {
		t.Errorf("averages = %s / %s", data.AvgRevenueAccuracy, data.AvgExpenseAccuracy)
	}
	if acc, ok := data.MethodAccuracy[AdditiveHW]; !ok || !acc.Equal(85) {
		t.Errorf("method accuracy = %v, want additive at 85%%", data.MethodAccuracy)
	}
}

func TestAccuracyDataMethodTally(t *testing.T) {
	additive := &Record{
		PeriodStart: MustParseDate("2025-01-01"), PeriodEnd: MustParseDate("2025-01-31"),
		Validated: true, Method: AdditiveHW, RevenueAccuracy: 90, ExpenseAccuracy: 80,
	}
	multiplicative := &Record{
		PeriodStart: MustParseDate("2025-02-01"), PeriodEnd: MustParseDate("2025-02-28"),
		Validated: true, Method: MultiplicativeHW, RevenueAccuracy: 70, ExpenseAccuracy: 60,
	}
	pending := &Record{
		PeriodStart: MustParseDate("2025-03-01"), PeriodEnd: MustParseDate("2025-03-31"),
		Method: MultiplicativeHW, RevenueAccuracy: 1, // not validated: must not count
	}
	tracker := trackerAt(NewLedger(), "2025-03-01", additive, multiplicative, pending)
	data := tracker.AccuracyData()

	if acc := data.MethodAccuracy[AdditiveHW]; !acc.Equal(85) {
		t.Errorf("additive accuracy = %s, want 85%%", acc)
	}
	if acc := data.MethodAccuracy[MultiplicativeHW]; !acc.Equal(65) {
		t.Errorf("multiplicative accuracy = %s, want 65%%", acc)
	}
	if best, ok := data.BestMethod(); !ok || best != AdditiveHW {
		t.Errorf("best method = %v (%v), want additive", best, ok)
	}
	if worst, ok := data.WorstMethod(); !ok || worst != MultiplicativeHW {
		t.Errorf("worst method = %v (%v), want multiplicative", worst, ok)
	}

	if _, ok := (AccuracyData{}).BestMethod(); ok {
		t.Error("best method reported with no validated record")
	}
}

func TestTrackerRecentAccuracy(t *testing.T) {
	tracker := trackerAt(NewLedger(), "2025-01-01")
	if _, _, ok := tracker.RecentAccuracy(DefaultRecentForecasts); ok {
		t.Fatal("RecentAccuracy reported data with no validated record")
	}

	// Two validated records; the window of one must pick the later period.
	early := &Record{
		PeriodStart: MustParseDate("2025-01-01"), PeriodEnd: MustParseDate("2025-01-31"),
		Validated: true, RevenueAccuracy: 60, ExpenseAccuracy: 50,
	}
	late := &Record{
		PeriodStart: MustParseDate("2025-02-01"), PeriodEnd: MustParseDate("2025-02-28"),
		Validated: true, RevenueAccuracy: 90, ExpenseAccuracy: 70,
	}
	tracker = trackerAt(NewLedger(), "2025-03-01", early, late)

	rev, exp, ok := tracker.RecentAccuracy(2)
	if !ok {
		t.Fatal("RecentAccuracy reported no data")
	}
	if !rev.Equal(75) || !exp.Equal(60) {
		t.Errorf("RecentAccuracy = %s / %s, want 75%% / 60%%", rev, exp)
	}

	rev, exp, ok = tracker.RecentAccuracy(1)
	if !ok || !rev.Equal(90) || !exp.Equal(70) {
		t.Errorf("RecentAccuracy(1) = %s / %s, want the most recently ended record", rev, exp)
	}
}

func TestTrackerAccuracySummary(t *testing.T) {
	tracker := trackerAt(NewLedger(), "2025-01-01")
	if got := tracker.AccuracySummary(); !strings.Contains(got, "No forecast accuracy data yet") {
		t.Errorf("empty summary = %q", got)
	}

	r := &Record{
		PeriodStart: MustParseDate("2025-01-01"), PeriodEnd: MustParseDate("2025-01-31"),
		Validated: true, RevenueAccuracy: 92, ExpenseAccuracy: 88,
	}
	tracker = trackerAt(NewLedger(), "2025-02-15", r)
	got := tracker.AccuracySummary()
	// avg accuracy 90% -> ±10.0% error margin.
	want := "Based on 1 validated forecast(s), predictions were within ±10.0% of actual values on average."
	if got != want {
		t.Errorf("AccuracySummary = %q, want %q", got, want)
	}
}

func TestTrackerCleanupOldRecords(t *testing.T) {
	records := seedRecords() // 1 validated (January) + 3 unvalidated
	tracker := trackerAt(NewLedger(), "2025-01-01", records...)

	if removed := tracker.CleanupOldRecords(10); removed != 0 {
		t.Fatalf("cleanup under the cap removed %d records", removed)
	}

	if removed := tracker.CleanupOldRecords(2); removed != 2 {
		t.Fatalf("cleanup removed %d records, want 2", removed)
	}
	kept := tracker.Records()
	if len(kept) != 2 {
		t.Fatalf("got %d records after cleanup, want 2", len(kept))
	}
	// The validated record survives, plus the most recent unvalidated one.
	if !kept[0].Validated || kept[0].ID != "2025-01" {
		t.Errorf("kept[0] = %+v, want the validated January record", kept[0])
	}
	if kept[1].ID != "2025-04" {
		t.Errorf("kept[1] = %+v, want the April record", kept[1])
	}
}
