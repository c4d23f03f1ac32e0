package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/bizcast"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func eur(v float64) bizcast.Money { return bizcast.M(v, "EUR") }

// headings parses the rendered markdown and returns the text of every heading,
// making sure the report is structurally valid markdown.
func headings(t *testing.T, md string) []string {
	t.Helper()
	source := []byte(md)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var found []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < h.Lines().Len(); i++ {
			line := h.Lines().At(i)
			b.Write(line.Value(source))
		}
		found = append(found, strings.TrimSpace(b.String()))
		return ast.WalkContinue, nil
	})
	return found
}

func hasHeading(hs []string, want string) bool {
	for _, h := range hs {
		if h == want {
			return true
		}
	}
	return false
}

func testPeriod() bizcast.Range {
	return bizcast.NewRange(bizcast.MustParseDate("2025-09-01"), bizcast.MustParseDate("2025-09-30"))
}

func TestRenderForecast(t *testing.T) {
	t.Setenv("BIZCAST_TESTING_NOW", "2006-01-02 15:04:05")

	p := bizcast.Projection{
		Revenue:      eur(1200),
		Expenses:     eur(700),
		NewCustomers: 2,
		Confidence:   0.72,
		Method:       bizcast.AdditiveHW,
	}
	months := []MonthForecast{
		{Month: "2025-09", Revenue: eur(1200), Expenses: eur(700), Profit: eur(500)},
		{Month: "2025-10", Revenue: eur(1300), Expenses: eur(720), Profit: eur(580)},
	}
	pattern := bizcast.SeasonalPattern{
		SeasonLength: 12,
		Description:  "strong seasonality: peak in December, trough in February",
	}
	report := NewForecastReport(testPeriod(), p, months, pattern, 18, "Recent forecasts were within ±8.0% of actuals.")
	md := RenderForecast(report)

	hs := headings(t, md)
	if !hasHeading(hs, "Forecast for 2025-09-01 to 2025-09-30") {
		t.Errorf("missing title heading in %v", hs)
	}
	if !hasHeading(hs, "Monthly Projections") || !hasHeading(hs, "Seasonality") {
		t.Errorf("missing section headings in %v", hs)
	}

	for _, want := range []string{
		"*As of 2006-01-02 15:04:05*",
		"72.00%",
		"additive",
		"18 month(s)",
		"2025-10",
		"peak in December",
		"Recent forecasts were within",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q:\n%s", want, md)
		}
	}
}

func TestRenderForecastWithoutMonths(t *testing.T) {
	p := bizcast.Projection{Revenue: eur(100), Expenses: eur(50), Method: bizcast.SimpleExponential}
	report := NewForecastReport(testPeriod(), p, nil, bizcast.SeasonalPattern{
		SeasonLength: 1,
		Description:  "no seasonal pattern detected",
	}, 3, "")
	md := RenderForecast(report)

	if hasHeading(headings(t, md), "Monthly Projections") {
		t.Error("monthly section rendered with no monthly data")
	}
	if !strings.Contains(md, "no seasonal pattern detected") {
		t.Errorf("report missing seasonality description:\n%s", md)
	}
}

func TestRenderAccuracy(t *testing.T) {
	t.Setenv("BIZCAST_TESTING_NOW", "2006-01-02 15:04:05")

	data := bizcast.AccuracyData{
		Records: []*bizcast.Record{
			{
				PeriodStart:        bizcast.MustParseDate("2025-02-01"),
				PeriodEnd:          bizcast.MustParseDate("2025-02-28"),
				ForecastedRevenue:  eur(1100),
				ForecastedExpenses: eur(650),
			},
			{
				PeriodStart:        bizcast.MustParseDate("2025-01-01"),
				PeriodEnd:          bizcast.MustParseDate("2025-01-31"),
				ForecastedRevenue:  eur(1000),
				ForecastedExpenses: eur(600),
				Validated:          true,
				ActualRevenue:      eur(900),
				ActualExpenses:     eur(500),
				RevenueAccuracy:    90,
				ExpenseAccuracy:    80,
			},
		},
		ValidatedCount:     1,
		AvgRevenueAccuracy: 90,
		AvgExpenseAccuracy: 80,
		MethodAccuracy:     map[bizcast.Method]bizcast.Percent{bizcast.AdditiveHW: 85},
	}
	report := NewAccuracyReport(data, "Based on 1 validated forecast(s), predictions were within ±15.0% of actual values on average.")
	if report.PendingCount != 1 {
		t.Errorf("pending count = %d, want 1", report.PendingCount)
	}

	md := RenderAccuracy(report)
	hs := headings(t, md)
	if !hasHeading(hs, "Forecast Accuracy") || !hasHeading(hs, "Tracked Forecasts") {
		t.Errorf("missing headings in %v", hs)
	}
	for _, want := range []string{
		"pending",
		"validated",
		"90.00%",
		"within ±15.0%",
		"Best method | additive",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q:\n%s", want, md)
		}
	}
}

func TestRenderAccuracyEmpty(t *testing.T) {
	md := RenderAccuracy(NewAccuracyReport(bizcast.AccuracyData{}, "No forecast accuracy data yet: forecasts are validated once their period has elapsed."))
	if hasHeading(headings(t, md), "Tracked Forecasts") {
		t.Error("records section rendered with no records")
	}
	if !strings.Contains(md, "No forecast accuracy data yet") {
		t.Errorf("report missing empty summary:\n%s", md)
	}
}

func TestTransactions(t *testing.T) {
	txs := []bizcast.Transaction{
		bizcast.NewRevenue(bizcast.MustParseDate("2025-01-10"), "acme", eur(1000), ""),
		bizcast.NewRevenue(bizcast.MustParseDate("2025-01-10"), "globex", eur(500), "retainer"),
		bizcast.NewExpense(bizcast.MustParseDate("2025-01-20"), "rent", eur(800), ""),
	}
	md := Transactions(txs)

	for _, want := range []string{"2025-01-10", "from acme", "from globex", "(retainer)", "on rent"} {
		if !strings.Contains(md, want) {
			t.Errorf("listing missing %q:\n%s", want, md)
		}
	}
	// Repeated dates are blanked for alignment.
	if strings.Count(md, "2025-01-10") != 1 {
		t.Errorf("repeated date not blanked:\n%s", md)
	}

	if md := Transactions(nil); !strings.Contains(md, "No transactions recorded.") {
		t.Errorf("empty listing = %q", md)
	}
}
