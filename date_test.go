package bizcast

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in   string
		want Date
		err  bool
	}{
		{in: "2025-07-01", want: NewDate(2025, time.July, 1)},
		{in: "2025-7-1", want: NewDate(2025, time.July, 1)},
		{in: "2025-13-01", err: true},
		{in: "July 1st", err: true},
	}
	for _, tc := range testCases {
		got, err := ParseDate(tc.in)
		if tc.err {
			if err == nil {
				t.Errorf("ParseDate(%q) should fail", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDateAddMonths(t *testing.T) {
	testCases := []struct {
		name   string
		date   string
		months int
		want   string
	}{
		{name: "next month", date: "2025-01-15", months: 1, want: "2025-02-15"},
		{name: "year rollover", date: "2025-11-10", months: 3, want: "2026-02-10"},
		{name: "backwards", date: "2025-01-15", months: -2, want: "2024-11-15"},
		{name: "day normalization", date: "2025-01-31", months: 1, want: "2025-03-03"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MustParseDate(tc.date).AddMonths(tc.months)
			if got.String() != tc.want {
				t.Errorf("AddMonths(%d) = %s, want %s", tc.months, got, tc.want)
			}
		})
	}
}

func TestMonthOf(t *testing.T) {
	r := MonthOf(MustParseDate("2024-02-10"))
	if r.From.String() != "2024-02-01" || r.To.String() != "2024-02-29" {
		t.Errorf("MonthOf(2024-02-10) = %v", r)
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(MustParseDate("2025-01-01"), MustParseDate("2025-01-31"))
	for _, tc := range []struct {
		date string
		want bool
	}{
		{"2024-12-31", false},
		{"2025-01-01", true},
		{"2025-01-15", true},
		{"2025-01-31", true},
		{"2025-02-01", false},
	} {
		if got := r.Contains(MustParseDate(tc.date)); got != tc.want {
			t.Errorf("Contains(%s) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestRangeMonths(t *testing.T) {
	r := NewRange(MustParseDate("2025-01-15"), MustParseDate("2025-04-02"))
	var got []string
	for m := range r.Months() {
		got = append(got, m.From.String())
	}
	want := []string{"2025-01-01", "2025-02-01", "2025-03-01", "2025-04-01"}
	if len(got) != len(want) {
		t.Fatalf("Months() yielded %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Months()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDateJSON(t *testing.T) {
	d := MustParseDate("2025-08-25")
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-08-25"` {
		t.Errorf("MarshalJSON = %s", b)
	}
	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
