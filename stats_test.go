package bizcast

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMean(t *testing.T) {
	testCases := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "empty", values: nil, want: 0},
		{name: "single", values: []float64{42}, want: 42},
		{name: "several", values: []float64{1, 2, 3, 4}, want: 2.5},
	}
	for _, tc := range testCases {
		if got := mean(tc.values); !almostEqual(got, tc.want) {
			t.Errorf("%s: mean = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSampleVariance(t *testing.T) {
	testCases := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "empty", values: nil, want: 0},
		{name: "single", values: []float64{7}, want: 0},
		{name: "constant", values: []float64{5, 5, 5}, want: 0},
		{name: "known", values: []float64{2, 4, 4, 4, 5, 5, 7, 9}, want: 32.0 / 7.0},
	}
	for _, tc := range testCases {
		if got := sampleVariance(tc.values); !almostEqual(got, tc.want) {
			t.Errorf("%s: sampleVariance = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAutocorrelation(t *testing.T) {
	alternating := []float64{1, -1, 1, -1, 1, -1, 1, -1}

	if got := autocorrelation(alternating, 2); got <= 0 {
		t.Errorf("autocorrelation(alternating, 2) = %v, want > 0", got)
	}
	if got := autocorrelation(alternating, 1); got >= 0 {
		t.Errorf("autocorrelation(alternating, 1) = %v, want < 0", got)
	}
	if got := autocorrelation([]float64{3, 3, 3, 3}, 1); got != 0 {
		t.Errorf("autocorrelation(constant) = %v, want 0", got)
	}
	if got := autocorrelation(alternating, 0); got != 0 {
		t.Errorf("autocorrelation(lag 0) = %v, want 0", got)
	}
	if got := autocorrelation(alternating, 8); got != 0 {
		t.Errorf("autocorrelation(lag beyond series) = %v, want 0", got)
	}
}
