package bizcast

import "math"

// Free statistics functions over plain float64 slices. The forecasting
// engine deliberately works on floats: ledger amounts are exact decimals,
// but smoothing constants make exactness meaningless past the ledger.

// mean returns the arithmetic mean of values, 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleVariance returns the unbiased (n-1) variance of values,
// 0 when fewer than two values are given.
func sampleVariance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values)-1)
}

// stdDev returns the sample standard deviation of values.
func stdDev(values []float64) float64 {
	return math.Sqrt(sampleVariance(values))
}

// autocorrelation returns the lag-k autocorrelation of the series:
// sum((y[i]-mean)(y[i+k]-mean)) / sum((y[i]-mean)^2). It returns 0 for a
// constant series or when the lag leaves no overlapping pairs.
func autocorrelation(series []float64, lag int) float64 {
	n := len(series)
	if lag <= 0 || lag >= n {
		return 0
	}
	m := mean(series)
	var num, den float64
	for i := 0; i < n; i++ {
		d := series[i] - m
		den += d * d
	}
	if den == 0 {
		return 0
	}
	for i := 0; i < n-lag; i++ {
		num += (series[i] - m) * (series[i+lag] - m)
	}
	return num / den
}
