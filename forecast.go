package bizcast

import (
	"fmt"
	"math"
)

// Smoothing constants of the Holt-Winters engine. They are fixed: exposing
// them per call would make stored forecasts incomparable over time.
const (
	levelAlpha  = 0.3
	trendBeta   = 0.1
	seasonGamma = 0.2
	// epsilon floors denominators and multiplicative factors.
	epsilon = 0.0001
)

// Method identifies the forecasting method that produced a Forecast.
type Method int

const (
	// AdditiveHW is Holt-Winters smoothing with additive seasonality.
	AdditiveHW Method = iota
	// MultiplicativeHW is Holt-Winters smoothing with multiplicative seasonality.
	MultiplicativeHW
	// SimpleExponential is the single-smoothing fallback for short series.
	SimpleExponential
	// NoData marks a forecast produced from an empty series.
	NoData
)

func (m Method) String() string {
	switch m {
	case AdditiveHW:
		return "additive"
	case MultiplicativeHW:
		return "multiplicative"
	case SimpleExponential:
		return "simple"
	case NoData:
		return "no-data"
	default:
		return "unknown"
	}
}

// ParseMethod parses a string into a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "additive":
		return AdditiveHW, nil
	case "multiplicative":
		return MultiplicativeHW, nil
	case "simple":
		return SimpleExponential, nil
	case "no-data":
		return NoData, nil
	default:
		return 0, fmt.Errorf("unknown forecast method: %q", s)
	}
}

func (m Method) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.String())), nil
}

func (m *Method) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid forecast method: %s", string(b))
	}
	parsed, err := ParseMethod(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Forecast is the outcome of a forecasting run: the predicted values for
// the requested horizons, the seasonal diagnostics, and the final smoothed
// state. Predicted values are never negative.
type Forecast struct {
	Values   []float64
	Seasonal SeasonalPattern
	Level    float64
	Trend    float64
	Method   Method
}

// ForecastAdditive predicts the next periods of the series using additive
// Holt-Winters smoothing with the given season length. The series must
// cover at least two full seasons; shorter series fall back to simple
// exponential smoothing. It never fails: degenerate input routes to the
// fallback, not to an error.
func ForecastAdditive(series []float64, seasonLength, periods int) Forecast {
	seasonLength, periods = saneArgs(seasonLength, periods)
	n := len(series)
	if n < seasonLength*2 {
		return forecastSmoothed(series, periods)
	}

	level, trend, seasonal := initAdditive(series, seasonLength)

	for t := 1; t < n; t++ {
		idx := t % seasonLength
		s := seasonal[idx]
		prevLevel := level
		level = levelAlpha*(series[t]-s) + (1-levelAlpha)*(prevLevel+trend)
		trend = trendBeta*(level-prevLevel) + (1-trendBeta)*trend
		seasonal[idx] = seasonGamma*(series[t]-level) + (1-seasonGamma)*s
	}

	values := make([]float64, periods)
	for h := 1; h <= periods; h++ {
		idx := (n - 1 + h) % seasonLength
		values[h-1] = math.Max(0, level+float64(h)*trend+seasonal[idx])
	}

	strength := 0.0
	if v := sampleVariance(series); v > 0 {
		var msq float64
		for _, s := range seasonal {
			msq += s * s
		}
		msq /= float64(seasonLength)
		strength = math.Min(1, msq/v)
	}

	return Forecast{
		Values: values,
		Seasonal: SeasonalPattern{
			SeasonLength: seasonLength,
			Factors:      seasonal,
			Strength:     strength,
			Direction:    trendDirectionOf(trend),
			Slope:        trend,
			Description:  describeSeasonality(seasonal, strength),
		},
		Level:  level,
		Trend:  trend,
		Method: AdditiveHW,
	}
}

// ForecastMultiplicative predicts the next periods of the series using
// multiplicative Holt-Winters smoothing, where seasonal factors are ratios
// to the level. Ratios are undefined at zero, so a series containing any
// value ≤ 0 delegates to ForecastAdditive.
func ForecastMultiplicative(series []float64, seasonLength, periods int) Forecast {
	seasonLength, periods = saneArgs(seasonLength, periods)
	for _, v := range series {
		if v <= 0 {
			return ForecastAdditive(series, seasonLength, periods)
		}
	}
	n := len(series)
	if n < seasonLength*2 {
		return forecastSmoothed(series, periods)
	}

	level := mean(series[:seasonLength])
	trend := (mean(series[seasonLength:2*seasonLength]) - level) / float64(seasonLength)
	seasonal := make([]float64, seasonLength)
	for i := range seasonal {
		f := series[i] / math.Max(level, epsilon)
		if f <= 0 {
			f = epsilon
		}
		seasonal[i] = f
	}

	for t := 1; t < n; t++ {
		idx := t % seasonLength
		s := seasonal[idx]
		prevLevel := level
		level = levelAlpha*(series[t]/math.Max(s, epsilon)) + (1-levelAlpha)*(prevLevel+trend)
		trend = trendBeta*(level-prevLevel) + (1-trendBeta)*trend
		seasonal[idx] = seasonGamma*(series[t]/math.Max(level, epsilon)) + (1-seasonGamma)*s
	}

	values := make([]float64, periods)
	for h := 1; h <= periods; h++ {
		idx := (n - 1 + h) % seasonLength
		values[h-1] = math.Max(0, (level+float64(h)*trend)*seasonal[idx])
	}

	var dev float64
	for _, s := range seasonal {
		dev += math.Abs(s - 1)
	}
	strength := math.Min(1, dev/float64(seasonLength)*5)

	return Forecast{
		Values: values,
		Seasonal: SeasonalPattern{
			SeasonLength: seasonLength,
			Factors:      seasonal,
			Strength:     strength,
			Direction:    trendDirectionOf(trend),
			Slope:        trend,
			Description:  describeSeasonality(seasonal, strength),
		},
		Level:  level,
		Trend:  trend,
		Method: MultiplicativeHW,
	}
}

// AutoForecast picks between additive and multiplicative seasonality.
//
// When the spread of each seasonal position scales consistently with the
// level (the per-position coefficients of variation barely vary), the
// seasonality is proportional and the multiplicative model fits better;
// otherwise the additive one is the safer choice.
func AutoForecast(series []float64, seasonLength, periods int) Forecast {
	seasonLength, periods = saneArgs(seasonLength, periods)
	if len(series) < seasonLength {
		return forecastSmoothed(series, periods)
	}
	for _, v := range series {
		if v <= 0 {
			return ForecastAdditive(series, seasonLength, periods)
		}
	}

	cvs := make([]float64, 0, seasonLength)
	for pos := 0; pos < seasonLength; pos++ {
		var cycle []float64
		for i := pos; i < len(series); i += seasonLength {
			cycle = append(cycle, series[i])
		}
		cvs = append(cvs, stdDev(cycle)/mean(cycle))
	}

	if stdDev(cvs) < 0.3 {
		return ForecastMultiplicative(series, seasonLength, periods)
	}
	return ForecastAdditive(series, seasonLength, periods)
}

// DetectSeasonLength returns the candidate season length that best explains
// the series. Short series (< 24 points) cannot support an autocorrelation
// estimate, so the first candidate fitting twice into the series wins.
// With no usable candidate it returns 1, meaning no seasonality.
func DetectSeasonLength(series []float64, candidates []int) int {
	if len(candidates) == 0 {
		candidates = []int{2, 3, 4, 6, 12}
	}
	n := len(series)

	if n < 24 {
		for _, c := range candidates {
			if c >= 1 && c <= n/2 {
				return c
			}
		}
		return 1
	}

	best, bestCorr := 1, math.Inf(-1)
	for _, c := range candidates {
		if c < 1 || c > n/2 {
			continue
		}
		if corr := autocorrelation(series, c); corr > bestCorr {
			best, bestCorr = c, corr
		}
	}
	return best
}

// forecastSmoothed is the fallback for series too short to estimate a
// seasonal cycle: single exponential smoothing plus a linear trend drawn
// between the first and last observations.
func forecastSmoothed(series []float64, periods int) Forecast {
	if len(series) == 0 {
		return Forecast{
			Values:   make([]float64, periods),
			Seasonal: SeasonalPattern{SeasonLength: 1, Description: "no seasonal pattern detected"},
			Method:   NoData,
		}
	}

	smoothed := series[0]
	for _, v := range series[1:] {
		smoothed = levelAlpha*v + (1-levelAlpha)*smoothed
	}

	var trend float64
	if len(series) > 1 {
		trend = (series[len(series)-1] - series[0]) / float64(len(series)-1)
	}

	values := make([]float64, periods)
	for h := 1; h <= periods; h++ {
		values[h-1] = math.Max(0, smoothed+float64(h)*trend)
	}

	return Forecast{
		Values: values,
		Seasonal: SeasonalPattern{
			SeasonLength: 1,
			Direction:    trendDirectionOf(trend),
			Slope:        trend,
			Description:  "no seasonal pattern detected",
		},
		Level:  smoothed,
		Trend:  trend,
		Method: SimpleExponential,
	}
}

// initAdditive computes the starting level, trend and seasonal deviations
// from the first two seasons of the series.
func initAdditive(series []float64, seasonLength int) (level, trend float64, seasonal []float64) {
	level = mean(series[:seasonLength])
	trend = (mean(series[seasonLength:2*seasonLength]) - level) / float64(seasonLength)
	seasonal = make([]float64, seasonLength)
	for i := range seasonal {
		seasonal[i] = series[i] - level
	}
	return level, trend, seasonal
}

func saneArgs(seasonLength, periods int) (int, int) {
	if seasonLength < 1 {
		seasonLength = 1
	}
	if periods < 1 {
		periods = 1
	}
	return seasonLength, periods
}
