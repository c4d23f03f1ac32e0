package bizcast

import (
	"fmt"
	"time"
)

// TrendDirection qualifies the direction of the smoothed trend component.
type TrendDirection int

const (
	Stable TrendDirection = iota
	Increasing
	Decreasing
)

func (d TrendDirection) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

func (d TrendDirection) String() string {
	switch d {
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	default:
		return "stable"
	}
}

// trendDirectionOf classifies a per-period slope. Slopes within ±0.01 are
// considered noise.
func trendDirectionOf(slope float64) TrendDirection {
	switch {
	case slope > 0.01:
		return Increasing
	case slope < -0.01:
		return Decreasing
	default:
		return Stable
	}
}

// SeasonalPattern describes the seasonal component extracted by a forecast.
type SeasonalPattern struct {
	SeasonLength int            `json:"seasonLength"`
	Factors      []float64      `json:"seasonalFactors,omitempty"` // one per position in the cycle
	Strength     float64        `json:"seasonalStrength"`          // in [0,1]
	Direction    TrendDirection `json:"trendDirection"`
	Slope        float64        `json:"trendSlope"`
	Description  string         `json:"description"`
}

// seasonLabels returns human labels for each position of a cycle of the
// given length, assuming the series starts on the first period of a year.
func seasonLabels(seasonLength int) []string {
	switch seasonLength {
	case 12:
		labels := make([]string, 12)
		for i := range labels {
			labels[i] = time.Month(i + 1).String()
		}
		return labels
	case 6:
		return []string{"Jan-Feb", "Mar-Apr", "May-Jun", "Jul-Aug", "Sep-Oct", "Nov-Dec"}
	case 4:
		return []string{"Q1", "Q2", "Q3", "Q4"}
	case 3:
		return []string{"beginning of year", "middle of year", "end of year"}
	case 2:
		return []string{"first half", "second half"}
	default:
		labels := make([]string, seasonLength)
		for i := range labels {
			labels[i] = fmt.Sprintf("period %d", i+1)
		}
		return labels
	}
}

// strengthQualifier maps a seasonal strength in [0,1] to a wording.
func strengthQualifier(strength float64) string {
	switch {
	case strength < 0.25:
		return "mild"
	case strength < 0.5:
		return "moderate"
	default:
		return "strong"
	}
}

// describeSeasonality names the peak and trough positions of the cycle.
func describeSeasonality(factors []float64, strength float64) string {
	if len(factors) < 2 {
		return "no seasonal pattern detected"
	}
	peak, trough := 0, 0
	for i, f := range factors {
		if f > factors[peak] {
			peak = i
		}
		if f < factors[trough] {
			trough = i
		}
	}
	labels := seasonLabels(len(factors))
	return fmt.Sprintf("%s seasonality: peak in %s, trough in %s",
		strengthQualifier(strength), labels[peak], labels[trough])
}
