package scoring

import (
	"sort"
)

// FactorStats is the observed (min, max) for one feature over the scored
// population, after any winsorization.
type FactorStats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PercentileRange overrides the winsorization percentiles for one feature.
// Both values are fractions in [0, 1].
type PercentileRange struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// computeStats derives the normalization range for one feature from its
// non-missing values. With winsorization enabled the range is clamped to the
// values at the lower/upper percentiles, blunting outlier influence.
func computeStats(values []float64, winsorize bool, lower, upper float64) FactorStats {
	if len(values) == 0 {
		return FactorStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if winsorize {
		return FactorStats{
			Min: percentile(sorted, lower),
			Max: percentile(sorted, upper),
		}
	}
	return FactorStats{Min: sorted[0], Max: sorted[len(sorted)-1]}
}

// percentile returns the value at fraction p of the sorted slice, linearly
// interpolating between neighboring order statistics.
func percentile(sorted []float64, p float64) float64 {
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}

	rank := p * float64(len(sorted)-1)
	low := int(rank)
	if low >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(low)
	return sorted[low] + frac*(sorted[low+1]-sorted[low])
}
