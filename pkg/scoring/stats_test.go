package scoring

import (
	"math"
	"testing"
)

func TestComputeStats(t *testing.T) {
	cases := []struct {
		name      string
		values    []float64
		winsorize bool
		lower     float64
		upper     float64
		expected  FactorStats
	}{
		{
			name:     "plain min max",
			values:   []float64{5, 1, 9, 3},
			expected: FactorStats{Min: 1, Max: 9},
		},
		{
			name:     "single value",
			values:   []float64{4},
			expected: FactorStats{Min: 4, Max: 4},
		},
		{
			name:     "empty population",
			values:   []float64{},
			expected: FactorStats{},
		},
		{
			name:      "winsorized clamps outliers",
			values:    []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 1000},
			winsorize: true,
			lower:     0.1,
			upper:     0.9,
			expected:  FactorStats{Min: 10, Max: 90},
		},
		{
			name:      "winsorized with extreme percentiles equals plain",
			values:    []float64{5, 1, 9, 3},
			winsorize: true,
			lower:     0,
			upper:     1,
			expected:  FactorStats{Min: 1, Max: 9},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual := computeStats(c.values, c.winsorize, c.lower, c.upper)
			if math.Abs(actual.Min-c.expected.Min) > 1e-9 || math.Abs(actual.Max-c.expected.Max) > 1e-9 {
				t.Errorf("expected %+v, got %+v", c.expected, actual)
			}
		})
	}
}

func TestPercentileInterpolates(t *testing.T) {
	sorted := []float64{0, 10, 20, 30, 40}

	cases := []struct {
		p        float64
		expected float64
	}{
		{p: 0, expected: 0},
		{p: 1, expected: 40},
		{p: 0.5, expected: 20},
		{p: 0.25, expected: 10},
		{p: 0.125, expected: 5},
		{p: 0.98, expected: 39.2},
	}

	for _, c := range cases {
		if actual := percentile(sorted, c.p); math.Abs(actual-c.expected) > 1e-9 {
			t.Errorf("percentile(%v) = %v, expected %v", c.p, actual, c.expected)
		}
	}
}
