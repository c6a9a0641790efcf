package analyzer

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMean(t *testing.T) {
	if got := mean([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("mean = %v, want 2.5", got)
	}
	if got := mean(nil); got != 0 {
		t.Errorf("mean of empty = %v, want 0", got)
	}
}

func TestStdSampleDenominator(t *testing.T) {
	// Sample std of {2, 4, 4, 4, 5, 5, 7, 9} is sqrt(32/7).
	got := std([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	want := math.Sqrt(32.0 / 7.0)
	if !almostEqual(got, want) {
		t.Errorf("std = %v, want %v", got, want)
	}

	if got := std([]float64{5}); got != 0 {
		t.Errorf("std of single value = %v, want 0", got)
	}
}

func TestQuantileInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	cases := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tc := range cases {
		if got := quantile(sorted, tc.q); !almostEqual(got, tc.want) {
			t.Errorf("quantile(%v) = %v, want %v", tc.q, got, tc.want)
		}
	}
}

func TestSkewnessSymmetric(t *testing.T) {
	if got := skewness([]float64{1, 2, 3, 4, 5}); !almostEqual(got, 0) {
		t.Errorf("skewness of symmetric data = %v, want 0", got)
	}
	if got := skewness([]float64{1, 2}); got != 0 {
		t.Errorf("skewness with n<3 = %v, want 0", got)
	}

	// A long right tail skews positive.
	if got := skewness([]float64{1, 1, 1, 1, 100}); got <= 0 {
		t.Errorf("right-tailed skewness = %v, want > 0", got)
	}
}

func TestKurtosisGuards(t *testing.T) {
	if got := kurtosis([]float64{1, 2, 3}); got != 0 {
		t.Errorf("kurtosis with n<4 = %v, want 0", got)
	}
	if got := kurtosis([]float64{5, 5, 5, 5}); got != 0 {
		t.Errorf("kurtosis of constant data = %v, want 0", got)
	}
}

func TestClassifyDistribution(t *testing.T) {
	cases := []struct {
		name  string
		stats NumericStats
		want  string
	}{
		{"skewed", NumericStats{Skewness: 2.4, Std: 1, Min: 0, Max: 10}, "skewed"},
		{"uniform", NumericStats{Skewness: 0.1, Std: 10, Min: 0, Max: 15}, "uniform"},
		{"normal", NumericStats{Skewness: 0.1, Std: 1, Min: -5, Max: 5}, "normal"},
	}
	for _, tc := range cases {
		if got := classifyDistribution(&tc.stats); got != tc.want {
			t.Errorf("%s: classifyDistribution = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestNumericStatsEndToEnd(t *testing.T) {
	stats := numericStats([]float64{10, 20, 30, 40, 50}, true)

	if stats.Min != 10 || stats.Max != 50 {
		t.Errorf("range = [%v, %v], want [10, 50]", stats.Min, stats.Max)
	}
	if stats.Mean != 30 || stats.Median != 30 {
		t.Errorf("mean/median = %v/%v, want 30/30", stats.Mean, stats.Median)
	}
	if stats.Q25 != 20 || stats.Q75 != 40 {
		t.Errorf("quartiles = %v/%v, want 20/40", stats.Q25, stats.Q75)
	}
	if !stats.IsInteger {
		t.Error("IsInteger should carry through")
	}
	if stats.Distribution == "" {
		t.Error("distribution label should be set")
	}
}
