package analyzer

import (
	"math"
	"sort"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// std is the sample standard deviation (n-1 denominator).
func std(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// quantile uses linear interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// skewness is the adjusted Fisher-Pearson coefficient.
func skewness(values []float64) float64 {
	n := float64(len(values))
	if n < 3 {
		return 0
	}
	s := std(values)
	if s == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := (v - m) / s
		sum += d * d * d
	}
	return n / ((n - 1) * (n - 2)) * sum
}

// kurtosis is the sample excess kurtosis.
func kurtosis(values []float64) float64 {
	n := float64(len(values))
	if n < 4 {
		return 0
	}
	s := std(values)
	if s == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := (v - m) / s
		sum += d * d * d * d
	}
	adj := n * (n + 1) / ((n - 1) * (n - 2) * (n - 3))
	correction := 3 * (n - 1) * (n - 1) / ((n - 2) * (n - 3))
	return adj*sum - correction
}

func numericStats(values []float64, isInteger bool) *NumericStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	stats := &NumericStats{
		Min:       sorted[0],
		Max:       sorted[len(sorted)-1],
		Mean:      mean(values),
		Median:    quantile(sorted, 0.5),
		Std:       std(values),
		Q25:       quantile(sorted, 0.25),
		Q75:       quantile(sorted, 0.75),
		IsInteger: isInteger,
		Skewness:  skewness(values),
		Kurtosis:  kurtosis(values),
	}
	stats.Distribution = classifyDistribution(stats)
	return stats
}

func classifyDistribution(s *NumericStats) string {
	if math.Abs(s.Skewness) > 1 {
		return "skewed"
	}
	if s.Std > 0 && s.Min >= 0 && (s.Max-s.Min)/s.Std < 2 {
		return "uniform"
	}
	return "normal"
}
