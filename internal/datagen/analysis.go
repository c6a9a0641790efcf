package datagen

import (
	"fmt"
	"time"

	"github.com/gensql-labs/gensql/internal/analyzer"
)

// FromAnalysis synthesizes n rows shaped like the analyzed dataset: numeric
// columns follow a clipped normal around the observed mean, categorical
// columns reuse the observed value distribution, datetimes stay inside the
// observed window and booleans keep their true ratio.
func (g *Generator) FromAnalysis(name string, a *analyzer.Analysis, n int) (*Dataset, error) {
	if n <= 0 {
		return nil, fmt.Errorf("row count must be positive, got %d", n)
	}
	if len(a.Order) == 0 {
		return nil, fmt.Errorf("analysis has no columns")
	}

	values := make([][]any, len(a.Order))
	for i, colName := range a.Order {
		info := a.ColumnInfo[colName]
		if info == nil {
			return nil, fmt.Errorf("analysis missing column info for %s", colName)
		}

		switch info.Type {
		case analyzer.TypeNumeric:
			values[i] = g.numericFromStats(info.Numeric, a.NoiseLevel, n)
		case analyzer.TypeDatetime:
			values[i] = g.datetimeFromStats(info.Datetime, n)
		case analyzer.TypeBoolean:
			values[i] = g.booleanFromStats(info.Boolean, n)
		default:
			values[i] = g.categoricalFromStats(info.Categorical, n)
		}
	}

	rows := make([][]any, n)
	for r := 0; r < n; r++ {
		row := make([]any, len(a.Order))
		for c := range a.Order {
			row[c] = values[c][r]
		}
		rows[r] = row
	}

	return &Dataset{Table: name, Columns: append([]string(nil), a.Order...), Rows: rows}, nil
}

func (g *Generator) numericFromStats(stats *analyzer.NumericStats, noiseLevel float64, n int) []any {
	if stats == nil {
		stats = &analyzer.NumericStats{Max: 100}
	}

	mean := stats.Mean
	sd := stats.Std
	if sd == 0 {
		sd = (stats.Max - stats.Min) / 4
	}

	out := make([]any, n)
	for i := range out {
		v := mean + g.rand.NormFloat64()*sd
		if noiseLevel > 0 {
			v += g.rand.NormFloat64() * sd * noiseLevel
		}
		v = clamp(v, stats.Min, stats.Max)
		if stats.IsInteger {
			out[i] = int64(v)
		} else {
			out[i] = v
		}
	}
	return out
}

func (g *Generator) categoricalFromStats(stats *analyzer.CategoricalStats, n int) []any {
	out := make([]any, n)
	if stats == nil || len(stats.TopValues) == 0 {
		for i := range out {
			out[i] = fmt.Sprintf("Category_%d", i)
		}
		return out
	}

	total := 0
	for _, vc := range stats.TopValues {
		total += vc.Count
	}

	for i := range out {
		pick := g.rand.Intn(total)
		for _, vc := range stats.TopValues {
			pick -= vc.Count
			if pick < 0 {
				out[i] = vc.Value
				break
			}
		}
	}
	return out
}

func (g *Generator) datetimeFromStats(stats *analyzer.DatetimeStats, n int) []any {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	if stats != nil && !stats.Min.IsZero() && !stats.Max.IsZero() {
		start, end = stats.Min, stats.Max
	}

	window := end.Sub(start)
	out := make([]any, n)
	for i := range out {
		var offset time.Duration
		if window > 0 {
			offset = time.Duration(g.rand.Int63n(int64(window) + 1))
		}
		out[i] = start.Add(offset).Format(datetimeLayout)
	}
	return out
}

func (g *Generator) booleanFromStats(stats *analyzer.BooleanStats, n int) []any {
	ratio := 0.5
	if stats != nil {
		ratio = stats.TrueRatio
	}
	out := make([]any, n)
	for i := range out {
		out[i] = g.rand.Float64() < ratio
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
