package datagen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gensql-labs/gensql/internal/schema"
)

const (
	// nullRate is the share of rows that get NULL in nullable columns.
	nullRate = 0.05

	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

// Dataset is a generated table: column order follows the schema and every
// row holds one value (possibly nil) per column.
type Dataset struct {
	Table   string
	Columns []string
	Rows    [][]any
}

// Generator produces synthetic rows from parsed schemas or dataset analyses.
// A fixed seed makes runs reproducible.
type Generator struct {
	rand     *rand.Rand
	fake     *faker
	counters map[string]int64
}

func New(seed int64) *Generator {
	r := rand.New(rand.NewSource(seed))
	return &Generator{
		rand:     r,
		fake:     newFaker(r),
		counters: make(map[string]int64),
	}
}

// FromSchema generates n rows for every table in the schema, in order.
func (g *Generator) FromSchema(s *schema.Schema, n int) ([]*Dataset, error) {
	if n <= 0 {
		return nil, fmt.Errorf("row count must be positive, got %d", n)
	}

	datasets := make([]*Dataset, 0, len(s.Tables))
	for i := range s.Tables {
		ds, err := g.Table(&s.Tables[i], n)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, ds)
	}
	return datasets, nil
}

// Table generates n rows for a single table.
func (g *Generator) Table(t *schema.Table, n int) (*Dataset, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("table %s has no columns", t.Name)
	}

	columns := make([]string, len(t.Columns))
	values := make([][]any, len(t.Columns))
	for i, col := range t.Columns {
		columns[i] = col.Name
		values[i] = g.column(t.Name, col, n)
	}

	rows := make([][]any, n)
	for r := 0; r < n; r++ {
		row := make([]any, len(columns))
		for c := range columns {
			row[c] = values[c][r]
		}
		rows[r] = row
	}

	return &Dataset{Table: t.Name, Columns: columns, Rows: rows}, nil
}

func (g *Generator) column(tableName string, col schema.Column, n int) []any {
	p := col.GenParams()

	var out []any
	switch {
	case strings.Contains(strings.ToLower(col.RawType), "uuid"):
		out = g.uuids(n)
	case col.Kind == schema.KindInteger:
		out = g.integers(tableName+"."+col.Name, p, n)
	case col.Kind == schema.KindFloat:
		out = g.floats(p, n)
	case col.Kind == schema.KindDate:
		out = g.dates(p, n, dateLayout)
	case col.Kind == schema.KindDateTime:
		out = g.dates(p, n, datetimeLayout)
	case col.Kind == schema.KindBoolean:
		out = g.booleans(p, n)
	default:
		out = g.strings(col.Name, p, n)
	}

	// Auto-increment keys stay dense even when the column is nullable.
	if p.Nullable && !p.AutoIncrement {
		g.injectNulls(out)
	}
	return out
}

func (g *Generator) integers(counterKey string, p schema.GenParams, n int) []any {
	out := make([]any, n)

	if p.AutoIncrement {
		start := g.counters[counterKey] + 1
		for i := range out {
			out[i] = start + int64(i)
		}
		g.counters[counterKey] = start + int64(n) - 1
		return out
	}

	if p.Unique {
		span := p.MaxInt - p.MinInt + 1
		if span < int64(n) {
			span = int64(n)
		}
		perm := g.rand.Perm(int(span))
		for i := range out {
			out[i] = p.MinInt + int64(perm[i])
		}
		return out
	}

	for i := range out {
		out[i] = p.MinInt + g.rand.Int63n(p.MaxInt-p.MinInt+1)
	}
	return out
}

func (g *Generator) floats(p schema.GenParams, n int) []any {
	out := make([]any, n)
	for i := range out {
		v := p.MinFloat + g.rand.Float64()*(p.MaxFloat-p.MinFloat)
		out[i] = roundTo(v, p.Scale)
	}
	return out
}

func (g *Generator) strings(colName string, p schema.GenParams, n int) []any {
	out := make([]any, n)
	used := make(map[string]bool)

	for i := range out {
		value, ok := g.fake.byColumnName(colName)
		if !ok {
			value = g.randomText(p.MinLength, p.MaxLength)
		}

		if p.Unique {
			base := value
			for k := 1; used[value]; k++ {
				value = fmt.Sprintf("%s_%d", base, k)
			}
			used[value] = true
		}

		if len(value) > p.MaxLength {
			value = value[:p.MaxLength]
		}
		out[i] = value
	}
	return out
}

const textAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "

func (g *Generator) randomText(minLen, maxLen int) string {
	limit := maxLen
	if limit > 50 {
		limit = 50
	}
	if limit < minLen {
		limit = minLen
	}
	length := minLen
	if limit > minLen {
		length += g.rand.Intn(limit - minLen + 1)
	}

	b := make([]byte, length)
	for i := range b {
		b[i] = textAlphabet[g.rand.Intn(len(textAlphabet))]
	}
	return string(b)
}

func (g *Generator) dates(p schema.GenParams, n int, layout string) []any {
	start, err := time.Parse(dateLayout, p.StartDate)
	if err != nil {
		start = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	end, err := time.Parse(dateLayout, p.EndDate)
	if err != nil {
		end = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	}

	window := end.Sub(start)
	out := make([]any, n)
	for i := range out {
		offset := time.Duration(g.rand.Int63n(int64(window) + 1))
		out[i] = start.Add(offset).Format(layout)
	}
	return out
}

func (g *Generator) booleans(p schema.GenParams, n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = g.rand.Float64() < p.TrueRatio
	}
	return out
}

func (g *Generator) uuids(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = uuid.New().String()
	}
	return out
}

// injectNulls blanks out nullRate of the values at distinct positions.
func (g *Generator) injectNulls(values []any) {
	count := int(float64(len(values)) * nullRate)
	if count == 0 {
		return
	}
	for _, idx := range g.rand.Perm(len(values))[:count] {
		values[idx] = nil
	}
}

func roundTo(v float64, scale int) float64 {
	factor := 1.0
	for i := 0; i < scale; i++ {
		factor *= 10
	}
	return float64(int64(v*factor+0.5)) / factor
}
