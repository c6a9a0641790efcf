package analyzer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// DefaultNoiseLevel is the extra jitter applied when synthesizing from an
// analysis, as a fraction of the column's standard deviation.
const DefaultNoiseLevel = 0.05

var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
}

var booleanTokens = map[string]bool{
	"true": true, "false": false,
	"1": true, "0": false,
	"yes": true, "no": false,
	"y": true, "n": false,
}

// AnalyzeFile inspects an uploaded CSV or Excel payload. Excel files produce
// one analysis per sheet; CSV files produce a single entry keyed by the file
// name without its extension.
func AnalyzeFile(filename string, data []byte, noiseLevel float64) (map[string]*Analysis, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		a, err := AnalyzeCSV(data, noiseLevel)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		return map[string]*Analysis{name: a}, nil
	case ".xlsx", ".xls":
		return AnalyzeExcel(data, noiseLevel)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// AnalyzeCSV parses CSV bytes (UTF-8, with a latin-1 fallback for legacy
// exports) and analyzes the resulting table.
func AnalyzeCSV(data []byte, noiseLevel float64) (*Analysis, error) {
	if !utf8.Valid(data) {
		data = latin1ToUTF8(data)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV input")
	}

	return analyzeTable(records[0], records[1:], noiseLevel), nil
}

// AnalyzeExcel reads every sheet of an Excel workbook and analyzes each one
// that has a header row.
func AnalyzeExcel(data []byte, noiseLevel float64) (map[string]*Analysis, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer book.Close()

	analyses := make(map[string]*Analysis)
	for _, sheet := range book.GetSheetList() {
		rows, err := book.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}

		header := rows[0]
		// Pad ragged rows so every record matches the header width.
		body := make([][]string, 0, len(rows)-1)
		for _, row := range rows[1:] {
			for len(row) < len(header) {
				row = append(row, "")
			}
			body = append(body, row)
		}
		analyses[sheet] = analyzeTable(header, body, noiseLevel)
	}

	if len(analyses) == 0 {
		return nil, fmt.Errorf("workbook has no data sheets")
	}
	return analyses, nil
}

func analyzeTable(header []string, rows [][]string, noiseLevel float64) *Analysis {
	analysis := &Analysis{
		Rows:       len(rows),
		Columns:    len(header),
		NoiseLevel: noiseLevel,
		ColumnInfo: make(map[string]*ColumnInfo, len(header)),
	}

	for i, name := range header {
		values := make([]string, 0, len(rows))
		for _, row := range rows {
			if i < len(row) {
				values = append(values, row[i])
			} else {
				values = append(values, "")
			}
		}
		analysis.Order = append(analysis.Order, name)
		analysis.ColumnInfo[name] = analyzeColumn(name, values)
	}

	return analysis
}

func analyzeColumn(name string, values []string) *ColumnInfo {
	info := &ColumnInfo{Name: name}
	total := len(values)

	var nonNull []string
	unique := make(map[string]bool)
	for _, v := range values {
		if isMissing(v) {
			info.MissingCount++
			continue
		}
		nonNull = append(nonNull, v)
		unique[v] = true
	}
	info.UniqueCount = len(unique)
	if total > 0 {
		info.MissingPercent = float64(info.MissingCount) / float64(total) * 100
		info.UniquePercent = float64(info.UniqueCount) / float64(total) * 100
	}

	switch {
	case len(nonNull) == 0:
		info.Type = TypeEmpty
	case isNumericColumn(nonNull):
		info.Type = TypeNumeric
		info.Numeric = analyzeNumeric(nonNull)
	case isDatetimeColumn(nonNull):
		info.Type = TypeDatetime
		info.Datetime = analyzeDatetime(nonNull)
	case isBooleanColumn(nonNull):
		info.Type = TypeBoolean
		info.Boolean = analyzeBoolean(nonNull)
	default:
		info.Type = TypeCategorical
		info.Categorical = analyzeCategorical(nonNull)
	}

	return info
}

func isMissing(v string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || strings.EqualFold(trimmed, "null") || strings.EqualFold(trimmed, "nan")
}

func isNumericColumn(values []string) bool {
	sample := values
	if len(sample) > 100 {
		sample = sample[:100]
	}
	for _, v := range sample {
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return false
		}
	}
	return true
}

func isDatetimeColumn(values []string) bool {
	sample := values
	if len(sample) > 10 {
		sample = sample[:10]
	}
	for _, v := range sample {
		if _, ok := parseDatetime(v); !ok {
			return false
		}
	}
	return true
}

func parseDatetime(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isBooleanColumn(values []string) bool {
	distinct := make(map[string]bool)
	for _, v := range values {
		token := strings.ToLower(strings.TrimSpace(v))
		if _, ok := booleanTokens[token]; !ok {
			return false
		}
		distinct[token] = true
		if len(distinct) > 2 {
			return false
		}
	}
	return true
}

func analyzeNumeric(values []string) *NumericStats {
	parsed := make([]float64, 0, len(values))
	isInteger := true
	for _, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			continue
		}
		if f != float64(int64(f)) {
			isInteger = false
		}
		parsed = append(parsed, f)
	}
	if len(parsed) == 0 {
		return &NumericStats{}
	}
	return numericStats(parsed, isInteger)
}

func analyzeDatetime(values []string) *DatetimeStats {
	stats := &DatetimeStats{}
	for _, v := range values {
		t, ok := parseDatetime(v)
		if !ok {
			continue
		}
		if stats.Min.IsZero() || t.Before(stats.Min) {
			stats.Min = t
		}
		if stats.Max.IsZero() || t.After(stats.Max) {
			stats.Max = t
		}
		if len(stats.FormatExamples) < 3 {
			stats.FormatExamples = append(stats.FormatExamples, v)
		}
	}
	if !stats.Min.IsZero() {
		stats.RangeDays = int(stats.Max.Sub(stats.Min).Hours() / 24)
	}
	return stats
}

func analyzeBoolean(values []string) *BooleanStats {
	stats := &BooleanStats{TrueRatio: 0.5}
	for _, v := range values {
		if booleanTokens[strings.ToLower(strings.TrimSpace(v))] {
			stats.TrueCount++
		} else {
			stats.FalseCount++
		}
	}
	if total := stats.TrueCount + stats.FalseCount; total > 0 {
		stats.TrueRatio = float64(stats.TrueCount) / float64(total)
	}
	return stats
}

func analyzeCategorical(values []string) *CategoricalStats {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	top := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		top = append(top, ValueCount{Value: v, Count: c})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Value < top[j].Value
	})

	stats := &CategoricalStats{CategoryCount: len(top)}
	if len(top) > 50 {
		stats.TopValues = top[:50]
	} else {
		stats.TopValues = top
	}
	if len(top) > 0 {
		stats.MostCommon = top[0].Value
		stats.MostCommonCount = top[0].Count
	}
	for i := 0; i < len(values) && i < 5; i++ {
		stats.Examples = append(stats.Examples, values[i])
	}
	return stats
}

// Summary renders a short human-readable description of an analysis.
func Summary(a *Analysis) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Dataset contains %d rows and %d columns.", a.Rows, a.Columns))

	typeCounts := make(map[string]int)
	for _, info := range a.ColumnInfo {
		typeCounts[info.Type]++
	}
	typeNames := make([]string, 0, len(typeCounts))
	for name := range typeCounts {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)
	tally := make([]string, 0, len(typeNames))
	for _, name := range typeNames {
		tally = append(tally, fmt.Sprintf("%d %s", typeCounts[name], name))
	}
	parts = append(parts, fmt.Sprintf("Column types: %s.", strings.Join(tally, ", ")))

	var highMissing []string
	for _, name := range a.Order {
		if info := a.ColumnInfo[name]; info != nil && info.MissingPercent > 20 {
			highMissing = append(highMissing, name)
		}
	}
	if len(highMissing) > 0 {
		parts = append(parts, fmt.Sprintf("Columns with high missing values (>20%%): %s", strings.Join(highMissing, ", ")))
	}

	return strings.Join(parts, " ")
}

// latin1ToUTF8 reinterprets bytes as ISO 8859-1 code points.
func latin1ToUTF8(data []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(data))
	for _, b := range data {
		buf.WriteRune(rune(b))
	}
	return buf.Bytes()
}
