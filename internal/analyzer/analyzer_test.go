package analyzer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const sampleCSV = `id,score,status,signup_date,is_active,notes
1,85.5,active,2023-01-15,true,first user
2,90.0,active,2023-02-20,false,
3,78.25,inactive,2023-03-05,true,needs review
4,88.0,active,2023-04-10,true,
5,95.5,pending,2023-05-25,false,vip`

func TestAnalyzeCSVColumnTypes(t *testing.T) {
	analysis, err := AnalyzeCSV([]byte(sampleCSV), DefaultNoiseLevel)
	if err != nil {
		t.Fatalf("AnalyzeCSV failed: %v", err)
	}

	if analysis.Rows != 5 {
		t.Errorf("expected 5 rows, got %d", analysis.Rows)
	}
	if analysis.Columns != 6 {
		t.Errorf("expected 6 columns, got %d", analysis.Columns)
	}

	expected := map[string]string{
		"id":          TypeNumeric,
		"score":       TypeNumeric,
		"status":      TypeCategorical,
		"signup_date": TypeDatetime,
		"is_active":   TypeBoolean,
		"notes":       TypeCategorical,
	}
	for name, wantType := range expected {
		info := analysis.ColumnInfo[name]
		if info == nil {
			t.Fatalf("missing column info for %s", name)
		}
		if info.Type != wantType {
			t.Errorf("column %s: type = %s, want %s", name, info.Type, wantType)
		}
	}
}

func TestAnalyzeCSVNumericStats(t *testing.T) {
	analysis, err := AnalyzeCSV([]byte(sampleCSV), DefaultNoiseLevel)
	if err != nil {
		t.Fatalf("AnalyzeCSV failed: %v", err)
	}

	id := analysis.ColumnInfo["id"].Numeric
	if id == nil {
		t.Fatal("id column has no numeric stats")
	}
	if id.Min != 1 || id.Max != 5 {
		t.Errorf("id range = [%v, %v], want [1, 5]", id.Min, id.Max)
	}
	if id.Mean != 3 {
		t.Errorf("id mean = %v, want 3", id.Mean)
	}
	if id.Median != 3 {
		t.Errorf("id median = %v, want 3", id.Median)
	}
	if !id.IsInteger {
		t.Error("id should be detected as integer")
	}

	score := analysis.ColumnInfo["score"].Numeric
	if score.IsInteger {
		t.Error("score should not be detected as integer")
	}
}

func TestAnalyzeCSVMissingValues(t *testing.T) {
	csv := "name,value\nalice,1\n,2\nNULL,3\nnan,4\nbob,5"
	analysis, err := AnalyzeCSV([]byte(csv), DefaultNoiseLevel)
	if err != nil {
		t.Fatalf("AnalyzeCSV failed: %v", err)
	}

	info := analysis.ColumnInfo["name"]
	if info.MissingCount != 3 {
		t.Errorf("missing count = %d, want 3", info.MissingCount)
	}
	if info.MissingPercent != 60 {
		t.Errorf("missing percent = %v, want 60", info.MissingPercent)
	}
	if info.UniqueCount != 2 {
		t.Errorf("unique count = %d, want 2", info.UniqueCount)
	}
}

func TestAnalyzeCSVBooleanRatio(t *testing.T) {
	analysis, err := AnalyzeCSV([]byte(sampleCSV), DefaultNoiseLevel)
	if err != nil {
		t.Fatalf("AnalyzeCSV failed: %v", err)
	}

	b := analysis.ColumnInfo["is_active"].Boolean
	if b == nil {
		t.Fatal("is_active has no boolean stats")
	}
	if b.TrueCount != 3 || b.FalseCount != 2 {
		t.Errorf("true/false = %d/%d, want 3/2", b.TrueCount, b.FalseCount)
	}
	if b.TrueRatio != 0.6 {
		t.Errorf("true ratio = %v, want 0.6", b.TrueRatio)
	}
}

func TestAnalyzeCSVMixedBooleanTokens(t *testing.T) {
	// More than two distinct truthy/falsy spellings is a category
	// column, not a boolean one.
	csv := "flag\ntrue\nfalse\nyes\nno\ntrue"
	analysis, err := AnalyzeCSV([]byte(csv), DefaultNoiseLevel)
	if err != nil {
		t.Fatalf("AnalyzeCSV failed: %v", err)
	}

	info := analysis.ColumnInfo["flag"]
	if info.Type != TypeCategorical {
		t.Errorf("flag type = %s, want %s", info.Type, TypeCategorical)
	}
	if info.Boolean != nil {
		t.Error("flag should not carry boolean stats")
	}
}

func TestAnalyzeCSVCategoricalCounts(t *testing.T) {
	analysis, err := AnalyzeCSV([]byte(sampleCSV), DefaultNoiseLevel)
	if err != nil {
		t.Fatalf("AnalyzeCSV failed: %v", err)
	}

	c := analysis.ColumnInfo["status"].Categorical
	if c == nil {
		t.Fatal("status has no categorical stats")
	}
	if c.MostCommon != "active" || c.MostCommonCount != 3 {
		t.Errorf("most common = %s (%d), want active (3)", c.MostCommon, c.MostCommonCount)
	}
	if c.CategoryCount != 3 {
		t.Errorf("category count = %d, want 3", c.CategoryCount)
	}
	if c.TopValues[0].Value != "active" {
		t.Errorf("top value = %s, want active", c.TopValues[0].Value)
	}
}

func TestAnalyzeCSVDatetimeRange(t *testing.T) {
	analysis, err := AnalyzeCSV([]byte(sampleCSV), DefaultNoiseLevel)
	if err != nil {
		t.Fatalf("AnalyzeCSV failed: %v", err)
	}

	d := analysis.ColumnInfo["signup_date"].Datetime
	if d == nil {
		t.Fatal("signup_date has no datetime stats")
	}
	if d.Min.Format("2006-01-02") != "2023-01-15" {
		t.Errorf("min = %v, want 2023-01-15", d.Min)
	}
	if d.Max.Format("2006-01-02") != "2023-05-25" {
		t.Errorf("max = %v, want 2023-05-25", d.Max)
	}
	if d.RangeDays != 130 {
		t.Errorf("range days = %d, want 130", d.RangeDays)
	}
}

func TestAnalyzeCSVLatin1Fallback(t *testing.T) {
	// "café" with an ISO 8859-1 encoded e-acute (0xE9).
	raw := []byte("name\ncaf\xe9\n")
	analysis, err := AnalyzeCSV(raw, DefaultNoiseLevel)
	if err != nil {
		t.Fatalf("AnalyzeCSV failed on latin-1 input: %v", err)
	}

	c := analysis.ColumnInfo["name"].Categorical
	if c == nil || c.MostCommon != "café" {
		t.Errorf("expected café after latin-1 fallback, got %+v", c)
	}
}

func TestAnalyzeCSVEmptyInput(t *testing.T) {
	if _, err := AnalyzeCSV(nil, DefaultNoiseLevel); err == nil {
		t.Error("expected error for empty CSV")
	}
}

func TestAnalyzeFileRoutesByExtension(t *testing.T) {
	analyses, err := AnalyzeFile("sales_data.csv", []byte(sampleCSV), DefaultNoiseLevel)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if _, ok := analyses["sales_data"]; !ok {
		t.Errorf("expected entry keyed sales_data, got %v", keysOf(analyses))
	}

	if _, err := AnalyzeFile("data.json", []byte("{}"), DefaultNoiseLevel); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestAnalyzeExcelPerSheet(t *testing.T) {
	book := excelize.NewFile()
	defer book.Close()

	book.SetSheetName("Sheet1", "users")
	book.SetSheetRow("users", "A1", &[]any{"id", "name"})
	book.SetSheetRow("users", "A2", &[]any{1, "alice"})
	book.SetSheetRow("users", "A3", &[]any{2, "bob"})

	book.NewSheet("orders")
	book.SetSheetRow("orders", "A1", &[]any{"order_id", "amount"})
	book.SetSheetRow("orders", "A2", &[]any{10, 99.5})

	var buf bytes.Buffer
	if err := book.Write(&buf); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}

	analyses, err := AnalyzeExcel(buf.Bytes(), DefaultNoiseLevel)
	if err != nil {
		t.Fatalf("AnalyzeExcel failed: %v", err)
	}
	if len(analyses) != 2 {
		t.Fatalf("expected 2 sheet analyses, got %d", len(analyses))
	}
	if analyses["users"].Rows != 2 {
		t.Errorf("users rows = %d, want 2", analyses["users"].Rows)
	}
	if analyses["orders"].ColumnInfo["amount"].Type != TypeNumeric {
		t.Errorf("amount type = %s, want numeric", analyses["orders"].ColumnInfo["amount"].Type)
	}
}

func TestSummary(t *testing.T) {
	analysis, err := AnalyzeCSV([]byte(sampleCSV), DefaultNoiseLevel)
	if err != nil {
		t.Fatalf("AnalyzeCSV failed: %v", err)
	}

	summary := Summary(analysis)
	if !strings.Contains(summary, "5 rows and 6 columns") {
		t.Errorf("summary missing shape: %s", summary)
	}
	if !strings.Contains(summary, "notes") {
		t.Errorf("summary should flag notes for high missing values: %s", summary)
	}
}

func keysOf(m map[string]*Analysis) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
