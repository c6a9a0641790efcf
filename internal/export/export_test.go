package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/gensql-labs/gensql/internal/datagen"
)

func sampleDatasets() []*datagen.Dataset {
	return []*datagen.Dataset{
		{
			Table:   "users",
			Columns: []string{"id", "email", "balance", "is_active"},
			Rows: [][]any{
				{int64(1), "a@example.com", 10.5, true},
				{int64(2), nil, 20.25, false},
			},
		},
		{
			Table:   "orders",
			Columns: []string{"order_id", "amount"},
			Rows: [][]any{
				{int64(1), 99.99},
			},
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	data, err := CSV(sampleDatasets()[0])
	if err != nil {
		t.Fatalf("CSV failed: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("failed to re-read CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][1] != "email" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "1" || records[1][3] != "true" {
		t.Errorf("first row = %v", records[1])
	}
	if records[2][1] != "" {
		t.Errorf("nil value should render empty, got %q", records[2][1])
	}
}

func TestWorkbookSheets(t *testing.T) {
	data, err := Workbook(sampleDatasets())
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}

	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "users" || sheets[1] != "orders" {
		t.Fatalf("sheets = %v, want [users orders]", sheets)
	}

	rows, err := book.GetRows("users")
	if err != nil {
		t.Fatalf("failed to read users sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "id" {
		t.Errorf("header row = %v", rows[0])
	}
}

func TestWorkbookTruncatesLongSheetNames(t *testing.T) {
	long := strings.Repeat("a", 40)
	data, err := Workbook([]*datagen.Dataset{{
		Table:   long,
		Columns: []string{"id"},
		Rows:    [][]any{{int64(1)}},
	}})
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}

	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) != 1 || len(sheets[0]) != 31 {
		t.Errorf("sheets = %v, want one 31-char name", sheets)
	}
}

func TestZipBundleContents(t *testing.T) {
	data, err := Zip(sampleDatasets())
	if err != nil {
		t.Fatalf("Zip failed: %v", err)
	}

	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("failed to open ZIP: %v", err)
	}

	names := make(map[string]bool)
	for _, f := range archive.File {
		names[f.Name] = true
	}
	for _, want := range []string{
		"csv/synthetic_users.csv",
		"csv/synthetic_orders.csv",
		WorkbookName,
	} {
		if !names[want] {
			t.Errorf("ZIP missing entry %s (have %v)", want, names)
		}
	}
}

func TestExportRejectsEmptyInput(t *testing.T) {
	if _, err := Workbook(nil); err == nil {
		t.Error("expected error for empty workbook input")
	}
	if _, err := Zip(nil); err == nil {
		t.Error("expected error for empty ZIP input")
	}
}
