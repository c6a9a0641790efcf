package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/gensql-labs/gensql/internal/datagen"
)

// Excel caps sheet names at 31 characters.
const maxSheetNameLen = 31

// WorkbookName is the combined Excel entry inside a ZIP bundle.
const WorkbookName = "synthetic_data.xlsx"

// CSV renders a dataset as CSV bytes with a header row.
func CSV(ds *datagen.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ds.Columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i, v := range row {
			record[i] = formatValue(v)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Workbook renders the datasets as a single Excel workbook, one sheet per
// table.
func Workbook(datasets []*datagen.Dataset) ([]byte, error) {
	if len(datasets) == 0 {
		return nil, fmt.Errorf("no datasets to export")
	}

	book := excelize.NewFile()
	defer book.Close()

	for i, ds := range datasets {
		sheet := sheetName(ds.Table)
		if i == 0 {
			if err := book.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := book.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to add sheet %s: %w", sheet, err)
		}

		header := make([]any, len(ds.Columns))
		for c, name := range ds.Columns {
			header[c] = name
		}
		if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("failed to write header for %s: %w", sheet, err)
		}

		for r, row := range ds.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, err
			}
			values := append([]any(nil), row...)
			if err := book.SetSheetRow(sheet, cell, &values); err != nil {
				return nil, fmt.Errorf("failed to write row for %s: %w", sheet, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := book.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Zip bundles every dataset as csv/synthetic_<table>.csv plus a combined
// workbook, deflate compressed.
func Zip(datasets []*datagen.Dataset) ([]byte, error) {
	if len(datasets) == 0 {
		return nil, fmt.Errorf("no datasets to export")
	}

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	for _, ds := range datasets {
		data, err := CSV(ds)
		if err != nil {
			return nil, err
		}
		entry, err := archive.Create(fmt.Sprintf("csv/synthetic_%s.csv", ds.Table))
		if err != nil {
			return nil, fmt.Errorf("failed to create ZIP entry for %s: %w", ds.Table, err)
		}
		if _, err := entry.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write ZIP entry for %s: %w", ds.Table, err)
		}
	}

	workbook, err := Workbook(datasets)
	if err != nil {
		return nil, err
	}
	entry, err := archive.Create(WorkbookName)
	if err != nil {
		return nil, fmt.Errorf("failed to create workbook entry: %w", err)
	}
	if _, err := entry.Write(workbook); err != nil {
		return nil, fmt.Errorf("failed to write workbook entry: %w", err)
	}

	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize ZIP: %w", err)
	}
	return buf.Bytes(), nil
}

func sheetName(table string) string {
	if len(table) > maxSheetNameLen {
		return table[:maxSheetNameLen]
	}
	return table
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
