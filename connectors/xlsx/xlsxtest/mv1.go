// Package xlsxtest builds MV1 workbooks for tests.
package xlsxtest

import (
	"strconv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// Record is one MV1 data row. A zero Date leaves the date cell empty.
type Record struct {
	Code     string
	Debit    float64
	Date     time.Time
	Hour     int
	Duration int
}

// WriteMV1 saves records at path in the MV1 layout (C, D, J, K, L) below a
// header row.
func WriteMV1(t testing.TB, path string, records ...Record) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	header := []any{"Id", "Type", "Activity", "Debit", "", "", "", "", "", "Open date", "Open hour", "Duration"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("header: %v", err)
	}
	for i, r := range records {
		line := i + 2
		set := func(col string, v any) {
			if err := f.SetCellValue(sheet, col+strconv.Itoa(line), v); err != nil {
				t.Fatalf("set %s%d: %v", col, line, err)
			}
		}
		set("A", i+1)
		set("C", r.Code)
		set("D", r.Debit)
		if !r.Date.IsZero() {
			set("J", r.Date)
		}
		set("K", r.Hour)
		set("L", r.Duration)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}
