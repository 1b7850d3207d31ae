package xlsx

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"mv2-creator/domain/mv2"

	"github.com/xuri/excelize/v2"
)

var (
	ErrNotANumber = errors.New("not a number")
	ErrNotWhole   = errors.New("not a whole number")
	ErrNotADate   = errors.New("not a date")
	ErrNoSheet    = errors.New("worksheet not found")
	ErrBlankHour  = errors.New("open hour is blank for a dated row")
)

// Columns holds 0-based column indexes of the MV1 sheet.
type Columns struct {
	ActivityCode int
	Debit        int
	OpenDate     int
	OpenHour     int
	Duration     int
}

// DefaultColumns is the MV1 export layout: C, D, J, K, L.
var DefaultColumns = Columns{ActivityCode: 2, Debit: 3, OpenDate: 9, OpenHour: 10, Duration: 11}

// ColumnsFromLetters converts column letters ("C", "AA") to indexes.
func ColumnsFromLetters(code, debit, openDate, openHour, duration string) (Columns, error) {
	var c Columns
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{code, &c.ActivityCode},
		{debit, &c.Debit},
		{openDate, &c.OpenDate},
		{openHour, &c.OpenHour},
		{duration, &c.Duration},
	} {
		n, err := excelize.ColumnNameToNumber(strings.TrimSpace(f.name))
		if err != nil {
			return Columns{}, fmt.Errorf("column %q: %w", f.name, err)
		}
		*f.dst = n - 1
	}
	return c, nil
}

type ReadOptions struct {
	Sheet       string // empty = first sheet
	Columns     Columns
	DateLayouts []string
}

func DefaultReadOptions() ReadOptions {
	return ReadOptions{Columns: DefaultColumns, DateLayouts: []string{"2006-01-02 15:04:05", "2006-01-02", "02/01/2006 15:04", "02/01/2006"}}
}

// ReadRows loads the MV1 data rows of the workbook at path. Row 1 is the
// header; fully empty rows are ignored. Cell values are read raw so dates
// arrive as Excel serial numbers.
func ReadRows(path string, opts ReadOptions) ([]mv2.Row, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &mv2.IngestionError{Path: path, Err: err}
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &mv2.IngestionError{Path: path, Err: fmt.Errorf("failed to open excel file: %w", err)}
	}
	defer func() { _ = f.Close() }()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, &mv2.IngestionError{Path: path, Err: fmt.Errorf("%w: %q", ErrNoSheet, sheet)}
	}

	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &mv2.IngestionError{Path: path, Err: err}
	}
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	p := parser{cols: opts.Columns, layouts: opts.DateLayouts, date1904: date1904}
	var rows []mv2.Row
	for i, rec := range cells {
		line := i + 1
		if line == 1 || blank(rec) {
			continue
		}
		r, err := p.row(line, rec)
		if err != nil {
			err.Path = path
			return nil, err
		}
		rows = append(rows, r)
	}
	slog.Debug("xlsx.rows.read", "path", path, "sheet", sheet, "rows", len(rows))
	return rows, nil
}

type parser struct {
	cols     Columns
	layouts  []string
	date1904 bool
}

func (p parser) row(line int, rec []string) (mv2.Row, *mv2.IngestionError) {
	fail := func(col string, err error) *mv2.IngestionError {
		return &mv2.IngestionError{Line: line, Column: col, Err: err}
	}
	r := mv2.Row{Line: line, ActivityCode: strings.TrimSpace(cell(rec, p.cols.ActivityCode))}

	var err error
	if r.Debit, err = parseFloat(cell(rec, p.cols.Debit)); err != nil {
		return r, fail("debit", err)
	}
	if r.OpenDate, err = p.parseDate(cell(rec, p.cols.OpenDate)); err != nil {
		return r, fail("open_date", err)
	}
	hour := cell(rec, p.cols.OpenHour)
	if r.OpenDate != nil && strings.TrimSpace(hour) == "" {
		return r, fail("open_hour", ErrBlankHour)
	}
	if r.OpenHour, err = parseWhole(hour); err != nil {
		return r, fail("open_hour", err)
	}
	if r.Duration, err = parseWhole(cell(rec, p.cols.Duration)); err != nil {
		return r, fail("duration", err)
	}
	return r, nil
}

func (p parser) parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, p.date1904)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNotADate, s)
		}
		// serials carry float noise: 22:00 may come back as 21:59:59.999
		t = t.Round(time.Second)
		return &t, nil
	}
	for _, layout := range p.layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotADate, s)
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return v, nil
}

func parseWhole(s string) (int, error) {
	v, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %q", ErrNotWhole, s)
	}
	return int(v), nil
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
