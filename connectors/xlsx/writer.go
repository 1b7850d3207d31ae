package xlsx

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"mv2-creator/domain/mv2"

	lo "github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

type WriteOptions struct {
	FilePrefix string
	Font       string
}

func DefaultWriteOptions() WriteOptions {
	return WriteOptions{FilePrefix: "MV2", Font: "Book Antiqua"}
}

// ReportFileName is "<prefix> - YYYY-MM-DD.xlsx" for the period start.
func ReportFileName(prefix string, start time.Time) string {
	return fmt.Sprintf("%s - %s.xlsx", prefix, start.Format("2006-01-02"))
}

// WriteReport renders grid into dir and returns the file path. The workbook
// is written to a temporary file first and renamed into place, so a failure
// never leaves a partial report. An existing report of the same name is
// replaced.
func WriteReport(grid *mv2.Grid, dir string, opts WriteOptions) (string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	st, err := newStyles(f, opts.Font)
	if err != nil {
		return "", &mv2.ReportError{Op: "style", Err: err}
	}

	for i, row := range grid.Rows {
		if err := writeRow(f, sheet, i+1, row, st); err != nil {
			return "", &mv2.ReportError{Op: "render", Err: fmt.Errorf("row %d: %w", i+1, err)}
		}
	}

	target := filepath.Join(dir, ReportFileName(opts.FilePrefix, grid.Period.Start))
	if err := saveAtomic(f, target); err != nil {
		return "", &mv2.ReportError{Op: "save", Err: err}
	}
	slog.Info("report.saved", "path", target, "rows", len(grid.Rows), "shifts", grid.ShiftColumns)
	return target, nil
}

func writeRow(f *excelize.File, sheet string, line int, row mv2.GridRow, st *styles) error {
	if len(row.Cells) == 0 {
		return nil
	}
	values := lo.Map(row.Cells, func(c mv2.Cell, _ int) any { return c.Value() })
	start, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return err
	}
	// column A is never styled
	for col := 2; col <= len(row.Cells); col++ {
		style := st.forCell(row.Kind, col, row.Cells[col-1])
		if style == 0 {
			continue
		}
		ref, err := excelize.CoordinatesToCellName(col, line)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, ref, ref, style); err != nil {
			return err
		}
	}
	return nil
}

func saveAtomic(f *excelize.File, target string) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".mv2-*.xlsx")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := f.Write(tmp); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return err
	}
	return nil
}
