// Package creator runs the MV1 to MV2 pipeline for a single workbook.
package creator

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mv2-creator/connectors/config"
	ccsv "mv2-creator/connectors/csv"
	"mv2-creator/connectors/xlsx"
	"mv2-creator/domain/mv2"
)

type Creator struct {
	read  xlsx.ReadOptions
	write xlsx.WriteOptions
	opts  mv2.Options
	csv   bool
}

// New validates cfg and prepares a Creator.
func New(cfg *config.Config) (*Creator, error) {
	cols := cfg.Input.Columns
	columns, err := xlsx.ColumnsFromLetters(cols.ActivityCode, cols.Debit, cols.OpenDate, cols.OpenHour, cols.Duration)
	if err != nil {
		return nil, err
	}
	opts := mv2.Options{
		Separator:    cfg.Input.CodeSeparator,
		ProbeRows:    cfg.Input.PeriodProbeRows,
		ChunkPattern: cfg.Aggregation.ChunkPattern,
		ShiftLabels:  cfg.Aggregation.ShiftLabels,
		TotalDivisor: cfg.Aggregation.TotalDivisor,
		CreditNote:   cfg.Report.CreditNote,
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Creator{
		read:  xlsx.ReadOptions{Sheet: cfg.Input.Sheet, Columns: columns, DateLayouts: cfg.Input.DateLayouts},
		write: xlsx.WriteOptions{FilePrefix: cfg.Report.FilePrefix, Font: cfg.Report.Font},
		opts:  opts,
		csv:   cfg.Report.CSV,
	}, nil
}

func (c *Creator) Options() mv2.Options { return c.opts }

// Load reads the workbook at inputPath and aggregates it.
func (c *Creator) Load(ctx context.Context, inputPath string) (*mv2.Aggregate, error) {
	rows, err := xlsx.ReadRows(inputPath, c.read)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	agg, err := mv2.Ingest(rows, c.opts)
	if err != nil {
		var ie *mv2.IngestionError
		if errors.As(err, &ie) && ie.Path == "" {
			ie.Path = inputPath
		}
		return nil, err
	}
	slog.Info("ingest.done",
		"path", inputPath,
		"rows", len(rows),
		"secs", len(agg.Secs),
		"start", agg.Period.Start,
		"end", agg.Period.End,
		"skipped", agg.SkippedRows,
	)
	if agg.DroppedSlots > 0 {
		slog.Warn("ingest.slots.dropped", "path", inputPath, "count", agg.DroppedSlots, "reason", "open before period start")
	}
	return agg, nil
}

// Create converts inputPath and saves the report in outputDir, or next to
// the input when outputDir is empty. It returns the report path.
func (c *Creator) Create(ctx context.Context, inputPath, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}
	agg, err := c.Load(ctx, inputPath)
	if err != nil {
		return "", err
	}
	grid, err := mv2.BuildGrid(agg, c.opts)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := xlsx.WriteReport(grid, outputDir, c.write)
	if err != nil {
		return "", err
	}
	if c.csv {
		csvPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
		if err := ccsv.WriteGridCSV(csvPath, grid); err != nil {
			// a failed run leaves no report behind
			if rmErr := os.Remove(path); rmErr != nil {
				slog.Warn("report.cleanup.error", "path", path, "error", rmErr)
			}
			return "", &mv2.ReportError{Op: "csv", Err: err}
		}
		slog.Info("report.csv.saved", "path", csvPath)
	}
	return path, nil
}
