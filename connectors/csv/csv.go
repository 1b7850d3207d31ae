package csv

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"mv2-creator/domain/mv2"

	lo "github.com/samber/lo"
)

// WriteAggregateCSVs writes the timeline and shift dumps into dir.
func WriteAggregateCSVs(dir string, agg *mv2.Aggregate, pattern []int, labels []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := WriteTimelineCSV(filepath.Join(dir, "timeline.csv"), agg); err != nil {
		return err
	}
	if err := WriteShiftsCSV(filepath.Join(dir, "shifts.csv"), agg, pattern, labels); err != nil {
		return err
	}
	return nil
}

// WriteGridCSV writes the report grid as plain CSV, one line per grid row.
func WriteGridCSV(path string, grid *mv2.Grid) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	for _, row := range grid.Rows {
		rec := lo.Map(row.Cells, func(c mv2.Cell, _ int) string { return c.String() })
		if len(rec) == 0 {
			// a lone empty field keeps blank rows from collapsing
			rec = []string{""}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteTimelineCSV writes every hour slot of every bucket.
// Headers: sec, ter, offset, hour, debit
func WriteTimelineCSV(path string, agg *mv2.Aggregate) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"sec", "ter", "offset", "hour", "debit"}); err != nil {
		return err
	}
	for _, sg := range agg.Secs {
		for _, tg := range sg.Ters {
			for i, v := range tg.Bucket.Hours {
				at := agg.Period.Start.Add(time.Duration(i) * time.Hour)
				row := []string{sg.Sec, tg.Ter, strconv.Itoa(i), at.Format(time.RFC3339), formatFloat(v)}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
	}
	w.Flush()
	return w.Error()
}

// WriteShiftsCSV writes one line per shift value with its label and start.
// Headers: sec, ter, shift, label, start, value
func WriteShiftsCSV(path string, agg *mv2.Aggregate, pattern []int, labels []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"sec", "ter", "shift", "label", "start", "value"}); err != nil {
		return err
	}
	for _, sg := range agg.Secs {
		for _, tg := range sg.Ters {
			offset := 0
			for i, v := range tg.Bucket.Summed {
				at := agg.Period.Start.Add(time.Duration(offset) * time.Hour)
				row := []string{sg.Sec, tg.Ter, strconv.Itoa(i), labels[i%len(labels)], at.Format(time.RFC3339), v.String()}
				if err := w.Write(row); err != nil {
					return err
				}
				offset += pattern[i%len(pattern)]
			}
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
