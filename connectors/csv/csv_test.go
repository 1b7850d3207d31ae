package csv

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mv2-creator/domain/mv2"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return recs
}

func sample(t *testing.T) *mv2.Aggregate {
	t.Helper()
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	agg, err := mv2.Ingest([]mv2.Row{
		{Line: 2, ActivityCode: "S1T1", Debit: 1, OpenDate: &d, OpenHour: 14, Duration: 2},
	}, mv2.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return agg
}

func TestWriteAggregateCSVs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	if err := WriteAggregateCSVs(dir, sample(t), []int{15, 9}, []string{"N", "J"}); err != nil {
		t.Fatalf("WriteAggregateCSVs: %v", err)
	}

	timeline := readAll(t, filepath.Join(dir, "timeline.csv"))
	if len(timeline) != 3 {
		t.Fatalf("timeline lines = %d, want 3", len(timeline))
	}
	if got := timeline[2]; got[2] != "1" || got[3] != "2024-01-01T15:00:00Z" || got[4] != "1" {
		t.Errorf("timeline[2] = %v", got)
	}

	shifts := readAll(t, filepath.Join(dir, "shifts.csv"))
	if len(shifts) != 2 {
		t.Fatalf("shifts lines = %d, want 2", len(shifts))
	}
	if got := shifts[1]; got[3] != "N" || got[4] != "2024-01-01T14:00:00Z" || got[5] != "0.13" {
		t.Errorf("shifts[1] = %v", got)
	}
}

func TestWriteGridCSV(t *testing.T) {
	grid, err := mv2.BuildGrid(sample(t), mv2.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out", "MV2.csv")
	if err := WriteGridCSV(path, grid); err != nil {
		t.Fatalf("WriteGridCSV: %v", err)
	}
	recs := readAll(t, path)
	if len(recs) != len(grid.Rows) {
		t.Fatalf("lines = %d, want %d", len(recs), len(grid.Rows))
	}
	if recs[1][1] != "Sec" || recs[2][2] != "T1" {
		t.Errorf("unexpected layout: %v", recs[:3])
	}
}
