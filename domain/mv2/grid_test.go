package mv2

import (
	"errors"
	"math"
	"testing"
	"time"
)

func sampleAggregate(t *testing.T) *Aggregate {
	t.Helper()
	d1, d2 := day(2024, 2, 1), day(2024, 2, 2)
	rows := []Row{
		row(2, "S2T1", 1, d1, 20, 24),
		row(3, "S1T2", 2, d1, 20, 15),
		row(4, "S1T1", 0.5, d2, 11, 9),
		row(5, "S2T3", 3, d2, 20, 24),
	}
	agg, err := Ingest(rows, DefaultOptions())
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	return agg
}

func rowsOf(g *Grid, kind RowKind) []GridRow {
	var out []GridRow
	for _, r := range g.Rows {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

func TestBuildGridLayout(t *testing.T) {
	agg := sampleAggregate(t)
	g, err := BuildGrid(agg, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	if g.Days != 2 {
		t.Errorf("Days = %d, want 2", g.Days)
	}
	if g.ShiftColumns != 4 {
		t.Errorf("ShiftColumns = %d, want 4", g.ShiftColumns)
	}

	wantKinds := []RowKind{
		RowBlank, RowHeader, RowData, RowData, RowSubtotal,
		RowBlank, RowHeader, RowData, RowData, RowSubtotal,
		RowBlank, RowGrandTotal, RowBlank, RowNote,
	}
	if len(g.Rows) != len(wantKinds) {
		t.Fatalf("rows = %d, want %d", len(g.Rows), len(wantKinds))
	}
	for i, k := range wantKinds {
		if g.Rows[i].Kind != k {
			t.Errorf("row %d kind = %d, want %d", i, g.Rows[i].Kind, k)
		}
	}

	header := g.Rows[1].Cells
	want := []string{"", "Sec", "Ter", "Duration", "N", "J", "N", "J"}
	for i, w := range want {
		if header[i].String() != w {
			t.Errorf("header[%d] = %q, want %q", i, header[i].String(), w)
		}
	}

	first := g.Rows[2].Cells
	if first[1].Text != "S1" || first[2].Text != "T1" {
		t.Errorf("first data row = %s/%s, want S1/T1", first[1].Text, first[2].Text)
	}
	if first[3].Number != 4.5/20 {
		t.Errorf("duration = %v, want %v", first[3].Number, 4.5/20)
	}
	if g.Rows[4].Cells[2].Text != "Total" {
		t.Errorf("subtotal label = %q", g.Rows[4].Cells[2].Text)
	}

	grand := g.Rows[11].Cells
	if grand[1].Text != "Grand Total" || grand[2].Kind != CellEmpty {
		t.Errorf("grand total labels = %q, %v", grand[1].Text, grand[2].Kind)
	}
	if note := g.Rows[13].Cells[1].Text; note != DefaultOptions().CreditNote {
		t.Errorf("note = %q", note)
	}
}

func TestBuildGridSubtotalBlanksAndSums(t *testing.T) {
	g, err := BuildGrid(sampleAggregate(t), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	// S1: T2 fills the first night, T1 the first day
	s1 := g.Rows[4].Cells
	if s1[shiftOffset].Number != 2 {
		t.Errorf("S1 night 1 = %v, want 2", s1[shiftOffset].Number)
	}
	if s1[shiftOffset+1].Number != 0.5 {
		t.Errorf("S1 day 1 = %v, want 0.5", s1[shiftOffset+1].Number)
	}
	for i := 2; i < g.ShiftColumns; i++ {
		if s1[shiftOffset+i].Kind != CellEmpty {
			t.Errorf("S1 column %d should be blank, got %v", i, s1[shiftOffset+i])
		}
	}

	// S2: T3 starts a day later, so its first two cells are blank
	t3 := g.Rows[8].Cells
	if t3[2].Text != "T3" || t3[shiftOffset].Kind != CellEmpty || t3[shiftOffset+2].Number != 3 {
		t.Errorf("S2/T3 row = %v", t3)
	}
}

func TestBuildGridGrandTotalMatchesSubtotals(t *testing.T) {
	g, err := BuildGrid(sampleAggregate(t), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	grand := rowsOf(g, RowGrandTotal)[0].Cells
	sums := make([]float64, g.ShiftColumns)
	duration := 0.0
	for _, st := range rowsOf(g, RowSubtotal) {
		duration += st.Cells[3].Number
		for i := 0; i < g.ShiftColumns; i++ {
			sums[i] += st.Cells[shiftOffset+i].Number
		}
	}
	if math.Abs(grand[3].Number-duration) > 1e-9 {
		t.Errorf("grand duration = %v, want %v", grand[3].Number, duration)
	}
	for i, s := range sums {
		if math.Abs(grand[shiftOffset+i].Number-s) > 1e-9 {
			t.Errorf("grand column %d = %v, want %v", i, grand[shiftOffset+i].Number, s)
		}
	}
}

func TestBuildGridWidensForTrailingPartialDay(t *testing.T) {
	// 30 hours: one whole day, but three chunks
	agg, err := Ingest([]Row{row(2, "S1T1", 1, day(2024, 1, 1), 0, 30)}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	g, err := BuildGrid(agg, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if g.Days != 1 || g.ShiftColumns != 3 {
		t.Errorf("Days = %d ShiftColumns = %d, want 1 and 3", g.Days, g.ShiftColumns)
	}
	if got := len(rowsOf(g, RowGrandTotal)[0].Cells); got != g.Width() {
		t.Errorf("grand total width = %d, want %d", got, g.Width())
	}
}

func TestBuildGridInvertedPeriod(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	agg := &Aggregate{Period: Period{Start: start, End: start.Add(-time.Hour)}}
	_, err := BuildGrid(agg, DefaultOptions())
	if !errors.Is(err, ErrInvertedPeriod) {
		t.Fatalf("err = %v, want ErrInvertedPeriod", err)
	}
	var re *ReportError
	if !errors.As(err, &re) {
		t.Fatalf("err %T is not *ReportError", err)
	}
}
