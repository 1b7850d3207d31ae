package mv2

import (
	"strconv"

	lo "github.com/samber/lo"
)

type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is one report cell. Blank shift values become CellEmpty.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

func Empty() Cell { return Cell{} }

func Text(s string) Cell { return Cell{Kind: CellText, Text: s} }

func Number(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }

func FromShift(v ShiftValue) Cell {
	if v.IsBlank() {
		return Empty()
	}
	return Number(v.Float())
}

// Value returns the cell as nil, string or float64.
func (c Cell) Value() any {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return c.Number
	}
	return nil
}

func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	}
	return ""
}

type RowKind int

const (
	RowBlank RowKind = iota
	RowHeader
	RowData
	RowSubtotal
	RowGrandTotal
	RowNote
)

type GridRow struct {
	Kind  RowKind
	Cells []Cell
}

// Grid is the MV2 report laid out in memory. Column 0 is always empty;
// shift columns start at index 4.
type Grid struct {
	Period       Period
	Days         int
	ShiftColumns int
	Rows         []GridRow
}

const shiftOffset = 4

// Width is the number of columns of a full report row.
func (g *Grid) Width() int { return shiftOffset + g.ShiftColumns }

// BuildGrid lays out agg as the MV2 report: for each Sec a blank row, a
// header, one row per Ter and a subtotal row; then a blank row, the grand
// total, a blank row and the credit note.
func BuildGrid(agg *Aggregate, opts Options) (*Grid, error) {
	if err := opts.Validate(); err != nil {
		return nil, &ReportError{Op: "layout", Err: err}
	}
	if agg.Period.End.Before(agg.Period.Start) {
		return nil, &ReportError{Op: "layout", Err: ErrInvertedPeriod}
	}

	days := agg.Period.Days()
	longest := lo.Max(lo.FlatMap(agg.Secs, func(sg SecGroup, _ int) []int {
		return lo.Map(sg.Ters, func(tg TerGroup, _ int) int { return len(tg.Bucket.Summed) })
	}))
	g := &Grid{Period: agg.Period, Days: days, ShiftColumns: max(2*days, longest)}
	width := g.Width()

	header := append([]Cell{Empty(), Text("Sec"), Text("Ter"), Text("Duration")},
		lo.Times(g.ShiftColumns, func(i int) Cell { return Text(opts.ShiftLabels[i%len(opts.ShiftLabels)]) })...)

	grand := make([]float64, g.ShiftColumns)
	grandDuration := 0.0

	for _, sg := range agg.Secs {
		g.Rows = append(g.Rows, GridRow{Kind: RowBlank}, GridRow{Kind: RowHeader, Cells: header})

		secCols := make([]float64, g.ShiftColumns)
		secDuration := 0.0
		for _, tg := range sg.Ters {
			duration := lo.Sum(tg.Bucket.Hours) / opts.TotalDivisor
			secDuration += duration
			grandDuration += duration

			cells := make([]Cell, width)
			cells[1], cells[2], cells[3] = Text(sg.Sec), Text(tg.Ter), Number(duration)
			for i, v := range tg.Bucket.Summed {
				cells[shiftOffset+i] = FromShift(v)
				secCols[i] += v.Float()
				grand[i] += v.Float()
			}
			g.Rows = append(g.Rows, GridRow{Kind: RowData, Cells: cells})
		}

		total := make([]Cell, width)
		total[1], total[2], total[3] = Text(sg.Sec), Text("Total"), Number(secDuration)
		for i, sum := range secCols {
			if sum != 0 {
				total[shiftOffset+i] = Number(round2(sum))
			}
		}
		g.Rows = append(g.Rows, GridRow{Kind: RowSubtotal, Cells: total})
	}

	grandRow := append([]Cell{Empty(), Text("Grand Total"), Empty(), Number(grandDuration)},
		lo.Map(grand, func(v float64, _ int) Cell { return Number(round2(v)) })...)
	g.Rows = append(g.Rows,
		GridRow{Kind: RowBlank},
		GridRow{Kind: RowGrandTotal, Cells: grandRow},
		GridRow{Kind: RowBlank},
		GridRow{Kind: RowNote, Cells: []Cell{Empty(), Text(opts.CreditNote)}},
	)
	return g, nil
}
