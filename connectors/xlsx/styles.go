package xlsx

import (
	"mv2-creator/domain/mv2"

	"github.com/xuri/excelize/v2"
)

// styles mirrors the look of the MV2 report: grey banded header and
// subtotal rows, bordered data rows, large grand total, italic note.
type styles struct {
	header     int
	dataKey    int
	dataNumber int
	dataValue  int
	grandText  int
	grandValue int
	note       int
}

func newStyles(f *excelize.File, font string) (*styles, error) {
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	grey := excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1}
	title := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	data := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	keys := &excelize.Alignment{Horizontal: "left", Vertical: "center"}

	s := &styles{}
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.header, &excelize.Style{Font: &excelize.Font{Family: font, Size: 10, Bold: true}, Alignment: title, Fill: grey, Border: thin}},
		{&s.dataKey, &excelize.Style{Font: &excelize.Font{Family: font, Size: 10, Bold: true}, Alignment: keys, Border: thin}},
		{&s.dataNumber, &excelize.Style{Font: &excelize.Font{Family: font, Size: 10, Bold: true}, Alignment: data, Border: thin}},
		{&s.dataValue, &excelize.Style{Font: &excelize.Font{Family: font, Size: 10}, Alignment: data, Border: thin}},
		{&s.grandText, &excelize.Style{Font: &excelize.Font{Family: font, Size: 12, Bold: true}, Alignment: keys}},
		{&s.grandValue, &excelize.Style{Font: &excelize.Font{Family: font, Size: 12, Bold: true}, Alignment: data}},
		{&s.note, &excelize.Style{Font: &excelize.Font{Family: font, Size: 10, Italic: true}, Alignment: &excelize.Alignment{Horizontal: "left"}}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, err
		}
		*d.dst = id
	}
	return s, nil
}

// forCell picks the style of a 1-based column; 0 means unstyled.
func (s *styles) forCell(kind mv2.RowKind, col int, c mv2.Cell) int {
	switch kind {
	case mv2.RowHeader, mv2.RowSubtotal:
		return s.header
	case mv2.RowData:
		switch col {
		case 2, 3:
			return s.dataKey
		case 4:
			return s.dataNumber
		}
		return s.dataValue
	case mv2.RowGrandTotal:
		if c.Kind == mv2.CellNumber {
			return s.grandValue
		}
		return s.grandText
	case mv2.RowNote:
		if col == 2 {
			return s.note
		}
	}
	return 0
}
