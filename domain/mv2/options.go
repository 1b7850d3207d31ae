package mv2

import (
	"errors"
	"fmt"
)

// DefaultChunkPattern is the night (15h) then day (9h) shift cycle.
var DefaultChunkPattern = []int{15, 9}

// Options tunes ingestion and layout. Use DefaultOptions as a base.
type Options struct {
	Separator    string
	ProbeRows    int // data rows scanned for the period start, 0 scans all
	ChunkPattern []int
	ShiftLabels  []string
	TotalDivisor float64
	CreditNote   string
}

func DefaultOptions() Options {
	return Options{
		Separator:    "T",
		ProbeRows:    9,
		ChunkPattern: append([]int(nil), DefaultChunkPattern...),
		ShiftLabels:  []string{"N", "J"},
		TotalDivisor: 20,
		CreditNote:   "Generated by MV2 Creator app - by Anas Asimi - 2025",
	}
}

func (o Options) Validate() error {
	if o.Separator == "" {
		return errors.New("separator must not be empty")
	}
	if o.ProbeRows < 0 {
		return fmt.Errorf("probe rows must be >= 0, got %d", o.ProbeRows)
	}
	if len(o.ChunkPattern) == 0 {
		return errors.New("chunk pattern must not be empty")
	}
	for _, w := range o.ChunkPattern {
		if w <= 0 {
			return fmt.Errorf("chunk width must be positive, got %d", w)
		}
	}
	if len(o.ShiftLabels) == 0 {
		return errors.New("shift labels must not be empty")
	}
	if o.TotalDivisor == 0 {
		return errors.New("total divisor must not be zero")
	}
	return nil
}
