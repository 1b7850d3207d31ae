package mv2

import (
	"strconv"

	lo "github.com/samber/lo"
)

// SumChunks cuts data into consecutive chunks whose widths cycle through
// pattern and returns the average of each chunk over its declared width.
// A short final chunk is still divided by the full width. A pattern that is
// empty or holds a non-positive width yields nil.
func SumChunks(data []float64, pattern []int) []float64 {
	if len(pattern) == 0 || lo.Min(pattern) <= 0 {
		return nil
	}
	var out []float64
	for start, k := 0, 0; start < len(data); k++ {
		width := pattern[k%len(pattern)]
		end := min(start+width, len(data))
		out = append(out, lo.Sum(data[start:end])/float64(width))
		start += width
	}
	return out
}

// Summarize maps exact zeros to Blank and rounds everything else to
// two decimals.
func Summarize(values []float64) []ShiftValue {
	return lo.Map(values, func(v float64, _ int) ShiftValue {
		if v == 0 {
			return Blank()
		}
		return Numeric(round2(v))
	})
}

// round2 rounds the exact binary value, so 2.675 (stored as 2.67499...)
// gives 2.67.
func round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}
