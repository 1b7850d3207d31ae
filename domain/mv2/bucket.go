package mv2

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// NormalizeOpen replaces the hour-of-day of date with hour, keeping the
// calendar day, minutes and seconds.
func NormalizeOpen(date time.Time, hour int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// OffsetHours is the whole number of hours from start to open, floored.
func OffsetHours(start, open time.Time) int {
	return int(math.Floor(open.Sub(start).Hours()))
}

// Debit adds debit to duration consecutive slots starting at offset,
// growing Hours with zeros as needed. Slots before the period start are
// not written; their count is returned.
func (b *TerBucket) Debit(offset, duration int, debit float64) (dropped int) {
	for i := 0; i < duration; i++ {
		idx := offset + i
		if idx < 0 {
			dropped++
			continue
		}
		if idx >= len(b.Hours) {
			b.Hours = append(b.Hours, make([]float64, idx-len(b.Hours)+1)...)
		}
		b.Hours[idx] += debit
	}
	return dropped
}

// SplitActivityCode splits "<sec><sep><ter>" into sec and sep+ter.
// Anything after a second separator is discarded.
func SplitActivityCode(code, sep string) (sec, ter string, err error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", "", ErrMissingCode
	}
	parts := strings.Split(code, sep)
	if len(parts) < 2 {
		return "", "", ErrMissingSeparator
	}
	return parts[0], sep + parts[1], nil
}

// NumericKey extracts the digits embedded in s and parses them.
// ok is false when s holds no digits.
func NumericKey(s string) (n int, ok bool) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return math.MaxInt, true
	}
	return n, true
}

// SortNumeric orders keys by their embedded number, ascending. Keys without
// digits go last. Ties keep their input order.
func SortNumeric(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, aok := NumericKey(keys[i])
		b, bok := NumericKey(keys[j])
		if aok != bok {
			return aok
		}
		return a < b
	})
}
