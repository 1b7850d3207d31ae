package mv2

import (
	"encoding/json"
	"strconv"
	"time"
)

// Row is one MV1 record as read from the input sheet.
type Row struct {
	Line         int        // 1-based sheet row, the header being row 1
	ActivityCode string     // "<sec>T<ter>"
	Debit        float64    // credited to every hour slot the row covers
	OpenDate     *time.Time // nil when the cell is empty
	OpenHour     int
	Duration     int // whole hours, 0 means the row is ignored
}

// Period bounds the reporting timeline (TRD_start / TRD_end).
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of whole days between Start and End.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start) / (24 * time.Hour))
}

// ShiftValue is a shift average that is either a number or blank.
// The zero value is blank.
type ShiftValue struct {
	v   float64
	set bool
}

func Numeric(v float64) ShiftValue { return ShiftValue{v: v, set: true} }

func Blank() ShiftValue { return ShiftValue{} }

func (s ShiftValue) IsBlank() bool { return !s.set }

// Float returns the numeric value, 0 for a blank.
func (s ShiftValue) Float() float64 { return s.v }

func (s ShiftValue) String() string {
	if !s.set {
		return ""
	}
	return strconv.FormatFloat(s.v, 'f', -1, 64)
}

func (s ShiftValue) MarshalJSON() ([]byte, error) {
	if !s.set {
		return []byte("null"), nil
	}
	return json.Marshal(s.v)
}

// TerBucket accumulates the hourly debits of one (Sec, Ter) pair.
// Hours[0] is the first hour of the period start.
type TerBucket struct {
	Hours      []float64    `json:"hours"`
	Summed     []ShiftValue `json:"shifts"`
	TotalHours float64      `json:"total_hours"`
}

type TerGroup struct {
	Ter    string     `json:"ter"`
	Bucket *TerBucket `json:"bucket"`
}

type SecGroup struct {
	Sec  string     `json:"sec"`
	Ters []TerGroup `json:"ters"`
}

// Aggregate is the result of ingestion: Sec groups in report order,
// each holding its Ter buckets in report order.
type Aggregate struct {
	Period       Period     `json:"period"`
	Secs         []SecGroup `json:"secs"`
	SkippedRows  int        `json:"skipped_rows"`
	DroppedSlots int        `json:"dropped_slots"`
}

// Lookup returns the bucket for sec/ter if present.
func (a *Aggregate) Lookup(sec, ter string) (*TerBucket, bool) {
	for _, sg := range a.Secs {
		if sg.Sec != sec {
			continue
		}
		for _, tg := range sg.Ters {
			if tg.Ter == ter {
				return tg.Bucket, true
			}
		}
	}
	return nil, false
}
