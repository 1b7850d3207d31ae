package mv2

import (
	"time"

	lo "github.com/samber/lo"
)

// Ingest builds the aggregate from MV1 rows.
//
// The period start is the earliest normalized open timestamp among the
// first opts.ProbeRows data rows (sheet rows 2..ProbeRows+1), not the whole
// sheet. The period end is the latest open+duration over every valid row.
// Rows without a duration or an open date are skipped.
func Ingest(rows []Row, opts Options) (*Aggregate, error) {
	if err := opts.Validate(); err != nil {
		return nil, &IngestionError{Err: err}
	}

	start, err := probeStart(rows, opts.ProbeRows)
	if err != nil {
		return nil, err
	}

	agg := &Aggregate{Period: Period{Start: start}}
	b := newBuilder()
	haveEnd := false

	for _, r := range rows {
		sec, ter, err := SplitActivityCode(r.ActivityCode, opts.Separator)
		if err != nil {
			return nil, &IngestionError{Line: r.Line, Column: "activity_code", Err: err}
		}
		if r.Duration == 0 || r.OpenDate == nil {
			agg.SkippedRows++
			continue
		}
		if r.Duration < 0 {
			return nil, &IngestionError{Line: r.Line, Column: "duration", Err: ErrNegativeDuration}
		}
		if r.OpenHour < 0 || r.OpenHour > 23 {
			return nil, &IngestionError{Line: r.Line, Column: "open_hour", Err: ErrInvalidHour}
		}

		open := NormalizeOpen(*r.OpenDate, r.OpenHour)
		closed := open.Add(time.Duration(r.Duration) * time.Hour)
		if !haveEnd || closed.After(agg.Period.End) {
			agg.Period.End = closed
			haveEnd = true
		}

		bucket := b.bucket(sec, ter)
		agg.DroppedSlots += bucket.Debit(OffsetHours(start, open), r.Duration, r.Debit)
	}
	if !haveEnd {
		return nil, &IngestionError{Err: ErrNoData}
	}

	agg.Secs = b.groups()
	for _, sg := range agg.Secs {
		for _, tg := range sg.Ters {
			tg.Bucket.Summed = Summarize(SumChunks(tg.Bucket.Hours, opts.ChunkPattern))
			tg.Bucket.TotalHours = lo.Sum(tg.Bucket.Hours) / opts.TotalDivisor
		}
	}
	return agg, nil
}

func probeStart(rows []Row, probe int) (time.Time, error) {
	var start time.Time
	found := false
	for _, r := range rows {
		if probe > 0 && r.Line > probe+1 {
			continue
		}
		if r.OpenDate == nil {
			continue
		}
		if r.OpenHour < 0 || r.OpenHour > 23 {
			return time.Time{}, &IngestionError{Line: r.Line, Column: "open_hour", Err: ErrInvalidHour}
		}
		open := NormalizeOpen(*r.OpenDate, r.OpenHour)
		if !found || open.Before(start) {
			start = open
			found = true
		}
	}
	if !found {
		return time.Time{}, &IngestionError{Err: ErrNoPeriodStart}
	}
	return start, nil
}

// builder keeps Sec and Ter keys in first-seen order so that equal
// numeric keys sort stably.
type builder struct {
	secOrder []string
	terOrder map[string][]string
	buckets  map[string]map[string]*TerBucket
}

func newBuilder() *builder {
	return &builder{
		terOrder: map[string][]string{},
		buckets:  map[string]map[string]*TerBucket{},
	}
}

func (b *builder) bucket(sec, ter string) *TerBucket {
	ters, ok := b.buckets[sec]
	if !ok {
		ters = map[string]*TerBucket{}
		b.buckets[sec] = ters
		b.secOrder = append(b.secOrder, sec)
	}
	tb, ok := ters[ter]
	if !ok {
		tb = &TerBucket{}
		ters[ter] = tb
		b.terOrder[sec] = append(b.terOrder[sec], ter)
	}
	return tb
}

func (b *builder) groups() []SecGroup {
	secs := append([]string(nil), b.secOrder...)
	SortNumeric(secs)
	return lo.Map(secs, func(sec string, _ int) SecGroup {
		ters := append([]string(nil), b.terOrder[sec]...)
		SortNumeric(ters)
		return SecGroup{
			Sec: sec,
			Ters: lo.Map(ters, func(ter string, _ int) TerGroup {
				return TerGroup{Ter: ter, Bucket: b.buckets[sec][ter]}
			}),
		}
	})
}
