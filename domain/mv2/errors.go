package mv2

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoPeriodStart    = errors.New("no dated row found in the period probe")
	ErrNoData           = errors.New("no row with a duration and an open date")
	ErrMissingSeparator = errors.New("activity code has no separator")
	ErrMissingCode      = errors.New("activity code is empty")
	ErrNegativeDuration = errors.New("duration is negative")
	ErrInvalidHour      = errors.New("open hour outside 0-23")
	ErrInvertedPeriod   = errors.New("period end is before period start")
)

// IngestionError reports an input access or structural failure.
// Line and Column are set when the failure is tied to a cell.
type IngestionError struct {
	Path   string
	Line   int
	Column string
	Err    error
}

func (e *IngestionError) Error() string {
	var b strings.Builder
	b.WriteString("ingest")
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " row %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %s", e.Column)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *IngestionError) Unwrap() error { return e.Err }

// ReportError reports a failure while laying out or saving the report.
type ReportError struct {
	Op  string
	Err error
}

func (e *ReportError) Error() string { return "report " + e.Op + ": " + e.Err.Error() }

func (e *ReportError) Unwrap() error { return e.Err }
