package mv2

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestNormalizeOpen(t *testing.T) {
	date := time.Date(2024, 3, 5, 7, 30, 15, 0, time.UTC)
	got := NormalizeOpen(date, 22)
	want := time.Date(2024, 3, 5, 22, 30, 15, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NormalizeOpen = %v, want %v", got, want)
	}
}

func TestOffsetHours(t *testing.T) {
	start := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		open time.Time
		want int
	}{
		{"same", start, 0},
		{"next day", start.Add(26 * time.Hour), 26},
		{"half hour floors", start.Add(150 * time.Minute), 2},
		{"before start", start.Add(-90 * time.Minute), -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OffsetHours(start, tt.open); got != tt.want {
				t.Errorf("OffsetHours = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTerBucketDebit(t *testing.T) {
	b := &TerBucket{}
	if dropped := b.Debit(2, 3, 1.5); dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	want := []float64{0, 0, 1.5, 1.5, 1.5}
	if !reflect.DeepEqual(b.Hours, want) {
		t.Fatalf("Hours = %v, want %v", b.Hours, want)
	}

	// overlapping and shorter writes accumulate without shrinking
	b.Debit(0, 3, 1)
	want = []float64{1, 1, 2.5, 1.5, 1.5}
	if !reflect.DeepEqual(b.Hours, want) {
		t.Fatalf("Hours = %v, want %v", b.Hours, want)
	}

	b.Debit(6, 1, 2)
	want = []float64{1, 1, 2.5, 1.5, 1.5, 0, 2}
	if !reflect.DeepEqual(b.Hours, want) {
		t.Fatalf("Hours = %v, want %v", b.Hours, want)
	}
}

func TestTerBucketDebitZeroDuration(t *testing.T) {
	b := &TerBucket{Hours: []float64{1}}
	b.Debit(5, 0, 3)
	if !reflect.DeepEqual(b.Hours, []float64{1}) {
		t.Errorf("Hours = %v, want unchanged", b.Hours)
	}
}

func TestTerBucketDebitNegativeOffset(t *testing.T) {
	b := &TerBucket{}
	dropped := b.Debit(-2, 4, 1)
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	if !reflect.DeepEqual(b.Hours, []float64{1, 1}) {
		t.Errorf("Hours = %v, want [1 1]", b.Hours)
	}
}

func TestSplitActivityCode(t *testing.T) {
	tests := []struct {
		code    string
		sec     string
		ter     string
		wantErr error
	}{
		{"S1T1", "S1", "T1", nil},
		{"Sec12T04", "Sec12", "T04", nil},
		{" S3T7 ", "S3", "T7", nil},
		{"S1T2T3", "S1", "T2", nil},
		{"S1", "", "", ErrMissingSeparator},
		{"", "", "", ErrMissingCode},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			sec, ter, err := SplitActivityCode(tt.code, "T")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if sec != tt.sec || ter != tt.ter {
				t.Errorf("got (%q, %q), want (%q, %q)", sec, ter, tt.sec, tt.ter)
			}
		})
	}
}

func TestSortNumeric(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"numeric not lexical", []string{"Sec2", "Sec10", "Sec1"}, []string{"Sec1", "Sec2", "Sec10"}},
		{"ter keys", []string{"T12", "T3", "T07"}, []string{"T3", "T07", "T12"}},
		{"ties keep order", []string{"B1", "A1", "C0"}, []string{"C0", "B1", "A1"}},
		{"no digits last", []string{"X", "S2", "Y", "S1"}, []string{"S1", "S2", "X", "Y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := append([]string(nil), tt.in...)
			SortNumeric(got)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SortNumeric(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
