package timeline

import (
	"testing"
	"time"
)

func TestEnsureSpanExpandsWithBuffer(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	r := Range{Name: "Journal", Start: start, End: end, Configured: true}

	// 31 days * 5% = ~37h buffer, above the one-day floor.
	late := end.Add(48 * time.Hour)
	if !r.EnsureSpan(late, late) {
		t.Fatalf("expected expansion")
	}
	if !r.End.After(late) {
		t.Fatalf("end %v should include buffer past %v", r.End, late)
	}
	if r.Start != start {
		t.Fatalf("start should be untouched, got %v", r.Start)
	}
}

func TestEnsureSpanMinimumOneDayBuffer(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := Range{Name: "Short", Start: start, End: start.Add(48 * time.Hour), Configured: true}

	early := start.Add(-time.Hour)
	if !r.EnsureSpan(early, early) {
		t.Fatalf("expected expansion")
	}
	if got := early.Sub(r.Start); got < 24*time.Hour {
		t.Fatalf("buffer %v below one-day floor", got)
	}
}

func TestEnsureSpanNoChangeInside(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := Range{Name: "Journal", Start: start, End: start.AddDate(0, 1, 0), Configured: true}

	if r.EnsureSpan(start.AddDate(0, 0, 3), start.AddDate(0, 0, 5)) {
		t.Fatalf("in-range span should not expand")
	}
}

func TestValid(t *testing.T) {
	start := time.Now()
	cases := []struct {
		name string
		r    Range
		want bool
	}{
		{"configured", Range{Start: start, End: start.Add(time.Hour), Configured: true}, true},
		{"unconfigured", Range{Start: start, End: start.Add(time.Hour)}, false},
		{"inverted", Range{Start: start, End: start.Add(-time.Hour), Configured: true}, false},
		{"empty", Range{Start: start, End: start, Configured: true}, false},
	}
	for _, tc := range cases {
		if got := tc.r.Valid(); got != tc.want {
			t.Errorf("%s: Valid() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
