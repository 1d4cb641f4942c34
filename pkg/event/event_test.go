package event

import (
	"testing"
	"time"
)

func TestEffectiveDurationDayPrecision(t *testing.T) {
	start := time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 3, 14, 0, 0, 0, time.UTC)

	e := New("Journal", "trip", start)
	e.SetEnd(end)
	e.Precision = PrecisionDay

	// Jan 1 through Jan 3 spans three whole days.
	if got, want := e.EffectiveDuration(), 3*24*time.Hour; got != want {
		t.Fatalf("effective duration = %v, want %v", got, want)
	}
}

func TestEffectiveDurationTimePrecision(t *testing.T) {
	start := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

	e := New("Journal", "meeting", start)
	e.SetEnd(start.Add(90 * time.Minute))
	e.Precision = PrecisionTime

	if got, want := e.EffectiveDuration(), 90*time.Minute; got != want {
		t.Fatalf("effective duration = %v, want %v", got, want)
	}
}

func TestEffectiveDurationDegenerateSpans(t *testing.T) {
	start := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

	point := New("Journal", "point", start)
	if point.EffectiveDuration() != 0 {
		t.Fatalf("point event should have zero effective duration")
	}

	equal := New("Journal", "equal", start)
	equal.SetEnd(start)
	equal.Precision = PrecisionTime
	if equal.EffectiveDuration() != 0 {
		t.Fatalf("equal start/end should yield zero raw duration")
	}

	// Inverted ranges clamp instead of failing; validation is the
	// editor's job.
	inverted := New("Journal", "inverted", start)
	inverted.SetEnd(start.Add(-time.Hour))
	inverted.Precision = PrecisionTime
	if inverted.EffectiveDuration() != 0 {
		t.Fatalf("inverted range should clamp to zero")
	}
}

func TestMoveToPreservesDuration(t *testing.T) {
	start := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)

	e := New("Journal", "offsite", start)
	e.SetEnd(start.Add(36 * time.Hour))
	e.Precision = PrecisionTime

	e.MoveTo(start.Add(-73 * time.Hour))

	if got, want := e.End.Sub(e.Start.Time), 36*time.Hour; got != want {
		t.Fatalf("duration after move = %v, want %v", got, want)
	}
	if !e.Start.Equal(start.Add(-73 * time.Hour)) {
		t.Fatalf("start after move = %v", e.Start)
	}
}

func TestColorParsing(t *testing.T) {
	e := New("Journal", "colored", time.Now())

	e.ColorHex = "4285f4"
	if _, ok := e.Color(); !ok {
		t.Fatalf("expected bare hex to parse")
	}

	e.ColorHex = "#not-a-color"
	if _, ok := e.Color(); ok {
		t.Fatalf("expected invalid hex to be rejected")
	}

	e.ColorHex = ""
	if _, ok := e.Color(); ok {
		t.Fatalf("expected empty hex to report no color")
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := At(time.Date(2024, time.May, 2, 13, 45, 0, 0, time.UTC))
	b, err := ts.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Timestamp
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(ts.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, ts)
	}
}
