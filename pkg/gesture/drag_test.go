package gesture

import (
	"testing"
	"time"

	"tableflip.dev/chrono/pkg/event"
	"tableflip.dev/chrono/pkg/timeline"
)

var t0 = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

// pps120 is the pixel density of zoom 1: 120px per hour.
const pps120 = 120.0 / 3600.0

func durationEvent() *event.Event {
	e := event.New("Journal", "offsite", t0)
	e.Precision = event.PrecisionTime
	e.SetEnd(t0.Add(3 * time.Hour))
	return e
}

func TestMotionBeforeHoldCancels(t *testing.T) {
	r := New(Options{})
	e := durationEvent()

	r.Press(e, t0)
	if moved := r.Move(50, pps120, t0.Add(50*time.Millisecond)); moved {
		t.Fatalf("early motion should not move the event")
	}
	if r.Phase() != Idle {
		t.Fatalf("early motion should cancel to Idle, got %v", r.Phase())
	}
	if !e.Start.Equal(t0) {
		t.Fatalf("event moved by a cancelled press")
	}
}

func TestHoldThenDragMovesEvent(t *testing.T) {
	pulses := 0
	r := New(Options{OnDragStart: func(*event.Event) { pulses++ }})
	e := durationEvent()

	r.Press(e, t0)
	// 120px right at zoom 1 is exactly one hour.
	if !r.Move(120, pps120, t0.Add(250*time.Millisecond)) {
		t.Fatalf("drag past hold threshold should move")
	}
	if r.Phase() != Dragging {
		t.Fatalf("phase = %v, want Dragging", r.Phase())
	}
	if pulses != 1 {
		t.Fatalf("feedback pulses = %d, want 1", pulses)
	}
	if want := t0.Add(time.Hour); !e.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", e.Start, want)
	}
}

func TestDragPreservesDuration(t *testing.T) {
	r := New(Options{})
	e := durationEvent()

	r.Press(e, t0)
	r.Move(-480, pps120, t0.Add(time.Second)) // four hours left
	r.Move(60, pps120, t0.Add(2*time.Second)) // half hour back

	if got, want := e.End.Sub(e.Start.Time), 3*time.Hour; got != want {
		t.Fatalf("duration = %v, want %v", got, want)
	}
	if want := t0.Add(-3*time.Hour - 30*time.Minute); !e.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", e.Start, want)
	}
}

func TestReleaseCommits(t *testing.T) {
	r := New(Options{})
	e := durationEvent()

	r.Press(e, t0)
	r.Move(240, pps120, t0.Add(time.Second))
	commit, ok := r.Release()
	if !ok {
		t.Fatalf("expected a commit")
	}
	if commit.EventID != e.ID {
		t.Fatalf("commit for %q, want %q", commit.EventID, e.ID)
	}
	if !commit.From.Equal(t0) || !commit.To.Equal(t0.Add(2*time.Hour)) {
		t.Fatalf("commit %v -> %v", commit.From, commit.To)
	}
	if r.Phase() != Idle {
		t.Fatalf("release should return to Idle")
	}
}

func TestReleaseWithoutDragIsNoop(t *testing.T) {
	r := New(Options{})
	e := durationEvent()

	r.Press(e, t0)
	if _, ok := r.Release(); ok {
		t.Fatalf("press without drag should not commit")
	}
}

func TestCancelReverts(t *testing.T) {
	r := New(Options{})
	e := durationEvent()

	r.Press(e, t0)
	r.Move(600, pps120, t0.Add(time.Second))
	if e.Start.Equal(t0) {
		t.Fatalf("expected live mutation before cancel")
	}
	r.Cancel()
	if !e.Start.Equal(t0) {
		t.Fatalf("cancel should revert to original start, got %v", e.Start)
	}
	if !e.End.Equal(t0.Add(3 * time.Hour)) {
		t.Fatalf("cancel should revert the end too, got %v", e.End)
	}
}

func TestClampToRange(t *testing.T) {
	rng := timeline.Range{
		Name:       "Journal",
		Start:      t0.Add(-24 * time.Hour),
		End:        t0.Add(24 * time.Hour),
		Configured: true,
	}
	r := New(Options{ClampToRange: true, Range: rng})
	e := durationEvent()

	r.Press(e, t0)
	// A wild fling far past the range start.
	r.Move(-1e6, pps120, t0.Add(time.Second))
	if !e.Start.Equal(rng.Start) {
		t.Fatalf("start = %v, want clamp at %v", e.Start, rng.Start)
	}

	// And far past the end: the whole duration must stay inside.
	r.Move(2e6, pps120, t0.Add(2*time.Second))
	if want := rng.End.Add(-3 * time.Hour); !e.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", e.Start, want)
	}
}

func TestPointEventDrag(t *testing.T) {
	r := New(Options{})
	e := event.New("Journal", "point", t0)

	r.Press(e, t0)
	r.Move(120, pps120, t0.Add(time.Second))
	if e.End != nil {
		t.Fatalf("point event grew an end date")
	}
	if want := t0.Add(time.Hour); !e.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", e.Start, want)
	}
}
