package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/chrono/pkg/event"
)

func newTestStore(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return p
}

var day1 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestStoreAndListRoundTrip(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()

	a := event.New("Journal", "first", day1)
	b := event.New("Journal", "second", day1.AddDate(0, 0, 3))
	b.Precision = event.PrecisionTime
	b.SetEnd(b.Start.Add(2 * time.Hour))
	for _, e := range []*event.Event{b, a} {
		if err := p.Store(e); err != nil {
			t.Fatalf("store: %v", err)
		}
	}

	got := p.List(ctx, "Journal")
	if len(got) != 2 {
		t.Fatalf("listed %d events, want 2", len(got))
	}
	// Sorted by start date, not insertion order.
	if got[0].Title != "first" || got[1].Title != "second" {
		t.Fatalf("order: %q, %q", got[0].Title, got[1].Title)
	}
	if got[0].ID != a.ID {
		t.Fatalf("id survived as %q, want %q", got[0].ID, a.ID)
	}
	if !got[1].IsDuration() || got[1].End.Sub(got[1].Start.Time) != 2*time.Hour {
		t.Fatalf("duration lost on round trip")
	}
}

func TestListScopedToTimeline(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()

	if err := p.Store(event.New("Journal", "mine", day1)); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := p.Store(event.New("Work", "theirs", day1)); err != nil {
		t.Fatalf("store: %v", err)
	}

	if got := p.List(ctx, "Journal"); len(got) != 1 || got[0].Title != "mine" {
		t.Fatalf("Journal list = %v", got)
	}
	if got := len(p.ListAll(ctx)); got != 2 {
		t.Fatalf("ListAll = %d, want 2", got)
	}
	if got := p.Timelines(ctx, ""); len(got) != 2 {
		t.Fatalf("timelines = %v", got)
	}
}

func TestMoveEventRekeysAndPreservesDuration(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()

	e := event.New("Journal", "offsite", day1)
	e.Precision = event.PrecisionTime
	e.SetEnd(day1.Add(3 * time.Hour))
	if err := p.Store(e); err != nil {
		t.Fatalf("store: %v", err)
	}

	moved := day1.AddDate(0, 0, 9).Add(6 * time.Hour)
	if err := p.MoveEvent(e.ID, moved); err != nil {
		t.Fatalf("move: %v", err)
	}

	got := p.List(ctx, "Journal")
	if len(got) != 1 {
		t.Fatalf("move left %d records, want 1", len(got))
	}
	if !got[0].Start.Equal(moved) {
		t.Fatalf("start = %v, want %v", got[0].Start, moved)
	}
	if got[0].End.Sub(got[0].Start.Time) != 3*time.Hour {
		t.Fatalf("move changed the duration")
	}
	if got[0].ID != e.ID {
		t.Fatalf("move changed the id")
	}
}

func TestMoveUnknownEvent(t *testing.T) {
	p := newTestStore(t)
	if err := p.MoveEvent("missing", day1); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()

	e := event.New("Journal", "oops", day1)
	if err := p.Store(e); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := p.Delete(e); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := p.List(ctx, "Journal"); len(got) != 0 {
		t.Fatalf("delete left %d events", len(got))
	}
}

func TestSetRangeAndSilentExpansion(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()

	if err := p.EnsureTimeline("Journal"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := p.SetRange("Journal", day1, day1.AddDate(0, 1, 0)); err != nil {
		t.Fatalf("set range: %v", err)
	}

	r, ok := p.Range(ctx, "Journal")
	if !ok || !r.Valid() {
		t.Fatalf("range not configured: %v", r)
	}

	// An event past the end silently grows the range with a buffer.
	late := event.New("Journal", "straggler", day1.AddDate(0, 2, 0))
	if err := p.Store(late); err != nil {
		t.Fatalf("store: %v", err)
	}
	r, _ = p.Range(ctx, "Journal")
	if !r.End.After(late.Start.Time) {
		t.Fatalf("range end %v did not expand past %v", r.End, late.Start)
	}
	if !r.Start.Equal(day1) {
		t.Fatalf("range start moved to %v", r.Start)
	}
}

func TestInvertedRangeRejected(t *testing.T) {
	p := newTestStore(t)
	if err := p.SetRange("Journal", day1, day1); err == nil {
		t.Fatalf("degenerate range accepted")
	}
}
