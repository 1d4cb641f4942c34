// Package gesture implements the press-hold-drag state machine that
// reschedules an event by moving it along the time axis, preserving
// its duration, with an undoable commit on release.
package gesture

import (
	"time"

	"tableflip.dev/chrono/pkg/event"
	"tableflip.dev/chrono/pkg/timeline"
)

// DefaultHold is how long a press must be held before motion is
// treated as a drag rather than a tap or scroll.
const DefaultHold = 200 * time.Millisecond

// Phase is the gesture's current state.
type Phase int

const (
	// Idle means no gesture is in progress.
	Idle Phase = iota
	// Pressing means a press landed but the hold threshold has not
	// elapsed; motion in this phase cancels the gesture.
	Pressing
	// Dragging means the event is being rescheduled live.
	Dragging
)

// Commit is the record of a completed reschedule, handed to the undo
// stack. Keyed by event ID, never by reference.
type Commit struct {
	EventID string
	From    time.Time
	To      time.Time
}

// Options configures a Reschedule.
type Options struct {
	// Hold overrides DefaultHold when positive.
	Hold time.Duration

	// ClampToRange keeps the event (including its duration) inside
	// Range while dragging.
	ClampToRange bool
	Range        timeline.Range

	// OnDragStart fires once when the hold threshold elapses and the
	// drag becomes live — the discrete feedback pulse.
	OnDragStart func(e *event.Event)
}

// Reschedule drives one drag at a time. It is not safe for concurrent
// use; the UI goroutine owns it.
type Reschedule struct {
	opts  Options
	phase Phase

	target    *event.Event
	pressedAt time.Time

	originalStart    time.Time
	originalDuration time.Duration
	hasDuration      bool

	accumPx float64
}

// New creates a drag state machine.
func New(opts Options) *Reschedule {
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}
	return &Reschedule{opts: opts}
}

// Phase returns the current gesture phase.
func (r *Reschedule) Phase() Phase { return r.phase }

// Active reports whether the gesture owns the pointer; the viewport
// suppresses scrolling while it does.
func (r *Reschedule) Active() bool { return r.phase != Idle }

// Target returns the event under the gesture, if any.
func (r *Reschedule) Target() *event.Event { return r.target }

// Press begins a gesture on an event card. Ignored while a gesture is
// already in flight.
func (r *Reschedule) Press(e *event.Event, now time.Time) {
	if r.phase != Idle || e == nil {
		return
	}
	r.phase = Pressing
	r.target = e
	r.pressedAt = now
	r.accumPx = 0
}

// Move feeds a main-axis pixel delta. Motion before the hold threshold
// cancels back to Idle (the press was a tap or a scroll); after it,
// deltas accumulate and the event's start is live-mutated, end
// following to preserve the original duration. Returns true when the
// event moved.
func (r *Reschedule) Move(deltaPx, pointsPerSecond float64, now time.Time) bool {
	switch r.phase {
	case Idle:
		return false
	case Pressing:
		if now.Sub(r.pressedAt) < r.opts.Hold {
			r.reset()
			return false
		}
		r.begin()
	}
	if pointsPerSecond <= 0 {
		return false
	}
	r.accumPx += deltaPx
	offset := time.Duration(r.accumPx / pointsPerSecond * float64(time.Second))
	start := r.originalStart.Add(offset)
	if r.opts.ClampToRange {
		start = r.clamp(start)
	}
	if start.Equal(r.target.Start.Time) {
		return false
	}
	r.target.MoveTo(start)
	return true
}

// begin transitions Pressing→Dragging, capturing the revert point.
func (r *Reschedule) begin() {
	r.phase = Dragging
	r.originalStart = r.target.Start.Time
	r.originalDuration = r.target.RawDuration()
	r.hasDuration = r.target.IsDuration()
	if r.opts.OnDragStart != nil {
		r.opts.OnDragStart(r.target)
	}
}

// Release ends the gesture. A live drag commits and reports the move
// for undo; a press that never crossed the hold threshold is a no-op.
func (r *Reschedule) Release() (Commit, bool) {
	defer r.reset()
	if r.phase != Dragging {
		return Commit{}, false
	}
	return Commit{
		EventID: r.target.ID,
		From:    r.originalStart,
		To:      r.target.Start.Time,
	}, true
}

// Cancel aborts the gesture, reverting a live drag to its original
// start. Interruption never commits: a half-finished drag the user
// did not release is not a move they asked for.
func (r *Reschedule) Cancel() {
	if r.phase == Dragging {
		r.target.MoveTo(r.originalStart)
	}
	r.reset()
}

func (r *Reschedule) reset() {
	r.phase = Idle
	r.target = nil
	r.accumPx = 0
}

// clamp keeps [start, start+duration] inside the configured range.
func (r *Reschedule) clamp(start time.Time) time.Time {
	rng := r.opts.Range
	if !rng.Valid() {
		return start
	}
	if start.Before(rng.Start) {
		start = rng.Start
	}
	if end := start.Add(r.originalDuration); end.After(rng.End) {
		start = rng.End.Add(-r.originalDuration)
		if start.Before(rng.Start) {
			start = rng.Start
		}
	}
	return start
}
