package event

import (
	"time"

	"github.com/google/uuid"
)

// CurrentSchema marks the on-disk event shape.
const CurrentSchema = "event/v1"

// Precision controls how an event's duration is displayed and rounded.
type Precision string

const (
	// PrecisionDay renders the event at whole-day granularity.
	PrecisionDay Precision = "day"
	// PrecisionTime keeps the exact time of day.
	PrecisionTime Precision = "time"
)

// Event is a single dated entry on a timeline. End is optional; its
// presence makes this a duration event, otherwise it is a point event.
type Event struct {
	Schema   string `json:"schema,omitempty"`
	ID       string `json:"id,omitempty"`
	Timeline string `json:"timeline"`
	Title    string `json:"title"`

	Start     Timestamp  `json:"start"`
	End       *Timestamp `json:"end,omitempty"`
	Precision Precision  `json:"precision,omitempty"`

	People    []string `json:"people,omitempty"`
	Locations []string `json:"locations,omitempty"`
	ColorHex  string   `json:"colorHex,omitempty"`

	// Arc marks a thin full-span marker rendered in its own side lane,
	// outside normal lane packing.
	Arc bool `json:"arc,omitempty"`

	// Repeat holds an optional RRULE for recurring events.
	Repeat string `json:"repeat,omitempty"`

	Created Timestamp `json:"created"`
}

// New creates an event with a fresh ID on the given timeline.
func New(timeline, title string, start time.Time) *Event {
	return &Event{
		Schema:    CurrentSchema,
		ID:        uuid.NewString(),
		Timeline:  timeline,
		Title:     title,
		Start:     At(start),
		Precision: PrecisionDay,
		Created:   At(time.Now()),
	}
}

// IsDuration reports whether the event spans an interval.
func (e *Event) IsDuration() bool {
	return e.End != nil && !e.End.IsZero()
}

// SetEnd marks the event as a duration event ending at t.
func (e *Event) SetEnd(t time.Time) {
	ts := At(t)
	e.End = &ts
}

// RawDuration is End-Start clamped to zero. Validation of inverted
// ranges belongs to the editor; the engine just degrades.
func (e *Event) RawDuration() time.Duration {
	if !e.IsDuration() {
		return 0
	}
	d := e.End.Sub(e.Start.Time)
	if d < 0 {
		return 0
	}
	return d
}

// EffectiveDuration is the duration used for layout. Day-precision
// duration events round up to whole days (start-of-day through
// end-of-day) so they render as full days, not sub-day slivers.
func (e *Event) EffectiveDuration() time.Duration {
	if !e.IsDuration() {
		return 0
	}
	raw := e.RawDuration()
	if e.Precision != PrecisionDay {
		return raw
	}
	end := e.End.Time
	if end.Before(e.Start.Time) {
		end = e.Start.Time
	}
	return StartOfDay(end).AddDate(0, 0, 1).Sub(StartOfDay(e.Start.Time))
}

// MoveTo reschedules the event to start at t, preserving its duration.
func (e *Event) MoveTo(t time.Time) {
	var d time.Duration
	if e.IsDuration() {
		d = e.End.Sub(e.Start.Time)
	}
	e.Start = At(t)
	if e.IsDuration() {
		e.SetEnd(t.Add(d))
	}
}

// EnsureID assigns a fresh ID when none has been persisted yet.
func (e *Event) EnsureID() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
}
