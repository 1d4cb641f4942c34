// Package recur expands events carrying an RRULE into display-only
// occurrences for the visible interval. Occurrences are never
// persisted; they exist only for rendering and are regenerated on
// every viewport change.
package recur

import (
	"time"

	"github.com/teambition/rrule-go"

	"tableflip.dev/chrono/pkg/event"
)

// MaxOccurrences caps expansion per event so a dense rule over a wide
// interval cannot flood the layout.
const MaxOccurrences = 500

// idSeparator joins the parent ID and the occurrence start in derived
// occurrence IDs.
const idSeparator = "@"

// IsOccurrence reports whether an event ID names a derived occurrence
// rather than a stored event. Derived occurrences are not draggable
// and never reach the store.
func IsOccurrence(id string) bool {
	for i := 0; i < len(id); i++ {
		if id[i] == idSeparator[0] {
			return true
		}
	}
	return false
}

// ParentID returns the stored event an occurrence was derived from.
// Plain event IDs are returned unchanged.
func ParentID(id string) string {
	for i := 0; i < len(id); i++ {
		if id[i] == idSeparator[0] {
			return id[:i]
		}
	}
	return id
}

// Expand returns the given events plus the occurrences of any
// recurring ones that intersect [from, to]. The parent event itself is
// always kept; occurrences coinciding with the parent's own start are
// skipped so it is not drawn twice. Unparseable rules are ignored and
// the parent passes through as a one-off.
func Expand(events []*event.Event, from, to time.Time) []*event.Event {
	if to.Before(from) {
		return events
	}
	out := make([]*event.Event, 0, len(events))
	for _, e := range events {
		out = append(out, e)
		if e.Repeat == "" {
			continue
		}
		out = append(out, occurrences(e, from, to)...)
	}
	return out
}

// occurrences expands one recurring event within [from, to].
func occurrences(parent *event.Event, from, to time.Time) []*event.Event {
	r, err := rrule.StrToRRule(parent.Repeat)
	if err != nil {
		return nil
	}
	r.DTStart(parent.Start.Time)

	var set rrule.Set
	set.RRule(r)

	loc := parent.Start.Location()
	times := set.Between(from.In(loc), to.In(loc), true)
	if len(times) > MaxOccurrences {
		times = times[:MaxOccurrences]
	}

	dur := parent.RawDuration()
	out := make([]*event.Event, 0, len(times))
	for _, start := range times {
		if start.Equal(parent.Start.Time) {
			continue
		}
		out = append(out, derive(parent, start, dur))
	}
	return out
}

// derive clones the parent at a new start, keeping its duration, tags
// and styling. The derived ID encodes the occurrence start so the same
// occurrence keeps a stable identity across re-expansions.
func derive(parent *event.Event, start time.Time, dur time.Duration) *event.Event {
	occ := &event.Event{
		Schema:    parent.Schema,
		ID:        parent.ID + idSeparator + start.Format(time.RFC3339),
		Timeline:  parent.Timeline,
		Title:     parent.Title,
		Start:     event.At(start),
		Precision: parent.Precision,
		People:    parent.People,
		Locations: parent.Locations,
		ColorHex:  parent.ColorHex,
		Arc:       parent.Arc,
		Created:   parent.Created,
	}
	if parent.IsDuration() {
		occ.SetEnd(start.Add(dur))
	}
	return occ
}
