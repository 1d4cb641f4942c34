// Package timeline defines the persisted time range a journal renders.
package timeline

import (
	"encoding/json"
	"time"
)

// Range is the addressable span of a timeline's axis.
type Range struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	// Configured is false until the user has set the range; an
	// unconfigured timeline renders nothing.
	Configured bool `json:"configured"`
}

// Valid reports whether the range is usable (End strictly after Start).
func (r Range) Valid() bool {
	return r.Configured && r.End.After(r.Start)
}

// Duration is the total span of the range.
func (r Range) Duration() time.Duration {
	if r.End.Before(r.Start) {
		return 0
	}
	return r.End.Sub(r.Start)
}

// Contains reports whether the instant falls inside the range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// expansionBuffer is the margin added when the range grows to admit an
// out-of-bounds event: 5% of the current span, at least one day.
func (r Range) expansionBuffer() time.Duration {
	buffer := r.Duration() / 20
	if buffer < 24*time.Hour {
		buffer = 24 * time.Hour
	}
	return buffer
}

// EnsureSpan grows the range so [start, end] fits, with a buffer, and
// reports whether it changed. Used by unconstrained editing modes that
// accept events outside the configured range rather than rejecting them.
func (r *Range) EnsureSpan(start, end time.Time) bool {
	if end.Before(start) {
		end = start
	}
	changed := false
	if start.Before(r.Start) {
		r.Start = start.Add(-r.expansionBuffer())
		changed = true
	}
	if end.After(r.End) {
		r.End = end.Add(r.expansionBuffer())
		changed = true
	}
	return changed
}

// MarshalList encodes timeline ranges for the sidecar index.
func MarshalList(list []Range) ([]byte, error) {
	return json.MarshalIndent(list, "", "  ")
}

// UnmarshalList decodes the sidecar index.
func UnmarshalList(data []byte) ([]Range, error) {
	var list []Range
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}
