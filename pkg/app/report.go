package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/chrono/pkg/event"
)

// ReportSection groups the events of one timeline that fall inside a
// report window.
type ReportSection struct {
	Timeline string
	Events   []*event.Event
}

// ReportResult is a review of everything that happened in a window,
// across all timelines.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Total    int
}

// Report returns events intersecting [since, until] grouped by
// timeline. Duration events count when any part of their span falls
// inside the window.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if s.Persistence == nil {
		return ReportResult{}, errNoPersistence
	}
	if since.After(until) {
		since, until = until, since
	}

	grouped := make(map[string][]*event.Event)
	total := 0
	for name, events := range s.Persistence.MapAll(ctx) {
		for _, e := range events {
			if e == nil || !intersects(e, since, until) {
				continue
			}
			grouped[name] = append(grouped[name], e)
			total++
		}
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	sections := make([]ReportSection, 0, len(names))
	for _, name := range names {
		sections = append(sections, ReportSection{Timeline: name, Events: grouped[name]})
	}

	return ReportResult{
		Since:    since,
		Until:    until,
		Sections: sections,
		Total:    total,
	}, nil
}

func intersects(e *event.Event, since, until time.Time) bool {
	end := e.Start.Time
	if e.IsDuration() {
		end = e.End.Time
	}
	return !end.Before(since) && !e.Start.After(until)
}
