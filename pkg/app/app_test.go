package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"tableflip.dev/chrono/pkg/event"
	"tableflip.dev/chrono/pkg/store"
	"tableflip.dev/chrono/pkg/timeline"
)

type memoryPersistence struct {
	mu        sync.Mutex
	counter   int
	timelines map[string]map[string]*event.Event
	ranges    map[string]timeline.Range
}

func newMemoryPersistence(events ...*event.Event) *memoryPersistence {
	mp := &memoryPersistence{
		timelines: make(map[string]map[string]*event.Event),
		ranges:    make(map[string]timeline.Range),
	}
	for _, e := range events {
		if e == nil {
			continue
		}
		_ = mp.Store(e)
	}
	return mp
}

func (m *memoryPersistence) newID() string {
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

func (m *memoryPersistence) MapAll(_ context.Context) map[string][]*event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]*event.Event, len(m.timelines))
	for name, items := range m.timelines {
		for _, e := range items {
			out[name] = append(out[name], e)
		}
	}
	return out
}

func (m *memoryPersistence) ListAll(_ context.Context) []*event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*event.Event
	for _, items := range m.timelines {
		for _, e := range items {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryPersistence) List(_ context.Context, name string) []*event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*event.Event
	for _, e := range m.timelines[name] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start.Time) })
	return out
}

func (m *memoryPersistence) Timelines(_ context.Context, prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]struct{})
	for name := range m.timelines {
		seen[name] = struct{}{}
	}
	for name := range m.ranges {
		seen[name] = struct{}{}
	}
	var out []string
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (m *memoryPersistence) Ranges(ctx context.Context, prefix string) []timeline.Range {
	var out []timeline.Range
	for _, name := range m.Timelines(ctx, prefix) {
		m.mu.Lock()
		r, ok := m.ranges[name]
		m.mu.Unlock()
		if !ok {
			r = timeline.Range{Name: name}
		}
		out = append(out, r)
	}
	return out
}

func (m *memoryPersistence) Range(_ context.Context, name string) (timeline.Range, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.ranges[name]
	return r, ok
}

func (m *memoryPersistence) Store(e *event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = m.newID()
	}
	if m.timelines[e.Timeline] == nil {
		m.timelines[e.Timeline] = make(map[string]*event.Event)
	}
	m.timelines[e.Timeline][e.ID] = e
	return nil
}

func (m *memoryPersistence) Delete(e *event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.timelines[e.Timeline], e.ID)
	return nil
}

func (m *memoryPersistence) MoveEvent(id string, start time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, items := range m.timelines {
		if e, ok := items[id]; ok {
			e.MoveTo(start)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memoryPersistence) EnsureTimeline(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timelines[name] == nil {
		m.timelines[name] = make(map[string]*event.Event)
	}
	if _, ok := m.ranges[name]; !ok {
		m.ranges[name] = timeline.Range{Name: name}
	}
	return nil
}

func (m *memoryPersistence) SetRange(name string, start, end time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ranges[name] = timeline.Range{Name: name, Start: start, End: end, Configured: true}
	return nil
}

func (m *memoryPersistence) Watch(_ context.Context) (<-chan store.Notification, error) {
	ch := make(chan store.Notification)
	close(ch)
	return ch, nil
}

type cappedConfig struct {
	max int
}

func (c cappedConfig) BasePath() string        { return "" }
func (c cappedConfig) MaxTimelines() int       { return c.max }
func (c cappedConfig) DefaultTimeline() string { return "Journal" }

var appDay = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestAddCreatesTimeline(t *testing.T) {
	mp := newMemoryPersistence()
	s := &Service{Persistence: mp, Config: cappedConfig{max: 10}}
	ctx := context.Background()

	e := event.New("Journal", "kickoff", appDay)
	if err := s.Add(ctx, e); err != nil {
		t.Fatalf("add: %v", err)
	}
	events, err := s.Events(ctx, "Journal")
	if err != nil || len(events) != 1 {
		t.Fatalf("events = %v, %v", events, err)
	}
	names, err := s.Timelines(ctx)
	if err != nil || len(names) != 1 {
		t.Fatalf("timelines = %v, %v", names, err)
	}
}

func TestEntitlementCapsTimelines(t *testing.T) {
	mp := newMemoryPersistence()
	s := &Service{Persistence: mp, Config: cappedConfig{max: 2}}
	ctx := context.Background()

	for _, name := range []string{"One", "Two"} {
		if err := s.CreateTimeline(ctx, name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	if err := s.CreateTimeline(ctx, "Three"); !errors.Is(err, ErrEntitlement) {
		t.Fatalf("err = %v, want ErrEntitlement", err)
	}
	// Re-creating an existing timeline is not gated.
	if err := s.CreateTimeline(ctx, "Two"); err != nil {
		t.Fatalf("recreate: %v", err)
	}
}

func TestZeroCapIsUnlimited(t *testing.T) {
	mp := newMemoryPersistence()
	s := &Service{Persistence: mp, Config: cappedConfig{max: 0}}
	ctx := context.Background()

	for _, name := range []string{"One", "Two", "Three", "Four", "Five"} {
		if err := s.CreateTimeline(ctx, name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
}

func TestMoveResolvesOccurrenceIDs(t *testing.T) {
	mp := newMemoryPersistence()
	s := &Service{Persistence: mp, Config: cappedConfig{max: 10}}
	ctx := context.Background()

	e := event.New("Journal", "standup", appDay)
	if err := s.Add(ctx, e); err != nil {
		t.Fatalf("add: %v", err)
	}

	occID := e.ID + "@" + appDay.AddDate(0, 0, 7).Format(time.RFC3339)
	moved := appDay.AddDate(0, 0, 2)
	if err := s.Move(ctx, occID, moved); err != nil {
		t.Fatalf("move: %v", err)
	}
	if !e.Start.Equal(moved) {
		t.Fatalf("parent start = %v, want %v", e.Start, moved)
	}

	if err := s.Move(ctx, "missing", moved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestVisibleExpandsRecurringEvents(t *testing.T) {
	e := event.New("Journal", "standup", appDay)
	e.Repeat = "FREQ=WEEKLY"
	mp := newMemoryPersistence(e)
	s := &Service{Persistence: mp}

	got, err := s.Visible(context.Background(), "Journal", appDay, appDay.AddDate(0, 0, 14))
	if err != nil {
		t.Fatalf("visible: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("visible = %d events, want parent+2", len(got))
	}
}

func TestDelete(t *testing.T) {
	e := event.New("Journal", "oops", appDay)
	mp := newMemoryPersistence(e)
	s := &Service{Persistence: mp}
	ctx := context.Background()

	if err := s.Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestReportGroupsByTimeline(t *testing.T) {
	early := event.New("Work", "planning", appDay)
	span := event.New("Journal", "trip", appDay.AddDate(0, 0, 5))
	span.SetEnd(appDay.AddDate(0, 0, 12))
	late := event.New("Journal", "later", appDay.AddDate(0, 1, 0))
	mp := newMemoryPersistence(early, span, late)
	s := &Service{Persistence: mp}

	// The window starts after the trip begins but still overlaps it.
	got, err := s.Report(context.Background(), appDay.AddDate(0, 0, 7), appDay.AddDate(0, 0, 20))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if got.Total != 1 {
		t.Fatalf("total = %d, want 1", got.Total)
	}
	if len(got.Sections) != 1 || got.Sections[0].Timeline != "Journal" {
		t.Fatalf("sections = %+v", got.Sections)
	}
	if got.Sections[0].Events[0].Title != "trip" {
		t.Fatalf("event = %q", got.Sections[0].Events[0].Title)
	}
}

func TestViewMemory(t *testing.T) {
	s := &Service{}
	if _, ok := s.LastView("Journal"); ok {
		t.Fatalf("unexpected remembered view")
	}
	v := View{Zoom: 4, Center: appDay}
	s.RememberView("Journal", v)
	got, ok := s.LastView("Journal")
	if !ok || got.Zoom != 4 || !got.Center.Equal(appDay) {
		t.Fatalf("view = %+v, %v", got, ok)
	}
}
