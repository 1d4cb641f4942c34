package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"tableflip.dev/chrono/pkg/event"
	"tableflip.dev/chrono/pkg/recur"
	"tableflip.dev/chrono/pkg/store"
	"tableflip.dev/chrono/pkg/timeline"
)

// Service provides high-level operations for events and timelines. It
// wraps persistence so UIs and CLIs can share logic.
type Service struct {
	Persistence store.Persistence
	Config      store.Config

	mu    sync.Mutex
	views map[string]View
}

// ErrEntitlement is returned when creating a timeline would exceed the
// configured timeline cap.
var ErrEntitlement = errors.New("app: timeline limit reached")

// ErrNotFound is returned when an event ID has no stored record.
var ErrNotFound = errors.New("app: event not found")

var errNoPersistence = errors.New("app: no persistence configured")

// View is the remembered viewport of a timeline, restored when the
// user returns to it within a session.
type View struct {
	Zoom   float64
	Center time.Time
}

// Timelines returns all timeline ranges sorted by name.
func (s *Service) Timelines(ctx context.Context) ([]timeline.Range, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Ranges(ctx, ""), nil
}

// Timeline returns the named timeline's range.
func (s *Service) Timeline(ctx context.Context, name string) (timeline.Range, bool, error) {
	if s.Persistence == nil {
		return timeline.Range{}, false, errNoPersistence
	}
	r, ok := s.Persistence.Range(ctx, name)
	return r, ok, nil
}

// CreateTimeline registers a new timeline, enforcing the entitlement
// cap on the total number of timelines.
func (s *Service) CreateTimeline(ctx context.Context, name string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("app: timeline name required")
	}
	existing := s.Persistence.Timelines(ctx, "")
	for _, have := range existing {
		if have == name {
			return nil
		}
	}
	// A cap of zero means unlimited.
	if s.Config != nil {
		if max := s.Config.MaxTimelines(); max > 0 && len(existing) >= max {
			return ErrEntitlement
		}
	}
	return s.Persistence.EnsureTimeline(name)
}

// SetRange configures the addressable span of a timeline.
func (s *Service) SetRange(ctx context.Context, name string, start, end time.Time) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	if err := s.CreateTimeline(ctx, name); err != nil {
		return err
	}
	return s.Persistence.SetRange(name, start, end)
}

// Events lists the stored events of a timeline.
func (s *Service) Events(ctx context.Context, name string) ([]*event.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.List(ctx, name), nil
}

// Visible lists a timeline's events for rendering within [from, to]:
// stored events plus the expanded occurrences of recurring ones.
func (s *Service) Visible(ctx context.Context, name string, from, to time.Time) ([]*event.Event, error) {
	events, err := s.Events(ctx, name)
	if err != nil {
		return nil, err
	}
	return recur.Expand(events, from, to), nil
}

// Add stores a new event, creating its timeline if needed.
func (s *Service) Add(ctx context.Context, e *event.Event) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	if e == nil {
		return errors.New("app: event required")
	}
	if err := s.CreateTimeline(ctx, e.Timeline); err != nil {
		return err
	}
	return s.Persistence.Store(e)
}

// Move reschedules an event by ID, preserving its duration. Derived
// occurrence IDs resolve to their parent event.
func (s *Service) Move(ctx context.Context, id string, start time.Time) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	err := s.Persistence.MoveEvent(recur.ParentID(id), start)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// MoveEvent lets the Service back the undo/redo stack directly.
func (s *Service) MoveEvent(id string, start time.Time) error {
	return s.Move(context.Background(), id, start)
}

// Delete removes an event permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	for _, e := range s.Persistence.ListAll(ctx) {
		if e.ID == id {
			return s.Persistence.Delete(e)
		}
	}
	return ErrNotFound
}

// Watch subscribes to persistence change notifications.
func (s *Service) Watch(ctx context.Context) (<-chan store.Notification, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// DefaultTimeline is the timeline opened when none is named.
func (s *Service) DefaultTimeline() string {
	if s.Config == nil {
		return "Journal"
	}
	return s.Config.DefaultTimeline()
}

// RememberView stores the viewport of a timeline for this session.
func (s *Service) RememberView(name string, v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.views == nil {
		s.views = make(map[string]View)
	}
	s.views[name] = v
}

// LastView returns the remembered viewport of a timeline, if any.
func (s *Service) LastView(name string) (View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.views[name]
	return v, ok
}

// SortedNames returns timeline names in display order.
func SortedNames(ranges []timeline.Range) []string {
	names := make([]string, len(ranges))
	for i, r := range ranges {
		names[i] = r.Name
	}
	sort.Strings(names)
	return names
}
