package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/chrono/pkg/event"
	"tableflip.dev/chrono/pkg/timeline"
)

// ErrNotFound is returned when an event ID has no stored record.
var ErrNotFound = errors.New("store: event not found")

// Persistence defines the persistence contract for timeline events.
type Persistence interface {
	MapAll(ctx context.Context) map[string][]*event.Event
	ListAll(ctx context.Context) []*event.Event
	List(ctx context.Context, timeline string) []*event.Event
	Timelines(ctx context.Context, prefix string) []string
	Ranges(ctx context.Context, prefix string) []timeline.Range
	Range(ctx context.Context, name string) (timeline.Range, bool)
	Store(e *event.Event) error
	Delete(e *event.Event) error
	MoveEvent(id string, start time.Time) error
	EnsureTimeline(name string) error
	SetRange(name string, start, end time.Time) error
	Watch(ctx context.Context) (<-chan Notification, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*event.Event, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &event.Event{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	if e.Schema == "" {
		e.Schema = event.CurrentSchema
	}
	pk := keyToPathTransform(key)
	e.ID = pk.FileName
	e.Timeline = fromTimeline(pk.Path[0])
	return e, nil
}

func (p *persistence) MapAll(ctx context.Context) map[string][]*event.Event {
	all := make(map[string][]*event.Event)
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		tk := fromTimeline(pk.Path[0])
		if tk == "" {
			continue
		}

		e, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all[tk] = append(all[tk], e)
	}
	for key := range all {
		sortEvents(all[key])
	}
	return all
}

func (p *persistence) ListAll(ctx context.Context) []*event.Event {
	all := make([]*event.Event, 0)
	for key := range p.d.Keys(ctx.Done()) {
		e, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, e)
	}
	sortEvents(all)
	return all
}

func (p *persistence) List(ctx context.Context, name string) []*event.Event {
	tk := toTimeline(name)
	all := make([]*event.Event, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); pk.Path[0] == tk {
			e, err := p.read(key)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
				continue
			}
			all = append(all, e)
		}
	}
	sortEvents(all)
	return all
}

// Store writes the event and silently grows the timeline's configured
// range when the event lands outside it.
func (p *persistence) Store(e *event.Event) error {
	if e.Schema == "" {
		e.Schema = event.CurrentSchema
	}
	e.EnsureID()
	key := toKey(e)
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return err
	}
	return p.admitSpan(e)
}

func (p *persistence) Delete(e *event.Event) error {
	if e.Schema == "" {
		e.Schema = event.CurrentSchema
	}
	return p.d.Erase(toKey(e))
}

// MoveEvent reschedules a stored event by ID, preserving its duration.
// The start date is part of the storage key, so a move is a rewrite.
func (p *persistence) MoveEvent(id string, start time.Time) error {
	oldKey := ""
	for key := range p.d.Keys(nil) {
		if keyToPathTransform(key).FileName == id {
			oldKey = key
			break
		}
	}
	if oldKey == "" {
		return ErrNotFound
	}
	e, err := p.read(oldKey)
	if err != nil {
		return err
	}
	e.MoveTo(start)
	newKey := toKey(e)
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := p.d.Write(newKey, data); err != nil {
		return err
	}
	if newKey != oldKey {
		if err := p.d.Erase(oldKey); err != nil {
			return err
		}
	}
	return p.admitSpan(e)
}

func (p *persistence) Timelines(ctx context.Context, prefix string) []string {
	ranges := p.Ranges(ctx, prefix)
	names := make([]string, len(ranges))
	for i, r := range ranges {
		names[i] = r.Name
	}
	return names
}

// Ranges merges the sidecar index with timelines discovered from
// stored events; events can exist before a range is configured.
func (p *persistence) Ranges(ctx context.Context, prefix string) []timeline.Range {
	all := make(map[string]timeline.Range)
	if idx, err := p.loadTimelineIndex(); err == nil {
		for name, r := range idx {
			all[name] = r
		}
	} else {
		fmt.Fprintf(os.Stderr, "store: load timeline index: %v\n", err)
	}

	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		tk := fromTimeline(pk.Path[0])
		if tk == "" {
			// Sidecar files at the store root are not timelines.
			continue
		}
		if _, ok := all[tk]; !ok {
			all[tk] = timeline.Range{Name: tk}
		}
	}

	list := make([]timeline.Range, 0, len(all))
	for name, r := range all {
		if prefix == "" || strings.HasPrefix(name, prefix) {
			if r.Name == "" {
				r.Name = name
			}
			list = append(list, r)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func (p *persistence) Range(ctx context.Context, name string) (timeline.Range, bool) {
	for _, r := range p.Ranges(ctx, "") {
		if r.Name == name {
			return r, true
		}
	}
	return timeline.Range{}, false
}

func (p *persistence) EnsureTimeline(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("store: timeline name required")
	}
	if p.basePath == "" {
		return errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(p.basePath, toTimeline(name)), 0o755); err != nil {
		return fmt.Errorf("store: ensure timeline directory: %w", err)
	}
	index, err := p.loadTimelineIndex()
	if err != nil {
		return fmt.Errorf("store: load timeline index: %w", err)
	}
	r := index[name]
	if r.Name == "" {
		r.Name = name
	}
	index[name] = r
	if err := p.saveTimelineIndex(index); err != nil {
		return fmt.Errorf("store: save timeline index: %w", err)
	}
	return nil
}

// SetRange configures the addressable span of a timeline.
func (p *persistence) SetRange(name string, start, end time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("store: timeline name required")
	}
	if !end.After(start) {
		return errors.New("store: range end must be after start")
	}
	index, err := p.loadTimelineIndex()
	if err != nil {
		return fmt.Errorf("store: load timeline index: %w", err)
	}
	index[name] = timeline.Range{Name: name, Start: start, End: end, Configured: true}
	if err := p.saveTimelineIndex(index); err != nil {
		return fmt.Errorf("store: save timeline index: %w", err)
	}
	return nil
}

// admitSpan widens the configured range when an event falls outside
// it, so out-of-range events stay addressable instead of being
// rejected or clipped.
func (p *persistence) admitSpan(e *event.Event) error {
	index, err := p.loadTimelineIndex()
	if err != nil {
		return fmt.Errorf("store: load timeline index: %w", err)
	}
	r, ok := index[e.Timeline]
	if !ok || !r.Valid() {
		return nil
	}
	end := e.Start.Time
	if e.IsDuration() {
		end = e.End.Time
	}
	if !r.EnsureSpan(e.Start.Time, end) {
		return nil
	}
	index[e.Timeline] = r
	return p.saveTimelineIndex(index)
}

const (
	layoutISO         = "2006-01-02"
	timelineIndexFile = ".timelines.json"
)

func (p *persistence) timelineIndexPath() string {
	return filepath.Join(p.basePath, timelineIndexFile)
}

func (p *persistence) loadTimelineIndex() (map[string]timeline.Range, error) {
	if p.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.timelineIndexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]timeline.Range), nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return make(map[string]timeline.Range), nil
	}
	list, err := timeline.UnmarshalList(data)
	if err != nil {
		return nil, err
	}
	index := make(map[string]timeline.Range, len(list))
	for _, r := range list {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		r.Name = name
		index[name] = r
	}
	return index, nil
}

func (p *persistence) saveTimelineIndex(idx map[string]timeline.Range) error {
	if p.basePath == "" {
		return errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return err
	}
	list := make([]timeline.Range, 0, len(idx))
	for name, r := range idx {
		if r.Name == "" {
			r.Name = name
		}
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	data, err := timeline.MarshalList(list)
	if err != nil {
		return err
	}
	path := p.timelineIndexPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func sortEvents(events []*event.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		left := events[i]
		right := events[j]
		if left == nil || right == nil {
			return left != nil
		}
		lt := left.Start.Time
		rt := right.Start.Time
		if lt.Equal(rt) {
			return left.ID < right.ID
		}
		return lt.Before(rt)
	})
}

// Keys look like `timelineB64-2006-01-02-id`. The first four dash
// separated parts form the path; the remainder is the ID, which may
// itself contain dashes.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, "-", 5)
	if len(parts) < 5 {
		return &diskv.PathKey{
			Path:     parts[:len(parts)-1],
			FileName: parts[len(parts)-1],
		}
	}
	return &diskv.PathKey{
		Path:     parts[:4],
		FileName: parts[4],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `timeline-date-id`, keyed by the event's start date.
func toKey(e *event.Event) string {
	e.EnsureID()
	return fmt.Sprintf("%s-%s-%s", toTimeline(e.Timeline), e.Start.Format(layoutISO), e.ID)
}

func toTimeline(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func fromTimeline(s string) string {
	name, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromTimeline: %s", err)
	}
	return string(name)
}
