package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// NotificationType describes the nature of a persistence change.
type NotificationType int

const (
	// TimelineChanged indicates the set of events for the given
	// timeline changed (added, moved, or removed events).
	TimelineChanged NotificationType = iota

	// TimelinesInvalidated signals that the timeline catalog itself
	// changed (a timeline was added, removed, or its range rewritten)
	// and callers should refresh their full view.
	TimelinesInvalidated
)

// Notification is emitted by Persistence.Watch when storage changes.
type Notification struct {
	Type     NotificationType
	Timeline string
}

// Watch streams change notifications until ctx is cancelled. Callers
// should drain the returned channel to avoid blocking the watcher. The
// channel is closed once ctx is done or the watcher encounters an
// unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Notification, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	notifications := make(chan Notification, 64)

	go func() {
		defer close(notifications)
		defer closeWatcher()

		// Track directories we already watch so we can add new ones at
		// runtime without duplicating watches.
		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(n Notification) {
			select {
			case notifications <- n:
			default:
				// Drop notifications if the consumer is not ready; a
				// subsequent refresh will pick up the changes. This keeps
				// filesystem storms from blocking the watcher goroutine.
			}
		}

		throttle := newNotifyThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Surface watcher errors as a full refresh to keep clients
				// in sync even if we cannot classify the change precisely.
				throttle.Enqueue(Notification{Type: TimelinesInvalidated}, send)
				_ = err
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					// If a new directory appears, start watching it to
					// capture subsequent file writes.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								fmt.Fprintf(os.Stderr, "store: watch %s: %v\n", absDir, err)
							} else {
								watched[absDir] = struct{}{}
							}
						}
						// A new directory is a new timeline bucket, so
						// issue a catalog refresh.
						throttle.Enqueue(Notification{Type: TimelinesInvalidated}, send)
						continue
					}
				}

				name := p.timelineForPath(evt.Name)
				if name == "" {
					throttle.Enqueue(Notification{Type: TimelinesInvalidated}, send)
					continue
				}

				throttle.Enqueue(Notification{Type: TimelineChanged, Timeline: name}, send)
			}
		}
	}()

	return notifications, nil
}

// collectDirs walks base and returns all directories to watch.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// timelineForPath derives the logical timeline from a diskv path.
func (p *persistence) timelineForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil {
		return ""
	}
	if rel == "." {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) == 0 {
		return ""
	}
	encoded := parts[0]
	if encoded == "" || encoded == timelineIndexFile || encoded == timelineIndexFile+".tmp" {
		return ""
	}
	return fromTimeline(encoded)
}

// notifyThrottle coalesces rapid change notifications so the UI can
// redraw once per burst of filesystem activity instead of on every
// single write.
type notifyThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[NotificationType]map[string]struct{}
	delay   time.Duration
}

func newNotifyThrottle(delay time.Duration) *notifyThrottle {
	return &notifyThrottle{
		delay:   delay,
		pending: make(map[NotificationType]map[string]struct{}),
	}
}

func (t *notifyThrottle) Enqueue(n Notification, send func(Notification)) {
	t.mu.Lock()
	if t.pending[n.Type] == nil {
		t.pending[n.Type] = make(map[string]struct{})
	}
	t.pending[n.Type][n.Timeline] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *notifyThrottle) flush(send func(Notification)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[NotificationType]map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for notifyType, timelines := range pending {
		if len(timelines) == 0 {
			send(Notification{Type: notifyType})
			continue
		}

		for name := range timelines {
			send(Notification{Type: notifyType, Timeline: name})
		}
	}
}

func (t *notifyThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
