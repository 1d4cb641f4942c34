package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/chrono/pkg/app"
	"tableflip.dev/chrono/pkg/store"
	"tableflip.dev/chrono/pkg/timeline"
)

// Options configures the interactive view.
type Options struct {
	Persistence store.Persistence
	Config      store.Config

	// Timeline opens on a specific timeline; empty opens the configured
	// default.
	Timeline string
}

// Run opens the timeline UI and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Persistence == nil {
		return fmt.Errorf("can not open the timeline view, no persistence")
	}

	svc := &app.Service{Persistence: opts.Persistence, Config: opts.Config}

	name := opts.Timeline
	if name == "" {
		name = svc.DefaultTimeline()
	}

	rng, ok, err := svc.Timeline(ctx, name)
	if err != nil {
		return err
	}
	if !ok || !rng.Configured {
		rng, err = deriveRange(ctx, svc, name)
		if err != nil {
			return err
		}
	}

	watchCh, err := svc.Watch(ctx)
	if err != nil {
		return err
	}

	m := New(svc, name, rng, watchCh)
	defer m.ctrl.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// deriveRange builds a working range for a timeline with none
// configured: the span of its events with breathing room, or six
// months either side of today when it is empty.
func deriveRange(ctx context.Context, svc *app.Service, name string) (timeline.Range, error) {
	events, err := svc.Events(ctx, name)
	if err != nil {
		return timeline.Range{}, err
	}

	now := time.Now()
	rng := timeline.Range{
		Name:  name,
		Start: now.AddDate(0, -6, 0),
		End:   now.AddDate(0, 6, 0),
	}
	for _, e := range events {
		rng.EnsureSpan(e.Start.Time, e.Start.Add(e.EffectiveDuration()))
	}
	return rng, nil
}
