// Package ui boots the interactive timeline view.
package ui

import (
	"context"

	"tableflip.dev/chrono/pkg/store"
	"tableflip.dev/chrono/pkg/tui"
)

type UI struct {
	Persistence store.Persistence
	Config      store.Config

	// Timeline opens the view on a specific timeline; empty opens the
	// configured default.
	Timeline string
}

func (u *UI) Do(ctx context.Context) error {
	return tui.Run(ctx, tui.Options{
		Persistence: u.Persistence,
		Config:      u.Config,
		Timeline:    u.Timeline,
	})
}
