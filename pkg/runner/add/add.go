package add

import (
	"context"

	"tableflip.dev/chrono/pkg/app"
	"tableflip.dev/chrono/pkg/commands/options"
	"tableflip.dev/chrono/pkg/event"
	"tableflip.dev/chrono/pkg/printers"
	"tableflip.dev/chrono/pkg/store"
)

type Add struct {
	Timeline string
	Title    string
	When     *options.WhenOptions
	Details  *options.DetailOptions

	Persistence store.Persistence
	Config      store.Config
}

func (n *Add) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: n.Persistence, Config: n.Config}

	if n.Timeline == "" {
		n.Timeline = svc.DefaultTimeline()
	}

	start, precision, err := n.When.Start()
	if err != nil {
		return err
	}
	e := event.New(n.Timeline, n.Title, start)
	e.Precision = precision

	if end, endPrecision, err := n.When.Until(); err != nil {
		return err
	} else if end != nil {
		e.SetEnd(*end)
		if endPrecision == event.PrecisionTime {
			e.Precision = event.PrecisionTime
		}
	}

	if d := n.Details; d != nil {
		e.People = d.People
		e.Locations = d.Locations
		e.ColorHex = d.Color
		e.Arc = d.Arc
		e.Repeat = d.Repeat
	}

	if err := svc.Add(ctx, e); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	all, err := svc.Events(ctx, n.Timeline)
	if err != nil {
		return err
	}
	pp.TitleWithCount(n.Timeline, len(all))
	pp.Timeline(all...)
	return nil
}
