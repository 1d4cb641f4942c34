package get

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/chrono/pkg/printers"
	"tableflip.dev/chrono/pkg/store"
)

type Get struct {
	ShowID        bool
	Timeline      string
	ListTimelines bool
	Month         bool

	Persistence store.Persistence
}

func (n *Get) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get, no persistence")
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")

	if n.ListTimelines {
		pp.Ranges(n.Persistence.Ranges(ctx, "")...)
		return nil
	}

	if n.Timeline != "" {
		all := n.Persistence.List(ctx, n.Timeline)
		if n.Month {
			pp.Title(n.Timeline)
			pp.Density(time.Now(), all...)
			return nil
		}
		pp.TitleWithCount(n.Timeline, len(all))
		pp.Timeline(all...)
		return nil
	}

	for name, all := range n.Persistence.MapAll(ctx) {
		if n.Month {
			pp.Title(name)
			pp.Density(time.Now(), all...)
			continue
		}
		pp.TitleWithCount(name, len(all))
		pp.Timeline(all...)
	}

	return nil
}
