package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/chrono/pkg/commands/options"
	"tableflip.dev/chrono/pkg/runner/ui"
	"tableflip.dev/chrono/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	to := &options.TimelineOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive timeline view",
		Example: `
chrono ui
chrono ui --timeline Work
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			i := ui.UI{Persistence: p, Config: cfg, Timeline: to.Timeline}
			return i.Do(context.Background())
		},
	}

	options.AddTimelineArgs(cmd, to)

	topLevel.AddCommand(cmd)
}
