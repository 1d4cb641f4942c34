package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/chrono/pkg/commands/options"
	"tableflip.dev/chrono/pkg/runner/get"
	"tableflip.dev/chrono/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	to := &options.TimelineOptions{}
	io := &options.IDOptions{}
	month := false

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get the events of a timeline",
		Example: `
chrono get
chrono get --timeline Work
chrono get --all
chrono get --month
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			s := get.Get{
				ShowID:        io.ShowID,
				Persistence:   p,
				Timeline:      to.Timeline,
				ListTimelines: to.List,
				Month:         month,
			}
			if s.Timeline == "" && !to.All {
				s.Timeline = cfg.DefaultTimeline()
			}
			if to.All {
				s.Timeline = ""
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddTimelineArgs(cmd, to)
	flagName := "timeline"
	_ = cmd.RegisterFlagCompletionFunc(flagName, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return timelineCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	options.AddAllTimelinesArg(cmd, to)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVar(&month, "month", false, "Show a month activity grid instead of a listing.")

	topLevel.AddCommand(cmd)
}
