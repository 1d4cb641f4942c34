package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/chrono/pkg/commands/options"
	"tableflip.dev/chrono/pkg/runner/add"
	"tableflip.dev/chrono/pkg/store"
)

func addAdd(topLevel *cobra.Command) {
	title := ""
	to := &options.TimelineOptions{}
	wo := &options.WhenOptions{}
	do := &options.DetailOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event to a timeline",
		Example: `
chrono add lunch with sam --on="2026-08-21 12:30"
chrono add summer trip --on=2026-07-01 --end=2026-07-14 --location=lisbon
chrono add standup --on="2026-08-24 09:30" --repeat=FREQ=WEEKLY
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires an event title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}

			s := add.Add{
				Persistence: p,
				Config:      cfg,
				Timeline:    to.Timeline,
				Title:       title,
				When:        wo,
				Details:     do,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddTimelineArgs(cmd, to)
	options.AddWhenArgs(cmd, wo)
	options.AddDetailArgs(cmd, do)
	options.AddOutputArg(cmd, output)

	flagName := "timeline"
	_ = cmd.RegisterFlagCompletionFunc(flagName, func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return timelineCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
