// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// TimelineOptions captures common timeline selection flags.
type TimelineOptions struct {
	Timeline string
	All      bool
	List     bool
}

// AddTimelineArgs wires timeline-related flags on the provided command.
func AddTimelineArgs(cmd *cobra.Command, o *TimelineOptions) {
	cmd.Flags().StringVarP(&o.Timeline, "timeline", "t", "",
		"Specify the timeline.")
}

// AddAllTimelinesArg registers flags that operate on all timelines.
func AddAllTimelinesArg(cmd *cobra.Command, o *TimelineOptions) {
	cmd.Flags().BoolVar(&o.All, "all", false,
		"Specify all timelines.")
	cmd.Flags().BoolVar(&o.List, "list", false,
		"List all timelines.")
}
