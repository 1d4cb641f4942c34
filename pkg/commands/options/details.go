package options

import (
	"github.com/spf13/cobra"
)

// DetailOptions captures the descriptive attributes of an event.
type DetailOptions struct {
	People    []string
	Locations []string
	Color     string
	Arc       bool
	Repeat    string
}

func AddDetailArgs(cmd *cobra.Command, o *DetailOptions) {
	cmd.Flags().StringSliceVar(&o.People, "person", nil,
		"Tag a person on the event. Repeatable.")
	cmd.Flags().StringSliceVar(&o.Locations, "location", nil,
		"Tag a location on the event. Repeatable.")
	cmd.Flags().StringVar(&o.Color, "color", "",
		"Hex color for the event card, like '#ff8800'.")
	cmd.Flags().BoolVar(&o.Arc, "arc", false,
		"Mark the event as an arc, drawn in its own side lane.")
	cmd.Flags().StringVar(&o.Repeat, "repeat", "",
		"RRULE for recurring events, like 'FREQ=WEEKLY'.")
}
