package options

import (
	"github.com/spf13/cobra"
)

// IDOptions controls whether record identifiers are shown in output.
type IDOptions struct {
	ShowID bool
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVar(&o.ShowID, "show-id", false,
		"Show event ids in the output.")
}
