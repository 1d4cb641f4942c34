package commands

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/chrono/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(chrono completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(chrono completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func timelineCompletions(toComplete string) []string {
	p, err := store.Load(nil)
	if err != nil {
		return nil
	}
	ts := p.Timelines(context.Background(), toComplete)
	for i := range ts {
		ts[i] = strconv.Quote(ts[i])
	}
	return ts
}
