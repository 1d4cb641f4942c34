package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/chrono/pkg/printers"
	"tableflip.dev/chrono/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	since := ""
	until := ""
	window := ""

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Review what happened in a window, across all timelines",
		Example: `
chrono report
chrono report --window 2w
chrono report --since 2026-08-01 --until 2026-08-31
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}

			to := time.Now()
			span, _, err := timeutil.ParseWindow(window)
			if err != nil {
				return fmt.Errorf("cannot parse --window %q: %w", window, err)
			}
			from := to.Add(-span)
			if since != "" {
				if from, err = time.ParseInLocation("2006-01-02", since, time.Local); err != nil {
					return fmt.Errorf("cannot parse --since %q: %w", since, err)
				}
			}
			if until != "" {
				if to, err = time.ParseInLocation("2006-01-02", until, time.Local); err != nil {
					return fmt.Errorf("cannot parse --until %q: %w", until, err)
				}
				to = to.AddDate(0, 0, 1) // inclusive end day
			}

			result, err := svc.Report(cmd.Context(), from, to)
			if err != nil {
				return output.HandleError(err)
			}

			pp := printers.PrettyPrint{}
			pp.TitleWithCount(
				fmt.Sprintf("%s → %s", result.Since.Format("2006-01-02"), result.Until.Format("2006-01-02")),
				result.Total)
			for _, section := range result.Sections {
				pp.Title(section.Timeline)
				pp.Timeline(section.Events...)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Window start, '2006-01-02'. Overrides --window.")
	cmd.Flags().StringVar(&until, "until", "", "Window end, '2006-01-02'. Defaults to now.")
	cmd.Flags().StringVar(&window, "window", "", "How far back to look, like '3d' or '1w2d'. Defaults to 1w.")

	topLevel.AddCommand(cmd)
}
