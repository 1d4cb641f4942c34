package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/chrono/pkg/app"
	"tableflip.dev/chrono/pkg/printers"
	"tableflip.dev/chrono/pkg/store"
	"tableflip.dev/chrono/pkg/timeline"
)

func addTimelines(topLevel *cobra.Command) {
	pick := false

	cmd := &cobra.Command{
		Use:   "timelines",
		Short: "Manage timelines and their ranges",
		Example: `
chrono timelines
chrono timelines --pick
chrono timelines new Work
chrono timelines use Work
chrono timelines range Work 2026-01-01 2026-12-31
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			ranges, err := svc.Timelines(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			if pick {
				return output.HandleError(pickTimeline(cmd.Context(), svc, ranges))
			}
			pp := printers.PrettyPrint{}
			pp.Ranges(ranges...)
			return nil
		},
	}
	cmd.Flags().BoolVar(&pick, "pick", false, "Pick a timeline interactively and show its events.")

	cmd.AddCommand(newTimelineNewCmd())
	cmd.AddCommand(newTimelineUseCmd())
	cmd.AddCommand(newTimelineRangeCmd())
	topLevel.AddCommand(cmd)
}

func newTimelineNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create a timeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			if err := svc.CreateTimeline(cmd.Context(), name); err != nil {
				if errors.Is(err, app.ErrEntitlement) {
					return fmt.Errorf("cannot create %q: %w", name, err)
				}
				return output.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Title(name)
			return nil
		},
	}
}

func newTimelineUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use [name]",
		Short: "Set the timeline commands open by default",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			name := strings.Join(args, " ")
			if name == "" {
				svc, err := service()
				if err != nil {
					return err
				}
				ranges, err := svc.Timelines(cmd.Context())
				if err != nil {
					return output.HandleError(err)
				}
				i, err := selectTimeline(ranges)
				if err != nil {
					return err
				}
				name = ranges[i].Name
			}
			if err := store.SaveDefaultTimeline(name); err != nil {
				return output.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Title(name)
			return nil
		},
	}
}

func newTimelineRangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "range <name> <start> <end>",
		Short: "Set the addressable span of a timeline",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			start, err := time.ParseInLocation("2006-01-02", args[1], time.Local)
			if err != nil {
				return fmt.Errorf("cannot parse start %q: %w", args[1], err)
			}
			end, err := time.ParseInLocation("2006-01-02", args[2], time.Local)
			if err != nil {
				return fmt.Errorf("cannot parse end %q: %w", args[2], err)
			}
			svc, err := service()
			if err != nil {
				return err
			}
			return output.HandleError(svc.SetRange(cmd.Context(), args[0], start, end))
		},
	}
}

// pickTimeline runs an interactive selector over the known timelines
// and prints the chosen one's events.
func pickTimeline(ctx context.Context, svc *app.Service, ranges []timeline.Range) error {
	i, err := selectTimeline(ranges)
	if err != nil {
		return err
	}

	events, err := svc.Events(ctx, ranges[i].Name)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.TitleWithCount(ranges[i].Name, len(events))
	pp.Timeline(events...)
	return nil
}

func selectTimeline(ranges []timeline.Range) (int, error) {
	if len(ranges) == 0 {
		return 0, errors.New("no timelines yet, try: chrono add")
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name | bold }}",
		Inactive: "   {{ .Name }}",
		Selected: "{{ .Name | bold }}",
	}

	searcher := func(input string, index int) bool {
		name := strings.Replace(strings.ToLower(ranges[index].Name), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Timelines",
		Items:     ranges,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	return i, err
}

// service assembles the app facade the way every command needs it.
func service() (*app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	return &app.Service{Persistence: p, Config: cfg}, nil
}
