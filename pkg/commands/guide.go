package commands

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed guide.md
var guideMarkdown string

func addGuide(topLevel *cobra.Command) {
	width := 80

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "A short guide to timeline journaling",
		Example: `
chrono guide
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderer, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle("dark"),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return err
			}
			out, err := renderer.Render(guideMarkdown)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 80, "Wrap the guide at this column.")

	topLevel.AddCommand(cmd)
}
