package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Axis   AxisTheme
	Card   CardTheme
	Footer FooterTheme
}

// AxisTheme styles the tick row under the timeline.
type AxisTheme struct {
	Line  lipgloss.Style
	Label lipgloss.Style
	Major lipgloss.Style
}

// CardTheme styles event cards in their lanes.
type CardTheme struct {
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Dragging lipgloss.Style
	Arc      lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Title  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Axis: AxisTheme{
			Line:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Label: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Major: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		},
		Card: CardTheme{
			Normal: lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")),
			Selected: lipgloss.NewStyle().
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Bold(true),
			Dragging: lipgloss.NewStyle().
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("168")).
				Bold(true),
			Arc: lipgloss.NewStyle().
				Foreground(lipgloss.Color("108")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Title:  lipgloss.NewStyle().Bold(true),
		},
	}
}
