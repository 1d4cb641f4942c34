package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/chrono/pkg/tui/theme"
)

const normalHelp = "h/l scroll · +/- zoom · j/k select · g grab · t today · u undo · r redo · q quit"
const dragHelp = "←/→ move · enter drop · esc put back"

// bottombar renders the status line under the pane.
type bottombar struct {
	theme theme.Theme
}

func (b bottombar) view(timeline string, center time.Time, zoom float64, dragging bool, status string, width int) string {
	help := normalHelp
	if dragging {
		help = dragHelp
	}

	left := b.theme.Footer.Title.Render(timeline) +
		b.theme.Footer.Status.Render(fmt.Sprintf("  %s  ×%.2g", center.Local().Format("Mon Jan 2 2006"), zoom))
	if status != "" {
		left += b.theme.Footer.Status.Render("  " + status)
	}

	line := left + "\n" + b.theme.Footer.Help.Render(help)
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}
