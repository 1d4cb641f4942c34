package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/chrono/pkg/event"
	"tableflip.dev/chrono/pkg/glyph"
	"tableflip.dev/chrono/pkg/timeline"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" event")
	default:
		_, _ = c.Println(" events")
	}
}

// Timeline prints a timeline's events, one row per event, with the
// marker glyph, when it happens, the title, and any tags.
func (pp *PrettyPrint) Timeline(events ...*event.Event) {
	if len(events) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = " "
	for _, e := range events {
		marker := glyph.For(e.IsDuration(), e.Arc, e.Repeat != "")
		sig := glyph.Day
		if e.Precision == event.PrecisionTime {
			sig = glyph.Clock
		}
		row := []interface{}{sig.String(), marker.String(), e.When(), e.Title, e.Tags()}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Ranges prints the timeline catalog with each configured span.
func (pp *PrettyPrint) Ranges(ranges ...timeline.Range) {
	if len(ranges) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Bold("Timeline"), glyph.Bold("From"), glyph.Bold("To"))
	for _, r := range ranges {
		if !r.Configured {
			tbl.AddRow(r.Name, "-", "-")
			continue
		}
		tbl.AddRow(r.Name, r.Start.Local().Format("2006-01-02"), r.End.Local().Format("2006-01-02"))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}
