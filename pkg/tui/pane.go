package tui

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/chrono/pkg/axis"
	"tableflip.dev/chrono/pkg/event"
	"tableflip.dev/chrono/pkg/glyph"
	"tableflip.dev/chrono/pkg/layout"
	"tableflip.dev/chrono/pkg/tui/theme"
)

// PxPerCell is how many axis points one terminal column covers. The
// layout engine thinks in points; the pane divides by this to land on
// character cells.
const PxPerCell = 10.0

// pane renders the lane-packed event cards and the tick row.
type pane struct {
	theme theme.Theme

	width int // columns
	lanes int // card rows available
}

func newPane(t theme.Theme) pane {
	return pane{theme: t}
}

func (p *pane) setSize(width, lanes int) {
	p.width = width
	p.lanes = lanes
}

// segment is a styled run of text placed at a column of a row.
type segment struct {
	col   int
	text  string
	style lipgloss.Style
}

// renderRow stitches non-overlapping segments into a width-wide row.
// Overlapping segments lose their tail to the next one.
func renderRow(width int, segs []segment) string {
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].col < segs[j].col })

	var b strings.Builder
	cursor := 0
	for i, s := range segs {
		if s.col >= width {
			break
		}
		start := s.col
		if start < cursor {
			continue
		}
		limit := width - start
		if i+1 < len(segs) && segs[i+1].col > start && segs[i+1].col-start < limit {
			limit = segs[i+1].col - start
		}
		text := truncate.String(s.text, uint(limit))
		n := len([]rune(text))
		if n == 0 {
			continue
		}
		b.WriteString(strings.Repeat(" ", start-cursor))
		b.WriteString(s.style.Render(text))
		cursor = start + n
	}
	if cursor < width {
		b.WriteString(strings.Repeat(" ", width-cursor))
	}
	return b.String()
}

// view renders the timeline: an arc row when arcs exist, the lane
// rows, then the axis tick and label rows.
func (p *pane) view(events []*event.Event, eng layout.Engine, zoom, scroll float64, selectedID, draggingID string) string {
	if p.width <= 0 || p.lanes <= 0 {
		return ""
	}

	// Time runs across the screen here, but the card length floor is
	// Stacked's 44 points (~4 columns): Inline's 180-point minimum is
	// sized for pointer targets and would swallow half a narrow
	// terminal per card. cellSpan keeps its own one-column floor.
	rects := eng.Layout(layout.Input{
		Events:      events,
		Zoom:        zoom,
		CrossExtent: float64(p.lanes) * axis.MinPointSize,
		Orientation: axis.Stacked,
		PinnedID:    draggingID,
	})

	byID := make(map[string]*event.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	hasArcs := false
	for _, r := range rects {
		if r.Arc {
			hasArcs = true
			break
		}
	}

	var rows []string
	if hasArcs {
		rows = append(rows, p.arcRow(rects, byID, scroll))
	}
	rows = append(rows, p.laneRows(rects, byID, scroll, selectedID, draggingID)...)
	rows = append(rows, p.tickRows(eng, zoom, scroll)...)

	return strings.Join(rows, "\n")
}

// laneRows paints one terminal row per lane.
func (p *pane) laneRows(rects []layout.Rect, byID map[string]*event.Event, scroll float64, selectedID, draggingID string) []string {
	laneCount := layout.Lanes(rects)
	if laneCount > p.lanes {
		laneCount = p.lanes
	}
	if laneCount == 0 {
		laneCount = 1
	}

	segs := make([][]segment, laneCount)
	for _, r := range rects {
		if r.Arc || r.Lane >= laneCount {
			continue
		}
		from, to := p.cellSpan(r, scroll)
		if to <= 0 || from >= p.width || to <= from {
			continue
		}
		e := byID[r.EventID]
		if e == nil {
			continue
		}

		style := p.theme.Card.Normal
		switch r.EventID {
		case draggingID:
			style = p.theme.Card.Dragging
		case selectedID:
			style = p.theme.Card.Selected
		default:
			if _, ok := e.Color(); ok {
				style = style.Background(lipgloss.Color(normalizeHex(e.ColorHex)))
			}
		}

		segs[r.Lane] = append(segs[r.Lane], segment{
			col:   from,
			text:  p.card(e, to-from),
			style: style,
		})
	}

	rows := make([]string, laneCount)
	for lane := range segs {
		rows[lane] = renderRow(p.width, segs[lane])
	}
	return rows
}

// arcRow paints full-span arc markers in their own thin row.
func (p *pane) arcRow(rects []layout.Rect, byID map[string]*event.Event, scroll float64) string {
	var segs []segment
	for _, r := range rects {
		if !r.Arc {
			continue
		}
		from, to := p.cellSpan(r, scroll)
		if to <= 0 || from >= p.width || to <= from {
			continue
		}
		e := byID[r.EventID]
		if e == nil {
			continue
		}
		body := glyph.Arc.String() + " " + e.Title + " "
		segs = append(segs, segment{
			col:   from,
			text:  padTo(body, to-from, '╌'),
			style: p.theme.Card.Arc,
		})
	}
	return renderRow(p.width, segs)
}

// tickRows renders the axis line with tick marks and a label row.
func (p *pane) tickRows(eng layout.Engine, zoom, scroll float64) []string {
	from := eng.Mapper.Date(scroll, zoom)
	to := eng.Mapper.Date(scroll+float64(p.width)*PxPerCell, zoom)
	markers := eng.Mapper.Markers(from, to, zoom)

	line := []rune(strings.Repeat("─", p.width))
	var labels []segment

	for _, mk := range markers {
		col := int((eng.Mapper.Position(mk.Time, zoom) - scroll) / PxPerCell)
		if col < 0 || col >= p.width {
			continue
		}
		style := p.theme.Axis.Label
		if mk.Major {
			line[col] = '┼'
			style = p.theme.Axis.Major
		} else {
			line[col] = '┴'
		}
		labels = append(labels, segment{col: col, text: mk.Label, style: style})
	}

	return []string{
		p.theme.Axis.Line.Render(string(line)),
		renderRow(p.width, labels),
	}
}

// card formats the text that fits inside an event's cells.
func (p *pane) card(e *event.Event, width int) string {
	marker := glyph.For(e.IsDuration(), e.Arc, e.Repeat != "")
	body := marker.String() + " " + e.Title
	if tags := e.Tags(); tags != "" && width > len(body)+len(tags)+1 {
		body += " " + tags
	}
	return padTo(body, width, ' ')
}

// cellSpan converts a rect's main-axis points to column bounds.
func (p *pane) cellSpan(r layout.Rect, scroll float64) (int, int) {
	from := int((r.MainStart - scroll) / PxPerCell)
	to := int((r.MainStart + r.MainLen - scroll) / PxPerCell)
	if to == from {
		to = from + 1
	}
	if from < 0 {
		from = 0
	}
	if to > p.width {
		to = p.width
	}
	return from, to
}

func padTo(s string, width int, fill rune) string {
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(string(fill), n)
	}
	return s
}

func normalizeHex(hex string) string {
	if !strings.HasPrefix(hex, "#") {
		return "#" + hex
	}
	return hex
}

// visibleWindow is the interval the pane can draw, with one screen of
// slack either side so cards sliding in are already laid out.
func visibleWindow(eng layout.Engine, zoom, scroll float64, width int) (time.Time, time.Time) {
	buffer := float64(width) * PxPerCell
	from := eng.Mapper.Date(scroll-buffer, zoom)
	to := eng.Mapper.Date(scroll+2*buffer, zoom)
	return from, to
}
