// Package tui is the interactive timeline view: a zoomable, scrollable
// time axis with lane-packed event cards, driven by the layout and
// viewport engines.
package tui

import (
	"context"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/chrono/pkg/app"
	"tableflip.dev/chrono/pkg/event"
	"tableflip.dev/chrono/pkg/gesture"
	"tableflip.dev/chrono/pkg/history"
	"tableflip.dev/chrono/pkg/layout"
	"tableflip.dev/chrono/pkg/recur"
	"tableflip.dev/chrono/pkg/store"
	"tableflip.dev/chrono/pkg/timeline"
	"tableflip.dev/chrono/pkg/tui/theme"
	"tableflip.dev/chrono/pkg/viewport"
)

// scrollStepCells is how many columns one h/l press moves the view.
const scrollStepCells = 4

// dragStepCells is how many columns one arrow press moves a grabbed
// event.
const dragStepCells = 2

// Model contains UI state.
type Model struct {
	svc *app.Service
	ctx context.Context

	timeline string
	rng      timeline.Range

	ctrl *viewport.Controller
	drag *gesture.Reschedule
	hist *history.Manager

	events   []*event.Event
	selected int

	pane pane
	bar  bottombar

	status string

	termWidth  int
	termHeight int

	centerCh chan time.Time
	watchCh  <-chan store.Notification
}

// messages
type errMsg struct{ err error }
type eventsLoadedMsg struct{ events []*event.Event }
type centerChangedMsg struct{ center time.Time }
type storeChangedMsg struct{ n store.Notification }

// New creates a UI model backed by the Service, looking at one
// timeline.
func New(svc *app.Service, name string, rng timeline.Range, watchCh <-chan store.Notification) Model {
	t := theme.Default()
	ctrl := viewport.New()
	ctrl.Reset(rng, 0)

	centerCh := make(chan time.Time, 1)
	ctrl.SetOnCenterChanged(func(c time.Time) {
		select {
		case centerCh <- c:
		default:
		}
	})

	m := Model{
		svc:      svc,
		ctx:      context.Background(),
		timeline: name,
		rng:      rng,
		ctrl:     ctrl,
		drag: gesture.New(gesture.Options{
			ClampToRange: true,
			Range:        rng,
		}),
		pane:     newPane(t),
		bar:      bottombar{theme: t},
		centerCh: centerCh,
		watchCh:  watchCh,
	}
	m.hist = history.New(svc)
	if v, ok := svc.LastView(name); ok {
		ctrl.ZoomBy(v.Zoom / ctrl.Zoom())
		ctrl.ScrollToDate(v.Center)
	} else {
		ctrl.ScrollToDate(time.Now())
	}
	return m
}

// Init loads initial data.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadEvents(), m.waitCenter(), m.waitWatch())
}

func (m *Model) loadEvents() tea.Cmd {
	name := m.timeline
	eng := m.engine()
	zoom, scroll := m.ctrl.Zoom(), m.ctrl.Scroll()
	width := m.termWidth
	if width <= 0 {
		width = 80
	}
	return func() tea.Msg {
		from, to := visibleWindow(eng, zoom, scroll, width)
		events, err := m.svc.Visible(m.ctx, name, from, to)
		if err != nil {
			return errMsg{err}
		}
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].Start.Equal(events[j].Start.Time) {
				return events[i].ID < events[j].ID
			}
			return events[i].Start.Before(events[j].Start.Time)
		})
		return eventsLoadedMsg{events}
	}
}

// waitCenter converts debounced center-date settles into messages.
func (m *Model) waitCenter() tea.Cmd {
	ch := m.centerCh
	return func() tea.Msg {
		return centerChangedMsg{center: <-ch}
	}
}

// waitWatch converts persistence notifications into messages.
func (m *Model) waitWatch() tea.Cmd {
	ch := m.watchCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{n}
	}
}

func (m *Model) engine() layout.Engine {
	return layout.Engine{Mapper: m.ctrl.Mapper()}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		lanes := msg.Height - 5
		if lanes < 1 {
			lanes = 1
		}
		m.pane.setSize(msg.Width, lanes)
		m.ctrl.Resize(float64(msg.Width) * PxPerCell)
		cmds = append(cmds, m.loadEvents())

	case errMsg:
		m.status = "ERR: " + msg.err.Error()

	case eventsLoadedMsg:
		m.events = msg.events
		if m.selected >= len(m.events) {
			m.selected = len(m.events) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}

	case centerChangedMsg:
		m.svc.RememberView(m.timeline, app.View{Zoom: m.ctrl.Zoom(), Center: msg.center})
		cmds = append(cmds, m.loadEvents(), m.waitCenter())

	case storeChangedMsg:
		if msg.n.Type == store.TimelinesInvalidated || msg.n.Timeline == m.timeline {
			cmds = append(cmds, m.loadEvents())
		}
		cmds = append(cmds, m.waitWatch())

	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKey(msg)...)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) []tea.Cmd {
	var cmds []tea.Cmd

	if m.drag.Active() {
		switch msg.String() {
		case "left":
			m.moveDrag(-dragStepCells * PxPerCell)
		case "right":
			m.moveDrag(dragStepCells * PxPerCell)
		case "enter":
			m.dropDrag(&cmds)
		case "esc", "q":
			m.drag.Cancel()
			m.ctrl.SetScrollLocked(false)
			m.status = "put back"
		}
		return cmds
	}

	switch msg.String() {
	case "q", "ctrl+c":
		cmds = append(cmds, tea.Quit)
	case "h", "left":
		m.ctrl.ScrollBy(-scrollStepCells * PxPerCell)
		cmds = append(cmds, m.loadEvents())
	case "l", "right":
		m.ctrl.ScrollBy(scrollStepCells * PxPerCell)
		cmds = append(cmds, m.loadEvents())
	case "+", "=":
		m.ctrl.ZoomBy(1.25)
		cmds = append(cmds, m.loadEvents())
	case "-", "_":
		m.ctrl.ZoomBy(0.8)
		cmds = append(cmds, m.loadEvents())
	case "t":
		m.ctrl.ScrollToDate(time.Now())
		cmds = append(cmds, m.loadEvents())
	case "j", "down":
		if m.selected < len(m.events)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "g":
		m.grab()
	case "u":
		if mv, ok, err := m.hist.Undo(); err != nil {
			m.status = "ERR: " + err.Error()
		} else if ok {
			m.status = "undid move of " + mv.EventID[:8]
			cmds = append(cmds, m.loadEvents())
		}
	case "r":
		if mv, ok, err := m.hist.Redo(); err != nil {
			m.status = "ERR: " + err.Error()
		} else if ok {
			m.status = "redid move of " + mv.EventID[:8]
			cmds = append(cmds, m.loadEvents())
		}
	}
	return cmds
}

// grab starts a drag on the selected event. Derived occurrences and
// arcs stay where they are.
func (m *Model) grab() {
	e := m.selectedEvent()
	if e == nil {
		return
	}
	if recur.IsOccurrence(e.ID) {
		m.status = "occurrences follow their rule; move the original"
		return
	}
	// A keyboard grab is already deliberate; backdate the press so the
	// first arrow key clears the hold threshold instead of cancelling.
	m.drag.Press(e, time.Now().Add(-gesture.DefaultHold))
	m.ctrl.SetScrollLocked(true)
	m.status = "grabbed " + e.Title
}

func (m *Model) moveDrag(deltaPx float64) {
	pps := m.ctrl.Mapper().PointsPerSecond(m.ctrl.Zoom())
	m.drag.Move(deltaPx, pps, time.Now())
}

func (m *Model) dropDrag(cmds *[]tea.Cmd) {
	commit, ok := m.drag.Release()
	m.ctrl.SetScrollLocked(false)
	if !ok {
		return
	}
	if err := m.svc.Move(m.ctx, commit.EventID, commit.To); err != nil {
		*cmds = append(*cmds, func() tea.Msg { return errMsg{err} })
		return
	}
	m.hist.RecordMove(history.Move(commit))
	m.status = "moved to " + commit.To.Local().Format("Jan 2 2006")
	*cmds = append(*cmds, m.loadEvents())
}

func (m *Model) selectedEvent() *event.Event {
	if m.selected < 0 || m.selected >= len(m.events) {
		return nil
	}
	return m.events[m.selected]
}

// View renders the pane over the bottom bar.
func (m Model) View() string {
	selectedID := ""
	if e := m.selectedEvent(); e != nil {
		selectedID = e.ID
	}
	draggingID := ""
	if t := m.drag.Target(); t != nil {
		draggingID = t.ID
	}

	body := m.pane.view(m.events, m.engine(), m.ctrl.Zoom(), m.ctrl.Scroll(), selectedID, draggingID)
	bar := m.bar.view(m.timeline, m.ctrl.CenterDate(), m.ctrl.Zoom(), m.drag.Active(), m.status, m.termWidth)
	return body + "\n" + bar
}
