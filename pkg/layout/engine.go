// Package layout converts a timeline's events plus a zoom level into
// non-overlapping screen rectangles: collision groups, greedy lane
// assignment, and the arc side lane.
package layout

import (
	"sort"
	"time"

	"tableflip.dev/chrono/pkg/axis"
	"tableflip.dev/chrono/pkg/event"
)

// ArcLaneWidth is the fixed cross-axis width of the arc side lane.
const ArcLaneWidth = 16.0

// MinLaneWidth keeps lanes tappable on dense timelines.
const MinLaneWidth = 44.0

// Rect is the computed frame for one event, in main-axis/cross-axis
// coordinates. The renderer maps main→y for stacked orientation and
// main→x for inline. Rects are ephemeral; they are recomputed whenever
// events, zoom, or the viewport size change and never persisted.
type Rect struct {
	EventID string
	Arc     bool

	Group int
	Lane  int

	MainStart float64
	MainLen   float64

	CrossStart float64
	CrossLen   float64
}

// Input bundles one layout pass.
type Input struct {
	Events      []*event.Event
	Zoom        float64
	CrossExtent float64
	Orientation axis.Orientation

	// PinnedID names the event currently being dragged. It is forced
	// to lane 0 of its group so the card does not hop lanes while its
	// position changes frame to frame.
	PinnedID string
}

// Engine lays out events against one timeline range.
type Engine struct {
	Mapper axis.Mapper
}

type interval struct {
	e      *event.Event
	start  time.Time
	end    time.Time
	group  int
	lane   int
	pinned bool
}

// Layout computes frames for every event. Deterministic for a given
// input; zero events yield an empty result.
func (g Engine) Layout(in Input) []Rect {
	if len(in.Events) == 0 {
		return nil
	}
	if g.Mapper.PointsPerSecond(in.Zoom) <= 0 {
		return nil
	}

	var arcs []*event.Event
	regular := make([]*interval, 0, len(in.Events))
	minVisual := g.Mapper.MinVisualDuration(in.Zoom)
	for _, e := range in.Events {
		if e.Arc {
			arcs = append(arcs, e)
			continue
		}
		span := e.EffectiveDuration()
		if span < minVisual {
			span = minVisual
		}
		regular = append(regular, &interval{
			e:      e,
			start:  e.Start.Time,
			end:    e.Start.Add(span),
			pinned: in.PinnedID != "" && e.ID == in.PinnedID,
		})
	}

	crossOffset := 0.0
	if len(arcs) > 0 {
		crossOffset = ArcLaneWidth
	}
	crossAvail := in.CrossExtent - crossOffset

	rects := make([]Rect, 0, len(in.Events))
	rects = append(rects, g.arcRects(arcs, in)...)
	rects = append(rects, g.packedRects(regular, in, crossOffset, crossAvail)...)
	return rects
}

// arcRects lays out full-span marker events in their dedicated side
// lane; they never conflict with regular lanes.
func (g Engine) arcRects(arcs []*event.Event, in Input) []Rect {
	if len(arcs) == 0 {
		return nil
	}
	sort.SliceStable(arcs, func(i, j int) bool {
		if arcs[i].Start.Equal(arcs[j].Start.Time) {
			return arcs[i].ID < arcs[j].ID
		}
		return arcs[i].Start.Before(arcs[j].Start.Time)
	})
	rects := make([]Rect, 0, len(arcs))
	for _, e := range arcs {
		length := g.Mapper.PureLength(e.EffectiveDuration(), in.Zoom)
		if length < axis.MinPointSize {
			length = axis.MinPointSize
		}
		rects = append(rects, Rect{
			EventID:    e.ID,
			Arc:        true,
			Group:      -1,
			MainStart:  g.Mapper.Position(e.Start.Time, in.Zoom),
			MainLen:    length,
			CrossStart: 0,
			CrossLen:   ArcLaneWidth,
		})
	}
	return rects
}

func (g Engine) packedRects(items []*interval, in Input, crossOffset, crossAvail float64) []Rect {
	if len(items) == 0 {
		return nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].start.Equal(items[j].start) {
			return items[i].e.ID < items[j].e.ID
		}
		return items[i].start.Before(items[j].start)
	})

	// Single linear sweep: a new collision group starts whenever an
	// event begins at or after everything seen so far has ended.
	group := 0
	maxEnd := items[0].end
	groupStart := 0
	var rects []Rect
	for i, it := range items {
		if i > 0 && !it.start.Before(maxEnd) {
			rects = append(rects, g.layoutGroup(items[groupStart:i], group, in, crossOffset, crossAvail)...)
			group++
			groupStart = i
			maxEnd = it.end
			continue
		}
		if it.end.After(maxEnd) {
			maxEnd = it.end
		}
	}
	rects = append(rects, g.layoutGroup(items[groupStart:], group, in, crossOffset, crossAvail)...)
	return rects
}

// layoutGroup assigns lanes first-fit in start order, which is the
// minimum lane count for a set of intervals, then emits frames.
func (g Engine) layoutGroup(group []*interval, groupIdx int, in Input, crossOffset, crossAvail float64) []Rect {
	var laneEnds []time.Time

	// The dragged event claims lane 0 before anyone else is placed.
	for _, it := range group {
		if it.pinned {
			it.lane = 0
			laneEnds = append(laneEnds, it.end)
			break
		}
	}

	for _, it := range group {
		if it.pinned && len(laneEnds) > 0 && it.lane == 0 {
			continue
		}
		placed := false
		for lane, end := range laneEnds {
			if !it.start.Before(end) {
				it.lane = lane
				laneEnds[lane] = it.end
				placed = true
				break
			}
		}
		if !placed {
			it.lane = len(laneEnds)
			laneEnds = append(laneEnds, it.end)
		}
	}

	laneCount := len(laneEnds)
	if laneCount < 1 {
		laneCount = 1
	}

	// A not-yet-measured viewport reports a non-positive extent; fold
	// everything into one degenerate lane rather than divide by zero.
	laneWidth := crossAvail
	if crossAvail > 0 {
		laneWidth = crossAvail / float64(laneCount)
		if laneWidth < MinLaneWidth {
			laneWidth = MinLaneWidth
		}
	}

	rects := make([]Rect, 0, len(group))
	for _, it := range group {
		it.group = groupIdx
		lane := it.lane
		crossStart := crossOffset
		crossLen := laneWidth
		if crossAvail > 0 {
			crossStart = crossOffset + float64(lane)*laneWidth
		}
		rects = append(rects, Rect{
			EventID:    it.e.ID,
			Group:      groupIdx,
			Lane:       lane,
			MainStart:  g.Mapper.Position(it.start, in.Zoom),
			MainLen:    g.Mapper.Length(it.e.EffectiveDuration(), in.Zoom, in.Orientation),
			CrossStart: crossStart,
			CrossLen:   crossLen,
		})
	}
	return rects
}

// Lanes reports the lane count of the densest collision group in a
// computed layout. Renderers size the cross axis with it.
func Lanes(rects []Rect) int {
	lanes := 0
	for _, r := range rects {
		if r.Arc {
			continue
		}
		if r.Lane+1 > lanes {
			lanes = r.Lane + 1
		}
	}
	return lanes
}
