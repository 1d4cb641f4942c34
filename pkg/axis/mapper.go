// Package axis maps between absolute time and pixel offsets along a
// timeline's main axis, and generates the tick markers drawn on it.
package axis

import (
	"time"

	"tableflip.dev/chrono/pkg/timeline"
)

// Orientation selects which way the main axis runs on screen.
type Orientation int

const (
	// Stacked runs the time axis down the screen, lanes side by side.
	Stacked Orientation = iota
	// Inline runs the time axis across the screen, lanes stacked.
	Inline
)

const (
	// BasePxPerHour is the pixel density of one hour at zoom 1.
	BasePxPerHour = 120.0

	// MinPointSize keeps point events tappable on the stacked axis.
	MinPointSize = 44.0

	// MinInlineLength keeps inline cards wide enough for their content.
	MinInlineLength = 180.0

	// MaxZoom bounds how far in the user can zoom.
	MaxZoom = 200.0
)

// Mapper converts between instants and pixel offsets for one timeline
// range. It is stateless; zoom is a parameter, never a field.
type Mapper struct {
	Range timeline.Range
}

// PointsPerSecond is the pixel density at the given zoom.
func (m Mapper) PointsPerSecond(zoom float64) float64 {
	return BasePxPerHour * zoom / 3600.0
}

// Position maps an instant to its pixel offset from the range start.
func (m Mapper) Position(t time.Time, zoom float64) float64 {
	pps := m.PointsPerSecond(zoom)
	if pps <= 0 {
		return 0
	}
	return t.Sub(m.Range.Start).Seconds() * pps
}

// Date inverts Position. Date(Position(t, z), z) == t within
// sub-second tolerance; pan and zoom compose these constantly.
func (m Mapper) Date(position, zoom float64) time.Time {
	pps := m.PointsPerSecond(zoom)
	if pps <= 0 {
		return m.Range.Start
	}
	seconds := position / pps
	return m.Range.Start.Add(time.Duration(seconds * float64(time.Second)))
}

// PureLength is the unclamped pixel length of a duration.
func (m Mapper) PureLength(d time.Duration, zoom float64) float64 {
	return d.Seconds() * m.PointsPerSecond(zoom)
}

// MinLength is the orientation-dependent pixel floor for a card's
// main-axis extent.
func MinLength(o Orientation) float64 {
	if o == Inline {
		return MinInlineLength
	}
	return MinPointSize
}

// Length is PureLength floored at the orientation minimum, so point
// and near-point events still present a usable target.
func (m Mapper) Length(d time.Duration, zoom float64, o Orientation) float64 {
	l := m.PureLength(d, zoom)
	if min := MinLength(o); l < min {
		return min
	}
	return l
}

// ContentLength is the full pixel extent of the configured range.
func (m Mapper) ContentLength(zoom float64) float64 {
	return m.PureLength(m.Range.Duration(), zoom)
}

// MinZoom is the smallest zoom at which content still fills an axis of
// the given pixel length. Below 1.0 the floor is 1.0, so short ranges
// never shrink under the viewport.
func (m Mapper) MinZoom(axisLength float64) float64 {
	full := m.PureLength(m.Range.Duration(), 1.0)
	if full <= 0 || axisLength <= 0 {
		return 1.0
	}
	if z := axisLength / full; z > 1.0 {
		return z
	}
	return 1.0
}

// ClampZoom bounds zoom to [MinZoom, MaxZoom] for the axis length.
func (m Mapper) ClampZoom(zoom, axisLength float64) float64 {
	if min := m.MinZoom(axisLength); zoom < min {
		return min
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// MinVisualDuration inverts the point-size floor: the shortest span
// that still renders at MinPointSize pixels at this zoom. Collision
// grouping uses it so visually-minimum cards still claim their space.
func (m Mapper) MinVisualDuration(zoom float64) time.Duration {
	pps := m.PointsPerSecond(zoom)
	if pps <= 0 {
		return 0
	}
	return time.Duration(MinPointSize / pps * float64(time.Second))
}
