// Package viewport owns the ephemeral scroll/zoom state of a rendered
// timeline: the scroll offset, the zoom scale, and the center date the
// two imply. It distinguishes user scrolling (debounced into a stable
// center date) from programmatic scrolling (which must never feed back
// into center-date derivation).
package viewport

import (
	"sync"
	"time"

	"tableflip.dev/chrono/pkg/axis"
	"tableflip.dev/chrono/pkg/timeline"
)

// DefaultScrollSettle is how long user scrolling must pause before the
// center date is re-derived and dependents recompute.
const DefaultScrollSettle = 80 * time.Millisecond

// Controller mediates every zoom and scroll mutation for one timeline.
// All methods are safe for concurrent use, though in practice a single
// UI goroutine drives them and only debounce fires arrive from aside.
type Controller struct {
	mu sync.Mutex

	mapper     axis.Mapper
	axisLength float64

	zoom   float64
	scroll float64
	center time.Time

	// programmatic marks an in-flight scroll the controller itself
	// issued; raw scroll updates observed during it are echoes, not
	// user intent, and must not re-derive the center date.
	programmatic bool

	pinchBase float64
	locked    bool

	generation int
	settle     *Debounce

	onCenter func(center time.Time)
}

// New creates a controller with the default settle delay.
func New() *Controller {
	return &Controller{settle: NewDebounce(DefaultScrollSettle), zoom: 1}
}

// SetOnCenterChanged registers the callback fired (from the debounce
// goroutine) when user scrolling settles on a new center date.
func (c *Controller) SetOnCenterChanged(fn func(center time.Time)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onCenter = fn
}

// Reset reinitializes the viewport for a (possibly different) timeline
// and axis size: zoom snaps into bounds, the center date re-anchors to
// the range start, and any pending settle is discarded.
func (c *Controller) Reset(rng timeline.Range, axisLength float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mapper = axis.Mapper{Range: rng}
	c.axisLength = axisLength
	c.generation++
	c.settle.Stop()
	c.pinchBase = 0
	c.locked = false
	c.zoom = c.mapper.ClampZoom(c.zoom, axisLength)
	c.center = rng.Start
	c.scrollToLocked(rng.Start)
}

// Resize updates the axis length without losing the center date.
func (c *Controller) Resize(axisLength float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.axisLength = axisLength
	c.zoom = c.mapper.ClampZoom(c.zoom, axisLength)
	c.scrollToLocked(c.center)
}

// Zoom returns the current zoom scale.
func (c *Controller) Zoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

// Scroll returns the current scroll offset in pixels.
func (c *Controller) Scroll() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scroll
}

// CenterDate returns the instant mapped to the viewport midpoint.
func (c *Controller) CenterDate() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.center
}

// Mapper returns the axis mapper for the active range.
func (c *Controller) Mapper() axis.Mapper {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mapper
}

// ScrollToDate programmatically centers the given date.
func (c *Controller) ScrollToDate(date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scrollToLocked(date)
}

func (c *Controller) scrollToLocked(date time.Time) {
	if c.axisLength <= 0 {
		// Not laid out yet; keep the request as the center so the
		// first Resize can honor it.
		c.center = date
		return
	}
	c.programmatic = true
	target := c.mapper.Position(date, c.zoom) - c.axisLength/2
	c.scroll = c.clampScroll(target)
	c.center = date
	c.programmatic = false
}

func (c *Controller) clampScroll(pos float64) float64 {
	max := c.mapper.ContentLength(c.zoom) - c.axisLength
	if max < 0 {
		max = 0
	}
	if pos < 0 {
		return 0
	}
	if pos > max {
		return max
	}
	return pos
}

// ScrollFraction converts the offset to a 0..1 anchor for scroll
// surfaces that address content fractionally.
func (c *Controller) ScrollFraction() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	span := c.mapper.ContentLength(c.zoom) - c.axisLength
	if span <= 0 {
		return 0
	}
	return c.scroll / span
}

// OnRawScroll records a user-driven scroll position. The center date
// is re-derived only after scrolling settles, so markers and lane
// layout are not recomputed on every pixel.
func (c *Controller) OnRawScroll(pos float64) {
	c.mu.Lock()
	if c.programmatic || c.locked {
		c.mu.Unlock()
		return
	}
	c.scroll = c.clampScroll(pos)
	gen := c.generation
	c.mu.Unlock()

	c.settle.Trigger(func() {
		c.mu.Lock()
		if gen != c.generation || c.axisLength <= 0 {
			// The timeline changed under a stale fire; drop it.
			c.mu.Unlock()
			return
		}
		c.center = c.mapper.Date(c.scroll+c.axisLength/2, c.zoom)
		center := c.center
		fn := c.onCenter
		c.mu.Unlock()
		if fn != nil {
			fn(center)
		}
	})
}

// ScrollBy shifts the viewport by a pixel delta, as user input.
func (c *Controller) ScrollBy(delta float64) {
	c.mu.Lock()
	pos := c.scroll + delta
	c.mu.Unlock()
	c.OnRawScroll(pos)
}

// BeginPinch captures the zoom baseline for an incremental gesture.
func (c *Controller) BeginPinch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinchBase = c.zoom
}

// UpdatePinch applies a cumulative gesture scale factor, zooming about
// the visual center: the date under the midpoint before the zoom stays
// under the midpoint after.
func (c *Controller) UpdatePinch(scaleFactor float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pinchBase == 0 {
		c.pinchBase = c.zoom
	}
	// Derive the anchor with the old zoom before rescaling.
	anchor := c.center
	if c.axisLength > 0 {
		anchor = c.mapper.Date(c.scroll+c.axisLength/2, c.zoom)
	}
	c.zoom = c.mapper.ClampZoom(c.pinchBase*scaleFactor, c.axisLength)
	c.scrollToLocked(anchor)
}

// EndPinch completes the gesture.
func (c *Controller) EndPinch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinchBase = 0
}

// ZoomBy is the discrete (keyboard) form of a pinch step.
func (c *Controller) ZoomBy(factor float64) {
	c.BeginPinch()
	c.UpdatePinch(factor)
	c.EndPinch()
}

// SetScrollLocked suppresses user scrolling, used while a drag gesture
// owns the pointer.
func (c *Controller) SetScrollLocked(locked bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locked = locked
}

// ScrollLocked reports whether user scrolling is suppressed.
func (c *Controller) ScrollLocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// VisibleInterval returns the time span currently on screen, widened
// by bufferPx on each side for pre-rendering.
func (c *Controller) VisibleInterval(bufferPx float64) (time.Time, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	from := c.mapper.Date(c.scroll-bufferPx, c.zoom)
	to := c.mapper.Date(c.scroll+c.axisLength+bufferPx, c.zoom)
	if from.Before(c.mapper.Range.Start) {
		from = c.mapper.Range.Start
	}
	if to.After(c.mapper.Range.End) {
		to = c.mapper.Range.End
	}
	return from, to
}

// Close releases the settle timer.
func (c *Controller) Close() {
	c.settle.Stop()
}
