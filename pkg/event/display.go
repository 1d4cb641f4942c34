package event

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	layoutDay  = "2006-01-02"
	layoutTime = "2006-01-02 15:04"
)

// When formats the event's span for listings.
func (e *Event) When() string {
	layout := layoutDay
	if e.Precision == PrecisionTime {
		layout = layoutTime
	}
	if !e.IsDuration() {
		return e.Start.Local().Format(layout)
	}
	return fmt.Sprintf("%s → %s", e.Start.Local().Format(layout), e.End.Local().Format(layout))
}

// Tags joins people and locations for display.
func (e *Event) Tags() string {
	parts := make([]string, 0, len(e.People)+len(e.Locations))
	for _, p := range e.People {
		parts = append(parts, "@"+p)
	}
	for _, l := range e.Locations {
		parts = append(parts, "#"+l)
	}
	return strings.Join(parts, " ")
}

// Color returns the event's color parsed from its hex field, and
// whether it was valid. Color parsing failures are display concerns,
// never errors.
func (e *Event) Color() (colorful.Color, bool) {
	if e.ColorHex == "" {
		return colorful.Color{}, false
	}
	hex := e.ColorHex
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

func (e *Event) String() string {
	return fmt.Sprintf("%s  %s", e.When(), e.Title)
}
