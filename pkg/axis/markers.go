package axis

import (
	"time"
)

// MinMarkerSpacing is the closest two axis ticks may sit, in pixels.
const MinMarkerSpacing = 72.0

// markerCap bounds a single generation pass; callers always hand in a
// bounded interval, this is the belt for the suspenders.
const markerCap = 10000

// Marker is one tick on the time axis. Major markers align to the
// next-coarser calendar boundary and get bolder styling.
type Marker struct {
	Time  time.Time
	Label string
	Major bool
}

type markerUnit int

const (
	unitHour markerUnit = iota
	unitDay
	unitWeek
	unitMonth
	unitYear
)

// markerStep pairs a calendar unit with its step count and the
// minimum wall span of one step, in seconds. Seconds as float64
// because the largest steps overflow time.Duration (int64 nanoseconds
// caps near 292 years). Using the minimum span (28-day months,
// 365-day years) keeps the pixel-spacing floor honest across short
// months.
type markerStep struct {
	unit         markerUnit
	years        int
	floorSeconds float64
}

const (
	hourSeconds = 3600.0
	daySeconds  = 24 * hourSeconds
	yearSeconds = 365 * daySeconds
)

var markerSteps = []markerStep{
	{unitHour, 0, hourSeconds},
	{unitDay, 0, daySeconds},
	{unitWeek, 0, 7 * daySeconds},
	{unitMonth, 0, 28 * daySeconds},
	{unitYear, 1, yearSeconds},
	{unitYear, 5, 5 * yearSeconds},
	{unitYear, 10, 10 * yearSeconds},
	{unitYear, 50, 50 * yearSeconds},
	{unitYear, 100, 100 * yearSeconds},
	{unitYear, 1000, 1000 * yearSeconds},
}

// Markers generates ordered axis ticks covering [from, to] at the
// finest calendar granularity whose steps stay at least
// MinMarkerSpacing pixels apart at this zoom. Pure function of its
// inputs; regenerating after a scroll or zoom is always safe.
func (m Mapper) Markers(from, to time.Time, zoom float64) []Marker {
	if to.Before(from) {
		return nil
	}
	pps := m.PointsPerSecond(zoom)
	if pps <= 0 {
		return nil
	}

	step := markerSteps[len(markerSteps)-1]
	for _, s := range markerSteps {
		if s.floorSeconds*pps > MinMarkerSpacing {
			step = s
			break
		}
	}

	var markers []Marker
	cur := snap(from, step)
	for i := 0; i < markerCap && !cur.After(to); i++ {
		markers = append(markers, Marker{
			Time:  cur,
			Label: label(cur, step),
			Major: major(cur, step),
		})
		next := advance(cur, step)
		if !next.After(cur) {
			// Calendar arithmetic failed to make progress; bail out
			// rather than spin.
			break
		}
		cur = next
	}
	return markers
}

// snap floors t to the calendar boundary of the step unit.
func snap(t time.Time, s markerStep) time.Time {
	switch s.unit {
	case unitHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case unitDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case unitWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return day.AddDate(0, 0, -int(day.Weekday()))
	case unitMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		year := t.Year()
		if s.years > 1 {
			year = (year / s.years) * s.years
		}
		return time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	}
}

func advance(t time.Time, s markerStep) time.Time {
	switch s.unit {
	case unitHour:
		return t.Add(time.Hour)
	case unitDay:
		return t.AddDate(0, 0, 1)
	case unitWeek:
		return t.AddDate(0, 0, 7)
	case unitMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(s.years, 0, 0)
	}
}

func label(t time.Time, s markerStep) string {
	switch s.unit {
	case unitHour:
		return t.Format("15:04")
	case unitDay, unitWeek:
		return t.Format("Jan 2")
	case unitMonth:
		return t.Format("Jan 2006")
	default:
		return t.Format("2006")
	}
}

// major reports alignment with the next-coarser boundary: midnight for
// hours, month start for days and weeks, year start for months, round
// decades (scaled by step) for years.
func major(t time.Time, s markerStep) bool {
	switch s.unit {
	case unitHour:
		return t.Hour() == 0
	case unitDay:
		return t.Day() == 1
	case unitWeek:
		return t.Day() <= 7
	case unitMonth:
		return t.Month() == time.January
	default:
		years := s.years
		if years < 1 {
			years = 1
		}
		return t.Year()%(years*10) == 0
	}
}
