package axis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/chrono/pkg/timeline"
)

func testMapper() Mapper {
	return Mapper{Range: timeline.Range{
		Name:       "Journal",
		Start:      time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		Configured: true,
	}}
}

func TestPositionDateRoundTrip(t *testing.T) {
	m := testMapper()

	zooms := []float64{1, 1.5, 7, 42, 113, MaxZoom}
	dates := []time.Time{
		m.Range.Start,
		m.Range.Start.Add(90 * time.Minute),
		m.Range.Start.AddDate(0, 0, 4),
		m.Range.Start.Add(613*time.Hour + 37*time.Minute + 11*time.Second),
		m.Range.End,
	}

	for _, zoom := range zooms {
		for _, d := range dates {
			back := m.Date(m.Position(d, zoom), zoom)
			diff := back.Sub(d)
			if diff < 0 {
				diff = -diff
			}
			require.Lessf(t, diff, time.Second,
				"round trip at zoom %v for %v drifted %v", zoom, d, diff)
		}
	}
}

func TestPositionMonotonic(t *testing.T) {
	m := testMapper()

	for _, zoom := range []float64{1, 13, MaxZoom} {
		prev := m.Position(m.Range.Start, zoom)
		for i := 1; i <= 24; i++ {
			d := m.Range.Start.Add(time.Duration(i) * 19 * time.Hour)
			pos := m.Position(d, zoom)
			require.Greater(t, pos, prev, "zoom %v step %d", zoom, i)
			prev = pos
		}
	}
}

func TestLengthFloors(t *testing.T) {
	m := testMapper()

	assert.Equal(t, MinPointSize, m.Length(0, 1, Stacked))
	assert.Equal(t, MinInlineLength, m.Length(0, 1, Inline))

	// One hour at zoom 1 is exactly the base density.
	assert.InDelta(t, BasePxPerHour, m.PureLength(time.Hour, 1), 1e-9)

	// Long spans are unclamped.
	long := m.Length(10*time.Hour, 1, Stacked)
	assert.InDelta(t, 1200.0, long, 1e-9)
}

func TestMinZoom(t *testing.T) {
	m := testMapper()

	// A month-long range dwarfs a 600px axis, so the floor of 1 wins.
	assert.Equal(t, 1.0, m.MinZoom(600))

	// A short range stretches to fill the axis.
	short := Mapper{Range: timeline.Range{
		Start:      m.Range.Start,
		End:        m.Range.Start.Add(2 * time.Hour),
		Configured: true,
	}}
	got := short.MinZoom(600)
	assert.InDelta(t, 600.0/240.0, got, 1e-9)
	assert.InDelta(t, 600.0, short.ContentLength(got), 1e-6)
}

func TestClampZoom(t *testing.T) {
	m := testMapper()

	assert.Equal(t, 1.0, m.ClampZoom(0.001, 600))
	assert.Equal(t, MaxZoom, m.ClampZoom(5000, 600))
	assert.Equal(t, 12.5, m.ClampZoom(12.5, 600))
}

func TestDegenerateZoomDoesNotDivide(t *testing.T) {
	m := testMapper()

	assert.Equal(t, 0.0, m.Position(m.Range.End, 0))
	assert.True(t, m.Date(100, 0).Equal(m.Range.Start))
	assert.Equal(t, time.Duration(0), m.MinVisualDuration(0))
}

func TestMinVisualDurationInvertsPointSize(t *testing.T) {
	m := testMapper()

	for _, zoom := range []float64{1, 9, 150} {
		d := m.MinVisualDuration(zoom)
		assert.InDelta(t, MinPointSize, m.PureLength(d, zoom), 0.001, "zoom %v", zoom)
	}
}

func TestEndToEndScenario(t *testing.T) {
	// Range [2024-01-01, 2024-02-01], one point event on Jan 5, 600px
	// viewport at minimum zoom.
	m := testMapper()
	zoom := m.MinZoom(600)

	pos := m.Position(m.Range.Start.AddDate(0, 0, 4), zoom)
	want := 4 * 24 * 3600 * m.PointsPerSecond(zoom)
	assert.InDelta(t, want, pos, 1e-6)
	assert.Equal(t, MinPointSize, m.Length(0, zoom, Stacked))
}
