package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-track-viz/internal/domain"
)

// fiveTrackStorm builds the canonical scrubbing fixture: two historical
// points, a current position, and two forecast points, six hours apart.
func fiveTrackStorm() (domain.Storm, []time.Time) {
	t0 := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	times := []time.Time{t0, t0.Add(6 * time.Hour), t0.Add(12 * time.Hour), t0.Add(18 * time.Hour), t0.Add(24 * time.Hour)}

	mk := func(i int, lat, lng float64, cat domain.Category) domain.StormPoint {
		p := pointAt(times[i])
		p.Lat, p.Lng, p.Category = lat, lng, cat
		return p
	}
	cur := mk(2, 24, -72, domain.CategoryC3)
	storm := domain.Storm{
		ID:              "al072026",
		CurrentPosition: &cur,
		Historical:      []domain.StormPoint{mk(0, 20, -68, domain.CategoryC1), mk(1, 22, -70, domain.CategoryC2)},
		Forecast:        []domain.StormPoint{mk(3, 26, -74, domain.CategoryC2), mk(4, 28, -76, domain.CategoryC1)},
	}
	return storm, times
}

func TestStateAtTime(t *testing.T) {
	freezeClock(t)
	storm, times := fiveTrackStorm()

	t.Run("exact timestamp returns that point observed", func(t *testing.T) {
		state, ok := StateAtTime(storm, times[1].UnixMilli())
		require.True(t, ok)
		assert.Equal(t, domain.Observed, state.Sample.Provenance)
		assert.Equal(t, storm.Historical[1], state.Sample.Point)
	})

	t.Run("midpoint between t1 and t2 interpolates position, keeps t1 category", func(t *testing.T) {
		mid := times[1].Add(3 * time.Hour).UnixMilli() // halfway to the current position
		state, ok := StateAtTime(storm, mid)
		require.True(t, ok)
		assert.Equal(t, domain.Interpolated, state.Sample.Provenance)
		assert.InDelta(t, 23.0, state.Sample.Point.Lat, 1e-9)
		assert.InDelta(t, -71.0, state.Sample.Point.Lng, 1e-9)
		// factor is exactly 0.5, so the step rule takes the later category
		assert.Equal(t, domain.CategoryC3, state.Sample.Point.Category)
	})

	t.Run("just before halfway keeps the earlier category", func(t *testing.T) {
		justBefore := times[1].Add(3*time.Hour - time.Minute).UnixMilli()
		state, ok := StateAtTime(storm, justBefore)
		require.True(t, ok)
		assert.Equal(t, domain.CategoryC2, state.Sample.Point.Category)
	})

	t.Run("before the track clamps to the first point", func(t *testing.T) {
		state, ok := StateAtTime(storm, times[0].Add(-2*time.Hour).UnixMilli())
		require.True(t, ok)
		assert.Equal(t, storm.Historical[0], state.Sample.Point)
		assert.Equal(t, domain.Observed, state.Sample.Provenance)
	})

	t.Run("after the track clamps to the last point", func(t *testing.T) {
		state, ok := StateAtTime(storm, times[4].Add(2*time.Hour).UnixMilli())
		require.True(t, ok)
		assert.Equal(t, storm.Forecast[1], state.Sample.Point)
	})

	t.Run("partitions are strict", func(t *testing.T) {
		state, ok := StateAtTime(storm, times[2].UnixMilli())
		require.True(t, ok)
		assert.Len(t, state.Historical, 2)
		assert.Len(t, state.Forecast, 2)

		between := times[2].Add(time.Hour).UnixMilli()
		state, ok = StateAtTime(storm, between)
		require.True(t, ok)
		assert.Len(t, state.Historical, 3)
		assert.Len(t, state.Forecast, 2)
	})

	t.Run("empty storm", func(t *testing.T) {
		_, ok := StateAtTime(domain.Storm{}, times[0].UnixMilli())
		assert.False(t, ok)
	})
}

func TestVisibility(t *testing.T) {
	freezeClock(t)
	storm, times := fiveTrackStorm()

	t.Run("inside the track", func(t *testing.T) {
		state, _ := StateAtTime(storm, times[2].UnixMilli())
		assert.True(t, state.Visible)
	})

	t.Run("within the one-hour buffer", func(t *testing.T) {
		state, _ := StateAtTime(storm, times[0].Add(-time.Hour).UnixMilli())
		assert.True(t, state.Visible)
		state, _ = StateAtTime(storm, times[4].Add(time.Hour).UnixMilli())
		assert.True(t, state.Visible)
	})

	t.Run("outside the buffer", func(t *testing.T) {
		state, _ := StateAtTime(storm, times[0].Add(-61*time.Minute).UnixMilli())
		assert.False(t, state.Visible)
		state, _ = StateAtTime(storm, times[4].Add(61*time.Minute).UnixMilli())
		assert.False(t, state.Visible)
	})

	t.Run("single point uses the six-hour window", func(t *testing.T) {
		lone := pointAt(times[2])
		s := domain.Storm{ID: "lone", CurrentPosition: &lone}

		state, ok := StateAtTime(s, times[2].Add(6*time.Hour).UnixMilli())
		require.True(t, ok)
		assert.True(t, state.Visible)

		state, _ = StateAtTime(s, times[2].Add(6*time.Hour+time.Minute).UnixMilli())
		assert.False(t, state.Visible)

		state, _ = StateAtTime(s, times[2].Add(-6*time.Hour).UnixMilli())
		assert.True(t, state.Visible)
	})
}
