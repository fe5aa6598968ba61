package timeline

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-track-viz/internal/domain"
)

var testNow = time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)

func freezeClock(t *testing.T) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(testNow))
	t.Cleanup(func() { domain.SetClock(nil) })
}

func pointAt(ts time.Time) domain.StormPoint {
	return domain.StormPoint{
		Timestamp: ts.UnixMilli(),
		Lat:       25, Lng: -70,
		WindSpeed: 85, Pressure: 975,
		Category: domain.CategoryC2,
	}
}

func stormSpanning(id string, first, last time.Time) domain.Storm {
	cur := pointAt(last)
	return domain.Storm{
		ID:              id,
		CurrentPosition: &cur,
		Historical:      []domain.StormPoint{pointAt(first)},
	}
}

func TestComputeTimeRange(t *testing.T) {
	freezeClock(t)

	t.Run("rounds outward to 3h boundaries", func(t *testing.T) {
		first := time.Date(2026, time.August, 20, 4, 30, 0, 0, time.UTC)
		last := time.Date(2026, time.August, 20, 19, 10, 0, 0, time.UTC)
		r, ok := ComputeTimeRange([]domain.Storm{stormSpanning("a", first, last)})
		require.True(t, ok)

		assert.Equal(t, int64(threeHoursMs), r.StepMs)
		assert.Equal(t, time.Date(2026, time.August, 20, 3, 0, 0, 0, time.UTC).UnixMilli(), r.Start)
		assert.Equal(t, time.Date(2026, time.August, 20, 21, 0, 0, 0, time.UTC).UnixMilli(), r.End)
		require.Len(t, r.Markers, 7)
		assert.Equal(t, r.Start, r.Markers[0])
		assert.Equal(t, r.End, r.Markers[len(r.Markers)-1])
	})

	t.Run("exact boundaries are not expanded", func(t *testing.T) {
		first := time.Date(2026, time.August, 20, 6, 0, 0, 0, time.UTC)
		last := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
		r, ok := ComputeTimeRange([]domain.Storm{stormSpanning("a", first, last)})
		require.True(t, ok)
		assert.Equal(t, first.UnixMilli(), r.Start)
		assert.Equal(t, last.UnixMilli(), r.End)
	})

	t.Run("switches to 6h when 3h markers exceed twenty", func(t *testing.T) {
		first := time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC)
		last := first.Add(72 * time.Hour) // 25 three-hour markers
		r, ok := ComputeTimeRange([]domain.Storm{stormSpanning("a", first, last)})
		require.True(t, ok)
		assert.Equal(t, int64(sixHoursMs), r.StepMs)
		require.Len(t, r.Markers, 13)
		assert.LessOrEqual(t, len(r.Markers), maxMarkers)
	})

	t.Run("spans multiple storms", func(t *testing.T) {
		early := time.Date(2026, time.August, 19, 0, 0, 0, 0, time.UTC)
		late := time.Date(2026, time.August, 21, 0, 0, 0, 0, time.UTC)
		r, ok := ComputeTimeRange([]domain.Storm{
			stormSpanning("a", early, early.Add(6*time.Hour)),
			stormSpanning("b", late.Add(-6*time.Hour), late),
		})
		require.True(t, ok)
		assert.Equal(t, early.UnixMilli(), r.Start)
		assert.Equal(t, late.UnixMilli(), r.End)
	})

	t.Run("storms without valid timestamps are excluded", func(t *testing.T) {
		good := stormSpanning("good",
			time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.August, 20, 6, 0, 0, 0, time.UTC))
		badPoint := domain.StormPoint{Timestamp: -1, Lat: 10, Lng: 10}
		bad := domain.Storm{ID: "bad", CurrentPosition: &badPoint}

		r, ok := ComputeTimeRange([]domain.Storm{bad, good})
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC).UnixMilli(), r.Start)
	})

	t.Run("no storms at all", func(t *testing.T) {
		_, ok := ComputeTimeRange(nil)
		assert.False(t, ok)
		badPoint := domain.StormPoint{Timestamp: 0}
		_, ok = ComputeTimeRange([]domain.Storm{{CurrentPosition: &badPoint}})
		assert.False(t, ok)
	})
}

func TestRangeLabels(t *testing.T) {
	r := Range{Markers: []int64{
		time.Date(2026, time.August, 20, 6, 0, 0, 0, time.UTC).UnixMilli(),
	}}
	labels := r.Labels()
	require.Len(t, labels, 1)
	assert.Equal(t, "Aug 20 06Z", labels[0])
}
