package synthetic

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-track-viz/internal/domain"
)

func freezeClock(t *testing.T) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })
}

func TestGenerate_Deterministic(t *testing.T) {
	freezeClock(t)

	a := Generate(42, 4)
	b := Generate(42, 4)

	require.Len(t, a, 4)
	assert.Equal(t, a, b)
}

func TestGenerate_SeedChangesTracks(t *testing.T) {
	freezeClock(t)

	a := Generate(1, 1)
	b := Generate(2, 1)

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.NotEqual(t, a[0].CurrentPosition.Lat, b[0].CurrentPosition.Lat)
}

func TestGenerate_StormsAreValid(t *testing.T) {
	freezeClock(t)

	for _, storm := range Generate(7, 6) {
		result := domain.ValidateStorm(storm)
		assert.True(t, result.IsValid, "storm %s: %v", storm.ID, result.Errors)
		assert.Empty(t, result.Errors)
	}
}

func TestGenerate_TrackShape(t *testing.T) {
	freezeClock(t)

	storm := Generate(42, 1)[0]

	require.NotNil(t, storm.CurrentPosition)
	require.Len(t, storm.Historical, historySteps)
	require.Len(t, storm.Forecast, forecastSteps)
	require.Len(t, storm.Scenarios, scenarioCount)
	for _, scenario := range storm.Scenarios {
		assert.Len(t, scenario, forecastSteps)
	}

	// Timestamps ascend through history, current, and forecast.
	track := storm.FullTrack()
	for i := 1; i < len(track); i++ {
		assert.Greater(t, track[i].Timestamp, track[i-1].Timestamp)
	}

	// History is 6-hourly, forecast 12-hourly.
	assert.Equal(t, historyStepMs, storm.Historical[1].Timestamp-storm.Historical[0].Timestamp)
	assert.Equal(t, forecastStepMs, storm.Forecast[1].Timestamp-storm.Forecast[0].Timestamp)

	// Current position is the intensity peak of the life cycle so far.
	for _, p := range storm.Historical {
		assert.LessOrEqual(t, p.WindSpeed, storm.CurrentPosition.WindSpeed)
	}
}

func TestGenerate_UniqueIDsAndNames(t *testing.T) {
	freezeClock(t)

	storms := Generate(3, 5)
	seen := map[string]bool{}
	for _, s := range storms {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.DisplayName)
		assert.Equal(t, domain.StatusActive, s.Status)
	}
}
