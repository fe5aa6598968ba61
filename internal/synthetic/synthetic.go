// Package synthetic produces deterministic demo storms so the server boots
// with renderable data when no live feed is wired up. Tracks follow a
// plausible Atlantic recurvature shape: west-northwest motion during
// intensification, then a turn poleward as the storm weakens.
package synthetic

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/couchcryptid/storm-track-viz/internal/domain"
)

const (
	historySteps   = 12 // 6-hourly, so three days of history
	forecastSteps  = 5  // 12-hourly, so 60 hours of forecast
	scenarioCount  = 3
	historyStepMs  = 6 * int64(time.Hour/time.Millisecond)
	forecastStepMs = 12 * int64(time.Hour/time.Millisecond)
)

var stormNames = []string{
	"ARLENE", "BRET", "CINDY", "DON", "EMILY", "FRANKLIN",
	"GERT", "HAROLD", "IDALIA", "JOSE", "KATIA", "LEE",
}

// Generate builds count storms from a fixed seed. The same seed and count
// always yield the same storms, anchored to the current clock so the tracks
// span recent history plus a forecast window.
func Generate(seed int64, count int) []domain.Storm {
	rng := rand.New(rand.NewSource(seed))
	now := domain.Now().Truncate(time.Hour)

	storms := make([]domain.Storm, 0, count)
	for i := 0; i < count; i++ {
		storms = append(storms, generateStorm(rng, now, i))
	}
	return storms
}

func generateStorm(rng *rand.Rand, now time.Time, index int) domain.Storm {
	name := stormNames[index%len(stormNames)]
	id := fmt.Sprintf("al%02d%d", index+1, now.Year())

	// Genesis point somewhere in the tropical Atlantic.
	lat := 12.0 + rng.Float64()*8.0
	lng := -45.0 - rng.Float64()*15.0
	peakWind := 70.0 + rng.Float64()*80.0
	heading := 285.0 + rng.Float64()*10.0

	nowMs := now.UnixMilli()
	startMs := nowMs - historySteps*historyStepMs

	historical := make([]domain.StormPoint, 0, historySteps)
	for step := 0; step < historySteps; step++ {
		progress := float64(step) / float64(historySteps)
		historical = append(historical,
			trackPoint(startMs+int64(step)*historyStepMs, lat, lng, peakWind, progress))
		lat, lng = advance(lat, lng, heading, 1.2+rng.Float64()*0.6)
		heading = recurve(heading, progress, rng)
	}

	current := trackPoint(nowMs, lat, lng, peakWind, 1.0)

	forecast := make([]domain.StormPoint, 0, forecastSteps)
	fLat, fLng, fHeading := lat, lng, heading
	for step := 1; step <= forecastSteps; step++ {
		fLat, fLng = advance(fLat, fLng, fHeading, 2.4+rng.Float64()*1.2)
		fHeading = recurve(fHeading, 1.0, rng)
		progress := 1.0 + float64(step)*0.15
		forecast = append(forecast,
			trackPoint(nowMs+int64(step)*forecastStepMs, fLat, fLng, peakWind, progress))
	}

	scenarios := make([][]domain.StormPoint, 0, scenarioCount)
	for s := 0; s < scenarioCount; s++ {
		spread := (rng.Float64()*2 - 1) * 1.5
		scenario := make([]domain.StormPoint, 0, len(forecast))
		for step, p := range forecast {
			alt := p
			alt.Lat += spread * float64(step+1) * 0.3
			alt.Lng += spread * float64(step+1) * 0.2
			scenario = append(scenario, alt)
		}
		scenarios = append(scenarios, scenario)
	}

	return domain.Storm{
		ID:              id,
		Name:            name,
		DisplayName:     displayName(name, current.Category),
		Status:          domain.StatusActive,
		CurrentPosition: &current,
		Historical:      historical,
		Forecast:        forecast,
		Scenarios:       scenarios,
	}
}

// trackPoint derives wind, pressure, and category from where the storm sits
// on its life cycle. Progress 0 is genesis, 1 is the current peak, and
// values past 1 model post-peak weakening along the forecast.
func trackPoint(ts int64, lat, lng, peakWind, progress float64) domain.StormPoint {
	intensity := math.Sin(math.Min(progress, 1.6) * math.Pi / 2)
	wind := 25 + (peakWind-25)*intensity
	if wind < 20 {
		wind = 20
	}
	pressure := 1013 - wind*0.55

	return domain.StormPoint{
		Timestamp: ts,
		Lat:       lat,
		Lng:       lng,
		WindSpeed: math.Round(wind),
		Pressure:  math.Round(pressure),
		Category:  domain.CategoryForWind(wind),
	}
}

func advance(lat, lng, headingDeg, stepDeg float64) (float64, float64) {
	rad := headingDeg * math.Pi / 180
	return lat + stepDeg*math.Cos(rad), lng + stepDeg*math.Sin(rad)
}

// recurve bends the heading clockwise toward the pole as the storm matures.
func recurve(heading, progress float64, rng *rand.Rand) float64 {
	turn := 3.0 + progress*6.0 + rng.Float64()*2.0
	h := heading + turn
	if h >= 360 {
		h -= 360
	}
	return h
}

func displayName(name string, category domain.Category) string {
	title := string(name[0]) + strings.ToLower(name[1:])
	switch category {
	case domain.CategoryTD:
		return "Tropical Depression " + title
	case domain.CategoryTS:
		return "Tropical Storm " + title
	default:
		return "Hurricane " + title
	}
}
