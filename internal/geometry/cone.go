package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/couchcryptid/storm-track-viz/internal/domain"
)

const (
	// earthRadiusKm is the mean spherical radius used for geodesic offsets.
	earthRadiusKm = 6371.0

	nauticalMileKm = 1.852

	// baseHalfWidthNM is the cone half-width in nautical miles at 24 hours
	// of forecast lead.
	baseHalfWidthNM = 50.0

	msPerHour = 3_600_000
)

// OffsetPoint computes the spherical-earth destination reached by travelling
// distanceKm along the initial bearing bearingDeg from (lat, lng). The
// returned longitude is normalized to [-180, 180].
func OffsetPoint(lat, lng, bearingDeg, distanceKm float64) (float64, float64) {
	phi1 := lat * math.Pi / 180
	lambda1 := lng * math.Pi / 180
	theta := bearingDeg * math.Pi / 180
	delta := distanceKm / earthRadiusKm

	sinPhi2 := math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta)
	phi2 := math.Asin(sinPhi2)
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*sinPhi2,
	)

	lat2 := phi2 * 180 / math.Pi
	lng2 := lambda2 * 180 / math.Pi
	lng2 = math.Mod(lng2+540, 360) - 180
	return lat2, lng2
}

// Bearing returns the initial great-circle bearing from one point to
// another in degrees, normalized to [0, 360).
func Bearing(from, to orb.Point) float64 {
	b := geo.Bearing(from, to)
	if b < 0 {
		b += 360
	}
	return b
}

// HalfWidthKm is the cone half-width for a point h hours past the current
// position: 50 nautical miles scaled linearly by h/24, in kilometres.
// Negative leads clamp to zero, so the cone pinches shut at the current
// position.
func HalfWidthKm(hours float64) float64 {
	if hours < 0 {
		hours = 0
	}
	return baseHalfWidthNM * (hours / 24) * nauticalMileKm
}

// Cone builds the forecast-uncertainty polygon for a primary forecast track.
// The ring runs current position → left edge out → right edge back →
// current position, so it is closed and has zero width at the start.
//
// When alternative forecast scenarios are supplied (index-aligned with the
// primary forecast), the half-width at each step is widened by the
// great-circle distance from the primary point to the farthest scenario
// point at that step, so the cone encloses every scenario.
//
// Fewer than one forecast point, or a degenerate current position, yields a
// nil ring rather than an error.
func Cone(current domain.StormPoint, forecast []domain.StormPoint, scenarios [][]domain.StormPoint) orb.Ring {
	if len(forecast) == 0 {
		return nil
	}

	left := make([]orb.Point, len(forecast))
	right := make([]orb.Point, len(forecast))

	heading := Bearing(current.Point(), forecast[0].Point())
	prev := current
	for i, pt := range forecast {
		if pt.Point() != prev.Point() {
			heading = Bearing(prev.Point(), pt.Point())
		}

		hours := float64(pt.Timestamp-current.Timestamp) / msPerHour
		halfWidth := HalfWidthKm(hours) + maxScenarioSpreadKm(pt, scenarios, i)

		latL, lngL := OffsetPoint(pt.Lat, pt.Lng, heading-90, halfWidth)
		latR, lngR := OffsetPoint(pt.Lat, pt.Lng, heading+90, halfWidth)
		left[i] = orb.Point{lngL, latL}
		right[i] = orb.Point{lngR, latR}
		prev = pt
	}

	ring := make(orb.Ring, 0, 2*len(forecast)+2)
	ring = append(ring, current.Point())
	ring = append(ring, left...)
	for i := len(right) - 1; i >= 0; i-- {
		ring = append(ring, right[i])
	}
	ring = append(ring, current.Point())
	return ring
}

// ConeForStorm builds the cone from a storm's current position, forecast,
// and scenarios. Nil when the storm has no current position or no forecast.
func ConeForStorm(s domain.Storm) orb.Ring {
	if s.CurrentPosition == nil {
		return nil
	}
	return Cone(*s.CurrentPosition, s.Forecast, s.Scenarios)
}

// maxScenarioSpreadKm is the largest great-circle distance from the primary
// forecast point to any scenario's point at the same step.
func maxScenarioSpreadKm(primary domain.StormPoint, scenarios [][]domain.StormPoint, step int) float64 {
	maxKm := 0.0
	for _, scenario := range scenarios {
		if step >= len(scenario) {
			continue
		}
		km := geo.DistanceHaversine(primary.Point(), scenario[step].Point()) / 1000
		if km > maxKm {
			maxKm = km
		}
	}
	return maxKm
}
