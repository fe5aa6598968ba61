package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/couchcryptid/storm-track-viz/internal/domain"
)

// simplifyPointThreshold is the track length above which simplification is
// worth the shape loss.
const simplifyPointThreshold = 100

// fullDetailZoom is the map zoom level at and above which tracks are always
// rendered at full resolution.
const fullDetailZoom = 7

// baseZoomTolerance is the Douglas–Peucker tolerance in degrees one zoom
// level below fullDetailZoom; it doubles for each further level out.
const baseZoomTolerance = 0.01

// Simplify runs Douglas–Peucker over the track in raw lat/lng degree space.
// The point farthest (perpendicular) from the chord between a segment's
// endpoints splits the segment when its distance exceeds tolerance;
// otherwise the whole segment collapses to its endpoints. The overall first
// and last point always survive. Inputs of two or fewer points are returned
// unchanged.
func Simplify(points []domain.StormPoint, tolerance float64) []domain.StormPoint {
	if len(points) <= 2 {
		return points
	}
	return douglasPeucker(points, tolerance)
}

func douglasPeucker(points []domain.StormPoint, tolerance float64) []domain.StormPoint {
	first, last := points[0].Point(), points[len(points)-1].Point()

	maxDist := 0.0
	maxIdx := 0
	for i := 1; i < len(points)-1; i++ {
		d := planar.DistanceFromSegment(first, last, points[i].Point())
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= tolerance || maxIdx == 0 {
		return []domain.StormPoint{points[0], points[len(points)-1]}
	}

	left := douglasPeucker(points[:maxIdx+1], tolerance)
	right := douglasPeucker(points[maxIdx:], tolerance)
	// left ends with points[maxIdx], right starts with it; drop the duplicate.
	return append(left, right[1:]...)
}

// ShouldSimplify reports whether a track is long enough to simplify.
func ShouldSimplify(points []domain.StormPoint) bool {
	return len(points) > simplifyPointThreshold
}

// ForZoom returns the zoom-appropriate track. At or above the full-detail
// zoom, and for short tracks, the input comes back unchanged; further out,
// the track is simplified with a tolerance that doubles per zoom level.
// Pure in (points, zoom): callers re-invoke on every zoom change.
func ForZoom(points []domain.StormPoint, zoom float64) []domain.StormPoint {
	if zoom >= fullDetailZoom || !ShouldSimplify(points) {
		return points
	}
	return Simplify(points, toleranceForZoom(zoom))
}

func toleranceForZoom(zoom float64) float64 {
	return baseZoomTolerance * math.Pow(2, fullDetailZoom-1-zoom)
}

// LineString converts a track to an orb.LineString in lng/lat order.
func LineString(points []domain.StormPoint) orb.LineString {
	ls := make(orb.LineString, len(points))
	for i, p := range points {
		ls[i] = p.Point()
	}
	return ls
}
