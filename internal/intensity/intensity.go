package intensity

import (
	"math"

	"github.com/couchcryptid/storm-track-viz/internal/domain"
)

// Trend classifies the change in storm strength between two points.
type Trend string

const (
	TrendIntensifying Trend = "intensifying"
	TrendWeakening    Trend = "weakening"
	TrendStable       Trend = "stable"
)

// windTrendThresholdKt is the wind-speed change below which two same-category
// points are considered stable.
const windTrendThresholdKt = 10

// DetectIntensityChange compares consecutive points. A category-level change
// dominates; with the category unchanged, a wind change of at least ±10 kt
// decides; anything inside the threshold is stable.
func DetectIntensityChange(prev, curr domain.StormPoint) Trend {
	prevLevel, currLevel := prev.Category.Level(), curr.Category.Level()
	switch {
	case currLevel > prevLevel:
		return TrendIntensifying
	case currLevel < prevLevel:
		return TrendWeakening
	}

	delta := curr.WindSpeed - prev.WindSpeed
	switch {
	case delta >= windTrendThresholdKt:
		return TrendIntensifying
	case delta <= -windTrendThresholdKt:
		return TrendWeakening
	default:
		return TrendStable
	}
}

// Marker sizing: wind maps linearly from [30, 200] kt onto [20, 40] px.
// Major hurricanes get a floor of 32 and a 10% boost, re-clamped to 40, so
// they never read as small markers regardless of the instantaneous wind.
const (
	markerWindMin = 30
	markerWindMax = 200
	markerSizeMin = 20
	markerSizeMax = 40
	majorFloor    = 32
	majorBoost    = 1.10
)

// MarkerSize returns the on-map marker diameter for a point's wind speed and
// category.
func MarkerSize(windKt float64, category domain.Category) float64 {
	t := (windKt - markerWindMin) / (markerWindMax - markerWindMin)
	t = math.Max(0, math.Min(1, t))
	size := markerSizeMin + t*(markerSizeMax-markerSizeMin)

	if category.IsMajorHurricane() {
		if size < majorFloor {
			size = majorFloor
		}
		size *= majorBoost
		if size > markerSizeMax {
			size = markerSizeMax
		}
	}
	return size
}

// Score collapses a point's strength into one ranking scalar:
// category level dominates, wind and pressure deficit break ties.
func Score(p domain.StormPoint) float64 {
	return float64(p.Category.Level())*10 +
		(p.WindSpeed/200)*5 +
		((1013-p.Pressure)/100)*3
}
