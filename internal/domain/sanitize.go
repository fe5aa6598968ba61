package domain

import (
	"errors"
	"math"
	"strings"
)

// PointDefaults supplies per-field replacement values for sanitization.
type PointDefaults struct {
	WindSpeed float64
	Pressure  float64
	Category  Category
}

// DefaultPointValues are the stand-ins used when a point's intensity fields
// are individually invalid: minimal tropical-storm wind, near-ambient
// pressure, and the tropical-storm label (the same fallback the color mapper
// uses).
var DefaultPointValues = PointDefaults{
	WindSpeed: tropicalStormWindKt,
	Pressure:  1005,
	Category:  CategoryTS,
}

// InterpolateStormPoint linearly blends timestamp, position, wind, and
// pressure between a and b. The factor is clamped to [0, 1]. Category is a
// step function over the ordinal scale: a's label below factor 0.5, b's at
// or above it — categories are discrete and never blended numerically.
func InterpolateStormPoint(a, b StormPoint, factor float64) StormPoint {
	if factor < 0 {
		factor = 0
	} else if factor > 1 {
		factor = 1
	}

	category := a.Category
	if factor >= 0.5 {
		category = b.Category
	}

	return StormPoint{
		Timestamp: a.Timestamp + int64(math.Round(factor*float64(b.Timestamp-a.Timestamp))),
		Lat:       a.Lat + factor*(b.Lat-a.Lat),
		Lng:       a.Lng + factor*(b.Lng-a.Lng),
		WindSpeed: a.WindSpeed + factor*(b.WindSpeed-a.WindSpeed),
		Pressure:  a.Pressure + factor*(b.Pressure-a.Pressure),
		Category:  category,
	}
}

// SanitizeStormPoint substitutes defaults for individually invalid intensity
// fields without discarding the point. Coordinates and timestamps are not
// repaired here; points with hard problems are handled by gap filling.
func SanitizeStormPoint(p StormPoint, defaults PointDefaults) StormPoint {
	if !IsValidWindSpeed(p.WindSpeed) {
		p.WindSpeed = defaults.WindSpeed
	}
	if !IsValidPressure(p.Pressure) {
		p.Pressure = defaults.Pressure
	}
	if !p.Category.IsValid() {
		p.Category = defaults.Category
	} else {
		p.Category = normalizeCategory(p.Category)
	}
	return p
}

// FillTrackGaps repairs unusable points sandwiched between usable ones.
// A run of k unusable points between valid neighbors is replaced by k evenly
// spaced interpolated points, so consumers see the point count they expect.
// Unusable points before the first or after the last valid point cannot be
// interpolated and are dropped.
func FillTrackGaps(points []StormPoint) []StormPoint {
	if len(points) == 0 {
		return nil
	}

	valid := make([]int, 0, len(points))
	for i, p := range points {
		if p.usable() {
			valid = append(valid, i)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	out := make([]StormPoint, 0, len(points))
	out = append(out, points[valid[0]])
	for v := 1; v < len(valid); v++ {
		prev, next := valid[v-1], valid[v]
		gap := next - prev - 1
		for k := 1; k <= gap; k++ {
			factor := float64(k) / float64(gap+1)
			out = append(out, InterpolateStormPoint(points[prev], points[next], factor))
		}
		out = append(out, points[next])
	}
	return out
}

// ValidateAndSanitizeStorm runs full validation and repair. When hard errors
// remain after repair — no current position, or a current position that is
// itself unusable — it returns nil and a diagnostic error the caller should
// surface instead of rendering. Otherwise it returns a new Storm with
// gap-filled, sanitized historical and forecast tracks; the input is never
// mutated. The repair is deterministic: identical input yields identical
// output.
func ValidateAndSanitizeStorm(s Storm) (*Storm, error) {
	if s.CurrentPosition == nil {
		return nil, errors.New("storm " + s.ID + ": missing current position")
	}
	if cur := ValidateStormPoint(*s.CurrentPosition); !cur.IsValid {
		return nil, errors.New("storm " + s.ID + ": current position unusable: " + strings.Join(cur.Errors, "; "))
	}

	current := SanitizeStormPoint(*s.CurrentPosition, DefaultPointValues)
	clean := Storm{
		ID:              s.ID,
		Name:            s.Name,
		DisplayName:     s.DisplayName,
		Status:          s.Status,
		CurrentPosition: &current,
		Historical:      sanitizeTrack(s.Historical),
		Forecast:        sanitizeTrack(s.Forecast),
		Scenarios:       sanitizeScenarios(s.Scenarios),
	}
	return &clean, nil
}

func sanitizeTrack(points []StormPoint) []StormPoint {
	filled := FillTrackGaps(points)
	for i := range filled {
		filled[i] = SanitizeStormPoint(filled[i], DefaultPointValues)
	}
	return filled
}

// sanitizeScenarios repairs each alternative forecast track the same way as
// the primary tracks. The cone builder measures distances against scenario
// points, so they get no exemption from the field bounds. Scenarios left
// with no usable points are dropped.
func sanitizeScenarios(scenarios [][]StormPoint) [][]StormPoint {
	if len(scenarios) == 0 {
		return nil
	}
	out := make([][]StormPoint, 0, len(scenarios))
	for _, scenario := range scenarios {
		if clean := sanitizeTrack(scenario); clean != nil {
			out = append(out, clean)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
