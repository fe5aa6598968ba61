package domain

import (
	"strings"
	"time"

	"github.com/paulmach/orb"
)

// Category is an ordinal storm-severity label on the seven-step scale
// TD < TS < C1 < C2 < C3 < C4 < C5.
type Category string

const (
	CategoryTD Category = "TD" // tropical depression
	CategoryTS Category = "TS" // tropical storm
	CategoryC1 Category = "C1"
	CategoryC2 Category = "C2"
	CategoryC3 Category = "C3"
	CategoryC4 Category = "C4"
	CategoryC5 Category = "C5"
)

// categoryLevels maps each canonical label to its ordinal position.
var categoryLevels = map[Category]int{
	CategoryTD: 0,
	CategoryTS: 1,
	CategoryC1: 2,
	CategoryC2: 3,
	CategoryC3: 4,
	CategoryC4: 5,
	CategoryC5: 6,
}

// Level returns the category's ordinal position, 0 (TD) through 6 (C5).
// Unrecognized labels rank alongside TS, matching the color-mapper fallback.
func (c Category) Level() int {
	if lvl, ok := categoryLevels[normalizeCategory(c)]; ok {
		return lvl
	}
	return categoryLevels[CategoryTS]
}

// IsValid reports whether c is one of the seven canonical labels.
func (c Category) IsValid() bool {
	_, ok := categoryLevels[normalizeCategory(c)]
	return ok
}

// IsMajorHurricane reports whether c is Category 3 or stronger.
func (c Category) IsMajorHurricane() bool {
	return c.IsValid() && c.Level() >= CategoryC3.Level()
}

func normalizeCategory(c Category) Category {
	return Category(strings.ToUpper(strings.TrimSpace(string(c))))
}

// Saffir–Simpson boundaries in knots, plus the 34 kt tropical-storm threshold.
const (
	tropicalStormWindKt = 34
	cat1WindKt          = 64
	cat2WindKt          = 83
	cat3WindKt          = 96
	cat4WindKt          = 113
	cat5WindKt          = 137
)

// CategoryForWind derives the severity label for a sustained wind in knots.
func CategoryForWind(windKt float64) Category {
	switch {
	case windKt < tropicalStormWindKt:
		return CategoryTD
	case windKt < cat1WindKt:
		return CategoryTS
	case windKt < cat2WindKt:
		return CategoryC1
	case windKt < cat3WindKt:
		return CategoryC2
	case windKt < cat4WindKt:
		return CategoryC3
	case windKt < cat5WindKt:
		return CategoryC4
	default:
		return CategoryC5
	}
}

// StormPoint is one observation or forecast position along a storm track.
type StormPoint struct {
	Timestamp int64    `json:"timestamp"` // epoch milliseconds UTC
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	WindSpeed float64  `json:"windSpeed"` // knots
	Pressure  float64  `json:"pressure"`  // hPa
	Category  Category `json:"category"`
}

// Time converts the point's epoch-millisecond timestamp to a UTC time.
func (p StormPoint) Time() time.Time {
	return time.UnixMilli(p.Timestamp).UTC()
}

// Point returns the position as an orb lng/lat point.
func (p StormPoint) Point() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// Storm status values. The status is display metadata set by the ingestion
// stage; the engine carries it through untouched.
const (
	StatusActive       = "active"
	StatusPostTropical = "post-tropical"
	StatusDissipated   = "dissipated"
)

// Storm is one cyclone's full track: observed history strictly before the
// current position and forecast strictly after, each time-ascending.
// Scenarios holds alternative forecast tracks, index-aligned with Forecast.
type Storm struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	DisplayName     string         `json:"displayName"`
	Status          string         `json:"status"`
	CurrentPosition *StormPoint    `json:"currentPosition"`
	Historical      []StormPoint   `json:"historical"`
	Forecast        []StormPoint   `json:"forecast"`
	Scenarios       [][]StormPoint `json:"scenarios,omitempty"`
}

// FullTrack returns historical, current, and forecast points as one
// time-ascending slice. The result is freshly allocated.
func (s Storm) FullTrack() []StormPoint {
	track := make([]StormPoint, 0, len(s.Historical)+1+len(s.Forecast))
	track = append(track, s.Historical...)
	if s.CurrentPosition != nil {
		track = append(track, *s.CurrentPosition)
	}
	track = append(track, s.Forecast...)
	return track
}

// Provenance tags whether a track sample was observed in the input data or
// produced by interpolation.
type Provenance string

const (
	Observed     Provenance = "observed"
	Interpolated Provenance = "interpolated"
)

// TrackSample pairs a storm point with its provenance so consumers branch on
// origin explicitly instead of probing optional fields.
type TrackSample struct {
	Point      StormPoint `json:"point"`
	Provenance Provenance `json:"provenance"`
}

// ValidationResult aggregates problems found in a point or storm.
// Errors block rendering entirely; warnings degrade gracefully.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *ValidationResult) addError(msg string) {
	r.IsValid = false
	r.Errors = append(r.Errors, msg)
}

func (r *ValidationResult) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// merge folds another result into r, prefixing its messages with context.
func (r *ValidationResult) merge(prefix string, other ValidationResult) {
	for _, e := range other.Errors {
		r.addError(prefix + ": " + e)
	}
	for _, w := range other.Warnings {
		r.addWarning(prefix + ": " + w)
	}
}
