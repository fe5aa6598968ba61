package domain

import (
	"fmt"
	"time"
)

// Field bounds for a usable StormPoint. See the package doc for rationale.
const (
	MinPressureHPa = 850
	MaxPressureHPa = 1050
	MaxWindSpeedKt = 400

	// maxTimestampLead bounds how far into the future a forecast point may
	// reach. A year covers any real advisory horizon with a wide margin.
	maxTimestampLead = 365 * 24 * time.Hour
)

// IsValidCoordinate reports whether lat/lng fall inside the WGS-84 ranges
// [-90, 90] and [-180, 180].
func IsValidCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// IsValidWindSpeed reports whether the wind speed is in [0, 400] knots.
func IsValidWindSpeed(windKt float64) bool {
	return windKt >= 0 && windKt <= MaxWindSpeedKt
}

// IsValidPressure reports whether the pressure is in [850, 1050] hPa.
func IsValidPressure(hPa float64) bool {
	return hPa >= MinPressureHPa && hPa <= MaxPressureHPa
}

// IsValidTimestamp reports whether the epoch-millisecond timestamp is
// positive and no more than a year past the package clock's now.
func IsValidTimestamp(ms int64) bool {
	if ms <= 0 {
		return false
	}
	return ms <= clock.Now().Add(maxTimestampLead).UnixMilli()
}

// usable reports whether a point can appear on a map at all: a bad
// coordinate or timestamp makes the point unusable, bad intensity fields
// merely degrade it.
func (p StormPoint) usable() bool {
	return IsValidCoordinate(p.Lat, p.Lng) && IsValidTimestamp(p.Timestamp)
}

// ValidateStormPoint checks one point. Out-of-range coordinates or
// timestamps are errors (the point cannot be used); missing or out-of-range
// wind, pressure, or category are warnings (the point is still drawable
// after sanitization).
func ValidateStormPoint(p StormPoint) ValidationResult {
	result := ValidationResult{IsValid: true}

	if !IsValidCoordinate(p.Lat, p.Lng) {
		result.addError(fmt.Sprintf("coordinate out of range: lat=%g lng=%g", p.Lat, p.Lng))
	}
	if !IsValidTimestamp(p.Timestamp) {
		result.addError(fmt.Sprintf("timestamp out of range: %d", p.Timestamp))
	}
	if !IsValidWindSpeed(p.WindSpeed) {
		result.addWarning(fmt.Sprintf("wind speed out of range: %g kt", p.WindSpeed))
	}
	if !IsValidPressure(p.Pressure) {
		result.addWarning(fmt.Sprintf("pressure out of range: %g hPa", p.Pressure))
	}
	if !p.Category.IsValid() {
		result.addWarning(fmt.Sprintf("unrecognized category %q", p.Category))
	}

	return result
}

// ValidateStorm aggregates point validation across the historical set, the
// current position, the forecast set, and any alternative scenarios. A
// missing current position is an error; a total point count below two or
// out-of-order track timestamps are warnings.
func ValidateStorm(s Storm) ValidationResult {
	result := ValidationResult{IsValid: true}

	if s.ID == "" {
		result.addWarning("storm has no id")
	}

	for i, p := range s.Historical {
		result.merge(fmt.Sprintf("historical[%d]", i), ValidateStormPoint(p))
	}
	if s.CurrentPosition == nil {
		result.addError("missing current position")
	} else {
		result.merge("currentPosition", ValidateStormPoint(*s.CurrentPosition))
	}
	for i, p := range s.Forecast {
		result.merge(fmt.Sprintf("forecast[%d]", i), ValidateStormPoint(p))
	}
	for i, scenario := range s.Scenarios {
		for j, p := range scenario {
			result.merge(fmt.Sprintf("scenarios[%d][%d]", i, j), ValidateStormPoint(p))
		}
	}

	if !ascendingTimestamps(s.FullTrack()) {
		result.addWarning("track timestamps are not strictly ascending")
	}

	total := len(s.Historical) + len(s.Forecast)
	if s.CurrentPosition != nil {
		total++
	}
	if total < 2 {
		result.addWarning(fmt.Sprintf("only %d point(s); not enough to draw a track", total))
	}

	return result
}

// ascendingTimestamps reports whether the valid timestamps in track order
// are strictly increasing. Points with invalid timestamps are skipped; they
// already carry their own error.
func ascendingTimestamps(track []StormPoint) bool {
	var prev int64
	seen := false
	for _, p := range track {
		if !IsValidTimestamp(p.Timestamp) {
			continue
		}
		if seen && p.Timestamp <= prev {
			return false
		}
		prev, seen = p.Timestamp, true
	}
	return true
}
